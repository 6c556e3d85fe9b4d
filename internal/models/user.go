package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserRole string
type UserStatus string

const (
	UserRoleDonor       UserRole = "donor"
	UserRoleVendor      UserRole = "vendor"
	UserRoleBeneficiary UserRole = "beneficiary"
	UserRoleVolunteer   UserRole = "volunteer"
	UserRoleFundraiser  UserRole = "fundraiser"
	UserRoleAdmin       UserRole = "admin"

	UserStatusActive    UserStatus = "active"
	UserStatusInactive  UserStatus = "inactive"
	UserStatusSuspended UserStatus = "suspended"
)

type User struct {
	ID              primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name            string             `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Email           string             `json:"email" bson:"email" validate:"required,email"`
	Phone           string             `json:"phone" bson:"phone" validate:"required,indian_phone"`
	Password        string             `json:"-" bson:"password"`
	Role            UserRole           `json:"role" bson:"role" validate:"required"`
	Status          UserStatus         `json:"status" bson:"status" default:"active"`
	IsVerified      bool               `json:"isVerified" bson:"is_verified" default:"false"`
	IsActive        bool               `json:"isActive" bson:"is_active" default:"true"`
	ProfilePicture  string             `json:"profilePicture" bson:"profile_picture"`
	Address         string             `json:"address" bson:"address"`
	LastLoginAt     *time.Time         `json:"lastLoginAt" bson:"last_login_at"`
	EmailVerifiedAt *time.Time         `json:"emailVerifiedAt" bson:"email_verified_at"`
	CreatedAt       time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updated_at"`
	DeletedAt       *time.Time         `json:"deletedAt" bson:"deleted_at"`
}

// ValidRole reports whether role is one of the closed role set.
func ValidRole(role UserRole) bool {
	switch role {
	case UserRoleDonor, UserRoleVendor, UserRoleBeneficiary,
		UserRoleVolunteer, UserRoleFundraiser, UserRoleAdmin:
		return true
	}
	return false
}

// SelfAssignableRole reports whether a user may pick this role at registration.
// Admin accounts are only created by other admins.
func SelfAssignableRole(role UserRole) bool {
	return ValidRole(role) && role != UserRoleAdmin
}

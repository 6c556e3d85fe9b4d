package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PartnerCategory string
type PartnerStatus string

const (
	PartnerCategoryMedical PartnerCategory = "medical"
	PartnerCategoryFood    PartnerCategory = "food"

	PartnerStatusPending  PartnerStatus = "pending"
	PartnerStatusApproved PartnerStatus = "approved"
	PartnerStatusRejected PartnerStatus = "rejected"
)

type ContactPerson struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone" validate:"omitempty,indian_phone"`
	Email string `json:"email" bson:"email" validate:"omitempty,email"`
}

type PartnerAddress struct {
	Street  string `json:"street" bson:"street"`
	City    string `json:"city" bson:"city"`
	State   string `json:"state" bson:"state"`
	Pincode string `json:"pincode" bson:"pincode"`
}

// DayHours is one weekday's opening window.
type DayHours struct {
	Open   string `json:"open" bson:"open"`
	Close  string `json:"close" bson:"close"`
	IsOpen bool   `json:"isOpen" bson:"is_open"`
}

type OperatingHours struct {
	Monday    DayHours `json:"monday" bson:"monday"`
	Tuesday   DayHours `json:"tuesday" bson:"tuesday"`
	Wednesday DayHours `json:"wednesday" bson:"wednesday"`
	Thursday  DayHours `json:"thursday" bson:"thursday"`
	Friday    DayHours `json:"friday" bson:"friday"`
	Saturday  DayHours `json:"saturday" bson:"saturday"`
	Sunday    DayHours `json:"sunday" bson:"sunday"`
}

type Partner struct {
	ID                primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Name              string              `json:"name" bson:"name" validate:"required,min=2,max=150"`
	BusinessType      string              `json:"businessType" bson:"business_type"`
	Category          PartnerCategory     `json:"category" bson:"category" validate:"required"`
	Description       string              `json:"description" bson:"description"`
	ContactPerson     ContactPerson       `json:"contactPerson" bson:"contact_person"`
	Address           PartnerAddress      `json:"address" bson:"address"`
	OperatingHours    OperatingHours      `json:"operatingHours" bson:"operating_hours"`
	Images            []string            `json:"images" bson:"images"`
	Status            PartnerStatus       `json:"status" bson:"status" default:"pending"`
	IsActive          bool                `json:"isActive" bson:"is_active" default:"true"`
	Owner             *primitive.ObjectID `json:"owner" bson:"owner"`
	VerificationNotes string              `json:"verificationNotes,omitempty" bson:"verification_notes"`
	RejectionReason   string              `json:"rejectionReason,omitempty" bson:"rejection_reason"`
	CreatedAt         time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt         time.Time           `json:"updatedAt" bson:"updated_at"`
}

func ValidPartnerCategory(c PartnerCategory) bool {
	return c == PartnerCategoryMedical || c == PartnerCategoryFood
}

// PartnerCategoryFromPath maps public directory path segments to categories.
// The medical directory is exposed as "health" on the website.
func PartnerCategoryFromPath(segment string) PartnerCategory {
	if segment == "health" {
		return PartnerCategoryMedical
	}
	return PartnerCategory(segment)
}

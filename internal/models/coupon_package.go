package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CouponPackage is a catalog entry a donor sponsors, not a live coupon.
type CouponPackage struct {
	ID           primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title        string             `json:"title" bson:"title" validate:"required"`
	Category     string             `json:"category" bson:"category" validate:"required"`
	Amount       float64            `json:"amount" bson:"amount" validate:"required,gt=0"`
	Description  string             `json:"description" bson:"description"`
	ValidityDays int                `json:"validityDays" bson:"validity_days" default:"90"`
	CouponType   CouponType         `json:"couponType" bson:"coupon_type" default:"service"`
	MaxUses      int                `json:"maxUses" bson:"max_uses" default:"1"`
	IsActive     bool               `json:"isActive" bson:"is_active" default:"true"`
	CreatedAt    time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time          `json:"updatedAt" bson:"updated_at"`
}

package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CouponStatus string
type CouponType string

const (
	CouponStatusActive   CouponStatus = "active"
	CouponStatusInactive CouponStatus = "inactive"
	CouponStatusRedeemed CouponStatus = "redeemed"

	CouponTypeDiscount CouponType = "discount"
	CouponTypeCashback CouponType = "cashback"
	CouponTypeFreeItem CouponType = "free_item"
	CouponTypeService  CouponType = "service"
)

type CouponValue struct {
	Amount     float64 `json:"amount" bson:"amount"`
	Percentage float64 `json:"percentage" bson:"percentage"`
}

type CouponValidity struct {
	StartDate time.Time `json:"startDate" bson:"start_date"`
	EndDate   time.Time `json:"endDate" bson:"end_date"`
	IsActive  bool      `json:"isActive" bson:"is_active"`
}

type CouponUsage struct {
	MaxUses     int  `json:"maxUses" bson:"max_uses"`
	UsedCount   int  `json:"usedCount" bson:"used_count"`
	IsUnlimited bool `json:"isUnlimited" bson:"is_unlimited"`
}

type CouponQRCode struct {
	URL string `json:"url" bson:"url"`
}

type CouponBeneficiary struct {
	Name  string `json:"name" bson:"name"`
	Phone string `json:"phone" bson:"phone"`
	Email string `json:"email" bson:"email"`
}

// CouponRedemption is one use of a coupon recorded at redemption time.
type CouponRedemption struct {
	RedeemedBy primitive.ObjectID `json:"redeemedBy" bson:"redeemed_by"`
	Location   string             `json:"location" bson:"location"`
	Notes      string             `json:"notes" bson:"notes"`
	RedeemedAt time.Time          `json:"redeemedAt" bson:"redeemed_at"`
}

type Coupon struct {
	ID          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Code        string              `json:"code" bson:"code" validate:"required"`
	Title       string              `json:"title" bson:"title" validate:"required"`
	Category    string              `json:"category" bson:"category"`
	Type        CouponType          `json:"type" bson:"type" default:"service"`
	Value       CouponValue         `json:"value" bson:"value"`
	Validity    CouponValidity      `json:"validity" bson:"validity"`
	Usage       CouponUsage         `json:"usage" bson:"usage"`
	Status      CouponStatus        `json:"status" bson:"status" default:"active"`
	PackageID   *primitive.ObjectID `json:"packageId" bson:"package_id"`
	Partner     *primitive.ObjectID `json:"partner" bson:"partner"`
	PurchasedBy *primitive.ObjectID `json:"purchasedBy" bson:"purchased_by"`
	Beneficiary *CouponBeneficiary  `json:"beneficiary,omitempty" bson:"beneficiary"`
	QRCode      *CouponQRCode       `json:"qrCode,omitempty" bson:"qr_code"`
	Redemptions []CouponRedemption  `json:"redemptions,omitempty" bson:"redemptions"`
	RejectedFor string              `json:"rejectedFor,omitempty" bson:"rejected_for"`
	CreatedAt   time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt   time.Time           `json:"updatedAt" bson:"updated_at"`
}

// IsExpired reports whether the validity window has closed.
func (c *Coupon) IsExpired(now time.Time) bool {
	return now.Before(c.Validity.StartDate) || now.After(c.Validity.EndDate)
}

// UsageExhausted reports whether all uses are consumed.
func (c *Coupon) UsageExhausted() bool {
	return !c.Usage.IsUnlimited && c.Usage.UsedCount >= c.Usage.MaxUses
}

// RedeemabilityReason returns (true, "") for a redeemable coupon, otherwise
// false and a human-readable reason suitable for the API envelope.
func (c *Coupon) RedeemabilityReason(now time.Time) (bool, string) {
	switch {
	case c.Status == CouponStatusRedeemed:
		return false, "Coupon has already been fully redeemed"
	case c.Status == CouponStatusInactive:
		return false, "Coupon is no longer active"
	case !c.Validity.IsActive:
		return false, "Coupon validity has been suspended"
	case c.IsExpired(now):
		return false, "Coupon is expired or not yet valid"
	case c.UsageExhausted():
		return false, "Coupon usage limit reached"
	}
	return true, ""
}

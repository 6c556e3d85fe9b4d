package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WalletTransactionType string
type WalletCouponStatus string

const (
	WalletTxnTopup      WalletTransactionType = "topup"
	WalletTxnSettlement WalletTransactionType = "settlement"
	WalletTxnOther      WalletTransactionType = "other"

	WalletCouponPending WalletCouponStatus = "pending"
	WalletCouponSettled WalletCouponStatus = "settled"
)

// WalletCoupon is a coupon credited to a vendor wallet, awaiting settlement.
type WalletCoupon struct {
	Coupon  primitive.ObjectID `json:"coupon" bson:"coupon"`
	Amount  float64            `json:"amount" bson:"amount"`
	Status  WalletCouponStatus `json:"status" bson:"status"`
	AddedAt time.Time          `json:"addedAt" bson:"added_at"`
}

type WalletTransaction struct {
	ID          primitive.ObjectID    `json:"id" bson:"_id,omitempty"`
	Type        WalletTransactionType `json:"type" bson:"type"`
	Amount      float64               `json:"amount" bson:"amount"`
	Description string                `json:"description" bson:"description"`
	Reference   string                `json:"reference" bson:"reference"`
	ProcessedAt time.Time             `json:"processedAt" bson:"processed_at"`
}

// Wallet tracks a vendor's coupon receipts and settlements.
// Invariant: CurrentBalance == TotalReceived - TotalSettled.
type Wallet struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	VendorID       primitive.ObjectID  `json:"vendorId" bson:"vendor_id" validate:"required"`
	CurrentBalance float64             `json:"currentBalance" bson:"current_balance" default:"0"`
	TotalReceived  float64             `json:"totalReceived" bson:"total_received" default:"0"`
	TotalSettled   float64             `json:"totalSettled" bson:"total_settled" default:"0"`
	Currency       string              `json:"currency" bson:"currency" default:"INR"`
	Coupons        []WalletCoupon      `json:"coupons" bson:"coupons"`
	Transactions   []WalletTransaction `json:"transactions" bson:"transactions"`
	IsActive       bool                `json:"isActive" bson:"is_active" default:"true"`
	CreatedAt      time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updated_at"`
}

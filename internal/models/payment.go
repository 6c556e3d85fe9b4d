package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PaymentStatus string

const (
	PaymentStatusCreated   PaymentStatus = "created"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusRefunded  PaymentStatus = "refunded"
)

// Payment is a gateway-side order/intent tracked by its correlation id
// (OrderID for Razorpay, the intent id for Stripe). It settles either a
// donation or a coupon package purchase; the counterpart id is attached
// once verification succeeds.
type Payment struct {
	ID            primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	UserID        primitive.ObjectID  `json:"userId" bson:"user_id" validate:"required"`
	CampaignID    primitive.ObjectID  `json:"campaignId" bson:"campaign_id"`
	DonationID    *primitive.ObjectID `json:"donationId" bson:"donation_id"`
	PackageID     *primitive.ObjectID `json:"packageId" bson:"package_id"`
	PartnerID     *primitive.ObjectID `json:"partnerId" bson:"partner_id"`
	Beneficiary   *CouponBeneficiary  `json:"beneficiary,omitempty" bson:"beneficiary"`
	Quantity      int                 `json:"quantity" bson:"quantity"`
	Gateway       PaymentGateway      `json:"gateway" bson:"gateway" validate:"required"`
	OrderID       string              `json:"orderId" bson:"order_id"`
	GatewayTxnID  string              `json:"gatewayTransactionId" bson:"gateway_transaction_id"`
	Amount        float64             `json:"amount" bson:"amount" validate:"required,gte=10"`
	Currency      string              `json:"currency" bson:"currency" default:"INR"`
	Status        PaymentStatus       `json:"status" bson:"status" default:"created"`
	FailureReason string              `json:"failureReason,omitempty" bson:"failure_reason"`
	RefundID      string              `json:"refundId,omitempty" bson:"refund_id"`
	RefundAmount  float64             `json:"refundAmount" bson:"refund_amount" default:"0"`
	ProcessedAt   *time.Time          `json:"processedAt" bson:"processed_at"`
	RefundedAt    *time.Time          `json:"refundedAt" bson:"refunded_at"`
	CreatedAt     time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time           `json:"updatedAt" bson:"updated_at"`
}

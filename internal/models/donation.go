package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DonationStatus string
type PaymentGateway string

const (
	DonationStatusPending   DonationStatus = "pending"
	DonationStatusCompleted DonationStatus = "completed"
	DonationStatusFailed    DonationStatus = "failed"
	DonationStatusRefunded  DonationStatus = "refunded"

	GatewayRazorpay PaymentGateway = "razorpay"
	GatewayStripe   PaymentGateway = "stripe"
	GatewayUPI      PaymentGateway = "upi"
	GatewayTest     PaymentGateway = "test"
)

// PaymentDetails records how a donation was settled with the gateway.
type PaymentDetails struct {
	Gateway         PaymentGateway         `json:"gateway" bson:"gateway"`
	TransactionID   string                 `json:"transactionId" bson:"transaction_id"`
	PaymentID       string                 `json:"paymentId" bson:"payment_id"`
	GatewayResponse map[string]interface{} `json:"gatewayResponse,omitempty" bson:"gateway_response"`
}

type DonorDetails struct {
	Name  string `json:"name" bson:"name"`
	Email string `json:"email" bson:"email"`
	Phone string `json:"phone" bson:"phone"`
}

type Donation struct {
	ID             primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Campaign       primitive.ObjectID  `json:"campaign" bson:"campaign" validate:"required"`
	Donor          *primitive.ObjectID `json:"donor" bson:"donor"`
	DonorDetails   *DonorDetails       `json:"donorDetails,omitempty" bson:"donor_details"`
	Amount         float64             `json:"amount" bson:"amount" validate:"required,gte=10"`
	Currency       string              `json:"currency" bson:"currency" default:"INR"`
	IsAnonymous    bool                `json:"isAnonymous" bson:"is_anonymous" default:"false"`
	Message        string              `json:"message" bson:"message"`
	PaymentDetails *PaymentDetails     `json:"paymentDetails,omitempty" bson:"payment_details"`
	Status         DonationStatus      `json:"status" bson:"status" default:"pending"`
	ReceiptNumber  string              `json:"receiptNumber,omitempty" bson:"receipt_number"`
	RefundReason   string              `json:"refundReason,omitempty" bson:"refund_reason"`
	CompletedAt    *time.Time          `json:"completedAt" bson:"completed_at"`
	RefundedAt     *time.Time          `json:"refundedAt" bson:"refunded_at"`
	CreatedAt      time.Time           `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time           `json:"updatedAt" bson:"updated_at"`
}

// CanTransitionTo enforces the forward-only donation lifecycle:
// pending -> completed | failed, completed -> refunded. Nothing moves backward.
func (d *Donation) CanTransitionTo(next DonationStatus) bool {
	switch d.Status {
	case DonationStatusPending:
		return next == DonationStatusCompleted || next == DonationStatusFailed
	case DonationStatusCompleted:
		return next == DonationStatusRefunded
	}
	return false
}

func ValidGateway(g PaymentGateway) bool {
	switch g {
	case GatewayRazorpay, GatewayStripe, GatewayUPI, GatewayTest:
		return true
	}
	return false
}

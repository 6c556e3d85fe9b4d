package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/razorpay/razorpay-go"
)

type RazorpayProvider struct {
	client    *razorpay.Client
	keyID     string
	keySecret string
}

func NewRazorpayProvider(keyID, keySecret string) *RazorpayProvider {
	return &RazorpayProvider{
		client:    razorpay.NewClient(keyID, keySecret),
		keyID:     keyID,
		keySecret: keySecret,
	}
}

func (r *RazorpayProvider) Name() string {
	return GatewayRazorpay
}

// CreateCharge creates a Razorpay order. The actual payment is authorized on
// the frontend widget against this order id and verified afterwards.
func (r *RazorpayProvider) CreateCharge(ctx context.Context, request *ChargeRequest) (*ChargeResult, error) {
	orderData := map[string]interface{}{
		"amount":   int(request.Amount * 100), // paise
		"currency": request.Currency,
		"receipt":  request.Receipt,
		"notes":    request.Metadata,
	}

	order, err := r.client.Order.Create(orderData, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay order: %w", err)
	}

	return &ChargeResult{
		OrderID:   order["id"].(string),
		Status:    ChargeStatusCreated,
		Amount:    request.Amount,
		Currency:  request.Currency,
		KeyID:     r.keyID,
		CreatedAt: toInt64(order["created_at"]),
	}, nil
}

// VerifyCharge checks the checkout callback signature: HMAC-SHA256 of
// "order_id|payment_id" keyed with the account secret.
func (r *RazorpayProvider) VerifyCharge(ctx context.Context, request *VerificationRequest) (*VerificationResult, error) {
	expected := r.signCheckout(request.OrderID, request.PaymentID)
	if !hmac.Equal([]byte(expected), []byte(request.Signature)) {
		return nil, ErrSignatureMismatch
	}

	pay, err := r.client.Payment.Fetch(request.PaymentID, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch razorpay payment: %w", err)
	}

	status, _ := pay["status"].(string)
	if status != "captured" && status != "authorized" {
		return nil, ErrChargeNotSettled
	}

	return &VerificationResult{
		Verified:  true,
		PaymentID: request.PaymentID,
		Status:    ChargeStatusSucceeded,
		Amount:    toFloat64(pay["amount"]) / 100,
		Currency:  toString(pay["currency"]),
	}, nil
}

func (r *RazorpayProvider) Refund(ctx context.Context, request *RefundRequest) (*RefundResult, error) {
	amount := int(request.Amount * 100)
	refundData := map[string]interface{}{
		"notes": map[string]interface{}{
			"reason": request.Reason,
		},
	}

	refund, err := r.client.Payment.Refund(request.PaymentID, amount, refundData, map[string]string{})
	if err != nil {
		return nil, fmt.Errorf("failed to create razorpay refund: %w", err)
	}

	return &RefundResult{
		RefundID:  refund["id"].(string),
		Status:    toString(refund["status"]),
		Amount:    toFloat64(refund["amount"]) / 100,
		Currency:  toString(refund["currency"]),
		CreatedAt: toInt64(refund["created_at"]),
	}, nil
}

func (r *RazorpayProvider) signCheckout(orderID, paymentID string) string {
	h := hmac.New(sha256.New, []byte(r.keySecret))
	h.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(h.Sum(nil))
}

// The Razorpay SDK returns numbers as float64 or json.Number depending on the
// endpoint, so conversions go through these helpers.
func toInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	}
	return 0
}

func toFloat64(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case int:
		return float64(n)
	}
	return 0
}

func toString(v interface{}) string {
	s, _ := v.(string)
	return s
}

package payment

import (
	"context"
	"errors"
)

// Gateway names as they appear on the wire.
const (
	GatewayRazorpay = "razorpay"
	GatewayStripe   = "stripe"
	GatewayUPI      = "upi"
	GatewayTest     = "test"
)

// Charge lifecycle states reported by providers.
const (
	ChargeStatusCreated   = "created"
	ChargeStatusPending   = "pending"
	ChargeStatusSucceeded = "succeeded"
	ChargeStatusFailed    = "failed"
)

var (
	ErrSignatureMismatch = errors.New("payment signature mismatch")
	ErrChargeNotSettled  = errors.New("charge has not settled at the gateway")
	ErrUnsupported       = errors.New("operation not supported by this gateway")
)

// Provider is the payment-widget capability each gateway implements. A charge
// is created server-side, optionally authorized by the user out-of-process
// (hosted widget, UPI app), then verified against the gateway by correlation id.
type Provider interface {
	Name() string
	CreateCharge(ctx context.Context, request *ChargeRequest) (*ChargeResult, error)
	VerifyCharge(ctx context.Context, request *VerificationRequest) (*VerificationResult, error)
	Refund(ctx context.Context, request *RefundRequest) (*RefundResult, error)
}

type ChargeRequest struct {
	Amount      float64                `json:"amount"`
	Currency    string                 `json:"currency"`
	Receipt     string                 `json:"receipt"`
	Description string                 `json:"description"`
	CustomerID  string                 `json:"customer_id"`
	UPIHandle   string                 `json:"upi_handle,omitempty"`
	Metadata    map[string]interface{} `json:"metadata"`
}

// ChargeResult carries the correlation id (OrderID) the client echoes back at
// verification time, plus whatever the hosted widget needs to open.
type ChargeResult struct {
	OrderID      string  `json:"order_id"`
	Status       string  `json:"status"`
	Amount       float64 `json:"amount"`
	Currency     string  `json:"currency"`
	ClientSecret string  `json:"client_secret,omitempty"`
	KeyID        string  `json:"key_id,omitempty"`
	UPIHandle    string  `json:"upi_handle,omitempty"`
	CreatedAt    int64   `json:"created_at"`
}

type VerificationRequest struct {
	OrderID   string `json:"order_id"`
	PaymentID string `json:"payment_id"`
	Signature string `json:"signature"`
}

type VerificationResult struct {
	Verified  bool    `json:"verified"`
	PaymentID string  `json:"payment_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
}

type RefundRequest struct {
	PaymentID string  `json:"payment_id"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
}

type RefundResult struct {
	RefundID  string  `json:"refund_id"`
	Status    string  `json:"status"`
	Amount    float64 `json:"amount"`
	Currency  string  `json:"currency"`
	CreatedAt int64   `json:"created_at"`
}

// Registry resolves a provider by gateway name.
type Registry struct {
	providers map[string]Provider
}

func NewRegistry(providers ...Provider) *Registry {
	r := &Registry{providers: make(map[string]Provider)}
	for _, p := range providers {
		r.providers[p.Name()] = p
	}
	return r
}

func (r *Registry) Get(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return nil, errors.New("unknown payment gateway: " + name)
	}
	return p, nil
}

// Names lists the registered gateways.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	return names
}

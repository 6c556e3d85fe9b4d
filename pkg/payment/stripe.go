package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type StripeProvider struct {
	client         *client.API
	publishableKey string
}

func NewStripeProvider(secretKey, publishableKey string) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)

	return &StripeProvider{
		client:         sc,
		publishableKey: publishableKey,
	}
}

func (s *StripeProvider) Name() string {
	return GatewayStripe
}

// CreateCharge opens a PaymentIntent. The client confirms it with the
// returned client secret; VerifyCharge later checks the intent settled.
func (s *StripeProvider) CreateCharge(ctx context.Context, request *ChargeRequest) (*ChargeResult, error) {
	params := &stripe.PaymentIntentParams{
		Amount:      stripe.Int64(int64(request.Amount * 100)),
		Currency:    stripe.String(request.Currency),
		Description: stripe.String(request.Description),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx

	if request.Metadata != nil {
		for key, value := range request.Metadata {
			params.AddMetadata(key, fmt.Sprintf("%v", value))
		}
	}

	pi, err := s.client.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &ChargeResult{
		OrderID:      pi.ID,
		Status:       ChargeStatusCreated,
		Amount:       float64(pi.Amount) / 100,
		Currency:     string(pi.Currency),
		ClientSecret: pi.ClientSecret,
		KeyID:        s.publishableKey,
		CreatedAt:    pi.Created,
	}, nil
}

// VerifyCharge retrieves the intent by id; Stripe needs no client-supplied
// signature because the lookup is authenticated with the secret key.
func (s *StripeProvider) VerifyCharge(ctx context.Context, request *VerificationRequest) (*VerificationResult, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := s.client.PaymentIntents.Get(request.OrderID, params)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve payment intent: %w", err)
	}

	if pi.Status != stripe.PaymentIntentStatusSucceeded {
		return nil, ErrChargeNotSettled
	}

	paymentID := pi.ID
	if pi.LatestCharge != nil {
		paymentID = pi.LatestCharge.ID
	}

	return &VerificationResult{
		Verified:  true,
		PaymentID: paymentID,
		Status:    ChargeStatusSucceeded,
		Amount:    float64(pi.Amount) / 100,
		Currency:  string(pi.Currency),
	}, nil
}

func (s *StripeProvider) Refund(ctx context.Context, request *RefundRequest) (*RefundResult, error) {
	params := newRefundParams(request)
	params.Context = ctx

	refund, err := s.client.Refunds.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create stripe refund: %w", err)
	}

	return &RefundResult{
		RefundID:  refund.ID,
		Status:    string(refund.Status),
		Amount:    float64(refund.Amount) / 100,
		Currency:  string(refund.Currency),
		CreatedAt: refund.Created,
	}, nil
}

// newRefundParams keys the refund by whichever id VerifyCharge recorded: the
// settled charge (ch_) when the intent had one, otherwise the intent itself.
// Stripe accepts only its three enum reasons, so free-text admin reasons
// travel as metadata instead.
func newRefundParams(request *RefundRequest) *stripe.RefundParams {
	params := &stripe.RefundParams{}

	if strings.HasPrefix(request.PaymentID, "pi_") {
		params.PaymentIntent = stripe.String(request.PaymentID)
	} else {
		params.Charge = stripe.String(request.PaymentID)
	}

	if reason := refundReason(request.Reason); reason != "" {
		params.Reason = stripe.String(reason)
	}
	if request.Reason != "" {
		params.AddMetadata("reason", request.Reason)
	}

	if request.Amount > 0 {
		params.Amount = stripe.Int64(int64(request.Amount * 100))
	}

	return params
}

func refundReason(reason string) string {
	switch stripe.RefundReason(reason) {
	case stripe.RefundReasonDuplicate, stripe.RefundReasonFraudulent, stripe.RefundReasonRequestedByCustomer:
		return reason
	}
	return ""
}

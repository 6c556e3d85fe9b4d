package payment

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestProviderCreateAndVerify(t *testing.T) {
	p := NewTestProvider()
	ctx := context.Background()

	charge, err := p.CreateCharge(ctx, &ChargeRequest{
		Amount:   500,
		Currency: "INR",
		Receipt:  "CF-20260828-123456",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(charge.OrderID, "TEST-"))
	assert.Equal(t, ChargeStatusSucceeded, charge.Status)
	assert.Equal(t, 500.0, charge.Amount)

	result, err := p.VerifyCharge(ctx, &VerificationRequest{OrderID: charge.OrderID})
	require.NoError(t, err)
	assert.True(t, result.Verified)
	assert.Equal(t, charge.OrderID, result.PaymentID)
	assert.Equal(t, 500.0, result.Amount)
}

func TestTestProviderRejectsUnknownCharge(t *testing.T) {
	p := NewTestProvider()

	_, err := p.VerifyCharge(context.Background(), &VerificationRequest{OrderID: "TEST-UNKNOWN"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown test charge")
}

func TestTestProviderRefund(t *testing.T) {
	p := NewTestProvider()

	refund, err := p.Refund(context.Background(), &RefundRequest{
		PaymentID: "TEST-ABCDEFGH23456789",
		Amount:    250,
		Reason:    "donor request",
	})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(refund.RefundID, "RF-TEST-"))
	assert.Equal(t, "processed", refund.Status)
	assert.Equal(t, 250.0, refund.Amount)
}

func TestRegistry(t *testing.T) {
	p := NewTestProvider()
	r := NewRegistry(p)

	got, err := r.Get(GatewayTest)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = r.Get("paypal")
	assert.Error(t, err)

	assert.Equal(t, []string{GatewayTest}, r.Names())
}

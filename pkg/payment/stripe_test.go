package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefundParamsKeysByRecordedID(t *testing.T) {
	params := newRefundParams(&RefundRequest{PaymentID: "ch_123", Amount: 150})
	require.NotNil(t, params.Charge)
	assert.Equal(t, "ch_123", *params.Charge)
	assert.Nil(t, params.PaymentIntent)
	require.NotNil(t, params.Amount)
	assert.Equal(t, int64(15000), *params.Amount)

	params = newRefundParams(&RefundRequest{PaymentID: "pi_456"})
	require.NotNil(t, params.PaymentIntent)
	assert.Equal(t, "pi_456", *params.PaymentIntent)
	assert.Nil(t, params.Charge)
	assert.Nil(t, params.Amount)
}

func TestNewRefundParamsReasonMapping(t *testing.T) {
	params := newRefundParams(&RefundRequest{PaymentID: "ch_1", Reason: "duplicate"})
	require.NotNil(t, params.Reason)
	assert.Equal(t, "duplicate", *params.Reason)

	// Free-text reasons are not part of Stripe's enum and would be rejected;
	// they ride along as metadata only.
	params = newRefundParams(&RefundRequest{PaymentID: "ch_1", Reason: "donor changed their mind"})
	assert.Nil(t, params.Reason)
	assert.Equal(t, "donor changed their mind", params.Metadata["reason"])

	params = newRefundParams(&RefundRequest{PaymentID: "ch_1"})
	assert.Nil(t, params.Reason)
}

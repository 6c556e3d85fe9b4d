package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRazorpaySignCheckout(t *testing.T) {
	p := NewRazorpayProvider("rzp_test_key", "secret")

	mac := hmac.New(sha256.New, []byte("secret"))
	mac.Write([]byte("order_abc|pay_xyz"))
	want := hex.EncodeToString(mac.Sum(nil))

	assert.Equal(t, want, p.signCheckout("order_abc", "pay_xyz"))
}

func TestRazorpayVerifyRejectsBadSignature(t *testing.T) {
	p := NewRazorpayProvider("rzp_test_key", "secret")

	_, err := p.VerifyCharge(context.Background(), &VerificationRequest{
		OrderID:   "order_abc",
		PaymentID: "pay_xyz",
		Signature: "deadbeef",
	})
	assert.ErrorIs(t, err, ErrSignatureMismatch)
}

func TestNumericConversionHelpers(t *testing.T) {
	assert.Equal(t, int64(42), toInt64(float64(42)))
	assert.Equal(t, int64(42), toInt64(int64(42)))
	assert.Equal(t, int64(0), toInt64("not a number"))

	assert.Equal(t, 42.5, toFloat64(42.5))
	assert.Equal(t, 42.0, toFloat64(int64(42)))
	assert.Equal(t, 0.0, toFloat64(nil))

	assert.Equal(t, "INR", toString("INR"))
	assert.Equal(t, "", toString(nil))
}

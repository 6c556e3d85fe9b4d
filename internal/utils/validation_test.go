package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		want  bool
	}{
		{"valid ten digits", "9876543210", true},
		{"too short", "987654321", false},
		{"too long", "98765432101", false},
		{"with country code", "+919876543210", false},
		{"letters", "98765abcde", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidPhone(tt.phone))
		})
	}
}

func TestIsValidUPIHandle(t *testing.T) {
	assert.True(t, IsValidUPIHandle("someone@okhdfc"))
	assert.True(t, IsValidUPIHandle("first.last@ybl"))
	assert.False(t, IsValidUPIHandle("someone"))
	assert.False(t, IsValidUPIHandle("@bank"))
	assert.False(t, IsValidUPIHandle("someone@"))
}

func TestIsValidCouponCode(t *testing.T) {
	assert.True(t, IsValidCouponCode("MED2345ABCD"))
	assert.True(t, IsValidCouponCode("FOO123456"))
	assert.False(t, IsValidCouponCode("med2345abcd"), "lowercase rejected")
	assert.False(t, IsValidCouponCode("ME1234567"), "prefix must be letters")
	assert.False(t, IsValidCouponCode("MED12"), "too short")
}

func TestValidatePasswordStrength(t *testing.T) {
	assert.NoError(t, ValidatePasswordStrength("secret123"))
	assert.Error(t, ValidatePasswordStrength("short1"))
	assert.Error(t, ValidatePasswordStrength("onlyletters"))
	assert.Error(t, ValidatePasswordStrength("12345678"))
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "hello", SanitizeString("  hello  "))
	assert.Equal(t, "hello", SanitizeString("<b>hello</b>"))
	assert.Equal(t, "alert('x')", SanitizeString("<script>alert('x')</script>"))
}

func TestNormalizeCouponCode(t *testing.T) {
	assert.Equal(t, "MED2345ABCD", NormalizeCouponCode("  med2345abcd "))
}

func TestValidateStructCustomTags(t *testing.T) {
	type form struct {
		Phone string `validate:"required,indian_phone"`
		UPI   string `validate:"omitempty,upi_handle"`
	}

	assert.NoError(t, ValidateStruct(&form{Phone: "9876543210"}))
	assert.Error(t, ValidateStruct(&form{Phone: "12345"}))
	assert.Error(t, ValidateStruct(&form{Phone: "9876543210", UPI: "nothandle"}))
}

package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCouponCode(t *testing.T) {
	tests := []struct {
		name       string
		category   string
		wantPrefix string
	}{
		{"medical", "medical", "MED"},
		{"food", "food", "FOO"},
		{"short category padded", "ab", "ABX"},
		{"empty category padded", "", "XXX"},
		{"non-letters stripped", "a-1b", "ABX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code := GenerateCouponCode(tt.category)
			assert.True(t, strings.HasPrefix(code, tt.wantPrefix), "code %q", code)
			assert.Len(t, code, CouponCategoryPrefixLen+CouponCodeRandomLength)
			assert.True(t, IsValidCouponCode(code), "generated code should pass validation: %q", code)
		})
	}
}

func TestGenerateCouponCodeAvoidsConfusables(t *testing.T) {
	for i := 0; i < 200; i++ {
		code := GenerateCouponCode("medical")
		suffix := code[CouponCategoryPrefixLen:]
		assert.NotContains(t, suffix, "0")
		assert.NotContains(t, suffix, "O")
		assert.NotContains(t, suffix, "I")
		assert.NotContains(t, suffix, "L")
	}
}

func TestGenerateRandomNumericString(t *testing.T) {
	s := GenerateRandomNumericString(12)
	assert.Len(t, s, 12)
	for _, r := range s {
		assert.True(t, r >= '0' && r <= '9', "unexpected rune %q", r)
	}
}

func TestGenerateUPIReference(t *testing.T) {
	ref := GenerateUPIReference()
	assert.True(t, strings.HasPrefix(ref, "UPI"))
	assert.Len(t, ref, 15)
}

func TestGenerateTestTransactionID(t *testing.T) {
	id := GenerateTestTransactionID()
	assert.True(t, strings.HasPrefix(id, "TEST-"))
	assert.Len(t, id, 21)
	assert.Equal(t, strings.ToUpper(id), id)
}

func TestSecureRandomInt(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := SecureRandomInt(10)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 10)
	}
}

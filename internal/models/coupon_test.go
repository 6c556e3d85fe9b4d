package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validCoupon() *Coupon {
	now := time.Now()
	return &Coupon{
		Code:   "MED2345ABCD",
		Status: CouponStatusActive,
		Validity: CouponValidity{
			StartDate: now.Add(-24 * time.Hour),
			EndDate:   now.Add(24 * time.Hour),
			IsActive:  true,
		},
		Usage: CouponUsage{MaxUses: 1, UsedCount: 0},
	}
}

func TestCouponRedeemabilityReason(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name       string
		mutate     func(c *Coupon)
		redeemable bool
		reason     string
	}{
		{"fresh coupon", func(c *Coupon) {}, true, ""},
		{"already redeemed", func(c *Coupon) { c.Status = CouponStatusRedeemed }, false, "Coupon has already been fully redeemed"},
		{"inactive", func(c *Coupon) { c.Status = CouponStatusInactive }, false, "Coupon is no longer active"},
		{"validity suspended", func(c *Coupon) { c.Validity.IsActive = false }, false, "Coupon validity has been suspended"},
		{"expired", func(c *Coupon) { c.Validity.EndDate = now.Add(-time.Hour) }, false, "Coupon is expired or not yet valid"},
		{"not yet valid", func(c *Coupon) { c.Validity.StartDate = now.Add(time.Hour) }, false, "Coupon is expired or not yet valid"},
		{"usage exhausted", func(c *Coupon) { c.Usage.UsedCount = 1 }, false, "Coupon usage limit reached"},
		{"unlimited ignores count", func(c *Coupon) { c.Usage.IsUnlimited = true; c.Usage.UsedCount = 99 }, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCoupon()
			tt.mutate(c)

			ok, reason := c.RedeemabilityReason(now)
			assert.Equal(t, tt.redeemable, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestCouponIsExpired(t *testing.T) {
	c := validCoupon()
	assert.False(t, c.IsExpired(time.Now()))
	assert.True(t, c.IsExpired(c.Validity.EndDate.Add(time.Minute)))
	assert.True(t, c.IsExpired(c.Validity.StartDate.Add(-time.Minute)))
}

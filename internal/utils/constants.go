package utils

import "time"

// Application Constants
const (
	AppName    = "CareFoundation"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency = "INR"
	DefaultTimeZone = "Asia/Kolkata"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 8
	PasswordMaxLength  = 128
	ResetTokenTTL      = 30 * time.Minute
	VerifyTokenTTL     = 48 * time.Hour

	// Donation Constants
	MinDonationAmount = 10.0
	MaxDonationAmount = 1000000.0

	// Coupon Constants
	CouponCodeRandomLength  = 8
	CouponCategoryPrefixLen = 3
	DefaultCouponValidity   = 90 // days
	MaxCouponsPerPurchase   = 100

	// File Upload
	MaxImageSize     = 5 * 1024 * 1024 // 5MB
	PartnerThumbSize = 480             // px, longest edge

	// Rate Limiting
	DefaultRateLimit = 100
	LoginRateLimit   = 5
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrUserNotFound       = "user not found"
	ErrUserExists         = "user already exists"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrConflict           = "conflict"
	ErrValidationFailed   = "validation failed"
	ErrPaymentFailed      = "payment failed"
	ErrCampaignNotFound   = "campaign not found"
	ErrCouponNotFound     = "coupon not found"
	ErrPackageNotFound    = "coupon package not found"
)

// Cache Keys
const (
	CacheUserPrefix     = "user:"
	CacheCampaignPrefix = "campaign:"
	CacheCouponPrefix   = "coupon:"
	CachePackagePrefix  = "package:"
	CachePartnerPrefix  = "partner:"
	CacheWalletPrefix   = "wallet:"
	CacheResetPrefix    = "reset:"
	CacheVerifyPrefix   = "verify:"
	CacheRateLimitPrefix = "rate_limit:"
)

// Event Types
const (
	EventUserRegistered    = "user_registered"
	EventUserLogin         = "user_login"
	EventDonationCreated   = "donation_created"
	EventDonationCompleted = "donation_completed"
	EventDonationRefunded  = "donation_refunded"
	EventCouponsIssued     = "coupons_issued"
	EventCouponRedeemed    = "coupon_redeemed"
	EventCouponSettled     = "coupon_settled"
	EventPaymentVerified   = "payment_verified"
)

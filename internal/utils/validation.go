package utils

import (
	"errors"
	"regexp"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

var (
	phoneRegex = regexp.MustCompile(`^\d{10}$`)
	upiRegex   = regexp.MustCompile(`^[a-zA-Z0-9.\-_]{2,}@[a-zA-Z]{2,}$`)
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	codeRegex  = regexp.MustCompile(`^[A-Z]{3}[A-Z0-9]{6,12}$`)
)

func init() {
	validate = validator.New()

	validate.RegisterValidation("indian_phone", validatePhone)
	validate.RegisterValidation("upi_handle", validateUPIHandle)
	validate.RegisterValidation("coupon_code", validateCouponCode)
	validate.RegisterValidation("strong_password", validateStrongPassword)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// ValidationErrors flattens validator.ValidationErrors into a field->message
// map for the error envelope.
func ValidationErrors(err error) map[string]string {
	details := make(map[string]string)
	var vErrs validator.ValidationErrors
	if errors.As(err, &vErrs) {
		for _, fe := range vErrs {
			details[strings.ToLower(fe.Field())] = "failed on '" + fe.Tag() + "' validation"
		}
	}
	return details
}

func validatePhone(fl validator.FieldLevel) bool {
	return IsValidPhone(fl.Field().String())
}

func validateUPIHandle(fl validator.FieldLevel) bool {
	return IsValidUPIHandle(fl.Field().String())
}

func validateCouponCode(fl validator.FieldLevel) bool {
	return IsValidCouponCode(fl.Field().String())
}

func validateStrongPassword(fl validator.FieldLevel) bool {
	return ValidatePasswordStrength(fl.Field().String()) == nil
}

// IsValidPhone accepts exactly ten digits, the format the platform stores.
func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

func IsValidUPIHandle(upi string) bool {
	return upiRegex.MatchString(upi)
}

func IsValidCouponCode(code string) bool {
	return codeRegex.MatchString(code)
}

func IsValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

func ValidatePasswordStrength(password string) error {
	if len(password) < PasswordMinLength {
		return errors.New("password too short")
	}
	if len(password) > PasswordMaxLength {
		return errors.New("password too long")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return errors.New("password must contain letters and digits")
	}
	return nil
}

func SanitizeString(input string) string {
	htmlRegex := regexp.MustCompile(`<[^>]*>`)
	cleaned := htmlRegex.ReplaceAllString(input, "")
	return strings.TrimSpace(cleaned)
}

// NormalizeCouponCode uppercases and trims a user-entered code.
func NormalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

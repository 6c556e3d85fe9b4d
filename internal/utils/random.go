package utils

import (
	"crypto/rand"
	"math/big"
	"strings"
)

const (
	letterBytes  = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberBytes  = "0123456789"
	alphanumeric = letterBytes + numberBytes
)

func GenerateRandomString(length int) string {
	return generateRandom(length, alphanumeric)
}

func GenerateRandomNumericString(length int) string {
	return generateRandom(length, numberBytes)
}

func generateRandom(length int, charset string) string {
	result := make([]byte, length)
	charsetLength := big.NewInt(int64(len(charset)))

	for i := range result {
		num, _ := rand.Int(rand.Reader, charsetLength)
		result[i] = charset[num.Int64()]
	}

	return string(result)
}

func SecureRandomInt(max int) int {
	n, _ := rand.Int(rand.Reader, big.NewInt(int64(max)))
	return int(n.Int64())
}

// GenerateCouponCode builds a human-readable coupon code: a category prefix
// followed by random alphanumerics, e.g. "FOO12345ABC". Confusable characters
// (0, O, I, L) are replaced so codes survive being read aloud or handwritten.
func GenerateCouponCode(category string) string {
	prefix := couponPrefix(category)
	code := strings.ToUpper(GenerateRandomString(CouponCodeRandomLength))

	code = strings.ReplaceAll(code, "0", "2")
	code = strings.ReplaceAll(code, "O", "3")
	code = strings.ReplaceAll(code, "I", "4")
	code = strings.ReplaceAll(code, "L", "5")

	return prefix + code
}

func couponPrefix(category string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(category))
	var letters []rune
	for _, r := range cleaned {
		if r >= 'A' && r <= 'Z' {
			letters = append(letters, r)
		}
		if len(letters) == CouponCategoryPrefixLen {
			break
		}
	}
	for len(letters) < CouponCategoryPrefixLen {
		letters = append(letters, 'X')
	}
	return string(letters)
}

// GenerateUPIReference builds a reference id for out-of-band UPI payments.
func GenerateUPIReference() string {
	return "UPI" + GenerateRandomNumericString(12)
}

// GenerateTestTransactionID builds a transaction id for the test gateway path.
func GenerateTestTransactionID() string {
	return "TEST-" + strings.ToUpper(GenerateRandomString(16))
}

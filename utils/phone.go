package utils

import (
	"regexp"
	"strings"
)

var (
	nonDigits = regexp.MustCompile(`\D`)
	// Safaricom mobile ranges: 07xx and 01xx numbers, international form.
	kenyanMobile = regexp.MustCompile(`^254[17]\d{8}$`)
)

// FormatPhoneNumber converts the common local ways of writing a Kenyan
// mobile number (0712345678, +254712345678, 712345678, "0712 345 678") into
// the canonical 254712345678 form the Daraja API expects. It never errors;
// input it cannot interpret is returned digits-only and left for
// IsValidPhoneNumber to reject.
func FormatPhoneNumber(input string) string {
	digits := nonDigits.ReplaceAllString(input, "")

	switch {
	case strings.HasPrefix(digits, "254"):
		return digits
	case strings.HasPrefix(digits, "0") && len(digits) == 10:
		return "254" + digits[1:]
	case len(digits) == 9 && (strings.HasPrefix(digits, "7") || strings.HasPrefix(digits, "1")):
		return "254" + digits
	default:
		return digits
	}
}

// IsValidPhoneNumber reports whether phone is a canonical Kenyan mobile
// number: 12 digits, 254 country code, 7xx or 1xx network range.
func IsValidPhoneNumber(phone string) bool {
	return kenyanMobile.MatchString(phone)
}

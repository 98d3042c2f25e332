package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatPhoneNumber(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"local leading zero", "0712345678", "254712345678"},
		{"international plus", "+254712345678", "254712345678"},
		{"already canonical", "254712345678", "254712345678"},
		{"bare subscriber", "712345678", "254712345678"},
		{"airtel style 01xx", "0110123456", "254110123456"},
		{"with spaces", "0712 345 678", "254712345678"},
		{"with dashes", "0712-345-678", "254712345678"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatPhoneNumber(tc.input))
		})
	}
}

func TestFormatThenValidateRoundTrip(t *testing.T) {
	valid := []string{
		"0712345678",
		"+254712345678",
		"254712345678",
		"712345678",
		"0110123456",
		"0798765432",
	}
	for _, input := range valid {
		assert.Truef(t, IsValidPhoneNumber(FormatPhoneNumber(input)),
			"expected %q to normalize to a valid number", input)
	}
}

func TestIsValidPhoneNumberRejectsMalformed(t *testing.T) {
	invalid := []string{
		"",
		"abc",
		"07123",          // too short
		"07123456789012", // too long
		"254812345678",   // non-mobile range
		"255712345678",   // wrong country code
		"07x12y3",        // letters mixed into a short digit run
	}
	for _, input := range invalid {
		assert.Falsef(t, IsValidPhoneNumber(FormatPhoneNumber(input)),
			"expected %q to be rejected", input)
	}
}

// Package phone provides phone number utilities.
// This is part of the platform layer and contains no business logic.
package phone

import (
	"fmt"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "US"

// Digits strips every non-digit character from the input.
func Digits(input string) string {
	var b strings.Builder
	for _, r := range input {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Valid10Digits reports whether the input contains exactly ten digits once
// formatting punctuation is stripped. This is the intake validation rule.
func Valid10Digits(input string) bool {
	return len(Digits(input)) == 10
}

// FormatNational progressively formats accumulated digits as (XXX) XXX-XXXX.
// Inputs with fewer than four digits are returned as bare digits. Cosmetic
// only; validation always runs against the stripped digits.
func FormatNational(input string) string {
	digits := Digits(input)
	if len(digits) > 10 {
		digits = digits[:10]
	}
	switch {
	case len(digits) < 4:
		return digits
	case len(digits) < 7:
		return fmt.Sprintf("(%s) %s", digits[:3], digits[3:])
	default:
		return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
	}
}

// NormalizeE164 formats a phone number to E.164. If parsing fails, it returns the trimmed input.
func NormalizeE164(input string) string {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}

	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}

	return phonenumbers.Format(number, phonenumbers.E164)
}

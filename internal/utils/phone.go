package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "TR"

// NormalizePhone canonicalizes a phone number to E.164 so that differently
// formatted inputs for the same number compare equal. "0555 123 45 67",
// "5551234567" and "+90 555 123 45 67" all normalize to "+905551234567".
func NormalizePhone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(raw, defaultRegion)
	if err == nil && phonenumbers.IsValidNumber(parsed) {
		return phonenumbers.Format(parsed, phonenumbers.E164)
	}

	// Fallback for inputs the parser rejects: keep digits, apply the
	// Turkish country code the storefront operates with.
	digits := keepDigits(raw)
	switch {
	case len(digits) == 10:
		return "+90" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return "+90" + digits[1:]
	case len(digits) == 12 && strings.HasPrefix(digits, "90"):
		return "+" + digits
	default:
		return "+" + digits
	}
}

func keepDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

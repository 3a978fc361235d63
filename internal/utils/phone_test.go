package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"spaced local format", "0555 123 45 67", "+905551234567"},
		{"bare subscriber number", "5551234567", "+905551234567"},
		{"country code with plus", "+90 555 123 45 67", "+905551234567"},
		{"country code without plus", "905551234567", "+905551234567"},
		{"dashes and parens", "(0555) 123-45-67", "+905551234567"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhoneSameNumberDifferentFormats(t *testing.T) {
	variants := []string{
		"0555 123 45 67",
		"5551234567",
		"+905551234567",
		"90 555 123 4567",
	}

	canonical := NormalizePhone(variants[0])
	for _, v := range variants[1:] {
		assert.Equal(t, canonical, NormalizePhone(v), "variant %q", v)
	}
}

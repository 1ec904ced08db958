package service

import (
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// sanitizeUTF8 removes invalid UTF-8 sequences from model output before it is
// stored or sent to Postgres.
func sanitizeUTF8(s string) string {
	if utf8.ValidString(s) {
		return s
	}

	var result strings.Builder
	result.Grow(len(s))

	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		if r == utf8.RuneError && size == 1 {
			s = s[1:]
			continue
		}
		result.WriteRune(r)
		s = s[size:]
	}

	return result.String()
}

// formatSoles renders an amount as "S/12.50".
func formatSoles(amount float64) string {
	return "S/" + decimal.NewFromFloat(amount).StringFixed(2)
}

// Package core holds the Pengeplan record types and the parsing helpers
// shared by the engine and the host application.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmount converts user-entered kroner to a float.
//
// Both dot (12.34) and comma (12,34) decimal separators are accepted, and
// spaces (including non-breaking ones) may be used as thousand separators.
// Negative, signed, empty or otherwise malformed input returns ErrInvalidAmount.
//
// Examples:
//
//	ParseAmount("12.50")     -> 12.5, nil
//	ParseAmount("12,50")     -> 12.5, nil
//	ParseAmount("1 250 000") -> 1250000, nil
//	ParseAmount("1.2.3")     -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "kr")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.Map(func(r rune) rune {
		if r == ' ' || r == '\u00a0' || r == '\u202f' {
			return -1
		}
		return r
	}, s)
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	for _, p := range parts {
		for _, r := range p {
			if !unicode.IsDigit(r) {
				return 0, ErrInvalidAmount
			}
		}
	}
	if parts[0] == "" && (len(parts) == 1 || parts[1] == "") {
		return 0, ErrInvalidAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || isInfOrNaN(v) {
		return 0, ErrInvalidAmount
	}
	return v, nil
}

// Package textutil provides locale-aware coercion helpers for scraped text.
package textutil

import (
	"fmt"
	"strconv"
	"strings"
)

// IsPlaceholder reports whether a scraped value is a placeholder token that
// must never be retained in a record.
func IsPlaceholder(s string) bool {
	return s == "" || s == "-"
}

// CleanText collapses runs of whitespace into single spaces and trims the
// result.
func CleanText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// CleanMeasurement strips a unit suffix such as "cm" or "km" and surrounding
// whitespace from a raw cell value.
func CleanMeasurement(raw, unit string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, unit, "")
	return strings.TrimSpace(s)
}

// ParseLocalizedDecimal parses a number that may use a comma decimal
// separator and dot thousands separators ("1.234,5" -> 1234.5).
func ParseLocalizedDecimal(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty value")
	}
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse decimal %q: %w", raw, err)
	}
	return f, nil
}

// ParseOpenTotal splits text on the first occurrence of the language's
// conjunction keyword ("5 von 10 Liften") and parses each side as an integer
// independently. The right side takes only its leading numeric token. A
// failure on one side leaves that side nil without discarding the other.
func ParseOpenTotal(text, conjunction string) (open, total *int) {
	left, right, found := strings.Cut(text, conjunction)
	if !found {
		return nil, nil
	}
	if n, err := strconv.Atoi(strings.TrimSpace(left)); err == nil {
		open = &n
	}
	if tok := firstToken(right); tok != "" {
		if n, err := strconv.Atoi(tok); err == nil {
			total = &n
		}
	}
	return open, total
}

// ParseOpenTotalKm is the float variant of ParseOpenTotal for distance pairs
// like "10,8 km von 31,1 km". The unit is stripped before parsing and comma
// decimals are tolerated on both sides.
func ParseOpenTotalKm(text, conjunction string) (open, total *float64) {
	cleaned := strings.ReplaceAll(text, "km", "")
	left, right, found := strings.Cut(cleaned, conjunction)
	if !found {
		return nil, nil
	}
	if f, err := ParseLocalizedDecimal(left); err == nil {
		open = &f
	}
	if tok := firstToken(right); tok != "" {
		if f, err := ParseLocalizedDecimal(tok); err == nil {
			total = &f
		}
	}
	return open, total
}

func firstToken(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

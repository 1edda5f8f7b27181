package services

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// ParseCurrency parses Brazilian and plain monetary strings such as
// "R$ 10.000,50", "10000.50" or "1.234.567". Everything but digits, dots and
// commas is dropped first. A comma marks the decimal part unless a dot follows
// it ("1,234.56"). Without a comma, several dots or a single dot followed by
// exactly three digits are thousands separators.
func ParseCurrency(s string) (float64, bool) {
	var b strings.Builder
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
			b.WriteRune(r)
		case r == '.' || r == ',':
			b.WriteRune(r)
		}
	}
	if digits == 0 {
		return 0, false
	}
	cleaned := b.String()

	lastComma := strings.LastIndex(cleaned, ",")
	lastDot := strings.LastIndex(cleaned, ".")

	switch {
	case lastComma >= 0 && lastDot > lastComma:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case lastComma >= 0 && strings.Count(cleaned, ",") > 1 && lastDot < 0:
		cleaned = strings.ReplaceAll(cleaned, ",", "")
	case lastComma >= 0:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
		cleaned = strings.Replace(cleaned, ",", ".", 1)
	case strings.Count(cleaned, ".") > 1:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	case lastDot >= 0 && len(cleaned)-lastDot-1 == 3:
		cleaned = strings.ReplaceAll(cleaned, ".", "")
	}

	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// parseNumber reads a JSON-decoded value as a float. Strings go through
// ParseCurrency; booleans and anything else are not numbers.
func parseNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n) && !math.IsInf(n, 0)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		return ParseCurrency(n)
	}
	return 0, false
}

// parseScore reads a 1-10 score, rounding fractional values
func parseScore(v any) (int, bool) {
	var f float64
	switch s := v.(type) {
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		var ok bool
		if f, ok = parseNumber(v); !ok {
			return 0, false
		}
	}
	score := int(math.Round(f))
	if score < 1 || score > 10 {
		return 0, false
	}
	return score, true
}

// parseDays reads a non-negative day count
func parseDays(v any) (int, bool) {
	f, ok := parseNumber(v)
	if !ok || f < 0 {
		return 0, false
	}
	return int(math.Round(f)), true
}

package services

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// asMap returns v as an object, decoding JSON text when needed
func asMap(v any) map[string]any {
	switch m := v.(type) {
	case map[string]any:
		return m
	case string:
		s := strings.TrimSpace(m)
		if !strings.HasPrefix(s, "{") {
			return nil
		}
		var out map[string]any
		if err := json.Unmarshal([]byte(s), &out); err != nil {
			return nil
		}
		return out
	}
	return nil
}

// asString returns v as trimmed text. Numbers are formatted without exponent.
func asString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case int64:
		return strconv.FormatInt(s, 10)
	case json.Number:
		return s.String()
	}
	return ""
}

// firstString returns the first non-empty string among keys
func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asString(m[k]); s != "" {
			return s
		}
	}
	return ""
}

// asYes reads the affirmative forms found in the sources: true, "sim", "true"
func asYes(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		switch strings.ToLower(strings.TrimSpace(b)) {
		case "sim", "true", "s", "yes":
			return true
		}
	}
	return false
}

// asStrings reads a list of strings, or a single string as a one element list
func asStrings(v any) []string {
	switch list := v.(type) {
	case []string:
		return list
	case []any:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if s := asString(item); s != "" {
				out = append(out, s)
			}
		}
		return out
	case string:
		if s := strings.TrimSpace(list); s != "" {
			return []string{s}
		}
	}
	return nil
}

// parseDate reads a raw date value with ParseDate
func parseDate(v any) (time.Time, bool) {
	t, err := ParseDate(asString(v))
	return t, err == nil
}

// rawID renders a raw id, falling back to the 1-based position
func rawID(v any, index int) string {
	if s := asString(v); s != "" {
		return s
	}
	return fmt.Sprintf("%d", index+1)
}

package errors

import (
	"regexp"
	"time"
	"unicode"
)

// dayKeyRegex matches calendar day keys in YYYY-MM-DD form.
var dayKeyRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidateDayKey validates a calendar day key.
// Keys must be exact YYYY-MM-DD strings naming a real calendar date;
// anything else (timestamps, slashes, out-of-range months) is rejected.
func ValidateDayKey(key string) error {
	if key == "" {
		return New(ErrCodeInvalidData, "day key cannot be empty")
	}

	if !dayKeyRegex.MatchString(key) {
		return New(ErrCodeInvalidData, "day key must be YYYY-MM-DD: %q", key)
	}

	if _, err := time.Parse("2006-01-02", key); err != nil {
		return New(ErrCodeInvalidData, "day key is not a valid date: %q", key)
	}

	return nil
}

// hexColorRegex matches #rgb and #rrggbb CSS hex colors.
var hexColorRegex = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateHexColor validates a CSS hex color string.
func ValidateHexColor(color string) error {
	if color == "" {
		return New(ErrCodeInvalidSpec, "color cannot be empty")
	}

	if !hexColorRegex.MatchString(color) {
		return New(ErrCodeInvalidSpec, "color must be a hex color (#rgb or #rrggbb): %q", color)
	}

	return nil
}

// chartIDRegex matches canonical UUID chart identifiers.
var chartIDRegex = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

// ValidateChartID validates a chart identifier for safety and correctness.
// Identifiers travel in URLs and cache keys, so the validation is
// intentionally conservative:
//   - No empty ids
//   - No control characters
//   - Canonical lowercase UUID form only
func ValidateChartID(id string) error {
	if id == "" {
		return New(ErrCodeChartNotFound, "chart id cannot be empty")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeChartNotFound, "chart id contains invalid control characters")
		}
	}

	if !chartIDRegex.MatchString(id) {
		return New(ErrCodeChartNotFound, "chart id must be a lowercase UUID: %q", id)
	}

	return nil
}

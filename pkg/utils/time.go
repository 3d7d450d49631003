package utils

import (
	"fmt"
	"time"
)

// ParseUserDate parses a date string that can be either RFC3339 or YYYY-MM-DD.
// Effective dates for rate changes are calendar dates; a bare date is kept at
// midnight UTC so the history ordering stays stable across time zones.
func ParseUserDate(dateStr string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, dateStr)
	if err == nil {
		return t, nil
	}

	t, err = time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date format, expected RFC3339 or YYYY-MM-DD, got %s", dateStr)
	}

	return t, nil
}

// AddYears advances a date by whole years, the interval unit used by standard
// increase policies.
func AddYears(t time.Time, years int) time.Time {
	return t.AddDate(years, 0, 0)
}

package model

import (
	"fmt"
	"time"
)

// DateLayout is the canonical broadcast timestamp format.
// It must round-trip exactly: FormatDate(ParseDate(s)) == s.
const DateLayout = "2006.01.02 - 15:04:05"

// FormatDate formats a timestamp in the canonical broadcast format.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a canonical broadcast timestamp. An unparsable timestamp
// invalidates the whole record it belongs to.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

package model

import (
	"fmt"
	"time"
)

// DateLayout is the dd/mm/yyyy format used for every date exchanged with the
// presentation layer and stored in the database.
const DateLayout = "02/01/2006"

// ParseDate parses a dd/mm/yyyy boundary string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: expected dd/mm/yyyy", s)
	}
	return t, nil
}

// FormatDate renders t in the boundary layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOrNow returns s unchanged when it is a well-formed boundary date, and
// now in the boundary layout otherwise. The second result reports whether s
// was valid, so callers can log the substitution; a bad stored date is never
// fatal at load time.
func DateOrNow(s string, now time.Time) (string, bool) {
	if _, err := ParseDate(s); err != nil {
		return FormatDate(now), false
	}
	return s, true
}

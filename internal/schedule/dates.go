package schedule

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// Today returns the current local date as YYYY-MM-DD with no time component.
// Calculators never call this themselves; callers pass an explicit asOf date.
func Today() string {
	return time.Now().Format(dateLayout)
}

// ParseDate validates a YYYY-MM-DD date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// AddDays adds n calendar days to a YYYY-MM-DD date. Dates are rebuilt from
// explicit year/month/day components in UTC, never by adding a duration to a
// timestamp, so the result cannot drift across DST or timezone boundaries.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(dateLayout), nil
}

// addDays is the internal variant used after a record has passed Validate.
// On a parse failure it returns the input unchanged.
func addDays(date string, n int) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.AddDate(0, 0, n).Format(dateLayout)
}

// WeekBounds returns the Monday and Sunday of the week containing asOf.
// Monday is always the start of the week; an asOf falling on a Sunday maps to
// the week ending on that same Sunday, not the following one.
func WeekBounds(asOf string) (start, end string) {
	t, err := ParseDate(asOf)
	if err != nil {
		return asOf, asOf
	}
	daysToMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysToMonday)
	return monday.Format(dateLayout), monday.AddDate(0, 0, 6).Format(dateLayout)
}

// WithinRange reports whether date falls in [start, end] inclusive.
// YYYY-MM-DD strings order lexicographically, so this is a pure string
// comparison with no re-parsing and no time-of-day involved.
func WithinRange(date, start, end string) bool {
	return date >= start && date <= end
}

// SameDay reports whether two YYYY-MM-DD dates are the same calendar day.
func SameDay(a, b string) bool {
	return a == b
}

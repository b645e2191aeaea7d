package inventory

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// DATE - Calendar date of a transaction row (day granularity, UTC)
// =============================================================================

type Date struct {
	Time time.Time
}

// Accepted source layouts. The English file uses ISO dates, the Japanese
// file uses 2025年06月15日. Single-digit month/day are accepted too.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2006年1月2日",
	"2006-1-2 15:04:05",
	"2006/1/2 15:04:05",
	time.RFC3339,
}

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses any of the supported layouts. Blank input is an error;
// callers that allow an unknown date check for blank first.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("%w: empty", ErrInvalidDate)
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return NewDate(t.Year(), t.Month(), t.Day()), nil
		}
	}
	return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// MustParseDate is for tests and fixtures.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool { return d.Time.Before(other.Time) }
func (d Date) After(other Date) bool  { return d.Time.After(other.Time) }
func (d Date) Equal(other Date) bool  { return d.Time.Equal(other.Time) }
func (d Date) IsZero() bool           { return d.Time.IsZero() }

// Month truncates to year-month granularity, e.g. "2025-06".
func (d Date) Month() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format("2006-01")
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format("2006-01-02")
}

// ParseMonth validates a YYYY-MM filter value and returns it normalized.
func ParseMonth(s string) (string, error) {
	t, err := time.Parse("2006-1", strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidMonth, s)
	}
	return t.Format("2006-01"), nil
}

/*
errors.go - Error types for the inventory model

PURPOSE:
  Sentinel errors shared by the resolver, the loader and the HTTP layer.
  Callers wrap them with context and test with errors.Is().

SEE ALSO:
  - date.go: ErrInvalidDate, ErrInvalidMonth
  - ingest/csv.go: wraps these with line and column details
*/
package inventory

import "errors"

var (
	// ErrInvalidDate is returned when a date cell matches none of the
	// supported layouts.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvalidMonth is returned when a month filter is not YYYY-MM.
	ErrInvalidMonth = errors.New("invalid month, expected YYYY-MM")

	// ErrNegativeUnits is returned for a row with units_sold < 0.
	ErrNegativeUnits = errors.New("units sold must not be negative")
)

// IsClientError returns true if the error is due to invalid input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidMonth) ||
		errors.Is(err, ErrNegativeUnits)
}

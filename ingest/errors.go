/*
errors.go - Loader errors

PURPOSE:
  A load either yields every row of the file or fails as a whole. These
  errors say why, precisely enough to fix the source file.

ERROR CATEGORIES:
  1. File errors   - empty file, undecodable encoding
  2. Header errors - a required column is missing (MissingColumnsError)
  3. Row errors    - a cell does not parse (RowError, with line + column)

USAGE:
  var rowErr *ingest.RowError
  if errors.As(err, &rowErr) {
      log.Printf("line %d column %s: %v", rowErr.Line, rowErr.Column, rowErr.Err)
  }
*/
package ingest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nissili/inventory-dashboard/locale"
)

var (
	// ErrEmptyFile is returned when the input has no header row.
	ErrEmptyFile = errors.New("empty file")

	// ErrMissingColumns is returned when no language's full column set is
	// present in the header.
	ErrMissingColumns = errors.New("missing required columns")

	// ErrInvalidRow is returned when a data row cannot be parsed.
	ErrInvalidRow = errors.New("invalid row")

	// ErrUnknownEncoding is returned for an unsupported encoding label.
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// MissingColumnsError lists required headers absent from the file.
type MissingColumnsError struct {
	Lang    locale.Lang
	Missing []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns for %s: %s", e.Lang, strings.Join(e.Missing, ", "))
}

func (e *MissingColumnsError) Unwrap() error {
	return ErrMissingColumns
}

// RowError locates a cell that failed to parse.
type RowError struct {
	Line   int
	Column string
	Value  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("line %d, column %q, value %q: %v", e.Line, e.Column, e.Value, e.Err)
}

// Unwrap exposes both ErrInvalidRow and the underlying cause.
func (e *RowError) Unwrap() []error {
	return []error{ErrInvalidRow, e.Err}
}

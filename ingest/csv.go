/*
Package ingest parses the inventory flat file into transaction rows.

PURPOSE:
  The loader is all-or-nothing. Parse reads the whole file, validates every
  cell and only then returns rows; store/sqlite swaps them in atomically.
  A bad file never reaches the store.

FILE FORMAT:
  CSV with one header row. The header must contain the eleven columns of
  one language (see locale.HeaderLabel). The bilingual export carries both
  sets side by side; Options.Locale picks one, default Japanese first.
  The other set's client, region and product cells become
  Result.Translations so the dashboard can show them in that language.

  Dates:   2025-06-15, 2025/6/15, 2025年06月15日 (see inventory.ParseDate)
  Numbers: thousands separators and ¥/円 marks are stripped
  Restock: free text, blank allowed ("not needing restock")

ERROR POLICY:
  Any unparseable date or number rejects the whole file with a *RowError
  naming the line and column. Rows are never silently dropped.

ENCODING:
  UTF-8 with or without BOM. Options.Encoding ("shift_jis", "euc-jp", ...)
  decodes legacy exports through golang.org/x/net/html/charset.

SEE ALSO:
  - header.go:          column detection
  - store/sqlite:       ReplaceInventory (stage then swap)
  - cmd/load:           command-line entry point
*/
package ingest

import (
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/net/html/charset"

	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

const bom = "\ufeff"

// Options control parsing.
type Options struct {
	// Locale forces the column set. Empty means auto-detect.
	Locale locale.Lang
	// Encoding is a WHATWG label; empty means UTF-8.
	Encoding string
}

// Result is a fully parsed file.
type Result struct {
	Rows         []inventory.Row
	Locale       locale.Lang
	Translations inventory.Translations
	Header       []string
	SHA256       string
}

// Parse reads and validates the whole input.
func Parse(r io.Reader, opts Options) (*Result, error) {
	hash := sha256.New()
	src, err := decoder(io.TeeReader(r, hash), opts.Encoding)
	if err != nil {
		return nil, err
	}

	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyFile
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	lang, cols, err := detectColumns(header, opts.Locale)
	if err != nil {
		return nil, err
	}

	alts := altColumns(header, lang)
	tr := inventory.Translations{}

	var rows []inventory.Row
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRow, err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}

		row, err := parseRecord(record, cols, lang, line)
		if err != nil {
			return nil, err
		}
		row.Seq = int64(len(rows) + 1)
		rows = append(rows, row)

		for alt, altCols := range alts {
			c := &cellReader{record: record, cols: altCols}
			tr.Add(alt, locale.FieldClient, row.Client, c.text(locale.FieldClient))
			tr.Add(alt, locale.FieldRegion, row.Region, c.text(locale.FieldRegion))
			tr.Add(alt, locale.FieldProduct, row.Product, c.text(locale.FieldProduct))
		}
	}

	// Drain so the hash covers the whole input even if the CSV reader
	// stopped early.
	if _, err := io.Copy(io.Discard, src); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	return &Result{
		Rows:         rows,
		Locale:       lang,
		Translations: tr,
		Header:       header,
		SHA256:       hex.EncodeToString(hash.Sum(nil)),
	}, nil
}

func decoder(r io.Reader, encoding string) (io.Reader, error) {
	enc := strings.ToLower(strings.TrimSpace(encoding))
	if enc == "" || enc == "utf-8" || enc == "utf8" {
		return r, nil
	}
	dr, err := charset.NewReaderLabel(enc, r)
	if err != nil {
		return nil, fmt.Errorf("%w %q: %v", ErrUnknownEncoding, encoding, err)
	}
	return dr, nil
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// =============================================================================
// CELL PARSING
// =============================================================================

type cellReader struct {
	record []string
	cols   columns
	lang   locale.Lang
	line   int
	err    error
}

func (c *cellReader) raw(f locale.Field) string {
	i := c.cols[f]
	if i >= len(c.record) {
		return ""
	}
	return strings.TrimSpace(c.record[i])
}

func (c *cellReader) fail(f locale.Field, value string, err error) {
	if c.err == nil {
		c.err = &RowError{Line: c.line, Column: locale.HeaderLabel(f, c.lang), Value: value, Err: err}
	}
}

func (c *cellReader) text(f locale.Field) string {
	return c.raw(f)
}

func (c *cellReader) date(f locale.Field, optional bool) inventory.Date {
	v := c.raw(f)
	if v == "" && optional {
		return inventory.Date{}
	}
	d, err := inventory.ParseDate(v)
	if err != nil {
		c.fail(f, v, err)
	}
	return d
}

func (c *cellReader) integer(f locale.Field) int64 {
	v := c.raw(f)
	n, err := parseInt(v)
	if err != nil {
		c.fail(f, v, err)
	}
	return n
}

func (c *cellReader) money(f locale.Field) decimal.Decimal {
	v := c.raw(f)
	d, err := parseMoney(v)
	if err != nil {
		c.fail(f, v, err)
	}
	return d
}

func parseRecord(record []string, cols columns, lang locale.Lang, line int) (inventory.Row, error) {
	c := &cellReader{record: record, cols: cols, lang: lang, line: line}

	row := inventory.Row{
		Date:            c.date(locale.FieldDate, false),
		Client:          c.text(locale.FieldClient),
		Region:          c.text(locale.FieldRegion),
		Product:         c.text(locale.FieldProduct),
		UnitsSold:       c.integer(locale.FieldUnitsSold),
		UnitPrice:       c.money(locale.FieldUnitPrice),
		Revenue:         c.money(locale.FieldRevenue),
		CurrentStock:    c.integer(locale.FieldCurrentStock),
		NeedsRestock:    c.text(locale.FieldNeedsRestock),
		ReorderLevel:    c.integer(locale.FieldReorderLevel),
		LastRestockDate: c.date(locale.FieldLastRestockDate, true),
	}
	if c.err == nil && row.UnitsSold < 0 {
		c.fail(locale.FieldUnitsSold, strconv.FormatInt(row.UnitsSold, 10), inventory.ErrNegativeUnits)
	}
	return row, c.err
}

var errNotNumber = errors.New("not a number")

var numberCleaner = strings.NewReplacer(",", "", "，", "", "¥", "", "￥", "", "円", "", " ", "")

// parseInt accepts "1,234" and integral floats such as "12.0", which
// spreadsheet exports produce for integer columns. Values outside int64 are
// rejected rather than truncated.
func parseInt(s string) (int64, error) {
	s = numberCleaner.Replace(s)
	if s == "" {
		return 0, errNotNumber
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil || !d.IsInteger() || !d.BigInt().IsInt64() {
		return 0, errNotNumber
	}
	return d.IntPart(), nil
}

func parseMoney(s string) (decimal.Decimal, error) {
	s = numberCleaner.Replace(s)
	if s == "" {
		return decimal.Zero, errNotNumber
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, errNotNumber
	}
	return d, nil
}

/*
Package export writes the filtered inventory table as a downloadable file.

FORMATS:
  xlsx: one sheet, bold header row, numbers stored as numbers
  csv:  UTF-8 with a byte order mark so Excel detects the encoding

Both use the display labels of the requested language and the same
column order as the dashboard table.
*/
package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

// BaseName is the download file name without extension.
const BaseName = "filtered_inventory"

// Format is a supported download format.
type Format string

const (
	FormatXLSX Format = "xlsx"
	FormatCSV  Format = "csv"
)

// ErrUnknownFormat is returned for anything other than xlsx or csv.
var ErrUnknownFormat = errors.New("unknown export format")

// ParseFormat accepts "xlsx" and "csv". Empty means xlsx.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "", FormatXLSX:
		return FormatXLSX, nil
	case FormatCSV:
		return FormatCSV, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FileName is the attachment name for f.
func (f Format) FileName() string {
	return BaseName + "." + string(f)
}

// ContentType is the MIME type for f.
func (f Format) ContentType() string {
	if f == FormatCSV {
		return "text/csv; charset=utf-8"
	}
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}

// Write dispatches to WriteXLSX or WriteCSV.
func Write(w io.Writer, f Format, rows []inventory.Row, lang locale.Lang) error {
	switch f {
	case FormatXLSX:
		return WriteXLSX(w, rows, lang)
	case FormatCSV:
		return WriteCSV(w, rows, lang)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// =============================================================================
// TABLE
// =============================================================================

// Table reshapes rows into display labels and string records.
func Table(rows []inventory.Row, lang locale.Lang) ([]string, [][]string) {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells := values(r, lang)
		record := make([]string, len(cells))
		for i, c := range cells {
			record[i] = formatCell(c)
		}
		records = append(records, record)
	}
	return locale.DisplayLabels(lang), records
}

// values returns the cells of r in locale.Fields order, typed for xlsx.
func values(r inventory.Row, lang locale.Lang) []any {
	lastRestock := ""
	if !r.LastRestockDate.IsZero() {
		lastRestock = locale.FormatDate(r.LastRestockDate.Time, lang)
	}
	return []any{
		locale.FormatDate(r.Date.Time, lang),
		r.Client,
		r.Region,
		r.Product,
		r.UnitsSold,
		r.UnitPrice.InexactFloat64(),
		r.Revenue.InexactFloat64(),
		r.CurrentStock,
		r.NeedsRestock,
		r.ReorderLevel,
		lastRestock,
	}
}

func formatCell(v any) string {
	switch c := v.(type) {
	case string:
		return c
	case int64:
		return strconv.FormatInt(c, 10)
	case float64:
		return strconv.FormatFloat(c, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}

// =============================================================================
// XLSX
// =============================================================================

// WriteXLSX writes rows as an Excel workbook with a single sheet.
func WriteXLSX(w io.Writer, rows []inventory.Row, lang locale.Lang) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := locale.Text(locale.KeyExportSheet, lang)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	labels := locale.DisplayLabels(lang)
	header := make([]any, len(labels))
	for i, l := range labels {
		header[i] = l
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}
	lastHeader, err := excelize.CoordinatesToCellName(len(labels), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(sheet, "A1", lastHeader, bold); err != nil {
		return fmt.Errorf("failed to style header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		cells := values(r, lang)
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// =============================================================================
// CSV
// =============================================================================

// WriteCSV writes rows as UTF-8 CSV with a leading byte order mark.
func WriteCSV(w io.Writer, rows []inventory.Row, lang locale.Lang) error {
	if _, err := io.WriteString(w, "\ufeff"); err != nil {
		return err
	}

	header, records := Table(rows, lang)
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return err
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("failed to write csv: %w", err)
	}
	return nil
}

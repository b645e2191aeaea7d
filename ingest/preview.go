package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/nissili/inventory-dashboard/inventory"
)

// Preview is a schema-free look at a CSV file: first rows, column list and
// per-column kind, for checking a file before loading it.
type Preview struct {
	Header  []string
	Head    [][]string
	Columns []ColumnInfo
	Rows    int
}

// ColumnInfo summarizes one column.
type ColumnInfo struct {
	Name     string
	NonBlank int
	Kind     string // int, number, date, text, empty
}

// PreviewFile reads the whole input, keeping the first n records.
func PreviewFile(r io.Reader, n int, encoding string) (*Preview, error) {
	src, err := decoder(r, encoding)
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

	p := &Preview{Header: header}
	kinds := make([]kindTracker, len(header))
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRow, err)
		}
		p.Rows++
		if len(p.Head) < n {
			p.Head = append(p.Head, append([]string(nil), record...))
		}
		for i := range kinds {
			if i < len(record) {
				kinds[i].observe(record[i])
			}
		}
	}

	for i, h := range header {
		p.Columns = append(p.Columns, ColumnInfo{
			Name:     h,
			NonBlank: kinds[i].nonBlank,
			Kind:     kinds[i].kind(),
		})
	}
	return p, nil
}

type kindTracker struct {
	nonBlank int
	ints     int
	numbers  int
	dates    int
}

func (k *kindTracker) observe(v string) {
	v = strings.TrimSpace(v)
	if v == "" {
		return
	}
	k.nonBlank++
	if _, err := parseInt(v); err == nil {
		k.ints++
	}
	if _, err := parseMoney(v); err == nil {
		k.numbers++
	}
	if _, err := inventory.ParseDate(v); err == nil {
		k.dates++
	}
}

func (k *kindTracker) kind() string {
	switch {
	case k.nonBlank == 0:
		return "empty"
	case k.ints == k.nonBlank:
		return "int"
	case k.numbers == k.nonBlank:
		return "number"
	case k.dates == k.nonBlank:
		return "date"
	default:
		return "text"
	}
}

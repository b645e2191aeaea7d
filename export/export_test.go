package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

func exportRows() []inventory.Row {
	return []inventory.Row{
		{
			Seq: 1, Date: inventory.NewDate(2025, 6, 15), Client: "山田商事", Region: "東京",
			Product: "ウィジェット", UnitsSold: 10, UnitPrice: decimal.NewFromInt(1200),
			Revenue: decimal.NewFromInt(12000), CurrentStock: 5, NeedsRestock: "Yes",
			ReorderLevel: 20, LastRestockDate: inventory.NewDate(2025, 5, 1),
		},
		{
			Seq: 2, Date: inventory.NewDate(2025, 6, 30), Client: "佐藤物産", Region: "大阪",
			Product: "ガジェット", UnitsSold: 3, UnitPrice: decimal.RequireFromString("799.5"),
			Revenue: decimal.RequireFromString("2398.5"), CurrentStock: 40, ReorderLevel: 10,
		},
	}
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("")
	require.NoError(t, err)
	assert.Equal(t, FormatXLSX, f)
	assert.Equal(t, "filtered_inventory.xlsx", f.FileName())

	f, err = ParseFormat("csv")
	require.NoError(t, err)
	assert.Equal(t, "filtered_inventory.csv", f.FileName())
	assert.Contains(t, f.ContentType(), "text/csv")

	_, err = ParseFormat("pdf")
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestTable_LabelsPerLocale(t *testing.T) {
	ja, records := Table(exportRows(), locale.Japanese)
	assert.Equal(t, "日付", ja[0])
	assert.Equal(t, "顧客", ja[1])
	require.Len(t, records, 2)
	assert.Equal(t, "2025年06月15日", records[0][0])
	assert.Equal(t, "799.5", records[1][5])
	assert.Equal(t, "", records[1][10])

	en, records := Table(exportRows(), locale.English)
	assert.Equal(t, "Client Name", en[1])
	assert.Equal(t, "2025-06-15", records[0][0])
	assert.Equal(t, "2025-05-01", records[0][10])
}

func TestTable_Empty(t *testing.T) {
	header, records := Table(nil, locale.English)
	assert.Len(t, header, 11)
	assert.Empty(t, records)
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exportRows(), locale.Japanese))

	out := buf.String()
	require.True(t, strings.HasPrefix(out, "\ufeff"))

	records, err := csv.NewReader(strings.NewReader(strings.TrimPrefix(out, "\ufeff"))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "日付", records[0][0])
	assert.Equal(t, "山田商事", records[1][1])
	assert.Equal(t, "10", records[1][4])
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, exportRows(), locale.English))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	sheet := locale.Text(locale.KeyExportSheet, locale.English)
	assert.Equal(t, []string{sheet}, f.GetSheetList())

	header, err := f.GetCellValue(sheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "Client Name", header)

	units, err := f.GetCellValue(sheet, "E2")
	require.NoError(t, err)
	assert.Equal(t, "10", units)

	client, err := f.GetCellValue(sheet, "B3")
	require.NoError(t, err)
	assert.Equal(t, "佐藤物産", client)
}

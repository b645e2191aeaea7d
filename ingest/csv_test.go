package ingest

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/japanese"

	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

const jaCSV = `日付,顧客,地域,製品名,販売数量,単価（円）,売上（円）,現在庫,要補充,発注点,最終補充日
2025年06月15日,山田商事,東京,ウィジェット,10,"1,200","12,000",5,Yes,20,2025年05月01日
2025年06月30日,山田商事,東京,ガジェット,3,800,2400,40,,10,
`

const enCSV = `Date,Client,Region,Product Name,Units Sold,Unit Price (¥),Revenue (¥),Current Stock,Needs Restock?,Reorder Level,Last Restock Date,Notes
2025-06-15,Yamada Trading,Tokyo,Widget,10,1200,12000,5,Yes,20,2025-05-01,first
2025-06-30,Yamada Trading,Tokyo,Gadget,3,800,2400,40,no,10,,second
`

func TestParse_Japanese(t *testing.T) {
	res, err := Parse(strings.NewReader(jaCSV), Options{})
	require.NoError(t, err)

	assert.Equal(t, locale.Japanese, res.Locale)
	require.Len(t, res.Rows, 2)

	r := res.Rows[0]
	assert.Equal(t, int64(1), r.Seq)
	assert.Equal(t, "2025-06-15", r.Date.String())
	assert.Equal(t, "山田商事", r.Client)
	assert.Equal(t, "ウィジェット", r.Product)
	assert.Equal(t, int64(10), r.UnitsSold)
	assert.Equal(t, "1200", r.UnitPrice.String())
	assert.Equal(t, "12000", r.Revenue.String())
	assert.True(t, r.NeedsRestockNow())
	assert.Equal(t, "2025-05-01", r.LastRestockDate.String())

	blank := res.Rows[1]
	assert.Equal(t, int64(2), blank.Seq)
	assert.False(t, blank.NeedsRestockNow())
	assert.True(t, blank.LastRestockDate.IsZero())
	assert.Len(t, res.SHA256, 64)
}

func TestParse_EnglishIgnoresExtraColumns(t *testing.T) {
	res, err := Parse(strings.NewReader(enCSV), Options{})
	require.NoError(t, err)

	assert.Equal(t, locale.English, res.Locale)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Yamada Trading", res.Rows[0].Client)
	assert.Equal(t, "no", res.Rows[1].NeedsRestock)
}

func TestParse_SameMonthAcrossLocales(t *testing.T) {
	ja, err := Parse(strings.NewReader(jaCSV), Options{})
	require.NoError(t, err)
	en, err := Parse(strings.NewReader(enCSV), Options{})
	require.NoError(t, err)

	assert.Equal(t,
		inventory.GroupedUnits(ja.Rows, inventory.GroupByMonth),
		inventory.GroupedUnits(en.Rows, inventory.GroupByMonth))
}

const bilingualCSV = "日付,顧客,地域,製品名,販売数量,単価（円）,売上（円）,現在庫,要補充,発注点,最終補充日," +
	"Date,Client,Region,Product Name,Units Sold,Unit Price (¥),Revenue (¥),Current Stock,Needs Restock?,Reorder Level,Last Restock Date\n" +
	"2025年06月15日,山田商事,東京,ウィジェット,10,1200,12000,5,Yes,20,2025年05月01日," +
	"2025-06-15,Yamada Trading,Tokyo,Widget,10,1200,12000,5,Yes,20,2025-05-01\n" +
	"2025年06月20日,山田商事,東京,ガジェット,2,800,1600,40,,10,," +
	"2025-06-20,Yamada Trading,Tokyo,Gadget,2,800,1600,40,,10,\n"

func TestParse_BilingualHeaderPicksLocale(t *testing.T) {
	auto, err := Parse(strings.NewReader(bilingualCSV), Options{})
	require.NoError(t, err)
	assert.Equal(t, locale.Japanese, auto.Locale)
	assert.Equal(t, "山田商事", auto.Rows[0].Client)

	en, err := Parse(strings.NewReader(bilingualCSV), Options{Locale: locale.English})
	require.NoError(t, err)
	assert.Equal(t, locale.English, en.Locale)
	assert.Equal(t, "Yamada Trading", en.Rows[0].Client)
}

func TestParse_BilingualKeepsOtherLanguageValues(t *testing.T) {
	res, err := Parse(strings.NewReader(bilingualCSV), Options{})
	require.NoError(t, err)

	tr := res.Translations
	assert.Equal(t, "Yamada Trading", tr.Lookup(locale.English, locale.FieldClient, "山田商事"))
	assert.Equal(t, "Tokyo", tr.Lookup(locale.English, locale.FieldRegion, "東京"))
	assert.Equal(t, "Widget", tr.Lookup(locale.English, locale.FieldProduct, "ウィジェット"))
	assert.Equal(t, "Gadget", tr.Lookup(locale.English, locale.FieldProduct, "ガジェット"))
	assert.Equal(t, 4, tr.Len())

	// Rows keep the loaded language.
	assert.Equal(t, "ウィジェット", res.Rows[0].Product)
}

func TestParse_SingleLanguageHasNoTranslations(t *testing.T) {
	res, err := Parse(strings.NewReader(jaCSV), Options{})
	require.NoError(t, err)
	assert.Zero(t, res.Translations.Len())
}

func TestParse_HalfWidthHeaderVariant(t *testing.T) {
	data := strings.Replace(jaCSV, "単価（円）,売上（円）", "単価(円),売上(円)", 1)

	res, err := Parse(strings.NewReader(data), Options{})
	require.NoError(t, err)
	assert.Len(t, res.Rows, 2)
}

func TestParse_UTF8BOM(t *testing.T) {
	res, err := Parse(strings.NewReader("\ufeff"+enCSV), Options{})
	require.NoError(t, err)
	assert.Equal(t, locale.English, res.Locale)
}

func TestParse_ShiftJIS(t *testing.T) {
	encoded, err := japanese.ShiftJIS.NewEncoder().String(jaCSV)
	require.NoError(t, err)

	res, err := Parse(bytes.NewReader([]byte(encoded)), Options{Encoding: "shift_jis"})
	require.NoError(t, err)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, "山田商事", res.Rows[0].Client)
}

func TestParse_UnknownEncoding(t *testing.T) {
	_, err := Parse(strings.NewReader(enCSV), Options{Encoding: "klingon"})
	assert.ErrorIs(t, err, ErrUnknownEncoding)
}

func TestParse_MissingColumns(t *testing.T) {
	data := "Date,Client,Region,Product Name,Units Sold\n2025-06-15,A,B,C,1\n"

	_, err := Parse(strings.NewReader(data), Options{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingColumns)
	var mc *MissingColumnsError
	require.True(t, errors.As(err, &mc))
	assert.Equal(t, locale.English, mc.Lang)
	assert.Contains(t, mc.Missing, "Revenue (¥)")
	assert.NotContains(t, mc.Missing, "Date")
}

func TestParse_ForcedLocaleMissing(t *testing.T) {
	_, err := Parse(strings.NewReader(enCSV), Options{Locale: locale.Japanese})
	assert.ErrorIs(t, err, ErrMissingColumns)
}

func TestParse_BadDateRejectsWholeFile(t *testing.T) {
	data := strings.Replace(enCSV, "2025-06-30", "June 30th", 1)

	res, err := Parse(strings.NewReader(data), Options{})

	assert.Nil(t, res)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidRow)
	assert.ErrorIs(t, err, inventory.ErrInvalidDate)
	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, 3, rowErr.Line)
	assert.Equal(t, "Date", rowErr.Column)
	assert.Equal(t, "June 30th", rowErr.Value)
}

func TestParse_BadNumber(t *testing.T) {
	data := strings.Replace(enCSV, "Widget,10,", "Widget,ten,", 1)

	_, err := Parse(strings.NewReader(data), Options{})

	var rowErr *RowError
	require.True(t, errors.As(err, &rowErr))
	assert.Equal(t, "Units Sold", rowErr.Column)
}

func TestParse_NumberOutOfRange(t *testing.T) {
	for _, units := range []string{"99999999999999999999", "-99999999999999999999", "99999999999999999999.0"} {
		data := strings.Replace(enCSV, "Widget,10,", "Widget,"+units+",", 1)

		res, err := Parse(strings.NewReader(data), Options{})

		assert.Nil(t, res, units)
		var rowErr *RowError
		require.True(t, errors.As(err, &rowErr), units)
		assert.Equal(t, "Units Sold", rowErr.Column, units)
		assert.Equal(t, units, rowErr.Value, units)
	}
}

func TestParse_NegativeUnits(t *testing.T) {
	data := strings.Replace(enCSV, "Widget,10,", "Widget,-1,", 1)

	_, err := Parse(strings.NewReader(data), Options{})

	assert.ErrorIs(t, err, inventory.ErrNegativeUnits)
}

func TestParse_Empty(t *testing.T) {
	_, err := Parse(strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestParse_HeaderOnly(t *testing.T) {
	header := strings.SplitN(enCSV, "\n", 2)[0] + "\n"

	res, err := Parse(strings.NewReader(header), Options{})
	require.NoError(t, err)
	assert.Empty(t, res.Rows)
}

func TestParseInt(t *testing.T) {
	for in, want := range map[string]int64{"10": 10, "1,234": 1234, "12.0": 12, " 7 ": 7} {
		got, err := parseInt(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	for _, in := range []string{"", "1.5", "x", "9223372036854775808", "99999999999999999999", "-99999999999999999999.0"} {
		_, err := parseInt(in)
		assert.Error(t, err, in)
	}
}

func TestPreviewFile(t *testing.T) {
	p, err := PreviewFile(strings.NewReader(enCSV), 1, "")
	require.NoError(t, err)

	assert.Equal(t, 2, p.Rows)
	assert.Len(t, p.Head, 1)
	assert.Len(t, p.Columns, 12)

	kinds := map[string]string{}
	for _, c := range p.Columns {
		kinds[c.Name] = c.Kind
	}
	assert.Equal(t, "date", kinds["Date"])
	assert.Equal(t, "text", kinds["Client"])
	assert.Equal(t, "int", kinds["Units Sold"])
	assert.Equal(t, "date", kinds["Last Restock Date"])
}

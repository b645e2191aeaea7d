/*
Package locale maps the internal, language-neutral row schema to its
Japanese and English presentation.

PURPOSE:
  The dashboard keeps one internal schema (Field) and looks up every
  user-facing string here: source file headers, display column labels,
  the "all" filter sentinel, page text, and number/date formatting.
  Nothing else in the repository branches on language.

TABLES:
  headers:  Field -> Lang -> column name in the source CSV
  display:  Field -> Lang -> column label shown in tables and exports
  texts:    Key   -> Lang -> UI string

SEE ALSO:
  - ingest/header.go: uses HeaderLabel + NormalizeHeader for detection
  - export/:          uses DisplayLabel for spreadsheet headers
*/
package locale

import (
	"strings"
	"time"

	"golang.org/x/text/width"
)

// Lang is a supported presentation language.
type Lang string

const (
	Japanese Lang = "ja"
	English  Lang = "en"
)

// Default is the language used when none is requested.
const Default = Japanese

// Langs lists supported languages in header detection order.
func Langs() []Lang { return []Lang{Japanese, English} }

// ParseLang accepts codes and the toggle labels of the dashboard.
// Unknown values fall back to Default with ok=false.
func ParseLang(s string) (Lang, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ja", "jp", "ja-jp", "japanese", "日本語":
		return Japanese, true
	case "en", "en-us", "en-gb", "english":
		return English, true
	default:
		return Default, false
	}
}

// Label returns the language toggle label ("日本語" / "English").
func (l Lang) Label() string {
	if l == English {
		return "English"
	}
	return "日本語"
}

// =============================================================================
// FIELDS
// =============================================================================

// Field identifies one column of the internal row schema.
type Field int

const (
	FieldDate Field = iota
	FieldClient
	FieldRegion
	FieldProduct
	FieldUnitsSold
	FieldUnitPrice
	FieldRevenue
	FieldCurrentStock
	FieldNeedsRestock
	FieldReorderLevel
	FieldLastRestockDate
)

// Fields returns all fields in canonical column order.
func Fields() []Field {
	return []Field{
		FieldDate, FieldClient, FieldRegion, FieldProduct, FieldUnitsSold,
		FieldUnitPrice, FieldRevenue, FieldCurrentStock, FieldNeedsRestock,
		FieldReorderLevel, FieldLastRestockDate,
	}
}

var fieldNames = map[Field]string{
	FieldDate:            "date",
	FieldClient:          "client",
	FieldRegion:          "region",
	FieldProduct:         "product",
	FieldUnitsSold:       "units_sold",
	FieldUnitPrice:       "unit_price",
	FieldRevenue:         "revenue",
	FieldCurrentStock:    "current_stock",
	FieldNeedsRestock:    "needs_restock",
	FieldReorderLevel:    "reorder_level",
	FieldLastRestockDate: "last_restock_date",
}

// String returns the internal snake_case name, also used as SQL column.
func (f Field) String() string {
	if n, ok := fieldNames[f]; ok {
		return n
	}
	return "unknown"
}

var headers = map[Field]map[Lang]string{
	FieldDate:            {Japanese: "日付", English: "Date"},
	FieldClient:          {Japanese: "顧客", English: "Client"},
	FieldRegion:          {Japanese: "地域", English: "Region"},
	FieldProduct:         {Japanese: "製品名", English: "Product Name"},
	FieldUnitsSold:       {Japanese: "販売数量", English: "Units Sold"},
	FieldUnitPrice:       {Japanese: "単価（円）", English: "Unit Price (¥)"},
	FieldRevenue:         {Japanese: "売上（円）", English: "Revenue (¥)"},
	FieldCurrentStock:    {Japanese: "現在庫", English: "Current Stock"},
	FieldNeedsRestock:    {Japanese: "要補充", English: "Needs Restock?"},
	FieldReorderLevel:    {Japanese: "発注点", English: "Reorder Level"},
	FieldLastRestockDate: {Japanese: "最終補充日", English: "Last Restock Date"},
}

// display overrides headers where the shown label differs.
var display = map[Field]map[Lang]string{
	FieldClient: {English: "Client Name"},
}

// HeaderLabel is the column name of f in a source file of language l.
func HeaderLabel(f Field, l Lang) string {
	return headers[f][l]
}

// DisplayLabel is the column label of f shown to a user of language l.
func DisplayLabel(f Field, l Lang) string {
	if s, ok := display[f][l]; ok {
		return s
	}
	return HeaderLabel(f, l)
}

// DisplayLabels returns the display labels of all fields in order.
func DisplayLabels(l Lang) []string {
	out := make([]string, 0, len(headers))
	for _, f := range Fields() {
		out = append(out, DisplayLabel(f, l))
	}
	return out
}

// NormalizeHeader folds full-width/half-width variants, trims spaces and
// lower-cases, so "単価(円)" matches "単価（円）".
func NormalizeHeader(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.ToLower(strings.TrimSpace(width.Fold.String(s)))
}

// =============================================================================
// FILTER SENTINEL
// =============================================================================

var allSentinels = map[Lang]string{
	Japanese: "すべて",
	English:  "All",
}

// AllSentinel is the filter choice meaning "no constraint".
func AllSentinel(l Lang) string { return allSentinels[l] }

// IsAllSentinel reports whether s is empty or the "all" choice of any
// supported language.
func IsAllSentinel(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, v := range allSentinels {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// =============================================================================
// DATES
// =============================================================================

// FormatDate renders a date the way the source file of language l does.
// The zero time renders as "".
func FormatDate(t time.Time, l Lang) string {
	if t.IsZero() {
		return ""
	}
	if l == English {
		return t.Format("2006-01-02")
	}
	return t.Format("2006年01月02日")
}

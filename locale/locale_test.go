package locale

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseLang(t *testing.T) {
	tests := []struct {
		in   string
		want Lang
		ok   bool
	}{
		{"ja", Japanese, true},
		{"日本語", Japanese, true},
		{"EN", English, true},
		{"English", English, true},
		{"", Japanese, false},
		{"fr", Japanese, false},
	}
	for _, tt := range tests {
		got, ok := ParseLang(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestLabels_CoverEveryField(t *testing.T) {
	for _, l := range Langs() {
		seen := map[string]bool{}
		for _, f := range Fields() {
			h := HeaderLabel(f, l)
			assert.NotEmpty(t, h, "%s/%s", f, l)
			assert.False(t, seen[h], "duplicate header %q", h)
			seen[h] = true
			assert.NotEmpty(t, DisplayLabel(f, l))
		}
	}
	assert.Len(t, Fields(), 11)
}

func TestDisplayLabel_ClientRename(t *testing.T) {
	assert.Equal(t, "Client", HeaderLabel(FieldClient, English))
	assert.Equal(t, "Client Name", DisplayLabel(FieldClient, English))
	assert.Equal(t, "顧客", DisplayLabel(FieldClient, Japanese))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, NormalizeHeader("単価（円）"), NormalizeHeader("単価(円)"))
	assert.Equal(t, NormalizeHeader("Unit Price (¥)"), NormalizeHeader(" unit price (￥) "))
	assert.Equal(t, NormalizeHeader("日付"), NormalizeHeader("\ufeff日付"))
}

func TestIsAllSentinel(t *testing.T) {
	assert.True(t, IsAllSentinel(""))
	assert.True(t, IsAllSentinel("すべて"))
	assert.True(t, IsAllSentinel("All"))
	assert.False(t, IsAllSentinel("ClientA"))
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, "2025年06月05日", FormatDate(d, Japanese))
	assert.Equal(t, "2025-06-05", FormatDate(d, English))
	assert.Equal(t, "", FormatDate(time.Time{}, English))
}

func TestFormatNumbers(t *testing.T) {
	assert.Equal(t, "1,234,567", FormatInt(1234567, English))
	assert.Equal(t, "1,234,567", FormatInt(1234567, Japanese))
	assert.Equal(t, "12,000 円", FormatAmount(decimal.NewFromInt(12000), Japanese))
	assert.Equal(t, "12,000", FormatAmount(decimal.NewFromInt(12000), English))
	assert.Equal(t, "0", FormatAmount(decimal.Zero, English))
}

func TestText_Fallback(t *testing.T) {
	assert.Equal(t, "Inventory & Sales Dashboard", Text(KeyTitle, English))
	assert.Equal(t, "missing", Text(Key("missing"), English))
}

package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nissili/inventory-dashboard/inventory"
)

func TestFilter_AllSentinelsAreVacuous(t *testing.T) {
	rows := sampleRows()

	for _, f := range []inventory.Filter{
		{},
		{Client: "すべて", Product: "すべて", Month: "すべて"},
		{Client: "All", Product: "All", Month: "All"},
		{Client: " ", Product: "all"},
	} {
		got, err := f.Apply(rows)
		require.NoError(t, err)
		assert.Len(t, got, len(rows), "filter %+v", f)
	}
}

func TestFilter_Conjunction(t *testing.T) {
	got, err := inventory.Filter{Client: "ClientB", Product: "Widget", Month: "2025-03"}.Apply(sampleRows())
	require.NoError(t, err)

	require.Len(t, got, 1)
	assert.Equal(t, int64(7), got[0].Seq)
}

func TestFilter_MonthAcceptsSingleDigit(t *testing.T) {
	got, err := inventory.Filter{Month: "2025-2"}.Apply(sampleRows())
	require.NoError(t, err)

	assert.Len(t, got, 2)
}

func TestFilter_InvalidMonth(t *testing.T) {
	_, err := inventory.Filter{Month: "March"}.Apply(sampleRows())

	require.Error(t, err)
	assert.True(t, errors.Is(err, inventory.ErrInvalidMonth))
	assert.True(t, inventory.IsClientError(err))
}

func TestFilter_NoMatchGivesEmptyAggregates(t *testing.T) {
	all := sampleRows()
	got, err := inventory.Filter{Client: "Nobody"}.Apply(all)
	require.NoError(t, err)

	s := inventory.Summarize(got, all)

	assert.Empty(t, got)
	assert.Zero(t, s.TotalUnits)
	assert.Zero(t, s.RestockCount)
	assert.Equal(t, 3, s.UniqueClients)
	assert.Empty(t, inventory.GroupedUnits(got, inventory.GroupByProduct))
}

func TestOptions(t *testing.T) {
	opts := inventory.Options(sampleRows())

	assert.Equal(t, []string{"ClientA", "ClientB", "ClientC"}, opts.Clients)
	assert.Equal(t, []string{"Gadget", "Gizmo", "Widget"}, opts.Products)
	assert.Equal(t, []string{"2025-01", "2025-02", "2025-03"}, opts.Months)
}

func TestParseDate(t *testing.T) {
	want := inventory.NewDate(2025, time.June, 5)

	for _, in := range []string{
		"2025-06-05",
		"2025-6-5",
		"2025/06/05",
		"2025年06月05日",
		"2025年6月5日",
		"2025-06-05 00:00:00",
		" 2025-06-05 ",
	} {
		got, err := inventory.ParseDate(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%q parsed as %s", in, got)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "yesterday", "2025-13-01", "06/05/2025"} {
		_, err := inventory.ParseDate(in)
		assert.ErrorIs(t, err, inventory.ErrInvalidDate, in)
	}
}

func TestFilter_IsEmpty(t *testing.T) {
	assert.True(t, inventory.Filter{}.IsEmpty())
	assert.False(t, inventory.Filter{Month: "2025-01"}.IsEmpty())

	nf, err := inventory.Filter{Client: "All", Product: "すべて"}.Normalize()
	require.NoError(t, err)
	assert.True(t, nf.IsEmpty())
}

func TestFilter_EmptyApplyReturnsCopy(t *testing.T) {
	all := sampleRows()

	got, err := inventory.Filter{Client: " All "}.Apply(all)
	require.NoError(t, err)
	require.Equal(t, all, got)

	got[0].Client = "changed"
	assert.Equal(t, "ClientA", all[0].Client)
}

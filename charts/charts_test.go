package charts

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

func chartRows() []inventory.Row {
	return []inventory.Row{
		{Seq: 1, Date: inventory.NewDate(2025, 7, 2), Client: "A", Product: "Widget", UnitsSold: 4},
		{Seq: 2, Date: inventory.NewDate(2025, 6, 9), Client: "B", Product: "Gadget", UnitsSold: 9},
		{Seq: 3, Date: inventory.NewDate(2025, 6, 20), Client: "A", Product: "Widget", UnitsSold: 1},
	}
}

func TestProductSeries_LargestFirst(t *testing.T) {
	s := ProductSeries(chartRows())

	assert.Equal(t, []string{"Gadget", "Widget"}, s.Labels)
	assert.Equal(t, []int64{9, 5}, s.Values)
}

func TestMonthSeries_CalendarOrder(t *testing.T) {
	s := MonthSeries(chartRows())

	assert.Equal(t, []string{"2025-06", "2025-07"}, s.Labels)
	assert.Equal(t, []int64{10, 4}, s.Values)
}

func TestSeries_Empty(t *testing.T) {
	s := ProductSeries(nil)
	assert.Empty(t, s.Labels)
	assert.NotNil(t, s.Values)
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, chartRows(), locale.English))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Sales Volume by Product")
	assert.Contains(t, html, "Monthly Sales Trend")
	assert.Contains(t, html, "Gadget")
	assert.Contains(t, html, "2025-07")
}

func TestRender_NoRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, nil, locale.Japanese))
	assert.NotZero(t, buf.Len())
}

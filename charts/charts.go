/*
Package charts renders the dashboard's two unit series with go-echarts.

  UnitsByProduct: bar chart, products by units descending
  MonthlyTrend:   line chart, YYYY-MM ascending

Render writes both to one standalone HTML page. The series come from
inventory.GroupedUnits over whatever rows the caller passes, so the HTTP
layer applies filters before calling in.
*/
package charts

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

const (
	chartWidth  = "960px"
	chartHeight = "420px"
)

// Series is an ordered chart series, also served as JSON by the API.
type Series struct {
	Labels []string
	Values []int64
}

// ProductSeries returns units per product, largest first.
func ProductSeries(rows []inventory.Row) Series {
	return series(inventory.SortedGroups(inventory.GroupedUnits(rows, inventory.GroupByProduct), inventory.GroupByProduct))
}

// MonthSeries returns units per month in calendar order.
func MonthSeries(rows []inventory.Row) Series {
	return series(inventory.SortedGroups(inventory.GroupedUnits(rows, inventory.GroupByMonth), inventory.GroupByMonth))
}

func series(groups []inventory.Group) Series {
	s := Series{Labels: make([]string, 0, len(groups)), Values: make([]int64, 0, len(groups))}
	for _, g := range groups {
		s.Labels = append(s.Labels, g.Key)
		s.Values = append(s.Values, g.Units)
	}
	return s
}

// UnitsByProduct builds the bar chart of units sold per product.
func UnitsByProduct(rows []inventory.Row, lang locale.Lang) *charts.Bar {
	s := ProductSeries(rows)
	units := locale.DisplayLabel(locale.FieldUnitsSold, lang)

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: locale.Text(locale.KeyChartByProduct, lang)}),
		charts.WithXAxisOpts(opts.XAxis{Name: locale.DisplayLabel(locale.FieldProduct, lang)}),
		charts.WithYAxisOpts(opts.YAxis{Name: units}),
	)

	data := make([]opts.BarData, 0, len(s.Values))
	for _, v := range s.Values {
		data = append(data, opts.BarData{Value: v})
	}
	bar.SetXAxis(s.Labels).AddSeries(units, data)
	return bar
}

// MonthlyTrend builds the line chart of units sold per month.
func MonthlyTrend(rows []inventory.Row, lang locale.Lang) *charts.Line {
	s := MonthSeries(rows)
	units := locale.DisplayLabel(locale.FieldUnitsSold, lang)

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: chartWidth, Height: chartHeight}),
		charts.WithTitleOpts(opts.Title{Title: locale.Text(locale.KeyChartByMonth, lang)}),
		charts.WithXAxisOpts(opts.XAxis{Name: locale.Text(locale.KeyMonth, lang)}),
		charts.WithYAxisOpts(opts.YAxis{Name: units}),
	)

	data := make([]opts.LineData, 0, len(s.Values))
	for _, v := range s.Values {
		data = append(data, opts.LineData{Value: v})
	}
	line.SetXAxis(s.Labels).AddSeries(units, data)
	return line
}

// Render writes an HTML page holding both charts.
func Render(w io.Writer, rows []inventory.Row, lang locale.Lang) error {
	page := components.NewPage()
	page.PageTitle = locale.Text(locale.KeyPageTitle, lang)
	page.AddCharts(
		UnitsByProduct(rows, lang),
		MonthlyTrend(rows, lang),
	)
	return page.Render(w)
}

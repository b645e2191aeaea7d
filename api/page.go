package api

import (
	"bytes"
	"html/template"
	"net/http"
	"net/url"

	"github.com/nissili/inventory-dashboard/export"
	"github.com/nissili/inventory-dashboard/locale"
)

var pageTemplate = template.Must(template.New("dashboard").Parse(pageHTML))

// pageData feeds pageHTML. Numbers are pre-formatted for the language.
type pageData struct {
	Lang     locale.Lang
	Langs    []langLink
	Filter   FilterDTO
	Options  FilterOptionsDTO
	Revenue  string
	Units    string
	Restock  string
	Clients  string
	Labels   []string
	Records  [][]string
	AllRows  [][]string
	LowStock []LowStockDTO
	LowCols  []string
	Alert    *AlertDTO

	ChartsURL  template.URL
	ExportXLSX template.URL
	ExportCSV  template.URL
}

type langLink struct {
	Label  string
	URL    template.URL
	Active bool
}

// T looks up a UI string for the page language.
func (p pageData) T(key string) string {
	return locale.Text(locale.Key(key), p.Lang)
}

// Index renders the HTML dashboard.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	req, ok := h.load(w, r)
	if !ok {
		return
	}

	data := h.pageData(req)
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func (h *Handler) pageData(req *request) pageData {
	d := h.dashboard(req)
	lang := req.lang

	_, records := export.Table(req.filtered, lang)
	_, allRecords := export.Table(req.all, lang)

	query := func(extra url.Values) template.URL {
		v := url.Values{}
		v.Set("lang", string(lang))
		if req.filter.Client != "" {
			v.Set("client", req.filter.Client)
		}
		if req.filter.Product != "" {
			v.Set("product", req.filter.Product)
		}
		if req.filter.Month != "" {
			v.Set("month", req.filter.Month)
		}
		for k := range extra {
			v.Set(k, extra.Get(k))
		}
		return template.URL(v.Encode())
	}

	langs := make([]langLink, 0, len(locale.Langs()))
	for _, l := range locale.Langs() {
		langs = append(langs, langLink{
			Label:  l.Label(),
			URL:    template.URL("/?" + url.Values{"lang": {string(l)}}.Encode()),
			Active: l == lang,
		})
	}

	return pageData{
		Lang:       lang,
		Langs:      langs,
		Filter:     d.Filter,
		Options:    d.Options,
		Revenue:    d.KPIs.TotalRevenueDisplay,
		Units:      locale.FormatInt(d.KPIs.TotalUnits, lang),
		Restock:    locale.FormatInt(int64(d.KPIs.RestockCount), lang),
		Clients:    locale.FormatInt(int64(d.KPIs.UniqueClients), lang),
		Labels:     locale.DisplayLabels(lang),
		Records:    records,
		AllRows:    allRecords,
		LowStock:   d.LowStock,
		LowCols:    lowStockLabels(lang),
		Alert:      d.Alert,
		ChartsURL:  "/charts?" + query(nil),
		ExportXLSX: "/api/export?" + query(url.Values{"format": {"xlsx"}}),
		ExportCSV:  "/api/export?" + query(url.Values{"format": {"csv"}}),
	}
}

const pageHTML = `<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.T "page_title"}}</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 1200px; margin: 24px auto; padding: 0 16px; }
.kpis { display: flex; gap: 16px; }
.kpi { flex: 1; border: 1px solid #ddd; border-radius: 8px; padding: 12px; }
.kpi .value { font-size: 1.6em; font-weight: bold; }
table { border-collapse: collapse; width: 100%; margin: 8px 0 24px; }
th, td { border: 1px solid #ddd; padding: 4px 8px; text-align: left; }
.low { color: red; font-weight: bold; }
.alert { background: #fff8e1; border: 1px solid #ffcc80; padding: 12px; white-space: pre-line; }
nav a.active { font-weight: bold; }
</style>
</head>
<body>
<nav>{{.T "language"}}:
{{range .Langs}}<a href="{{.URL}}"{{if .Active}} class="active"{{end}}>{{.Label}}</a> {{end}}
</nav>

<h1>{{.T "title"}}</h1>
<p>{{.T "subtitle"}}</p>

<h2>{{.T "filter_header"}}</h2>
<form method="get" action="/">
<input type="hidden" name="lang" value="{{.Lang}}">
<label>{{.T "filter_client"}}
<select name="client"><option value="">{{.Options.All}}</option>
{{$f := .Filter}}{{range .Options.Clients}}<option{{if eq . $f.Client}} selected{{end}}>{{.}}</option>{{end}}
</select></label>
<label>{{.T "filter_product"}}
<select name="product"><option value="">{{.Options.All}}</option>
{{range .Options.Products}}<option{{if eq . $f.Product}} selected{{end}}>{{.}}</option>{{end}}
</select></label>
<label>{{.T "filter_month"}}
<select name="month"><option value="">{{.Options.All}}</option>
{{range .Options.Months}}<option{{if eq . $f.Month}} selected{{end}}>{{.}}</option>{{end}}
</select></label>
<button type="submit">{{.T "apply"}}</button>
</form>

<div class="kpis">
<div class="kpi"><div>{{.T "total_revenue"}}</div><div class="value">{{.Revenue}}</div></div>
<div class="kpi"><div>{{.T "total_units"}}</div><div class="value">{{.Units}}</div></div>
<div class="kpi"><div>{{.T "restock_count"}}</div><div class="value">{{.Restock}}</div></div>
<div class="kpi"><div>{{.T "unique_clients"}}</div><div class="value">{{.Clients}}</div></div>
</div>

<iframe src="{{.ChartsURL}}" title="charts" width="100%" height="920" style="border:0"></iframe>

<h2>{{.T "low_stock_header"}}</h2>
{{if .LowStock}}
<table>
<tr>{{range .LowCols}}<th>{{.}}</th>{{end}}</tr>
{{range .LowStock}}<tr><td>{{.Client}}</td><td>{{.Product}}</td><td class="low">{{.CurrentStock}}</td><td>{{.ReorderLevel}}</td></tr>
{{end}}</table>
{{else}}<p>{{.T "low_stock_none"}}</p>{{end}}

{{with .Alert}}
<h2>{{$.T "alert_header"}}</h2>
<p>{{$.T "alert_info"}}</p>
<div class="alert"><strong>{{$.T "alert_to"}}:</strong> {{.To}}
<strong>{{$.T "alert_subject_label"}}:</strong> {{.Subject}}
<strong>{{$.T "alert_body"}}:</strong>
{{.Body}}</div>
{{end}}

<h2>{{.T "table_header"}}</h2>
<p>{{.T "table_caption"}}</p>
<p><a href="{{.ExportXLSX}}">{{.T "download_xlsx"}}</a> | <a href="{{.ExportCSV}}">{{.T "download_csv"}}</a></p>
<table>
<tr>{{range .Labels}}<th>{{.}}</th>{{end}}</tr>
{{range .Records}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>

<details>
<summary>{{.T "all_data_header"}}</summary>
<p>{{.T "all_data_caption"}}</p>
<table>
<tr>{{range .Labels}}<th>{{.}}</th>{{end}}</tr>
{{range .AllRows}}<tr>{{range .}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
</details>
</body>
</html>
`

/*
handlers.go - HTTP handlers for the inventory dashboard

PURPOSE:
  Exposes the inventory resolver over HTTP. Handles request parsing and
  response encoding and delegates to the inventory package.

ENDPOINTS:
  GET /api/health          Store ping and row count
  GET /api/dashboard       KPIs, chart series, low stock, alert preview
  GET /api/rows            Filtered display table
  GET /api/low-stock       Latest snapshots needing restock
  GET /api/export          Filtered table as xlsx or csv attachment
  GET /api/ingest-runs     Load history
  GET /api/alerts/latest   Last alert from the scheduler (204 if none)
  GET /charts              go-echarts page
  GET /                    HTML dashboard

QUERY PARAMETERS (all read endpoints):
  lang     ja | en (default from config)
  client   exact client name, empty or "All"/"すべて" for no constraint
  product  exact product name, same sentinels
  month    YYYY-MM, same sentinels

REQUEST FLOW:
  1. Parse language and filter (400 on a malformed month)
  2. Load ALL rows from the store (every request, no caching)
  3. Show text values in the requested language when the load was bilingual
  4. Apply the filter and call the resolver
  5. Serialize response

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Invalid filter or format
  - 500: Store failures

SEE ALSO:
  - dto.go: Response data structures
  - page.go: HTML dashboard
  - server.go: Router setup and middleware
*/
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/nissili/inventory-dashboard/alert"
	"github.com/nissili/inventory-dashboard/charts"
	"github.com/nissili/inventory-dashboard/export"
	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
	"github.com/nissili/inventory-dashboard/logger"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// RowSource is the store handle the handlers read from.
type RowSource interface {
	inventory.Source
	ListIngestRuns(ctx context.Context, limit int) ([]inventory.IngestRun, error)
}

// LatestAlert yields the last scheduled notification.
type LatestAlert interface {
	Latest() *alert.Notification
}

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Source      RowSource
	Alerts      LatestAlert
	DefaultLang locale.Lang
	AlertTo     string
}

// NewHandler creates a new handler reading from source.
func NewHandler(source RowSource) *Handler {
	return &Handler{
		Source:      source,
		DefaultLang: locale.Default,
	}
}

// request is the parsed view every read endpoint works on.
type request struct {
	lang     locale.Lang
	filter   inventory.Filter
	all      []inventory.Row
	filtered []inventory.Row
}

// load parses the query and reads the store. On failure the error response
// has already been written.
func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*request, bool) {
	q := r.URL.Query()

	// Unknown codes keep the configured default.
	lang := h.DefaultLang
	if l, ok := locale.ParseLang(q.Get("lang")); ok {
		lang = l
	}

	filter, err := inventory.Filter{
		Client:  q.Get("client"),
		Product: q.Get("product"),
		Month:   q.Get("month"),
	}.Normalize()
	if err != nil {
		writeFilterError(w, err)
		return nil, false
	}

	all, err := inventory.LoadLocalized(r.Context(), h.Source, lang)
	if err != nil {
		log := logger.FromContext(r.Context())
		log.Error().Err(err).Msg("failed to load inventory rows")
		writeError(w, http.StatusInternalServerError, "Failed to load inventory", err)
		return nil, false
	}

	filtered, err := filter.Apply(all)
	if err != nil {
		writeFilterError(w, err)
		return nil, false
	}

	return &request{lang: lang, filter: filter, all: all, filtered: filtered}, true
}

// =============================================================================
// HEALTH
// =============================================================================

type pinger interface {
	Ping(ctx context.Context) error
}

type rowCounter interface {
	CountRows(ctx context.Context) (int, error)
}

// Health pings the store and reports its row count. Stores that can count
// without loading are asked to; others fall back to LoadRows.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if p, ok := h.Source.(pinger); ok {
		if err := p.Ping(ctx); err != nil {
			writeError(w, http.StatusServiceUnavailable, "Store unavailable", err)
			return
		}
	}

	var (
		n   int
		err error
	)
	if c, ok := h.Source.(rowCounter); ok {
		n, err = c.CountRows(ctx)
	} else {
		var rows []inventory.Row
		rows, err = h.Source.LoadRows(ctx)
		n = len(rows)
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "Store unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, HealthDTO{Status: "ok", Rows: n})
}

// =============================================================================
// DASHBOARD
// =============================================================================

// Dashboard returns KPIs, both chart series, the low-stock list and the
// alert preview for the active filter.
func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	req, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.dashboard(req))
}

func (h *Handler) dashboard(req *request) DashboardResponse {
	opts := inventory.Options(req.all)
	lowStock := inventory.LowStockEntries(req.filtered)
	notification, _ := alert.Compose(lowStock, req.lang, h.AlertTo)

	return DashboardResponse{
		Lang: string(req.lang),
		Filter: FilterDTO{
			Client:  req.filter.Client,
			Product: req.filter.Product,
			Month:   req.filter.Month,
		},
		Options: FilterOptionsDTO{
			All:      locale.AllSentinel(req.lang),
			Clients:  opts.Clients,
			Products: opts.Products,
			Months:   opts.Months,
		},
		KPIs: toKPIDTO(inventory.Summarize(req.filtered, req.all), req.lang),
		ByProduct: toSeriesDTO(
			locale.Text(locale.KeyChartByProduct, req.lang),
			charts.ProductSeries(req.filtered),
		),
		ByMonth: toSeriesDTO(
			locale.Text(locale.KeyChartByMonth, req.lang),
			charts.MonthSeries(req.filtered),
		),
		LowStock: toLowStockDTOs(lowStock),
		Alert:    toAlertDTO(notification),
	}
}

// =============================================================================
// TABLES
// =============================================================================

// Rows returns the filtered rows as a localized display table.
func (h *Handler) Rows(w http.ResponseWriter, r *http.Request) {
	req, ok := h.load(w, r)
	if !ok {
		return
	}

	labels, records := export.Table(req.filtered, req.lang)
	dtos := make([]RowDTO, len(req.filtered))
	for i, row := range req.filtered {
		dtos[i] = toRowDTO(row)
	}

	writeJSON(w, http.StatusOK, TableResponse{
		Lang:    string(req.lang),
		Count:   len(req.filtered),
		Labels:  labels,
		Records: records,
		Rows:    dtos,
	})
}

// LowStock returns the latest snapshots flagged for restock.
func (h *Handler) LowStock(w http.ResponseWriter, r *http.Request) {
	req, ok := h.load(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, LowStockResponse{
		Lang:    string(req.lang),
		Labels:  lowStockLabels(req.lang),
		Entries: toLowStockDTOs(inventory.LowStockEntries(req.filtered)),
	})
}

// =============================================================================
// EXPORT
// =============================================================================

// Export streams the filtered rows as an attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid format", err)
		return
	}

	req, ok := h.load(w, r)
	if !ok {
		return
	}

	// Buffer so a failure can still become a JSON error.
	var buf bytes.Buffer
	if err := export.Write(&buf, format, req.filtered, req.lang); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to export", err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, format.FileName()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// =============================================================================
// INGEST RUNS / ALERTS
// =============================================================================

// ListIngestRuns returns the load history, newest first.
func (h *Handler) ListIngestRuns(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "Invalid limit", err)
			return
		}
		limit = n
	}

	runs, err := h.Source.ListIngestRuns(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list ingest runs", err)
		return
	}

	dtos := make([]IngestRunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toIngestRunDTO(run)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LatestAlert returns the scheduler's last notification.
func (h *Handler) LatestAlert(w http.ResponseWriter, r *http.Request) {
	if h.Alerts == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	n := h.Alerts.Latest()
	if n == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, http.StatusOK, toAlertDTO(n))
}

// =============================================================================
// CHARTS
// =============================================================================

// Charts renders the go-echarts page for the active filter.
func (h *Handler) Charts(w http.ResponseWriter, r *http.Request) {
	req, ok := h.load(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := charts.Render(&buf, req.filtered, req.lang); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to render charts", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeFilterError answers bad input with 400 and anything else with 500.
func writeFilterError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if inventory.IsClientError(err) {
		status = http.StatusBadRequest
	}
	writeError(w, status, "Invalid filter", err)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

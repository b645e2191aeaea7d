/*
dto.go - Data Transfer Objects for API responses

PURPOSE:
  Defines the JSON structures returned by the dashboard API. These types
  decouple the internal row model from the external contract:
  - Money is a decimal string, never a float
  - Dates are ISO YYYY-MM-DD regardless of the display language
  - Labels come pre-localized so clients need no translation table

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Response: Complex response wrappers

SEE ALSO:
  - handlers.go: Uses these types
*/
package api

import (
	"time"

	"github.com/nissili/inventory-dashboard/alert"
	"github.com/nissili/inventory-dashboard/charts"
	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

// =============================================================================
// RESPONSE TYPES
// =============================================================================

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// HealthDTO reports liveness and table size.
type HealthDTO struct {
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// FilterDTO echoes the normalized filter; empty means unconstrained.
type FilterDTO struct {
	Client  string `json:"client"`
	Product string `json:"product"`
	Month   string `json:"month"`
}

// FilterOptionsDTO lists the choices for the filter widgets.
type FilterOptionsDTO struct {
	All      string   `json:"all"`
	Clients  []string `json:"clients"`
	Products []string `json:"products"`
	Months   []string `json:"months"`
}

// KPIDTO holds the headline figures.
type KPIDTO struct {
	TotalRevenue        string `json:"total_revenue"`
	TotalRevenueDisplay string `json:"total_revenue_display"`
	TotalUnits          int64  `json:"total_units"`
	RestockCount        int    `json:"restock_count"`

	// UniqueClients ignores the active filter.
	UniqueClients         int `json:"unique_clients"`
	UniqueClientsFiltered int `json:"unique_clients_filtered"`
}

// SeriesDTO is one ordered chart series.
type SeriesDTO struct {
	Title  string   `json:"title"`
	Labels []string `json:"labels"`
	Values []int64  `json:"values"`
}

// RowDTO is one inventory row.
type RowDTO struct {
	Seq             int64  `json:"seq"`
	Date            string `json:"date"`
	Client          string `json:"client"`
	Region          string `json:"region"`
	Product         string `json:"product"`
	UnitsSold       int64  `json:"units_sold"`
	UnitPrice       string `json:"unit_price"`
	Revenue         string `json:"revenue"`
	CurrentStock    int64  `json:"current_stock"`
	NeedsRestock    string `json:"needs_restock"`
	ReorderLevel    int64  `json:"reorder_level"`
	LastRestockDate string `json:"last_restock_date,omitempty"`
}

// LowStockDTO is one pair whose latest snapshot needs restocking.
type LowStockDTO struct {
	Client       string `json:"client"`
	Product      string `json:"product"`
	CurrentStock int64  `json:"current_stock"`
	ReorderLevel int64  `json:"reorder_level"`
	Date         string `json:"date"`
}

// AlertDTO is a composed low-stock notification.
type AlertDTO struct {
	To        string   `json:"to"`
	Subject   string   `json:"subject"`
	Products  []string `json:"products"`
	Body      string   `json:"body"`
	Lang      string   `json:"lang"`
	CreatedAt string   `json:"created_at"`
}

// IngestRunDTO is one entry of the load history.
type IngestRunDTO struct {
	ID       string `json:"id"`
	Source   string `json:"source"`
	Locale   string `json:"locale"`
	RowCount int    `json:"row_count"`
	SHA256   string `json:"sha256,omitempty"`
	LoadedAt string `json:"loaded_at"`
}

// DashboardResponse is everything the dashboard page shows.
type DashboardResponse struct {
	Lang      string           `json:"lang"`
	Filter    FilterDTO        `json:"filter"`
	Options   FilterOptionsDTO `json:"options"`
	KPIs      KPIDTO           `json:"kpis"`
	ByProduct SeriesDTO        `json:"by_product"`
	ByMonth   SeriesDTO        `json:"by_month"`
	LowStock  []LowStockDTO    `json:"low_stock"`
	Alert     *AlertDTO        `json:"alert"`
}

// LowStockResponse wraps the low-stock list with its labels.
type LowStockResponse struct {
	Lang    string        `json:"lang"`
	Labels  []string      `json:"labels"`
	Entries []LowStockDTO `json:"entries"`
}

// TableResponse is the display table: localized labels and string records.
type TableResponse struct {
	Lang    string     `json:"lang"`
	Count   int        `json:"count"`
	Labels  []string   `json:"labels"`
	Records [][]string `json:"records"`
	Rows    []RowDTO   `json:"rows"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toRowDTO(r inventory.Row) RowDTO {
	dto := RowDTO{
		Seq:          r.Seq,
		Date:         r.Date.String(),
		Client:       r.Client,
		Region:       r.Region,
		Product:      r.Product,
		UnitsSold:    r.UnitsSold,
		UnitPrice:    r.UnitPrice.String(),
		Revenue:      r.Revenue.String(),
		CurrentStock: r.CurrentStock,
		NeedsRestock: r.NeedsRestock,
		ReorderLevel: r.ReorderLevel,
	}
	if !r.LastRestockDate.IsZero() {
		dto.LastRestockDate = r.LastRestockDate.String()
	}
	return dto
}

func toLowStockDTOs(entries []inventory.Row) []LowStockDTO {
	out := make([]LowStockDTO, len(entries))
	for i, e := range entries {
		out[i] = LowStockDTO{
			Client:       e.Client,
			Product:      e.Product,
			CurrentStock: e.CurrentStock,
			ReorderLevel: e.ReorderLevel,
			Date:         e.Date.String(),
		}
	}
	return out
}

// lowStockLabels are the column labels of the low-stock list.
func lowStockLabels(lang locale.Lang) []string {
	return []string{
		locale.DisplayLabel(locale.FieldClient, lang),
		locale.DisplayLabel(locale.FieldProduct, lang),
		locale.DisplayLabel(locale.FieldCurrentStock, lang),
		locale.DisplayLabel(locale.FieldReorderLevel, lang),
	}
}

func toKPIDTO(s inventory.Summary, lang locale.Lang) KPIDTO {
	return KPIDTO{
		TotalRevenue:          s.TotalRevenue.String(),
		TotalRevenueDisplay:   locale.FormatAmount(s.TotalRevenue, lang),
		TotalUnits:            s.TotalUnits,
		RestockCount:          s.RestockCount,
		UniqueClients:         s.UniqueClients,
		UniqueClientsFiltered: s.UniqueClientsFiltered,
	}
}

func toSeriesDTO(title string, s charts.Series) SeriesDTO {
	return SeriesDTO{Title: title, Labels: s.Labels, Values: s.Values}
}

func toAlertDTO(n *alert.Notification) *AlertDTO {
	if n == nil {
		return nil
	}
	return &AlertDTO{
		To:        n.To,
		Subject:   n.Subject,
		Products:  n.Products,
		Body:      n.Body,
		Lang:      string(n.Lang),
		CreatedAt: n.CreatedAt.Format(time.RFC3339),
	}
}

func toIngestRunDTO(run inventory.IngestRun) IngestRunDTO {
	return IngestRunDTO{
		ID:       run.ID,
		Source:   run.Source,
		Locale:   run.Locale,
		RowCount: run.RowCount,
		SHA256:   run.SHA256,
		LoadedAt: run.LoadedAt.Format(time.RFC3339),
	}
}

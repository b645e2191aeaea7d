/*
resolver.go - Inventory status resolution

PURPOSE:
  Reduces transactional rows to the current status per (client, product)
  pair and computes the dashboard aggregates.

ALGORITHM (LatestStatus):
  1. Copy and sort the input ascending by (Date, Seq)
  2. Walk the sorted rows, remembering the last row seen per Pair
  3. Emit the remembered rows in (Date, Seq) order

  Seq is the ingestion sequence, so for rows sharing the max date the one
  ingested last wins. Sorting by (Date, Seq) makes this independent of the
  order the caller passes rows in.

AGGREGATES:
  Summarize sums revenue and units over every row (no pair dedup), counts
  restock snapshots, and counts distinct clients over the UNFILTERED set.
  The client count ignoring the active filter is legacy dashboard output;
  UniqueClientsFiltered carries the filtered count next to it.

EMPTY INPUT:
  All operations return zero values or empty (non-nil) slices/maps.
*/
package inventory

import (
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// LATEST STATUS
// =============================================================================

// LatestStatus returns exactly one row per distinct pair in rows: the row
// with the greatest (Date, Seq).
func LatestStatus(rows []Row) []Row {
	sorted := sortByDate(rows)

	latest := make(map[Pair]int, len(sorted))
	for i, r := range sorted {
		latest[r.Pair()] = i
	}

	out := make([]Row, 0, len(latest))
	for i, r := range sorted {
		if latest[r.Pair()] == i {
			out = append(out, r)
		}
	}
	return out
}

// NeedsRestockCount counts snapshots flagged "yes". A pair that appears
// many times in rows is counted at most once.
func NeedsRestockCount(rows []Row) int {
	n := 0
	for _, r := range LatestStatus(rows) {
		if r.NeedsRestockNow() {
			n++
		}
	}
	return n
}

// LowStockEntries returns the snapshots flagged "yes", full rows preserved.
func LowStockEntries(rows []Row) []Row {
	snapshots := LatestStatus(rows)
	out := make([]Row, 0, len(snapshots))
	for _, r := range snapshots {
		if r.NeedsRestockNow() {
			out = append(out, r)
		}
	}
	return out
}

func sortByDate(rows []Row) []Row {
	sorted := make([]Row, len(rows))
	copy(sorted, rows)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.Before(b.Date)
		}
		return a.Seq < b.Seq
	})
	return sorted
}

// =============================================================================
// KPI SUMMARY
// =============================================================================

// Summary holds the four headline KPIs.
type Summary struct {
	TotalRevenue decimal.Decimal
	TotalUnits   int64
	RestockCount int

	// UniqueClients counts distinct clients over the full, unfiltered row
	// set regardless of the active filter.
	UniqueClients int

	// UniqueClientsFiltered counts distinct clients over the filtered rows.
	UniqueClientsFiltered int
}

// Summarize computes KPIs over the filtered rows; all is the unfiltered set
// used for UniqueClients.
func Summarize(rows, all []Row) Summary {
	s := Summary{TotalRevenue: decimal.Zero}
	for _, r := range rows {
		s.TotalRevenue = s.TotalRevenue.Add(r.Revenue)
		s.TotalUnits += r.UnitsSold
	}
	s.RestockCount = NeedsRestockCount(rows)
	s.UniqueClients = countClients(all)
	s.UniqueClientsFiltered = countClients(rows)
	return s
}

func countClients(rows []Row) int {
	seen := make(map[string]struct{})
	for _, r := range rows {
		seen[r.Client] = struct{}{}
	}
	return len(seen)
}

// =============================================================================
// GROUPED UNITS (chart series)
// =============================================================================

// GroupKey selects the grouping used by GroupedUnits.
type GroupKey int

const (
	GroupByProduct GroupKey = iota
	GroupByMonth
)

func (k GroupKey) String() string {
	switch k {
	case GroupByProduct:
		return "product"
	case GroupByMonth:
		return "month"
	default:
		return "unknown"
	}
}

// GroupedUnits sums units_sold by product or by YYYY-MM month.
// Map order is meaningless; use SortedGroups for chart order.
func GroupedUnits(rows []Row, key GroupKey) map[string]int64 {
	out := make(map[string]int64)
	for _, r := range rows {
		var k string
		switch key {
		case GroupByMonth:
			k = r.Date.Month()
			if k == "" {
				continue
			}
		default:
			k = r.Product
		}
		out[k] += r.UnitsSold
	}
	return out
}

// Group is one point of a chart series.
type Group struct {
	Key   string
	Units int64
}

// SortedGroups orders a GroupedUnits result for display: months ascending,
// products by units descending then name.
func SortedGroups(m map[string]int64, key GroupKey) []Group {
	out := make([]Group, 0, len(m))
	for k, v := range m {
		out = append(out, Group{Key: k, Units: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if key == GroupByMonth {
			return out[i].Key < out[j].Key
		}
		if out[i].Units != out[j].Units {
			return out[i].Units > out[j].Units
		}
		return out[i].Key < out[j].Key
	})
	return out
}

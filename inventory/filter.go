package inventory

import (
	"sort"
	"strings"

	"github.com/nissili/inventory-dashboard/locale"
)

// Filter is a conjunction of equality constraints. An empty value or an
// "all" sentinel in any locale matches every row.
type Filter struct {
	Client  string
	Product string
	Month   string // YYYY-MM
}

// Normalize trims values, clears "all" sentinels and validates Month.
func (f Filter) Normalize() (Filter, error) {
	out := Filter{
		Client:  vacuous(f.Client),
		Product: vacuous(f.Product),
		Month:   vacuous(f.Month),
	}
	if out.Month != "" {
		m, err := ParseMonth(out.Month)
		if err != nil {
			return Filter{}, err
		}
		out.Month = m
	}
	return out, nil
}

func vacuous(s string) string {
	s = strings.TrimSpace(s)
	if locale.IsAllSentinel(s) {
		return ""
	}
	return s
}

// IsEmpty reports whether no constraint is active.
func (f Filter) IsEmpty() bool {
	return f.Client == "" && f.Product == "" && f.Month == ""
}

// Match reports whether a row satisfies every active constraint.
// The filter must already be normalized.
func (f Filter) Match(r Row) bool {
	if f.Client != "" && r.Client != f.Client {
		return false
	}
	if f.Product != "" && r.Product != f.Product {
		return false
	}
	if f.Month != "" && r.Date.Month() != f.Month {
		return false
	}
	return true
}

// Apply returns the rows matching f, preserving order. The input slice is
// never modified.
func (f Filter) Apply(rows []Row) ([]Row, error) {
	nf, err := f.Normalize()
	if err != nil {
		return nil, err
	}
	if nf.IsEmpty() {
		out := make([]Row, len(rows))
		copy(out, rows)
		return out, nil
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if nf.Match(r) {
			out = append(out, r)
		}
	}
	return out, nil
}

// FilterOptions are the choices offered by the filter widgets.
type FilterOptions struct {
	Clients  []string
	Products []string
	Months   []string
}

// Options lists sorted distinct clients, products and months of rows.
func Options(rows []Row) FilterOptions {
	clients := map[string]struct{}{}
	products := map[string]struct{}{}
	months := map[string]struct{}{}
	for _, r := range rows {
		if r.Client != "" {
			clients[r.Client] = struct{}{}
		}
		if r.Product != "" {
			products[r.Product] = struct{}{}
		}
		if m := r.Date.Month(); m != "" {
			months[m] = struct{}{}
		}
	}
	return FilterOptions{
		Clients:  sortedKeys(clients),
		Products: sortedKeys(products),
		Months:   sortedKeys(months),
	}
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

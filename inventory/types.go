/*
Package inventory holds the transaction row model and the status resolver.

PURPOSE:
  Raw transaction rows are append-only history per (client, product) pair.
  Each row carries its own stock snapshot. The resolver reduces a row set
  to one current status per pair and derives KPIs and chart series from it.

KEY CONCEPTS:
  Row:       One transaction as loaded from the store. Immutable.
  Pair:      (client, product), the natural key for inventory status.
  Snapshot:  The latest Row for a Pair (max Date, then max Seq).
  Low stock: A snapshot whose restock flag normalizes to "yes".

STATELESS:
  Every operation is a pure function of its input slice. Nothing is cached
  between calls; the dashboard recomputes everything per request.

SEE ALSO:
  - resolver.go: LatestStatus, NeedsRestockCount, LowStockEntries, Summarize
  - filter.go:   Filter predicate applied before the resolver
  - locale/:     display labels for each field
*/
package inventory

import (
	"strings"

	"github.com/shopspring/decimal"
)

// RestockYes is the needs-restock sentinel, compared after normalization.
const RestockYes = "yes"

// Row is one ingested transaction.
type Row struct {
	// Seq is the 1-based ingestion order. It is the explicit tie-break when
	// two rows of the same pair share a date.
	Seq int64

	Date            Date
	Client          string
	Region          string
	Product         string
	UnitsSold       int64
	UnitPrice       decimal.Decimal
	Revenue         decimal.Decimal
	CurrentStock    int64
	NeedsRestock    string // raw free text as loaded
	ReorderLevel    int64
	LastRestockDate Date // zero when unknown
}

// Pair returns the row's natural key.
func (r Row) Pair() Pair {
	return Pair{Client: r.Client, Product: r.Product}
}

// NeedsRestockNow reports whether the row's flag is the "yes" sentinel.
func (r Row) NeedsRestockNow() bool {
	return NormalizeRestock(r.NeedsRestock) == RestockYes
}

// Pair is a (client, product) combination.
type Pair struct {
	Client  string
	Product string
}

// NormalizeRestock trims and lower-cases a restock flag. A blank flag
// normalizes to "" which never equals RestockYes.
func NormalizeRestock(flag string) string {
	return strings.ToLower(strings.TrimSpace(flag))
}

/*
store.go - Persistence interfaces for the inventory table

PURPOSE:
  The resolver never reads ambient state: callers pass rows explicitly,
  loaded through a Source. Implementations:
  - store/sqlite: production SQLite file
  - store/memory: in-memory, for tests and demos

FULL REFRESH CONTRACT:
  ReplaceInventory discards every previous row and translation and installs
  the new set atomically. On error the previous rows must still be readable.
*/
package inventory

import (
	"context"
	"time"
)

// Source yields the full row set in ingestion order.
type Source interface {
	LoadRows(ctx context.Context) ([]Row, error)
}

// Store is a Source that can be refreshed and reports its load history.
type Store interface {
	Source
	TranslationSource

	// ReplaceInventory swaps the whole table for rows and their value
	// translations. Destructive. tr may be nil.
	ReplaceInventory(ctx context.Context, rows []Row, tr Translations, run IngestRun) (IngestRun, error)

	// ListIngestRuns returns loads newest first; limit <= 0 means all.
	ListIngestRuns(ctx context.Context, limit int) ([]IngestRun, error)
}

// IngestRun records one full refresh.
type IngestRun struct {
	ID       string
	Source   string
	Locale   string
	RowCount int
	SHA256   string
	LoadedAt time.Time
}

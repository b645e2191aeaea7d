// Package memory provides an in-memory inventory.Store.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/nissili/inventory-dashboard/inventory"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu   sync.RWMutex
	rows []inventory.Row
	tr   inventory.Translations
	runs []inventory.IngestRun
	now  func() time.Time
}

// NewMemory returns a store preloaded with rows. Rows without a Seq are
// numbered in the order given.
func NewMemory(rows ...inventory.Row) *Memory {
	m := &Memory{now: time.Now}
	m.rows = cloneRows(rows)
	return m
}

// ReplaceInventory swaps the whole row set and its translations. The new
// set is fully built before the swap, so readers see either the old rows or
// the new ones.
func (m *Memory) ReplaceInventory(_ context.Context, rows []inventory.Row, tr inventory.Translations, run inventory.IngestRun) (inventory.IngestRun, error) {
	next := cloneRows(rows)
	nextTr := cloneTranslations(tr)

	m.mu.Lock()
	defer m.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.RowCount = len(next)
	run.LoadedAt = m.now().UTC()

	m.rows = next
	m.tr = nextTr
	m.runs = append(m.runs, run)
	return run, nil
}

// LoadRows returns a copy of the rows in ingestion order.
func (m *Memory) LoadRows(_ context.Context) ([]inventory.Row, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]inventory.Row, len(m.rows))
	copy(out, m.rows)
	return out, nil
}

// CountRows returns the number of rows.
func (m *Memory) CountRows(_ context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows), nil
}

// LoadTranslations returns a copy of the current translations.
func (m *Memory) LoadTranslations(_ context.Context) (inventory.Translations, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTranslations(m.tr), nil
}

// ListIngestRuns returns loads newest first. limit <= 0 means all.
func (m *Memory) ListIngestRuns(_ context.Context, limit int) ([]inventory.IngestRun, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]inventory.IngestRun, 0, len(m.runs))
	for i := len(m.runs) - 1; i >= 0; i-- {
		out = append(out, m.runs[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

var _ inventory.Store = (*Memory)(nil)

// =============================================================================
// SNAPSHOT / RESTORE
// =============================================================================

// Snapshot captures the current rows and run history.
type Snapshot struct {
	rows []inventory.Row
	tr   inventory.Translations
	runs []inventory.IngestRun
}

// Snapshot returns a copy of the current state, for tests that want to roll
// back between cases.
func (m *Memory) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	runs := make([]inventory.IngestRun, len(m.runs))
	copy(runs, m.runs)
	return Snapshot{rows: cloneRows(m.rows), tr: cloneTranslations(m.tr), runs: runs}
}

// Restore resets the store to a previous snapshot.
func (m *Memory) Restore(s Snapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.rows = s.rows
	m.tr = s.tr
	m.runs = s.runs
}

func cloneRows(rows []inventory.Row) []inventory.Row {
	out := make([]inventory.Row, len(rows))
	copy(out, rows)
	for i := range out {
		if out[i].Seq == 0 {
			out[i].Seq = int64(i + 1)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq < out[j].Seq })
	return out
}

func cloneTranslations(tr inventory.Translations) inventory.Translations {
	out := inventory.Translations{}
	for lang, byField := range tr {
		for field, values := range byField {
			for value, translated := range values {
				out.Add(lang, field, value, translated)
			}
		}
	}
	return out
}

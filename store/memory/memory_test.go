package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

func row(seq int64, client, product string) inventory.Row {
	return inventory.Row{Seq: seq, Date: inventory.NewDate(2025, 6, 1), Client: client, Product: product, UnitsSold: 1}
}

func TestMemory_NumbersRowsWithoutSeq(t *testing.T) {
	m := NewMemory(
		inventory.Row{Client: "A", Product: "x"},
		inventory.Row{Client: "B", Product: "y"},
	)

	rows, err := m.LoadRows(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, int64(1), rows[0].Seq)
	assert.Equal(t, int64(2), rows[1].Seq)
}

func TestMemory_ReplaceInventory(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(row(1, "A", "x"), row(2, "B", "y"))
	m.now = func() time.Time { return time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC) }

	run, err := m.ReplaceInventory(ctx, []inventory.Row{row(1, "C", "z")}, nil, inventory.IngestRun{Source: "c.csv", Locale: "en"})
	require.NoError(t, err)
	assert.NotEmpty(t, run.ID)
	assert.Equal(t, 1, run.RowCount)
	assert.Equal(t, 2025, run.LoadedAt.Year())

	rows, err := m.LoadRows(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "C", rows[0].Client)
}

func TestMemory_LoadRowsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(row(1, "A", "x"))

	rows, _ := m.LoadRows(ctx)
	rows[0].Client = "mutated"

	again, _ := m.LoadRows(ctx)
	assert.Equal(t, "A", again[0].Client)
}

func TestMemory_ListIngestRunsNewestFirst(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	for _, src := range []string{"a.csv", "b.csv", "c.csv"} {
		_, err := m.ReplaceInventory(ctx, nil, nil, inventory.IngestRun{Source: src})
		require.NoError(t, err)
	}

	runs, err := m.ListIngestRuns(ctx, 2)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, "c.csv", runs[0].Source)
	assert.Equal(t, "b.csv", runs[1].Source)

	all, _ := m.ListIngestRuns(ctx, 0)
	assert.Len(t, all, 3)
}

func TestMemory_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(row(1, "A", "x"))
	snap := m.Snapshot()

	_, err := m.ReplaceInventory(ctx, nil, nil, inventory.IngestRun{Source: "empty.csv"})
	require.NoError(t, err)

	m.Restore(snap)

	rows, _ := m.LoadRows(ctx)
	assert.Len(t, rows, 1)
	runs, _ := m.ListIngestRuns(ctx, 0)
	assert.Empty(t, runs)
}

func TestMemory_Translations(t *testing.T) {
	ctx := context.Background()
	m := NewMemory(row(1, "A", "x"))
	snap := m.Snapshot()

	tr := inventory.Translations{}
	tr.Add(locale.English, locale.FieldProduct, "ウィジェット", "Widget")
	_, err := m.ReplaceInventory(ctx, []inventory.Row{row(1, "山田商事", "ウィジェット")}, tr, inventory.IngestRun{Source: "both.csv"})
	require.NoError(t, err)

	// The store keeps its own copy.
	tr.Add(locale.English, locale.FieldClient, "山田商事", "Yamada Trading")
	got, err := m.LoadTranslations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Len())

	rows, err := inventory.LoadLocalized(ctx, m, locale.English)
	require.NoError(t, err)
	assert.Equal(t, "Widget", rows[0].Product)
	assert.Equal(t, "山田商事", rows[0].Client)

	m.Restore(snap)
	got, _ = m.LoadTranslations(ctx)
	assert.Zero(t, got.Len())
}

func TestMemory_CountRows(t *testing.T) {
	m := NewMemory(row(1, "A", "x"), row(2, "B", "y"))

	n, err := m.CountRows(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

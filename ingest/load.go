package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/nissili/inventory-dashboard/inventory"
)

type rowCounter interface {
	CountRows(ctx context.Context) (int, error)
}

// LoadFile parses the CSV at path and replaces the store's inventory with
// its rows. The file is fully validated before the store is touched.
func LoadFile(ctx context.Context, store inventory.Store, path string, opts Options, log zerolog.Logger) (inventory.IngestRun, error) {
	f, err := os.Open(path)
	if err != nil {
		return inventory.IngestRun{}, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	res, err := Parse(f, opts)
	if err != nil {
		return inventory.IngestRun{}, fmt.Errorf("%s: %w", path, err)
	}
	log.Info().
		Str("csv", path).
		Str("locale", string(res.Locale)).
		Int("rows", len(res.Rows)).
		Int("translations", res.Translations.Len()).
		Msg("parsed file")

	if c, ok := store.(rowCounter); ok {
		if n, err := c.CountRows(ctx); err == nil && n > 0 {
			log.Warn().Int("existing_rows", n).Int("new_rows", len(res.Rows)).
				Msg("replacing the existing inventory table")
		}
	}

	run, err := store.ReplaceInventory(ctx, res.Rows, res.Translations, inventory.IngestRun{
		Source: filepath.Base(path),
		Locale: string(res.Locale),
		SHA256: res.SHA256,
	})
	if err != nil {
		return run, fmt.Errorf("failed to replace inventory: %w", err)
	}
	return run, nil
}

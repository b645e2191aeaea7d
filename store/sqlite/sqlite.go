/*
Package sqlite provides the SQLite-backed inventory store.

PURPOSE:
  Holds the single inventory table the dashboard reads, plus a history of
  loads. The dashboard only reads; the load command replaces the table.

KEY TABLES:
  inventory:     One row per ingested transaction, keyed by seq
  translations:  Other-language text values of the current load
  ingest_runs:   One row per successful full refresh

FULL REFRESH (ReplaceInventory):
  Loads are destructive: the previous table is discarded. To never leave an
  empty or half-written table behind, the replace runs in ONE transaction:
  1. Create inventory_staging and insert every row
  2. Drop inventory, rename staging to inventory, rebuild indexes
  3. Replace the translations of the previous load
  4. Record the ingest run
  5. Commit
  Any failure rolls back and the previous table stays as it was.

ORDERING:
  LoadRows returns rows ordered by seq (ingestion order). seq is the
  tie-break of inventory.LatestStatus.

CONCURRENCY:
  Uses sync.RWMutex. The server only reads; loads are expected to run
  out-of-band while no dashboard is serving the same file.

MONEY:
  unit_price and revenue are stored as decimal TEXT, never REAL.

USAGE:
  store, err := sqlite.New("./nissili_inventory.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  rows, err := store.LoadRows(ctx)

SEE ALSO:
  - store/memory: in-memory implementation for tests
  - ingest/:      produces the rows for ReplaceInventory
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/nissili/inventory-dashboard/inventory"
	"github.com/nissili/inventory-dashboard/locale"
)

// Store implements inventory.Store using SQLite.
type Store struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Each connection would otherwise get its own empty database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db, path: dbPath}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Path returns the database path the store was opened with.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func inventoryTableDDL(table string) string {
	return fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS %s (
		seq INTEGER PRIMARY KEY,
		date TEXT NOT NULL,
		client TEXT NOT NULL,
		region TEXT NOT NULL DEFAULT '',
		product TEXT NOT NULL,
		units_sold INTEGER NOT NULL,
		unit_price TEXT NOT NULL,
		revenue TEXT NOT NULL,
		current_stock INTEGER NOT NULL,
		needs_restock TEXT,
		reorder_level INTEGER NOT NULL,
		last_restock_date TEXT
	);`, table)
}

const inventoryIndexes = `
	-- Latest status per pair (hot path)
	CREATE INDEX IF NOT EXISTS idx_inventory_pair_date
		ON inventory(client, product, date);
	CREATE INDEX IF NOT EXISTS idx_inventory_date
		ON inventory(date);
`

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := inventoryTableDDL("inventory") + inventoryIndexes + `
	-- Text values of the current load in the other language
	CREATE TABLE IF NOT EXISTS translations (
		lang TEXT NOT NULL,
		field TEXT NOT NULL,
		value TEXT NOT NULL,
		translated TEXT NOT NULL,
		PRIMARY KEY (lang, field, value)
	);

	-- Load history
	CREATE TABLE IF NOT EXISTS ingest_runs (
		id TEXT PRIMARY KEY,
		source TEXT NOT NULL,
		locale TEXT NOT NULL,
		row_count INTEGER NOT NULL,
		sha256 TEXT,
		loaded_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_ingest_runs_loaded_at
		ON ingest_runs(loaded_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// FULL REFRESH
// =============================================================================

// ReplaceInventory discards the current inventory table and translations and
// installs rows and tr in their place, atomically. The returned run has ID,
// RowCount and LoadedAt filled in.
func (s *Store) ReplaceInventory(ctx context.Context, rows []inventory.Row, tr inventory.Translations, run inventory.IngestRun) (inventory.IngestRun, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	run.RowCount = len(rows)
	run.LoadedAt = time.Now().UTC()

	sqlTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return run, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer sqlTx.Rollback()

	stmts := []string{
		`DROP TABLE IF EXISTS inventory_staging`,
		inventoryTableDDL("inventory_staging"),
	}
	for _, stmt := range stmts {
		if _, err := sqlTx.ExecContext(ctx, stmt); err != nil {
			return run, fmt.Errorf("failed to prepare staging table: %w", err)
		}
	}

	if err := insertRows(ctx, sqlTx, "inventory_staging", rows); err != nil {
		return run, err
	}

	swap := []string{
		`DROP TABLE IF EXISTS inventory`,
		`ALTER TABLE inventory_staging RENAME TO inventory`,
		inventoryIndexes,
	}
	for _, stmt := range swap {
		if _, err := sqlTx.ExecContext(ctx, stmt); err != nil {
			return run, fmt.Errorf("failed to swap inventory table: %w", err)
		}
	}

	if err := replaceTranslations(ctx, sqlTx, tr); err != nil {
		return run, err
	}

	_, err = sqlTx.ExecContext(ctx, `
		INSERT INTO ingest_runs (id, source, locale, row_count, sha256, loaded_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.Locale, run.RowCount, nullString(run.SHA256),
		run.LoadedAt.Format(time.RFC3339),
	)
	if err != nil {
		return run, fmt.Errorf("failed to record ingest run: %w", err)
	}

	if err := sqlTx.Commit(); err != nil {
		return run, fmt.Errorf("failed to commit inventory replace: %w", err)
	}
	return run, nil
}

func insertRows(ctx context.Context, tx *sql.Tx, table string, rows []inventory.Row) error {
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`
		INSERT INTO %s
		(seq, date, client, region, product, units_sold, unit_price, revenue,
		 current_stock, needs_restock, reorder_level, last_restock_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`, table))
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, r := range rows {
		seq := r.Seq
		if seq == 0 {
			seq = int64(i + 1)
		}
		_, err := stmt.ExecContext(ctx,
			seq,
			r.Date.String(),
			r.Client,
			r.Region,
			r.Product,
			r.UnitsSold,
			r.UnitPrice.String(),
			r.Revenue.String(),
			r.CurrentStock,
			nullString(r.NeedsRestock),
			r.ReorderLevel,
			nullString(r.LastRestockDate.String()),
		)
		if err != nil {
			return fmt.Errorf("failed to insert row %d: %w", seq, err)
		}
	}
	return nil
}

func replaceTranslations(ctx context.Context, tx *sql.Tx, tr inventory.Translations) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM translations`); err != nil {
		return fmt.Errorf("failed to clear translations: %w", err)
	}
	if tr.Len() == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO translations (lang, field, value, translated)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare translation insert: %w", err)
	}
	defer stmt.Close()

	for lang, byField := range tr {
		for field, values := range byField {
			for value, translated := range values {
				if _, err := stmt.ExecContext(ctx, string(lang), field.String(), value, translated); err != nil {
					return fmt.Errorf("failed to insert translation %q: %w", value, err)
				}
			}
		}
	}
	return nil
}

// =============================================================================
// READS
// =============================================================================

const selectRows = `
	SELECT seq, date, client, region, product, units_sold, unit_price, revenue,
	       current_stock, needs_restock, reorder_level, last_restock_date
	FROM inventory
	ORDER BY seq ASC
`

// LoadRows returns every inventory row in ingestion order.
func (s *Store) LoadRows(ctx context.Context) ([]inventory.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRows(ctx, selectRows)
}

// PreviewRows returns the first limit rows, the smoke-test query.
func (s *Store) PreviewRows(ctx context.Context, limit int) ([]inventory.Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.queryRows(ctx, selectRows+" LIMIT ?", limit)
}

// CountRows returns the number of inventory rows.
func (s *Store) CountRows(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM inventory").Scan(&count)
	return count, err
}

func (s *Store) queryRows(ctx context.Context, query string, args ...any) ([]inventory.Row, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query inventory: %w", err)
	}
	defer rows.Close()

	out := []inventory.Row{}
	for rows.Next() {
		r, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}

	return out, rows.Err()
}

func scanRow(rows *sql.Rows) (inventory.Row, error) {
	var (
		r            inventory.Row
		date         string
		unitPrice    string
		revenue      string
		needsRestock sql.NullString
		lastRestock  sql.NullString
	)

	err := rows.Scan(
		&r.Seq, &date, &r.Client, &r.Region, &r.Product, &r.UnitsSold,
		&unitPrice, &revenue, &r.CurrentStock, &needsRestock,
		&r.ReorderLevel, &lastRestock,
	)
	if err != nil {
		return r, fmt.Errorf("failed to scan inventory row: %w", err)
	}

	if r.Date, err = inventory.ParseDate(date); err != nil {
		return r, fmt.Errorf("row %d: %w", r.Seq, err)
	}
	if lastRestock.Valid && lastRestock.String != "" {
		if r.LastRestockDate, err = inventory.ParseDate(lastRestock.String); err != nil {
			return r, fmt.Errorf("row %d: %w", r.Seq, err)
		}
	}
	r.UnitPrice = parseDecimal(unitPrice)
	r.Revenue = parseDecimal(revenue)
	r.NeedsRestock = needsRestock.String

	return r, nil
}

// LoadTranslations returns the other-language text values of the current
// load. Empty when the last file carried a single language.
func (s *Store) LoadTranslations(ctx context.Context) (inventory.Translations, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT lang, field, value, translated FROM translations`)
	if err != nil {
		return nil, fmt.Errorf("failed to query translations: %w", err)
	}
	defer rows.Close()

	fields := map[string]locale.Field{}
	for _, f := range inventory.TranslatedFields {
		fields[f.String()] = f
	}

	tr := inventory.Translations{}
	for rows.Next() {
		var lang, field, value, translated string
		if err := rows.Scan(&lang, &field, &value, &translated); err != nil {
			return nil, fmt.Errorf("failed to scan translation: %w", err)
		}
		f, ok := fields[field]
		if !ok {
			continue
		}
		tr.Add(locale.Lang(lang), f, value, translated)
	}
	return tr, rows.Err()
}

// =============================================================================
// INGEST RUNS
// =============================================================================

// ListIngestRuns returns the most recent loads first. limit <= 0 means all.
func (s *Store) ListIngestRuns(ctx context.Context, limit int) ([]inventory.IngestRun, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `
		SELECT id, source, locale, row_count, sha256, loaded_at
		FROM ingest_runs
		ORDER BY loaded_at DESC, rowid DESC
	`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query ingest runs: %w", err)
	}
	defer rows.Close()

	runs := []inventory.IngestRun{}
	for rows.Next() {
		var (
			run      inventory.IngestRun
			sha      sql.NullString
			loadedAt string
		)
		if err := rows.Scan(&run.ID, &run.Source, &run.Locale, &run.RowCount, &sha, &loadedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ingest run: %w", err)
		}
		run.SHA256 = sha.String
		run.LoadedAt, _ = time.Parse(time.RFC3339, loadedAt)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

var _ inventory.Store = (*Store)(nil)

// =============================================================================
// HELPERS
// =============================================================================

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func parseDecimal(value string) decimal.Decimal {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero
	}
	return d
}

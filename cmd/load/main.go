/*
main.go - CSV to SQLite loader

PURPOSE:
  Replaces the inventory table with the contents of one CSV export.
  DESTRUCTIVE: every existing row is discarded. The swap is atomic, so a
  file that fails validation leaves the previous table in place.

COMMAND-LINE FLAGS:
  -csv       CSV file to load (required)
  -db        SQLite database path (default nissili_inventory.db)
  -locale    ja | en to force the column set (default: detect)
  -encoding  input encoding label, e.g. shift_jis (default utf-8)

EXAMPLES:
  ./load -csv=./data/inventory_ja.csv
  ./load -csv=export.csv -locale=en -db=/var/lib/nissili/inventory.db
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/nissili/inventory-dashboard/config"
	"github.com/nissili/inventory-dashboard/ingest"
	"github.com/nissili/inventory-dashboard/locale"
	"github.com/nissili/inventory-dashboard/logger"
	"github.com/nissili/inventory-dashboard/store/sqlite"
)

func main() {
	log := logger.New()

	csvPath := flag.String("csv", "", "CSV file to load")
	dbPath := flag.String("db", config.DefaultDBPath, "SQLite database path")
	lang := flag.String("locale", "", "Force the column set: ja or en (default: detect)")
	encoding := flag.String("encoding", "", "Input encoding label, e.g. shift_jis")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -csv is required")
		flag.Usage()
		os.Exit(2)
	}

	opts := ingest.Options{Encoding: *encoding}
	if *lang != "" {
		l, ok := locale.ParseLang(*lang)
		if !ok {
			log.Fatal().Str("locale", *lang).Msg("unknown locale, expected ja or en")
		}
		opts.Locale = l
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", *dbPath).Msg("failed to open database")
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	ctx = logger.WithContext(ctx, log)

	run, err := ingest.LoadFile(ctx, store, *csvPath, opts, log)
	if err != nil {
		store.Close()
		log.Fatal().Err(err).Msg("load failed")
	}

	log.Info().
		Str("run_id", run.ID).
		Str("db", *dbPath).
		Int("rows", run.RowCount).
		Str("locale", run.Locale).
		Msg("inventory table replaced")
	fmt.Printf("Imported %d rows into %s\n", run.RowCount, *dbPath)
}

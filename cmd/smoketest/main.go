// Command smoketest opens the inventory database and prints the first rows,
// confirming that a load produced a readable table.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/nissili/inventory-dashboard/config"
	"github.com/nissili/inventory-dashboard/locale"
	"github.com/nissili/inventory-dashboard/logger"
	"github.com/nissili/inventory-dashboard/store/sqlite"
)

func main() {
	log := logger.New()

	dbPath := flag.String("db", config.DefaultDBPath, "SQLite database path")
	n := flag.Int("n", 5, "Number of rows to query")
	flag.Parse()

	if _, err := os.Stat(*dbPath); err != nil {
		log.Fatal().Err(err).Str("db", *dbPath).Msg("database not found")
	}

	store, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatal().Err(err).Str("db", *dbPath).Msg("failed to open database")
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	total, err := store.CountRows(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to count rows")
	}
	rows, err := store.PreviewRows(ctx, *n)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to query rows")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(locale.DisplayLabels(locale.English), "\t"))
	for _, r := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\t%s\t%d\t%s\t%d\t%s\n",
			r.Date, r.Client, r.Region, r.Product, r.UnitsSold,
			r.UnitPrice, r.Revenue, r.CurrentStock, r.NeedsRestock,
			r.ReorderLevel, locale.FormatDate(r.LastRestockDate.Time, locale.English))
	}
	w.Flush()

	log.Info().Int("shown", len(rows)).Int("total", total).Msg("smoke test passed")
}

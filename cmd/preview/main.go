// Command preview prints the first rows of a CSV file and a per-column
// summary, to check an export before loading it.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/nissili/inventory-dashboard/ingest"
	"github.com/nissili/inventory-dashboard/logger"
)

func main() {
	log := logger.New()

	csvPath := flag.String("csv", "", "CSV file to preview")
	n := flag.Int("n", 5, "Number of rows to show")
	encoding := flag.String("encoding", "", "Input encoding label, e.g. shift_jis")
	flag.Parse()

	if *csvPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -csv is required")
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("csv", *csvPath).Msg("failed to open file")
	}
	defer f.Close()

	p, err := ingest.PreviewFile(f, *n, *encoding)
	if err != nil {
		log.Fatal().Err(err).Str("csv", *csvPath).Msg("failed to read file")
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "First %d rows of %s:\n", len(p.Head), *csvPath)
	fmt.Fprintln(w, strings.Join(p.Header, "\t"))
	for _, rec := range p.Head {
		fmt.Fprintln(w, strings.Join(rec, "\t"))
	}

	fmt.Fprintf(w, "\n%d rows, %d columns:\n", p.Rows, len(p.Columns))
	fmt.Fprintln(w, "#\tColumn\tNon-blank\tKind")
	for i, c := range p.Columns {
		fmt.Fprintf(w, "%d\t%s\t%d\t%s\n", i, c.Name, c.NonBlank, c.Kind)
	}
	w.Flush()
}

// Command generate-workbook writes a synthetic maintenance workbook for
// local development: a KPI catalogue plus fake intervention data.
package main

import (
	"flag"
	"log"

	"github.com/ignite/fieldops-monitor/internal/mockdata"
)

func main() {
	out := flag.String("out", "data/maintenance.xlsx", "output workbook path")
	rows := flag.Int("rows", 500, "number of raw intervention rows")
	seed := flag.Int64("seed", 0, "random seed (same seed, same workbook)")
	flag.Parse()

	if err := mockdata.Generate(*out, *rows, *seed); err != nil {
		log.Fatalf("Failed to generate workbook: %v", err)
	}
	log.Printf("Wrote %s with %d raw rows", *out, *rows)
}

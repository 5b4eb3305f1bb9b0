// Package main provides a read-only inspection tool for the StakeMetrics
// database: active generation, document history, person counts per unit,
// stored periods and registered aliases.
//
// Usage:
//
//	DATA_PATH=~/StakeMetrics/data go run ./cmd/dbinspect
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/stakemetrics/stakemetrics-server/internal/store/sqlite"
)

func main() {
	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/StakeMetrics/data")
	}

	dbPath := filepath.Join(dataPath, "stakemetrics.db")

	st, err := sqlite.Open(dbPath, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer st.Close()

	ctx := context.Background()

	fmt.Println("=== Database Inspection ===")
	fmt.Println()

	if active, err := st.GetActiveImport(ctx); err == nil {
		fmt.Printf("Active generation: %s (document %s, activated %v)\n",
			active.Generation, active.DocumentID, active.ActivatedAt)
	} else {
		fmt.Println("Active generation: none (no roster imported yet)")
	}

	persons, err := st.ListPersons(ctx)
	if err != nil {
		log.Fatalf("Failed to list persons: %v", err)
	}

	byUnit := make(map[string]int)
	enriched := 0
	for _, p := range persons {
		byUnit[p.Unit]++
		if p.Enriched {
			enriched++
		}
	}

	fmt.Printf("\nPersons: %d total, %d enriched\n", len(persons), enriched)

	units := make([]string, 0, len(byUnit))
	for unit := range byUnit {
		units = append(units, unit)
	}
	sort.Strings(units)
	for _, unit := range units {
		name := unit
		if name == "" {
			name = "(no unit)"
		}
		fmt.Printf("  %-30s %d\n", name, byUnit[unit])
	}

	docs, err := st.ListDocuments(ctx)
	if err != nil {
		log.Fatalf("Failed to list documents: %v", err)
	}

	fmt.Printf("\nDocuments: %d\n", len(docs))
	for _, d := range docs {
		fmt.Printf("  %-12s %-10s %5d rows  %s (%s)\n",
			d.ID, d.Status, d.RowCount, d.Filename, d.Kind)
	}

	periods, err := st.ListPeriods(ctx)
	if err != nil {
		log.Fatalf("Failed to list periods: %v", err)
	}

	byYear := make(map[int]int)
	for _, p := range periods {
		byYear[p.Year]++
	}
	years := make([]int, 0, len(byYear))
	for y := range byYear {
		years = append(years, y)
	}
	sort.Ints(years)

	fmt.Printf("\nPeriods: %d\n", len(periods))
	for _, y := range years {
		fmt.Printf("  %d: %d periods\n", y, byYear[y])
	}

	aliases, err := st.ListAliases(ctx)
	if err != nil {
		log.Fatalf("Failed to list aliases: %v", err)
	}

	fmt.Printf("\nRegistered aliases: %d\n", len(aliases))
	for _, a := range aliases {
		fmt.Printf("  %-15s %q -> %s\n", a.Field, a.Raw, a.Category)
	}
}

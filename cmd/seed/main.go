// Package main provides a tool to seed the standard reporting periods for a
// year: twelve months, four quarters and the year itself.
//
// Usage:
//
//	DATA_PATH=~/StakeMetrics/data go run ./cmd/seed --year 2026
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/stakemetrics/stakemetrics-server/internal/logger"
	"github.com/stakemetrics/stakemetrics-server/internal/service"
	"github.com/stakemetrics/stakemetrics-server/internal/store/sqlite"
)

var year = flag.Int("year", time.Now().Year(), "Calendar year to seed")

func main() {
	flag.Parse()

	dataPath := os.Getenv("DATA_PATH")
	if dataPath == "" {
		dataPath = os.ExpandEnv("$HOME/StakeMetrics/data")
	}

	dbPath := filepath.Join(dataPath, "stakemetrics.db")
	fmt.Printf("Opening database at: %s\n", dbPath)

	if err := os.MkdirAll(dataPath, 0o755); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	lg := logger.New(logger.Config{Format: "pretty"})

	st, err := sqlite.Open(dbPath, lg.Logger)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer st.Close()

	periods := service.NewPeriodService(st, lg)

	created, err := periods.SeedYear(context.Background(), *year)
	if err != nil {
		log.Fatalf("Failed to seed periods for %d: %v", *year, err)
	}

	fmt.Printf("Created %d periods for %d:\n", len(created), *year)
	for _, p := range created {
		fmt.Printf("  %-16s %s  %s .. %s\n",
			p.Name, p.Type,
			p.StartDate.Format("2006-01-02"),
			p.EndDate.Format("2006-01-02"))
	}

	fmt.Println("Seeding complete!")
}

package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/CampusPulse/CP-Backend/internal/ingest"
	"github.com/joho/godotenv"
)

func main() {
	_ = godotenv.Load(".env.local")

	geojson := flag.String("geojson", "data/campus_buildings_categories.geojson", "path to the facility boundary GeoJSON")
	csvPath := flag.String("csv", "data/ten_min_occupancy_summary.csv", "path to the ten-minute occupancy CSV")
	skipDates := flag.String("skip-dates", "", "comma-separated dates (YYYY-MM-DD) to exclude, e.g. incomplete trailing days")
	wipe := flag.Bool("wipe", false, "truncate campus tables before import")
	flag.Parse()

	var skip []string
	for _, d := range strings.Split(*skipDates, ",") {
		if d = strings.TrimSpace(d); d != "" {
			skip = append(skip, d)
		}
	}

	cfg := ingest.Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		GeoJSONPath: *geojson,
		CSVPath:     *csvPath,
		SkipDates:   skip,
		Wipe:        *wipe,
	}
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	if err := ingest.Run(cfg); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

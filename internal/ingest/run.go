package ingest

import (
	"errors"
	"fmt"
	"log"

	"github.com/CampusPulse/CP-Backend/internal/campus"
	"github.com/CampusPulse/CP-Backend/internal/db"
	"github.com/CampusPulse/CP-Backend/internal/occupancy"
	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Config struct {
	DatabaseURL string
	GeoJSONPath string
	CSVPath     string
	SkipDates   []string
	Wipe        bool
}

func Run(cfg Config) error {
	if !cfg.Wipe {
		return errors.New("refusing to run: set Wipe=true (this importer truncates campus tables)")
	}

	specs, err := ParseGeoJSON(cfg.GeoJSONPath)
	if err != nil {
		return err
	}

	skip := make(map[string]bool, len(cfg.SkipDates))
	for _, d := range cfg.SkipDates {
		skip[d] = true
	}
	occ, err := ParseOccupancyCSV(cfg.CSVPath, skip)
	if err != nil {
		return err
	}

	conn, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		return err
	}
	if err := db.EnsureSchema(conn, "campus"); err != nil {
		return err
	}
	if err := conn.AutoMigrate(&campus.FacilityRow{}, &occupancy.OccupancyRow{}); err != nil {
		return err
	}

	err = conn.Transaction(func(tx *gorm.DB) error {
		if err := wipeCampus(tx); err != nil {
			return err
		}

		facilities := make([]campus.FacilityRow, 0, len(specs))
		for _, s := range specs {
			facilities = append(facilities, campus.FacilityRow{
				ID:          uuid.New(),
				CanonicalID: s.Code,
				DisplayName: s.Name,
				Category:    s.Category,
				Geometry:    s.Geometry,
				RawKeys:     s.RawKeys,
			})
		}
		if err := tx.CreateInBatches(&facilities, 500).Error; err != nil {
			return fmt.Errorf("insert facilities: %w", err)
		}

		rows := make([]occupancy.OccupancyRow, 0, len(occ))
		for _, o := range occ {
			rows = append(rows, occupancy.OccupancyRow{
				ID:     uuid.New(),
				RawKey: o.RawKey,
				Date:   o.Date,
				Bucket: o.Bucket,
				Count:  o.Count,
			})
		}
		if err := tx.CreateInBatches(&rows, 1000).Error; err != nil {
			return fmt.Errorf("insert occupancy records: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Printf("[ingest] imported %d facilities and %d occupancy records", len(specs), len(occ))
	return nil
}

func wipeCampus(tx *gorm.DB) error {
	sql := `
		TRUNCATE TABLE
			campus.occupancy_records,
			campus.facilities
		CASCADE;
	`
	return tx.Exec(sql).Error
}

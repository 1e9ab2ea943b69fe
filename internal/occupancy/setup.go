package occupancy

import (
	"log"

	"github.com/CampusPulse/CP-Backend/internal/campus"
	"github.com/CampusPulse/CP-Backend/internal/db"
)

// Idx is the process-wide occupancy index. Assigned exactly once in Init and
// immutable afterward.
var Idx *Index

// Init builds the occupancy index from the persisted dataset. campus.Init
// must have run first: index construction bridges every raw key through the
// facility registry.
func Init() {
	if campus.Reg == nil {
		log.Fatal("occupancy.Init called before campus.Init")
	}
	if err := db.DB.AutoMigrate(&OccupancyRow{}); err != nil {
		log.Fatal("Failed to auto-migrate occupancy records: ", err)
	}

	var rows []OccupancyRow
	if err := db.DB.Find(&rows).Error; err != nil {
		log.Fatal("Failed to load occupancy records: ", err)
	}
	if len(rows) == 0 {
		log.Fatal("No records in campus.occupancy_records; run cmd/seed first")
	}

	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		records = append(records, Record{
			RawKey: row.RawKey,
			Date:   row.Date,
			Bucket: row.Bucket,
			Count:  row.Count,
		})
	}

	Idx = Build(records, campus.Reg)
}

package occupancy

import "github.com/google/uuid"

// OccupancyRow is one pre-aggregated ten-minute count as persisted by
// cmd/seed. RawKey is the log-layer building key before bridging; at most one
// row exists per (raw_key, date, bucket).
type OccupancyRow struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	RawKey string    `gorm:"index:idx_occupancy_slot,unique,priority:1" json:"raw_key"`
	Date   string    `gorm:"index:idx_occupancy_slot,unique,priority:2" json:"date"`
	Bucket int       `gorm:"index:idx_occupancy_slot,unique,priority:3" json:"bucket"`
	Count  int       `json:"count"`
}

func (OccupancyRow) TableName() string {
	return "campus.occupancy_records"
}

// Record is the in-memory form the index is built from.
type Record struct {
	RawKey string
	Date   string
	Bucket int
	Count  int
}

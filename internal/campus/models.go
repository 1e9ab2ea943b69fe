package campus

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type Category string

const (
	CategoryResidential    Category = "Residential"
	CategoryNonResidential Category = "Non-Residential"
	CategoryUnknown        Category = "Unknown"
)

// Facility is the canonical in-memory record for one logical building or
// space. CanonicalID is the primary spatial code and never changes after
// load; RawKeys holds every spatial-layer key that refers to this facility
// (wing codes, unpadded variants, etc).
type Facility struct {
	CanonicalID string          `json:"canonical_id"`
	DisplayName string          `json:"display_name"`
	Category    Category        `json:"category"`
	Geometry    json.RawMessage `json:"-"`
	RawKeys     []string        `json:"raw_keys,omitempty"`
}

// FacilityRow is the persisted form of a facility, written by cmd/seed and
// bulk-loaded once at startup.
type FacilityRow struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CanonicalID string         `gorm:"uniqueIndex" json:"canonical_id"`
	DisplayName string         `json:"display_name"`
	Category    string         `json:"category"`
	Geometry    string         `json:"geometry"`
	RawKeys     pq.StringArray `gorm:"type:text[]" json:"raw_keys"`
}

func (FacilityRow) TableName() string {
	return "campus.facilities"
}

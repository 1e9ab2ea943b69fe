package campus

import (
	"encoding/json"
	"log"
	"os"

	"github.com/CampusPulse/CP-Backend/internal/db"
)

// Reg is the process-wide facility registry. It is assigned exactly once in
// Init, before the HTTP listener starts, and is immutable afterward.
var Reg *Registry

func Init() {
	if err := db.EnsureSchema(db.DB, "campus"); err != nil {
		log.Fatal("Failed to ensure schema campus: ", err)
	}
	if err := db.DB.AutoMigrate(&FacilityRow{}); err != nil {
		log.Fatal("Failed to auto-migrate facilities: ", err)
	}

	var rows []FacilityRow
	if err := db.DB.Order("canonical_id").Find(&rows).Error; err != nil {
		log.Fatal("Failed to load facilities: ", err)
	}
	if len(rows) == 0 {
		log.Fatal("No facilities in campus.facilities; run cmd/seed first")
	}

	facilities := make([]Facility, 0, len(rows))
	for _, row := range rows {
		facilities = append(facilities, Facility{
			CanonicalID: row.CanonicalID,
			DisplayName: row.DisplayName,
			Category:    Category(row.Category),
			Geometry:    json.RawMessage(row.Geometry),
			RawKeys:     row.RawKeys,
		})
	}

	aliasPath := os.Getenv("ALIASES_PATH")
	if aliasPath == "" {
		aliasPath = "aliases.yaml"
	}
	aliases, err := LoadAliases(aliasPath)
	if err != nil {
		if os.IsNotExist(err) {
			log.Printf("[campus] WARNING: no alias table at %s; colloquialism tier disabled", aliasPath)
			aliases = map[string]string{}
		} else {
			log.Fatal("Failed to load alias table: ", err)
		}
	}

	reg, err := NewRegistry(facilities, aliases)
	if err != nil {
		log.Fatal("Failed to build facility registry: ", err)
	}

	Reg = reg
	log.Printf("[campus] registry ready: %d facilities, %d aliases", len(reg.facilities), len(reg.aliases))
}

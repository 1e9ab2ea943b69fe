package campus

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

type FacilityOut struct {
	CanonicalID string          `json:"canonical_id"`
	DisplayName string          `json:"display_name"`
	Category    Category        `json:"category"`
	Geometry    json.RawMessage `json:"geometry"`
}

type ResolveOut struct {
	CanonicalID string `json:"canonical_id"`
	DisplayName string `json:"display_name"`
}

// SearchHandler answers GET /campus/search?q=. An empty query is a valid
// rejected result, not a request error.
func SearchHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Reg.Search(r.URL.Query().Get("q")))
}

// GeometryHandler returns every facility with its geometry blob and category.
// The payload is time-independent; the client joins occupancy snapshots onto
// it by canonical id.
func GeometryHandler(w http.ResponseWriter, r *http.Request) {
	facilities := Reg.Facilities()
	out := make([]FacilityOut, 0, len(facilities))
	for _, f := range facilities {
		out = append(out, FacilityOut{
			CanonicalID: f.CanonicalID,
			DisplayName: f.DisplayName,
			Category:    f.Category,
			Geometry:    f.Geometry,
		})
	}
	writeJSON(w, out)
}

// ResolveHandler answers GET /campus/resolve/{key}: a direct identifier
// bridge lookup for tooling and debugging.
func ResolveHandler(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	cid, ok := Reg.Resolve(key)
	if !ok {
		http.Error(w, "Unknown facility key", http.StatusNotFound)
		return
	}
	f := Reg.FacilityByID(cid)
	writeJSON(w, ResolveOut{CanonicalID: f.CanonicalID, DisplayName: f.DisplayName})
}

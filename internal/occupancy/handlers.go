package occupancy

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/CampusPulse/CP-Backend/internal/campus"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// parseDate validates the date query parameter. Malformed input is an
// InvalidInput error; whether the date exists in the index is a separate
// question the handlers answer individually.
func parseDate(r *http.Request) (string, error) {
	date := r.URL.Query().Get("date")
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return "", errors.New("date must be YYYY-MM-DD")
	}
	return date, nil
}

// DatesHandler answers GET /occupancy/dates.
func DatesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Idx.Dates())
}

type MetadataOut struct {
	Dates      []string `json:"dates"`
	Categories []string `json:"categories"`
}

// MetadataHandler answers GET /occupancy/metadata with the date list and the
// known facility categories.
func MetadataHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, MetadataOut{
		Dates: Idx.Dates(),
		Categories: []string{
			string(campus.CategoryResidential),
			string(campus.CategoryNonResidential),
			string(campus.CategoryUnknown),
		},
	})
}

// RangesHandler answers GET /occupancy/ranges with the fixed color-scale
// bounds.
func RangesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, Idx.GlobalRanges())
}

// HeatmapHandler answers GET /occupancy/heatmap?date&hour&minute with a
// canonical-code -> count map for one ten-minute bucket. The minute floors to
// its bucket; facilities missing from the map were empty.
func HeatmapHandler(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	hour, err := strconv.Atoi(r.URL.Query().Get("hour"))
	if err != nil || hour < 0 || hour > 23 {
		http.Error(w, "hour must be 0-23", http.StatusBadRequest)
		return
	}
	minute, err := strconv.Atoi(r.URL.Query().Get("minute"))
	if err != nil || minute < 0 || minute > 59 {
		http.Error(w, "minute must be 0-59", http.StatusBadRequest)
		return
	}
	if !Idx.HasDate(date) {
		http.Error(w, "No data for date", http.StatusNotFound)
		return
	}
	writeJSON(w, Idx.Snapshot(date, BucketOf(hour, minute)))
}

// TimelineHandler answers GET /occupancy/timeline?date. A date with no data
// returns an empty list: absence of data for a day is a valid state.
func TimelineHandler(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, Idx.Timeline(date))
}

type SeriesPoint struct {
	Time  string `json:"time"`
	Count int    `json:"occupancy"`
}

// SeriesHandler answers GET /occupancy/series?date&id with the facility's
// full-day curve, always 144 points, zero-filled.
func SeriesHandler(w http.ResponseWriter, r *http.Request) {
	date, err := parseDate(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "Missing id parameter", http.StatusBadRequest)
		return
	}

	series, err := Idx.Series(date, id)
	if err != nil {
		http.Error(w, "Unknown facility", http.StatusNotFound)
		return
	}

	out := make([]SeriesPoint, 0, len(series))
	for b, count := range series {
		out = append(out, SeriesPoint{Time: BucketLabel(b), Count: count})
	}
	writeJSON(w, out)
}

type UnresolvedOut struct {
	DroppedRecords int          `json:"dropped_records"`
	Keys           []DroppedKey `json:"keys"`
}

// UnresolvedHandler answers GET /ops/unresolved: the data-quality report of
// occupancy raw keys the bridge could not place.
func UnresolvedHandler(w http.ResponseWriter, r *http.Request) {
	total, keys := Idx.Unresolved()
	writeJSON(w, UnresolvedOut{DroppedRecords: total, Keys: keys})
}

package ingest

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

// FacilitySpec is one parsed facility before persistence.
type FacilitySpec struct {
	Code     string
	Name     string
	Category string
	Geometry string
	RawKeys  []string
}

type featureCollection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Properties map[string]any  `json:"properties"`
	Geometry   json.RawMessage `json:"geometry"`
}

// Source parquet/GeoJSON exports render numeric codes as "77.0".
var trailingDotZero = regexp.MustCompile(`\.0$`)

func CleanCode(raw string) string {
	return trailingDotZero.ReplaceAllString(strings.TrimSpace(raw), "")
}

// classifyCategory buckets a raw building type. The keyword list matches the
// aggregation pipeline's classification so both datasets agree on category.
func classifyCategory(bldgType string) string {
	t := strings.ToLower(strings.TrimSpace(bldgType))
	if t == "" {
		return "Unknown"
	}
	for _, kw := range []string{"residence", "dormitory", "housing", "greek"} {
		if strings.Contains(t, kw) {
			return "Residential"
		}
	}
	return "Non-Residential"
}

// ParseGeoJSON reads the campus boundary dataset. Features without a building
// code are logged and skipped. Wing features ("077A") whose base code ("077")
// also appears are folded into the base facility as extra raw keys, so the
// occupancy logs' wing-level entries bridge to one canonical facility.
func ParseGeoJSON(path string) ([]FacilitySpec, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc featureCollection
	if err := json.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if len(fc.Features) == 0 {
		return nil, errors.New("geojson has no features")
	}

	var order []string
	byCode := map[string]*FacilitySpec{}

	for i, f := range fc.Features {
		code := CleanCode(stringProp(f.Properties, "BLDG_CODE"))
		if code == "" {
			log.Printf("[ingest] feature %d has no BLDG_CODE, skipping", i)
			continue
		}

		name := strings.TrimSpace(stringProp(f.Properties, "BLDG_NAME"))
		if name == "" {
			name = code
		}

		if _, ok := byCode[code]; ok {
			// Repeated code: the same facility drawn as several polygons.
			// Keep the first geometry and name.
			continue
		}

		byCode[code] = &FacilitySpec{
			Code:     code,
			Name:     name,
			Category: classifyCategory(stringProp(f.Properties, "BLDG_TYPE")),
			Geometry: string(f.Geometry),
			RawKeys:  []string{code},
		}
		order = append(order, code)
	}

	// Fold wing codes into their base facility where the base exists.
	out := make([]FacilitySpec, 0, len(order))
	for _, code := range order {
		spec := byCode[code]
		base := strings.TrimRightFunc(code, unicode.IsLetter)
		if base != "" && base != code {
			if parent, ok := byCode[base]; ok {
				parent.RawKeys = append(parent.RawKeys, code)
				continue
			}
		}
		out = append(out, *spec)
	}
	if len(out) == 0 {
		return nil, errors.New("geojson produced no facilities")
	}
	return out, nil
}

// stringProp fetches a property, tolerating numeric codes that JSON decodes
// as float64.
func stringProp(props map[string]any, key string) string {
	switch v := props[key].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return ""
}

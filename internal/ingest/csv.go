package ingest

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// OccupancySpec is one parsed ten-minute count before persistence.
type OccupancySpec struct {
	RawKey string
	Date   string
	Bucket int
	Count  int
}

var timeBinLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// ParseOccupancyCSV reads the pre-aggregated occupancy dataset. Required
// columns: BLDG_CODE, time_bin, occupancy. Each time_bin must land on a
// ten-minute boundary; a duplicate (code, date, bucket) is a corrupt export
// and fails the parse. Dates in skipDates (incomplete trailing days) are
// excluded.
func ParseOccupancyCSV(path string, skipDates map[string]bool) ([]OccupancySpec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(bufio.NewReader(f))
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return nil, errors.New("csv has no data rows")
	}

	header := records[0]
	// Handle BOM on first header cell
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\ufeff")
	}

	col := map[string]int{}
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	for _, k := range []string{"BLDG_CODE", "time_bin", "occupancy"} {
		if _, ok := col[k]; !ok {
			return nil, fmt.Errorf("missing required column: %s", k)
		}
	}

	seen := map[string]bool{}
	var out []OccupancySpec

	for rowIdx := 1; rowIdx < len(records); rowIdx++ {
		rec := records[rowIdx]
		get := func(name string) string {
			i := col[name]
			if i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		code := CleanCode(get("BLDG_CODE"))
		if code == "" {
			return nil, fmt.Errorf("row %d: BLDG_CODE is required", rowIdx+1)
		}

		ts, err := parseTimeBin(get("time_bin"))
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", rowIdx+1, err)
		}
		if ts.Minute()%10 != 0 || ts.Second() != 0 {
			return nil, fmt.Errorf("row %d: time_bin %q is not a ten-minute boundary", rowIdx+1, get("time_bin"))
		}

		date := ts.Format("2006-01-02")
		if skipDates[date] {
			continue
		}
		bucket := ts.Hour()*6 + ts.Minute()/10

		// Counts may arrive as "12" or "12.0" depending on the export.
		countF, err := strconv.ParseFloat(get("occupancy"), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: bad occupancy %q", rowIdx+1, get("occupancy"))
		}

		slot := fmt.Sprintf("%s|%s|%d", code, date, bucket)
		if seen[slot] {
			return nil, fmt.Errorf("row %d: duplicate record for %s %s bucket %d", rowIdx+1, code, date, bucket)
		}
		seen[slot] = true

		out = append(out, OccupancySpec{
			RawKey: code,
			Date:   date,
			Bucket: bucket,
			Count:  int(countF),
		})
	}

	return out, nil
}

func parseTimeBin(s string) (time.Time, error) {
	for _, layout := range timeBinLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad time_bin %q", s)
}

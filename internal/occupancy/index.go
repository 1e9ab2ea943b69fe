package occupancy

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"github.com/CampusPulse/CP-Backend/internal/campus"
)

// BucketsPerDay is the fixed number of ten-minute slots per calendar day
// (00:00 through 23:50).
const BucketsPerDay = 144

// CategoryTotal labels the all-facilities aggregate in timeline output.
const CategoryTotal = "Total"

var ErrNotFound = errors.New("unknown facility")

// BucketOf maps an (hour, minute) pair to its bucket; the minute floors to
// the nearest multiple of ten.
func BucketOf(hour, minute int) int {
	return hour*6 + minute/10
}

// BucketLabel renders a bucket as "HH:MM".
func BucketLabel(bucket int) string {
	return fmt.Sprintf("%02d:%02d", bucket/6, (bucket%6)*10)
}

// DroppedKey is one occupancy raw key that could not be bridged to a
// facility, with the number of records it carried.
type DroppedKey struct {
	Key     string `json:"key"`
	Records int    `json:"records"`
}

// Index holds every occupancy count keyed by canonical facility, date, and
// ten-minute bucket. Built once at startup and immutable afterward; every
// accessor is safe for concurrent use without locking.
type Index struct {
	dates          []string
	days           map[string]*daySlots
	categories     map[string]campus.Category
	ranges         GlobalRanges
	dropped        []DroppedKey
	droppedRecords int
}

type daySlots struct {
	buckets [BucketsPerDay]map[string]int // canonical id -> count
}

// Build bridges every record's raw key to a canonical facility and folds the
// counts into per-day bucket maps. Records whose key cannot be resolved even
// after normalization are counted and dropped — never merged into an
// arbitrary facility. Two raw keys bridging to the same facility (a
// multi-building complex) have their counts summed.
func Build(records []Record, reg *campus.Registry) *Index {
	ix := &Index{
		days:       make(map[string]*daySlots),
		categories: make(map[string]campus.Category),
	}
	for _, f := range reg.Facilities() {
		ix.categories[f.CanonicalID] = f.Category
	}

	droppedByKey := make(map[string]int)
	for _, rec := range records {
		if rec.Bucket < 0 || rec.Bucket >= BucketsPerDay {
			log.Printf("[occupancy] skipping record with bucket %d out of range (key=%s date=%s)", rec.Bucket, rec.RawKey, rec.Date)
			continue
		}

		cid, ok := reg.Resolve(rec.RawKey)
		if !ok {
			droppedByKey[rec.RawKey]++
			ix.droppedRecords++
			continue
		}

		day, ok := ix.days[rec.Date]
		if !ok {
			day = &daySlots{}
			ix.days[rec.Date] = day
			ix.dates = append(ix.dates, rec.Date)
		}
		if day.buckets[rec.Bucket] == nil {
			day.buckets[rec.Bucket] = make(map[string]int)
		}
		day.buckets[rec.Bucket][cid] += rec.Count
	}

	sort.Strings(ix.dates)
	for key, n := range droppedByKey {
		ix.dropped = append(ix.dropped, DroppedKey{Key: key, Records: n})
	}
	sort.Slice(ix.dropped, func(i, j int) bool { return ix.dropped[i].Key < ix.dropped[j].Key })

	ix.ranges = computeRanges(ix.days, ix.categories)

	if ix.droppedRecords > 0 {
		log.Printf("[occupancy] dropped %d records across %d unresolved raw keys", ix.droppedRecords, len(ix.dropped))
	}
	log.Printf("[occupancy] index ready: %d dates, %d facilities", len(ix.dates), len(ix.categories))
	return ix
}

// Dates returns every date present in the index, ascending.
func (ix *Index) Dates() []string {
	out := make([]string, len(ix.dates))
	copy(out, ix.dates)
	return out
}

// HasDate reports whether any record exists for the date.
func (ix *Index) HasDate(date string) bool {
	_, ok := ix.days[date]
	return ok
}

// Snapshot returns the per-facility counts for one (date, bucket). Facilities
// absent from the map had a count of zero; an unknown date yields an empty
// map, which is a valid state, not an error.
func (ix *Index) Snapshot(date string, bucket int) map[string]int {
	out := make(map[string]int)
	day, ok := ix.days[date]
	if !ok || bucket < 0 || bucket >= BucketsPerDay {
		return out
	}
	for cid, count := range day.buckets[bucket] {
		out[cid] = count
	}
	return out
}

// Series returns the facility's full-day curve: one count per bucket, length
// BucketsPerDay, zero-filled where no record exists. ErrNotFound for a
// canonical id the registry does not know.
func (ix *Index) Series(date, canonicalID string) ([]int, error) {
	if _, ok := ix.categories[canonicalID]; !ok {
		return nil, ErrNotFound
	}
	series := make([]int, BucketsPerDay)
	if day, ok := ix.days[date]; ok {
		for b := range day.buckets {
			if day.buckets[b] != nil {
				series[b] = day.buckets[b][canonicalID]
			}
		}
	}
	return series, nil
}

// TimelinePoint is one (bucket, category) aggregate in a day timeline.
type TimelinePoint struct {
	Bucket   int    `json:"bucket"`
	Time     string `json:"time"`
	Category string `json:"category"`
	Count    int    `json:"occupancy"`
}

// timelineCategories fixes the emission order inside each bucket.
var timelineCategories = []string{
	CategoryTotal,
	string(campus.CategoryResidential),
	string(campus.CategoryNonResidential),
	string(campus.CategoryUnknown),
}

// Timeline sums every bucket's counts by facility category, plus a Total
// aggregate, ordered by bucket ascending. Empty slice for an unknown date.
func (ix *Index) Timeline(date string) []TimelinePoint {
	day, ok := ix.days[date]
	if !ok {
		return []TimelinePoint{}
	}

	points := make([]TimelinePoint, 0, BucketsPerDay*len(timelineCategories))
	for b := 0; b < BucketsPerDay; b++ {
		sums := make(map[string]int, len(timelineCategories))
		for cid, count := range day.buckets[b] {
			sums[CategoryTotal] += count
			sums[string(ix.categories[cid])] += count
		}
		for _, cat := range timelineCategories {
			points = append(points, TimelinePoint{
				Bucket:   b,
				Time:     BucketLabel(b),
				Category: cat,
				Count:    sums[cat],
			})
		}
	}
	return points
}

// GlobalRanges returns the color-scale bounds computed once at build time.
// The value never changes for the lifetime of the process, which is what
// keeps visual intensity comparable across all dates and times.
func (ix *Index) GlobalRanges() GlobalRanges {
	return ix.ranges
}

// Unresolved reports the dropped-record total and the per-key breakdown
// collected during the build.
func (ix *Index) Unresolved() (int, []DroppedKey) {
	keys := make([]DroppedKey, len(ix.dropped))
	copy(keys, ix.dropped)
	return ix.droppedRecords, keys
}

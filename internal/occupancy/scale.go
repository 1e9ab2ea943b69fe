package occupancy

import (
	"math"
	"sort"

	"github.com/CampusPulse/CP-Backend/internal/campus"
)

// ScaleRange is the fixed (low, high) pair a category's counts are
// normalized against when rendering intensity.
type ScaleRange struct {
	Low  float64 `json:"low"`
	High float64 `json:"high"`
}

type GlobalRanges struct {
	Residential    ScaleRange `json:"residential"`
	NonResidential ScaleRange `json:"non_residential"`
}

// Percentile bounds: robust against outlier spikes that raw min/max would
// chase.
const (
	lowPercentile  = 0.02
	highPercentile = 0.98
)

// computeRanges derives per-category bounds from every non-zero count in the
// index. Zero counts are excluded: they render as the floor of the range and
// would otherwise trivially drag the low bound to zero.
func computeRanges(days map[string]*daySlots, categories map[string]campus.Category) GlobalRanges {
	samples := make(map[campus.Category][]int)
	for _, day := range days {
		for b := range day.buckets {
			for cid, count := range day.buckets[b] {
				if count == 0 {
					continue
				}
				cat := categories[cid]
				samples[cat] = append(samples[cat], count)
			}
		}
	}
	return GlobalRanges{
		Residential:    rangeOf(samples[campus.CategoryResidential]),
		NonResidential: rangeOf(samples[campus.CategoryNonResidential]),
	}
}

func rangeOf(counts []int) ScaleRange {
	if len(counts) == 0 {
		return ScaleRange{}
	}
	sort.Ints(counts)
	return ScaleRange{
		Low:  float64(nearestRank(counts, lowPercentile)),
		High: float64(nearestRank(counts, highPercentile)),
	}
}

// nearestRank returns the p-th percentile of a sorted slice using the
// nearest-rank method.
func nearestRank(sorted []int, p float64) int {
	rank := int(math.Ceil(p * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

package occupancy

import (
	"reflect"
	"testing"
)

func TestNearestRank(t *testing.T) {
	sorted := make([]int, 100)
	for i := range sorted {
		sorted[i] = i + 1 // 1..100
	}

	tests := []struct {
		p    float64
		want int
	}{
		{0.02, 2},
		{0.98, 98},
		{0.5, 50},
		{0, 1},   // rank clamps to the first element
		{1, 100},
	}
	for _, test := range tests {
		if got := nearestRank(sorted, test.p); got != test.want {
			t.Errorf("nearestRank(p=%v) = %d, want %d", test.p, got, test.want)
		}
	}

	if got := nearestRank([]int{7}, 0.02); got != 7 {
		t.Errorf("nearestRank single sample = %d, want 7", got)
	}
}

func TestRangeOf_Empty(t *testing.T) {
	if got := rangeOf(nil); got != (ScaleRange{}) {
		t.Errorf("rangeOf(nil) = %v, want zero range", got)
	}
}

func TestGlobalRanges(t *testing.T) {
	ix := testIndex(t)

	got := ix.GlobalRanges()
	want := GlobalRanges{
		Residential:    ScaleRange{Low: 40, High: 42},
		NonResidential: ScaleRange{Low: 15, High: 15},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("GlobalRanges = %+v, want %+v", got, want)
	}
}

// TestGlobalRanges_Stable verifies the bounds are fixed at build time and do
// not drift across queries.
func TestGlobalRanges_Stable(t *testing.T) {
	ix := testIndex(t)

	first := ix.GlobalRanges()
	ix.Snapshot("2025-03-01", 51)
	ix.Timeline("2025-03-02")
	second := ix.GlobalRanges()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ranges drifted: %+v then %+v", first, second)
	}
}

// TestGlobalRanges_ZeroCountsExcluded: an explicit zero reading must not drag
// a category's low bound down to zero.
func TestGlobalRanges_ZeroCountsExcluded(t *testing.T) {
	ix := testIndex(t)

	// The fixture carries a zero-count record for facility 077; the
	// non-residential low bound stays at the smallest non-zero sample.
	if got := ix.GlobalRanges().NonResidential.Low; got != 15 {
		t.Errorf("non-residential low = %v, want 15", got)
	}
}

// Package testutil provides shared test infrastructure for the paint shop
// simulator. It consolidates assertion helpers used across sim/ and its
// sub-package tests, and depends only on sim/trace so that package sim's own
// tests can import it.
package testutil

import (
	"math"
	"testing"

	"github.com/paintshop-sim/paintshop-sim/sim/trace"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// AssertOccupancyWithinCapacity walks every station record of a trace and
// fails if any station ever reports more occupied slots than its capacity.
func AssertOccupancyWithinCapacity(t *testing.T, st *trace.SimulationTrace, capacity map[string]int) {
	t.Helper()
	for i, r := range st.Stations {
		limit, ok := capacity[r.Station]
		if !ok {
			t.Errorf("record %d: unknown station %q", i, r.Station)
			continue
		}
		if r.InService > limit {
			t.Errorf("record %d: %s occupancy %d exceeds capacity %d at t=%.4f", i, r.Station, r.InService, limit, r.Clock)
		}
		if r.InService < 0 {
			t.Errorf("record %d: %s negative occupancy at t=%.4f", i, r.Station, r.Clock)
		}
	}
}

// AssertMonotonicClock fails if station records ever go back in time.
func AssertMonotonicClock(t *testing.T, st *trace.SimulationTrace) {
	t.Helper()
	last := math.Inf(-1)
	for i, r := range st.Stations {
		if r.Clock < last {
			t.Errorf("record %d: clock went back from %.4f to %.4f", i, last, r.Clock)
		}
		last = r.Clock
	}
}

package sim

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runArrivals(t *testing.T, iv Interval, shift float64) ([]float64, *ArrivalGenerator) {
	t.Helper()
	s := NewSimulator()
	var spawned []float64
	gen := NewArrivalGenerator(iv, shift, rand.New(rand.NewSource(3)), func(sim *Simulator, carID int) {
		require.Equal(t, len(spawned)+1, carID, "car ids must be sequential from 1")
		spawned = append(spawned, sim.Now())
	})
	gen.Start(s)
	s.RunUntil(shift)
	return spawned, gen
}

func TestArrivalGenerator_FixedInterval_ArrivalOnBoundaryIsSpawned(t *testing.T) {
	// GIVEN a fixed interval of 10 and a shift of 20
	// WHEN the generator runs to the shift end
	spawned, gen := runArrivals(t, Interval{Low: 10, High: 10}, 20)

	// THEN cars arrive at 10 and 20, and no third arrival is sampled
	assert.Equal(t, []float64{10, 20}, spawned)
	assert.Equal(t, 2, gen.Spawned())
	assert.True(t, gen.Done())
}

func TestArrivalGenerator_ShiftShorterThanFirstGap_NoCars(t *testing.T) {
	spawned, gen := runArrivals(t, Interval{Low: 8, High: 12}, 5)
	assert.Empty(t, spawned)
	assert.Equal(t, 0, gen.Spawned())
}

func TestArrivalGenerator_ArrivalsStayInsideShift(t *testing.T) {
	spawned, _ := runArrivals(t, Interval{Low: 8, High: 12}, 480)
	require.NotEmpty(t, spawned)
	// 480 / 12 = 40 is the fewest possible, 480 / 8 = 60 the most
	assert.GreaterOrEqual(t, len(spawned), 40)
	assert.LessOrEqual(t, len(spawned), 60)
	for i, at := range spawned {
		assert.LessOrEqual(t, at, 480.0)
		if i > 0 {
			gap := at - spawned[i-1]
			assert.True(t, gap >= 8-1e-9 && gap <= 12+1e-9, "gap %v out of range", gap)
		}
	}
}

func TestArrivalGenerator_Start_AfterShift_Finishes(t *testing.T) {
	s := NewSimulator()
	s.RunUntil(30)
	gen := NewArrivalGenerator(Interval{Low: 1, High: 1}, 30, rand.New(rand.NewSource(1)), func(*Simulator, int) {})

	susp := gen.Start(s)

	assert.Equal(t, Finished, susp.Kind)
	assert.True(t, gen.Done())
	assert.Equal(t, 0, s.Pending())
}

func TestNewArrivalGenerator_NilArguments_Panic(t *testing.T) {
	assert.Panics(t, func() { NewArrivalGenerator(Interval{}, 1, nil, func(*Simulator, int) {}) })
	assert.Panics(t, func() { NewArrivalGenerator(Interval{}, 1, rand.New(rand.NewSource(1)), nil) })
}

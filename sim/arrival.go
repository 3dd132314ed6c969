package sim

import (
	"fmt"
	"math/rand"
)

// SpawnFunc creates and starts a car process for the given id. The generator
// only schedules the spawn; it never waits for the car to finish.
type SpawnFunc func(sim *Simulator, carID int)

// ArrivalGenerator produces cars at uniformly distributed intervals over the
// half-open window [0, shift). The boundary check runs before each sample, so
// a car whose arrival lands exactly on or past the shift end is still spawned
// if its event is processed, but no further arrival is sampled after it.
type ArrivalGenerator struct {
	Interval Interval
	Shift    float64

	rng    *rand.Rand
	spawn  SpawnFunc
	nextID int
	done   bool
}

// NewArrivalGenerator creates a generator that has not been started.
func NewArrivalGenerator(interval Interval, shift float64, rng *rand.Rand, spawn SpawnFunc) *ArrivalGenerator {
	if rng == nil || spawn == nil {
		panic("NewArrivalGenerator: rng and spawn must not be nil")
	}
	return &ArrivalGenerator{
		Interval: interval,
		Shift:    shift,
		rng:      rng,
		spawn:    spawn,
	}
}

// Start schedules the first arrival (or nothing if the shift is already over).
func (g *ArrivalGenerator) Start(sim *Simulator) Suspension {
	return g.next(sim)
}

// Spawned returns how many cars the generator has created.
func (g *ArrivalGenerator) Spawned() int {
	return g.nextID
}

// Done reports whether the generator has stopped sampling arrivals.
func (g *ArrivalGenerator) Done() bool {
	return g.done
}

func (g *ArrivalGenerator) next(sim *Simulator) Suspension {
	if sim.Now() >= g.Shift {
		g.done = true
		return Suspension{Kind: Finished}
	}
	delay := g.Interval.Sample(g.rng)
	h := sim.ScheduleAfter(delay, "arrival", g.onArrival)
	return Suspension{Kind: AwaitTime, Until: h.Due}
}

func (g *ArrivalGenerator) onArrival(sim *Simulator) {
	g.nextID++
	id := g.nextID
	sim.ScheduleAfter(0, fmt.Sprintf("spawn car-%d", id), func(sim *Simulator) {
		g.spawn(sim, id)
	})
	g.next(sim)
}

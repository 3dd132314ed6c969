package sim

import (
	"hash/fnv"
	"math/rand"
)

// SubsystemArrivals names the stream that spaces car arrivals. It is seeded
// with the shop seed itself, so a given seed always yields the same arrivals.
const SubsystemArrivals = "arrivals"

// SubsystemStation names the stream that draws service times at a station.
func SubsystemStation(name StationName) string {
	return "station_" + string(name)
}

// PartitionedRNG hands out one random stream per subsystem of the shop.
// Streams never share state: widening the Primer service interval changes
// Primer draws only, never arrival times or the other stations.
//
// The arrivals stream uses the shop seed; every other stream uses the shop
// seed XOR the FNV-1a hash of its subsystem name.
type PartitionedRNG struct {
	seed    int64
	streams map[string]*rand.Rand
}

// NewPartitionedRNG creates the streams for one run with the given shop seed.
func NewPartitionedRNG(seed int64) *PartitionedRNG {
	return &PartitionedRNG{
		seed:    seed,
		streams: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the stream for name, creating it on first use.
// Repeated calls return the same *rand.Rand.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	seed := p.seed
	if name != SubsystemArrivals {
		seed ^= nameSalt(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.streams[name] = rng
	return rng
}

// Seed returns the shop seed the streams derive from.
func (p *PartitionedRNG) Seed() int64 {
	return p.seed
}

func nameSalt(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return int64(h.Sum64())
}

// Package report turns the metrics of a finished paint shop run into the
// end-of-shift summary: per-station utilization, queue peaks and waits.
// It only reads sim.Metrics after the event loop has returned.
package report

import (
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/paintshop-sim/paintshop-sim/sim"
)

// StationReport summarizes one station over the run.
type StationReport struct {
	Name        sim.StationName
	Capacity    int
	Served      int       // cars granted a slot
	BusyTime    float64   // cumulative completed service time (minutes)
	Utilization float64   // BusyTime / (Elapsed * Capacity), in percent
	MaxQueue    int       // peak sampled queue depth
	AvgWait     float64   // mean wait, 0 when HasSamples is false
	P95Wait     float64   // 95th percentile wait, 0 when HasSamples is false
	HasSamples  bool      // false for a station that never granted a slot
	Waits       []float64 // raw wait samples in grant order
}

// Report is the end-of-run summary.
type Report struct {
	RunID         string
	Seed          int64
	Elapsed       float64 // logical time at which the run stopped
	Arrived       int
	Completed     int
	InProgress    int // arrived but not exited when the run stopped
	AvgSystemTime float64
	HasCompleted  bool // false when no car exited; AvgSystemTime is then 0
	Alerts        int
	LastExitTime  float64
	Stations      []StationReport // in sim.StationOrder
}

// Build computes the report. Empty collections never divide by zero: the
// affected averages are reported as 0 with the matching Has* flag unset.
func Build(m *sim.Metrics, cfg sim.ShopConfig) *Report {
	r := &Report{
		Seed:         cfg.Seed,
		Elapsed:      m.SimEndedTime,
		Arrived:      len(m.Arrivals),
		Completed:    m.Completed,
		Alerts:       m.Alerts,
		LastExitTime: m.LastExitTime,
	}
	r.InProgress = r.Arrived - r.Completed

	if m.Completed > 0 {
		times := make([]float64, 0, m.Completed)
		for _, rec := range m.CompletedCars() {
			times = append(times, rec.TimeInSystem())
		}
		r.AvgSystemTime = stat.Mean(times, nil)
		r.HasCompleted = true
	}

	for _, name := range sim.StationOrder {
		sc := cfg.Station(name)
		sr := StationReport{
			Name:     name,
			Capacity: sc.Capacity,
			Served:   len(m.Wait[name]),
			BusyTime: m.Busy[name],
			MaxQueue: m.MaxQueue[name],
			Waits:    append([]float64(nil), m.Wait[name]...),
		}
		if r.Elapsed > 0 {
			sr.Utilization = sr.BusyTime / (r.Elapsed * float64(sc.Capacity)) * 100
		}
		if len(sr.Waits) > 0 {
			sr.HasSamples = true
			sr.AvgWait = stat.Mean(sr.Waits, nil)
			sorted := append([]float64(nil), sr.Waits...)
			sort.Float64s(sorted)
			sr.P95Wait = stat.Quantile(0.95, stat.Empirical, sorted, nil)
		}
		r.Stations = append(r.Stations, sr)
	}
	return r
}

// Station returns the report of the named station, or nil.
func (r *Report) Station(name sim.StationName) *StationReport {
	for i := range r.Stations {
		if r.Stations[i].Name == name {
			return &r.Stations[i]
		}
	}
	return nil
}

// Tracks simulation-wide and per-car statistics such as:
// arrivals, exits, per-station waits, busy time and queue peaks.

package sim

// Metrics aggregates statistics about the simulation for final reporting.
// It is a passive sink: stations and car processes write into it while the
// event loop runs, and the report reads it only after the run has drained.
type Metrics struct {
	Arrivals map[int]float64 // car ID -> arrival time
	Exits    map[int]float64 // car ID -> exit time

	Wait     map[StationName][]float64 // per-station wait durations, in grant order
	Busy     map[StationName]float64   // per-station cumulative service time
	MaxQueue map[StationName]int       // per-station peak sampled queue depth

	Completed    int     // Number of cars that exited the system
	Alerts       int     // Number of queue samples above the alert threshold
	LastExitTime float64 // Time of the latest exit
	SimEndedTime float64 // Logical time at which the event loop stopped

	Cars []*CarRecord // Every car record, in arrival order
}

// NewMetrics returns an empty Metrics with a slot for every station.
func NewMetrics() *Metrics {
	m := &Metrics{
		Arrivals: make(map[int]float64),
		Exits:    make(map[int]float64),
		Wait:     make(map[StationName][]float64, len(StationOrder)),
		Busy:     make(map[StationName]float64, len(StationOrder)),
		MaxQueue: make(map[StationName]int, len(StationOrder)),
		Cars:     make([]*CarRecord, 0),
	}
	for _, name := range StationOrder {
		m.Wait[name] = make([]float64, 0)
		m.Busy[name] = 0
		m.MaxQueue[name] = 0
	}
	return m
}

// RecordArrival stores the arrival of a freshly created car record.
func (m *Metrics) RecordArrival(rec *CarRecord) {
	m.Arrivals[rec.ID] = rec.ArrivalTime
	m.Cars = append(m.Cars, rec)
}

// RecordWait appends a wait duration observed at a station.
func (m *Metrics) RecordWait(station StationName, d float64) {
	m.Wait[station] = append(m.Wait[station], d)
}

// RecordBusy adds elapsed service time to a station's busy total.
func (m *Metrics) RecordBusy(station StationName, d float64) {
	m.Busy[station] += d
}

// ObserveQueue updates the running maximum queue depth of a station.
func (m *Metrics) ObserveQueue(station StationName, depth int) {
	if depth > m.MaxQueue[station] {
		m.MaxQueue[station] = depth
	}
}

// RecordAlert counts one queue alert.
func (m *Metrics) RecordAlert() {
	m.Alerts++
}

// RecordExit stores the exit of a car and counts it as completed.
func (m *Metrics) RecordExit(rec *CarRecord) {
	m.Exits[rec.ID] = rec.ExitTime
	m.Completed++
	m.LastExitTime = max(m.LastExitTime, rec.ExitTime)
}

// CompletedCars returns the records of cars that exited, in arrival order.
func (m *Metrics) CompletedCars() []*CarRecord {
	done := make([]*CarRecord, 0, m.Completed)
	for _, rec := range m.Cars {
		if rec.Exited {
			done = append(done, rec)
		}
	}
	return done
}

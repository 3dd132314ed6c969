// Defines the CarProcess state machine that moves one car through the
// Cleaning -> Primer -> Painting workflow, and the CarRecord it fills in.

package sim

import (
	"fmt"
	"math/rand"
)

// CarState represents the lifecycle state of a car.
type CarState int

const (
	StateArrived CarState = iota
	StateWaitingCleaning
	StateInCleaning
	StateWaitingPrimer
	StateInPrimer
	StateWaitingPainting
	StateInPainting
	StateExited
)

var carStateNames = [...]string{
	StateArrived:         "Arrived",
	StateWaitingCleaning: "WaitingCleaning",
	StateInCleaning:      "InCleaning",
	StateWaitingPrimer:   "WaitingPrimer",
	StateInPrimer:        "InPrimer",
	StateWaitingPainting: "WaitingPainting",
	StateInPainting:      "InPainting",
	StateExited:          "Exited",
}

func (s CarState) String() string {
	if s < 0 || int(s) >= len(carStateNames) {
		return fmt.Sprintf("CarState(%d)", int(s))
	}
	return carStateNames[s]
}

// waitingState and servingState map a stage index to its states.
func waitingState(stage int) CarState { return StateWaitingCleaning + CarState(2*stage) }
func servingState(stage int) CarState { return StateInCleaning + CarState(2*stage) }

// SuspensionKind says why a process handed control back to the scheduler.
type SuspensionKind int

const (
	// AwaitResource: queued at a station, resumed by Station.Release.
	AwaitResource SuspensionKind = iota
	// AwaitTime: service in progress, resumed when the clock reaches Until.
	AwaitTime
	// Finished: the process has exited and will never be resumed.
	Finished
)

func (k SuspensionKind) String() string {
	switch k {
	case AwaitResource:
		return "await-resource"
	case AwaitTime:
		return "await-time"
	case Finished:
		return "finished"
	}
	return fmt.Sprintf("SuspensionKind(%d)", int(k))
}

// Suspension is the explicit result of advancing a process: what it is
// waiting for before it can make progress again.
type Suspension struct {
	Kind    SuspensionKind
	Station StationName // for AwaitResource and AwaitTime
	Until   float64     // for AwaitTime
}

// CarRecord is the per-car timeline. It is written only by the owning
// CarProcess and is read-only once Exited is set.
type CarRecord struct {
	ID          int
	ArrivalTime float64
	Waits       [NumStations]float64 // grant time - request time, per stage
	Services    [NumStations]float64 // sampled service duration, per stage
	ExitTime    float64
	Exited      bool
}

// TotalWait returns the sum of the per-station waits.
func (r *CarRecord) TotalWait() float64 {
	total := 0.0
	for _, w := range r.Waits {
		total += w
	}
	return total
}

// TotalService returns the sum of the per-station service durations.
func (r *CarRecord) TotalService() float64 {
	total := 0.0
	for _, s := range r.Services {
		total += s
	}
	return total
}

// TimeInSystem returns exit - arrival, or 0 while the car is still inside.
func (r *CarRecord) TimeInSystem() float64 {
	if !r.Exited {
		return 0
	}
	return r.ExitTime - r.ArrivalTime
}

func (r CarRecord) String() string {
	return fmt.Sprintf("CarRecord: (ID: %d, ArrivalTime: %.2f, ExitTime: %.2f, Exited: %v)", r.ID, r.ArrivalTime, r.ExitTime, r.Exited)
}

// CarProcess sequences a single car through every station in StationOrder.
// Each transition method runs inside one continuation and ends in exactly one
// Suspension; the process never blocks a goroutine.
type CarProcess struct {
	Record *CarRecord
	State  CarState

	stage       int
	requestedAt float64
	service     float64
	grant       *Grant
	suspended   Suspension

	sim      *Simulator
	stations []*Station
	samplers []*rand.Rand
	services []Interval
	metrics  *Metrics
	sink     Sink
}

// NewCarProcess creates a car that has not yet arrived. stations, samplers and
// services must be indexed by stage.
func NewCarProcess(id int, sim *Simulator, stations []*Station, samplers []*rand.Rand, services []Interval, metrics *Metrics, sink Sink) *CarProcess {
	if len(stations) != NumStations || len(samplers) != NumStations || len(services) != NumStations {
		panic(fmt.Sprintf("NewCarProcess(%d): need %d stations, samplers and service intervals", id, NumStations))
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &CarProcess{
		Record:   &CarRecord{ID: id},
		State:    StateArrived,
		sim:      sim,
		stations: stations,
		samplers: samplers,
		services: services,
		metrics:  metrics,
		sink:     sink,
	}
}

// Suspended returns the suspension the process last yielded with.
func (c *CarProcess) Suspended() Suspension {
	return c.suspended
}

// Start enters the Arrived state at the current time and advances until the
// first suspension. It is used as the spawn continuation.
func (c *CarProcess) Start(sim *Simulator) {
	if c.State != StateArrived || c.Record.Exited {
		panic(fmt.Sprintf("CarProcess(%d).Start: already started (state %s)", c.Record.ID, c.State))
	}
	c.Record.ArrivalTime = sim.Now()
	if c.metrics != nil {
		c.metrics.RecordArrival(c.Record)
	}
	c.notify(NotifyArrival, nil)
	c.suspended = c.requestStation()
}

// requestStation: Arrived|In<prev> -> Waiting<stage> [-> In<stage>]
func (c *CarProcess) requestStation() Suspension {
	st := c.stations[c.stage]
	c.State = waitingState(c.stage)
	c.requestedAt = c.sim.Now()
	g, ok := st.Request(c.Record.ID, c.onGrant)
	if !ok {
		return Suspension{Kind: AwaitResource, Station: st.Name}
	}
	return c.startService(g)
}

// onGrant is the continuation resumed by Station.Release.
func (c *CarProcess) onGrant(_ *Simulator, g *Grant) {
	if c.State != waitingState(c.stage) {
		panic(fmt.Sprintf("CarProcess(%d): grant %v delivered in state %s", c.Record.ID, g, c.State))
	}
	c.suspended = c.startService(g)
}

// startService: Waiting<stage> -> In<stage>
func (c *CarProcess) startService(g *Grant) Suspension {
	st := c.stations[c.stage]
	c.grant = g
	c.State = servingState(c.stage)
	wait := c.sim.Now() - c.requestedAt
	c.Record.Waits[c.stage] = wait
	if c.metrics != nil {
		c.metrics.RecordWait(st.Name, wait)
	}
	c.notify(NotifyStationEnter, st)

	c.service = c.services[c.stage].Sample(c.samplers[c.stage])
	h := c.sim.ScheduleAfter(c.service, fmt.Sprintf("service %s car-%d", st.Name, c.Record.ID), c.onServiceDone)
	return Suspension{Kind: AwaitTime, Station: st.Name, Until: h.Due}
}

// onServiceDone: In<stage> -> Waiting<stage+1> | Exited
func (c *CarProcess) onServiceDone(_ *Simulator) {
	if c.State != servingState(c.stage) {
		panic(fmt.Sprintf("CarProcess(%d): service completion in state %s", c.Record.ID, c.State))
	}
	st := c.stations[c.stage]
	c.Record.Services[c.stage] = c.service
	if c.metrics != nil {
		c.metrics.RecordBusy(st.Name, c.service)
	}
	g := c.grant
	c.grant = nil
	st.Release(g)
	c.notify(NotifyStationExit, st)

	if c.stage == NumStations-1 {
		c.suspended = c.exit()
		return
	}
	c.stage++
	c.suspended = c.requestStation()
}

// exit: In<last> -> Exited
func (c *CarProcess) exit() Suspension {
	c.State = StateExited
	c.Record.ExitTime = c.sim.Now()
	c.Record.Exited = true
	if c.metrics != nil {
		c.metrics.RecordExit(c.Record)
	}
	c.notify(NotifyExit, nil)
	return Suspension{Kind: Finished}
}

func (c *CarProcess) notify(kind NotificationKind, st *Station) {
	n := Notification{Time: c.sim.Now(), Kind: kind, CarID: c.Record.ID}
	if st != nil {
		n.Station = st.Name
		n.QueueDepth = st.QueueLen()
		n.InService = st.InService()
	}
	c.sink.Notify(n)
}

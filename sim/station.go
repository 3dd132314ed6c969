package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// StationName identifies one stage of the paint shop.
type StationName string

const (
	Cleaning StationName = "Cleaning"
	Primer   StationName = "Primer"
	Painting StationName = "Painting"
)

// StationOrder is the fixed order in which every car visits the stations.
var StationOrder = []StationName{Cleaning, Primer, Painting}

// NumStations is the number of stages a car passes through.
const NumStations = 3

// Grant represents occupancy of one station slot. It is returned by
// Station.Request (or handed to the waiter's continuation) and must be
// released exactly once through Station.Release.
type Grant struct {
	ID          uint64 // Station-local grant sequence number
	Station     *Station
	CarID       int     // Holder of the slot
	RequestedAt float64 // When the holder asked for the slot
	GrantedAt   float64 // When the slot was granted

	released bool
}

// Wait returns how long the holder queued before the grant.
func (g *Grant) Wait() float64 {
	return g.GrantedAt - g.RequestedAt
}

// Released reports whether the grant has already been given back.
func (g *Grant) Released() bool {
	return g.released
}

func (g *Grant) String() string {
	return fmt.Sprintf("Grant: (ID: %d, Station: %s, Car: %d, RequestedAt: %.2f, GrantedAt: %.2f)",
		g.ID, g.Station.Name, g.CarID, g.RequestedAt, g.GrantedAt)
}

// Station is a capacity-limited service point with a FIFO wait queue.
// Invariant: inService <= Capacity at every instant.
type Station struct {
	Name     StationName
	Capacity int

	inService      int
	waitQ          *WaitQueue
	alertThreshold int
	nextGrantID    uint64

	sim     *Simulator
	metrics *Metrics
	sink    Sink
}

// NewStation creates an idle station bound to a simulator. metrics and sink
// may be nil, in which case samples and notifications are dropped.
func NewStation(sim *Simulator, name StationName, capacity, alertThreshold int, metrics *Metrics, sink Sink) *Station {
	if capacity < 1 {
		panic(fmt.Sprintf("NewStation(%s): capacity must be >= 1, got %d", name, capacity))
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Station{
		Name:           name,
		Capacity:       capacity,
		waitQ:          &WaitQueue{},
		alertThreshold: alertThreshold,
		sim:            sim,
		metrics:        metrics,
		sink:           sink,
	}
}

// InService returns the number of occupied slots.
func (s *Station) InService() int {
	return s.inService
}

// QueueLen returns the number of requests waiting for a slot.
func (s *Station) QueueLen() int {
	return s.waitQ.Len()
}

// Queue returns the wait queue of the station.
func (s *Station) Queue() *WaitQueue {
	return s.waitQ
}

// Request asks for one slot on behalf of carID.
//
// If a slot is free the grant is returned synchronously with ok=true and
// resume is never called. Otherwise the request joins the FIFO wait queue,
// ok is false, and resume is scheduled (zero delay) once Release hands the
// slot over. Either way the queue depth is sampled before returning.
func (s *Station) Request(carID int, resume GrantContinuation) (g *Grant, ok bool) {
	if resume == nil {
		panic(fmt.Sprintf("Station(%s).Request: resume must not be nil", s.Name))
	}
	now := s.sim.Now()
	if s.inService < s.Capacity && s.waitQ.Len() == 0 {
		g = s.grant(carID, now, now)
		ok = true
	} else {
		if head := s.waitQ.Peek(); head != nil {
			logrus.Debugf("[t %07.2f] car %d queued at %s behind car %d", now, carID, s.Name, head.CarID)
		}
		s.waitQ.Enqueue(&SlotRequest{CarID: carID, RequestedAt: now, resume: resume})
	}
	s.sampleQueue()
	return g, ok
}

// Release returns a slot. If requests are waiting, the slot passes to the
// head of the queue within this call, so occupancy never drops and then
// rises again at the same instant; the waiter's continuation is scheduled
// with zero delay.
func (s *Station) Release(g *Grant) {
	switch {
	case g == nil:
		panic(fmt.Sprintf("Station(%s).Release: nil grant", s.Name))
	case g.Station != s:
		panic(fmt.Sprintf("Station(%s).Release: %v belongs to another station", s.Name, g))
	case g.released:
		panic(fmt.Sprintf("Station(%s).Release: %v released twice", s.Name, g))
	}
	g.released = true
	s.inService--
	if s.inService < 0 {
		panic(fmt.Sprintf("Station(%s).Release: negative occupancy", s.Name))
	}

	next := s.waitQ.Dequeue()
	if next == nil {
		return
	}
	now := s.sim.Now()
	handoff := s.grant(next.CarID, next.RequestedAt, now)
	logrus.Debugf("[t %07.2f] %s slot handed to car %d after %.2f min", now, s.Name, next.CarID, handoff.Wait())
	resume := next.resume
	s.sim.ScheduleAfter(0, fmt.Sprintf("grant %s car-%d", s.Name, next.CarID), func(sim *Simulator) {
		resume(sim, handoff)
	})
}

func (s *Station) grant(carID int, requestedAt, now float64) *Grant {
	s.inService++
	if s.inService > s.Capacity {
		panic(fmt.Sprintf("Station(%s): occupancy %d exceeds capacity %d", s.Name, s.inService, s.Capacity))
	}
	s.nextGrantID++
	return &Grant{
		ID:          s.nextGrantID,
		Station:     s,
		CarID:       carID,
		RequestedAt: requestedAt,
		GrantedAt:   now,
	}
}

// sampleQueue records the current queue depth and raises an alert when it
// exceeds the threshold.
func (s *Station) sampleQueue() {
	depth := s.waitQ.Len()
	if s.metrics != nil {
		s.metrics.ObserveQueue(s.Name, depth)
	}
	if depth > s.alertThreshold {
		if s.metrics != nil {
			s.metrics.RecordAlert()
		}
		s.sink.Notify(Notification{
			Time:       s.sim.Now(),
			Kind:       NotifyQueueAlert,
			Station:    s.Name,
			QueueDepth: depth,
			InService:  s.inService,
		})
	}
}

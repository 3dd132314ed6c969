// sim/simulator.go
package sim

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/sirupsen/logrus"
)

// EventQueue implements heap.Interface and orders events by (due time, insertion sequence).
// See canonical Golang example here: https://pkg.go.dev/container/heap#example-package-IntHeap
type EventQueue []*ScheduledEvent

func (eq EventQueue) Len() int { return len(eq) }
func (eq EventQueue) Less(i, j int) bool {
	if eq[i].due != eq[j].due {
		return eq[i].due < eq[j].due
	}
	return eq[i].seq < eq[j].seq
}
func (eq EventQueue) Swap(i, j int) { eq[i], eq[j] = eq[j], eq[i] }

func (eq *EventQueue) Push(x any) {
	*eq = append(*eq, x.(*ScheduledEvent))
}

func (eq *EventQueue) Pop() any {
	old := *eq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*eq = old[0 : n-1]
	return item
}

// Simulator is the core object that holds logical time and the event loop.
// Exactly one continuation executes at a time; a continuation runs until it
// returns, having scheduled whatever resumptions it needs.
//
// Thread-safety: NOT thread-safe. Must be driven from a single goroutine.
type Simulator struct {
	// Clock is the current logical time in minutes. It never decreases.
	Clock float64
	// EventQueue has all pending resumptions (arrivals, service completions, grants)
	EventQueue EventQueue

	nextSeq   uint64
	executed  int
	discarded int
}

// NewSimulator creates a Simulator at time zero with an empty event queue.
func NewSimulator() *Simulator {
	s := &Simulator{
		Clock:      0,
		EventQueue: make(EventQueue, 0),
	}
	heap.Init(&s.EventQueue)
	return s
}

// Now returns the current logical time.
func (sim *Simulator) Now() float64 {
	return sim.Clock
}

// ScheduleAfter pushes a resumption of fn at Now()+delay into the EventQueue.
// A negative, NaN or infinite delay is a programming error and panics.
func (sim *Simulator) ScheduleAfter(delay float64, label string, fn Continuation) EventHandle {
	if math.IsNaN(delay) || math.IsInf(delay, 0) || delay < 0 {
		panic(fmt.Sprintf("ScheduleAfter(%s): invalid delay %v at t=%.4f", label, delay, sim.Clock))
	}
	if fn == nil {
		panic(fmt.Sprintf("ScheduleAfter(%s): continuation must not be nil", label))
	}
	sim.nextSeq++
	ev := &ScheduledEvent{
		due:    sim.Clock + delay,
		seq:    sim.nextSeq,
		label:  label,
		resume: fn,
	}
	heap.Push(&sim.EventQueue, ev)
	return ev.Handle()
}

// Peek returns the earliest pending event without removing it, or nil.
func (sim *Simulator) Peek() *ScheduledEvent {
	if len(sim.EventQueue) == 0 {
		return nil
	}
	return sim.EventQueue[0]
}

// RunUntil pops and resumes events in (due, seq) order until the queue is
// empty or the earliest due time exceeds horizon. Events beyond the horizon are
// discarded. With a finite horizon the clock finishes at the horizon.
func (sim *Simulator) RunUntil(horizon float64) {
	if math.IsNaN(horizon) || horizon < sim.Clock {
		panic(fmt.Sprintf("RunUntil: horizon %v is before current time %.4f", horizon, sim.Clock))
	}
	for next := sim.Peek(); next != nil; next = sim.Peek() {
		if next.due > horizon {
			sim.discarded += len(sim.EventQueue)
			logrus.Infof("[t %07.2f] Horizon %.2f reached, discarding %d pending events", sim.Clock, horizon, len(sim.EventQueue))
			clear(sim.EventQueue)
			sim.EventQueue = sim.EventQueue[:0]
			break
		}
		// get the next event to be simulated
		ev := heap.Pop(&sim.EventQueue).(*ScheduledEvent)
		if ev.due < sim.Clock {
			panic(fmt.Sprintf("RunUntil: popped %v earlier than clock %.4f", ev, sim.Clock))
		}
		// advance the clock
		sim.Clock = ev.due
		logrus.Debugf("[t %07.2f] Executing %s", sim.Clock, ev.label)
		// process the event
		ev.Execute(sim)
		sim.executed++
	}
	if !math.IsInf(horizon, 1) && sim.Clock < horizon {
		sim.Clock = horizon
	}
	logrus.Debugf("[t %07.2f] Simulation ended after %d events", sim.Clock, sim.executed)
}

// Run drains the event queue with no horizon.
func (sim *Simulator) Run() {
	sim.RunUntil(math.Inf(1))
}

// Pending returns the number of events still queued.
func (sim *Simulator) Pending() int {
	return len(sim.EventQueue)
}

// Executed returns the number of events resumed so far.
func (sim *Simulator) Executed() int {
	return sim.executed
}

// Discarded returns the number of events dropped because they were due after a horizon.
func (sim *Simulator) Discarded() int {
	return sim.discarded
}

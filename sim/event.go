package sim

import "fmt"

// Continuation resumes a suspended process. It runs with the simulator clock
// already advanced to the event's due time and may schedule further events
// before returning.
type Continuation func(sim *Simulator)

// ScheduledEvent is a pending resumption owned by the simulator's EventQueue
// until it is popped. Ordering is (due, seq): seq is assigned at insertion, so
// events due at the same instant resume in the order they were scheduled.
type ScheduledEvent struct {
	due    float64      // Simulation time at which the continuation resumes (minutes)
	seq    uint64       // Insertion sequence number, tie-break for equal due times
	label  string       // Human-readable tag used in debug logs
	resume Continuation // The suspended process to resume
}

// Timestamp returns the due time of the event.
func (e *ScheduledEvent) Timestamp() float64 {
	return e.due
}

// Seq returns the insertion sequence number of the event.
func (e *ScheduledEvent) Seq() uint64 {
	return e.seq
}

// Label returns the debug tag of the event.
func (e *ScheduledEvent) Label() string {
	return e.label
}

// Execute resumes the continuation held by the event.
func (e *ScheduledEvent) Execute(sim *Simulator) {
	e.resume(sim)
}

// Handle returns an EventHandle describing this event.
func (e *ScheduledEvent) Handle() EventHandle {
	return EventHandle{Due: e.due, Seq: e.seq, Label: e.label}
}

func (e *ScheduledEvent) String() string {
	return fmt.Sprintf("Event: (Label: %s, Due: %.4f, Seq: %d)", e.label, e.due, e.seq)
}

// EventHandle identifies a scheduled event. It is a value copy; holding one
// does not keep the event alive or allow cancellation.
type EventHandle struct {
	Due   float64
	Seq   uint64
	Label string
}

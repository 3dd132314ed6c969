// Package trace provides event-trace recording for paint shop runs.
// It has no dependencies on sim/ and stores pure data types only.
package trace

// CarEvent distinguishes the two system-boundary events of a car.
type CarEvent string

const (
	CarArrived CarEvent = "arrived"
	CarExited  CarEvent = "exited"
)

// StationEvent distinguishes slot acquisition from slot release.
type StationEvent string

const (
	StationEntered  StationEvent = "entered"
	StationFinished StationEvent = "finished"
)

// CarRecord captures a car crossing the system boundary.
type CarRecord struct {
	CarID int
	Clock float64
	Event CarEvent
}

// StationRecord captures a car starting or finishing service at a station,
// together with the station's state right after the event.
type StationRecord struct {
	CarID      int
	Clock      float64
	Station    string
	Event      StationEvent
	QueueDepth int // waiting requests after the event
	InService  int // occupied slots after the event
}

// AlertRecord captures a queue-depth sample above the alert threshold.
type AlertRecord struct {
	Clock      float64
	Station    string
	QueueDepth int
}

package sim

import "github.com/paintshop-sim/paintshop-sim/sim/trace"

// TraceSink records notifications into a trace.SimulationTrace.
// It records nothing unless the trace level is events.
type TraceSink struct {
	Trace *trace.SimulationTrace
}

// NewTraceSink creates a TraceSink backed by a fresh trace.
func NewTraceSink(config trace.TraceConfig) *TraceSink {
	return &TraceSink{Trace: trace.NewSimulationTrace(config)}
}

func (s *TraceSink) Notify(n Notification) {
	if s.Trace == nil || !s.Trace.Config.Enabled() {
		return
	}
	switch n.Kind {
	case NotifyArrival:
		s.Trace.RecordCar(trace.CarRecord{CarID: n.CarID, Clock: n.Time, Event: trace.CarArrived})
	case NotifyExit:
		s.Trace.RecordCar(trace.CarRecord{CarID: n.CarID, Clock: n.Time, Event: trace.CarExited})
	case NotifyStationEnter, NotifyStationExit:
		ev := trace.StationEntered
		if n.Kind == NotifyStationExit {
			ev = trace.StationFinished
		}
		s.Trace.RecordStation(trace.StationRecord{
			CarID:      n.CarID,
			Clock:      n.Time,
			Station:    string(n.Station),
			Event:      ev,
			QueueDepth: n.QueueDepth,
			InService:  n.InService,
		})
	case NotifyQueueAlert:
		s.Trace.RecordAlert(trace.AlertRecord{Clock: n.Time, Station: string(n.Station), QueueDepth: n.QueueDepth})
	}
}

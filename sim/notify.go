package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// NotificationKind tags what happened at a point in simulated time.
type NotificationKind string

const (
	NotifyArrival      NotificationKind = "arrival"
	NotifyStationEnter NotificationKind = "station_enter"
	NotifyStationExit  NotificationKind = "station_exit"
	NotifyExit         NotificationKind = "exit"
	NotifyQueueAlert   NotificationKind = "queue_alert"
)

// Notification is a timestamped event emitted by the core. The core never
// formats or writes output itself; a Sink decides how to render it.
type Notification struct {
	Time       float64          // Logical time of the event (minutes)
	Kind       NotificationKind // What happened
	CarID      int              // Car involved (0 for station-only events)
	Station    StationName      // Station involved (empty for arrival/exit)
	QueueDepth int              // Station wait-queue length at the time of the event
	InService  int              // Occupied station slots after the event
}

// Message renders the notification as a single log line.
func (n Notification) Message() string {
	switch n.Kind {
	case NotifyArrival:
		return fmt.Sprintf("[%.2f] Car %d arrived", n.Time, n.CarID)
	case NotifyStationEnter:
		return fmt.Sprintf("[%.2f] Car %d started %s", n.Time, n.CarID, n.Station)
	case NotifyStationExit:
		return fmt.Sprintf("[%.2f] Car %d finished %s", n.Time, n.CarID, n.Station)
	case NotifyExit:
		return fmt.Sprintf("[%.2f] Car %d exited system", n.Time, n.CarID)
	case NotifyQueueAlert:
		return fmt.Sprintf("ALERT: Queue at %s has %d cars at time %.2f", n.Station, n.QueueDepth, n.Time)
	}
	return fmt.Sprintf("[%.2f] %s car=%d station=%s", n.Time, n.Kind, n.CarID, n.Station)
}

// Sink receives notifications from stations and car processes.
type Sink interface {
	Notify(n Notification)
}

// NopSink discards every notification.
type NopSink struct{}

func (NopSink) Notify(Notification) {}

// MultiSink forwards each notification to every sink in order.
type MultiSink []Sink

func (ms MultiSink) Notify(n Notification) {
	for _, s := range ms {
		s.Notify(n)
	}
}

// LogrusSink renders notifications as structured logrus entries.
// Queue alerts are logged at Warn level, everything else at Info.
type LogrusSink struct {
	Logger logrus.FieldLogger
}

// NewLogrusSink returns a LogrusSink writing to logger, or to the
// standard logrus logger when logger is nil.
func NewLogrusSink(logger logrus.FieldLogger) *LogrusSink {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &LogrusSink{Logger: logger}
}

func (s *LogrusSink) Notify(n Notification) {
	fields := logrus.Fields{"sim_time": n.Time, "event": string(n.Kind)}
	if n.CarID != 0 {
		fields["car"] = n.CarID
	}
	if n.Station != "" {
		fields["station"] = string(n.Station)
		fields["queue_depth"] = n.QueueDepth
	}
	entry := s.Logger.WithFields(fields)
	if n.Kind == NotifyQueueAlert {
		entry.Warn(n.Message())
		return
	}
	entry.Info(n.Message())
}

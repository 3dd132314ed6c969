package trace

// TraceLevel controls the verbosity of event tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelEvents captures every arrival, station entry/exit, exit and queue alert.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:   true,
	TraceLevelEvents: true,
	"":               true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// Enabled reports whether records should be collected at all.
func (c TraceConfig) Enabled() bool {
	return c.Level == TraceLevelEvents
}

// SimulationTrace collects event records during a paint shop run.
type SimulationTrace struct {
	Config   TraceConfig
	Cars     []CarRecord
	Stations []StationRecord
	Alerts   []AlertRecord
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		Config:   config,
		Cars:     make([]CarRecord, 0),
		Stations: make([]StationRecord, 0),
		Alerts:   make([]AlertRecord, 0),
	}
}

// RecordCar appends an arrival or exit record.
func (st *SimulationTrace) RecordCar(record CarRecord) {
	st.Cars = append(st.Cars, record)
}

// RecordStation appends a station entry or exit record.
func (st *SimulationTrace) RecordStation(record StationRecord) {
	st.Stations = append(st.Stations, record)
}

// RecordAlert appends a queue alert record.
func (st *SimulationTrace) RecordAlert(record AlertRecord) {
	st.Alerts = append(st.Alerts, record)
}

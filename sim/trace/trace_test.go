package trace

import (
	"testing"
)

func TestSimulationTrace_RecordStation_AppendsRecord(t *testing.T) {
	// GIVEN a trace configured for events
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN a station record is recorded
	st.RecordStation(StationRecord{
		CarID:     1,
		Clock:     12.5,
		Station:   "Primer",
		Event:     StationEntered,
		InService: 2,
	})

	// THEN the trace contains one station record with correct data
	if len(st.Stations) != 1 {
		t.Fatalf("expected 1 station record, got %d", len(st.Stations))
	}
	if st.Stations[0].Station != "Primer" {
		t.Errorf("expected station Primer, got %s", st.Stations[0].Station)
	}
	if st.Stations[0].InService != 2 {
		t.Errorf("expected in-service 2, got %d", st.Stations[0].InService)
	}
}

func TestSimulationTrace_MultipleRecords_PreservesOrder(t *testing.T) {
	// GIVEN a trace
	st := NewSimulationTrace(TraceConfig{Level: TraceLevelEvents})

	// WHEN multiple records are added
	st.RecordCar(CarRecord{CarID: 1, Clock: 10, Event: CarArrived})
	st.RecordCar(CarRecord{CarID: 2, Clock: 20, Event: CarArrived})
	st.RecordCar(CarRecord{CarID: 1, Clock: 95, Event: CarExited})
	st.RecordAlert(AlertRecord{Clock: 50, Station: "Cleaning", QueueDepth: 4})

	// THEN order is preserved within each slice
	if len(st.Cars) != 3 || len(st.Alerts) != 1 {
		t.Fatalf("expected 3 car and 1 alert records, got %d and %d", len(st.Cars), len(st.Alerts))
	}
	if st.Cars[0].CarID != 1 || st.Cars[1].CarID != 2 || st.Cars[2].Event != CarExited {
		t.Errorf("car records out of order: %+v", st.Cars)
	}
}

func TestIsValidTraceLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"none", true},
		{"events", true},
		{"", true},
		{"decisions", false},
		{"verbose", false},
	}
	for _, tc := range tests {
		if got := IsValidTraceLevel(tc.level); got != tc.valid {
			t.Errorf("IsValidTraceLevel(%q) = %v, want %v", tc.level, got, tc.valid)
		}
	}
}

func TestTraceConfig_Enabled(t *testing.T) {
	if (TraceConfig{Level: TraceLevelNone}).Enabled() {
		t.Error("none level must not be enabled")
	}
	if (TraceConfig{}).Enabled() {
		t.Error("empty level must not be enabled")
	}
	if !(TraceConfig{Level: TraceLevelEvents}).Enabled() {
		t.Error("events level must be enabled")
	}
}

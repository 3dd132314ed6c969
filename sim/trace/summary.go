package trace

// StationSummary aggregates the records of one station.
type StationSummary struct {
	Entries      int // cars that started service
	Exits        int // cars that finished service
	PeakOccupied int // highest InService seen after any event
	PeakQueue    int // highest QueueDepth seen after any event
	Alerts       int
}

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	Arrived  int
	Exited   int
	Alerts   int
	Stations map[string]*StationSummary // station name → summary
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		Stations: make(map[string]*StationSummary),
	}
	if st == nil {
		return summary
	}

	for _, c := range st.Cars {
		switch c.Event {
		case CarArrived:
			summary.Arrived++
		case CarExited:
			summary.Exited++
		}
	}

	for _, r := range st.Stations {
		s := summary.station(r.Station)
		switch r.Event {
		case StationEntered:
			s.Entries++
		case StationFinished:
			s.Exits++
		}
		s.PeakOccupied = max(s.PeakOccupied, r.InService)
		s.PeakQueue = max(s.PeakQueue, r.QueueDepth)
	}

	summary.Alerts = len(st.Alerts)
	for _, a := range st.Alerts {
		s := summary.station(a.Station)
		s.Alerts++
		s.PeakQueue = max(s.PeakQueue, a.QueueDepth)
	}

	return summary
}

func (ts *TraceSummary) station(name string) *StationSummary {
	s, ok := ts.Stations[name]
	if !ok {
		s = &StationSummary{}
		ts.Stations[name] = s
	}
	return s
}

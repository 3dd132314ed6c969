package cmd

import (
	"fmt"
	"io"

	sim "github.com/paintshop-sim/paintshop-sim/sim"
	"github.com/paintshop-sim/paintshop-sim/sim/trace"
)

// printTraceSummary writes the per-station trace aggregates after the report.
func printTraceSummary(w io.Writer, ts *trace.TraceSummary) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Trace Summary ===")
	fmt.Fprintf(w, "Arrivals traced: %d\n", ts.Arrived)
	fmt.Fprintf(w, "Exits traced   : %d\n", ts.Exited)
	fmt.Fprintf(w, "Alerts traced  : %d\n", ts.Alerts)
	for _, name := range sim.StationOrder {
		s, ok := ts.Stations[string(name)]
		if !ok {
			fmt.Fprintf(w, " %s: no events\n", name)
			continue
		}
		fmt.Fprintf(w, " %s: entries=%d exits=%d peak_occupied=%d peak_queue=%d alerts=%d\n",
			name, s.Entries, s.Exits, s.PeakOccupied, s.PeakQueue, s.Alerts)
	}
}

package report

import (
	"fmt"
	"io"
)

// Print writes the human-readable shift summary.
func (r *Report) Print(w io.Writer) {
	fmt.Fprintln(w, "=== Paint Shop Report ===")
	if r.RunID != "" {
		fmt.Fprintf(w, "Run ID               : %s\n", r.RunID)
	}
	fmt.Fprintf(w, "Seed                 : %d\n", r.Seed)
	fmt.Fprintf(w, "Simulated time       : %.2f minutes\n", r.Elapsed)
	fmt.Fprintf(w, "Cars arrived         : %d\n", r.Arrived)
	fmt.Fprintf(w, "Total cars completed : %d\n", r.Completed)
	fmt.Fprintf(w, "Cars still in shop   : %d\n", r.InProgress)
	if r.HasCompleted {
		fmt.Fprintf(w, "Average system time  : %.2f minutes\n", r.AvgSystemTime)
	} else {
		fmt.Fprintln(w, "Average system time  : n/a")
	}
	fmt.Fprintln(w)

	for _, s := range r.Stations {
		fmt.Fprintf(w, "%s Station:\n", s.Name)
		fmt.Fprintf(w, " Utilization: %.2f%%\n", s.Utilization)
		fmt.Fprintf(w, " Max queue: %d\n", s.MaxQueue)
		if s.HasSamples {
			fmt.Fprintf(w, " Avg wait: %.2f minutes\n", s.AvgWait)
			fmt.Fprintf(w, " P95 wait: %.2f minutes\n", s.P95Wait)
		} else {
			fmt.Fprintln(w, " Avg wait: n/a")
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Alerts triggered: %d\n", r.Alerts)
}

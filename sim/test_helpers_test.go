package sim

// recordingSink keeps every notification in delivery order.
type recordingSink struct {
	got []Notification
}

func (r *recordingSink) Notify(n Notification) {
	r.got = append(r.got, n)
}

func (r *recordingSink) ofKind(kind NotificationKind) []Notification {
	var out []Notification
	for _, n := range r.got {
		if n.Kind == kind {
			out = append(out, n)
		}
	}
	return out
}

// fixedConfig returns a configuration with degenerate intervals, so every
// arrival gap and service time is exact and runs are hand-checkable.
func fixedConfig(interarrival, shift, cleaning, primer, painting float64) ShopConfig {
	cfg := DefaultShopConfig()
	cfg.ShiftDuration = shift
	cfg.Interarrival = Interval{Low: interarrival, High: interarrival}
	cfg.Stations.Cleaning.Service = Interval{Low: cleaning, High: cleaning}
	cfg.Stations.Primer.Service = Interval{Low: primer, High: primer}
	cfg.Stations.Painting.Service = Interval{Low: painting, High: painting}
	return cfg
}

// grantCollector returns a GrantContinuation that stores the grant in *dst.
func grantCollector(dst **Grant) GrantContinuation {
	return func(_ *Simulator, g *Grant) { *dst = g }
}

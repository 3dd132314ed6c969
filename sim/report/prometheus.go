package report

import (
	"github.com/prometheus/client_golang/prometheus"
)

// waitBuckets covers waits from under a minute up to several hours.
var waitBuckets = []float64{0, 1, 5, 10, 15, 30, 60, 120, 240, 480}

// Collector exposes a Report as Prometheus metrics on a private registry,
// so a finished run can be written out in the text exposition format.
type Collector struct {
	registry *prometheus.Registry

	carsArrived   prometheus.Gauge
	carsCompleted prometheus.Gauge
	carsInShop    prometheus.Gauge
	queueAlerts   prometheus.Gauge
	systemTime    prometheus.Gauge
	simulatedTime prometheus.Gauge

	utilization *prometheus.GaugeVec
	busyTime    *prometheus.GaugeVec
	maxQueue    *prometheus.GaugeVec
	avgWait     *prometheus.GaugeVec
	waitTime    *prometheus.HistogramVec
}

// NewCollector creates a Collector with every metric registered.
// runID is attached to every series as a constant "run" label when non-empty.
func NewCollector(runID string) *Collector {
	var constLabels prometheus.Labels
	if runID != "" {
		constLabels = prometheus.Labels{"run": runID}
	}
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "paintshop", Name: name, Help: help, ConstLabels: constLabels,
		})
	}
	stationGauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "paintshop", Name: name, Help: help, ConstLabels: constLabels,
		}, []string{"station"})
	}

	c := &Collector{
		registry:      prometheus.NewRegistry(),
		carsArrived:   gauge("cars_arrived", "Cars that arrived during the run"),
		carsCompleted: gauge("cars_completed", "Cars that exited the shop"),
		carsInShop:    gauge("cars_in_shop", "Cars still inside the shop when the run stopped"),
		queueAlerts:   gauge("queue_alerts", "Queue samples above the alert threshold"),
		systemTime:    gauge("avg_system_time_minutes", "Mean time from arrival to exit"),
		simulatedTime: gauge("simulated_time_minutes", "Logical time at which the run stopped"),
		utilization:   stationGauge("station_utilization_percent", "Busy time over available slot time"),
		busyTime:      stationGauge("station_busy_minutes", "Cumulative completed service time"),
		maxQueue:      stationGauge("station_max_queue", "Peak sampled queue depth"),
		avgWait:       stationGauge("station_avg_wait_minutes", "Mean wait for a slot"),
		waitTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace:   "paintshop",
			Name:        "station_wait_minutes",
			Help:        "Distribution of waits for a slot",
			Buckets:     waitBuckets,
			ConstLabels: constLabels,
		}, []string{"station"}),
	}

	c.registry.MustRegister(
		c.carsArrived, c.carsCompleted, c.carsInShop, c.queueAlerts, c.systemTime, c.simulatedTime,
		c.utilization, c.busyTime, c.maxQueue, c.avgWait, c.waitTime,
	)
	return c
}

// Registry returns the registry the metrics are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Observe loads a report into the metrics. Call it once per Collector:
// the wait histogram accumulates across calls.
func (c *Collector) Observe(r *Report) {
	c.carsArrived.Set(float64(r.Arrived))
	c.carsCompleted.Set(float64(r.Completed))
	c.carsInShop.Set(float64(r.InProgress))
	c.queueAlerts.Set(float64(r.Alerts))
	c.systemTime.Set(r.AvgSystemTime)
	c.simulatedTime.Set(r.Elapsed)

	for _, s := range r.Stations {
		name := string(s.Name)
		c.utilization.WithLabelValues(name).Set(s.Utilization)
		c.busyTime.WithLabelValues(name).Set(s.BusyTime)
		c.maxQueue.WithLabelValues(name).Set(float64(s.MaxQueue))
		c.avgWait.WithLabelValues(name).Set(s.AvgWait)
		hist := c.waitTime.WithLabelValues(name)
		for _, w := range s.Waits {
			hist.Observe(w)
		}
	}
}

// WriteTextfile writes every registered metric to path in the Prometheus
// text format (suitable for the node_exporter textfile collector).
func (c *Collector) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, c.registry)
}

// WriteTextfile builds a Collector for r and writes it to path.
func WriteTextfile(path string, r *Report) error {
	c := NewCollector(r.RunID)
	c.Observe(r)
	return c.WriteTextfile(path)
}

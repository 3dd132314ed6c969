package sim

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
)

// ErrInvalidConfig is wrapped by every error returned from ShopConfig.Validate.
var ErrInvalidConfig = errors.New("invalid paint shop configuration")

// Interval is a closed interval [Low, High] sampled uniformly (minutes).
type Interval struct {
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Sample draws a value uniformly from the half-open range [Low, High),
// following rand.Float64's [0, 1).
// A degenerate interval (Low == High) always returns Low.
func (iv Interval) Sample(rng *rand.Rand) float64 {
	if iv.Low == iv.High {
		return iv.Low
	}
	return iv.Low + rng.Float64()*(iv.High-iv.Low)
}

func (iv Interval) validate(field string) error {
	switch {
	case math.IsNaN(iv.Low) || math.IsNaN(iv.High) || math.IsInf(iv.Low, 0) || math.IsInf(iv.High, 0):
		return fmt.Errorf("%s: bounds must be finite, got (%v, %v)", field, iv.Low, iv.High)
	case iv.Low < 0:
		return fmt.Errorf("%s: low must be >= 0, got %v", field, iv.Low)
	case iv.Low > iv.High:
		return fmt.Errorf("%s: low %v exceeds high %v", field, iv.Low, iv.High)
	}
	return nil
}

// StationConfig groups the parameters of a single station.
type StationConfig struct {
	Capacity int      `yaml:"capacity"` // concurrent slots (must be >= 1)
	Service  Interval `yaml:"service"`  // uniform service time per car
}

// StationsConfig lists the three stations in workflow order.
type StationsConfig struct {
	Cleaning StationConfig `yaml:"cleaning"`
	Primer   StationConfig `yaml:"primer"`
	Painting StationConfig `yaml:"painting"`
}

// ShopConfig is the full configuration surface consumed by NewPaintShop.
type ShopConfig struct {
	ShiftDuration       float64        `yaml:"shift_duration"`        // minutes; arrivals stop at this boundary
	Interarrival        Interval       `yaml:"interarrival"`          // minutes between car arrivals
	Stations            StationsConfig `yaml:"stations"`              // per-station capacity and service time
	QueueAlertThreshold int            `yaml:"queue_alert_threshold"` // alert when a sampled queue exceeds this
	Seed                int64          `yaml:"seed"`                  // master seed for all samplers
	Drain               bool           `yaml:"drain"`                 // keep running past the shift until every car exits
}

// DefaultShopConfig returns the reference 8-hour shift configuration.
func DefaultShopConfig() ShopConfig {
	return ShopConfig{
		ShiftDuration: 480,
		Interarrival:  Interval{Low: 8, High: 12},
		Stations: StationsConfig{
			Cleaning: StationConfig{Capacity: 1, Service: Interval{Low: 15, High: 20}},
			Primer:   StationConfig{Capacity: 2, Service: Interval{Low: 25, High: 35}},
			Painting: StationConfig{Capacity: 1, Service: Interval{Low: 30, High: 40}},
		},
		QueueAlertThreshold: 3,
		Seed:                42,
	}
}

// Station returns the configuration of the named station.
// Panics on an unknown name.
func (c ShopConfig) Station(name StationName) StationConfig {
	switch name {
	case Cleaning:
		return c.Stations.Cleaning
	case Primer:
		return c.Stations.Primer
	case Painting:
		return c.Stations.Painting
	}
	panic(fmt.Sprintf("ShopConfig.Station: unknown station %q", name))
}

// Horizon returns the time at which the event loop stops: the shift boundary,
// or +Inf when the shop drains remaining cars after the shift.
func (c ShopConfig) Horizon() float64 {
	if c.Drain {
		return math.Inf(1)
	}
	return c.ShiftDuration
}

// Validate checks every field and reports all problems at once.
// The returned error wraps ErrInvalidConfig.
func (c ShopConfig) Validate() error {
	var problems []string
	if math.IsNaN(c.ShiftDuration) || math.IsInf(c.ShiftDuration, 0) || c.ShiftDuration <= 0 {
		problems = append(problems, fmt.Sprintf("shift_duration must be a positive finite number, got %v", c.ShiftDuration))
	}
	if err := c.Interarrival.validate("interarrival"); err != nil {
		problems = append(problems, err.Error())
	} else if c.Interarrival.High == 0 {
		// an all-zero interval would spawn cars forever without advancing the clock
		problems = append(problems, "interarrival.high must be > 0")
	}
	for _, name := range StationOrder {
		st := c.Station(name)
		field := "stations." + strings.ToLower(string(name))
		if st.Capacity < 1 {
			problems = append(problems, fmt.Sprintf("%s.capacity must be >= 1, got %d", field, st.Capacity))
		}
		if err := st.Service.validate(field + ".service"); err != nil {
			problems = append(problems, err.Error())
		}
	}
	if c.QueueAlertThreshold < 0 {
		problems = append(problems, fmt.Sprintf("queue_alert_threshold must be >= 0, got %d", c.QueueAlertThreshold))
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

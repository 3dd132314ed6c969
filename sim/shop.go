package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
)

// PaintShop wires the simulator, the three stations, the arrival generator
// and the metrics collector for one shift.
type PaintShop struct {
	Config   ShopConfig
	Sim      *Simulator
	Metrics  *Metrics
	RNG      *PartitionedRNG
	Stations []*Station // in StationOrder
	Arrivals *ArrivalGenerator

	sink     Sink
	samplers []*rand.Rand
	services []Interval
	cars     []*CarProcess
	ran      bool
}

// NewPaintShop validates cfg and builds an idle shop. sink may be nil.
func NewPaintShop(cfg ShopConfig, sink Sink) (*PaintShop, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NopSink{}
	}
	p := &PaintShop{
		Config:  cfg,
		Sim:     NewSimulator(),
		Metrics: NewMetrics(),
		RNG:     NewPartitionedRNG(cfg.Seed),
		sink:    sink,
	}
	for _, name := range StationOrder {
		sc := cfg.Station(name)
		p.Stations = append(p.Stations, NewStation(p.Sim, name, sc.Capacity, cfg.QueueAlertThreshold, p.Metrics, sink))
		p.samplers = append(p.samplers, p.RNG.ForSubsystem(SubsystemStation(name)))
		p.services = append(p.services, sc.Service)
	}
	p.Arrivals = NewArrivalGenerator(cfg.Interarrival, cfg.ShiftDuration, p.RNG.ForSubsystem(SubsystemArrivals), p.spawnCar)
	return p, nil
}

// Station returns the station with the given name, or nil.
func (p *PaintShop) Station(name StationName) *Station {
	for _, st := range p.Stations {
		if st.Name == name {
			return st
		}
	}
	return nil
}

// Cars returns every car process spawned so far, in arrival order.
func (p *PaintShop) Cars() []*CarProcess {
	return p.cars
}

// Horizon returns the logical time at which Run stops.
func (p *PaintShop) Horizon() float64 {
	return p.Config.Horizon()
}

// Run starts the arrival generator and drives the event loop to the horizon.
// The returned Metrics are complete and must be treated as read-only.
// Run may be called only once per PaintShop.
func (p *PaintShop) Run() *Metrics {
	if p.ran {
		panic("PaintShop.Run: already ran")
	}
	p.ran = true
	logrus.Infof("Starting paint shop simulation: shift=%.2f min, horizon=%v, seed=%d",
		p.Config.ShiftDuration, p.Horizon(), p.Config.Seed)

	p.Arrivals.Start(p.Sim)
	p.Sim.RunUntil(p.Horizon())
	p.Metrics.SimEndedTime = p.Sim.Now()

	logrus.Infof("[t %07.2f] Simulation ended: %d arrived, %d completed, %d alerts",
		p.Sim.Now(), p.Arrivals.Spawned(), p.Metrics.Completed, p.Metrics.Alerts)
	return p.Metrics
}

func (p *PaintShop) spawnCar(sim *Simulator, carID int) {
	car := NewCarProcess(carID, sim, p.Stations, p.samplers, p.services, p.Metrics, p.sink)
	p.cars = append(p.cars, car)
	car.Start(sim)
}

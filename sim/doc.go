// Package sim provides the discrete-event simulation engine for the paint shop.
//
// # Reading Guide
//
// Start with these files to understand the simulation kernel:
//   - simulator.go: the logical clock and the (due, seq)-ordered event loop
//   - station.go: capacity-limited stations with FIFO wait queues and grants
//   - car.go: the CarProcess state machine (Arrived → ... → Exited)
//   - arrival.go: the arrival generator over the half-open shift [0, shift)
//   - shop.go: wiring of all of the above for one shift
//
// # Execution Model
//
// Processes never block goroutines. Every suspension is an explicit value
// (Suspension) and every resumption is a Continuation held by a
// ScheduledEvent. Exactly one continuation runs at a time, so stations and
// metrics need no locks.
//
// # Sub-packages
//   - sim/trace/: pure-data event trace records and their summary
//   - sim/report/: end-of-run report, printing and Prometheus export
//
// Randomness flows through PartitionedRNG: the arrival stream and each
// station's service sampler draw from isolated, seed-derived sources.
package sim

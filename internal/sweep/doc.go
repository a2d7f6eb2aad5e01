// Package sweep implements the parallel sweep coordinator, which farms a
// queue of sim.Config values out to a fixed pool of worker goroutines,
// each running an independent Simulation to completion and publishing
// its Output.
package sweep

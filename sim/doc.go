// Package sim implements the discrete-event simulation engine: the
// tagged Event type and its priority queue, the run Config and Output
// record, and the Simulation type that drives the main loop, delegating
// all task placement to package placement.
package sim

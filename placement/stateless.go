package placement

import "github.com/ccicconetti/stateful-faas-sim/job"

// StatelessMinNodes is fluid: allocate/deallocate/defragment are no-ops.
// Its avg_busy_nodes is the time-weighted average of the instantaneous
// fluid busy-node count (aggregated by the simulation engine, not here).
type StatelessMinNodes struct{}

func (StatelessMinNodes) Allocate(uint64, *job.Job) {}
func (StatelessMinNodes) Deallocate(uint64, *job.Job) {}
func (StatelessMinNodes) Defragment(ActiveJobs) (float64, int) {
	return 0, 0
}
func (StatelessMinNodes) Stats(active ActiveJobs, nodeCapacity int) (float64, float64) {
	return fluidStats(active, nodeCapacity)
}
func (StatelessMinNodes) Name() string { return "stateless-min-nodes" }

// StatelessMaxBalancing shares StatelessMinNodes's instantaneous formula;
// the two differ only in how the engine aggregates avg_busy_nodes at the
// end of the run: this policy's output field is overwritten with the
// observed peak rather than the time-weighted average.
type StatelessMaxBalancing struct{}

func (StatelessMaxBalancing) Allocate(uint64, *job.Job) {}
func (StatelessMaxBalancing) Deallocate(uint64, *job.Job) {}
func (StatelessMaxBalancing) Defragment(ActiveJobs) (float64, int) {
	return 0, 0
}
func (StatelessMaxBalancing) Stats(active ActiveJobs, nodeCapacity int) (float64, float64) {
	return fluidStats(active, nodeCapacity)
}
func (StatelessMaxBalancing) Name() string { return "stateless-max-balancing" }

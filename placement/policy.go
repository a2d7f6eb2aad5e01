package placement

import (
	"math"

	"github.com/ccicconetti/stateful-faas-sim/job"
)

// ActiveJobs maps job_id to the currently-active Job, the shape the
// simulation engine's active-jobs table exposes to the placement engine.
type ActiveJobs map[uint64]*job.Job

// Engine is the placement-engine entry point: allocate a new job,
// deallocate a departed one, defragment all active jobs, and report the
// instantaneous statistics used for time-weighted averaging.
//
// Implementations: StatelessMinNodes and StatelessMaxBalancing never
// touch node/allocation state (Allocate/Deallocate/Defragment are
// no-ops); StatefulBestFit and StatefulRandom do.
type Engine interface {
	// Allocate places every task of job j (job id jobID) onto nodes.
	// Panics if a task's cpu_request exceeds node capacity — a fatal
	// invariant violation, not a recoverable error.
	Allocate(jobID uint64, j *job.Job)
	// Deallocate removes every task of job j from its hosting node.
	Deallocate(jobID uint64, j *job.Job)
	// Defragment re-places every active job from scratch, returning the
	// migration traffic (MB, summed state_size of migrated tasks) and
	// the number of migrated tasks.
	Defragment(active ActiveJobs) (migrationTraffic float64, migrations int)
	// Stats returns the instantaneous (busy_nodes, traffic) pair sampled
	// at this event boundary.
	Stats(active ActiveJobs, nodeCapacity int) (busyNodes float64, traffic float64)
	// Name identifies the policy, e.g. for CLI listing and logging.
	Name() string
}

// fluidStats implements the shared fluid busy-node/traffic formula used
// by both stateless policies: busy_nodes = ceil(sum(total_cpu)/capacity),
// traffic = sum(total_state+total_arg).
func fluidStats(active ActiveJobs, nodeCapacity int) (float64, float64) {
	totalCPU := 0
	totalBytes := 0
	for _, j := range active {
		totalCPU += j.TotalCPU()
		totalBytes += j.TotalStateSize() + j.TotalArgSize()
	}
	busy := math.Ceil(float64(totalCPU) / float64(nodeCapacity))
	return busy, float64(totalBytes)
}

// statefulStats implements the shared stateful busy-node/traffic formula
// used by both StatefulBestFit and StatefulRandom: busy_nodes comes
// straight from the live node table, and traffic sums arg_size for every
// edge whose endpoints are hosted on different nodes; a same-node edge
// contributes nothing.
func statefulStats(table *NodeTable, active ActiveJobs) (float64, float64) {
	var traffic float64
	for jobID, j := range active {
		for _, e := range j.Edges {
			fromRef := job.TaskRef{JobID: jobID, TaskID: e.From}
			toRef := job.TaskRef{JobID: jobID, TaskID: e.To}
			fromIdx, fromOK := table.Lookup(fromRef)
			toIdx, toOK := table.Lookup(toRef)
			if fromOK && toOK && fromIdx != toIdx {
				traffic += float64(e.ArgSize)
			}
		}
	}
	return float64(table.BusyNodes()), traffic
}

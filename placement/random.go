package placement

import (
	"fmt"
	"math/rand"

	"github.com/ccicconetti/stateful-faas-sim/job"
)

// StatefulRandom places each task on a uniformly-random node chosen among
// those with sufficient residual capacity, falling back to the first idle
// node and finally to a freshly-appended one. Unlike StatefulBestFit, it
// never defragments: Defragment is a no-op for this policy.
type StatefulRandom struct {
	capacity int
	rng      *rand.Rand
	table    *NodeTable
}

// NewStatefulRandom returns a StatefulRandom policy bound to the given
// per-node capacity and placement RNG.
func NewStatefulRandom(capacity int, rng *rand.Rand) *StatefulRandom {
	return &StatefulRandom{capacity: capacity, rng: rng, table: NewNodeTable()}
}

func (p *StatefulRandom) Allocate(jobID uint64, j *job.Job) {
	for i, v := range j.Vertices {
		if v.CPURequest > p.capacity {
			panic(fmt.Sprintf("placement: task (job=%d,task=%d) cpu_request %d exceeds node_capacity %d",
				jobID, i, v.CPURequest, p.capacity))
		}
		ref := job.TaskRef{JobID: jobID, TaskID: i}
		p.placeTask(ref, v.CPURequest)
	}
}

func (p *StatefulRandom) placeTask(ref job.TaskRef, cpu int) {
	var candidates []int
	for idx := 0; idx < p.table.NodeCount(); idx++ {
		if p.table.Node(idx).Residual(p.capacity) >= cpu {
			candidates = append(candidates, idx)
		}
	}
	if len(candidates) > 0 {
		chosen := candidates[p.rng.Intn(len(candidates))]
		p.table.Place(ref, chosen, cpu)
		return
	}

	for idx := 0; idx < p.table.NodeCount(); idx++ {
		if !p.table.Node(idx).Active() {
			p.table.Place(ref, idx, cpu)
			return
		}
	}

	idx := p.table.NewNode()
	p.table.Place(ref, idx, cpu)
}

func (p *StatefulRandom) Deallocate(jobID uint64, j *job.Job) {
	for i, v := range j.Vertices {
		p.table.Unplace(job.TaskRef{JobID: jobID, TaskID: i}, v.CPURequest)
	}
}

// Defragment is a no-op for StatefulRandom.
func (p *StatefulRandom) Defragment(ActiveJobs) (float64, int) {
	return 0, 0
}

func (p *StatefulRandom) Stats(active ActiveJobs, nodeCapacity int) (float64, float64) {
	return statefulStats(p.table, active)
}

func (p *StatefulRandom) Name() string { return "stateful-random" }

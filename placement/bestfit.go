package placement

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/ccicconetti/stateful-faas-sim/job"
)

// StatefulBestFit places each task, in DAG order, on a predecessor's node
// if it has room, otherwise on the existing node that would be left with
// the smallest residual capacity (ties broken uniformly at random),
// appending a fresh node only when nothing qualifies. Defragmentation
// re-runs this allocation from a clean slate and reports the resulting
// migrations.
type StatefulBestFit struct {
	capacity int
	rng      *rand.Rand
	table    *NodeTable
}

// NewStatefulBestFit returns a StatefulBestFit policy bound to the given
// per-node capacity and placement RNG.
func NewStatefulBestFit(capacity int, rng *rand.Rand) *StatefulBestFit {
	return &StatefulBestFit{capacity: capacity, rng: rng, table: NewNodeTable()}
}

func (p *StatefulBestFit) Allocate(jobID uint64, j *job.Job) {
	for i, v := range j.Vertices {
		if v.CPURequest > p.capacity {
			panic(fmt.Sprintf("placement: task (job=%d,task=%d) cpu_request %d exceeds node_capacity %d",
				jobID, i, v.CPURequest, p.capacity))
		}
		ref := job.TaskRef{JobID: jobID, TaskID: i}
		p.placeTask(ref, v.CPURequest, j.Predecessors(i))
	}
}

func (p *StatefulBestFit) placeTask(ref job.TaskRef, cpu int, preds []int) {
	for _, pred := range preds {
		predRef := job.TaskRef{JobID: ref.JobID, TaskID: pred}
		nodeIdx, ok := p.table.Lookup(predRef)
		if !ok {
			continue
		}
		if p.table.Node(nodeIdx).Residual(p.capacity) >= cpu {
			p.table.Place(ref, nodeIdx, cpu)
			return
		}
	}

	bestResidual := -1
	var candidates []int
	for idx := 0; idx < p.table.NodeCount(); idx++ {
		residual := p.table.Node(idx).Residual(p.capacity)
		if residual < cpu {
			continue
		}
		switch {
		case bestResidual == -1 || residual < bestResidual:
			bestResidual = residual
			candidates = append(candidates[:0], idx)
		case residual == bestResidual:
			candidates = append(candidates, idx)
		}
	}
	if len(candidates) == 0 {
		idx := p.table.NewNode()
		p.table.Place(ref, idx, cpu)
		return
	}
	chosen := candidates[p.rng.Intn(len(candidates))]
	p.table.Place(ref, chosen, cpu)
}

func (p *StatefulBestFit) Deallocate(jobID uint64, j *job.Job) {
	for i, v := range j.Vertices {
		p.table.Unplace(job.TaskRef{JobID: jobID, TaskID: i}, v.CPURequest)
	}
}

// Defragment snapshots the current placement, clears the node table, and
// re-allocates every active job in ascending job-id order (a stable
// substitute for "snapshot order", since the active-jobs table itself is
// unordered). Tasks whose node index changed are migrations; their
// state_size contributes to the returned migration traffic.
func (p *StatefulBestFit) Defragment(active ActiveJobs) (float64, int) {
	prev := make(map[job.TaskRef]int, len(p.table.index))
	for ref, idx := range p.table.index {
		prev[ref] = idx
	}

	p.table.Reset()

	jobIDs := make([]uint64, 0, len(active))
	for id := range active {
		jobIDs = append(jobIDs, id)
	}
	sort.Slice(jobIDs, func(i, j int) bool { return jobIDs[i] < jobIDs[j] })
	for _, id := range jobIDs {
		p.Allocate(id, active[id])
	}

	var migrationTraffic float64
	migrations := 0
	for ref, newIdx := range p.table.index {
		oldIdx, existed := prev[ref]
		if existed && oldIdx != newIdx {
			migrations++
			migrationTraffic += float64(active[ref.JobID].Vertices[ref.TaskID].StateSize)
		}
	}
	return migrationTraffic, migrations
}

func (p *StatefulBestFit) Stats(active ActiveJobs, nodeCapacity int) (float64, float64) {
	return statefulStats(p.table, active)
}

func (p *StatefulBestFit) Name() string { return "stateful-best-fit" }

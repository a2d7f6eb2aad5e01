package placement

import (
	"testing"

	"github.com/ccicconetti/stateful-faas-sim/job"
)

func TestStatefulStats_SameNodeEdgeContributesNothing(t *testing.T) {
	table := NewNodeTable()
	idx := table.NewNode()
	table.Place(job.TaskRef{JobID: 1, TaskID: 0}, idx, 1)
	table.Place(job.TaskRef{JobID: 1, TaskID: 1}, idx, 1)

	active := ActiveJobs{
		1: &job.Job{
			Vertices: []job.Vertex{{CPURequest: 1, StateSize: 1000}, {CPURequest: 1, StateSize: 1000}},
			Edges:    []job.Edge{{From: 0, To: 1, ArgSize: 42}},
		},
	}

	_, traffic := statefulStats(table, active)
	if traffic != 0 {
		t.Fatalf("traffic = %g, want 0 for a same-node edge", traffic)
	}
}

func TestStatefulStats_CrossNodeEdgeContributesArgSizeOnly(t *testing.T) {
	table := NewNodeTable()
	idxA := table.NewNode()
	idxB := table.NewNode()
	table.Place(job.TaskRef{JobID: 1, TaskID: 0}, idxA, 1)
	table.Place(job.TaskRef{JobID: 1, TaskID: 1}, idxB, 1)

	active := ActiveJobs{
		1: &job.Job{
			Vertices: []job.Vertex{{CPURequest: 1, StateSize: 1000}, {CPURequest: 1, StateSize: 1000}},
			Edges:    []job.Edge{{From: 0, To: 1, ArgSize: 42}},
		},
	}

	_, traffic := statefulStats(table, active)
	if traffic != 42 {
		t.Fatalf("traffic = %g, want 42 (arg_size only, no state_size)", traffic)
	}
}

func TestStatefulStats_MixOfSameAndCrossNodeEdges(t *testing.T) {
	table := NewNodeTable()
	idxA := table.NewNode()
	idxB := table.NewNode()
	table.Place(job.TaskRef{JobID: 1, TaskID: 0}, idxA, 1)
	table.Place(job.TaskRef{JobID: 1, TaskID: 1}, idxA, 1)
	table.Place(job.TaskRef{JobID: 1, TaskID: 2}, idxB, 1)

	active := ActiveJobs{
		1: &job.Job{
			Vertices: []job.Vertex{
				{CPURequest: 1, StateSize: 1000},
				{CPURequest: 1, StateSize: 1000},
				{CPURequest: 1, StateSize: 1000},
			},
			Edges: []job.Edge{
				{From: 0, To: 1, ArgSize: 5},  // same node (idxA): contributes 0
				{From: 1, To: 2, ArgSize: 11}, // cross node (idxA -> idxB): contributes 11
			},
		},
	}

	_, traffic := statefulStats(table, active)
	if traffic != 11 {
		t.Fatalf("traffic = %g, want 11 (only the cross-node edge's arg_size)", traffic)
	}
}

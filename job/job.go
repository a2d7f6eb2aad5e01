// Package job implements the task-DAG data model: Vertex, Edge, Job, and
// the JobFactory that draws random job DAGs from empirical distributions.
package job

// Vertex is a task: its CPU request (hundredths of a core) and the size
// of its persistent state (MB). Immutable once drawn.
type Vertex struct {
	CPURequest int
	StateSize  int
}

// Edge is a directed invocation dependency between two task indices
// within the same Job. ArgSize is the payload transferred each
// invocation when the endpoints sit on different nodes (MB).
type Edge struct {
	From, To int
	ArgSize  int
}

// Job is an ordered list of vertices with 0-based indices and a set of
// directed edges referencing those indices. Task 0 is always the root of
// the critical path.
type Job struct {
	Vertices []Vertex
	Edges    []Edge
}

// TotalCPU is the sum of CPURequest over all vertices.
func (j *Job) TotalCPU() int {
	total := 0
	for _, v := range j.Vertices {
		total += v.CPURequest
	}
	return total
}

// TotalStateSize is the sum of StateSize over all vertices.
func (j *Job) TotalStateSize() int {
	total := 0
	for _, v := range j.Vertices {
		total += v.StateSize
	}
	return total
}

// TotalArgSize is the sum of ArgSize over all edges.
func (j *Job) TotalArgSize() int {
	total := 0
	for _, e := range j.Edges {
		total += e.ArgSize
	}
	return total
}

// Predecessors returns the (in DAG-order) set of task indices that hold
// an edge directly into task.
func (j *Job) Predecessors(task int) []int {
	var preds []int
	for _, e := range j.Edges {
		if e.To == task {
			preds = append(preds, e.From)
		}
	}
	return preds
}

// TaskRef identifies a task within the active-jobs table: the
// (job_id, task_id) pair, used as the allocation-index key in place of
// a synthetic job_id*1000+task_id integer hash.
type TaskRef struct {
	JobID  uint64
	TaskID int
}

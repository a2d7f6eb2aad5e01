package placement

import (
	"fmt"

	"github.com/ccicconetti/stateful-faas-sim/job"
)

// Node is a bag of (job_id, task_id) pairs identifying the tasks
// currently hosted, plus the running sum of their CPU requests. Nodes
// carry no identity beyond their index in the node table; they are never
// destroyed, only emptied.
type Node struct {
	tasks map[job.TaskRef]struct{}
	used  int
}

func newNode() *Node {
	return &Node{tasks: make(map[job.TaskRef]struct{})}
}

// Active reports whether this node currently hosts at least one task.
func (n *Node) Active() bool { return len(n.tasks) > 0 }

// Used returns the sum of cpu_request of the node's hosted tasks.
func (n *Node) Used() int { return n.used }

// Residual returns capacity - Used().
func (n *Node) Residual(capacity int) int { return capacity - n.used }

func (n *Node) add(ref job.TaskRef, cpu int) {
	n.tasks[ref] = struct{}{}
	n.used += cpu
}

func (n *Node) remove(ref job.TaskRef, cpu int) {
	delete(n.tasks, ref)
	n.used -= cpu
}

// NodeTable is the node vector plus the allocation index
// (job_id,task_id) -> node index, maintained together so the invariant
// that a task appears on at most one node is enforced in one place.
type NodeTable struct {
	nodes []*Node
	index map[job.TaskRef]int
}

// NewNodeTable returns an empty node table.
func NewNodeTable() *NodeTable {
	return &NodeTable{index: make(map[job.TaskRef]int)}
}

// NodeCount returns the number of nodes ever created (active or idle).
func (t *NodeTable) NodeCount() int { return len(t.nodes) }

// BusyNodes returns the number of currently-active nodes.
func (t *NodeTable) BusyNodes() int {
	n := 0
	for _, node := range t.nodes {
		if node.Active() {
			n++
		}
	}
	return n
}

// Node returns the node at index idx.
func (t *NodeTable) Node(idx int) *Node { return t.nodes[idx] }

// NewNode appends a fresh, empty node and returns its index.
func (t *NodeTable) NewNode() int {
	t.nodes = append(t.nodes, newNode())
	return len(t.nodes) - 1
}

// Lookup returns the node index hosting ref, if any.
func (t *NodeTable) Lookup(ref job.TaskRef) (int, bool) {
	idx, ok := t.index[ref]
	return idx, ok
}

// Place assigns ref to node nodeIdx, updating both the node's bag and the
// allocation index.
func (t *NodeTable) Place(ref job.TaskRef, nodeIdx int, cpu int) {
	t.nodes[nodeIdx].add(ref, cpu)
	t.index[ref] = nodeIdx
}

// Unplace removes ref from its hosting node and from the allocation
// index. Panics if ref is not currently allocated — an allocation-index
// miss during deallocation is a fatal programming error.
func (t *NodeTable) Unplace(ref job.TaskRef, cpu int) {
	idx, ok := t.index[ref]
	if !ok {
		panic(fmt.Sprintf("placement: allocation-index miss deallocating (job=%d,task=%d)", ref.JobID, ref.TaskID))
	}
	t.nodes[idx].remove(ref, cpu)
	delete(t.index, ref)
}

// Reset clears both the node vector and the allocation index, used by
// defragmentation before re-allocating every active job from scratch.
func (t *NodeTable) Reset() {
	t.nodes = nil
	t.index = make(map[job.TaskRef]int)
}

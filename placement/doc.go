// Package placement implements the node/allocation bookkeeping and the
// four task-allocation policies — StatelessMinNodes, StatelessMaxBalancing,
// StatefulBestFit, StatefulRandom — plus the defragmentation routine used
// by the stateful policies.
//
// The two stateless (fluid) policies never populate a NodeTable; their
// Allocate/Deallocate/Defragment are no-ops, their instantaneous busy-node
// count is derived from aggregate CPU load, and their traffic from the
// summed state and argument sizes of the active jobs (see fluidStats).
package placement

package sim

import "container/heap"

// eventHeap implements a min-priority queue on Event.Time, with ties
// broken by insertion sequence number for determinism.
type eventHeap struct {
	events []Event
}

func newEventHeap() *eventHeap {
	h := &eventHeap{}
	heap.Init(h)
	return h
}

func (h *eventHeap) Len() int { return len(h.events) }

func (h *eventHeap) Less(i, j int) bool {
	if h.events[i].Time != h.events[j].Time {
		return h.events[i].Time < h.events[j].Time
	}
	return h.events[i].seq < h.events[j].seq
}

func (h *eventHeap) Swap(i, j int) { h.events[i], h.events[j] = h.events[j], h.events[i] }

func (h *eventHeap) Push(x any) { h.events = append(h.events, x.(Event)) }

func (h *eventHeap) Pop() any {
	old := h.events
	n := len(old)
	item := old[n-1]
	h.events = old[:n-1]
	return item
}

// schedule pushes e onto the heap, stamping it with the next sequence
// number.
func (h *eventHeap) schedule(e Event, seqCounter *int64) {
	e.seq = *seqCounter
	*seqCounter++
	heap.Push(h, e)
}

// popNext removes and returns the earliest event, or ok=false if empty.
func (h *eventHeap) popNext() (Event, bool) {
	if h.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(h).(Event), true
}

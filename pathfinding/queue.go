package pathfinding

import (
	"container/heap"

	"gridpath/core"
)

// Entry is a frontier item. The same point may be queued more than once;
// stale entries are harmless because the search only acts on cost improvements.
type Entry struct {
	Point    core.Point
	Priority int
	seq      uint64 // insertion order, breaks priority ties
}

type entryHeap []Entry

func (h entryHeap) Len() int { return len(h) }
func (h entryHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}
func (h entryHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *entryHeap) Push(x interface{}) {
	*h = append(*h, x.(Entry))
}

func (h *entryHeap) Pop() interface{} {
	old := *h
	n := len(old)
	e := old[n-1]
	*h = old[0 : n-1]
	return e
}

// Queue is a stable min-priority queue: lower priorities come out first and
// equal priorities come out in the order they were enqueued.
type Queue struct {
	items entryHeap
	seq   uint64
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue adds p with the given priority.
func (q *Queue) Enqueue(p core.Point, priority int) {
	heap.Push(&q.items, Entry{Point: p, Priority: priority, seq: q.seq})
	q.seq++
}

// Dequeue removes and returns the lowest-priority entry.
// The boolean is false when the queue is empty.
func (q *Queue) Dequeue() (Entry, bool) {
	if len(q.items) == 0 {
		return Entry{}, false
	}
	return heap.Pop(&q.items).(Entry), true
}

// IsEmpty reports whether the queue has no entries.
func (q *Queue) IsEmpty() bool { return len(q.items) == 0 }

// Len returns the number of queued entries, stale duplicates included.
func (q *Queue) Len() int { return len(q.items) }

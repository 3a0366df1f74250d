package pathfinding

import (
	"math/rand/v2"
	"testing"

	"gridpath/core"
)

func TestQueue_Empty(t *testing.T) {
	q := NewQueue()
	if !q.IsEmpty() {
		t.Error("New queue should be empty")
	}
	if q.Len() != 0 {
		t.Errorf("Len = %d, want 0", q.Len())
	}
	if _, ok := q.Dequeue(); ok {
		t.Error("Dequeue on empty queue should report false")
	}
}

func TestQueue_PriorityOrder(t *testing.T) {
	q := NewQueue()
	q.Enqueue(core.Point{X: 1}, 50)
	q.Enqueue(core.Point{X: 2}, 10)
	q.Enqueue(core.Point{X: 3}, 30)
	q.Enqueue(core.Point{X: 4}, 0)

	if q.Len() != 4 {
		t.Fatalf("Len = %d, want 4", q.Len())
	}
	want := []int{4, 2, 3, 1}
	for i, x := range want {
		e, ok := q.Dequeue()
		if !ok {
			t.Fatalf("Dequeue %d reported empty", i)
		}
		if e.Point.X != x {
			t.Errorf("Dequeue %d = %v, want X=%d", i, e.Point, x)
		}
	}
	if !q.IsEmpty() {
		t.Error("Queue should be empty after draining")
	}
}

func TestQueue_StableTies(t *testing.T) {
	q := NewQueue()
	// Interleave two priorities so heap reshuffling would expose instability.
	for i := 0; i < 20; i++ {
		q.Enqueue(core.Point{X: i, Y: 0}, 7)
		q.Enqueue(core.Point{X: i, Y: 1}, 3)
	}

	for i := 0; i < 20; i++ {
		e, _ := q.Dequeue()
		if e.Priority != 3 || e.Point.X != i {
			t.Fatalf("Dequeue %d = %v@%d, want (%d,1)@3", i, e.Point, e.Priority, i)
		}
	}
	for i := 0; i < 20; i++ {
		e, _ := q.Dequeue()
		if e.Priority != 7 || e.Point.X != i {
			t.Fatalf("Dequeue %d = %v@%d, want (%d,0)@7", i, e.Point, e.Priority, i)
		}
	}
}

func TestQueue_RandomSequences(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for round := 0; round < 50; round++ {
		q := NewQueue()
		n := r.IntN(200) + 1
		for i := 0; i < n; i++ {
			// X records insertion order.
			q.Enqueue(core.Point{X: i}, r.IntN(10))
		}

		prev, _ := q.Dequeue()
		for q.Len() > 0 {
			e, _ := q.Dequeue()
			if e.Priority < prev.Priority {
				t.Fatalf("round %d: priority went down %d -> %d", round, prev.Priority, e.Priority)
			}
			if e.Priority == prev.Priority && e.Point.X < prev.Point.X {
				t.Fatalf("round %d: equal priorities out of insertion order: %d before %d",
					round, prev.Point.X, e.Point.X)
			}
			prev = e
		}
	}
}

func TestQueue_DuplicatePoints(t *testing.T) {
	q := NewQueue()
	p := core.Point{X: 2, Y: 2}
	q.Enqueue(p, 40)
	q.Enqueue(p, 20)

	if q.Len() != 2 {
		t.Fatalf("Len = %d, want 2 (duplicates are kept)", q.Len())
	}
	e, _ := q.Dequeue()
	if e.Priority != 20 {
		t.Errorf("First dequeue priority = %d, want 20", e.Priority)
	}
	e, _ = q.Dequeue()
	if e.Point != p || e.Priority != 40 {
		t.Errorf("Second dequeue = %v@%d, want %v@40", e.Point, e.Priority, p)
	}
}

package player

import (
	"sync"
	"testing"
)

func TestQueue_FIFOOrder(t *testing.T) {
	q := NewQueue()
	q.Push("a", "b")
	q.Push("c")

	for _, want := range []string{"a", "b", "c"} {
		got, ok := q.Pop()
		if !ok || got != want {
			t.Fatalf("expected %q, got %q (ok=%v)", want, got, ok)
		}
	}

	if _, ok := q.Pop(); ok {
		t.Error("expected empty queue after draining")
	}
}

func TestQueue_Clear(t *testing.T) {
	q := NewQueue()
	q.Push("a", "b", "c")
	q.Clear()

	if q.Len() != 0 {
		t.Errorf("expected empty queue after clear, len=%d", q.Len())
	}
}

func TestQueue_Snapshot(t *testing.T) {
	q := NewQueue()
	q.Push("a", "b", "c", "d")

	head, total := q.Snapshot(2)
	if total != 4 {
		t.Errorf("expected total 4, got %d", total)
	}
	if len(head) != 2 || head[0] != "a" || head[1] != "b" {
		t.Errorf("unexpected head %v", head)
	}

	// Snapshot must not consume.
	if q.Len() != 4 {
		t.Errorf("expected snapshot to leave the queue intact, len=%d", q.Len())
	}

	head, _ = q.Snapshot(100)
	if len(head) != 4 {
		t.Errorf("expected oversized snapshot to cap at queue length, got %d", len(head))
	}
}

func TestQueue_ConcurrentPushPop(t *testing.T) {
	q := NewQueue()
	var wg sync.WaitGroup

	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := 0; n < 100; n++ {
				q.Push("track")
				q.Pop()
			}
		}()
	}
	wg.Wait()

	if q.Len() != 0 {
		t.Errorf("expected balanced push/pop to drain the queue, len=%d", q.Len())
	}
}

package player

import "sync"

// Queue is the FIFO track queue. Playback runs on its own goroutine while
// command handlers push and inspect, so every access takes the lock.
type Queue struct {
	mu     sync.Mutex
	tracks []string
}

func NewQueue() *Queue {
	return &Queue{}
}

func (q *Queue) Push(tracks ...string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = append(q.tracks, tracks...)
}

// Pop removes and returns the next track, reporting false when empty.
func (q *Queue) Pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.tracks) == 0 {
		return "", false
	}
	track := q.tracks[0]
	q.tracks = q.tracks[1:]
	return track, true
}

func (q *Queue) Clear() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.tracks = nil
}

func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.tracks)
}

// Snapshot returns up to n upcoming tracks plus the total queue length.
func (q *Queue) Snapshot(n int) ([]string, int) {
	q.mu.Lock()
	defer q.mu.Unlock()

	total := len(q.tracks)
	if n > total {
		n = total
	}
	head := make([]string, n)
	copy(head, q.tracks[:n])
	return head, total
}

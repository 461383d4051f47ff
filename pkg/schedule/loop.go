package schedule

import (
	"container/heap"
	"context"
	"sync"
	"time"
)

type task struct {
	due time.Time
	seq uint64
	fn  func()
}

type taskQueue []task

func (q taskQueue) Len() int { return len(q) }
func (q taskQueue) Less(i, j int) bool {
	if q[i].due.Equal(q[j].due) {
		return q[i].seq < q[j].seq
	}
	return q[i].due.Before(q[j].due)
}
func (q taskQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *taskQueue) Push(x any)   { *q = append(*q, x.(task)) }
func (q *taskQueue) Pop() any {
	old := *q
	t := old[len(old)-1]
	*q = old[:len(old)-1]
	return t
}

// Loop is a single-threaded timed task queue. Schedule may be called from
// any goroutine; tasks only ever run on the goroutine inside Run.
type Loop struct {
	mu    sync.Mutex
	queue taskQueue
	seq   uint64
	wake  chan struct{}
	now   func() time.Time
}

// NewLoop creates an empty loop.
func NewLoop() *Loop {
	return &Loop{wake: make(chan struct{}, 1), now: time.Now}
}

// Schedule queues fn to run once delay has elapsed. Tasks with equal due
// times run in scheduling order.
func (l *Loop) Schedule(delay time.Duration, fn func()) {
	l.mu.Lock()
	l.seq++
	heap.Push(&l.queue, task{due: l.now().Add(max(delay, 0)), seq: l.seq, fn: fn})
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Len returns the number of pending tasks.
func (l *Loop) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}

// Run executes tasks until the queue is empty (returning nil) or ctx is
// done (returning ctx.Err()). Pending tasks stay queued on cancellation.
func (l *Loop) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		l.mu.Lock()
		if len(l.queue) == 0 {
			l.mu.Unlock()
			return nil
		}
		next := l.queue[0]
		wait := next.due.Sub(l.now())
		if wait <= 0 {
			heap.Pop(&l.queue)
			l.mu.Unlock()
			next.fn()
			continue
		}
		l.mu.Unlock()

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-l.wake:
			// An earlier task may have been queued; re-examine the head.
			timer.Stop()
		case <-timer.C:
		}
	}
}

package schedule

import "time"

// Manual is a scheduler driven by hand. It keeps tasks in FIFO order and
// records every requested delay.
type Manual struct {
	Delays []time.Duration
	tasks  []func()
}

// Schedule records delay and queues fn.
func (m *Manual) Schedule(delay time.Duration, fn func()) {
	m.Delays = append(m.Delays, delay)
	m.tasks = append(m.tasks, fn)
}

// Advance runs the oldest pending task. It reports false when there was
// nothing to run.
func (m *Manual) Advance() bool {
	if len(m.tasks) == 0 {
		return false
	}
	fn := m.tasks[0]
	m.tasks = m.tasks[1:]
	fn()
	return true
}

// Drain runs tasks until none remain or limit tasks have run, and returns
// how many ran.
func (m *Manual) Drain(limit int) int {
	n := 0
	for n < limit && m.Advance() {
		n++
	}
	return n
}

// Pending returns the number of queued tasks.
func (m *Manual) Pending() int { return len(m.tasks) }

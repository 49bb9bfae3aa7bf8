package ui

import (
	"container/heap"
	"errors"
	"fmt"
	"time"
)

var ErrUnknownSource = errors.New("unknown source")

// Priorities of idle callbacks, lower runs first.
const (
	PriorityHigh     = -100
	PriorityDefault  = 0
	PriorityHighIdle = 100
	PriorityIdle     = 200

	PriorityResize = PriorityHighIdle + 10
	PriorityRedraw = PriorityHighIdle + 20
)

// SourceID is the handle of a scheduled callback.
type SourceID uint64

type source struct {
	id       SourceID
	priority int
	seq      uint64
	deadline time.Time
	interval time.Duration
	fn       func() bool
	timer    bool
	index    int // position in its queue, -1 while dispatched
	removed  bool
}

// MainContext is a cooperative scheduler of idle callbacks and timers.
// All callbacks run on the goroutine calling Iteration or Run.
type MainContext struct {
	now     func() time.Time
	poll    func(timeout time.Duration) bool
	maxWait time.Duration

	idle    idleQueue
	timers  timerQueue
	sources map[SourceID]*source
	lastID  SourceID
	seq     uint64
	quit    bool
}

func NewMainContext() *MainContext {
	return &MainContext{
		now:     time.Now,
		maxWait: 100 * time.Millisecond,
		sources: make(map[SourceID]*source),
	}
}

// SetPoller installs the input wait. poll blocks for at most timeout,
// dispatches what arrived and reports whether anything did.
func (m *MainContext) SetPoller(poll func(timeout time.Duration) bool) {
	m.poll = poll
}

// SetMaxWait caps how long a blocking iteration waits for input.
func (m *MainContext) SetMaxWait(d time.Duration) {
	if d > 0 {
		m.maxWait = d
	}
}

func (m *MainContext) add(s *source) SourceID {
	m.lastID++
	m.seq++
	s.id, s.seq = m.lastID, m.seq
	m.sources[s.id] = s
	return s.id
}

// IdleAdd runs fn when no input is pending, before callbacks of a larger
// priority value. fn stays scheduled as long as it returns true.
func (m *MainContext) IdleAdd(priority int, fn func() bool) SourceID {
	s := &source{priority: priority, fn: fn}
	id := m.add(s)
	heap.Push(&m.idle, s)
	return id
}

// TimeoutAdd runs fn every d until it returns false.
func (m *MainContext) TimeoutAdd(d time.Duration, fn func() bool) SourceID {
	s := &source{timer: true, interval: d, deadline: m.now().Add(d), fn: fn}
	id := m.add(s)
	heap.Push(&m.timers, s)
	return id
}

// Remove cancels a callback that has not finished.
func (m *MainContext) Remove(id SourceID) error {
	s, ok := m.sources[id]
	if !ok {
		return fmt.Errorf("remove source %d: %w", id, ErrUnknownSource)
	}
	delete(m.sources, id)
	s.removed = true
	if s.index >= 0 {
		if s.timer {
			heap.Remove(&m.timers, s.index)
		} else {
			heap.Remove(&m.idle, s.index)
		}
	}
	return nil
}

// Pending reports whether a callback is ready to run.
func (m *MainContext) Pending() bool {
	if m.idle.Len() > 0 {
		return true
	}
	return m.timers.Len() > 0 && !m.timers[0].deadline.After(m.now())
}

// wait returns how long the next iteration may block.
func (m *MainContext) wait(block bool) time.Duration {
	if !block || m.Pending() {
		return 0
	}
	d := m.maxWait
	if m.timers.Len() > 0 {
		d = min(d, m.timers[0].deadline.Sub(m.now()))
	}
	return max(d, 0)
}

// Iteration waits for input, then runs due timers and idle callbacks.
// With block false it never waits. It reports whether any callback or
// input was dispatched.
func (m *MainContext) Iteration(block bool) bool {
	dispatched := false
	timeout := m.wait(block)
	if m.poll != nil {
		dispatched = m.poll(timeout)
	} else if timeout > 0 {
		time.Sleep(timeout)
	}

	now := m.now()
	var due []*source
	for m.timers.Len() > 0 && !m.timers[0].deadline.After(now) {
		due = append(due, heap.Pop(&m.timers).(*source))
	}
	for _, s := range due {
		dispatched = true
		if !s.removed && s.fn() && !s.removed {
			s.deadline = now.Add(s.interval)
			heap.Push(&m.timers, s)
			continue
		}
		delete(m.sources, s.id)
	}

	var again []*source
	for m.idle.Len() > 0 && !m.quit {
		s := heap.Pop(&m.idle).(*source)
		dispatched = true
		if s.fn() && !s.removed {
			again = append(again, s)
			continue
		}
		delete(m.sources, s.id)
	}
	for _, s := range again {
		if !s.removed {
			heap.Push(&m.idle, s)
		}
	}
	return dispatched
}

// Run iterates until Quit is called.
func (m *MainContext) Run() {
	m.quit = false
	for !m.quit {
		m.Iteration(true)
	}
}

func (m *MainContext) Quit() { m.quit = true }

// idleQueue orders idle sources by priority, then by scheduling order.
type idleQueue []*source

func (q idleQueue) Len() int { return len(q) }
func (q idleQueue) Less(i, j int) bool {
	if q[i].priority != q[j].priority {
		return q[i].priority < q[j].priority
	}
	return q[i].seq < q[j].seq
}
func (q idleQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *idleQueue) Push(x any) {
	s := x.(*source)
	s.index = len(*q)
	*q = append(*q, s)
}
func (q *idleQueue) Pop() any {
	old := *q
	s := old[len(old)-1]
	old[len(old)-1] = nil
	s.index = -1
	*q = old[:len(old)-1]
	return s
}

// timerQueue orders timers by deadline, then by scheduling order.
type timerQueue []*source

func (q timerQueue) Len() int { return len(q) }
func (q timerQueue) Less(i, j int) bool {
	if !q[i].deadline.Equal(q[j].deadline) {
		return q[i].deadline.Before(q[j].deadline)
	}
	return q[i].seq < q[j].seq
}
func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}
func (q *timerQueue) Push(x any) {
	s := x.(*source)
	s.index = len(*q)
	*q = append(*q, s)
}
func (q *timerQueue) Pop() any {
	old := *q
	s := old[len(old)-1]
	old[len(old)-1] = nil
	s.index = -1
	*q = old[:len(old)-1]
	return s
}

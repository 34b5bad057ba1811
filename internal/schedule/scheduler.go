// Package schedule provides a single-threaded event queue on a virtual clock.
// Games schedule one-shot and repeating callbacks against it and the platform
// advances the clock once per simulation tick, so every callback runs on the
// caller's goroutine in a deterministic order.
package schedule

import (
	"container/heap"
	"time"
)

// MinInterval is the smallest period accepted for repeating events.
const MinInterval = time.Millisecond

// Handle identifies a scheduled event. The zero Handle never refers to an event.
type Handle uint64

// event is a single entry in the queue.
type event struct {
	handle   Handle
	due      time.Duration
	seq      uint64 // Scheduling order, breaks ties between equal due times
	interval time.Duration
	fn       func()
	index    int
}

// queue is a min-heap of events ordered by (due, seq).
type queue []*event

func (q queue) Len() int { return len(q) }

func (q queue) Less(i, j int) bool {
	if q[i].due != q[j].due {
		return q[i].due < q[j].due
	}
	return q[i].seq < q[j].seq
}

func (q queue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *queue) Push(x any) {
	e := x.(*event)
	e.index = len(*q)
	*q = append(*q, e)
}

func (q *queue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	old[n-1] = nil
	e.index = -1
	*q = old[:n-1]
	return e
}

// Scheduler runs callbacks at virtual times. It is not safe for concurrent use;
// one owner (a game loop) drives it.
type Scheduler struct {
	now     time.Duration
	seq     uint64
	next    Handle
	queue   queue
	pending map[Handle]*event
}

// New creates an empty scheduler at virtual time zero.
func New() *Scheduler {
	return &Scheduler{
		pending: make(map[Handle]*event),
	}
}

// Now returns the current virtual time.
func (s *Scheduler) Now() time.Duration {
	return s.now
}

// Len returns the number of pending events.
func (s *Scheduler) Len() int {
	return len(s.queue)
}

// After schedules fn to run once, d after the current virtual time.
// A non-positive d makes the event due immediately.
func (s *Scheduler) After(d time.Duration, fn func()) Handle {
	if d < 0 {
		d = 0
	}
	return s.push(s.now+d, 0, fn)
}

// Every schedules fn to run every interval, starting one interval from now.
func (s *Scheduler) Every(interval time.Duration, fn func()) Handle {
	if interval < MinInterval {
		interval = MinInterval
	}
	return s.push(s.now+interval, interval, fn)
}

// Cancel removes a pending event. It reports whether the event was pending.
// Cancelling a repeating event from inside its own callback stops it.
func (s *Scheduler) Cancel(h Handle) bool {
	e, ok := s.pending[h]
	if !ok {
		return false
	}
	delete(s.pending, h)
	if e.index >= 0 {
		heap.Remove(&s.queue, e.index)
	}
	return true
}

// Pending reports whether the event is still scheduled.
func (s *Scheduler) Pending(h Handle) bool {
	_, ok := s.pending[h]
	return ok
}

// Advance moves the clock forward by dt, running every event that becomes due.
// Events run in due-time order; events due at the same time run in the order
// they were scheduled. Events scheduled by a callback that fall inside the
// window run during the same call.
func (s *Scheduler) Advance(dt time.Duration) {
	if dt < 0 {
		dt = 0
	}
	target := s.now + dt

	for len(s.queue) > 0 && s.queue[0].due <= target {
		e := heap.Pop(&s.queue).(*event)
		s.now = e.due

		if e.interval > 0 {
			// Re-arm before running so the callback can cancel it.
			e.due += e.interval
			e.seq = s.nextSeq()
			heap.Push(&s.queue, e)
		} else {
			delete(s.pending, e.handle)
		}

		e.fn()
	}

	s.now = target
}

// Reset drops every pending event and rewinds the clock to zero.
func (s *Scheduler) Reset() {
	s.now = 0
	s.queue = nil
	s.pending = make(map[Handle]*event)
}

func (s *Scheduler) push(due, interval time.Duration, fn func()) Handle {
	s.next++
	e := &event{
		handle:   s.next,
		due:      due,
		seq:      s.nextSeq(),
		interval: interval,
		fn:       fn,
	}
	heap.Push(&s.queue, e)
	s.pending[e.handle] = e
	return e.handle
}

func (s *Scheduler) nextSeq() uint64 {
	s.seq++
	return s.seq
}

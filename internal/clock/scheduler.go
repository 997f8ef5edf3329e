package clock

import "time"

// Handle controls a single scheduled task.
type Handle struct {
	cancelled bool
}

// Cancel stops the task. Cancelling twice is a no-op.
func (h *Handle) Cancel() {
	h.cancelled = true
}

// Active reports whether the task will still fire.
func (h *Handle) Active() bool {
	return !h.cancelled
}

type task struct {
	seq    uint64
	period time.Duration // zero for one-shot tasks
	next   time.Time
	frame  bool
	fn     func(at time.Time)
	handle *Handle
}

// Scheduler runs interval, one-shot and per-frame tasks against a Clock.
//
// Timed tasks fire in due-time order, ties broken by registration order. When Advance is called
// late, every missed period is replayed with its scheduled timestamp, so callbacks observe the
// same sequence of times regardless of frame pacing. Per-frame tasks run after timed tasks.
type Scheduler struct {
	clock Clock
	tasks []*task
	seq   uint64
}

// NewScheduler creates a scheduler reading time from c.
func NewScheduler(c Clock) *Scheduler {
	return &Scheduler{clock: c}
}

// Now returns the scheduler's current time.
func (s *Scheduler) Now() time.Time {
	return s.clock.Now()
}

// NewScope creates a cancellation scope. Tasks registered through the scope are cancelled
// together by Scope.Cancel.
func (s *Scheduler) NewScope() *Scope {
	return &Scope{sched: s}
}

// Pending returns the number of tasks that have not been cancelled.
func (s *Scheduler) Pending() int {
	n := 0
	for _, t := range s.tasks {
		if t.handle.Active() {
			n++
		}
	}
	return n
}

func (s *Scheduler) add(t *task) *Handle {
	s.seq++
	t.seq = s.seq
	t.handle = &Handle{}
	s.tasks = append(s.tasks, t)
	return t.handle
}

// Advance fires every task that is due at the clock's current time.
func (s *Scheduler) Advance() {
	now := s.clock.Now()

	for {
		t := s.nextDue(now)
		if t == nil {
			break
		}
		at := t.next
		if t.period == 0 {
			t.handle.Cancel()
		} else {
			t.next = t.next.Add(t.period)
		}
		t.fn(at)
	}

	var frame []*task
	for _, t := range s.tasks {
		if t.frame && t.handle.Active() {
			frame = append(frame, t)
		}
	}
	for _, t := range frame {
		if t.handle.Active() {
			t.fn(now)
		}
	}

	s.prune()
}

func (s *Scheduler) nextDue(now time.Time) *task {
	var best *task
	for _, t := range s.tasks {
		if t.frame || !t.handle.Active() || t.next.After(now) {
			continue
		}
		if best == nil || t.next.Before(best.next) || (t.next.Equal(best.next) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) prune() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.handle.Active() {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}

// Scope groups the tasks belonging to one owner, such as a single round.
type Scope struct {
	sched   *Scheduler
	handles []*Handle
	closed  bool
}

// Every runs fn each period, starting one period from now. fn receives the scheduled time of
// the tick. It panics if period is not positive.
func (sc *Scope) Every(period time.Duration, fn func(at time.Time)) *Handle {
	if period <= 0 {
		panic("clock: non-positive interval for Every")
	}
	return sc.register(&task{
		period: period,
		next:   sc.sched.clock.Now().Add(period),
		fn:     fn,
	})
}

// After runs fn once, d from now.
func (sc *Scope) After(d time.Duration, fn func(at time.Time)) *Handle {
	return sc.register(&task{
		next: sc.sched.clock.Now().Add(d),
		fn:   fn,
	})
}

// EachFrame runs fn on every Advance with the frame's time.
func (sc *Scope) EachFrame(fn func(now time.Time)) *Handle {
	return sc.register(&task{frame: true, fn: fn})
}

func (sc *Scope) register(t *task) *Handle {
	if sc.closed {
		return &Handle{cancelled: true}
	}
	h := sc.sched.add(t)
	sc.handles = append(sc.handles, h)
	return h
}

// Cancel stops every task registered through the scope. Later registrations are ignored.
func (sc *Scope) Cancel() {
	sc.closed = true
	for _, h := range sc.handles {
		h.Cancel()
	}
	sc.handles = nil
}

// Closed reports whether Cancel has been called.
func (sc *Scope) Closed() bool {
	return sc.closed
}

package sched

// PollFunc checks a pending operation without blocking. It returns true when
// the operation has completed.
type PollFunc func() bool

// DoneFunc receives the outcome: ok is false when the task timed out.
type DoneFunc func(ok bool)

const maxAsync = 4

type asyncTask struct {
	name      string
	active    bool
	startedAt uint32
	timeoutMS uint32
	poll      PollFunc
	done      DoneFunc
}

// AsyncSet is the uniform start/poll/timeout wrapper for operations that
// could block (wireless connect, scan, time sync). The core never waits on
// them; it polls the whole set once per tick and a task that outlives its
// timeout cancels itself.
type AsyncSet struct {
	tasks [maxAsync]asyncTask
}

// Start registers a pending operation. Returns false when every slot is
// busy; the caller treats that as the operation failing to start.
func (s *AsyncSet) Start(name string, now, timeoutMS uint32, poll PollFunc, done DoneFunc) bool {
	if poll == nil {
		return false
	}
	for i := range s.tasks {
		t := &s.tasks[i]
		if t.active {
			continue
		}
		*t = asyncTask{
			name:      name,
			active:    true,
			startedAt: now,
			timeoutMS: timeoutMS,
			poll:      poll,
			done:      done,
		}
		return true
	}
	return false
}

// PollAll advances every pending task one non-blocking check.
func (s *AsyncSet) PollAll(now uint32) {
	for i := range s.tasks {
		t := &s.tasks[i]
		if !t.active {
			continue
		}
		if t.poll() {
			t.active = false
			if t.done != nil {
				t.done(true)
			}
			continue
		}
		if t.timeoutMS > 0 && now-t.startedAt >= t.timeoutMS {
			t.active = false
			if t.done != nil {
				t.done(false)
			}
		}
	}
}

// Pending reports whether any task is still in flight.
func (s *AsyncSet) Pending() bool {
	for i := range s.tasks {
		if s.tasks[i].active {
			return true
		}
	}
	return false
}

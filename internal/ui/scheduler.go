package ui

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// scheduledMsg fires a continuation registered with Scheduler.After.
type scheduledMsg struct {
	owner *Scheduler
	id    int
}

// batchEndMsg runs continuations registered with Scheduler.AtBatchEnd. It is
// delivered after the update that queued it has returned.
type batchEndMsg struct {
	owner *Scheduler
}

// Scheduler turns engine continuations into Bubble Tea commands so they run
// on the update goroutine. Callers collect the commands with Flush after
// every update and route messages back through Handle.
type Scheduler struct {
	cmds   []tea.Cmd
	timers map[int]func()
	batch  []func()
	nextID int
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{timers: make(map[int]func())}
}

// After runs fn once d has elapsed.
func (s *Scheduler) After(d time.Duration, fn func()) {
	id := s.nextID
	s.nextID++
	s.timers[id] = fn
	s.cmds = append(s.cmds, tea.Tick(d, func(time.Time) tea.Msg {
		return scheduledMsg{owner: s, id: id}
	}))
}

// AtBatchEnd runs fn after the current update finishes.
func (s *Scheduler) AtBatchEnd(fn func()) {
	if len(s.batch) == 0 {
		s.cmds = append(s.cmds, func() tea.Msg { return batchEndMsg{owner: s} })
	}
	s.batch = append(s.batch, fn)
}

// Flush returns the commands queued since the last call.
func (s *Scheduler) Flush() tea.Cmd {
	if len(s.cmds) == 0 {
		return nil
	}
	cmds := s.cmds
	s.cmds = nil
	return tea.Batch(cmds...)
}

// Pending reports how many timed continuations have not fired yet.
func (s *Scheduler) Pending() int {
	return len(s.timers)
}

// Handle runs the continuation carried by msg. It reports whether msg
// belonged to this scheduler.
func (s *Scheduler) Handle(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case scheduledMsg:
		if msg.owner != s {
			return false
		}
		if fn, ok := s.timers[msg.id]; ok {
			delete(s.timers, msg.id)
			fn()
		}
		return true

	case batchEndMsg:
		if msg.owner != s {
			return false
		}
		batch := s.batch
		s.batch = nil
		for _, fn := range batch {
			fn()
		}
		return true
	}
	return false
}

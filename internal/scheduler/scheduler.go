// Package scheduler owns every periodic timer of the TUI.
//
// Timers are keyed by ID (owning screen plus purpose). Starting a timer
// under an ID that is already running supersedes it, so a screen that is
// shown twice never polls twice. Each start gets a new generation; ticks
// carry their generation and Accept drops any tick that no longer matches
// a running timer.
package scheduler

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ID identifies a timer.
type ID struct {
	Owner   string
	Purpose string
}

func (id ID) String() string {
	return id.Owner + "/" + id.Purpose
}

// TickMsg is delivered to Update when a timer fires.
type TickMsg struct {
	ID   ID
	Gen  uint64
	Time time.Time
}

type timer struct {
	gen      uint64
	interval time.Duration
}

// Scheduler tracks running timers.
type Scheduler struct {
	mu     sync.Mutex
	gen    uint64
	timers map[ID]timer
}

// New creates an empty scheduler.
func New() *Scheduler {
	return &Scheduler{timers: make(map[ID]timer)}
}

func (s *Scheduler) register(id ID, interval time.Duration) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.timers[id] = timer{gen: s.gen, interval: interval}
	return s.gen
}

func tick(id ID, gen uint64, interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Gen: gen, Time: t}
	})
}

// Start runs a timer under id firing every interval, replacing any timer
// already running under id. The first tick arrives after one interval.
func (s *Scheduler) Start(id ID, interval time.Duration) tea.Cmd {
	gen := s.register(id, interval)
	return tick(id, gen, interval)
}

// StartNow is Start with an immediate first tick.
func (s *Scheduler) StartNow(id ID, interval time.Duration) tea.Cmd {
	gen := s.register(id, interval)
	return func() tea.Msg {
		return TickMsg{ID: id, Gen: gen, Time: time.Now()}
	}
}

// Stop cancels the timer under id. Ticks already scheduled are dropped by
// Accept.
func (s *Scheduler) Stop(id ID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.timers, id)
}

// StopOwner cancels every timer of owner.
func (s *Scheduler) StopOwner(owner string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.timers {
		if id.Owner == owner {
			delete(s.timers, id)
		}
	}
}

// Accept reports whether msg belongs to a running timer. When it does, the
// returned command schedules the next tick.
func (s *Scheduler) Accept(msg TickMsg) (tea.Cmd, bool) {
	s.mu.Lock()
	t, ok := s.timers[msg.ID]
	s.mu.Unlock()

	if !ok || t.gen != msg.Gen {
		return nil, false
	}
	return tick(msg.ID, msg.Gen, t.interval), true
}

// Running reports whether a timer is registered under id.
func (s *Scheduler) Running(id ID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.timers[id]
	return ok
}

// Active returns the number of running timers.
func (s *Scheduler) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

package controller

import (
	"sync"
	"time"
)

// State is the single shared record of the commanded wheel speeds and
// when they were last commanded. The ingress loop writes it on every
// accepted command; the watchdog reads it every tick and resets it on
// staleness. All access goes through the mutex so neither side ever
// observes a torn triple. No method touches hardware, which keeps the
// critical sections O(1).
type State struct {
	mtx        sync.Mutex
	left       int
	right      int
	lastUpdate time.Time
}

// NewState returns a stopped state stamped with the current instant.
// The robot always boots stopped; nothing is persisted across runs.
func NewState() *State {
	return &State{
		lastUpdate: time.Now(),
	}
}

// Set records a newly commanded wheel pair and its arrival instant.
func (s *State) Set(left, right int, at time.Time) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.left = left
	s.right = right
	s.lastUpdate = at
}

// Snapshot returns a consistent copy of the triple.
func (s *State) Snapshot() (left, right int, lastUpdate time.Time) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.left, s.right, s.lastUpdate
}

// Stopped reports whether both wheels are commanded to zero.
func (s *State) Stopped() bool {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	return s.left == 0 && s.right == 0
}

// ForceStopIfStale transitions to (0, 0) iff the wheels are commanded
// nonzero and the last command is older than timeout. The staleness
// check and the transition happen under one lock acquisition, so a
// command that lands after the watchdog's tick began refreshes
// lastUpdate first and is never clobbered. The new state carries now
// as its own timestamp, which keeps an already stopped robot inside
// the zero-velocity exemption instead of refiring every tick.
func (s *State) ForceStopIfStale(timeout time.Duration, now time.Time) (stopped bool, elapsed time.Duration) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if s.left == 0 && s.right == 0 {
		return false, 0
	}

	elapsed = now.Sub(s.lastUpdate)
	if elapsed <= timeout {
		return false, elapsed
	}

	s.left = 0
	s.right = 0
	s.lastUpdate = now

	return true, elapsed
}

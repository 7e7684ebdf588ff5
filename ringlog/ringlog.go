// Package ringlog keeps the most recent log entries in memory so the
// status API can expose them without touching files on the SD card.
package ringlog

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

type Entry struct {
	Time    time.Time `json:"time"`
	Level   string    `json:"level"`
	Message string    `json:"message"`
}

// RingLog is a logrus hook retaining the last Size entries.
type RingLog struct {
	mtx     sync.Mutex
	entries []Entry
	next    int
	full    bool
}

// Compile time check for protocol compatibility
var _ logrus.Hook = (*RingLog)(nil)

func New(size int) *RingLog {
	return &RingLog{
		entries: make([]Entry, size),
	}
}

func (r *RingLog) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (r *RingLog) Fire(entry *logrus.Entry) error {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.entries[r.next] = Entry{
		Time:    entry.Time,
		Level:   entry.Level.String(),
		Message: entry.Message,
	}

	r.next++
	if r.next == len(r.entries) {
		r.next = 0
		r.full = true
	}

	return nil
}

// Entries returns the retained entries, oldest first.
func (r *RingLog) Entries() []Entry {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if !r.full {
		out := make([]Entry, r.next)
		copy(out, r.entries[:r.next])
		return out
	}

	out := make([]Entry, 0, len(r.entries))
	out = append(out, r.entries[r.next:]...)
	out = append(out, r.entries[:r.next]...)
	return out
}

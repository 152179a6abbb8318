package call

import (
	"sort"
	"sync"
	"time"
)

// Logger defines the logging interface used by this package.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// Tracker is the source of truth for which beds currently have an open
// call. It owns the leito→OpenCall map exclusively; all mutation goes
// through Upsert and Remove, which are atomic with respect to reads.
//
// All methods are safe for concurrent use.
type Tracker struct {
	mu   sync.Mutex
	open map[string]OpenCall
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		open: make(map[string]OpenCall),
	}
}

// Upsert inserts or replaces the open call for a bed and returns the new
// entry. A second intake for the same bed replaces the prior one, so the
// call's timer and criticality restart; there are never two entries for
// one bed.
func (t *Tracker) Upsert(bed Bed, criticality Criticality) OpenCall {
	oc := OpenCall{
		Bed:         bed,
		Criticality: criticality,
		CreatedAt:   time.Now().UTC(),
	}

	t.mu.Lock()
	t.open[bed.Leito] = oc
	t.mu.Unlock()

	return oc
}

// Remove deletes the open call for a bed if one exists. It returns the
// removed call and whether one existed. Removing an unknown bed is not
// an error.
func (t *Tracker) Remove(leito string) (OpenCall, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	oc, ok := t.open[leito]
	if ok {
		delete(t.open, leito)
	}
	return oc, ok
}

// Get returns the open call for a bed, if any.
func (t *Tracker) Get(leito string) (OpenCall, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	oc, ok := t.open[leito]
	return oc, ok
}

// ListOpen returns a snapshot of all open calls, oldest first. It seeds
// late-joining dashboards so they converge on the current view without
// event replay.
func (t *Tracker) ListOpen() []OpenCall {
	t.mu.Lock()
	calls := make([]OpenCall, 0, len(t.open))
	for _, oc := range t.open {
		calls = append(calls, oc)
	}
	t.mu.Unlock()

	sort.Slice(calls, func(i, j int) bool {
		if calls[i].CreatedAt.Equal(calls[j].CreatedAt) {
			return calls[i].Leito < calls[j].Leito
		}
		return calls[i].CreatedAt.Before(calls[j].CreatedAt)
	})
	return calls
}

// Count returns the number of currently open calls.
func (t *Tracker) Count() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.open)
}

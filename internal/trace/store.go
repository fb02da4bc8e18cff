// Package trace holds the append-only interception ledger: every
// document interception produces a Trace whose events record the
// read -> intercept -> redact -> deliver sequence.
package trace

import (
	"fmt"
	"sync"
	"time"

	"github.com/phantomsec/phantom/internal/types"
)

// Event kinds, in the fixed order they occur within a trace.
const (
	EventAgentRead = "AGENT_READ"
	EventIntercept = "INTERCEPT"
	EventRedact    = "REDACT"
	EventDeliver   = "DELIVER"
)

// Store is the process-wide trace log. It owns id allocation and all
// trace mutation; readers always get copies so they never observe a
// trace mid-append. History is unbounded by default: traces are never
// evicted during process lifetime.
type Store struct {
	mu     sync.Mutex
	seq    int
	traces []*types.Trace
	byID   map[string]*types.Trace
}

func NewStore() *Store {
	return &Store{byID: map[string]*types.Trace{}}
}

// Begin allocates the next trace id (strictly increasing, never reused)
// and appends a new in-progress trace. The sequence counter doubles as
// the global interception counter.
func (s *Store) Begin() (id string, count int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id = fmt.Sprintf("TRACE-%04d", s.seq)
	t := &types.Trace{
		ID:        id,
		StartTime: time.Now(),
		Status:    types.StatusInProgress,
	}
	s.traces = append(s.traces, t)
	s.byID[id] = t
	return id, s.seq
}

// AppendEvent adds an event to an in-progress trace. Appending to an
// unknown or completed trace is a contract violation by the caller and
// returns an error.
func (s *Store) AppendEvent(id string, ev types.TraceEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("trace %s: not found", id)
	}
	if t.Status == types.StatusCompleted {
		return fmt.Errorf("trace %s: already completed", id)
	}
	t.Events = append(t.Events, ev)
	return nil
}

// Complete transitions a trace to completed and records its end time and
// duration. The transition is terminal and happens at most once.
func (s *Store) Complete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return fmt.Errorf("trace %s: not found", id)
	}
	if t.Status == types.StatusCompleted {
		return fmt.Errorf("trace %s: already completed", id)
	}
	t.Status = types.StatusCompleted
	t.EndTime = time.Now()
	t.Duration = t.EndTime.Sub(t.StartTime)
	return nil
}

// Get returns a copy of the trace with the given id. Ids are never
// reused, so a miss means the trace never existed.
func (s *Store) Get(id string) (types.Trace, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.byID[id]
	if !ok {
		return types.Trace{}, false
	}
	return copyTrace(t), true
}

// Recent returns up to limit of the most recent traces in creation
// order (oldest first within the window).
func (s *Store) Recent(limit int) []types.Trace {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := 0
	if limit > 0 && len(s.traces) > limit {
		start = len(s.traces) - limit
	}
	out := make([]types.Trace, 0, len(s.traces)-start)
	for _, t := range s.traces[start:] {
		out = append(out, copyTrace(t))
	}
	return out
}

// Stats aggregates over every trace ever created. Total interceptions is
// the allocator counter; redactions and durations are summed over
// completed traces only.
func (s *Store) Stats() types.Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := types.Statistics{TotalInterceptions: s.seq}
	var totalDuration time.Duration
	for _, t := range s.traces {
		if t.Status != types.StatusCompleted {
			continue
		}
		stats.TracesCompleted++
		totalDuration += t.Duration
		for _, ev := range t.Events {
			if ev.Kind != EventRedact {
				continue
			}
			if n, ok := ev.Data["redactions"].(int); ok {
				stats.TotalRedactions += n
			}
		}
	}
	if stats.TracesCompleted > 0 {
		stats.AverageDuration = totalDuration.Seconds() / float64(stats.TracesCompleted)
	}
	return stats
}

func copyTrace(t *types.Trace) types.Trace {
	cp := *t
	cp.Events = make([]types.TraceEvent, len(t.Events))
	copy(cp.Events, t.Events)
	return cp
}

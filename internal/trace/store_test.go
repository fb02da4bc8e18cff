package trace

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/phantomsec/phantom/internal/types"
)

func TestBeginAllocatesMonotonicIDs(t *testing.T) {
	s := NewStore()
	for i := 1; i <= 3; i++ {
		id, count := s.Begin()
		want := fmt.Sprintf("TRACE-%04d", i)
		if id != want {
			t.Fatalf("id = %s, want %s", id, want)
		}
		if count != i {
			t.Fatalf("count = %d, want %d", count, i)
		}
	}
}

func TestAppendEventLifecycle(t *testing.T) {
	s := NewStore()
	id, _ := s.Begin()

	if err := s.AppendEvent(id, types.TraceEvent{Kind: EventAgentRead, Timestamp: time.Now()}); err != nil {
		t.Fatalf("append to in-progress trace: %v", err)
	}
	if err := s.Complete(id); err != nil {
		t.Fatalf("complete: %v", err)
	}
	if err := s.AppendEvent(id, types.TraceEvent{Kind: EventDeliver}); err == nil {
		t.Fatal("expected error appending to completed trace")
	}
	if err := s.Complete(id); err == nil {
		t.Fatal("expected error completing twice")
	}
	if err := s.AppendEvent("TRACE-9999", types.TraceEvent{}); err == nil {
		t.Fatal("expected error appending to unknown trace")
	}
}

func TestCompleteRecordsDuration(t *testing.T) {
	s := NewStore()
	id, _ := s.Begin()
	if err := s.Complete(id); err != nil {
		t.Fatal(err)
	}
	tr, ok := s.Get(id)
	if !ok {
		t.Fatal("trace missing")
	}
	if tr.Status != types.StatusCompleted {
		t.Fatalf("status = %s", tr.Status)
	}
	if tr.EndTime.Before(tr.StartTime) {
		t.Fatal("end time before start time")
	}
	if tr.Duration != tr.EndTime.Sub(tr.StartTime) {
		t.Fatal("duration does not match end - start")
	}
}

func TestGetUnknownID(t *testing.T) {
	s := NewStore()
	if _, ok := s.Get("TRACE-0042"); ok {
		t.Fatal("expected miss for unknown id")
	}
}

func TestRecentWindow(t *testing.T) {
	s := NewStore()
	var ids []string
	for i := 0; i < 5; i++ {
		id, _ := s.Begin()
		ids = append(ids, id)
	}

	recent := s.Recent(3)
	if len(recent) != 3 {
		t.Fatalf("len = %d, want 3", len(recent))
	}
	// Oldest first within the window; everything older is dropped.
	for i, tr := range recent {
		if tr.ID != ids[2+i] {
			t.Fatalf("recent[%d] = %s, want %s", i, tr.ID, ids[2+i])
		}
	}

	if got := s.Recent(100); len(got) != 5 {
		t.Fatalf("oversized limit returned %d traces", len(got))
	}
	if got := s.Recent(0); len(got) != 5 {
		t.Fatalf("zero limit returned %d traces, want all", len(got))
	}
}

func TestStats(t *testing.T) {
	s := NewStore()

	// Two completed traces with redact events, one left in progress.
	for _, n := range []int{2, 3} {
		id, _ := s.Begin()
		if err := s.AppendEvent(id, types.TraceEvent{
			Kind: EventRedact,
			Data: map[string]any{"redactions": n},
		}); err != nil {
			t.Fatal(err)
		}
		if err := s.Complete(id); err != nil {
			t.Fatal(err)
		}
	}
	s.Begin()

	stats := s.Stats()
	if stats.TotalInterceptions != 3 {
		t.Fatalf("total_interceptions = %d, want 3", stats.TotalInterceptions)
	}
	if stats.TracesCompleted != 2 {
		t.Fatalf("traces_completed = %d, want 2", stats.TracesCompleted)
	}
	if stats.TotalRedactions != 5 {
		t.Fatalf("total_redactions = %d, want 5", stats.TotalRedactions)
	}
	if stats.AverageDuration < 0 {
		t.Fatalf("average_duration = %v", stats.AverageDuration)
	}
}

func TestStatsEmpty(t *testing.T) {
	s := NewStore()
	stats := s.Stats()
	if stats.TotalInterceptions != 0 || stats.TracesCompleted != 0 || stats.AverageDuration != 0 {
		t.Fatalf("unexpected stats for empty store: %+v", stats)
	}
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()
	id, _ := s.Begin()
	if err := s.AppendEvent(id, types.TraceEvent{Kind: EventAgentRead}); err != nil {
		t.Fatal(err)
	}

	tr, _ := s.Get(id)
	tr.Events[0].Kind = "MUTATED"
	tr.Status = types.StatusCompleted

	again, _ := s.Get(id)
	if again.Events[0].Kind != EventAgentRead || again.Status != types.StatusInProgress {
		t.Fatal("store state leaked through returned copy")
	}
}

func TestConcurrentBeginUniqueIDs(t *testing.T) {
	s := NewStore()
	const n = 64

	ids := make(chan string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, _ := s.Begin()
			if err := s.AppendEvent(id, types.TraceEvent{Kind: EventAgentRead}); err != nil {
				t.Error(err)
			}
			if err := s.Complete(id); err != nil {
				t.Error(err)
			}
			ids <- id
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[string]bool{}
	for id := range ids {
		if seen[id] {
			t.Fatalf("duplicate trace id %s", id)
		}
		seen[id] = true
	}
	if stats := s.Stats(); stats.TotalInterceptions != n || stats.TracesCompleted != n {
		t.Fatalf("stats = %+v", stats)
	}
}

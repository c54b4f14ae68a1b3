package pipeline

import (
	"fmt"
	"testing"
	"time"
)

func TestHistory_FIFO(t *testing.T) {
	h := NewHistory(3)
	base := time.Unix(0, 0)
	for i := 0; i < 5; i++ {
		h.Add(Summary{PipelineID: fmt.Sprint(i), Steps: i, DurationMs: float64(i), Timestamp: base.Add(time.Duration(i) * time.Second)})
	}
	if h.Len() != 3 || h.Cap() != 3 {
		t.Fatalf("expected 3/3, got %d/%d", h.Len(), h.Cap())
	}
	entries := h.Entries()
	for i, want := range []string{"2", "3", "4"} {
		if entries[i].PipelineID != want {
			t.Errorf("entry %d: got %s, want %s", i, entries[i].PipelineID, want)
		}
	}

	stats := h.Stats()
	if stats.Executions != 3 || stats.AvgDuration != 3 || stats.AvgSteps != 3 {
		t.Errorf("unexpected stats %+v", stats)
	}
	if !stats.LastExecution.Equal(base.Add(4 * time.Second)) {
		t.Errorf("unexpected last execution %v", stats.LastExecution)
	}
}

func TestHistory_Empty(t *testing.T) {
	h := NewHistory(0)
	if h.Cap() != DefaultHistoryCapacity {
		t.Errorf("expected default capacity, got %d", h.Cap())
	}
	if s := h.Stats(); s.Executions != 0 || s.AvgDuration != 0 || s.AvgSteps != 0 || !s.LastExecution.IsZero() {
		t.Errorf("expected zero stats, got %+v", s)
	}
	if len(h.Entries()) != 0 {
		t.Error("expected no entries")
	}
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory(2)
	h.Add(Summary{PipelineID: "a"})
	h.Add(Summary{PipelineID: "b"})
	h.Add(Summary{PipelineID: "c"})
	h.Reset()
	h.Add(Summary{PipelineID: "d"})
	if entries := h.Entries(); len(entries) != 1 || entries[0].PipelineID != "d" {
		t.Errorf("unexpected entries after reset %v", entries)
	}
}

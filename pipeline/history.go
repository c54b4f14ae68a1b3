package pipeline

import (
	"sync"
	"time"
)

// DefaultHistoryCapacity is the number of executions retained per executor.
const DefaultHistoryCapacity = 100

// Summary describes one completed execution.
type Summary struct {
	PipelineID string    `json:"pipeline_id"`
	Steps      int       `json:"steps"`
	DurationMs float64   `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// Stats aggregates the retained history. Averages are zero when nothing has
// run.
type Stats struct {
	Executions    int       `json:"executions"`
	AvgDuration   float64   `json:"avg_duration_ms"`
	AvgSteps      float64   `json:"avg_steps"`
	LastExecution time.Time `json:"last_execution"`
}

// History is a bounded FIFO of execution summaries. When full, adding a
// summary evicts the oldest one.
type History struct {
	mu    sync.Mutex
	buf   []Summary
	start int
	size  int
}

// NewHistory creates a History retaining up to capacity summaries.
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistoryCapacity
	}
	return &History{buf: make([]Summary, capacity)}
}

// Add appends s, evicting the oldest summary when full.
func (h *History) Add(s Summary) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.size < len(h.buf) {
		h.buf[(h.start+h.size)%len(h.buf)] = s
		h.size++
		return
	}
	h.buf[h.start] = s
	h.start = (h.start + 1) % len(h.buf)
}

// Len returns the number of retained summaries.
func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.size
}

// Cap returns the capacity.
func (h *History) Cap() int { return len(h.buf) }

// Entries returns the retained summaries, oldest first.
func (h *History) Entries() []Summary {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries()
}

func (h *History) entries() []Summary {
	out := make([]Summary, h.size)
	for i := range out {
		out[i] = h.buf[(h.start+i)%len(h.buf)]
	}
	return out
}

// Stats computes aggregate statistics over the retained summaries.
func (h *History) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.size == 0 {
		return Stats{}
	}
	var duration float64
	var steps int
	entries := h.entries()
	for _, s := range entries {
		duration += s.DurationMs
		steps += s.Steps
	}
	n := float64(len(entries))
	return Stats{
		Executions:    len(entries),
		AvgDuration:   duration / n,
		AvgSteps:      float64(steps) / n,
		LastExecution: entries[len(entries)-1].Timestamp,
	}
}

// Reset drops every summary.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.start, h.size = 0, 0
}

package pipeline

import (
	"time"

	"github.com/kbukum/opflow/operator"
)

// MetaName is the metadata key carrying a pipeline's display name.
const MetaName = "name"

// LogEntry records one operator application.
type LogEntry struct {
	Operator   operator.Symbol `json:"operator"`
	Name       string          `json:"name,omitempty"`
	Params     operator.Params `json:"params,omitempty"`
	InputKind  string          `json:"input_kind"`
	OutputKind string          `json:"output_kind"`
	DurationMs float64         `json:"duration_ms"`
	Timestamp  time.Time       `json:"timestamp"`
}

// ExecutionContext traces a single Execute call. It is owned by the caller
// once Execute returns; the executor keeps only a Summary.
type ExecutionContext struct {
	PipelineID string         `json:"pipeline_id"`
	StartTime  time.Time      `json:"start_time"`
	EndTime    time.Time      `json:"end_time"`
	DurationMs float64        `json:"duration_ms"`
	Log        []LogEntry     `json:"log"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

// NewExecutionContext starts a trace for pipelineID.
func NewExecutionContext(pipelineID string, metadata map[string]any) *ExecutionContext {
	return &ExecutionContext{
		PipelineID: pipelineID,
		StartTime:  time.Now(),
		Log:        []LogEntry{},
		Metadata:   metadata,
	}
}

// Name returns the pipeline name carried in the metadata, or the id.
func (ec *ExecutionContext) Name() string {
	if name, ok := ec.Metadata[MetaName].(string); ok && name != "" {
		return name
	}
	return ec.PipelineID
}

func (ec *ExecutionContext) append(entry LogEntry) {
	ec.Log = append(ec.Log, entry)
}

func (ec *ExecutionContext) finish(end time.Time) {
	ec.EndTime = end
	ec.DurationMs = millis(end.Sub(ec.StartTime))
}

// Summary condenses a completed execution for the history.
func (ec *ExecutionContext) Summary() Summary {
	return Summary{
		PipelineID: ec.PipelineID,
		Steps:      len(ec.Log),
		DurationMs: ec.DurationMs,
		Timestamp:  ec.EndTime,
	}
}

// Result is the outcome of a successful Execute.
type Result struct {
	Result  any               `json:"result"`
	Context *ExecutionContext `json:"context"`
}

func millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"go.opentelemetry.io/otel/trace"
)

func jsonLogger(level string) (*Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	cfg := &Config{Level: level, Format: "json", Output: "stderr"}
	return NewWithWriter(cfg, "opflow-test", &buf), &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[len(lines)-1]), &entry); err != nil {
		t.Fatalf("invalid log line %q: %v", lines[len(lines)-1], err)
	}
	return entry
}

func TestNewDefault(t *testing.T) {
	l := NewDefault("test-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.service != "test-svc" {
		t.Errorf("expected service 'test-svc', got %q", l.service)
	}
}

func TestNewInvalidLevel(t *testing.T) {
	l, buf := jsonLogger("invalid-level")
	l.Debug("hidden")
	l.Info("shown")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("invalid level should fall back to info")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("expected info message to be written")
	}
}

func TestLevelIsPerLogger(t *testing.T) {
	quiet, quietBuf := jsonLogger("error")
	loud, loudBuf := jsonLogger("debug")
	quiet.Warn("quiet warn")
	loud.Debug("loud debug")
	if quietBuf.Len() != 0 {
		t.Errorf("expected nothing below error, got %q", quietBuf.String())
	}
	if !strings.Contains(loudBuf.String(), "loud debug") {
		t.Error("debug logger should write debug messages")
	}
}

func TestNewFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	l := NewFromEnv("env-svc")
	if l == nil {
		t.Fatal("expected non-nil logger")
	}
	if l.GetLogger().GetLevel().String() != "debug" {
		t.Errorf("expected debug level, got %s", l.GetLogger().GetLevel())
	}
}

func TestNop(t *testing.T) {
	l := Nop()
	l.WithComponent("x").WithError(errors.New("e")).Error("nothing")
	if l.GetLogger().GetLevel().String() != "disabled" {
		t.Errorf("expected disabled level, got %s", l.GetLogger().GetLevel())
	}
}

func TestWithComponentAndFields(t *testing.T) {
	l, buf := jsonLogger("debug")
	l.WithComponent("pipeline").
		WithFields(Fields(FieldPipelineID, "pipeline-1")).
		Warn("operator not registered", Fields(FieldOperator, "ZZZ"))

	entry := lastEntry(t, buf)
	checks := map[string]any{
		FieldComponent:  "pipeline",
		FieldPipelineID: "pipeline-1",
		FieldOperator:   "ZZZ",
		"service":       "opflow-test",
		"level":         "warn",
		"message":       "operator not registered",
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("expected %s=%v, got %v", k, want, entry[k])
		}
	}
}

func TestWithError(t *testing.T) {
	l, buf := jsonLogger("info")
	l.WithError(errors.New("boom")).Error("failed")
	if entry := lastEntry(t, buf); entry[FieldError] != "boom" {
		t.Errorf("expected error=boom, got %v", entry[FieldError])
	}
}

func TestWithContext_Span(t *testing.T) {
	l, buf := jsonLogger("info")
	if l.WithContext(context.Background()) != l {
		t.Error("context without span should return the same logger")
	}

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	sc := trace.NewSpanContext(trace.SpanContextConfig{TraceID: traceID, SpanID: spanID})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	l.WithContext(ctx).Info("traced")
	entry := lastEntry(t, buf)
	if entry[FieldTraceID] != traceID.String() || entry[FieldSpanID] != spanID.String() {
		t.Errorf("expected trace fields, got %v", entry)
	}
}

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: "console", NoColor: true}, "opflow", &buf)
	l.Warn("hello", Fields("k", "v"))
	out := buf.String()
	if !strings.Contains(out, "[WRN]") || !strings.Contains(out, "hello") || !strings.Contains(out, "k:") {
		t.Errorf("unexpected console output %q", out)
	}
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()
	if cfg.Level != "info" || cfg.Format != "console" || cfg.Output != "stderr" || !cfg.Timestamp {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valid", Config{Level: "debug", Format: "json", Output: "stdout"}, true},
		{"bad level", Config{Level: "loud", Format: "json", Output: "stdout"}, false},
		{"bad format", Config{Level: "info", Format: "xml", Output: "stdout"}, false},
		{"bad output", Config{Level: "info", Format: "json", Output: "file"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if (err == nil) != tc.ok {
				t.Errorf("expected ok=%v, got err=%v", tc.ok, err)
			}
		})
	}
}

func TestFields(t *testing.T) {
	f := Fields("a", 1, "b", "two", 3, "skipped", "dangling")
	if len(f) != 2 || f["a"] != 1 || f["b"] != "two" {
		t.Errorf("unexpected fields: %v", f)
	}
}

func TestStepFields(t *testing.T) {
	f := StepFields("p-1", "SEG", 1500*time.Microsecond)
	if f[FieldPipelineID] != "p-1" || f[FieldOperator] != "SEG" || f[FieldDuration] != 1.5 {
		t.Errorf("unexpected step fields: %v", f)
	}
}

func TestMergeWithError(t *testing.T) {
	f := MergeWithError(nil, errors.New("x"))
	if f[FieldError] != "x" {
		t.Errorf("expected error=x, got %v", f[FieldError])
	}
}

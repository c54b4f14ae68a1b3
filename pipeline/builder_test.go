package pipeline

import (
	"context"
	"testing"

	"github.com/kbukum/opflow/operator"
)

func TestBuilder_AllOperators(t *testing.T) {
	steps := NewBuilder().
		Nul(nil).Des(nil).Ins(nil).Seg(nil).Con(nil).
		Alt(nil).Syn(nil).Sup(nil).Rec(nil).
		Build()
	want := operator.Symbols()
	if len(steps) != len(want) {
		t.Fatalf("expected %d steps, got %d", len(want), len(steps))
	}
	for i, s := range steps {
		if s.Operator != want[i] {
			t.Errorf("step %d: got %s, want %s", i, s.Operator, want[i])
		}
	}
}

func TestBuilder_BuildIsACopy(t *testing.T) {
	b := NewBuilder().Ins(operator.Params{"value": 1}, "first")
	steps := b.Build()
	steps[0].Params["value"] = 99
	b.Syn(nil)

	again := b.Build()
	if again[0].Params["value"] != 1 {
		t.Errorf("built steps must not share params, got %v", again[0].Params)
	}
	if len(steps) != 1 || len(again) != 2 || b.Len() != 2 {
		t.Errorf("unexpected lengths %d %d %d", len(steps), len(again), b.Len())
	}
	if again[0].Label() != "first" || again[1].Label() != "SYN" {
		t.Errorf("unexpected labels %q %q", again[0].Label(), again[1].Label())
	}
}

func TestBuilder_ParamsAreCopiedOnAppend(t *testing.T) {
	params := operator.Params{"value": 1}
	b := NewBuilder().Ins(params)
	params["value"] = 2
	if got := b.Build()[0].Params["value"]; got != 1 {
		t.Errorf("expected 1, got %v", got)
	}
}

func TestBuilder_NormalizesCustomSymbols(t *testing.T) {
	steps := NewBuilder().Step(" custom ", nil).Build()
	if steps[0].Operator != "CUSTOM" {
		t.Errorf("expected CUSTOM, got %q", steps[0].Operator)
	}
}

func TestBuilder_Run(t *testing.T) {
	b := NewBuilder().Ins(operator.Params{"value": 3}).Syn(operator.Params{"operation": "sum"})

	res, err := b.Run(context.Background(), []any{1, 2}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Result != 6.0 {
		t.Errorf("expected 6, got %v", res.Result)
	}

	exec := NewExecutor()
	for range 2 {
		if _, err := b.Run(context.Background(), []any{1}, exec); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if exec.Stats().Executions != 2 {
		t.Errorf("expected both runs on the supplied executor, got %d", exec.Stats().Executions)
	}
}

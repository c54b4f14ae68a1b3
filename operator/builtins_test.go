package operator

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	apperrors "github.com/kbukum/opflow/errors"
	"github.com/kbukum/opflow/logger"
	"github.com/kbukum/opflow/segment"
	"github.com/kbukum/opflow/value"
)

func run(t *testing.T, sym Symbol, input any, params Params) any {
	t.Helper()
	h, ok := Builtin(sym, Deps{})
	if !ok {
		t.Fatalf("no built-in for %s", sym)
	}
	out, err := h(context.Background(), input, params)
	if err != nil {
		t.Fatalf("%s: unexpected error: %v", sym, err)
	}
	return out
}

func staff() []map[string]any {
	return []map[string]any{
		{"id": 1, "name": "ann", "dept": "eng", "age": 34, "salary": 100},
		{"id": 2, "name": "bob", "dept": "ops", "age": 17, "salary": 40},
		{"id": 3, "name": "cid", "dept": "eng", "age": 25, "salary": 80},
		{"id": 4, "name": "dee", "dept": "ops", "age": 51, "salary": 60},
	}
}

func TestNul(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		params Params
		want   any
	}{
		{"default", nil, Params{"default": 0}, 0},
		{"remove", nil, Params{"policy": "remove", "default": 0}, nil},
		{"strip", []any{1, nil, 2, nil}, nil, []any{1, 2}},
		{"passthrough", "x", Params{"default": "y"}, "x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(t, Nul, tc.input, tc.params); !value.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestNul_TypedRecords(t *testing.T) {
	in := []map[string]any{{"a": 1}, nil, {"a": 2}}
	out, ok := run(t, Nul, in, nil).([]map[string]any)
	if !ok || len(out) != 2 {
		t.Fatalf("expected two records, got %v", out)
	}
	if len(in) != 3 {
		t.Error("input must not be modified")
	}
}

func TestDes(t *testing.T) {
	in := map[string]any{"id": 1}
	out := run(t, Des, in, Params{"name": "customer", "type": "entity", "source": "crm"}).(map[string]any)
	ann := out[FieldAnnotation].(map[string]any)
	if ann["name"] != "customer" || ann["type"] != "entity" || ann["source"] != "crm" {
		t.Errorf("unexpected annotation %v", ann)
	}
	if out["id"] != 1 {
		t.Errorf("expected original fields to be kept, got %v", out)
	}
	if _, ok := in[FieldAnnotation]; ok {
		t.Error("input must not be modified")
	}

	wrapped := run(t, Des, 42, Params{"name": "answer"}).(map[string]any)
	if wrapped[FieldValue] != 42 {
		t.Errorf("expected wrapped value 42, got %v", wrapped[FieldValue])
	}
	ann = wrapped[FieldAnnotation].(map[string]any)
	if ann["name"] != "answer" || ann["type"] != nil {
		t.Errorf("unexpected annotation %v", ann)
	}
}

func TestIns(t *testing.T) {
	tests := []struct {
		name   string
		input  any
		params Params
		want   any
	}{
		{"append", []any{1, 2}, Params{"value": 3}, []any{1, 2, 3}},
		{"prepend", []any{1, 2}, Params{"value": 0, "position": "start"}, []any{0, 1, 2}},
		{"index", []any{1, 2}, Params{"value": 9, "index": 1}, []any{1, 9, 2}},
		{"negative index", []any{1, 2, 3}, Params{"value": 9, "index": -1}, []any{1, 2, 9, 3}},
		{"clamped index", []any{1}, Params{"value": 9, "index": 10}, []any{1, 9}},
		{"nil input", nil, Params{"value": 1}, []any{1}},
		{"set key", map[string]any{"a": 1}, Params{"key": "b", "value": 2}, map[string]any{"a": 1, "b": 2}},
		{"key on nil", nil, Params{"key": "b", "value": 2}, map[string]any{"b": 2}},
		{"scalar", "x", Params{"value": 1}, "x"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(t, Ins, tc.input, tc.params); !value.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIns_DoesNotMutate(t *testing.T) {
	in := []any{1, 2}
	run(t, Ins, in, Params{"value": 0, "position": "start"})
	if in[0] != 1 || len(in) != 2 {
		t.Errorf("input modified: %v", in)
	}
	rec := map[string]any{"a": 1}
	run(t, Ins, rec, Params{"key": "b", "value": 2})
	if _, ok := rec["b"]; ok {
		t.Error("record modified")
	}
}

func TestSeg_GroupBy(t *testing.T) {
	out := run(t, Seg, staff(), Params{"groupBy": "dept"}).([]map[string]any)
	if len(out) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(out))
	}
	if out[0][segment.FieldKey] != "eng" || out[0][segment.FieldCount] != 2 {
		t.Errorf("unexpected first group %v", out[0])
	}
	items := out[1][segment.FieldItems].([]map[string]any)
	if items[0]["name"] != "bob" || items[1]["name"] != "dee" {
		t.Errorf("unexpected ops members %v", items)
	}
}

func TestSeg_GroupByAggregate(t *testing.T) {
	out := run(t, Seg, staff(), Params{
		"groupBy": "dept",
		"aggregate": map[string]any{
			"total": map[string]any{"field": "salary", "operation": "sum"},
			"names": map[string]any{"field": "name", "operation": "concat", "separator": "/"},
		},
	}).([]map[string]any)
	if out[0]["total"] != 180.0 || out[0]["names"] != "ann/cid" {
		t.Errorf("unexpected eng aggregate %v", out[0])
	}
	if out[1]["total"] != 100.0 {
		t.Errorf("unexpected ops aggregate %v", out[1])
	}
}

func TestSeg_GroupByMultipleFields(t *testing.T) {
	out := run(t, Seg, staff(), Params{"groupBy": []any{"dept", "age"}}).([]map[string]any)
	if len(out) != 4 || out[0][segment.FieldKey] != "eng|34" {
		t.Errorf("unexpected groups %v", out)
	}
}

func TestSeg_GroupByExpression(t *testing.T) {
	out := run(t, Seg, staff(), Params{"groupBy": "item.age >= 18"}).([]map[string]any)
	if len(out) != 2 || out[0][segment.FieldKey] != "true" || out[1][segment.FieldCount] != 1 {
		t.Errorf("unexpected groups %v", out)
	}
}

func TestSeg_Partition(t *testing.T) {
	out := run(t, Seg, staff(), Params{"partition": map[string]any{"age": map[string]any{"gte": 18}}}).(map[string]any)
	pass := out[FieldPass].([]map[string]any)
	fail := out[FieldFail].([]map[string]any)
	if len(pass) != 3 || len(fail) != 1 || fail[0]["name"] != "bob" {
		t.Errorf("unexpected partition %v", out)
	}
}

func TestSeg_Filter(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   []string
	}{
		{"spec", Params{"filter": map[string]any{"dept": "eng"}}, []string{"ann", "cid"}},
		{"expression", Params{"where": "item.salary > 50 && item.dept == 'ops'"}, []string{"dee"}},
		{"limit", Params{"filter": map[string]any{"age": map[string]any{"gte": 18}}, "limit": 2}, []string{"ann", "cid"}},
		{"predicate", Params{"filter": func(r map[string]any) bool { return r["id"] == 4 }}, []string{"dee"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out := run(t, Seg, staff(), tc.params).([]map[string]any)
			if len(out) != len(tc.want) {
				t.Fatalf("got %v, want %v", out, tc.want)
			}
			for i, r := range out {
				if r["name"] != tc.want[i] {
					t.Errorf("record %d = %v, want %s", i, r["name"], tc.want[i])
				}
			}
		})
	}
}

func TestSeg_Ranges(t *testing.T) {
	out := run(t, Seg, staff(), Params{
		"field": "age",
		"ranges": []any{
			map[string]any{"name": "minor", "max": 18},
			map[string]any{"name": "adult", "min": 18, "max": 50},
		},
	}).([]map[string]any)
	want := map[string]int{"minor": 1, "adult": 2, segment.UnmatchedBucket: 1}
	if len(out) != len(want) {
		t.Fatalf("expected %d buckets, got %v", len(want), out)
	}
	for _, b := range out {
		if b[segment.FieldCount] != want[b[segment.FieldKey].(string)] {
			t.Errorf("bucket %v: got %v", b[segment.FieldKey], b[segment.FieldCount])
		}
	}
}

func TestSeg_MalformedAggregate(t *testing.T) {
	out := run(t, Seg, staff(), Params{
		"groupBy":   "dept",
		"aggregate": map[string]any{"total": "sum"},
	}).([]map[string]any)
	if !value.Equal(out[0]["total"], []any{100, 80}) {
		t.Errorf("expected raw values for a non-mapping entry, got %v", out[0]["total"])
	}

	out = run(t, Seg, staff(), Params{"groupBy": "dept", "aggregate": "sum"}).([]map[string]any)
	if len(out) != 2 || out[0][segment.FieldItems] == nil {
		t.Errorf("expected plain groups for an unusable aggregate, got %v", out)
	}
}

func TestSeg_MalformedRanges(t *testing.T) {
	got := run(t, Seg, staff(), Params{"field": "age", "ranges": []any{"low"}})
	if !value.Equal(got, staff()) {
		t.Errorf("expected records unchanged without usable ranges, got %v", got)
	}

	out := run(t, Seg, staff(), Params{
		"field":  "age",
		"ranges": []any{"low", map[string]any{"name": "adult", "min": 18}},
	}).([]map[string]any)
	if len(out) != 2 || out[0][segment.FieldKey] != "adult" || out[0][segment.FieldCount] != 3 {
		t.Errorf("expected non-mapping ranges to be dropped, got %v", out)
	}
}

func TestSeg_PassThrough(t *testing.T) {
	if got := run(t, Seg, "text", Params{"groupBy": "x"}); got != "text" {
		t.Errorf("expected non-records to pass through, got %v", got)
	}
	if got := run(t, Seg, staff(), Params{}); len(got.([]map[string]any)) != 4 {
		t.Errorf("expected records unchanged without parameters, got %v", got)
	}
}

func TestSeg_InvalidExpression(t *testing.T) {
	h, _ := Builtin(Seg, Deps{})
	_, err := h(context.Background(), staff(), Params{"filter": "item.age >="})
	if !apperrors.HasCode(err, apperrors.ErrCodeInvalidExpression) {
		t.Errorf("expected INVALID_EXPRESSION, got %v", err)
	}
}

func TestCon(t *testing.T) {
	users := map[string]any{"1": "ann", "2": "bob"}
	in := []map[string]any{{"task": "a", "owner": 1}, {"task": "b", "owner": 3}}
	out := run(t, Con, in, Params{"lookup": users, "field": "owner", "type": "owner"}).([]map[string]any)

	rel := out[0][DefaultRelationField].(map[string]any)
	if rel[ParamType] != "owner" || rel[FieldRelated] != "ann" {
		t.Errorf("unexpected relation %v", rel)
	}
	if rel := out[1][DefaultRelationField].(map[string]any); rel[FieldRelated] != nil {
		t.Errorf("expected unresolved relation, got %v", rel)
	}
	if _, ok := in[0][DefaultRelationField]; ok {
		t.Error("input must not be modified")
	}
}

func TestCon_RecordLookup(t *testing.T) {
	people := []map[string]any{{"id": 1, "name": "ann"}, {"id": 2, "name": "bob"}}
	out := run(t, Con, map[string]any{"owner": 2}, Params{"lookup": people, "field": "owner", "as": "person"}).(map[string]any)
	related := out["person"].(map[string]any)[FieldRelated].(map[string]any)
	if related["name"] != "bob" {
		t.Errorf("expected bob, got %v", related)
	}
}

func TestCon_FuncLookupAndNoop(t *testing.T) {
	lookup := func(v any) any { return strings.ToUpper(v.(string)) }
	out := run(t, Con, []any{map[string]any{"code": "ab"}, 7}, Params{"lookup": lookup, "field": "code"}).([]any)
	if out[0].(map[string]any)[DefaultRelationField].(map[string]any)[FieldRelated] != "AB" || out[1] != 7 {
		t.Errorf("unexpected output %v", out)
	}

	in := map[string]any{"code": "ab"}
	if got := run(t, Con, in, Params{"field": "code"}); !value.Equal(got, in) {
		t.Errorf("expected no-op without lookup, got %v", got)
	}
	if got := run(t, Con, in, Params{"lookup": lookup}); !value.Equal(got, in) {
		t.Errorf("expected no-op without field, got %v", got)
	}
}

func TestAlt_Dispatch(t *testing.T) {
	params := Params{
		"condition": "kind",
		"cases": map[string]any{
			"a": "alpha",
			"b": func(v any) any { return v.(map[string]any)["n"] },
		},
		"default": "other",
	}
	tests := []struct {
		input any
		want  any
	}{
		{map[string]any{"kind": "a"}, "alpha"},
		{map[string]any{"kind": "b", "n": 5}, 5},
		{map[string]any{"kind": "z"}, "other"},
	}
	for _, tc := range tests {
		if got := run(t, Alt, tc.input, params); got != tc.want {
			t.Errorf("input %v: got %v, want %v", tc.input, got, tc.want)
		}
	}
}

func TestAlt_DispatchWithoutDefault(t *testing.T) {
	in := map[string]any{"score": 3}
	params := Params{"condition": "item.score > 5", "cases": map[string]any{"true": "high"}}
	if got := run(t, Alt, in, params); !value.Equal(got, in) {
		t.Errorf("expected unmatched input unchanged, got %v", got)
	}
	in["score"] = 9
	if got := run(t, Alt, in, params); got != "high" {
		t.Errorf("expected high, got %v", got)
	}
	if got := run(t, Alt, 2, Params{"cases": map[string]any{"2": "two"}}); got != "two" {
		t.Errorf("expected input to be its own key, got %v", got)
	}
}

func TestAlt_StateMachine(t *testing.T) {
	params := Params{
		"transitions": map[string]any{
			"idle":    map[string]any{"start": "running"},
			"running": map[string]any{"stop": "idle", "fail": "error"},
		},
	}
	in := map[string]any{"state": "idle", "event": "start", "id": 7}
	out := run(t, Alt, in, params).(map[string]any)
	if out["state"] != "running" || out["id"] != 7 {
		t.Errorf("unexpected state %v", out)
	}
	tr := out[FieldTransition].(map[string]any)
	if tr[FieldFrom] != "idle" || tr[FieldTo] != "running" || tr["event"] != "start" {
		t.Errorf("unexpected transition %v", tr)
	}
	if in["state"] != "idle" {
		t.Error("input must not be modified")
	}

	unmatched := map[string]any{"state": "idle", "event": "stop"}
	if got := run(t, Alt, unmatched, params); !value.Equal(got, unmatched) {
		t.Errorf("expected unmatched transition unchanged, got %v", got)
	}
}

func TestAlt_StateMachineCustomFields(t *testing.T) {
	params := Params{
		"transitions": map[string]map[string]string{"open": {"close": "closed"}},
		"stateField":  "status",
		"eventField":  "action",
	}
	out := run(t, Alt, map[string]any{"status": "open", "action": "close"}, params).(map[string]any)
	if out["status"] != "closed" {
		t.Errorf("expected closed, got %v", out["status"])
	}
}

func TestSyn(t *testing.T) {
	nums := []any{1, 2, "x", 3, nil}
	tests := []struct {
		name   string
		input  any
		params Params
		want   any
	}{
		{"default sum", nums, nil, 6.0},
		{"avg", nums, Params{"operation": "avg"}, 2.0},
		{"count", nums, Params{"mode": "count"}, 5},
		{"min", nums, Params{"operation": "min"}, 1.0},
		{"max", nums, Params{"operation": "max"}, 3.0},
		{"first", nums, Params{"operation": "first"}, 1},
		{"last", nums, Params{"operation": "last"}, nil},
		{"concat", []any{"a", "b"}, Params{"operation": "concat", "separator": "+"}, "a+b"},
		{"unique", []any{1, 1, 2}, Params{"operation": "unique"}, []any{1, 2}},
		{"field", staff(), Params{"operation": "sum", "field": "salary"}, 280.0},
		{"scalar", 5, Params{"operation": "sum"}, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := run(t, Syn, tc.input, tc.params); !value.Equal(got, tc.want) {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestSup(t *testing.T) {
	candidates := []any{
		map[string]any{"lang": "fr", "region": "eu", "text": "bonjour"},
		map[string]any{"lang": "en", "region": "us", "text": "hi"},
		map[string]any{"lang": "en", "region": "uk", "text": "hello"},
	}
	pick := func(strategy string, ctx any) any {
		return run(t, Sup, candidates, Params{"strategy": strategy, "context": ctx})
	}
	text := func(v any) any { return v.(map[string]any)["text"] }

	if got := text(pick("first", nil)); got != "bonjour" {
		t.Errorf("first: got %v", got)
	}
	if got := text(pick("last", nil)); got != "hello" {
		t.Errorf("last: got %v", got)
	}
	if got := text(pick("dominant", map[string]any{"lang": "en", "region": "uk"})); got != "hello" {
		t.Errorf("dominant: got %v", got)
	}
	if got := text(pick("dominant", map[string]any{"lang": "en"})); got != "hi" {
		t.Errorf("dominant tie must pick the earliest, got %v", got)
	}
	if got := text(pick("dominant", nil)); got != "bonjour" {
		t.Errorf("dominant without context must pick the first, got %v", got)
	}
	if got := pick("all", nil); len(got.([]any)) != 3 {
		t.Errorf("all: got %v", got)
	}
	if got := pick("unknown", nil); len(got.([]any)) != 3 {
		t.Errorf("unknown strategy must resolve as all, got %v", got)
	}
}

func TestRec_FixedPoint(t *testing.T) {
	calls := 0
	transform := func(v any) any {
		calls++
		return min(v.(int)+1, 10)
	}
	got := run(t, Rec, 0, Params{"transform": transform})
	if got != 10 {
		t.Errorf("expected 10, got %v", got)
	}
	if calls != 11 {
		t.Errorf("expected 11 applications (10 steps plus the fixed point check), got %d", calls)
	}
}

func TestRec_Until(t *testing.T) {
	got := run(t, Rec, 1, Params{
		"transform": func(v any) any { return v.(int) * 2 },
		"until":     func(v any) bool { return v.(int) > 20 },
	})
	if got != 32 {
		t.Errorf("expected 32, got %v", got)
	}
}

func TestRec_UntilExpression(t *testing.T) {
	got := run(t, Rec, 1, Params{
		"transform": "item * 3",
		"until":     "item >= 27",
	})
	if n, _ := value.ToFloat(got); n != 27 {
		t.Errorf("expected 27, got %v", got)
	}
}

func TestRec_ExpressionBuildsRecords(t *testing.T) {
	got := run(t, Rec, map[string]any{"n": 0}, Params{
		"transform": `{"n": item.n + 1 > 3 ? 3 : item.n + 1}`,
	})
	rec, ok := got.(map[string]any)
	if !ok || !value.Equal(rec["n"], 3) {
		t.Fatalf("expected record {n: 3}, got %#v", got)
	}
	annotated := run(t, Des, got, Params{"name": "capped"}).(map[string]any)
	if _, wrapped := annotated[FieldValue]; wrapped || !value.Equal(annotated["n"], 3) {
		t.Errorf("expected the record to be annotated in place, got %v", annotated)
	}
}

func TestRec_Accumulator(t *testing.T) {
	got := run(t, Rec, -1, Params{
		"transform": func(v any, acc []any) any { return len(acc) },
		"until":     func(v any) bool { return v.(int) == 3 },
	})
	if got != 3 {
		t.Errorf("expected 3, got %v", got)
	}
}

func TestRec_CapWarns(t *testing.T) {
	var buf bytes.Buffer
	log := logger.NewWithWriter(&logger.Config{Level: "warn", Format: "json"}, "test", &buf)
	h, _ := Builtin(Rec, Deps{Logger: log, MaxIterations: 5})

	out, err := h(context.Background(), 0, Params{
		"transform":     func(v any) any { return v.(int) + 1 },
		"maxIterations": 50,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != 5 {
		t.Errorf("expected the cap to clamp to 5 iterations, got %v", out)
	}
	if !strings.Contains(buf.String(), "iteration cap reached") || !strings.Contains(buf.String(), "NOT_CONVERGED") {
		t.Errorf("expected a warning, got %q", buf.String())
	}
}

func TestRec_NonPositiveCapUsesDefault(t *testing.T) {
	for _, limit := range []int{0, -1} {
		h, _ := Builtin(Rec, Deps{MaxIterations: 5})
		out, err := h(context.Background(), 0, Params{
			"transform":     func(v any) any { return v.(int) + 1 },
			"maxIterations": limit,
		})
		if err != nil {
			t.Fatalf("maxIterations %d: unexpected error: %v", limit, err)
		}
		if out != 5 {
			t.Errorf("maxIterations %d: got %v, want 5", limit, out)
		}
	}
}

func TestRec_MissingTransform(t *testing.T) {
	if got := run(t, Rec, "x", Params{}); got != "x" {
		t.Errorf("expected pass-through, got %v", got)
	}
}

func TestRec_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	h, _ := Builtin(Rec, Deps{})
	_, err := h(ctx, 0, Params{"transform": func(v any) any { return v }})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestRec_TransformError(t *testing.T) {
	want := errors.New("diverged")
	h, _ := Builtin(Rec, Deps{})
	_, err := h(context.Background(), 0, Params{
		"transform": func(v any) (any, error) { return nil, want },
	})
	if !errors.Is(err, want) {
		t.Errorf("expected %v, got %v", want, err)
	}
}

package segment

import (
	"testing"

	"github.com/kbukum/opflow/value"
)

func TestGroupBy_OrderAndMembers(t *testing.T) {
	recs := people()
	groups := GroupBy(recs, "city")

	wantKeys := []string{"london", "paris", "berlin", NullKey}
	if got := groups.Keys(); len(got) != len(wantKeys) {
		t.Fatalf("keys = %v, want %v", got, wantKeys)
	}
	for i, k := range groups.Keys() {
		if k != wantKeys[i] {
			t.Errorf("key[%d] = %q, want %q", i, k, wantKeys[i])
		}
	}
	london, _ := groups.Get("london")
	if want := []int{1, 3}; !intSliceEqual(ids(london), want) {
		t.Errorf("london = %v, want %v", ids(london), want)
	}

	flat := groups.Flatten()
	if len(flat) != len(recs) {
		t.Fatalf("flatten = %d records, want %d", len(flat), len(recs))
	}
	seen := map[int]int{}
	for _, id := range ids(flat) {
		seen[id]++
	}
	for _, id := range ids(recs) {
		if seen[id] != 1 {
			t.Errorf("record %d appears %d times after flatten", id, seen[id])
		}
	}
}

func TestGroupBy_MissingKeyUsesSentinel(t *testing.T) {
	groups := GroupBy([]Record{{"a": 1}, {"b": 2}, {"a": nil}}, "a")
	members, ok := groups.Get(NullKey)
	if !ok || len(members) != 2 {
		t.Errorf("expected two records under %q, got %v", NullKey, members)
	}
	if _, ok := groups.Get("1"); !ok {
		t.Error("numeric keys must be stringified")
	}
}

func TestGroupBy_KeyFunc(t *testing.T) {
	groups := GroupBy(people(), func(r Record) any {
		age, ok := value.ToFloat(r["age"])
		if !ok {
			return nil
		}
		return age >= 18
	})
	if got := groups.Keys(); len(got) != 3 || got[0] != "true" || got[1] != "false" || got[2] != NullKey {
		t.Errorf("keys = %v, want [true false %s]", got, NullKey)
	}
}

func TestGroupByMultiple(t *testing.T) {
	recs := []Record{
		{"id": 1, "dept": "eng", "level": "senior"},
		{"id": 2, "dept": "eng", "level": "junior"},
		{"id": 3, "dept": "eng", "level": "senior"},
		{"id": 4, "dept": "ops"},
	}
	groups := GroupByMultiple(recs, "dept", "level")
	want := []string{"eng|senior", "eng|junior", "ops|" + NullKey}
	got := groups.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("key[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	members, _ := groups.Get("eng|senior")
	if !intSliceEqual(ids(members), []int{1, 3}) {
		t.Errorf("eng|senior = %v", ids(members))
	}
}

func TestGroupAndAggregate(t *testing.T) {
	orders := []Record{
		{"customer": "a", "amount": 10, "sku": "x"},
		{"customer": "b", "amount": 5.5, "sku": "y"},
		{"customer": "a", "amount": "n/a", "sku": "x"},
		{"customer": "a", "amount": 30, "sku": "z"},
	}
	rows := GroupAndAggregate(orders, "customer", Aggregations{
		"total": {Field: "amount", Op: AggSum},
		"mean":  {Field: "amount", Op: AggAvg},
		"lo":    {Field: "amount", Op: AggMin},
		"hi":    {Field: "amount", Op: AggMax},
		"skus":  {Field: "sku", Op: AggUnique},
		"nsku":  {Field: "sku", Op: AggUniqueCount},
		"list":  {Field: "sku", Op: AggConcat, Separator: "/"},
		"first": {Field: "sku", Op: AggFirst},
		"last":  {Field: "sku", Op: AggLast},
		"n":     {Field: "sku", Op: AggCount},
		"raw":   {Field: "sku", Op: "median"},
	})
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	a := rows[0]
	checks := map[string]any{
		FieldKey:   "a",
		FieldCount: 3,
		"total":    40.0,
		"mean":     20.0,
		"lo":       10.0,
		"hi":       30.0,
		"skus":     []any{"x", "z"},
		"nsku":     2,
		"list":     "x/x/z",
		"first":    "x",
		"last":     "z",
		"n":        3,
		"raw":      []any{"x", "x", "z"},
	}
	for field, want := range checks {
		if !value.Equal(a[field], want) {
			t.Errorf("%s = %v, want %v", field, a[field], want)
		}
	}
	if rows[1][FieldKey] != "b" {
		t.Errorf("second group key = %v, want b", rows[1][FieldKey])
	}
}

func TestAggregate_EmptyNumeric(t *testing.T) {
	vals := []any{"a", nil, true}
	if got := Aggregate(vals, AggAvg, ""); got != 0.0 {
		t.Errorf("avg = %v, want 0", got)
	}
	if got := Aggregate(vals, AggMin, ""); got != nil {
		t.Errorf("min = %v, want nil", got)
	}
	if got := Aggregate(vals, AggMax, ""); got != nil {
		t.Errorf("max = %v, want nil", got)
	}
	if got := Aggregate(nil, AggSum, ""); got != 0.0 {
		t.Errorf("sum = %v, want 0", got)
	}
	if got := Aggregate([]any{1, "b"}, AggConcat, ""); got != "1, b" {
		t.Errorf("concat = %q, want default separator", got)
	}
	if got := Aggregate(nil, AggFirst, ""); got != nil {
		t.Errorf("first of nothing = %v, want nil", got)
	}
}

package segment

import (
	"slices"

	"github.com/kbukum/opflow/condition"
	"github.com/kbukum/opflow/value"
)

// Record is an opaque field-name to value mapping addressed by dot paths.
type Record = map[string]any

// Predicate decides whether a record is kept.
type Predicate func(Record) bool

// Match converts a filter argument into a Predicate. A nil argument matches
// every record; an unsupported one matches none.
func Match(where any) Predicate {
	switch w := where.(type) {
	case nil:
		return func(Record) bool { return true }
	case Predicate:
		return w
	case func(Record) bool:
		return w
	case func(any) bool:
		return func(r Record) bool { return w(r) }
	case condition.Spec:
		return func(r Record) bool { return w.Matches(r) }
	case map[string]any:
		spec := condition.Spec(w)
		return func(r Record) bool { return spec.Matches(r) }
	case *condition.Expr:
		return func(r Record) bool { return w.Match(r) }
	}
	return func(Record) bool { return false }
}

// Filter returns the records that satisfy where.
func Filter(records []Record, where any) []Record {
	pred := Match(where)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// FilterLimit returns at most limit matching records, stopping the scan as
// soon as the limit is reached.
func FilterLimit(records []Record, where any, limit int) []Record {
	if limit <= 0 {
		return []Record{}
	}
	pred := Match(where)
	out := make([]Record, 0, min(limit, len(records)))
	for _, r := range records {
		if !pred(r) {
			continue
		}
		out = append(out, r)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// Reject returns the records that do not satisfy where.
func Reject(records []Record, where any) []Record {
	pred := Match(where)
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if !pred(r) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns how many records satisfy where.
func Count(records []Record, where any) int {
	pred := Match(where)
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}

// Parts holds the two buckets of a single-pass split.
type Parts struct {
	Pass []Record
	Fail []Record
}

// Partition splits records by where, keeping input order within each bucket.
func Partition(records []Record, where any) Parts {
	pred := Match(where)
	p := Parts{Pass: []Record{}, Fail: []Record{}}
	for _, r := range records {
		if pred(r) {
			p.Pass = append(p.Pass, r)
		} else {
			p.Fail = append(p.Fail, r)
		}
	}
	return p
}

// UnmatchedBucket receives records that fall in none of the ranges.
const UnmatchedBucket = "_unmatched"

// Range is a half-open interval [Min, Max). A nil bound is open.
type Range struct {
	Name string `json:"name" yaml:"name" mapstructure:"name"`
	Min  any    `json:"min,omitempty" yaml:"min,omitempty" mapstructure:"min"`
	Max  any    `json:"max,omitempty" yaml:"max,omitempty" mapstructure:"max"`
}

// Contains reports whether v lies inside r.
func (r Range) Contains(v any) bool {
	if v == nil {
		return false
	}
	if r.Min != nil {
		c, ok := value.Compare(v, r.Min)
		if !ok || c < 0 {
			return false
		}
	}
	if r.Max != nil {
		c, ok := value.Compare(v, r.Max)
		if !ok || c >= 0 {
			return false
		}
	}
	return true
}

// PartitionByRange buckets records by the value at field. Ranges are tried
// in order and the first match wins. Every named range appears in the result
// (possibly empty), followed by UnmatchedBucket. UnmatchedBucket is reserved:
// ranges using that name are ignored.
func PartitionByRange(records []Record, field string, ranges []Range) Groups {
	ranges = slices.DeleteFunc(slices.Clone(ranges), func(r Range) bool { return r.Name == UnmatchedBucket })
	groups := make(Groups, 0, len(ranges)+1)
	index := make(map[string]int, len(ranges)+1)
	bucket := func(name string) int {
		if i, ok := index[name]; ok {
			return i
		}
		index[name] = len(groups)
		groups = append(groups, Group{Key: name, Members: []Record{}})
		return len(groups) - 1
	}
	for _, rg := range ranges {
		bucket(rg.Name)
	}
	unmatched := bucket(UnmatchedBucket)

	for _, rec := range records {
		v := value.Get(rec, field)
		target := unmatched
		for _, rg := range ranges {
			if rg.Contains(v) {
				target = index[rg.Name]
				break
			}
		}
		groups[target].Members = append(groups[target].Members, rec)
	}
	return groups
}

package segment

import (
	"strings"

	"github.com/kbukum/opflow/value"
)

// NullKey is the group key for records whose key is nil or missing.
const NullKey = "__null__"

// KeySeparator joins per-field keys in GroupByMultiple. Field values that
// themselves contain it can collide with other combinations.
const KeySeparator = "|"

// Output fields emitted by GroupAndAggregate and chained GroupBy.
const (
	FieldKey   = "_key"
	FieldCount = "_count"
	FieldItems = "_items"
)

// Group is one bucket of a grouping, in input order.
type Group struct {
	Key     string
	Members []Record
}

// Groups keeps buckets in first-seen key order.
type Groups []Group

// Get returns the members of key.
func (g Groups) Get(key string) ([]Record, bool) {
	for _, grp := range g {
		if grp.Key == key {
			return grp.Members, true
		}
	}
	return nil, false
}

// Keys returns group keys in emission order.
func (g Groups) Keys() []string {
	keys := make([]string, len(g))
	for i, grp := range g {
		keys[i] = grp.Key
	}
	return keys
}

// Map returns the groups as a key to members map.
func (g Groups) Map() map[string][]Record {
	m := make(map[string][]Record, len(g))
	for _, grp := range g {
		m[grp.Key] = grp.Members
	}
	return m
}

// Flatten concatenates all members in group order.
func (g Groups) Flatten() []Record {
	var n int
	for _, grp := range g {
		n += len(grp.Members)
	}
	out := make([]Record, 0, n)
	for _, grp := range g {
		out = append(out, grp.Members...)
	}
	return out
}

// Records converts the groups into one record per group carrying _key,
// _count and _items.
func (g Groups) Records() []Record {
	out := make([]Record, len(g))
	for i, grp := range g {
		members := grp.Members
		if members == nil {
			members = []Record{}
		}
		out[i] = Record{
			FieldKey:   grp.Key,
			FieldCount: len(members),
			FieldItems: members,
		}
	}
	return out
}

// KeyFunc extracts a grouping or identity key from a record.
type KeyFunc func(Record) any

// KeyOf converts a key selector into a KeyFunc. Selectors are a field path,
// a list of field paths, a KeyFunc or a func(Record) any; anything else keys every record as nil.
func KeyOf(selector any) KeyFunc {
	switch s := selector.(type) {
	case string:
		return func(r Record) any { return value.Get(r, s) }
	case KeyFunc:
		return s
	case func(Record) any:
		return s
	case func(any) any:
		return func(r Record) any { return s(r) }
	case []string:
		return func(r Record) any {
			parts := make([]string, len(s))
			for i, f := range s {
				parts[i] = GroupKey(value.Get(r, f))
			}
			return strings.Join(parts, KeySeparator)
		}
	}
	return func(Record) any { return nil }
}

// GroupKey stringifies a raw key value.
func GroupKey(v any) string {
	if v == nil {
		return NullKey
	}
	return value.Stringify(v)
}

// GroupBy buckets records by key. Group order is first-seen key order and
// member order is input order.
func GroupBy(records []Record, key any) Groups {
	keyFn := KeyOf(key)
	return groupWith(records, func(r Record) string { return GroupKey(keyFn(r)) })
}

// GroupByMultiple buckets records by the combination of several fields.
func GroupByMultiple(records []Record, fields ...string) Groups {
	return groupWith(records, func(r Record) string {
		parts := make([]string, len(fields))
		for i, f := range fields {
			parts[i] = GroupKey(value.Get(r, f))
		}
		return strings.Join(parts, KeySeparator)
	})
}

func groupWith(records []Record, keyFn func(Record) string) Groups {
	groups := Groups{}
	index := make(map[string]int)
	for _, r := range records {
		k := keyFn(r)
		i, ok := index[k]
		if !ok {
			i = len(groups)
			index[k] = i
			groups = append(groups, Group{Key: k})
		}
		groups[i].Members = append(groups[i].Members, r)
	}
	return groups
}

// GroupAndAggregate groups records by key and emits one record per group
// holding _key, _count and one field per aggregation.
func GroupAndAggregate(records []Record, key any, aggs Aggregations) []Record {
	groups := GroupBy(records, key)
	out := make([]Record, 0, len(groups))
	for _, grp := range groups {
		row := Record{
			FieldKey:   grp.Key,
			FieldCount: len(grp.Members),
		}
		for name, agg := range aggs {
			row[name] = Aggregate(Pluck(grp.Members, agg.Field), agg.Op, agg.Separator)
		}
		out = append(out, row)
	}
	return out
}

// Pluck projects records through a field path; missing values are nil.
func Pluck(records []Record, field string) []any {
	out := make([]any, len(records))
	for i, r := range records {
		out[i] = value.Get(r, field)
	}
	return out
}

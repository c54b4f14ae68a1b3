package segment

import (
	"github.com/kbukum/opflow/value"
)

// Unique removes duplicates. Without a field records are compared
// structurally (key order does not matter); with a field the first record
// carrying each value of that field wins.
func Unique(records []Record, field ...string) []Record {
	key := func(r Record) string { return value.Canonical(r) }
	if len(field) > 0 && field[0] != "" {
		path := field[0]
		key = func(r Record) string { return value.Canonical(value.Get(r, path)) }
	}
	return uniqueBy(records, key)
}

// UniqueBy removes records whose key was already seen.
func UniqueBy(records []Record, key any) []Record {
	keyFn := KeyOf(key)
	return uniqueBy(records, func(r Record) string { return value.Canonical(keyFn(r)) })
}

func uniqueBy(records []Record, key func(Record) string) []Record {
	seen := make(map[string]struct{}, len(records))
	out := make([]Record, 0, len(records))
	for _, r := range records {
		k := key(r)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out
}

// Intersection returns the records of a whose key also occurs in b.
func Intersection(a, b []Record, key any) []Record {
	keys := keySet(b, KeyOf(key))
	keyFn := KeyOf(key)
	return Filter(a, func(r Record) bool {
		_, ok := keys[value.Canonical(keyFn(r))]
		return ok
	})
}

// Difference returns the records of a whose key does not occur in b.
func Difference(a, b []Record, key any) []Record {
	keys := keySet(b, KeyOf(key))
	keyFn := KeyOf(key)
	return Reject(a, func(r Record) bool {
		_, ok := keys[value.Canonical(keyFn(r))]
		return ok
	})
}

// Union returns a followed by b, keeping only the first record seen per key.
func Union(a, b []Record, key any) []Record {
	all := make([]Record, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	return UniqueBy(all, key)
}

func keySet(records []Record, keyFn KeyFunc) map[string]struct{} {
	set := make(map[string]struct{}, len(records))
	for _, r := range records {
		set[value.Canonical(keyFn(r))] = struct{}{}
	}
	return set
}

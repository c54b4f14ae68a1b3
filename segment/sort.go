package segment

import (
	"cmp"
	"slices"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kbukum/opflow/value"
)

// Direction is a sort direction.
type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Comparator orders two records; negative means a sorts first.
type Comparator func(a, b Record) int

// SortRule is one tie-break level of a multi-field sort.
type SortRule struct {
	Field     string    `json:"field" yaml:"field" mapstructure:"field"`
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty" mapstructure:"direction"`
}

// Sort returns a stably sorted copy of records. criteria is a Comparator, a
// field path, a SortRule or a []SortRule evaluated left to right; dir applies
// to a bare field path. Unsupported criteria return an unsorted copy.
func Sort(records []Record, criteria any, dir Direction) []Record {
	return SortLocale(language.Und, records, criteria, dir)
}

// SortLocale is Sort with string comparison collated for tag.
func SortLocale(tag language.Tag, records []Record, criteria any, dir Direction) []Record {
	out := slices.Clone(records)
	if out == nil {
		out = []Record{}
	}

	var order Comparator
	switch c := criteria.(type) {
	case Comparator:
		order = c
	case func(a, b Record) int:
		order = c
	case string:
		order = rulesComparator(collate.New(tag), []SortRule{{Field: c, Direction: dir}})
	case SortRule:
		order = rulesComparator(collate.New(tag), []SortRule{c})
	case []SortRule:
		order = rulesComparator(collate.New(tag), c)
	default:
		return out
	}
	slices.SortStableFunc(out, order)
	return out
}

func rulesComparator(col *collate.Collator, rules []SortRule) Comparator {
	return func(a, b Record) int {
		for _, rule := range rules {
			dir := rule.Direction
			if dir == "" {
				dir = Asc
			}
			if c := compareWith(col, value.Get(a, rule.Field), value.Get(b, rule.Field), dir); c != 0 {
				return c
			}
		}
		return 0
	}
}

// CompareValues orders two field values for sorting. nil sorts after every
// non-nil value in both directions; only the order of two non-nil values
// flips with dir. Values of different kinds order as numbers, strings,
// booleans, times, then everything else.
func CompareValues(a, b any, dir Direction) int {
	return compareWith(collate.New(language.Und), a, b, dir)
}

func compareWith(col *collate.Collator, a, b any, dir Direction) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	}
	if value.StrictEqual(a, b) {
		return 0
	}

	var c int
	sa, aok := a.(string)
	sb, bok := b.(string)
	if aok && bok {
		c = col.CompareString(sa, sb)
	} else if cv, ok := value.Compare(a, b); ok {
		c = cv
	} else {
		c = cmp.Compare(kindRank(a), kindRank(b))
	}
	if dir == Desc {
		return -c
	}
	return c
}

func kindRank(v any) int {
	if _, ok := value.ToFloat(v); ok {
		return 0
	}
	switch v.(type) {
	case string:
		return 1
	case bool:
		return 2
	case time.Time:
		return 3
	}
	return 4
}

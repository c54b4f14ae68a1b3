package condition

import (
	"fmt"
	"regexp"
	"sync"

	"github.com/kbukum/opflow/value"
)

// Recognized operator keys. This set is a stable surface shared with search,
// merge and dedupe callers.
const (
	OpEq       = "eq"
	OpNe       = "ne"
	OpGt       = "gt"
	OpGte      = "gte"
	OpLt       = "lt"
	OpLte      = "lte"
	OpIn       = "in"
	OpNin      = "nin"
	OpRegex    = "regex"
	OpExists   = "exists"
	OpTypeName = "typeName"
)

// Ops is an operator-set: every present key must hold for the set to match.
type Ops map[string]any

// Spec maps field paths to a literal (strict equality) or an operator-set.
// All fields are AND-ed.
type Spec map[string]any

// Evaluate checks value against a literal or operator-set. A nil value is
// treated as absent for the exists operator.
func Evaluate(v any, cond any) bool {
	return evaluate(v, v != nil, cond)
}

// Matches reports whether record satisfies every field condition of s.
// An empty spec matches everything.
func (s Spec) Matches(record any) bool {
	for path, cond := range s {
		v, present := value.Lookup(record, path)
		if !evaluate(v, present, cond) {
			return false
		}
	}
	return true
}

// Predicate adapts s to a plain predicate.
func (s Spec) Predicate() func(any) bool {
	return s.Matches
}

// IsOps reports whether cond is interpreted as an operator-set.
func IsOps(cond any) bool {
	_, ok := asOps(cond)
	return ok
}

func asOps(cond any) (map[string]any, bool) {
	switch c := cond.(type) {
	case Ops:
		return c, true
	case map[string]any:
		return c, true
	}
	return nil, false
}

func evaluate(v any, present bool, cond any) bool {
	ops, ok := asOps(cond)
	if !ok {
		return value.StrictEqual(v, cond)
	}
	for key, arg := range ops {
		if !apply(key, arg, v, present) {
			return false
		}
	}
	return true
}

func apply(key string, arg, v any, present bool) bool {
	switch key {
	case OpEq:
		return value.StrictEqual(v, arg)
	case OpNe:
		return !value.StrictEqual(v, arg)
	case OpGt:
		c, ok := value.Compare(v, arg)
		return ok && c > 0
	case OpGte:
		c, ok := value.Compare(v, arg)
		return ok && c >= 0
	case OpLt:
		c, ok := value.Compare(v, arg)
		return ok && c < 0
	case OpLte:
		c, ok := value.Compare(v, arg)
		return ok && c <= 0
	case OpIn:
		return contains(arg, v)
	case OpNin:
		return !contains(arg, v)
	case OpRegex:
		return matchPattern(arg, v, present)
	case OpExists:
		want, ok := arg.(bool)
		if !ok {
			return true
		}
		return present == want
	case OpTypeName:
		want, ok := arg.(string)
		if !ok {
			return true
		}
		got := value.TypeUndefined
		if present {
			got = value.TypeOf(v)
		}
		return got == want
	}
	// unknown keys are not evaluated
	return true
}

func contains(set, v any) bool {
	items, ok := value.Seq(set)
	if !ok {
		return false
	}
	for _, item := range items {
		if value.StrictEqual(item, v) {
			return true
		}
	}
	return false
}

var patterns sync.Map // string -> *regexp.Regexp (nil for invalid patterns)

func matchPattern(arg, v any, present bool) bool {
	var re *regexp.Regexp
	switch p := arg.(type) {
	case *regexp.Regexp:
		re = p
	case string:
		re = compilePattern(p)
	default:
		return false
	}
	if re == nil {
		return false
	}
	text := value.TypeUndefined
	if present {
		text = value.Stringify(v)
	}
	return re.MatchString(text)
}

func compilePattern(p string) *regexp.Regexp {
	if cached, ok := patterns.Load(p); ok {
		re, _ := cached.(*regexp.Regexp)
		return re
	}
	re, err := regexp.Compile(p)
	if err != nil {
		patterns.Store(p, (*regexp.Regexp)(nil))
		return nil
	}
	patterns.Store(p, re)
	return re
}

// String renders the spec for log output.
func (s Spec) String() string {
	return fmt.Sprintf("condition%s", value.Canonical(map[string]any(s)))
}

package operator

import (
	"github.com/spf13/cast"
)

// Params carries the per-step arguments of an operator.
type Params map[string]any

// Parameter keys understood by the built-in handlers.
const (
	ParamDefault       = "default"
	ParamPolicy        = "policy"
	ParamName          = "name"
	ParamType          = "type"
	ParamValue         = "value"
	ParamPosition      = "position"
	ParamIndex         = "index"
	ParamKey           = "key"
	ParamGroupBy       = "groupBy"
	ParamAggregate     = "aggregate"
	ParamPartition     = "partition"
	ParamFilter        = "filter"
	ParamWhere         = "where"
	ParamLimit         = "limit"
	ParamField         = "field"
	ParamRanges        = "ranges"
	ParamLookup        = "lookup"
	ParamLookupKey     = "lookupKey"
	ParamAs            = "as"
	ParamCondition     = "condition"
	ParamCases         = "cases"
	ParamTransitions   = "transitions"
	ParamStateField    = "stateField"
	ParamEventField    = "eventField"
	ParamOperation     = "operation"
	ParamMode          = "mode"
	ParamSeparator     = "separator"
	ParamStrategy      = "strategy"
	ParamContext       = "context"
	ParamTransform     = "transform"
	ParamUntil         = "until"
	ParamMaxIterations = "maxIterations"
)

// Get returns the raw value for key.
func (p Params) Get(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// Has reports whether key is present, even with a nil value.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

// First returns the value of the first present key.
func (p Params) First(keys ...string) (any, bool) {
	for _, k := range keys {
		if v, ok := p[k]; ok {
			return v, true
		}
	}
	return nil, false
}

// String returns key as a string, or def when absent or not convertible.
func (p Params) String(key, def string) string {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return def
	}
	return s
}

// Int returns key as an int, or def when absent or not convertible.
func (p Params) Int(key string, def int) int {
	v, ok := p[key]
	if !ok || v == nil {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return def
	}
	return n
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

package operator

import (
	"context"
	"fmt"

	"github.com/kbukum/opflow/segment"
	"github.com/kbukum/opflow/value"
)

// Defaults of the CON handler.
const (
	DefaultRelationField = "relation"
	DefaultLookupKey     = "id"
	FieldRelated         = "related"
)

// con resolves the value at params.field of each record through
// params.lookup and attaches {type, related} under params.as.
func con(_ context.Context, input any, params Params) (any, error) {
	field := params.String(ParamField, "")
	raw, ok := params[ParamLookup]
	if !ok || isNil(raw) || field == "" {
		return input, nil
	}
	resolve, err := resolver(raw, params.String(ParamLookupKey, DefaultLookupKey))
	if err != nil {
		return nil, err
	}

	as := params.String(ParamAs, DefaultRelationField)
	typ := params[ParamType]
	link := func(rec map[string]any) map[string]any {
		out := value.Clone(rec)
		out[as] = map[string]any{
			ParamType:    typ,
			FieldRelated: resolve(value.Get(rec, field)),
		}
		return out
	}

	if m, ok := value.AsMap(input); ok {
		return link(m), nil
	}
	if recs, ok := input.([]map[string]any); ok {
		out := make([]map[string]any, len(recs))
		for i, r := range recs {
			out[i] = link(r)
		}
		return out, nil
	}
	items, ok := value.Seq(input)
	if !ok {
		return input, nil
	}
	out := make([]any, len(items))
	for i, item := range items {
		if m, ok := value.AsMap(item); ok {
			out[i] = link(m)
		} else {
			out[i] = item
		}
	}
	return out, nil
}

// resolver builds the lookup function. Mappings are keyed by the string
// form of the field value; record collections are indexed by key, first
// occurrence winning.
func resolver(lookup any, key string) (func(any) any, error) {
	switch l := lookup.(type) {
	case func(any) any:
		return l, nil
	case map[string]any:
		return func(v any) any {
			if v == nil {
				return nil
			}
			return l[value.Stringify(v)]
		}, nil
	}
	if recs, ok := value.Records(lookup); ok {
		index := make(map[string]map[string]any, len(recs))
		for _, r := range recs {
			k := segment.GroupKey(value.Get(r, key))
			if _, seen := index[k]; !seen {
				index[k] = r
			}
		}
		return func(v any) any {
			if v == nil {
				return nil
			}
			if r, ok := index[segment.GroupKey(v)]; ok {
				return r
			}
			return nil
		}, nil
	}
	return nil, fmt.Errorf("unsupported lookup type %T", lookup)
}

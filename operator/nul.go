package operator

import (
	"context"

	"github.com/kbukum/opflow/value"
)

// PolicyRemove makes NUL drop an absent input instead of defaulting it.
const PolicyRemove = "remove"

// nul replaces an absent input with the configured default and strips
// absent members from collections.
func nul(_ context.Context, input any, params Params) (any, error) {
	if input == nil {
		if params.String(ParamPolicy, "") == PolicyRemove {
			return nil, nil
		}
		return params[ParamDefault], nil
	}
	if recs, ok := input.([]map[string]any); ok {
		out := make([]map[string]any, 0, len(recs))
		for _, r := range recs {
			if r != nil {
				out = append(out, r)
			}
		}
		return out, nil
	}
	items, ok := value.Seq(input)
	if !ok {
		return input, nil
	}
	out := make([]any, 0, len(items))
	for _, item := range items {
		if !isNil(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

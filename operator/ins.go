package operator

import (
	"context"

	"github.com/kbukum/opflow/value"
)

// Insertion positions.
const (
	PositionStart = "start"
	PositionEnd   = "end"
)

// ins inserts params.value into a copy of a sequence, or sets params.key on
// a copy of a record.
func ins(_ context.Context, input any, params Params) (any, error) {
	v := params[ParamValue]

	if key, ok := params[ParamKey]; ok && key != nil {
		k := value.Stringify(key)
		if input == nil {
			return map[string]any{k: v}, nil
		}
		if m, ok := value.AsMap(input); ok {
			out := value.Clone(m)
			out[k] = v
			return out, nil
		}
	}

	if recs, ok := input.([]map[string]any); ok {
		if rec, ok := v.(map[string]any); ok {
			return insertAt(recs, rec, insertIndex(params, len(recs))), nil
		}
	}
	if input == nil {
		return []any{v}, nil
	}
	items, ok := value.Seq(input)
	if !ok {
		return input, nil
	}
	return insertAt(items, v, insertIndex(params, len(items))), nil
}

func insertIndex(params Params, n int) int {
	if params.Has(ParamIndex) {
		i := params.Int(ParamIndex, n)
		if i < 0 {
			i += n
		}
		return max(0, min(i, n))
	}
	if params.String(ParamPosition, PositionEnd) == PositionStart {
		return 0
	}
	return n
}

func insertAt[T any](items []T, v T, i int) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items[:i]...)
	out = append(out, v)
	return append(out, items[i:]...)
}

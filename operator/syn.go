package operator

import (
	"context"

	"github.com/kbukum/opflow/segment"
	"github.com/kbukum/opflow/value"
)

// DefaultSynthesis is the SYN operation used when none is given.
const DefaultSynthesis = segment.AggSum

// syn reduces a sequence, optionally projected through params.field, with
// one of the segment aggregation operations. Non-sequences pass through.
func syn(_ context.Context, input any, params Params) (any, error) {
	items, ok := value.Seq(input)
	if !ok {
		return input, nil
	}
	if field := params.String(ParamField, ""); field != "" {
		projected := make([]any, len(items))
		for i, item := range items {
			projected[i] = value.Get(item, field)
		}
		items = projected
	}

	op := DefaultSynthesis
	if raw, ok := params.First(ParamOperation, ParamMode); ok && raw != nil {
		op = segment.AggOp(value.Stringify(raw))
	}
	return segment.Aggregate(items, op, params.String(ParamSeparator, "")), nil
}

package operator

import (
	"context"

	"github.com/kbukum/opflow/value"
)

// Fields written by DES.
const (
	FieldAnnotation = "annotation"
	FieldValue      = "value"
)

// des attaches an annotation built from every parameter. Records receive
// it on a copy; other values are wrapped.
func des(_ context.Context, input any, params Params) (any, error) {
	annotation := make(map[string]any, len(params)+2)
	annotation[ParamName] = params[ParamName]
	annotation[ParamType] = params[ParamType]
	for k, v := range params {
		annotation[k] = v
	}

	if m, ok := value.AsMap(input); ok {
		out := value.Clone(m)
		out[FieldAnnotation] = annotation
		return out, nil
	}
	return map[string]any{
		FieldValue:      input,
		FieldAnnotation: annotation,
	}, nil
}

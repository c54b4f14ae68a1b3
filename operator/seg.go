package operator

import (
	"context"
	"fmt"

	"github.com/kbukum/opflow/segment"
	"github.com/kbukum/opflow/value"
)

// Fields of a SEG partition result.
const (
	FieldPass = "pass"
	FieldFail = "fail"
)

// seg delegates to the segment package. The mode is chosen by the first
// parameter present among groupBy, partition, filter/where and
// field+ranges. Inputs that are not record collections pass through.
func seg(_ context.Context, input any, params Params) (any, error) {
	recs, ok := value.Records(input)
	if !ok {
		return input, nil
	}

	switch {
	case params.Has(ParamGroupBy):
		key, err := groupKey(params[ParamGroupBy])
		if err != nil {
			return nil, err
		}
		if aggs, ok := aggregations(params[ParamAggregate]); ok {
			return segment.GroupAndAggregate(recs, key, aggs), nil
		}
		return segment.GroupBy(recs, key).Records(), nil

	case params.Has(ParamPartition):
		where, err := whereArg(params[ParamPartition])
		if err != nil {
			return nil, err
		}
		parts := segment.Partition(recs, where)
		return map[string]any{FieldPass: parts.Pass, FieldFail: parts.Fail}, nil

	case params.Has(ParamFilter) || params.Has(ParamWhere):
		raw, _ := params.First(ParamFilter, ParamWhere)
		where, err := whereArg(raw)
		if err != nil {
			return nil, err
		}
		if params.Has(ParamLimit) {
			return segment.FilterLimit(recs, where, params.Int(ParamLimit, 0)), nil
		}
		return segment.Filter(recs, where), nil

	case params.Has(ParamField) && params.Has(ParamRanges):
		ranges := rangeList(params[ParamRanges])
		if len(ranges) == 0 {
			return input, nil
		}
		return segment.PartitionByRange(recs, params.String(ParamField, ""), ranges).Records(), nil
	}
	return input, nil
}

// groupKey normalizes a groupBy argument. Lists of fields become []string;
// expressions become key functions.
func groupKey(raw any) (any, error) {
	switch k := raw.(type) {
	case []string:
		return k, nil
	case []any:
		fields := make([]string, len(k))
		for i, f := range k {
			fields[i] = value.Stringify(f)
		}
		return fields, nil
	case string:
		if isFieldPath(k) {
			return k, nil
		}
		expr, err := compile(k)
		if err != nil {
			return nil, err
		}
		return segment.KeyFunc(func(r segment.Record) any {
			v, _ := expr.Eval(r)
			return v
		}), nil
	}
	return raw, nil
}

// aggregations reads an aggregate spec. Entries that are not mappings get an
// empty Aggregation, which yields the raw value list. ok is false when raw is
// absent or unusable, in which case plain groups are returned.
func aggregations(raw any) (segment.Aggregations, bool) {
	switch a := raw.(type) {
	case segment.Aggregations:
		return a, true
	case map[string]segment.Aggregation:
		return a, true
	case map[string]any:
		out := make(segment.Aggregations, len(a))
		for name, spec := range a {
			m, ok := value.AsMap(spec)
			if !ok {
				out[name] = segment.Aggregation{}
				continue
			}
			p := Params(m)
			out[name] = segment.Aggregation{
				Field:     p.String(ParamField, ""),
				Op:        segment.AggOp(p.String(ParamOperation, p.String(ParamMode, ""))),
				Separator: p.String(ParamSeparator, ""),
			}
		}
		return out, true
	}
	return nil, false
}

// rangeList reads a ranges parameter, dropping items that are not ranges or
// mappings.
func rangeList(raw any) []segment.Range {
	if ranges, ok := raw.([]segment.Range); ok {
		return ranges
	}
	items, ok := value.Seq(raw)
	if !ok {
		return nil
	}
	out := make([]segment.Range, 0, len(items))
	for i, item := range items {
		switch r := item.(type) {
		case segment.Range:
			out = append(out, r)
		case map[string]any:
			out = append(out, segment.Range{
				Name: Params(r).String(ParamName, fmt.Sprint(i)),
				Min:  r["min"],
				Max:  r["max"],
			})
		}
	}
	return out
}

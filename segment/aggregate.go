package segment

import (
	"strings"

	"github.com/kbukum/opflow/value"
)

// AggOp names an aggregation operation.
type AggOp string

const (
	AggSum         AggOp = "sum"
	AggAvg         AggOp = "avg"
	AggCount       AggOp = "count"
	AggMin         AggOp = "min"
	AggMax         AggOp = "max"
	AggFirst       AggOp = "first"
	AggLast        AggOp = "last"
	AggConcat      AggOp = "concat"
	AggUnique      AggOp = "unique"
	AggUniqueCount AggOp = "uniqueCount"
)

// DefaultSeparator joins values for AggConcat.
const DefaultSeparator = ", "

// Aggregation describes one output field of GroupAndAggregate.
type Aggregation struct {
	Field     string `json:"field" yaml:"field" mapstructure:"field"`
	Op        AggOp  `json:"operation" yaml:"operation" mapstructure:"operation"`
	Separator string `json:"separator,omitempty" yaml:"separator,omitempty" mapstructure:"separator"`
}

// Aggregations maps output field names to their aggregation.
type Aggregations map[string]Aggregation

// Aggregate reduces values with op. Numeric operations skip non-numeric
// values; avg of nothing is 0 and min/max of nothing is nil. An unsupported
// op returns the values unchanged.
func Aggregate(values []any, op AggOp, sep string) any {
	switch op {
	case AggSum:
		total, _ := sumNumbers(values)
		return total
	case AggAvg:
		total, n := sumNumbers(values)
		if n == 0 {
			return 0.0
		}
		return total / float64(n)
	case AggCount:
		return len(values)
	case AggMin, AggMax:
		return extreme(values, op == AggMax)
	case AggFirst:
		if len(values) == 0 {
			return nil
		}
		return values[0]
	case AggLast:
		if len(values) == 0 {
			return nil
		}
		return values[len(values)-1]
	case AggConcat:
		if sep == "" {
			sep = DefaultSeparator
		}
		parts := make([]string, len(values))
		for i, v := range values {
			if v != nil {
				parts[i] = value.Stringify(v)
			}
		}
		return strings.Join(parts, sep)
	case AggUnique:
		return distinct(values)
	case AggUniqueCount:
		return len(distinct(values))
	}
	return append([]any(nil), values...)
}

func sumNumbers(values []any) (float64, int) {
	var total float64
	var n int
	for _, v := range values {
		if f, ok := value.ToFloat(v); ok {
			total += f
			n++
		}
	}
	return total, n
}

func extreme(values []any, wantMax bool) any {
	var best float64
	found := false
	for _, v := range values {
		f, ok := value.ToFloat(v)
		if !ok {
			continue
		}
		if !found || (wantMax && f > best) || (!wantMax && f < best) {
			best = f
			found = true
		}
	}
	if !found {
		return nil
	}
	return best
}

func distinct(values []any) []any {
	seen := make(map[string]struct{}, len(values))
	out := make([]any, 0, len(values))
	for _, v := range values {
		k := value.Canonical(v)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, v)
	}
	return out
}

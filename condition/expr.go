package condition

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
)

// ItemVar is the variable name bound to the evaluated value inside expressions.
const ItemVar = "item"

// costLimit caps the evaluation cost of a single expression run.
const costLimit = 1_000_000

// Expr is a compiled CEL expression evaluated against a single value bound
// to the variable "item".
//
//	expr, err := condition.Compile(`item.age >= 18 && item.country in ["DE", "FR"]`)
//	adults := segment.Filter(records, expr)
type Expr struct {
	source  string
	program cel.Program
}

var exprEnv = sync.OnceValues(func() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable(ItemVar, cel.DynType),
		cel.CrossTypeNumericComparisons(true),
	)
})

// Compile parses and type-checks a CEL expression.
func Compile(source string) (*Expr, error) {
	if source == "" {
		return nil, fmt.Errorf("condition: empty expression")
	}
	env, err := exprEnv()
	if err != nil {
		return nil, fmt.Errorf("condition: creating CEL environment: %w", err)
	}
	ast, issues := env.Compile(source)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("condition: compiling %q: %w", source, issues.Err())
	}
	prog, err := env.Program(ast, cel.CostLimit(costLimit))
	if err != nil {
		return nil, fmt.Errorf("condition: building program for %q: %w", source, err)
	}
	return &Expr{source: source, program: prog}, nil
}

// MustCompile is Compile that panics on error, for expressions fixed at init time.
func MustCompile(source string) *Expr {
	e, err := Compile(source)
	if err != nil {
		panic(err)
	}
	return e
}

// Source returns the original expression text.
func (e *Expr) Source() string { return e.source }

// Eval evaluates the expression and returns its native Go value.
func (e *Expr) Eval(item any) (any, error) {
	out, _, err := e.program.Eval(map[string]any{ItemVar: item})
	if err != nil {
		return nil, fmt.Errorf("condition: evaluating %q: %w", e.source, err)
	}
	return native(out), nil
}

// native unwraps a CEL result into plain Go values. Maps and lists built by
// the expression become map[string]any and []any, recursively; null is nil.
func native(v any) any {
	if rv, ok := v.(ref.Val); ok {
		if _, null := rv.(types.Null); null {
			return nil
		}
		v = rv.Value()
	}
	switch x := v.(type) {
	case map[ref.Val]ref.Val:
		out := make(map[string]any, len(x))
		for k, e := range x {
			out[fmt.Sprint(native(k))] = native(e)
		}
		return out
	case []ref.Val:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = native(e)
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = native(e)
		}
		return out
	default:
		return x
	}
}

// Match evaluates the expression as a predicate. Evaluation errors and
// non-boolean results count as no match.
func (e *Expr) Match(item any) bool {
	out, err := e.Eval(item)
	if err != nil {
		return false
	}
	matched, ok := out.(bool)
	return ok && matched
}

package operator

import (
	"context"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/kbukum/opflow/condition"
	"github.com/kbukum/opflow/errors"
	"github.com/kbukum/opflow/value"
)

// mapper is the uniform shape of caller-supplied transforms. acc holds the
// values produced by earlier applications.
type mapper func(ctx context.Context, v any, acc []any) (any, error)

var fieldPath = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z0-9_]+)*$`)

// isFieldPath reports whether s is a plain dot path rather than an
// expression. Paths rooted at the expression variable are expressions.
func isFieldPath(s string) bool {
	if !fieldPath.MatchString(s) {
		return false
	}
	root, _, _ := strings.Cut(s, value.PathSeparator)
	return root != condition.ItemVar
}

func compile(source string) (*condition.Expr, error) {
	expr, err := condition.Compile(source)
	if err != nil {
		return nil, errors.InvalidExpression(source, err)
	}
	return expr, nil
}

func asMapper(fn any) (mapper, error) {
	switch f := fn.(type) {
	case func(any) any:
		return func(_ context.Context, v any, _ []any) (any, error) { return f(v), nil }, nil
	case func(any, []any) any:
		return func(_ context.Context, v any, acc []any) (any, error) { return f(v, acc), nil }, nil
	case func(any) (any, error):
		return func(_ context.Context, v any, _ []any) (any, error) { return f(v) }, nil
	case Handler:
		return func(ctx context.Context, v any, _ []any) (any, error) { return f(ctx, v, nil) }, nil
	case func(context.Context, any, Params) (any, error):
		return func(ctx context.Context, v any, _ []any) (any, error) { return f(ctx, v, nil) }, nil
	case *condition.Expr:
		return func(_ context.Context, v any, _ []any) (any, error) { return f.Eval(v) }, nil
	case string:
		expr, err := compile(f)
		if err != nil {
			return nil, err
		}
		return func(_ context.Context, v any, _ []any) (any, error) { return expr.Eval(v) }, nil
	}
	return nil, fmt.Errorf("unsupported transform type %T", fn)
}

func asPredicate(fn any) (func(any) bool, error) {
	switch f := fn.(type) {
	case func(any) bool:
		return f, nil
	case func(map[string]any) bool:
		return func(v any) bool {
			m, ok := v.(map[string]any)
			return ok && f(m)
		}, nil
	case condition.Spec:
		return f.Matches, nil
	case map[string]any:
		return condition.Spec(f).Matches, nil
	case *condition.Expr:
		return f.Match, nil
	case string:
		expr, err := compile(f)
		if err != nil {
			return nil, err
		}
		return expr.Match, nil
	}
	return nil, fmt.Errorf("unsupported predicate type %T", fn)
}

// asSelector converts a key selector into a function of the input. Strings
// are field paths when they look like one and expressions otherwise.
func asSelector(fn any) (func(any) (any, error), error) {
	switch f := fn.(type) {
	case func(any) any:
		return func(v any) (any, error) { return f(v), nil }, nil
	case func(any) string:
		return func(v any) (any, error) { return f(v), nil }, nil
	case func(any) bool:
		return func(v any) (any, error) { return f(v), nil }, nil
	case *condition.Expr:
		return f.Eval, nil
	case string:
		if isFieldPath(f) {
			return func(v any) (any, error) { return value.Get(v, f), nil }, nil
		}
		expr, err := compile(f)
		if err != nil {
			return nil, err
		}
		return expr.Eval, nil
	}
	return nil, fmt.Errorf("unsupported selector type %T", fn)
}

// whereArg prepares a filter argument for the segment package, compiling
// string expressions.
func whereArg(where any) (any, error) {
	if s, ok := where.(string); ok {
		return compile(s)
	}
	return where, nil
}

// isNil reports whether v is nil or a typed nil reference.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

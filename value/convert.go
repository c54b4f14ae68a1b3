package value

import (
	"fmt"
	"maps"
	"reflect"
	"time"

	json "github.com/goccy/go-json"
	"github.com/spf13/cast"
)

// Type tags reported by TypeOf.
const (
	TypeUndefined = "undefined"
	TypeNull      = "null"
	TypeString    = "string"
	TypeNumber    = "number"
	TypeBoolean   = "boolean"
	TypeObject    = "object"
	TypeArray     = "array"
	TypeTime      = "time"
	TypeFunction  = "function"
)

// TypeOf returns the runtime type tag of v. Go has a single nil, so nil is
// reported as "null"; callers that track presence report "undefined" themselves.
func TypeOf(v any) string {
	if v == nil {
		return TypeNull
	}
	if IsNumber(v) {
		return TypeNumber
	}
	switch v.(type) {
	case string:
		return TypeString
	case bool:
		return TypeBoolean
	case time.Time:
		return TypeTime
	}
	switch reflect.TypeOf(v).Kind() {
	case reflect.Map, reflect.Struct:
		return TypeObject
	case reflect.Slice, reflect.Array:
		return TypeArray
	case reflect.Func:
		return TypeFunction
	}
	return reflect.TypeOf(v).String()
}

// Stringify renders v as text: strings as-is, numbers without trailing zeros,
// booleans as true/false, nil as "null", composites as canonical JSON.
func Stringify(v any) string {
	if v == nil {
		return TypeNull
	}
	switch v.(type) {
	case map[string]any, []any:
		return Canonical(v)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return Canonical(v)
	}
	return s
}

// Canonical returns a deterministic encoding of v suitable as an identity key.
// Map keys are sorted by the encoder and numeric kinds collapse to their JSON
// form, so two structurally equal values share a key.
func Canonical(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%T:%v", v, v)
	}
	return string(b)
}

// AsMap returns v as a record when it is a map[string]any.
func AsMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}

// Clone returns a shallow copy of m; a nil map yields an empty one.
func Clone(m map[string]any) map[string]any {
	if m == nil {
		return make(map[string]any)
	}
	return maps.Clone(m)
}

// Seq returns v as a []any when it is any slice or array kind. Strings and
// byte slices are not sequences.
func Seq(v any) ([]any, bool) {
	switch s := v.(type) {
	case nil, string, []byte:
		return nil, false
	case []any:
		return s, true
	case []map[string]any:
		out := make([]any, len(s))
		for i, m := range s {
			out[i] = m
		}
		return out, true
	}
	rv := reflect.ValueOf(v)
	if !isList(rv) {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = rv.Index(i).Interface()
	}
	return out, true
}

// Records returns v as a slice of records when every element is a
// map[string]any. An empty sequence is a valid, empty record set.
func Records(v any) ([]map[string]any, bool) {
	if recs, ok := v.([]map[string]any); ok {
		return recs, true
	}
	items, ok := Seq(v)
	if !ok {
		return nil, false
	}
	out := make([]map[string]any, len(items))
	for i, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, false
		}
		out[i] = m
	}
	return out, true
}

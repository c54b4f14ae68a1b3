package value

import (
	"reflect"
	"strconv"
	"strings"
)

// PathSeparator separates segments of a field path.
const PathSeparator = "."

// Lookup resolves a dot path against v. The second result is false as soon as
// an intermediate segment is missing or cannot be walked. An empty path
// resolves to v itself.
func Lookup(v any, path string) (any, bool) {
	if path == "" {
		return v, true
	}
	cur := v
	for _, seg := range strings.Split(path, PathSeparator) {
		next, ok := step(cur, seg)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

// Get is Lookup without the presence flag; absent paths yield nil.
func Get(v any, path string) any {
	out, _ := Lookup(v, path)
	return out
}

// Has reports whether path resolves, even to a nil value.
func Has(v any, path string) bool {
	_, ok := Lookup(v, path)
	return ok
}

func step(cur any, seg string) (any, bool) {
	switch c := cur.(type) {
	case nil:
		return nil, false
	case map[string]any:
		out, ok := c[seg]
		return out, ok
	case map[string]string:
		out, ok := c[seg]
		return out, ok
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(c) {
			return nil, false
		}
		return c[i], true
	}

	rv := reflect.ValueOf(cur)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		out := rv.MapIndex(reflect.ValueOf(seg).Convert(rv.Type().Key()))
		if !out.IsValid() {
			return nil, false
		}
		return out.Interface(), true
	case reflect.Slice, reflect.Array:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= rv.Len() {
			return nil, false
		}
		return rv.Index(i).Interface(), true
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, false
		}
		return step(rv.Elem().Interface(), seg)
	}
	return nil, false
}

// Field resolves a single key against v without splitting it on the path
// separator, so keys may contain dots.
func Field(v any, key string) (any, bool) {
	return step(v, key)
}

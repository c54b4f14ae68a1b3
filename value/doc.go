// Package value holds the loosely-typed value helpers shared by the condition,
// segment and operator packages.
//
// Records are opaque map[string]any values decoded from JSON, YAML or built in
// Go code, so the same logical number may arrive as int, int64 or float64. The
// helpers here normalize that: numeric values compare by value, equality is a
// deep comparison over maps and slices, and canonical keys are produced from a
// key-sorted JSON encoding.
//
// # Paths
//
// Fields are addressed with dot paths:
//
//	v, ok := value.Lookup(record, "address.city")
//	first := value.Get(record, "tags.0")
//
// Lookup never panics on missing or mistyped segments; it reports absence.
package value

// Package condition implements the declarative condition language used to
// filter records.
//
// A Spec maps a field path to either a literal, compared by strict equality,
// or an operator-set whose keys are AND-ed:
//
//	spec := condition.Spec{
//	    "age":          condition.Ops{"gte": 18},
//	    "status":       "active",
//	    "address.city": condition.Ops{"in": []string{"berlin", "paris"}},
//	    "email":        condition.Ops{"exists": true, "regex": `@example\.com$`},
//	}
//	ok := spec.Matches(record)
//
// The recognized operator keys are eq, ne, gt, gte, lt, lte, in, nin, regex,
// exists and typeName. Unknown keys are ignored rather than rejected, so specs
// must be validated upstream when strictness matters.
//
// For pipelines defined as data (YAML, JSON) the package also compiles CEL
// expressions evaluated against a single variable named item.
package condition

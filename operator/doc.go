// Package operator defines the nine built-in transformation primitives and
// the registry that maps operator symbols to handlers.
//
//	NUL  absence handling        DES  designation/tagging
//	INS  insertion               SEG  segmentation
//	CON  relation linking        ALT  branching
//	SYN  synthesis/aggregation   SUP  superposition resolution
//	REC  fixed-point iteration
//
// Handlers never modify their input; collections and records are copied
// before they change. A Registry is safe for concurrent use.
//
//	reg := operator.NewDefaultRegistry(operator.Deps{Logger: log})
//	h, _ := reg.Lookup("seg")
//	adults, err := h(ctx, records, operator.Params{"where": "item.age >= 18"})
package operator

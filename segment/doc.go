// Package segment provides filtering, partitioning, grouping, aggregation,
// sorting, slicing and set algebra over ordered record collections.
//
// Every function is pure: inputs are never modified and each call returns a
// fresh slice (records themselves are shared, not copied). Data-shape
// anomalies never produce errors; they degrade to empty or default results.
//
// # Filtering
//
// Filter arguments may be a Predicate, a func(Record) bool, a condition.Spec
// (or plain map[string]any spec) or a compiled *condition.Expr:
//
//	adults := segment.Filter(users, condition.Spec{"age": condition.Ops{"gte": 18}})
//	first10 := segment.FilterLimit(users, isActive, 10)
//	parts := segment.Partition(users, isActive)
//
// # Grouping
//
//	byCountry := segment.GroupBy(users, "address.country")
//	stats := segment.GroupAndAggregate(orders, "customer", segment.Aggregations{
//	    "total": {Field: "amount", Op: segment.AggSum},
//	    "items": {Field: "sku", Op: segment.AggUniqueCount},
//	})
//
// # Chains
//
//	top := segment.From(users).
//	    Filter(condition.Spec{"active": true}).
//	    Sort("score", segment.Desc).
//	    Take(5).
//	    Value()
package segment

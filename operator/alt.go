package operator

import (
	"context"

	"github.com/kbukum/opflow/value"
)

// Defaults and output fields of the ALT state machine.
const (
	DefaultStateField = "state"
	DefaultEventField = "event"
	FieldTransition   = "transition"
	FieldFrom         = "from"
	FieldTo           = "to"
)

// alt branches on its input. With transitions it acts as a state machine
// over the record's state and event fields; otherwise it dispatches on
// condition(input) through cases, falling back to default.
func alt(ctx context.Context, input any, params Params) (any, error) {
	if t, ok := params[ParamTransitions]; ok && !isNil(t) {
		return transition(input, t, params), nil
	}
	if params.Has(ParamCases) || params.Has(ParamDefault) {
		return dispatch(ctx, input, params)
	}
	return input, nil
}

func dispatch(ctx context.Context, input any, params Params) (any, error) {
	key := input
	if c, ok := params[ParamCondition]; ok && !isNil(c) {
		sel, err := asSelector(c)
		if err != nil {
			return nil, err
		}
		if key, err = sel(input); err != nil {
			return nil, err
		}
	}

	if cases, ok := value.AsMap(params[ParamCases]); ok {
		if branch, ok := cases[value.Stringify(key)]; ok {
			return applyBranch(ctx, branch, input)
		}
	}
	if branch, ok := params[ParamDefault]; ok {
		return applyBranch(ctx, branch, input)
	}
	return input, nil
}

// applyBranch applies a function branch to input; any other branch value
// is the result itself.
func applyBranch(ctx context.Context, branch, input any) (any, error) {
	switch branch.(type) {
	case func(any) any, func(any) (any, error), Handler, func(context.Context, any, Params) (any, error):
		fn, err := asMapper(branch)
		if err != nil {
			return nil, err
		}
		return fn(ctx, input, nil)
	}
	return branch, nil
}

func transition(input, transitions any, params Params) any {
	rec, ok := value.AsMap(input)
	if !ok {
		return input
	}
	stateField := params.String(ParamStateField, DefaultStateField)
	eventField := params.String(ParamEventField, DefaultEventField)

	state, ok := value.Field(rec, stateField)
	if !ok {
		return input
	}
	event, ok := value.Field(rec, eventField)
	if !ok {
		return input
	}
	events, ok := value.Field(transitions, value.Stringify(state))
	if !ok {
		return input
	}
	next, ok := value.Field(events, value.Stringify(event))
	if !ok {
		return input
	}

	out := value.Clone(rec)
	out[stateField] = next
	out[FieldTransition] = map[string]any{
		FieldFrom:         state,
		FieldTo:           next,
		DefaultEventField: event,
	}
	return out
}

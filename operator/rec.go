package operator

import (
	"context"

	"github.com/kbukum/opflow/errors"
	"github.com/kbukum/opflow/logger"
	"github.com/kbukum/opflow/value"
)

// newRec returns the REC handler bound to deps. It applies params.transform
// until params.until holds for the new value, the value stops changing or
// the iteration cap is hit. Hitting the cap is not an error: the last value
// is returned and a warning is logged.
func newRec(deps Deps) Handler {
	log := deps.Logger.WithComponent("operator")
	return func(ctx context.Context, input any, params Params) (any, error) {
		raw, ok := params[ParamTransform]
		if !ok || isNil(raw) {
			return input, nil
		}
		transform, err := asMapper(raw)
		if err != nil {
			return nil, err
		}
		var until func(any) bool
		if u, ok := params[ParamUntil]; ok && !isNil(u) {
			if until, err = asPredicate(u); err != nil {
				return nil, err
			}
		}

		limit := params.Int(ParamMaxIterations, deps.MaxIterations)
		if limit <= 0 || limit > deps.MaxIterations {
			limit = deps.MaxIterations
		}
		cur := input
		acc := make([]any, 0, limit)
		for i := 0; i < limit; i++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			next, err := transform(ctx, cur, acc)
			if err != nil {
				return nil, err
			}
			acc = append(acc, next)
			if until != nil && until(next) {
				return next, nil
			}
			if value.Equal(next, cur) {
				return next, nil
			}
			cur = next
		}

		log.WithError(errors.NotConverged(limit)).Warn("iteration cap reached without convergence", logger.Fields(
			logger.FieldOperator, string(Rec),
			logger.FieldIterations, limit,
		))
		return cur, nil
	}
}

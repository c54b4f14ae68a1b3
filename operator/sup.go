package operator

import (
	"context"

	"github.com/kbukum/opflow/value"
)

// SUP strategies. Unknown strategies resolve as StrategyAll.
const (
	StrategyDominant = "dominant"
	StrategyFirst    = "first"
	StrategyLast     = "last"
	StrategyAll      = "all"
)

// sup resolves a set of candidate values down to one.
func sup(_ context.Context, input any, params Params) (any, error) {
	candidates, ok := value.Seq(input)
	if !ok || len(candidates) == 0 {
		return input, nil
	}
	switch params.String(ParamStrategy, StrategyAll) {
	case StrategyFirst:
		return candidates[0], nil
	case StrategyLast:
		return candidates[len(candidates)-1], nil
	case StrategyDominant:
		return dominant(candidates, params[ParamContext]), nil
	}
	return input, nil
}

// dominant picks the candidate agreeing with the most context fields.
// Ties go to the earliest candidate.
func dominant(candidates []any, ctx any) any {
	want, _ := value.AsMap(ctx)
	best, bestScore := candidates[0], 0
	for _, c := range candidates {
		score := 0
		for k, v := range want {
			if got, ok := value.Field(c, k); ok && value.Equal(got, v) {
				score++
			}
		}
		if score > bestScore {
			best, bestScore = c, score
		}
	}
	return best
}

package bootstrap

import (
	"context"
	"fmt"
)

// Hook is a lifecycle callback. Commands register hooks to release
// resources without bootstrap knowing about specific infrastructure.
type Hook func(ctx context.Context) error

// OnStop registers hooks that run after the task finishes, in registration
// order. Use them to shut down exporters and flush buffers.
func (a *App[C]) OnStop(hooks ...Hook) {
	a.onStop = append(a.onStop, hooks...)
}

// runHooks executes hooks sequentially, returning the first error.
func runHooks(ctx context.Context, hooks []Hook) error {
	for i, h := range hooks {
		if err := h(ctx); err != nil {
			return fmt.Errorf("hook %d failed: %w", i, err)
		}
	}
	return nil
}

package operator

import (
	"context"
	"fmt"
	"slices"
	"sync"
)

// Handler transforms input according to params. Handlers must not modify
// input.
type Handler func(ctx context.Context, input any, params Params) (any, error)

// Registry maps normalized operator symbols to handlers.
type Registry struct {
	mu       sync.RWMutex
	handlers map[Symbol]Handler
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[Symbol]Handler)}
}

// NewDefaultRegistry creates a Registry holding the nine built-in handlers.
func NewDefaultRegistry(deps Deps) *Registry {
	r := NewRegistry()
	for _, sym := range builtinSymbols {
		if h, ok := Builtin(sym, deps); ok {
			r.handlers[sym] = h
		}
	}
	return r
}

// Register installs h under symbol. The symbol is case-normalized and a
// previous handler for it is replaced. A nil handler removes the symbol.
func (r *Registry) Register(symbol string, h Handler) {
	sym := ParseSymbol(symbol)
	r.mu.Lock()
	defer r.mu.Unlock()
	if h == nil {
		delete(r.handlers, sym)
		return
	}
	r.handlers[sym] = h
}

// Lookup retrieves the handler for symbol.
func (r *Registry) Lookup(symbol string) (Handler, bool) {
	sym := ParseSymbol(symbol)
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.handlers[sym]
	return h, ok
}

// Symbols returns the sorted registered symbols.
func (r *Registry) Symbols() []Symbol {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Symbol, 0, len(r.handlers))
	for sym := range r.handlers {
		out = append(out, sym)
	}
	slices.Sort(out)
	return out
}

// PanicError reports a handler that panicked.
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string { return fmt.Sprintf("handler panicked: %v", e.Value) }

// Call invokes h, converting a panic into a *PanicError.
func Call(ctx context.Context, h Handler, input any, params Params) (out any, err error) {
	defer func() {
		if p := recover(); p != nil {
			out, err = nil, &PanicError{Value: p}
		}
	}()
	return h(ctx, input, params)
}

package pipeline

import (
	"context"

	"github.com/kbukum/opflow/operator"
)

// Step is one operator application within a pipeline.
type Step struct {
	// Operator is the symbol looked up in the registry.
	Operator operator.Symbol `yaml:"operator" json:"operator" validate:"required,operator"`
	// Params are passed to the handler unchanged.
	Params operator.Params `yaml:"params,omitempty" json:"params,omitempty"`
	// Name is an optional display label.
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
}

// Label returns the display name of the step, or its operator symbol.
func (s Step) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Operator.String()
}

func (s Step) clone() Step {
	if s.Params != nil {
		s.Params = s.Params.Clone()
	}
	return s
}

// Builder accumulates pipeline steps in order. It holds no executor; one is
// supplied only when the steps run.
type Builder struct {
	steps []Step
}

// NewBuilder creates an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// Step appends a step for any symbol, including caller-registered ones.
func (b *Builder) Step(sym operator.Symbol, params operator.Params, name ...string) *Builder {
	s := Step{Operator: operator.ParseSymbol(string(sym)), Params: params}
	if len(name) > 0 {
		s.Name = name[0]
	}
	b.steps = append(b.steps, s.clone())
	return b
}

// Nul appends an absence-handling step.
func (b *Builder) Nul(params operator.Params, name ...string) *Builder {
	return b.Step(operator.Nul, params, name...)
}

// Des appends a designation step.
func (b *Builder) Des(params operator.Params, name ...string) *Builder {
	return b.Step(operator.Des, params, name...)
}

// Ins appends an insertion step.
func (b *Builder) Ins(params operator.Params, name ...string) *Builder {
	return b.Step(operator.Ins, params, name...)
}

// Seg appends a segmentation step.
func (b *Builder) Seg(params operator.Params, name ...string) *Builder {
	return b.Step(operator.Seg, params, name...)
}

// Con appends a relation-linking step.
func (b *Builder) Con(params operator.Params, name ...string) *Builder {
	return b.Step(operator.Con, params, name...)
}

// Alt appends a branching step.
func (b *Builder) Alt(params operator.Params, name ...string) *Builder {
	return b.Step(operator.Alt, params, name...)
}

// Syn appends a synthesis step.
func (b *Builder) Syn(params operator.Params, name ...string) *Builder {
	return b.Step(operator.Syn, params, name...)
}

// Sup appends a superposition-resolution step.
func (b *Builder) Sup(params operator.Params, name ...string) *Builder {
	return b.Step(operator.Sup, params, name...)
}

// Rec appends a fixed-point iteration step.
func (b *Builder) Rec(params operator.Params, name ...string) *Builder {
	return b.Step(operator.Rec, params, name...)
}

// Len returns the number of accumulated steps.
func (b *Builder) Len() int { return len(b.steps) }

// Build returns a copy of the accumulated steps. Later builder calls do not
// affect it.
func (b *Builder) Build() []Step {
	out := make([]Step, len(b.steps))
	for i, s := range b.steps {
		out[i] = s.clone()
	}
	return out
}

// Run executes the accumulated steps on exec. A nil exec runs them on a
// fresh executor with default settings.
func (b *Builder) Run(ctx context.Context, input any, exec *Executor) (*Result, error) {
	if exec == nil {
		exec = NewExecutor()
	}
	return exec.Execute(ctx, b.Build(), input, nil)
}

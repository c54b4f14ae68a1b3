package pipeline

import (
	"context"
	"errors"
	"time"

	apperrors "github.com/kbukum/opflow/errors"
	"github.com/kbukum/opflow/identity"
	"github.com/kbukum/opflow/logger"
	"github.com/kbukum/opflow/observability"
	"github.com/kbukum/opflow/operator"
	"github.com/kbukum/opflow/value"
)

// Executor runs pipelines against an operator registry. It is safe for
// concurrent use; the registry and the history are the only shared state.
type Executor struct {
	registry *operator.Registry
	ids      identity.Generator
	log      *logger.Logger
	metrics  *observability.Metrics
	cfg      Config
	history  *History
}

// Option configures an Executor.
type Option func(*Executor)

// WithRegistry runs steps against r instead of a fresh default registry.
func WithRegistry(r *operator.Registry) Option {
	return func(e *Executor) { e.registry = r }
}

// WithIdentity sets the pipeline id generator. Failures fall back to
// timestamp-derived ids.
func WithIdentity(g identity.Generator) Option {
	return func(e *Executor) { e.ids = g }
}

// WithLogger sets the logger.
func WithLogger(l *logger.Logger) Option {
	return func(e *Executor) { e.log = l }
}

// WithMetrics records pipeline and step instruments on m.
func WithMetrics(m *observability.Metrics) Option {
	return func(e *Executor) { e.metrics = m }
}

// WithConfig sets the executor configuration.
func WithConfig(cfg Config) Option {
	return func(e *Executor) { e.cfg = cfg }
}

// NewExecutor creates an Executor. Without options it uses the built-in
// operators, UUID pipeline ids, a silent logger and no metrics.
func NewExecutor(opts ...Option) *Executor {
	e := &Executor{ids: identity.UUID()}
	for _, opt := range opts {
		opt(e)
	}
	e.cfg.ApplyDefaults()
	if e.log == nil {
		e.log = logger.Nop()
	}
	e.log = e.log.WithComponent("pipeline")
	if e.registry == nil {
		e.registry = operator.NewDefaultRegistry(operator.Deps{
			Logger:        e.log,
			MaxIterations: e.cfg.MaxIterations,
		})
	}
	e.ids = identity.Fallback(e.ids)
	e.history = NewHistory(e.cfg.HistoryCapacity)
	return e
}

// Registry returns the registry the executor dispatches through.
func (e *Executor) Registry() *operator.Registry { return e.registry }

// Register installs a handler; see operator.Registry.Register.
func (e *Executor) Register(symbol string, h operator.Handler) {
	e.registry.Register(symbol, h)
}

// ExecuteOne applies a single operator. An unregistered symbol is skipped
// with a warning and input is returned unchanged. A handler error or panic
// is returned as a HANDLER_FAULT. When ec is non-nil a LogEntry is appended.
func (e *Executor) ExecuteOne(ctx context.Context, symbol string, input any, params operator.Params, ec *ExecutionContext) (any, error) {
	return e.executeStep(ctx, Step{Operator: operator.ParseSymbol(symbol), Params: params}, input, ec)
}

func (e *Executor) executeStep(ctx context.Context, step Step, input any, ec *ExecutionContext) (any, error) {
	sym := step.Operator
	log := e.log.WithContext(ctx)
	pipelineID := ""
	if ec != nil {
		pipelineID = ec.PipelineID
	}

	ctx, span := observability.StartSpan(ctx, observability.SpanPipelineStep)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrOperator, sym.String())
	observability.SetSpanAttribute(ctx, observability.AttrInputKind, value.TypeOf(input))
	if ec != nil {
		observability.SetSpanAttribute(ctx, observability.AttrPipelineID, pipelineID)
		observability.SetSpanAttribute(ctx, observability.AttrStepIndex, len(ec.Log))
	}

	h, ok := e.registry.Lookup(sym.String())
	if !ok {
		log.WithError(apperrors.UnknownOperator(sym.String())).Warn("operator not registered, passing input through", logger.Fields(
			logger.FieldPipelineID, pipelineID,
			logger.FieldOperator, sym.String(),
		))
		observability.SetSpanAttribute(ctx, observability.AttrStatus, observability.StatusSkipped)
		if e.metrics != nil {
			e.metrics.RecordStep(ctx, sym.String(), observability.StatusSkipped, 0)
			e.metrics.RecordError(ctx, string(apperrors.ErrCodeUnknownOperator), sym.String())
		}
		return input, nil
	}

	start := time.Now()
	out, err := operator.Call(ctx, h, input, step.Params)
	duration := time.Since(start)

	if err != nil {
		fault := apperrors.HandlerFault(sym.String(), err)
		status := observability.StatusError
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			status = observability.StatusCanceled
		}
		log.Error("operator failed", logger.MergeWithError(
			logger.StepFields(pipelineID, sym.String(), duration), err))
		observability.SetSpanError(span, fault)
		observability.SetSpanAttribute(ctx, observability.AttrStatus, status)
		if e.metrics != nil {
			e.metrics.RecordStep(ctx, sym.String(), status, duration)
			e.metrics.RecordError(ctx, string(fault.Code), sym.String())
		}
		return nil, fault
	}

	if ec != nil {
		ec.append(LogEntry{
			Operator:   sym,
			Name:       step.Name,
			Params:     step.Params,
			InputKind:  value.TypeOf(input),
			OutputKind: value.TypeOf(out),
			DurationMs: millis(duration),
			Timestamp:  start,
		})
	}
	observability.SetSpanAttribute(ctx, observability.AttrOutputKind, value.TypeOf(out))
	observability.SetSpanAttribute(ctx, observability.AttrStatus, observability.StatusOK)
	if e.metrics != nil {
		e.metrics.RecordStep(ctx, sym.String(), observability.StatusOK, duration)
	}
	log.Debug("step completed", logger.StepFields(pipelineID, sym.String(), duration))
	return out, nil
}

// Execute runs steps left to right, threading each output into the next
// input. The context is checked between steps. On success the execution is
// added to the history.
func (e *Executor) Execute(ctx context.Context, steps []Step, input any, metadata map[string]any) (*Result, error) {
	id, err := e.ids.Generate(e.cfg.IDPrefix)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	ec := NewExecutionContext(id, metadata)
	name := ec.Name()

	ctx, span := observability.StartSpan(ctx, observability.SpanPipelineExecute)
	defer span.End()
	observability.SetSpanAttribute(ctx, observability.AttrPipelineID, id)
	observability.SetSpanAttribute(ctx, observability.AttrPipelineName, name)
	observability.SetSpanAttribute(ctx, observability.AttrPipelineSteps, len(steps))

	fail := func(err error, status string) (*Result, error) {
		observability.SetSpanError(span, err)
		observability.SetSpanAttribute(ctx, observability.AttrStatus, status)
		if e.metrics != nil {
			e.metrics.RecordPipeline(ctx, name, status, len(ec.Log), time.Since(ec.StartTime))
		}
		return nil, err
	}

	cur := input
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return fail(err, observability.StatusCanceled)
		}
		if cur, err = e.executeStep(ctx, step, cur, ec); err != nil {
			return fail(err, observability.StatusError)
		}
	}

	ec.finish(time.Now())
	e.history.Add(ec.Summary())
	observability.SetSpanAttribute(ctx, observability.AttrStatus, observability.StatusOK)
	if e.metrics != nil {
		e.metrics.RecordPipeline(ctx, name, observability.StatusOK, len(ec.Log), time.Since(ec.StartTime))
	}
	e.log.WithContext(ctx).Debug("pipeline completed", logger.Fields(
		logger.FieldPipelineID, id,
		logger.FieldPipeline, name,
		logger.FieldStep, len(steps),
		logger.FieldDuration, ec.DurationMs,
	))
	return &Result{Result: cur, Context: ec}, nil
}

// Stats aggregates the retained history.
func (e *Executor) Stats() Stats { return e.history.Stats() }

// History returns the retained execution summaries, oldest first.
func (e *Executor) History() []Summary { return e.history.Entries() }

// ClearHistory drops the retained execution summaries.
func (e *Executor) ClearHistory() { e.history.Reset() }

// Package pipeline executes ordered operator steps over a value.
//
// A pipeline is a straight-line list of steps. Each step names an operator
// symbol and its parameters; the executor looks the symbol up in its
// operator.Registry and threads every step's output into the next step's
// input. Branching and looping live inside ALT and REC, never between
// steps.
//
// Pipelines are plain data and hold no reference to an executor, so the same
// steps can run against differently configured executors:
//
//	steps := pipeline.NewBuilder().
//	    Nul(operator.Params{"default": []any{}}).
//	    Seg(operator.Params{"filter": map[string]any{"age": map[string]any{"gte": 18}}}).
//	    Syn(operator.Params{"operation": "avg", "field": "age"}).
//	    Build()
//
//	exec := pipeline.NewExecutor(pipeline.WithLogger(log))
//	res, err := exec.Execute(ctx, steps, records, nil)
//
// Unknown operators are skipped with a warning. A failing or panicking handler
// aborts the run and Execute returns a HANDLER_FAULT *errors.AppError; no
// partial result is returned.
//
// Every executor keeps a bounded FIFO history of completed runs that backs
// Stats. Steps may also be loaded from YAML with ParseDefinition and
// LoadDefinition.
package pipeline

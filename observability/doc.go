// Package observability provides OpenTelemetry tracing and metrics for
// pipeline execution.
//
// Tracing:
//
//	tp, err := observability.InitTracer(ctx, observability.DefaultTracerConfig("opflow"), log)
//	defer tp.Shutdown(ctx)
//
//	ctx, span := observability.StartSpan(ctx, observability.SpanPipelineStep)
//	defer span.End()
//
// Metrics:
//
//	mp, err := observability.InitMeter(ctx, observability.DefaultMeterConfig("opflow"), log)
//	defer mp.Shutdown(ctx)
//
//	metrics, err := observability.NewMetrics(observability.Meter("opflow"))
//	metrics.RecordStep(ctx, "SEG", observability.StatusOK, duration)
//
// Without InitTracer or InitMeter the global providers are no-ops, so
// spans and instruments cost nothing in embedded use.
package observability

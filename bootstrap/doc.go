// Package bootstrap runs opflow commands with a uniform lifecycle.
//
// NewApp applies config defaults, validates the config and builds the
// logger. RunTask runs one finite task, cancels it on SIGINT/SIGTERM and
// then runs the OnStop hooks (exporter shutdown, flushes) within the
// graceful timeout.
//
//	app, err := bootstrap.NewApp(&cfg)
//	if err != nil {
//	    return err
//	}
//	app.OnStop(func(ctx context.Context) error { return tp.Shutdown(ctx) })
//	return app.RunTask(ctx, func(ctx context.Context) error {
//	    return runPipeline(ctx)
//	})
package bootstrap

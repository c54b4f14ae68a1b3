package main

import (
	"context"
	"fmt"
	"io"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/kbukum/opflow/bootstrap"
	"github.com/kbukum/opflow/errors"
	"github.com/kbukum/opflow/observability"
	"github.com/kbukum/opflow/pipeline"
)

type runOptions struct {
	pipelinePath string
	inputPath    string
	trace        bool
	pretty       bool
}

func newRunCmd(global *globalOptions) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a pipeline definition over a JSON input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := runPipeline(cmd, *global, opts); err != nil {
				return fail(cmd.ErrOrStderr(), err)
			}
			return nil
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.pipelinePath, "pipeline", "p", "", "pipeline definition (YAML or JSON)")
	flags.StringVarP(&opts.inputPath, "input", "i", "-", "JSON input file, - for stdin")
	flags.BoolVar(&opts.trace, "trace", false, "print the execution context with the result")
	flags.BoolVar(&opts.pretty, "pretty", false, "indent the JSON output")
	_ = cmd.MarkFlagRequired("pipeline")
	return cmd
}

func runPipeline(cmd *cobra.Command, global globalOptions, opts runOptions) error {
	cfg, err := loadConfig(global)
	if err != nil {
		return errors.InvalidInput("config", err.Error()).WithCause(err)
	}
	app, err := bootstrap.NewApp(cfg, bootstrap.WithLogWriter(cmd.ErrOrStderr()))
	if err != nil {
		return errors.InvalidInput("config", err.Error()).WithCause(err)
	}

	ctx := cmd.Context()
	execOpts, err := telemetry(ctx, app)
	if err != nil {
		return errors.Internal(err)
	}
	exec := pipeline.NewExecutor(append(execOpts,
		pipeline.WithLogger(app.Logger),
		pipeline.WithConfig(cfg.Pipeline),
	)...)

	return app.RunTask(ctx, func(ctx context.Context) error {
		def, err := pipeline.LoadDefinition(opts.pipelinePath)
		if err != nil {
			return err
		}
		input, err := readInput(cmd.InOrStdin(), opts.inputPath)
		if err != nil {
			return err
		}
		res, err := def.Run(ctx, exec, input)
		if err != nil {
			return err
		}
		if opts.trace {
			return writeJSON(cmd.OutOrStdout(), res, opts.pretty)
		}
		return writeJSON(cmd.OutOrStdout(), res.Result, opts.pretty)
	})
}

// telemetry installs the configured exporters and registers their shutdown
// on app.
func telemetry(ctx context.Context, app *bootstrap.App[*AppConfig]) ([]pipeline.Option, error) {
	var opts []pipeline.Option
	if app.Cfg.Tracing.Enabled {
		tp, err := observability.InitTracer(ctx, app.Cfg.Tracing, app.Logger)
		if err != nil {
			return nil, err
		}
		app.OnStop(tp.Shutdown)
	}
	if app.Cfg.Metrics.Enabled {
		mp, err := observability.InitMeter(ctx, app.Cfg.Metrics, app.Logger)
		if err != nil {
			return nil, err
		}
		app.OnStop(mp.Shutdown)
		metrics, err := observability.NewMetrics(mp.Meter(serviceName))
		if err != nil {
			return nil, err
		}
		opts = append(opts, pipeline.WithMetrics(metrics))
	}
	return opts, nil
}

// readInput decodes a JSON document from path, or from stdin when path is
// "-". Empty input decodes to nil.
func readInput(stdin io.Reader, path string) (any, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, errors.InvalidInput("input", fmt.Sprintf("cannot read %s", path)).WithCause(err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, errors.InvalidInput("input", "input is not valid JSON").WithCause(err)
	}
	return v, nil
}

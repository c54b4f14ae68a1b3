package main

import (
	"io"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/kbukum/opflow/errors"
	"github.com/kbukum/opflow/version"
)

type globalOptions struct {
	configFile string
	envFile    string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	var opts globalOptions
	root := &cobra.Command{
		Use:           "opflow",
		Short:         "Run declarative operator pipelines over JSON records",
		Version:       version.Short(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := root.PersistentFlags()
	flags.StringVar(&opts.configFile, "config", "", "config file (default: ./opflow.yml, ./config/config.yml, ...)")
	flags.StringVar(&opts.envFile, "env-file", "", ".env file to load before reading OPFLOW_ variables")
	flags.StringVar(&opts.logLevel, "log-level", "", "override logging.level")

	root.AddCommand(
		newRunCmd(&opts),
		newValidateCmd(),
		newOperatorsCmd(),
		newVersionCmd(),
	)
	return root
}

// fail writes the error report of err to w and returns err so cobra exits
// non-zero.
func fail(w io.Writer, err error) error {
	_ = writeJSON(w, errors.ReportOf(err), true)
	return err
}

func writeJSON(w io.Writer, v any, pretty bool) error {
	var (
		data []byte
		err  error
	)
	if pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/kbukum/opflow/pipeline"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE",
		Short: "Check a pipeline definition without running it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, err := pipeline.LoadDefinition(args[0])
			if err != nil {
				return fail(cmd.ErrOrStderr(), err)
			}
			return writeJSON(cmd.OutOrStdout(), map[string]any{
				"name":  def.Name,
				"steps": len(def.Steps),
				"valid": true,
			}, false)
		},
	}
}

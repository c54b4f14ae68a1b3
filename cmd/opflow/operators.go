package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/opflow/operator"
)

var operatorSummaries = map[operator.Symbol]string{
	operator.Nul: "absence handling: default, remove or strip nulls",
	operator.Des: "designation: attach an annotation",
	operator.Ins: "insertion: add to a sequence or set a field",
	operator.Seg: "segmentation: filter, partition, group or bucket records",
	operator.Con: "relation linking: attach looked-up related values",
	operator.Alt: "branching: dispatch table or state machine",
	operator.Syn: "synthesis: reduce a sequence to one value",
	operator.Sup: "superposition: pick one of several candidates",
	operator.Rec: "fixed-point iteration of a transform",
}

func newOperatorsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "operators",
		Short: "List the built-in operators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, sym := range operator.NewDefaultRegistry(operator.Deps{}).Symbols() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", sym, operatorSummaries[sym]); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

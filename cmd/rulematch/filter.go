package main

import (
	"io"

	"github.com/KromDaniel/rulematch/pkg/rulematch"
	"github.com/spf13/cobra"
)

func newFilterCmd(a *app) *cobra.Command {
	f := &matchFlags{}
	var invert bool
	cmd := &cobra.Command{
		Use:   "filter <grammar>",
		Short: "Copy the stdin lines accepted by rule 0 to stdout",
		Example: `  rulematch filter rules.txt < messages.txt
  rulematch filter rules.txt --invert < messages.txt`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options(cmd, f, args[0])
			if err != nil {
				return err
			}
			r, err := rulematch.Filter(opts, cmd.InOrStdin(), invert)
			if err != nil {
				return err
			}
			_, err = io.Copy(cmd.OutOrStdout(), r)
			return err
		},
	}
	cmd.Flags().StringVarP(&f.engine, "engine", "e", "", "Matching engine: backtrack or thompson")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject references to undefined rules")
	cmd.Flags().IntVar(&f.maxStates, "max-states", 0, "Reject grammars needing more states (0 = unlimited)")
	cmd.Flags().BoolVarP(&invert, "invert", "i", false, "Print rejected lines instead")
	return cmd
}

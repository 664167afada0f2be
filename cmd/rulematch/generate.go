package main

import (
	"fmt"

	"github.com/KromDaniel/rulematch/pkg/rulematch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newGenerateCmd(a *app) *cobra.Command {
	var opts rulematch.GenerateOptions
	cmd := &cobra.Command{
		Use:   "generate <input>",
		Short: "Generate a standalone Go matcher for a grammar",
		Example: `  rulematch generate input.txt --out message_rules.go --package rules
  rulematch generate input.txt --out rules.go --package rules --name Message`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.InputFile = args[0]
			if !cmd.Flags().Changed("strict") {
				opts.Strict = a.cfg.Strict
			}
			if !cmd.Flags().Changed("max-states") {
				opts.MaxStates = a.cfg.MaxStates
			}
			if err := rulematch.Generate(opts); err != nil {
				return err
			}
			a.logger.Info("generated matcher", zap.String("file", opts.OutputFile))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.OutputFile)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.OutputFile, "out", "o", "", "Output Go file")
	cmd.Flags().StringVarP(&opts.Package, "package", "p", "rules", "Package name of the generated file")
	cmd.Flags().StringVarP(&opts.Name, "name", "n", "", "Prefix of generated identifiers (default: from --out)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "Reject references to undefined rules")
	cmd.Flags().IntVar(&opts.MaxStates, "max-states", 0, "Reject grammars needing more states (0 = unlimited)")
	_ = cmd.MarkFlagRequired("out")
	return cmd
}

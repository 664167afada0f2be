package main

import (
	"context"
	"fmt"

	"github.com/KromDaniel/rulematch/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newWatchCmd(a *app) *cobra.Command {
	f := &matchFlags{}
	cmd := &cobra.Command{
		Use:   "watch <input>",
		Short: "Rerun match whenever the input file changes",
		Long: `watch matches the input once, then again after every save, until
interrupted. Grammar errors are reported without stopping the watch.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options(cmd, f, args[0])
			if err != nil {
				return err
			}
			rerun := func(context.Context) error {
				if err := runMatch(cmd, opts, f.show); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
				return nil
			}

			_ = rerun(cmd.Context())
			a.logger.Info("watching for changes", zap.String("file", opts.InputFile))
			return watch.New(opts.InputFile, 0, a.logger).Run(cmd.Context(), rerun)
		},
	}
	f.register(cmd)
	return cmd
}

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/KromDaniel/rulematch/pkg/rulematch"
	"github.com/spf13/cobra"
)

// matchFlags override the matching settings of the config file.
type matchFlags struct {
	engine      string
	workers     int
	strict      bool
	maxStates   int
	transitions string
	show        bool
}

func (f *matchFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.engine, "engine", "e", "", "Matching engine: backtrack or thompson")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Parallel matchers (0 = GOMAXPROCS)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject references to undefined rules")
	cmd.Flags().IntVar(&f.maxStates, "max-states", 0, "Reject grammars needing more states (0 = unlimited)")
	cmd.Flags().StringVarP(&f.transitions, "transitions", "t", "", "Write the transition dump to this file")
	cmd.Flags().BoolVar(&f.show, "show", false, "Print every matching candidate")
}

// options merges the config with explicitly set flags.
func (a *app) options(cmd *cobra.Command, f *matchFlags, input string) (rulematch.Options, error) {
	c := *a.cfg
	flags := cmd.Flags()
	if flags.Changed("engine") {
		c.Engine = f.engine
	}
	if flags.Changed("workers") {
		c.Workers = f.workers
	}
	if flags.Changed("strict") {
		c.Strict = f.strict
	}
	if flags.Changed("max-states") {
		c.MaxStates = f.maxStates
	}
	if flags.Changed("transitions") {
		c.TransitionsFile = f.transitions
	}
	if err := c.Validate(); err != nil {
		return rulematch.Options{}, err
	}

	return rulematch.Options{
		InputFile:       input,
		TransitionsFile: c.TransitionsFile,
		Engine:          c.Engine,
		Workers:         c.Workers,
		Strict:          c.Strict,
		MaxStates:       c.MaxStates,
		Logger:          a.logger,
	}, nil
}

func newMatchCmd(a *app) *cobra.Command {
	f := &matchFlags{}
	cmd := &cobra.Command{
		Use:   "match <input>",
		Short: "Count the candidates matched by rule 0",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options(cmd, f, args[0])
			if err != nil {
				return err
			}
			return runMatch(cmd, opts, f.show)
		},
	}
	f.register(cmd)
	return cmd
}

func runMatch(cmd *cobra.Command, opts rulematch.Options, show bool) error {
	res, err := rulematch.Run(cmd.Context(), opts)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if show {
		for i, ok := range res.Matches {
			if ok {
				fmt.Fprintln(out, res.Candidates[i])
			}
		}
	}
	fmt.Fprintf(out, "Matched %d of %d\n", res.Matched, res.Total)
	return nil
}

func newDumpCmd(a *app) *cobra.Command {
	f := &matchFlags{}
	cmd := &cobra.Command{
		Use:   "dump <input>",
		Short: "Print the compiled transitions as from, symbol, to",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.options(cmd, f, args[0])
			if err != nil {
				return err
			}
			_, nfa, err := rulematch.Load(opts)
			if err != nil {
				return err
			}
			return nfa.WriteTransitions(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Reject references to undefined rules")
	cmd.Flags().IntVar(&f.maxStates, "max-states", 0, "Reject grammars needing more states (0 = unlimited)")
	return cmd
}

func newAnalyzeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "analyze <input>",
		Short: "Report undefined rules, cycles and automaton size",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := rulematch.Analyze(args[0])
			if err != nil {
				return err
			}
			printAnalysis(cmd.OutOrStdout(), res)
			return nil
		},
	}
}

func printAnalysis(w io.Writer, res *rulematch.AnalysisResult) {
	fmt.Fprintf(w, "Rules: %d\n", res.Rules)
	fmt.Fprintf(w, "Undefined: %s\n", joinIDs(res.Undefined, ", "))
	fmt.Fprintf(w, "Reachable undefined: %s\n", joinIDs(res.Reachable, ", "))
	fmt.Fprintf(w, "Cycle: %s\n", joinIDs(res.CyclePath, " -> "))
	fmt.Fprintf(w, "States: %d\n", res.States)
	fmt.Fprintf(w, "Compilable: %t\n", res.Compilable)
	if res.Reason != "" {
		fmt.Fprintf(w, "Reason: %s\n", res.Reason)
	}
}

func joinIDs(ids []int, sep string) string {
	if len(ids) == 0 {
		return "none"
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, sep)
}

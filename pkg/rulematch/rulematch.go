// Package rulematch matches candidate strings against line-oriented rule
// grammars. A grammar is compiled into a nondeterministic finite automaton
// once, then every candidate is matched against it.
package rulematch

import (
	"context"
	"fmt"

	"github.com/KromDaniel/rulematch/internal/compiler"
	"github.com/KromDaniel/rulematch/internal/grammar"
	"go.uber.org/zap"
)

// Engines accepted by Options.Engine.
const (
	EngineBacktrack = compiler.EngineBacktrack
	EngineThompson  = compiler.EngineThompson
)

// Result is the outcome of matching every candidate of an input file.
// Matches[i] reports whether Candidates[i] matched.
type Result struct {
	compiler.Result
	Candidates []string
}

// Options configures a matching run.
type Options struct {
	// InputFile holds the grammar, a blank line, then one candidate per line
	InputFile string

	// TransitionsFile receives the transition dump when set
	TransitionsFile string

	// Engine is backtrack (default) or thompson
	Engine string

	// Workers bounds parallel matching; 0 uses GOMAXPROCS
	Workers int

	// Strict rejects references to undefined rules
	Strict bool

	// MaxStates rejects grammars whose automaton would be larger; 0 means unlimited
	MaxStates int

	// Logger receives progress and compiler analysis at debug level; nil disables logging
	Logger *zap.Logger
}

// Validate checks if the options are valid.
func (o Options) Validate() error {
	if o.InputFile == "" {
		return fmt.Errorf("input file cannot be empty")
	}
	switch o.Engine {
	case "", EngineBacktrack, EngineThompson:
	default:
		return fmt.Errorf("unknown engine %q", o.Engine)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if o.MaxStates < 0 {
		return fmt.Errorf("max states cannot be negative")
	}
	return nil
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// Load reads and compiles the grammar of an input file.
func Load(opts Options) (*grammar.Input, *compiler.Nfa, error) {
	log := opts.logger()

	in, err := grammar.ReadFile(opts.InputFile)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("loaded input",
		zap.String("file", opts.InputFile),
		zap.Int("rules", in.Table.Len()),
		zap.Int("candidates", len(in.Candidates)),
	)

	c := compiler.New(compiler.Config{
		Rules:     in.Table.Rules(),
		Strict:    opts.Strict,
		MaxStates: opts.MaxStates,
		Logger:    compiler.FromZap(opts.Logger),
	})
	nfa, err := c.Compile()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compile grammar: %w", err)
	}
	return in, nfa, nil
}

// Run loads the input file, optionally dumps the transitions, and matches
// every candidate.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	log := opts.logger()

	in, nfa, err := Load(opts)
	if err != nil {
		return nil, err
	}

	if opts.TransitionsFile != "" {
		if err := nfa.WriteTransitionsFile(opts.TransitionsFile); err != nil {
			return nil, err
		}
		log.Debug("wrote transitions",
			zap.String("file", opts.TransitionsFile),
			zap.Int("transitions", len(nfa.Transitions())),
		)
	}

	m, err := compiler.ParseEngine(nfa, opts.Engine)
	if err != nil {
		return nil, err
	}
	res, err := compiler.MatchAll(ctx, m, in.Candidates, opts.Workers)
	if err != nil {
		return nil, fmt.Errorf("matching interrupted: %w", err)
	}

	log.Info("matched candidates",
		zap.Int("matched", res.Matched),
		zap.Int("total", res.Total),
		zap.String("engine", engineName(opts.Engine)),
	)
	return &Result{Result: *res, Candidates: in.Candidates}, nil
}

func engineName(e string) string {
	if e == "" {
		return EngineBacktrack
	}
	return e
}

package compiler

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Matcher accepts or rejects a single candidate.
type Matcher interface {
	Match(input string) bool
}

// MatcherFunc adapts a function to Matcher.
type MatcherFunc func(input string) bool

// Match calls f(input).
func (f MatcherFunc) Match(input string) bool {
	return f(input)
}

// ParseEngine returns the matching engine of n selected by name. An empty
// name selects backtracking.
func ParseEngine(n *Nfa, name string) (Matcher, error) {
	switch name {
	case "", EngineBacktrack:
		return MatcherFunc(n.Match), nil
	case EngineThompson:
		return MatcherFunc(n.Simulate), nil
	}
	return nil, fmt.Errorf("unknown engine %q (valid: %s, %s)", name, EngineBacktrack, EngineThompson)
}

// Result summarizes a batch of candidates.
type Result struct {
	Matched int
	Total   int
	Matches []bool // Matches[i] is the result for the i-th candidate
}

// MatchAll runs m over every candidate using up to workers goroutines.
// workers <= 0 uses GOMAXPROCS.
func MatchAll(ctx context.Context, m Matcher, candidates []string, workers int) (*Result, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	res := &Result{
		Total:   len(candidates),
		Matches: make([]bool, len(candidates)),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, line := range candidates {
		if err := gctx.Err(); err != nil {
			break
		}
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res.Matches[i] = m.Match(line)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, ok := range res.Matches {
		if ok {
			res.Matched++
		}
	}
	return res, nil
}

// Package compiler builds nondeterministic finite automata from rule tables
// and matches strings against them.
package compiler

import (
	"errors"
	"fmt"

	"github.com/KromDaniel/rulematch/internal/grammar"
)

var (
	// ErrNoStartRule is returned when the rule table is empty or rule 0 is undefined.
	ErrNoStartRule = errors.New("grammar has no start rule")

	// ErrUndefinedRule is returned in strict mode for a reachable Void reference.
	ErrUndefinedRule = errors.New("reference to undefined rule")

	// ErrCyclicGrammar is returned when a rule reaches itself through references.
	ErrCyclicGrammar = errors.New("grammar contains a cycle")

	// ErrTooManyStates is returned when the automaton would exceed Config.MaxStates.
	ErrTooManyStates = errors.New("automaton exceeds state limit")
)

// Config holds the configuration for automaton construction.
type Config struct {
	Rules     []grammar.Rule
	Strict    bool    // Undefined references are errors instead of being skipped
	MaxStates int     // Upper bound on automaton states (0 = unlimited)
	Verbose   bool    // Enable verbose logging of analysis decisions
	Logger    *Logger // Overrides the logger built from Verbose
}

// Compiler turns a rule table into an Nfa.
type Compiler struct {
	config Config
	logger *Logger
	nfa    *Nfa
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	logger := config.Logger
	if logger == nil {
		logger = NewLogger(config.Verbose)
	}
	return &Compiler{
		config: config,
		logger: logger,
	}
}

// Compile is shorthand for New(Config{Rules: rules}).Compile().
func Compile(rules []grammar.Rule) (*Nfa, error) {
	return New(Config{Rules: rules}).Compile()
}

// Compile builds the automaton from the start rule.
func (c *Compiler) Compile() (*Nfa, error) {
	rules := c.config.Rules
	if len(rules) == 0 || rules[StartRule].Kind == grammar.Void {
		return nil, ErrNoStartRule
	}

	c.logger.Section("Grammar Analysis")
	c.logger.Log("Rules: %d", len(rules))

	if err := checkRefs(rules); err != nil {
		return nil, err
	}

	if path := findCycle(rules, StartRule); path != nil {
		return nil, fmt.Errorf("%w: %s", ErrCyclicGrammar, formatPath(path))
	}

	undefined := reachableUndefined(rules, StartRule)
	c.logger.Log("Reachable undefined rules: %v", undefined)
	if len(undefined) > 0 && c.config.Strict {
		return nil, fmt.Errorf("%w: %d", ErrUndefinedRule, undefined[0])
	}

	states := estimateStates(rules, StartRule)
	c.logger.Log("Estimated states: %d", states)
	if c.config.MaxStates > 0 && states > c.config.MaxStates {
		return nil, fmt.Errorf("%w: need %d, limit %d", ErrTooManyStates, states, c.config.MaxStates)
	}

	c.logger.Section("Construction")
	c.nfa = newNfa()
	end := c.addStates(StartRule, StartState)
	c.nfa.addTransition(end, Epsilon, AcceptState)
	c.nfa.finalize()

	c.logger.Log("States: %d", c.nfa.stateCount)
	c.logger.Log("Transitions: %d", len(c.nfa.transitions))
	return c.nfa, nil
}

// addStates adds the states for rule id entered from prev and returns the
// state reached after the rule is traversed.
func (c *Compiler) addStates(id int, prev State) State {
	rule := c.config.Rules[id]
	switch rule.Kind {
	case grammar.Terminal:
		next := c.nfa.newState()
		c.nfa.addTransition(prev, rule.Symbol, next)
		return next
	case grammar.Sequence:
		return c.addSequence(rule.Seq, prev)
	case grammar.Choice:
		// Both branches leave prev, which is where the automaton becomes
		// nondeterministic. They rejoin at a fresh state.
		end1 := c.addSequence(rule.Seq, prev)
		end2 := c.addSequence(rule.Alt, prev)
		join := c.nfa.newState()
		c.nfa.addTransition(end1, Epsilon, join)
		c.nfa.addTransition(end2, Epsilon, join)
		return join
	}
	// Void adds nothing; traversal continues from prev.
	return prev
}

func (c *Compiler) addSequence(ids []int, prev State) State {
	last := prev
	for _, id := range ids {
		last = c.addStates(id, last)
	}
	return last
}

package compiler

import (
	"bufio"
	"fmt"
	"io"
	"cmp"
	"os"
	"slices"
	"sync"
)

// State identifies a node of the automaton.
type State int

// Transition is an edge of the automaton. Symbol is Epsilon for edges that
// consume no input.
type Transition struct {
	From   State
	Symbol rune
	To     State
}

// IsEpsilon reports whether the transition consumes no input.
func (t Transition) IsEpsilon() bool {
	return t.Symbol == Epsilon
}

// span is a half-open range into Nfa.transitions.
type span struct {
	begin, end int
}

// Nfa is a compiled automaton. It is immutable after Compile returns and safe
// for concurrent use.
type Nfa struct {
	stateCount  int
	transitions []Transition
	ranges      []span

	closuresOnce sync.Once
	closures     [][]State

	poolOnce sync.Once
	sets     *setPool
}

func newNfa() *Nfa {
	return &Nfa{stateCount: reservedStates}
}

func (n *Nfa) newState() State {
	s := State(n.stateCount)
	n.stateCount++
	return s
}

func (n *Nfa) addTransition(from State, symbol rune, to State) {
	n.transitions = append(n.transitions, Transition{From: from, Symbol: symbol, To: to})
}

// finalize sorts the transitions by from-state and records each state's range.
func (n *Nfa) finalize() {
	slices.SortFunc(n.transitions, func(a, b Transition) int {
		if c := cmp.Compare(a.From, b.From); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Symbol, b.Symbol); c != 0 {
			return c
		}
		return cmp.Compare(a.To, b.To)
	})

	// The relation is a set; both arms of a choice over undefined rules can
	// produce the same join edge.
	uniq := n.transitions[:0]
	for _, t := range n.transitions {
		if len(uniq) == 0 || t != uniq[len(uniq)-1] {
			uniq = append(uniq, t)
		}
	}
	n.transitions = uniq

	n.ranges = make([]span, n.stateCount)
	for i := 0; i < len(n.transitions); {
		from := n.transitions[i].From
		j := i + 1
		for j < len(n.transitions) && n.transitions[j].From == from {
			j++
		}
		n.ranges[from] = span{begin: i, end: j}
		i = j
	}
}

// StateCount returns the number of states, including the two reserved ones.
func (n *Nfa) StateCount() int {
	return n.stateCount
}

// Transitions returns every transition grouped by from-state. The slice must
// not be modified.
func (n *Nfa) Transitions() []Transition {
	return n.transitions
}

// From returns the outgoing transitions of s.
func (n *Nfa) From(s State) []Transition {
	if int(s) < 0 || int(s) >= len(n.ranges) {
		return nil
	}
	r := n.ranges[s]
	return n.transitions[r.begin:r.end]
}

// WriteTransitions writes one `<from>, <symbol>, <to>` line per transition.
// Epsilon transitions have a blank symbol.
func (n *Nfa) WriteTransitions(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, t := range n.transitions {
		sym := ""
		if !t.IsEpsilon() {
			sym = string(t.Symbol)
		}
		if _, err := fmt.Fprintf(bw, "%d, %s, %d\n", t.From, sym, t.To); err != nil {
			return fmt.Errorf("failed to write transition: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write transitions: %w", err)
	}
	return nil
}

// WriteTransitionsFile writes the transitions dump to path.
func (n *Nfa) WriteTransitionsFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create transitions file: %w", err)
	}
	if err := n.WriteTransitions(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

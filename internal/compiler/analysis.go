package compiler

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/KromDaniel/rulematch/internal/grammar"
)

// checkRefs verifies that every reference points inside the table.
func checkRefs(rules []grammar.Rule) error {
	for id, r := range rules {
		for _, ref := range r.Refs() {
			if ref < 0 || ref >= len(rules) {
				return fmt.Errorf("%w: rule %d references %d outside the table", ErrUndefinedRule, id, ref)
			}
		}
	}
	return nil
}

// findCycle returns a rule path start -> ... -> r -> r' where r' already
// appears earlier on the path, or nil if the rules reachable from start are
// acyclic.
func findCycle(rules []grammar.Rule, start int) []int {
	const (
		unvisited = iota
		onPath
		done
	)
	color := make([]uint8, len(rules))
	var path []int

	var visit func(id int) []int
	visit = func(id int) []int {
		path = append(path, id)
		color[id] = onPath
		for _, ref := range rules[id].Refs() {
			switch color[ref] {
			case onPath:
				return append(path, ref)
			case unvisited:
				if cycle := visit(ref); cycle != nil {
					return cycle
				}
			}
		}
		color[id] = done
		path = path[:len(path)-1]
		return nil
	}

	return visit(start)
}

// reachableUndefined returns the Void rule ids reachable from start, in
// increasing order.
func reachableUndefined(rules []grammar.Rule, start int) []int {
	seen := make([]bool, len(rules))
	stack := []int{start}
	seen[start] = true
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, ref := range rules[id].Refs() {
			if !seen[ref] {
				seen[ref] = true
				stack = append(stack, ref)
			}
		}
	}

	var undefined []int
	for id, ok := range seen {
		if ok && rules[id].Kind == grammar.Void {
			undefined = append(undefined, id)
		}
	}
	return undefined
}

// estimateStates returns the number of states Compile allocates for the
// rules reachable from start, saturating at math.MaxInt32. The rules must be
// acyclic.
func estimateStates(rules []grammar.Rule, start int) int {
	const limit = math.MaxInt32
	memo := make([]int, len(rules))
	for i := range memo {
		memo[i] = -1
	}
	add := func(a, b int) int {
		if a > limit-b {
			return limit
		}
		return a + b
	}

	var size func(id int) int
	size = func(id int) int {
		if memo[id] >= 0 {
			return memo[id]
		}
		r := rules[id]
		n := 0
		switch r.Kind {
		case grammar.Terminal:
			n = 1
		case grammar.Sequence:
			for _, ref := range r.Seq {
				n = add(n, size(ref))
			}
		case grammar.Choice:
			n = 1
			for _, ref := range r.Refs() {
				n = add(n, size(ref))
			}
		}
		memo[id] = n
		return n
	}

	return add(reservedStates, size(start))
}

func formatPath(path []int) string {
	parts := make([]string, len(path))
	for i, id := range path {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " -> ")
}

// computeEpsilonClosures returns, for each state, the sorted set of states
// reachable through epsilon transitions alone, including the state itself.
func computeEpsilonClosures(n *Nfa) [][]State {
	closures := make([][]State, n.stateCount)
	mark := make([]int, n.stateCount)
	for s := range closures {
		gen := s + 1
		stack := []State{State(s)}
		mark[s] = gen
		var closure []State
		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			closure = append(closure, cur)
			for _, t := range n.From(cur) {
				if t.IsEpsilon() && mark[t.To] != gen {
					mark[t.To] = gen
					stack = append(stack, t.To)
				}
			}
		}
		slices.Sort(closure)
		closures[s] = closure
	}
	return closures
}

// Closures returns the epsilon closure of every state, computed on first use.
func (n *Nfa) Closures() [][]State {
	n.closuresOnce.Do(func() {
		n.closures = computeEpsilonClosures(n)
	})
	return n.closures
}

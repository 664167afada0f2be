package compiler

// Simulate reports whether the whole input is accepted by tracking every
// active state at once. Each epsilon closure is computed once per automaton,
// so the cost is O(len(input) * states) regardless of how ambiguous the
// grammar is. Acceptance is identical to Match.
func (n *Nfa) Simulate(input string) bool {
	closures := n.Closures()
	n.poolOnce.Do(func() {
		n.sets = newSetPool(n.stateCount)
	})
	sets := n.sets.get()
	defer n.sets.put(sets)

	current, next := sets[0], sets[1]
	for _, s := range closures[StartState] {
		current.add(s)
	}

	for _, r := range input {
		next.clear()
		for _, s := range current.dense {
			for _, t := range n.From(s) {
				if t.IsEpsilon() || t.Symbol != r {
					continue
				}
				for _, c := range closures[t.To] {
					next.add(c)
				}
			}
		}
		if len(next.dense) == 0 {
			return false
		}
		current, next = next, current
	}

	return current.has(AcceptState)
}

package compiler

// Match reports whether the whole input is accepted, by depth-first search
// over the transitions. There is no memoization; the grammars this automaton
// is built from are acyclic, so every path is finite.
func (n *Nfa) Match(input string) bool {
	return n.matchFrom(StartState, []rune(input))
}

// MatchBytes is Match for UTF-8 encoded bytes.
func (n *Nfa) MatchBytes(input []byte) bool {
	return n.matchFrom(StartState, []rune(string(input)))
}

func (n *Nfa) matchFrom(s State, input []rune) bool {
	if len(input) == 0 {
		return n.reachesAccept(s)
	}
	for _, t := range n.From(s) {
		if t.IsEpsilon() {
			if n.matchFrom(t.To, input) {
				return true
			}
		} else if t.Symbol == input[0] && n.matchFrom(t.To, input[1:]) {
			return true
		}
	}
	return false
}

// reachesAccept reports whether the accept state is reachable from s using
// epsilon transitions only.
func (n *Nfa) reachesAccept(s State) bool {
	if s == AcceptState {
		return true
	}
	for _, t := range n.From(s) {
		if t.IsEpsilon() && n.reachesAccept(t.To) {
			return true
		}
	}
	return false
}

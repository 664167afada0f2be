package compiler

// Reserved states. Every compiled automaton has at least these two.
const (
	// StartState is where matching begins.
	StartState State = 0

	// AcceptState is reached only by the epsilon link from the start rule's exit.
	AcceptState State = 1

	// reservedStates is the number of states allocated before compilation.
	reservedStates = 2
)

// Epsilon is the symbol of a transition that consumes no input.
// Terminals are single runes parsed from a quoted literal, so 0 never
// collides with a real terminal.
const Epsilon rune = 0

// StartRule is the rule the automaton is built from.
const StartRule = 0

// Engine names accepted by ParseEngine.
const (
	EngineBacktrack = "backtrack"
	EngineThompson  = "thompson"
)

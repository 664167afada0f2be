package compiler

import (
	"strings"
	"testing"

	"github.com/KromDaniel/rulematch/internal/grammar"
)

func FuzzCompileAndMatch(f *testing.F) {
	f.Add("0: 1 2\n1: \"a\"\n2: \"b\"", "ab")
	f.Add("0: 1 | 2\n1: \"a\"\n2: \"b\"", "b")
	f.Add(strings.Join(sampleGrammar, "\n"), "ababbb")
	f.Add("0: 1 3\n1: \"x\"", "x")
	f.Add("0: 0", "")

	f.Fuzz(func(t *testing.T, src, input string) {
		if len(src) > 512 || len(input) > 32 {
			return
		}
		// Ids up to grammar.MaxRuleID still allocate large tables.
		if hasLongNumber(src, 3) {
			return
		}
		tbl, err := grammar.Parse(strings.Split(src, "\n"))
		if err != nil {
			return // Invalid grammar is acceptable.
		}
		nfa, err := New(Config{Rules: tbl.Rules(), MaxStates: 256}).Compile()
		if err != nil {
			return
		}

		if got, want := nfa.Match(input), nfa.Simulate(input); got != want {
			t.Errorf("Match(%q) = %v, Simulate(%q) = %v", input, got, input, want)
		}
	})
}

func hasLongNumber(s string, max int) bool {
	run := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			run++
			if run > max {
				return true
			}
		} else {
			run = 0
		}
	}
	return false
}

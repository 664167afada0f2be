package compiler

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/KromDaniel/rulematch/internal/grammar"
)

func mustRules(t testing.TB, lines ...string) []grammar.Rule {
	t.Helper()
	tbl, err := grammar.Parse(lines)
	if err != nil {
		t.Fatalf("failed to parse grammar: %v", err)
	}
	return tbl.Rules()
}

func mustCompile(t testing.TB, lines ...string) *Nfa {
	t.Helper()
	nfa, err := Compile(mustRules(t, lines...))
	if err != nil {
		t.Fatalf("failed to compile grammar: %v", err)
	}
	return nfa
}

func TestCompileStateCounts(t *testing.T) {
	tests := []struct {
		name            string
		grammar         []string
		wantStates      int
		wantTransitions int
	}{
		{
			name:            "terminal",
			grammar:         []string{`0: "a"`},
			wantStates:      3,
			wantTransitions: 2,
		},
		{
			name:            "sequence",
			grammar:         []string{"0: 1 2", `1: "a"`, `2: "b"`},
			wantStates:      4,
			wantTransitions: 3,
		},
		{
			// two terminal states, one join state
			name:            "choice",
			grammar:         []string{"0: 1 | 2", `1: "a"`, `2: "b"`},
			wantStates:      5,
			wantTransitions: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nfa := mustCompile(t, tt.grammar...)
			if nfa.StateCount() != tt.wantStates {
				t.Errorf("StateCount() = %d, want %d", nfa.StateCount(), tt.wantStates)
			}
			if len(nfa.Transitions()) != tt.wantTransitions {
				t.Errorf("len(Transitions()) = %d, want %d", len(nfa.Transitions()), tt.wantTransitions)
			}
		})
	}
}

func TestTransitionsGroupedByState(t *testing.T) {
	nfa := mustCompile(t,
		"0: 4 1 5",
		"1: 2 3 | 3 2",
		"2: 4 4 | 5 5",
		"3: 4 5 | 5 4",
		`4: "a"`,
		`5: "b"`,
	)

	all := nfa.Transitions()
	for i := 1; i < len(all); i++ {
		if all[i].From < all[i-1].From {
			t.Fatalf("transition %d (%v) sorts before %d (%v)", i, all[i], i-1, all[i-1])
		}
	}

	total := 0
	for s := 0; s < nfa.StateCount(); s++ {
		for _, tr := range nfa.From(State(s)) {
			if tr.From != State(s) {
				t.Errorf("From(%d) returned %v", s, tr)
			}
			total++
		}
	}
	if total != len(all) {
		t.Errorf("From() covered %d transitions, want %d", total, len(all))
	}

	if got := nfa.From(AcceptState); len(got) != 0 {
		t.Errorf("accept state has outgoing transitions: %v", got)
	}
	if got := nfa.From(State(nfa.StateCount() + 10)); got != nil {
		t.Errorf("From(out of range) = %v, want nil", got)
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		name    string
		rules   []grammar.Rule
		strict  bool
		wantErr error
	}{
		{
			name:    "empty table",
			rules:   nil,
			wantErr: ErrNoStartRule,
		},
		{
			name:    "start rule undefined",
			rules:   mustRules(t, `1: "a"`),
			wantErr: ErrNoStartRule,
		},
		{
			name:    "direct cycle",
			rules:   mustRules(t, "0: 8", `42: "a"`, "8: 42 | 42 8"),
			wantErr: ErrCyclicGrammar,
		},
		{
			name:    "indirect cycle",
			rules:   mustRules(t, "0: 1", "1: 2", `2: 0 | 3`, `3: "a"`),
			wantErr: ErrCyclicGrammar,
		},
		{
			name:    "strict undefined",
			rules:   mustRules(t, "0: 1 2", `1: "a"`),
			strict:  true,
			wantErr: ErrUndefinedRule,
		},
		{
			name:    "reference outside table",
			rules:   []grammar.Rule{{Kind: grammar.Sequence, Seq: []int{7}}},
			wantErr: ErrUndefinedRule,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(Config{Rules: tt.rules, Strict: tt.strict}).Compile()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Compile() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCompileStateLimit(t *testing.T) {
	// Each level doubles the size of the level below it.
	rules := mustRules(t, "0: 1 1", "1: 2 2", "2: 3 3", "3: 4 4", `4: "a"`)

	if _, err := New(Config{Rules: rules, MaxStates: 10}).Compile(); !errors.Is(err, ErrTooManyStates) {
		t.Errorf("Compile() error = %v, want %v", err, ErrTooManyStates)
	}

	nfa, err := New(Config{Rules: rules, MaxStates: 18}).Compile()
	if err != nil {
		t.Fatalf("Compile() at exact limit: %v", err)
	}
	if nfa.StateCount() != 18 {
		t.Errorf("StateCount() = %d, want 18", nfa.StateCount())
	}
	if !nfa.Match(strings.Repeat("a", 16)) {
		t.Error("sixteen a's rejected")
	}
}

func TestCycleErrorNamesPath(t *testing.T) {
	_, err := Compile(mustRules(t, "0: 8", `42: "a"`, "8: 42 | 42 8"))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "0 -> 8 -> 8") {
		t.Errorf("error %q does not name the cycle", err)
	}
}

func TestCompileTolerantUndefined(t *testing.T) {
	// Rule 2 is referenced but never defined. It adds no transitions, so
	// traversal continues past it.
	nfa := mustCompile(t, "0: 1 2", `1: "a"`)

	if !nfa.Match("a") {
		t.Error(`Match("a") = false, want true`)
	}
	if nfa.Match("ab") {
		t.Error(`Match("ab") = true, want false`)
	}
}

func TestCompileDeterministic(t *testing.T) {
	grammarLines := []string{"0: 1 | 2 3", `1: "a"`, `2: "b"`, "3: 1 | 2"}
	first := mustCompile(t, grammarLines...)
	second := mustCompile(t, grammarLines...)

	var a, b bytes.Buffer
	if err := first.WriteTransitions(&a); err != nil {
		t.Fatal(err)
	}
	if err := second.WriteTransitions(&b); err != nil {
		t.Fatal(err)
	}
	if a.String() != b.String() {
		t.Errorf("transition dumps differ:\n%s\n---\n%s", a.String(), b.String())
	}
}

func TestWriteTransitions(t *testing.T) {
	nfa := mustCompile(t, "0: 1 2", `1: "a"`, `2: "b"`)

	var buf bytes.Buffer
	if err := nfa.WriteTransitions(&buf); err != nil {
		t.Fatalf("WriteTransitions: %v", err)
	}

	want := "0, a, 2\n2, b, 3\n3, , 1\n"
	if buf.String() != want {
		t.Errorf("WriteTransitions() = %q, want %q", buf.String(), want)
	}
}

func TestVerboseLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(true)
	logger.SetOutput(&buf)

	_, err := New(Config{Rules: mustRules(t, `0: "a"`), Logger: logger}).Compile()
	if err != nil {
		t.Fatalf("Compile: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"=== Construction ===", "States: 3", "Transitions: 2"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestQuietLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(false)
	logger.SetOutput(&buf)

	if _, err := New(Config{Rules: mustRules(t, `0: "a"`), Logger: logger}).Compile(); err != nil {
		t.Fatalf("Compile: %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("disabled logger wrote %q", buf.String())
	}
}

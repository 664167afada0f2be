package compiler

import (
	"slices"
	"testing"

	"github.com/KromDaniel/rulematch/internal/grammar"
)

func TestFindCycle(t *testing.T) {
	tests := []struct {
		name    string
		grammar []string
		want    []int
	}{
		{"acyclic", sampleGrammar, nil},
		{"shared rule is not a cycle", []string{"0: 1 1", `1: "a"`}, nil},
		{"self reference", []string{"0: 1", `1: "a" `, "2: 2"}, nil},
		{"reachable self reference", []string{"0: 0"}, []int{0, 0}},
		{"through choice", []string{"0: 1", "1: 2 | 3", `2: "a"`, "3: 1"}, []int{0, 1, 3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := findCycle(mustRules(t, tt.grammar...), StartRule)
			if !slices.Equal(got, tt.want) {
				t.Errorf("findCycle() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReachableUndefined(t *testing.T) {
	rules := mustRules(t,
		"0: 1 3",
		`1: "a" `,
		"2: 5",
		"3: 4 | 1",
	)

	// 5 is undefined but only reachable from the unused rule 2.
	got := reachableUndefined(rules, StartRule)
	if !slices.Equal(got, []int{4}) {
		t.Errorf("reachableUndefined() = %v, want [4]", got)
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name           string
		grammar        []string
		wantUndefined  []int
		wantReachable  []int
		wantCycle      bool
		wantStates     int
		wantCompilable bool
	}{
		{
			name:           "sample",
			grammar:        sampleGrammar,
			wantStates:     25, // 2 reserved, 2 outer terminals, 21 for rule 1
			wantCompilable: true,
		},
		{
			name:           "undefined",
			grammar:        []string{"0: 1 3", `1: "a"`},
			wantUndefined:  []int{2, 3},
			wantReachable:  []int{3},
			wantStates:     3,
			wantCompilable: true,
		},
		{
			name:      "cyclic",
			grammar:   []string{"0: 1", "1: 0"},
			wantCycle: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Analyze(mustRules(t, tt.grammar...))
			if !slices.Equal(res.Undefined, tt.wantUndefined) {
				t.Errorf("Undefined = %v, want %v", res.Undefined, tt.wantUndefined)
			}
			if !slices.Equal(res.Reachable, tt.wantReachable) {
				t.Errorf("Reachable = %v, want %v", res.Reachable, tt.wantReachable)
			}
			if (res.CyclePath != nil) != tt.wantCycle {
				t.Errorf("CyclePath = %v, want cycle %v", res.CyclePath, tt.wantCycle)
			}
			if res.States != tt.wantStates {
				t.Errorf("States = %d, want %d", res.States, tt.wantStates)
			}
			if res.Compilable != tt.wantCompilable {
				t.Errorf("Compilable = %v, want %v", res.Compilable, tt.wantCompilable)
			}
		})
	}
}

func TestAnalyzeReason(t *testing.T) {
	// Hand-built tables can reference ids that Parse would have grown into.
	outside := []grammar.Rule{{Kind: grammar.Sequence, Seq: []int{7}}}
	res := Analyze(outside)
	if res.Compilable {
		t.Fatal("Compilable = true for a reference outside the table")
	}
	_, err := Compile(outside)
	if err == nil || res.Reason != err.Error() {
		t.Errorf("Reason = %q, want Compile error %v", res.Reason, err)
	}

	cyclic := mustRules(t, "0: 8", "8: 42 | 42 8", `42: "a"`)
	res = Analyze(cyclic)
	_, err = Compile(cyclic)
	if err == nil || res.Reason != err.Error() {
		t.Errorf("Reason = %q, want Compile error %v", res.Reason, err)
	}

	if res := Analyze(nil); res.Reason == "" {
		t.Error("empty table has no reason")
	}
	if res := Analyze(mustRules(t, sampleGrammar...)); res.Reason != "" {
		t.Errorf("Reason = %q for a compilable grammar", res.Reason)
	}
}

func TestEstimateMatchesCompile(t *testing.T) {
	rules := mustRules(t, sampleGrammar...)
	nfa := mustCompile(t, sampleGrammar...)
	if got := estimateStates(rules, StartRule); got != nfa.StateCount() {
		t.Errorf("estimateStates() = %d, StateCount() = %d", got, nfa.StateCount())
	}
}

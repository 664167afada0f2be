package compiler

import (
	"fmt"

	"github.com/KromDaniel/rulematch/internal/grammar"
)

// AnalysisResult describes a rule table without building its automaton.
type AnalysisResult struct {
	Rules      int   // Table slots, including undefined ones
	Undefined  []int // Ids that are never defined
	Reachable  []int // Undefined ids reachable from the start rule
	CyclePath  []int // Rule path of the first cycle found, nil if acyclic
	States     int   // States Compile would allocate, 0 if cyclic
	Compilable bool
	Reason     string // Why Compile would fail, empty if Compilable
}

// Analyze inspects rules the way Compile does and reports what it finds.
func Analyze(rules []grammar.Rule) *AnalysisResult {
	res := &AnalysisResult{Rules: len(rules)}
	for id, r := range rules {
		if r.Kind == grammar.Void {
			res.Undefined = append(res.Undefined, id)
		}
	}
	if len(rules) == 0 || rules[StartRule].Kind == grammar.Void {
		res.Reason = ErrNoStartRule.Error()
		return res
	}
	if err := checkRefs(rules); err != nil {
		res.Reason = err.Error()
		return res
	}

	res.Reachable = reachableUndefined(rules, StartRule)
	res.CyclePath = findCycle(rules, StartRule)
	if res.CyclePath != nil {
		res.Reason = fmt.Sprintf("%v: %s", ErrCyclicGrammar, formatPath(res.CyclePath))
		return res
	}
	res.States = estimateStates(rules, StartRule)
	res.Compilable = true
	return res
}

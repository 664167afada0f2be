package rulematch

import (
	"github.com/KromDaniel/rulematch/internal/compiler"
	"github.com/KromDaniel/rulematch/internal/grammar"
)

// AnalysisResult describes a grammar without compiling it.
type AnalysisResult = compiler.AnalysisResult

// Analyze reads the grammar of an input file and reports undefined rules,
// cycles and the size of the automaton it would compile to.
//
// Example:
//
//	res, err := rulematch.Analyze("input.txt")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(res.Reachable) // undefined rules the start rule depends on
func Analyze(inputFile string) (*AnalysisResult, error) {
	in, err := grammar.ReadFile(inputFile)
	if err != nil {
		return nil, err
	}
	return compiler.Analyze(in.Table.Rules()), nil
}

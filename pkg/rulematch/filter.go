package rulematch

import (
	"io"

	"github.com/KromDaniel/rulematch/internal/compiler"
	"github.com/KromDaniel/rulematch/internal/stream"
)

// Filter compiles the grammar of opts.InputFile and returns a reader over
// the lines of r accepted by rule 0, or rejected when invert is set.
// Candidate lines in the input file itself are ignored.
//
// Example:
//
//	r, err := rulematch.Filter(rulematch.Options{InputFile: "rules.txt"}, os.Stdin, false)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	io.Copy(os.Stdout, r)
func Filter(opts Options, r io.Reader, invert bool) (io.Reader, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	_, nfa, err := Load(opts)
	if err != nil {
		return nil, err
	}
	m, err := compiler.ParseEngine(nfa, opts.Engine)
	if err != nil {
		return nil, err
	}
	return stream.Filter(r, m, invert), nil
}

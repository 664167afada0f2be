package grammar

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Input is a parsed input file: the grammar followed by candidate lines.
type Input struct {
	Table      *Table
	Candidates []string
}

// ReadInput reads grammar lines up to the first blank line and treats every
// non-blank line after it as a candidate.
func ReadInput(r io.Reader) (*Input, error) {
	in := &Input{Table: NewTable()}
	inGrammar := true
	lineNo := 0

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSuffix(scanner.Text(), "\r")
		switch {
		case inGrammar && line == "":
			inGrammar = false
		case inGrammar:
			if err := in.Table.add(lineNo, line); err != nil {
				return nil, err
			}
		case line == "":
		default:
			in.Candidates = append(in.Candidates, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return in, nil
}

// ReadFile opens path and reads it with ReadInput.
func ReadFile(path string) (*Input, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input: %w", err)
	}
	defer f.Close()

	return ReadInput(f)
}

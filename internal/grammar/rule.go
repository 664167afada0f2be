// Package grammar parses line-oriented rule grammars into an indexed rule table.
package grammar

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Kind identifies the shape of a rule.
type Kind uint8

const (
	// Void is an id that was referenced or skipped but never defined.
	Void Kind = iota
	// Terminal consumes a single symbol.
	Terminal
	// Sequence requires each referenced rule in order.
	Sequence
	// Choice allows either of two sequences.
	Choice
)

func (k Kind) String() string {
	switch k {
	case Void:
		return "void"
	case Terminal:
		return "terminal"
	case Sequence:
		return "sequence"
	case Choice:
		return "choice"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Rule is one entry of the rule table. Only the fields matching Kind are set:
// Symbol for Terminal, Seq for Sequence, Seq and Alt for Choice.
type Rule struct {
	Kind   Kind
	Symbol rune
	Seq    []int
	Alt    []int
}

// String renders the rule body in input syntax.
func (r Rule) String() string {
	switch r.Kind {
	case Terminal:
		return `"` + string(r.Symbol) + `"`
	case Sequence:
		return joinIDs(r.Seq)
	case Choice:
		return joinIDs(r.Seq) + " | " + joinIDs(r.Alt)
	}
	return ""
}

// Refs returns every rule id the rule references, in order of appearance.
func (r Rule) Refs() []int {
	switch r.Kind {
	case Sequence:
		return r.Seq
	case Choice:
		refs := make([]int, 0, len(r.Seq)+len(r.Alt))
		refs = append(refs, r.Seq...)
		return append(refs, r.Alt...)
	}
	return nil
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, " ")
}

// ParseBody parses the part of a rule line after the colon.
func ParseBody(body string) (Rule, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return Rule{}, fmt.Errorf("empty rule body")
	}

	if body[0] == '"' {
		return parseTerminal(body)
	}

	if i := strings.IndexByte(body, '|'); i >= 0 {
		if strings.IndexByte(body[i+1:], '|') >= 0 {
			return Rule{}, fmt.Errorf("choice has more than two alternatives")
		}
		left, err := parseSequence(body[:i])
		if err != nil {
			return Rule{}, fmt.Errorf("left alternative: %w", err)
		}
		right, err := parseSequence(body[i+1:])
		if err != nil {
			return Rule{}, fmt.Errorf("right alternative: %w", err)
		}
		return Rule{Kind: Choice, Seq: left, Alt: right}, nil
	}

	seq, err := parseSequence(body)
	if err != nil {
		return Rule{}, err
	}
	return Rule{Kind: Sequence, Seq: seq}, nil
}

func parseTerminal(body string) (Rule, error) {
	if len(body) < 2 || body[len(body)-1] != '"' {
		return Rule{}, fmt.Errorf("unterminated terminal %s", body)
	}
	inner := []rune(body[1 : len(body)-1])
	if len(inner) != 1 {
		return Rule{}, fmt.Errorf("terminal %s must be exactly one character", body)
	}
	if inner[0] == '"' || unicode.IsSpace(inner[0]) || unicode.IsControl(inner[0]) {
		return Rule{}, fmt.Errorf("unrecognized terminal %s", body)
	}
	return Rule{Kind: Terminal, Symbol: inner[0]}, nil
}

func parseSequence(s string) ([]int, error) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty sequence")
	}
	ids := make([]int, len(fields))
	for i, f := range fields {
		id, err := strconv.Atoi(f)
		if err != nil || id < 0 {
			return nil, fmt.Errorf("invalid rule reference %q", f)
		}
		ids[i] = id
	}
	return ids, nil
}

package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxRuleID bounds rule ids so that a single line cannot allocate an
// arbitrarily large table.
const MaxRuleID = 1 << 20

// Table is a rule list indexed by rule id.
type Table struct {
	rules   []Rule
	defined []bool
}

// NewTable creates an empty rule table.
func NewTable() *Table {
	return &Table{}
}

// Add parses a `<id>: <body>` line and stores the rule under its id.
// The table grows as needed; skipped ids are left as Void.
func (t *Table) Add(line string) error {
	return t.add(0, line)
}

func (t *Table) add(lineNo int, line string) error {
	trimmed := strings.TrimSpace(line)
	fail := func(reason error) error {
		return &ParseError{Line: lineNo, Text: trimmed, Reason: reason}
	}

	i := strings.IndexByte(trimmed, ':')
	if i < 0 {
		return fail(fmt.Errorf("missing colon"))
	}
	id, err := strconv.Atoi(strings.TrimSpace(trimmed[:i]))
	if err != nil || id < 0 {
		return fail(fmt.Errorf("invalid rule id %q", trimmed[:i]))
	}

	rule, err := ParseBody(trimmed[i+1:])
	if err != nil {
		return fail(err)
	}

	if id > MaxRuleID {
		return fail(fmt.Errorf("rule id %d exceeds %d", id, MaxRuleID))
	}
	for _, ref := range rule.Refs() {
		if ref > MaxRuleID {
			return fail(fmt.Errorf("reference %d exceeds %d", ref, MaxRuleID))
		}
	}

	if id < len(t.defined) && t.defined[id] {
		return fail(fmt.Errorf("rule %d defined twice", id))
	}
	t.grow(id)
	for _, ref := range rule.Refs() {
		t.grow(ref)
	}
	t.rules[id] = rule
	t.defined[id] = true
	return nil
}

// grow resizes the table so that id is a valid index.
func (t *Table) grow(id int) {
	for len(t.rules) <= id {
		t.rules = append(t.rules, Rule{Kind: Void})
		t.defined = append(t.defined, false)
	}
}

// Rules returns the rule list. The slice must not be modified.
func (t *Table) Rules() []Rule {
	return t.rules
}

// Len returns the number of slots in the table, including Void ones.
func (t *Table) Len() int {
	return len(t.rules)
}

// Undefined returns the ids that are still Void.
func (t *Table) Undefined() []int {
	var ids []int
	for id, r := range t.rules {
		if r.Kind == Void {
			ids = append(ids, id)
		}
	}
	return ids
}

// String renders the defined rules in input syntax, one per line.
func (t *Table) String() string {
	var b strings.Builder
	for id, r := range t.rules {
		if r.Kind == Void {
			continue
		}
		fmt.Fprintf(&b, "%d: %s\n", id, r)
	}
	return b.String()
}

// Parse builds a table from grammar lines. Blank lines are skipped.
func Parse(lines []string) (*Table, error) {
	t := NewTable()
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := t.add(i+1, line); err != nil {
			return nil, err
		}
	}
	return t, nil
}

package rulematch

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/KromDaniel/rulematch/internal/codegen"
	"github.com/KromDaniel/rulematch/internal/compiler"
	"github.com/KromDaniel/rulematch/internal/grammar"
)

// GenerateOptions configures Go code generation for a grammar.
type GenerateOptions struct {
	// InputFile holds the grammar; candidate lines after it are ignored
	InputFile string

	// OutputFile is the path where generated code will be written
	OutputFile string

	// Package is the Go package name for the generated code
	Package string

	// Name is the prefix for generated function names (e.g., "Message" generates "MessageMatchString").
	// Defaults to the output file name in title case.
	Name string

	// Strict rejects references to undefined rules
	Strict bool

	// MaxStates rejects grammars whose automaton would be larger; 0 means unlimited
	MaxStates int
}

// Validate checks if the options are valid.
func (o GenerateOptions) Validate() error {
	if o.InputFile == "" {
		return fmt.Errorf("input file cannot be empty")
	}
	if o.OutputFile == "" {
		return fmt.Errorf("output file cannot be empty")
	}
	if o.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if o.MaxStates < 0 {
		return fmt.Errorf("max states cannot be negative")
	}
	return nil
}

// Generate compiles the grammar of an input file and writes a standalone Go
// matcher for it.
func Generate(opts GenerateOptions) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	in, err := grammar.ReadFile(opts.InputFile)
	if err != nil {
		return err
	}
	nfa, err := compiler.New(compiler.Config{
		Rules:     in.Table.Rules(),
		Strict:    opts.Strict,
		MaxStates: opts.MaxStates,
	}).Compile()
	if err != nil {
		return fmt.Errorf("failed to compile grammar: %w", err)
	}

	name := opts.Name
	if name == "" {
		name = defaultName(opts.OutputFile)
	}
	cfg := codegen.Config{
		Name:    name,
		Package: opts.Package,
		Grammar: in.Table.String(),
	}
	if err := codegen.WriteFile(opts.OutputFile, nfa, cfg); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}

// defaultName turns "message_rules.go" into "MessageRules".
func defaultName(path string) string {
	base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	parts := strings.FieldsFunc(base, func(r rune) bool {
		return !isASCIIAlnum(r)
	})
	var b strings.Builder
	for _, p := range parts {
		if p[0] >= 'a' && p[0] <= 'z' {
			p = codegen.UpperFirst(p)
		}
		b.WriteString(p)
	}
	name := b.String()
	if name == "" || name[0] < 'A' || name[0] > 'Z' {
		name = "Grammar" + name
	}
	return name
}

func isASCIIAlnum(r rune) bool {
	return r < 0x80 && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

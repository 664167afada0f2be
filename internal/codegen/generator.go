package codegen

import (
	"bytes"
	"fmt"
	"go/format"
	"go/token"
	"os"
	"strings"

	"github.com/KromDaniel/rulematch/internal/compiler"
	"github.com/dave/jennifer/jen"
)

// Config holds the configuration for code generation.
type Config struct {
	Name    string // Prefix of generated identifiers, e.g. "Message" gives MessageMatchString
	Package string // Package clause of the generated file
	Grammar string // Rule table in input syntax, copied into the file header
}

// Validate checks if the configuration is usable.
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if first := c.Name[0]; first < 'A' || first > 'Z' || !token.IsIdentifier(c.Name) {
		return fmt.Errorf("name %q must be an exported identifier", c.Name)
	}
	if c.Package == "" {
		return fmt.Errorf("package cannot be empty")
	}
	if !token.IsIdentifier(c.Package) {
		return fmt.Errorf("package %q is not a valid identifier", c.Package)
	}
	return nil
}

// Generator renders one automaton as Go source.
type Generator struct {
	config Config
	nfa    *compiler.Nfa
	file   *jen.File
}

// New creates a generator for nfa.
func New(nfa *compiler.Nfa, config Config) *Generator {
	return &Generator{
		config: config,
		nfa:    nfa,
		file:   jen.NewFile(config.Package),
	}
}

// Generate returns the formatted source of a matcher for nfa.
func Generate(nfa *compiler.Nfa, config Config) ([]byte, error) {
	return New(nfa, config).Generate()
}

// WriteFile generates the matcher and writes it to path.
func WriteFile(path string, nfa *compiler.Nfa, config Config) error {
	src, err := Generate(nfa, config)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, src, 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	return nil
}

// Generate builds the file.
func (g *Generator) Generate() ([]byte, error) {
	if err := g.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	g.file.HeaderComment("Code generated by rulematch. DO NOT EDIT.")
	g.generateGrammarComment()
	g.generateTypes()
	g.generateTable()
	g.generateEntryPoints()
	g.generateMatch()
	g.generateReachesAccept()

	var buf bytes.Buffer
	if err := g.file.Render(&buf); err != nil {
		return nil, fmt.Errorf("failed to render file: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format file: %w", err)
	}
	return formatted, nil
}

func (g *Generator) generateGrammarComment() {
	grammar := strings.TrimSpace(g.config.Grammar)
	if grammar == "" {
		return
	}
	g.file.Comment("Grammar:")
	for _, line := range strings.Split(grammar, "\n") {
		g.file.Comment(line)
	}
	g.file.Line()
}

func (g *Generator) generateTypes() {
	g.file.Comment(fmt.Sprintf("%s is an edge of the automaton. A zero symbol consumes no input.", TypeName(g.config.Name)))
	g.file.Type().Id(TypeName(g.config.Name)).Struct(
		jen.Id(SymbolName).Rune(),
		jen.Id(ToName).Int(),
	)
	g.file.Line()
}

// generateTable emits the transitions indexed by from-state.
func (g *Generator) generateTable() {
	rows := make([]jen.Code, g.nfa.StateCount())
	for s := range rows {
		out := g.nfa.From(compiler.State(s))
		if len(out) == 0 {
			rows[s] = jen.Nil()
			continue
		}
		entries := make([]jen.Code, len(out))
		for i, t := range out {
			var symbol jen.Code = jen.Lit(0)
			if !t.IsEpsilon() {
				symbol = jen.LitRune(t.Symbol)
			}
			entries[i] = jen.Values(jen.Dict{
				jen.Id(SymbolName): symbol,
				jen.Id(ToName):     jen.Lit(int(t.To)),
			})
		}
		rows[s] = jen.Values(entries...)
	}

	g.file.Comment(fmt.Sprintf("%d states, %d transitions. State %d is the start state and %d accepts.",
		g.nfa.StateCount(), len(g.nfa.Transitions()), compiler.StartState, compiler.AcceptState))
	g.file.Var().Id(TableName(g.config.Name)).Op("=").
		Index(jen.Op("...")).Index().Id(TypeName(g.config.Name)).
		ValuesFunc(func(grp *jen.Group) {
			for _, row := range rows {
				grp.Line().Add(row)
			}
			grp.Line()
		})
	g.file.Line()
}

func (g *Generator) generateEntryPoints() {
	name := g.config.Name
	match := LowerFirst(name) + "Match"

	g.file.Comment(fmt.Sprintf("%sMatchString reports whether the whole input is derivable from rule 0.", name))
	g.file.Func().Id(name+"MatchString").
		Params(jen.Id(InputName).String()).
		Params(jen.Bool()).
		Block(
			jen.Return(jen.Id(match).Call(
				jen.Lit(int(compiler.StartState)),
				jen.Index().Rune().Call(jen.Id(InputName)),
			)),
		)
	g.file.Line()

	g.file.Comment(fmt.Sprintf("%sMatchBytes is %sMatchString for UTF-8 encoded bytes.", name, name))
	g.file.Func().Id(name+"MatchBytes").
		Params(jen.Id(InputName).Index().Byte()).
		Params(jen.Bool()).
		Block(
			jen.Return(jen.Id(match).Call(
				jen.Lit(int(compiler.StartState)),
				jen.Index().Rune().Call(jen.String().Call(jen.Id(InputName))),
			)),
		)
	g.file.Line()
}

// generateMatch emits the backtracking search over the table.
func (g *Generator) generateMatch() {
	name := LowerFirst(g.config.Name)
	match := name + "Match"
	accept := name + "ReachesAccept"
	t := jen.Id("t")

	g.file.Func().Id(match).
		Params(jen.Id(StateName).Int(), jen.Id(InputName).Index().Rune()).
		Params(jen.Bool()).
		Block(
			jen.If(jen.Len(jen.Id(InputName)).Op("==").Lit(0)).Block(
				jen.Return(jen.Id(accept).Call(jen.Id(StateName))),
			),
			jen.For(jen.List(jen.Id("_"), t.Clone()).Op(":=").Range().Id(TableName(g.config.Name)).Index(jen.Id(StateName))).Block(
				jen.If(t.Clone().Dot(SymbolName).Op("==").Lit(0)).Block(
					jen.If(jen.Id(match).Call(t.Clone().Dot(ToName), jen.Id(InputName))).Block(
						jen.Return(jen.True()),
					),
				).Else().If(
					t.Clone().Dot(SymbolName).Op("==").Id(InputName).Index(jen.Lit(0)).
						Op("&&").Id(match).Call(t.Clone().Dot(ToName), jen.Id(InputName).Index(jen.Lit(1).Op(":"))),
				).Block(
					jen.Return(jen.True()),
				),
			),
			jen.Return(jen.False()),
		)
	g.file.Line()
}

func (g *Generator) generateReachesAccept() {
	name := LowerFirst(g.config.Name)
	accept := name + "ReachesAccept"
	t := jen.Id("t")

	g.file.Func().Id(accept).
		Params(jen.Id(StateName).Int()).
		Params(jen.Bool()).
		Block(
			jen.If(jen.Id(StateName).Op("==").Lit(int(compiler.AcceptState))).Block(
				jen.Return(jen.True()),
			),
			jen.For(jen.List(jen.Id("_"), t.Clone()).Op(":=").Range().Id(TableName(g.config.Name)).Index(jen.Id(StateName))).Block(
				jen.If(t.Clone().Dot(SymbolName).Op("==").Lit(0).Op("&&").Id(accept).Call(t.Clone().Dot(ToName))).Block(
					jen.Return(jen.True()),
				),
			),
			jen.Return(jen.False()),
		)
}

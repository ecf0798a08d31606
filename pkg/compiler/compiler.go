// Package compiler renders a parsed Silk tree into a stylesheet and a
// markup fragment.
//
// Rendering is two passes over the program: pass 1 collects styledef
// declarations into a lookup table, pass 2 walks each top-level container
// depth-first and emits one CSS rule plus one element per rendered node.
// The identifier counter lives on the Compiler rather than in a package
// global, so callers control determinism; the package-level Compile uses a
// shared default instance whose counter never resets, keeping identifiers
// distinct across unrelated compilations in one process.
package compiler

import (
	"fmt"
	"html"
	"strings"
	"sync/atomic"

	"github.com/recera/silk/pkg/ast"
	"github.com/recera/silk/pkg/parser"
	"github.com/recera/silk/pkg/style"
)

// Output is the pair of artifacts produced from one source unit: a
// sequence of newline-joined CSS rule blocks and a sequence of
// newline-joined top-level element fragments.
type Output struct {
	CSS  string
	HTML string
}

// Compiler owns the identifier counter used to tag rendered nodes.
type Compiler struct {
	counter atomic.Uint64
}

// New creates a compiler whose identifiers start at slk-1.
func New() *Compiler {
	return &Compiler{}
}

// Reset seeds the identifier counter; the next identifier is slk-<seed+1>.
// Resetting between compilations of the same source makes output
// byte-identical.
func (c *Compiler) Reset(seed uint64) {
	c.counter.Store(seed)
}

func (c *Compiler) nextID() string {
	return fmt.Sprintf("slk-%d", c.counter.Add(1))
}

var defaultCompiler = New()

// Compile renders a source unit with the process-wide default compiler.
// Identifiers stay unique across calls; use New for deterministic output.
func Compile(source string) (*Output, error) {
	return defaultCompiler.Compile(source)
}

// Compile parses and renders one source unit. A structural parse failure
// aborts the unit: no partial output is returned.
func (c *Compiler) Compile(source string) (*Output, error) {
	prog, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return c.Render(prog), nil
}

// Render compiles an already-parsed program.
func (c *Compiler) Render(prog *ast.Program) *Output {
	// Pass 1: styledef table. Later duplicates overwrite earlier ones, and
	// the table covers the whole top level, so forward references resolve.
	styles := make(map[string]*ast.StyleDef)
	for _, decl := range prog.Decls {
		if sd, ok := decl.(*ast.StyleDef); ok {
			styles[sd.Name] = sd
		}
	}
	resolver := style.NewResolver(styles)

	// Pass 2: render each top-level container in document order.
	var rules, fragments []string
	for _, decl := range prog.Decls {
		if cn, ok := decl.(*ast.Container); ok {
			r, markup := c.renderContainer(cn, resolver)
			rules = append(rules, r...)
			fragments = append(fragments, markup)
		}
	}

	return &Output{
		CSS:  strings.Join(rules, "\n"),
		HTML: strings.Join(fragments, "\n"),
	}
}

// renderContainer emits the container's rule followed by its children's
// rules, and wraps the concatenated child markup in an element tagged with
// the fresh identifier and the declared name.
func (c *Compiler) renderContainer(cn *ast.Container, resolver *style.Resolver) ([]string, string) {
	id := c.nextID()

	set := style.NewSet()
	set.Put("box-sizing", "border-box")
	set.Put("position", "relative")
	for _, prop := range cn.Props {
		set.Merge(resolver.Resolve(style.KindContainer, prop))
	}

	rules := []string{serializeRule(id, set)}
	var children strings.Builder
	for _, child := range cn.Children {
		switch node := child.(type) {
		case *ast.Container:
			childRules, markup := c.renderContainer(node, resolver)
			rules = append(rules, childRules...)
			children.WriteString(markup)
		case *ast.Text:
			rule, markup := c.renderText(node, resolver)
			rules = append(rules, rule)
			children.WriteString(markup)
		}
	}

	markup := fmt.Sprintf(`<div id="%s" data-name="%s">%s</div>`,
		id, html.EscapeString(cn.Name), children.String())
	return rules, markup
}

// renderText emits a rule with text defaults plus the resolved typography
// properties, and the escaped literal content in a span.
func (c *Compiler) renderText(tn *ast.Text, resolver *style.Resolver) (string, string) {
	id := c.nextID()

	set := style.NewSet()
	set.Put("box-sizing", "border-box")
	set.Put("margin", "0")
	for _, prop := range tn.Props {
		set.Merge(resolver.Resolve(style.KindText, prop))
	}

	markup := fmt.Sprintf(`<span id="%s">%s</span>`, id, html.EscapeString(tn.Content))
	return serializeRule(id, set), markup
}

// serializeRule writes an identifier-scoped declaration block.
func serializeRule(id string, set *style.Set) string {
	var b strings.Builder
	fmt.Fprintf(&b, "#%s {\n", id)
	for _, d := range set.Decls() {
		fmt.Fprintf(&b, "  %s: %s;\n", d.Prop, d.Value)
	}
	b.WriteString("}")
	return b.String()
}

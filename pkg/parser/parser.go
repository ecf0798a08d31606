// Package parser builds the Silk tree from a token sequence.
//
// Parsing is recursive descent with one token of lookahead. Failures come
// in two kinds. A structural failure — a required token missing where the
// grammar mandates one — aborts the whole unit with an *Error. Everything
// else is recovered silently: unknown top-level tokens are discarded one at
// a time and malformed property lines are dropped wholesale. The leniency
// is a documented contract, implemented as explicit skip branches.
package parser

import (
	"fmt"

	"github.com/recera/silk/pkg/ast"
	"github.com/recera/silk/pkg/lexer"
	"github.com/recera/silk/pkg/token"
)

// Error is a structural parse failure: a required token was absent.
type Error struct {
	Expected string
	Got      token.Token
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: expected %s, got %s", e.Got.Line, e.Got.Col, e.Expected, e.Got)
}

// Parser consumes a token sequence produced by the lexer.
type Parser struct {
	toks []token.Token
	pos  int
}

// New creates a parser over the given tokens. The sequence must be
// EOF-terminated, as the lexer guarantees.
func New(toks []token.Token) *Parser {
	return &Parser{toks: toks}
}

// Parse tokenizes and parses a whole source unit.
func Parse(src string) (*ast.Program, error) {
	return New(lexer.Scan(src)).Program()
}

// Program parses the top level: container and styledef declarations.
// Any other token at the top level is discarded one at a time, which keeps
// old compilers forward-compatible with newer sources.
func (p *Parser) Program() (*ast.Program, error) {
	prog := &ast.Program{}

	for p.cur().Kind != token.EOF {
		tok := p.cur()
		if tok.Kind == token.Keyword {
			switch tok.Literal {
			case token.KwContainer:
				c, err := p.container()
				if err != nil {
					return nil, err
				}
				prog.Decls = append(prog.Decls, c)
				continue
			case token.KwStyledef:
				s, err := p.styleDef()
				if err != nil {
					return nil, err
				}
				prog.Decls = append(prog.Decls, s)
				continue
			}
		}
		// Not a top-level construct (this includes a bare text node, which
		// is only valid inside a container): skip and carry on.
		p.advance()
	}

	return prog, nil
}

// container parses: 'container' name '{' body '}'. The body interleaves
// properties, nested containers, and text nodes in source order.
func (p *Parser) container() (*ast.Container, error) {
	p.advance() // 'container'

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	c := &ast.Container{Name: name}
	for {
		switch tok := p.cur(); tok.Kind {
		case token.RBrace:
			p.advance()
			return c, nil

		case token.EOF:
			return nil, &Error{Expected: `"}"`, Got: tok}

		case token.Newline:
			p.advance()

		case token.Keyword:
			switch tok.Literal {
			case token.KwContainer:
				child, err := p.container()
				if err != nil {
					return nil, err
				}
				c.Children = append(c.Children, child)
			case token.KwText:
				child, err := p.text()
				if err != nil {
					return nil, err
				}
				c.Children = append(c.Children, child)
			default:
				// styledef is only legal at the top level; drop it here.
				p.advance()
			}

		case token.Name:
			if prop, ok := p.property(); ok {
				c.Props = append(c.Props, prop)
			}

		default:
			p.advance()
		}
	}
}

// styleDef parses: 'styledef' name '{' property* '}'.
func (p *Parser) styleDef() (*ast.StyleDef, error) {
	p.advance() // 'styledef'

	name, err := p.expectName()
	if err != nil {
		return nil, err
	}
	if err := p.expect(token.LBrace); err != nil {
		return nil, err
	}

	s := &ast.StyleDef{Name: name}
	for {
		switch tok := p.cur(); tok.Kind {
		case token.RBrace:
			p.advance()
			return s, nil
		case token.EOF:
			return nil, &Error{Expected: `"}"`, Got: tok}
		case token.Newline:
			p.advance()
		case token.Name:
			if prop, ok := p.property(); ok {
				s.Props = append(s.Props, prop)
			}
		default:
			p.advance()
		}
	}
}

// text parses: 'text' quoted_text ('{' property* '}')?. The quoted content
// is mandatory; the property block is not.
func (p *Parser) text() (*ast.Text, error) {
	p.advance() // 'text'
	p.skipNewlines()

	tok := p.cur()
	if tok.Kind != token.String {
		return nil, &Error{Expected: "quoted text", Got: tok}
	}
	p.advance()

	t := &ast.Text{Content: tok.Literal}
	p.skipNewlines()
	if p.cur().Kind != token.LBrace {
		return t, nil
	}
	p.advance()

	for {
		switch tok := p.cur(); tok.Kind {
		case token.RBrace:
			p.advance()
			return t, nil
		case token.EOF:
			return nil, &Error{Expected: `"}"`, Got: tok}
		case token.Newline:
			p.advance()
		case token.Name:
			if prop, ok := p.property(); ok {
				t.Props = append(t.Props, prop)
			}
		default:
			p.advance()
		}
	}
}

// property parses: name ':' (raw_value | quoted_text). A line that lacks
// the colon is discarded as a whole — no partial property survives.
func (p *Parser) property() (ast.Property, bool) {
	key := p.cur().Literal
	p.advance()

	if p.cur().Kind != token.Colon {
		p.skipLine()
		return ast.Property{}, false
	}
	p.advance()

	var value string
	switch p.cur().Kind {
	case token.RawValue, token.String:
		value = p.cur().Literal
		p.advance()
	}
	return ast.Property{Key: key, Value: value}, true
}

// skipLine drops tokens up to (not including) the next newline, closing
// brace, or end of input.
func (p *Parser) skipLine() {
	for {
		switch p.cur().Kind {
		case token.Newline, token.RBrace, token.EOF:
			return
		}
		p.advance()
	}
}

func (p *Parser) skipNewlines() {
	for p.cur().Kind == token.Newline {
		p.advance()
	}
}

// expectName skips insignificant newlines and consumes a Name token.
func (p *Parser) expectName() (string, error) {
	p.skipNewlines()
	tok := p.cur()
	if tok.Kind != token.Name {
		return "", &Error{Expected: "name", Got: tok}
	}
	p.advance()
	return tok.Literal, nil
}

// expect skips insignificant newlines and consumes one token of the given
// kind.
func (p *Parser) expect(kind token.Kind) error {
	p.skipNewlines()
	tok := p.cur()
	if tok.Kind != kind {
		return &Error{Expected: fmt.Sprintf("%q", kind.String()), Got: tok}
	}
	p.advance()
	return nil
}

func (p *Parser) cur() token.Token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token.Token{Kind: token.EOF}
}

func (p *Parser) advance() {
	if p.pos < len(p.toks) {
		p.pos++
	}
}

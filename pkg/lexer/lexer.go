// Package lexer converts Silk source text into a flat token sequence.
//
// The lexer never fails: characters it does not recognize are dropped and
// scanning continues. It alternates between two modes. In normal mode it
// recognizes braces, colons, quoted text, comments, and identifiers. A colon
// switches it into value-capture mode, where the untouched remainder of the
// line becomes a single RawValue token. A newline always resets the mode.
package lexer

import (
	"strings"
	"unicode"

	"github.com/recera/silk/pkg/token"
)

// Lexer holds the scanning cursor over one source unit.
type Lexer struct {
	input string
	pos   int
	line  int
	col   int

	// pending holds a RawValue scanned right after a colon. The colon token
	// is returned first; the value follows on the next call.
	pending *token.Token
}

// New creates a lexer over the given source text.
func New(input string) *Lexer {
	return &Lexer{input: input, line: 1, col: 1}
}

// Scan tokenizes the whole source and returns the token sequence,
// terminated by an EOF token.
func Scan(input string) []token.Token {
	return New(input).All()
}

// All consumes the remaining input and returns every token including EOF.
func (l *Lexer) All() []token.Token {
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			return toks
		}
	}
}

// Next returns the next token, or EOF once the input is exhausted.
func (l *Lexer) Next() token.Token {
	if l.pending != nil {
		tok := *l.pending
		l.pending = nil
		return tok
	}

	for l.pos < len(l.input) {
		ch := l.input[l.pos]

		switch {
		case ch == '\n':
			tok := l.emit(token.Newline, "")
			l.advance()
			return tok

		case ch == '{':
			tok := l.emit(token.LBrace, "")
			l.advance()
			return tok

		case ch == '}':
			tok := l.emit(token.RBrace, "")
			l.advance()
			return tok

		case ch == ':':
			tok := l.emit(token.Colon, "")
			l.advance()
			if val, ok := l.scanRawValue(); ok {
				l.pending = &val
			}
			return tok

		case ch == '"':
			return l.scanString()

		case ch == '/' && l.peekAt(1) == '/':
			l.skipLineComment()

		case ch == '/' && l.peekAt(1) == '*':
			l.skipBlockComment()

		case isIdentStart(rune(ch)):
			return l.scanIdent()

		default:
			// Unrecognized character: drop it and keep going.
			l.advance()
		}
	}

	return l.emit(token.EOF, "")
}

// scanRawValue captures the remainder of the line after a colon: leading
// horizontal whitespace is skipped, capture stops at end of line or at a
// line comment, trailing whitespace is trimmed. An empty capture emits
// nothing. A value opening with a quote is left for normal-mode string
// scanning, so quoted property values come through as String tokens.
func (l *Lexer) scanRawValue() (token.Token, bool) {
	for l.pos < len(l.input) {
		ch := l.input[l.pos]
		if ch != ' ' && ch != '\t' && ch != '\r' {
			break
		}
		l.advance()
	}
	if l.pos < len(l.input) && l.input[l.pos] == '"' {
		return token.Token{}, false
	}

	startLine, startCol := l.line, l.col
	start := l.pos
	for l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			break
		}
		if l.input[l.pos] == '/' && l.peekAt(1) == '/' {
			break
		}
		l.advance()
	}

	value := strings.TrimRight(l.input[start:l.pos], " \t\r")
	if value == "" {
		return token.Token{}, false
	}
	return token.Token{Kind: token.RawValue, Literal: value, Line: startLine, Col: startCol}, true
}

// scanString captures the content between two double quotes. Escape
// sequences are not supported; an unterminated string runs to end of input.
func (l *Lexer) scanString() token.Token {
	tok := l.emit(token.String, "")
	l.advance() // opening quote

	start := l.pos
	for l.pos < len(l.input) && l.input[l.pos] != '"' {
		l.advance()
	}
	tok.Literal = l.input[start:l.pos]

	if l.pos < len(l.input) {
		l.advance() // closing quote
	}
	return tok
}

func (l *Lexer) scanIdent() token.Token {
	tok := l.emit(token.Name, "")
	start := l.pos
	l.advance()
	for l.pos < len(l.input) && isIdentPart(rune(l.input[l.pos])) {
		l.advance()
	}
	tok.Literal = l.input[start:l.pos]
	tok.Kind = token.LookupIdent(tok.Literal)
	return tok
}

func (l *Lexer) skipLineComment() {
	for l.pos < len(l.input) && l.input[l.pos] != '\n' {
		l.advance()
	}
}

// skipBlockComment consumes a /* ... */ comment. Block comments do not nest;
// an unterminated comment swallows the rest of the input.
func (l *Lexer) skipBlockComment() {
	l.advance() // '/'
	l.advance() // '*'
	for l.pos < len(l.input) {
		if l.input[l.pos] == '*' && l.peekAt(1) == '/' {
			l.advance()
			l.advance()
			return
		}
		l.advance()
	}
}

func (l *Lexer) emit(kind token.Kind, lit string) token.Token {
	return token.Token{Kind: kind, Literal: lit, Line: l.line, Col: l.col}
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= len(l.input) {
		return 0
	}
	return l.input[l.pos+offset]
}

func (l *Lexer) advance() {
	if l.pos < len(l.input) {
		if l.input[l.pos] == '\n' {
			l.line++
			l.col = 1
		} else {
			l.col++
		}
		l.pos++
	}
}

func isIdentStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_'
}

func isIdentPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '-'
}

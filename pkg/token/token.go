// Package token defines the lexical tokens of the Silk surface language.
package token

import "fmt"

// Kind identifies the category of a token.
type Kind uint8

const (
	// EOF marks the end of the token stream. The lexer always emits it last.
	EOF Kind = iota
	// Keyword is one of the reserved words: container, styledef, text.
	Keyword
	// Name is an identifier that is not a reserved word.
	Name
	// String is quoted text. The literal holds the content without quotes;
	// escape sequences are not supported.
	String
	// Colon separates a property key from its value and switches the lexer
	// into value-capture mode.
	Colon
	// LBrace opens a block.
	LBrace
	// RBrace closes a block.
	RBrace
	// RawValue is the untouched trailing text of a line after a colon,
	// trimmed of surrounding whitespace. Embedded punctuation survives, so
	// values like gradients or coordinate lists need no quoting.
	RawValue
	// Newline terminates a line. It ends value capture; the parser skips it
	// everywhere else.
	Newline
)

var kindNames = [...]string{
	EOF:      "eof",
	Keyword:  "keyword",
	Name:     "name",
	String:   "string",
	Colon:    ":",
	LBrace:   "{",
	RBrace:   "}",
	RawValue: "value",
	Newline:  "newline",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Token is a single lexical unit with its position in the source.
type Token struct {
	Kind    Kind
	Literal string
	Line    int
	Col     int
}

func (t Token) String() string {
	switch t.Kind {
	case Keyword, Name, String, RawValue:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Literal)
	default:
		return t.Kind.String()
	}
}

// Reserved words of the language.
const (
	KwContainer = "container"
	KwStyledef  = "styledef"
	KwText      = "text"
)

var keywords = map[string]bool{
	KwContainer: true,
	KwStyledef:  true,
	KwText:      true,
}

// LookupIdent classifies an identifier as Keyword or Name.
func LookupIdent(ident string) Kind {
	if keywords[ident] {
		return Keyword
	}
	return Name
}

package lexer

import (
	"testing"

	"github.com/recera/silk/pkg/token"
)

// kinds extracts the kind sequence for compact comparisons.
func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestScan_KindSequences(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []token.Kind
	}{
		{
			name:   "container header",
			source: "container app {\n}",
			want:   []token.Kind{token.Keyword, token.Name, token.LBrace, token.Newline, token.RBrace, token.EOF},
		},
		{
			name:   "property line",
			source: "width: 320px\n",
			want:   []token.Kind{token.Name, token.Colon, token.RawValue, token.Newline, token.EOF},
		},
		{
			name:   "quoted text",
			source: `text "hello" {`,
			want:   []token.Kind{token.Keyword, token.String, token.LBrace, token.EOF},
		},
		{
			name:   "empty value emits nothing",
			source: "key:\n",
			want:   []token.Kind{token.Name, token.Colon, token.Newline, token.EOF},
		},
		{
			name:   "comment-only value emits nothing",
			source: "key: // note\n",
			want:   []token.Kind{token.Name, token.Colon, token.Newline, token.EOF},
		},
		{
			name:   "quoted value becomes a string token",
			source: "font: \"Inter Display\"\n",
			want:   []token.Kind{token.Name, token.Colon, token.String, token.Newline, token.EOF},
		},
		{
			name:   "unrecognized characters dropped",
			source: "@ # $ container",
			want:   []token.Kind{token.Keyword, token.EOF},
		},
		{
			name:   "block comment skipped",
			source: "alpha /* skip { } */ beta",
			want:   []token.Kind{token.Name, token.Name, token.EOF},
		},
		{
			name:   "line comment skipped",
			source: "alpha // container {\nbeta",
			want:   []token.Kind{token.Name, token.Newline, token.Name, token.EOF},
		},
		{
			name:   "empty input",
			source: "",
			want:   []token.Kind{token.EOF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := kinds(Scan(tt.source))
			if len(got) != len(tt.want) {
				t.Fatalf("Scan(%q) kinds = %v, want %v", tt.source, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("Scan(%q) kinds = %v, want %v", tt.source, got, tt.want)
				}
			}
		})
	}
}

func TestScan_RawValueCapture(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   string
	}{
		{"plain", "width: 320px\n", "320px"},
		{"trailing whitespace trimmed", "color: #fff   \n", "#fff"},
		{"stops at line comment", "color: #fff // dark\n", "#fff"},
		{"punctuation survives", "points: 10,20 30,40\n", "10,20 30,40"},
		{"function value", "color: linear(90deg, #000, #fff)\n", "linear(90deg, #000, #fff)"},
		{"no trailing newline", "pad: 4px 8px", "4px 8px"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			for _, tok := range Scan(tt.source) {
				if tok.Kind == token.RawValue {
					got = tok.Literal
				}
			}
			if got != tt.want {
				t.Errorf("raw value = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestScan_ValueModeResetsAtNewline(t *testing.T) {
	toks := Scan("a: one\nb: two\n")

	var values []string
	for _, tok := range toks {
		if tok.Kind == token.RawValue {
			values = append(values, tok.Literal)
		}
	}
	if len(values) != 2 || values[0] != "one" || values[1] != "two" {
		t.Fatalf("values = %v, want [one two]", values)
	}
}

func TestScan_KeywordClassification(t *testing.T) {
	toks := Scan("container styledef text Container custom-name _hidden")

	want := []struct {
		kind token.Kind
		lit  string
	}{
		{token.Keyword, "container"},
		{token.Keyword, "styledef"},
		{token.Keyword, "text"},
		{token.Name, "Container"}, // names are case-sensitive
		{token.Name, "custom-name"},
		{token.Name, "_hidden"},
	}

	for i, w := range want {
		if toks[i].Kind != w.kind || toks[i].Literal != w.lit {
			t.Errorf("token %d = %v %q, want %v %q", i, toks[i].Kind, toks[i].Literal, w.kind, w.lit)
		}
	}
}

func TestScan_StringNoEscapes(t *testing.T) {
	toks := Scan(`text "a \ b"`)
	if toks[1].Kind != token.String || toks[1].Literal != `a \ b` {
		t.Fatalf("string literal = %v %q, want backslash kept verbatim", toks[1].Kind, toks[1].Literal)
	}
}

func TestScan_AlwaysEndsWithEOF(t *testing.T) {
	for _, source := range []string{"", "}", `"unterminated`, "/* unterminated", "a: b"} {
		toks := Scan(source)
		if toks[len(toks)-1].Kind != token.EOF {
			t.Errorf("Scan(%q) does not end with EOF: %v", source, toks)
		}
	}
}

func TestScan_Positions(t *testing.T) {
	toks := Scan("container app {\n  width: 1px\n}")

	if toks[0].Line != 1 || toks[0].Col != 1 {
		t.Errorf("container at %d:%d, want 1:1", toks[0].Line, toks[0].Col)
	}
	// "width" starts line 2 column 3.
	var width token.Token
	for _, tok := range toks {
		if tok.Kind == token.Name && tok.Literal == "width" {
			width = tok
		}
	}
	if width.Line != 2 || width.Col != 3 {
		t.Errorf("width at %d:%d, want 2:3", width.Line, width.Col)
	}
}

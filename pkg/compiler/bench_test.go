package compiler

import (
	"fmt"
	"strings"
	"testing"

	"github.com/recera/silk/pkg/parser"
)

// generateWideUnit builds a source unit with n sibling containers, each
// carrying a handful of properties and a text child.
func generateWideUnit(n int) string {
	var b strings.Builder
	b.WriteString("styledef card {\n  color: #1a1a2e\n  radius: 8px\n}\n")
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "container item-%d {\n", i)
		b.WriteString("  style: card\n  layout: row\n  pad: 12px\n")
		fmt.Fprintf(&b, "  text \"item %d\"\n", i)
		b.WriteString("}\n")
	}
	return b.String()
}

// generateDeepUnit builds a source unit nested n containers deep.
func generateDeepUnit(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, "container level-%d {\n  pad: 4px\n", i)
	}
	b.WriteString("  text \"bottom\"\n")
	for i := 0; i < n; i++ {
		b.WriteString("}\n")
	}
	return b.String()
}

func BenchmarkCompileWide(b *testing.B) {
	src := generateWideUnit(500)
	c := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Reset(0)
		if _, err := c.Compile(src); err != nil {
			b.Fatalf("compile failed: %v", err)
		}
	}
}

func BenchmarkCompileDeep(b *testing.B) {
	src := generateDeepUnit(200)
	c := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Reset(0)
		if _, err := c.Compile(src); err != nil {
			b.Fatalf("compile failed: %v", err)
		}
	}
}

func BenchmarkParseOnly(b *testing.B) {
	src := generateWideUnit(500)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := parser.Parse(src); err != nil {
			b.Fatalf("parse failed: %v", err)
		}
	}
}

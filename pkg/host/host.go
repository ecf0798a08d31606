// Package host embeds compiled Silk output into an HTML page document.
//
// A page declares source units inline as script blocks the browser leaves
// inert:
//
//	<script type="text/silk" data-target="sidebar">
//	    container panel { ... }
//	</script>
//
// Each block compiles independently: one unit's parse failure is logged
// and skipped without disturbing the others. Compiled CSS accumulates in a
// style sink and is injected once; compiled markup lands in a container
// chosen by priority — the block's data-target element, else the
// well-known default container, else a fresh element created right after
// the block itself.
package host

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/recera/silk/pkg/compiler"
	"github.com/recera/silk/pkg/registry"
)

// DefaultTarget is the id of the well-known fallback container.
const DefaultTarget = "silk-root"

// styleMarker tags the injected stylesheet element.
const styleMarker = "silk-styles"

// Processor compiles and places every Silk block of a page document.
type Processor struct {
	compiler *compiler.Compiler
	registry *registry.Registry
	logger   *log.Logger
}

// Option configures a Processor.
type Option func(*Processor)

// WithCompiler supplies the compiler instance (and thereby the identifier
// counter) the processor renders with.
func WithCompiler(c *compiler.Compiler) Option {
	return func(p *Processor) { p.compiler = c }
}

// WithRegistry supplies the style sink CSS accumulates in.
func WithRegistry(r *registry.Registry) Option {
	return func(p *Processor) { p.registry = r }
}

// WithLogger supplies the logger used for skipped units.
func WithLogger(l *log.Logger) Option {
	return func(p *Processor) { p.logger = l }
}

// NewProcessor creates a processor with its own compiler and registry
// unless options say otherwise.
func NewProcessor(opts ...Option) *Processor {
	p := &Processor{
		compiler: compiler.New(),
		registry: registry.New(),
		logger:   log.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// block is one embedded source unit found in the document.
type block struct {
	index  int
	end    int // offset just past </script>
	target string
	source string
}

var targetAttr = regexp.MustCompile(`data-target="([^"]*)"`)

// Process compiles every Silk block in the document and returns the page
// with markup placed and the accumulated stylesheet injected. Blocks that
// fail to parse are skipped; Process itself never fails.
func (p *Processor) Process(doc string) string {
	blocks := findBlocks(doc)

	type edit struct {
		pos   int
		index int
		text  string
	}
	var edits []edit

	for _, b := range blocks {
		out, err := p.compiler.Compile(b.source)
		if err != nil {
			p.logger.Warn("skipping silk block", "block", b.index, "err", err)
			continue
		}

		p.registry.Append(fmt.Sprintf("block-%d", b.index), out.CSS)
		if out.HTML == "" {
			continue
		}

		// Placement priority: explicit target, default container, fresh
		// element adjacent to the block.
		if b.target != "" {
			if pos, ok := elementContentEnd(doc, b.target); ok {
				edits = append(edits, edit{pos: pos, index: b.index, text: out.HTML})
				continue
			}
		}
		if pos, ok := elementContentEnd(doc, DefaultTarget); ok {
			edits = append(edits, edit{pos: pos, index: b.index, text: out.HTML})
			continue
		}
		created := fmt.Sprintf(`<div class="silk-unit">%s</div>`, out.HTML)
		edits = append(edits, edit{pos: b.end, index: b.index, text: created})
	}

	// Apply edits back to front so earlier offsets stay valid. Edits that
	// share a position are applied in reverse block order, which keeps the
	// blocks' document order inside the shared container.
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].pos != edits[j].pos {
			return edits[i].pos > edits[j].pos
		}
		return edits[i].index > edits[j].index
	})
	for _, e := range edits {
		doc = doc[:e.pos] + e.text + doc[e.pos:]
	}

	return p.injectStyles(doc)
}

// injectStyles places the sink's stylesheet before </head>, or at the top
// of the document when there is no head.
func (p *Processor) injectStyles(doc string) string {
	css := p.registry.CSS()
	if css == "" {
		return doc
	}
	element := fmt.Sprintf("<style id=\"%s\">\n%s</style>", styleMarker, css)

	if i := strings.Index(strings.ToLower(doc), "</head>"); i >= 0 {
		return doc[:i] + element + "\n" + doc[i:]
	}
	return element + "\n" + doc
}

// Insert places markup at the end of the existing content of the element
// carrying the given id. It reports whether the element was found.
func Insert(doc, id, markup string) (string, bool) {
	pos, ok := elementContentEnd(doc, id)
	if !ok {
		return doc, false
	}
	return doc[:pos] + markup + doc[pos:], true
}

// findBlocks scans the document for inert silk script blocks.
func findBlocks(doc string) []block {
	var blocks []block
	lower := strings.ToLower(doc)

	pos := 0
	for {
		open := strings.Index(lower[pos:], "<script")
		if open < 0 {
			return blocks
		}
		open += pos

		gt := strings.IndexByte(doc[open:], '>')
		if gt < 0 {
			return blocks
		}
		gt += open
		attrs := doc[open:gt]

		closing := strings.Index(lower[gt:], "</script>")
		if closing < 0 {
			return blocks
		}
		closing += gt
		end := closing + len("</script>")
		pos = end

		if !strings.Contains(attrs, `type="text/silk"`) {
			continue
		}

		b := block{
			index:  len(blocks),
			end:    end,
			source: doc[gt+1 : closing],
		}
		if m := targetAttr.FindStringSubmatch(attrs); m != nil {
			b.target = m[1]
		}
		blocks = append(blocks, b)
	}
}

// elementContentEnd locates the element carrying the given id and returns
// the offset just before its closing tag — the end of its existing
// content, where inserted markup belongs.
func elementContentEnd(doc, id string) (int, bool) {
	attr := fmt.Sprintf(`id="%s"`, id)
	at := strings.Index(doc, attr)
	if at < 0 {
		return 0, false
	}

	tagStart := strings.LastIndexByte(doc[:at], '<')
	if tagStart < 0 {
		return 0, false
	}
	name := tagName(doc[tagStart+1:])
	if name == "" {
		return 0, false
	}

	openEnd := strings.IndexByte(doc[at:], '>')
	if openEnd < 0 {
		return 0, false
	}
	openEnd += at + 1

	// Walk forward matching nested tags of the same name.
	depth := 1
	lower := strings.ToLower(doc)
	openPat := "<" + name
	closePat := "</" + name
	pos := openEnd
	for depth > 0 {
		next := strings.Index(lower[pos:], openPat)
		nextClose := strings.Index(lower[pos:], closePat)
		if nextClose < 0 {
			return 0, false
		}
		if next >= 0 && next < nextClose && !strings.HasPrefix(lower[pos+next:], closePat) {
			depth++
			pos += next + len(openPat)
			continue
		}
		depth--
		if depth == 0 {
			return pos + nextClose, true
		}
		pos += nextClose + len(closePat)
	}
	return 0, false
}

// tagName reads the element name at the start of a tag body.
func tagName(s string) string {
	for i := 0; i < len(s); i++ {
		ch := s[i]
		if (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-' {
			continue
		}
		return strings.ToLower(s[:i])
	}
	return strings.ToLower(s)
}

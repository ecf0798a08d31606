package style

import (
	"github.com/recera/silk/pkg/ast"
)

// Kind selects which resolver table applies to a property.
type Kind uint8

const (
	// KindContainer resolves properties on a container node.
	KindContainer Kind = iota
	// KindText resolves properties on a text node.
	KindText
	// KindStyleDef resolves properties inside a styledef body.
	KindStyleDef
)

// resolveFunc maps one property value to zero or more declarations.
type resolveFunc func(r *Resolver, value string, seen map[string]bool) []Declaration

// Resolver resolves properties against a named-style table built once per
// compilation.
type Resolver struct {
	styles map[string]*ast.StyleDef
}

// NewResolver creates a resolver over the given styledef table. A nil map
// is treated as empty.
func NewResolver(styles map[string]*ast.StyleDef) *Resolver {
	if styles == nil {
		styles = make(map[string]*ast.StyleDef)
	}
	return &Resolver{styles: styles}
}

// Resolve maps a single property to its output declarations for the given
// node kind. Unknown keys pass through as a literal declaration, keeping
// the compiler forward-compatible with properties it does not know about.
func (r *Resolver) Resolve(kind Kind, prop ast.Property) []Declaration {
	return r.resolve(kind, prop, make(map[string]bool))
}

func (r *Resolver) resolve(kind Kind, prop ast.Property, seen map[string]bool) []Declaration {
	var table map[string]resolveFunc
	switch kind {
	case KindText:
		table = textProps
	case KindStyleDef:
		table = styleDefProps
	default:
		table = containerProps
	}

	if fn, ok := table[prop.Key]; ok {
		return fn(r, prop.Value, seen)
	}
	return []Declaration{{Prop: prop.Key, Value: prop.Value}}
}

// containerProps resolves keys on container nodes. color here means the
// surface fill, not the foreground.
var containerProps map[string]resolveFunc

// styleDefProps resolves keys inside a styledef body. It mirrors the
// container semantics — color is a fill — but is kept as its own table:
// a styledef is not a container, and the two tables are free to diverge.
var styleDefProps map[string]resolveFunc

// textProps resolves keys on text nodes. color here is the foreground text
// color.
var textProps map[string]resolveFunc

// The tables are populated in init rather than in var declarations: the
// resolver methods they reference call back into the tables, which the
// compiler would otherwise reject as an initialization cycle.
func init() {
	containerProps = map[string]resolveFunc{
		"width":   sizeProp("width", "min-width"),
		"height":  sizeProp("height", "min-height"),
		"color":   (*Resolver).resolveFill,
		"style":   (*Resolver).applyStyle,
		"layout":  resolveLayout,
		"align":   alignProp("align-items"),
		"justify": alignProp("justify-content"),
		"radius":  passAs("border-radius"),
		"pad":     passAs("padding"),
		"gap":     passAs("gap"),
		"border":  passAs("border"),
		"shadow":  passAs("box-shadow"),
		"opacity": passAs("opacity"),
	}

	styleDefProps = map[string]resolveFunc{
		"width":   sizeProp("width", "min-width"),
		"height":  sizeProp("height", "min-height"),
		"color":   (*Resolver).resolveFill,
		"style":   (*Resolver).applyStyle,
		"layout":  resolveLayout,
		"align":   alignProp("align-items"),
		"justify": alignProp("justify-content"),
		"radius":  passAs("border-radius"),
		"pad":     passAs("padding"),
		"gap":     passAs("gap"),
		"border":  passAs("border"),
		"shadow":  passAs("box-shadow"),
		"opacity": passAs("opacity"),
	}

	textProps = map[string]resolveFunc{
		"color":   passAs("color"),
		"style":   (*Resolver).applyStyle,
		"size":    passAs("font-size"),
		"weight":  passAs("font-weight"),
		"font":    passAs("font-family"),
		"align":   passAs("text-align"),
		"spacing": passAs("letter-spacing"),
		"line":    passAs("line-height"),
	}
}

// passAs emits the value unchanged under a renamed CSS property.
func passAs(cssProp string) resolveFunc {
	return func(_ *Resolver, value string, _ map[string]bool) []Declaration {
		return []Declaration{{Prop: cssProp, Value: value}}
	}
}

// Fill is the sentinel size value asking the element to grow into the
// remaining space of a flexible parent.
const Fill = "fill"

// sizeProp handles width/height. The fill sentinel becomes a flex-grow
// request plus a minimum-size reset so the element may also shrink below
// its natural size; anything else is a literal dimension.
func sizeProp(cssProp, minProp string) resolveFunc {
	return func(_ *Resolver, value string, _ map[string]bool) []Declaration {
		if value == Fill {
			return []Declaration{
				{Prop: "flex", Value: "1"},
				{Prop: minProp, Value: "0"},
			}
		}
		return []Declaration{{Prop: cssProp, Value: value}}
	}
}

// alignKeywords translates the language's short alignment keywords to their
// verbose CSS equivalents. Keywords absent from the table pass through
// verbatim so raw CSS values keep working.
var alignKeywords = map[string]string{
	"start":   "flex-start",
	"end":     "flex-end",
	"between": "space-between",
	"around":  "space-around",
	"evenly":  "space-evenly",
}

func alignProp(cssProp string) resolveFunc {
	return func(_ *Resolver, value string, _ map[string]bool) []Declaration {
		if v, ok := alignKeywords[value]; ok {
			value = v
		}
		return []Declaration{{Prop: cssProp, Value: value}}
	}
}

// resolveLayout enables flexible layout on a container. row and column map
// onto flex direction; unknown values pass through as the direction.
func resolveLayout(_ *Resolver, value string, _ map[string]bool) []Declaration {
	return []Declaration{
		{Prop: "display", Value: "flex"},
		{Prop: "flex-direction", Value: value},
	}
}

// applyStyle inlines the declarations of a named styledef. The reference
// is resolved against the table built in pass 1; a name that resolves to
// nothing contributes no declarations and is not an error.
func (r *Resolver) applyStyle(value string, seen map[string]bool) []Declaration {
	sd, ok := r.styles[value]
	if !ok {
		return nil
	}
	return r.inline(sd, seen)
}

// inline resolves a styledef's own properties, recursively, using the
// styledef table — the defining node's kind decides context-sensitive keys,
// not the referencing node's. The seen set breaks reference cycles.
func (r *Resolver) inline(sd *ast.StyleDef, seen map[string]bool) []Declaration {
	if seen[sd.Name] {
		return nil
	}
	seen[sd.Name] = true
	defer delete(seen, sd.Name)

	var decls []Declaration
	for _, prop := range sd.Props {
		decls = append(decls, r.resolve(KindStyleDef, prop, seen)...)
	}
	return decls
}

// Package ast defines the typed tree produced by the Silk parser.
//
// Nodes are immutable once constructed: the parser builds the tree, the
// compiler walks it, and it is discarded afterwards.
package ast

// Node is the interface shared by every tree node.
type Node interface {
	node()
}

// Program is the root of a parsed source unit: an ordered sequence of
// top-level container and styledef declarations.
type Program struct {
	Decls []Node
}

// Property is a single key/value pair on a container, text, or styledef
// node. The value is trimmed and may itself be a function-call expression
// such as "linear(#fff, #000)".
type Property struct {
	Key   string
	Value string
}

// Container is a bounded renderable region (a surface). It carries an
// ordered property list and ordered children; children are containers or
// text nodes, nested to unbounded depth.
type Container struct {
	Name     string
	Props    []Property
	Children []Node
}

// StyleDef is a reusable named bundle of property declarations (a
// material). It holds no children and is referenced by name.
type StyleDef struct {
	Name  string
	Props []Property
}

// Text is a leaf carrying literal string content plus optional typography
// properties. A text node never has children.
type Text struct {
	Content string
	Props   []Property
}

func (*Container) node() {}
func (*StyleDef) node()  {}
func (*Text) node()      {}

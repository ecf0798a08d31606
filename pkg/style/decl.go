// Package style maps Silk properties to CSS declarations.
//
// Resolution is context-sensitive: the same key can mean different things
// on a container, a text node, or inside a styledef. Each node kind has its
// own resolver table and the tables are deliberately kept separate.
package style

// Declaration is a single CSS property/value pair.
type Declaration struct {
	Prop  string
	Value string
}

// Set is an ordered declaration collection with later-wins override
// semantics: putting a prop that is already present replaces its value in
// place, keeping the position of the first occurrence. That keeps output
// deterministic while honoring source-order precedence.
type Set struct {
	decls []Declaration
	index map[string]int
}

// NewSet creates an empty declaration set.
func NewSet() *Set {
	return &Set{index: make(map[string]int)}
}

// Put inserts a declaration, overriding any earlier value for the same
// property.
func (s *Set) Put(prop, value string) {
	if i, ok := s.index[prop]; ok {
		s.decls[i].Value = value
		return
	}
	s.index[prop] = len(s.decls)
	s.decls = append(s.decls, Declaration{Prop: prop, Value: value})
}

// Merge puts every declaration in order.
func (s *Set) Merge(decls []Declaration) {
	for _, d := range decls {
		s.Put(d.Prop, d.Value)
	}
}

// Decls returns the declarations in insertion order.
func (s *Set) Decls() []Declaration {
	return s.decls
}

// Len reports the number of distinct properties in the set.
func (s *Set) Len() int {
	return len(s.decls)
}

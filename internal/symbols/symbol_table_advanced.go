package symbols

import (
	"iter"
	"strings"

	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/typesystem"
)

// Symbols yields this scope's entries in insertion order. In deep mode the
// child scopes are walked first (post-order). Each call starts a fresh walk.
func (s *SymbolTable) Symbols(deep bool) iter.Seq[typesystem.Type] {
	return func(yield func(typesystem.Type) bool) {
		s.walk(deep, yield)
	}
}

// Each is Symbols filtered by variant; VariantNone keeps everything.
func (s *SymbolTable) Each(v typesystem.Variant, deep bool) iter.Seq[typesystem.Type] {
	return func(yield func(typesystem.Type) bool) {
		s.walk(deep, func(t typesystem.Type) bool {
			if !t.IsType(v) {
				return true
			}
			return yield(t)
		})
	}
}

// All yields this scope's own bindings with unescaped names.
func (s *SymbolTable) All() iter.Seq2[string, typesystem.Type] {
	return func(yield func(string, typesystem.Type) bool) {
		for _, key := range s.keys {
			if !yield(config.Unescape(key), s.tree.u.Get(s.store[key])) {
				return
			}
		}
	}
}

func (s *SymbolTable) walk(deep bool, yield func(typesystem.Type) bool) bool {
	if deep {
		for _, child := range s.Children() {
			if !child.walk(true, yield) {
				return false
			}
		}
	}
	for _, key := range s.keys {
		if !yield(s.tree.u.Get(s.store[key])) {
			return false
		}
	}
	return true
}

// Children returns the live child scopes in creation order.
func (s *SymbolTable) Children() []*SymbolTable {
	out := make([]*SymbolTable, 0, len(s.childOrder))
	for _, d := range s.childOrder {
		if child := s.tree.Get(s.children[d]); child != nil {
			out = append(out, child)
		}
	}
	return out
}

// Names returns the unescaped names bound in this scope, in insertion order.
func (s *SymbolTable) Names() []string {
	names := make([]string, len(s.keys))
	for i, key := range s.keys {
		names[i] = config.Unescape(key)
	}
	return names
}

// Path is the dotted chain of definer names from the root, e.g. "global.Foo.bar".
func (s *SymbolTable) Path() string {
	var parts []string
	for cur := s; cur != nil; cur = cur.Parent() {
		if d := cur.Definer(); d != nil {
			name := d.Name()
			if name == "" {
				name = d.Variant().String()
			}
			parts = append(parts, name)
			continue
		}
		parts = append(parts, cur.scopeKind.String())
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, ".")
}

// Reset discards all child scopes (children first) and then this scope's bindings.
func (s *SymbolTable) Reset() {
	for _, child := range s.Children() {
		child.Reset()
		if d := child.Definer(); d != nil && d.Inner() == child.id {
			d.SetInner(typesystem.NoScope)
		}
		s.tree.scopes[child.id] = nil
	}
	s.children = make(map[typesystem.TypeID]typesystem.ScopeID)
	s.childOrder = nil
	s.store = make(map[string]typesystem.TypeID)
	s.keys = nil
}

// Clear is Reset plus severing the links to the parent and the definer.
func (s *SymbolTable) Clear() {
	s.Reset()
	if d := s.Definer(); d != nil && d.Inner() == s.id {
		d.SetInner(typesystem.NoScope)
	}
	if p := s.Parent(); p != nil {
		delete(p.children, s.definer)
		for i, id := range p.childOrder {
			if id == s.definer {
				p.childOrder = append(p.childOrder[:i], p.childOrder[i+1:]...)
				break
			}
		}
	}
	s.parent = typesystem.NoScope
	s.definer = typesystem.NoType
}

package symbols

import (
	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/typesystem"
)

// Find looks name up in this scope and, unless selfOnly, its ancestors.
// Reserved names are escaped before lookup. Absence is not an error.
func (s *SymbolTable) Find(name string, selfOnly bool) (typesystem.Type, bool) {
	key := config.Escape(name)
	for cur := s; cur != nil; cur = cur.Parent() {
		if id, ok := cur.store[key]; ok {
			return cur.tree.u.Get(id), true
		}
		if selfOnly {
			break
		}
	}
	return nil, false
}

// Has reports whether name resolves here or in an ancestor.
func (s *SymbolTable) Has(name string) bool {
	_, ok := s.Find(name, false)
	return ok
}

// HasOwn reports whether name is bound in this scope itself.
func (s *SymbolTable) HasOwn(name string) bool {
	_, ok := s.Find(name, true)
	return ok
}

// Size is the number of entries bound in this scope.
func (s *SymbolTable) Size() int { return len(s.keys) }

// Add binds entry under its own name.
func (s *SymbolTable) Add(entry typesystem.Type) typesystem.Type {
	return s.AddAs(entry.Name(), entry)
}

// AddAs binds entry under name, overwriting any previous binding, and makes
// this scope the entry's outer scope. Shared primitives keep no outer scope.
func (s *SymbolTable) AddAs(name string, entry typesystem.Type) typesystem.Type {
	key := config.Escape(name)
	if _, exists := s.store[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.store[key] = entry.ID()
	if _, shared := entry.(*typesystem.Primitive); !shared {
		entry.SetOuter(s.id)
	}
	return entry
}

// Remove unbinds name from this scope only.
func (s *SymbolTable) Remove(name string) bool {
	key := config.Escape(name)
	if _, ok := s.store[key]; !ok {
		return false
	}
	delete(s.store, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
	return true
}

// From returns the child scope owned by definer, creating it on first use.
// The definer's inner scope is set to the child.
func (s *SymbolTable) From(definer typesystem.Type) *SymbolTable {
	if id, ok := s.children[definer.ID()]; ok {
		if child := s.tree.Get(id); child != nil {
			return child
		}
	}
	child := s.tree.newScope(s.id, definer.ID(), kindFor(definer))
	s.children[definer.ID()] = child.id
	s.childOrder = append(s.childOrder, definer.ID())
	definer.SetInner(child.id)
	return child
}

// Lookup returns the child scope owned by definer without creating one.
func (s *SymbolTable) Lookup(definer typesystem.Type) (*SymbolTable, bool) {
	id, ok := s.children[definer.ID()]
	if !ok {
		return nil, false
	}
	child := s.tree.Get(id)
	return child, child != nil
}

func kindFor(definer typesystem.Type) ScopeKind {
	switch {
	case definer.IsType(typesystem.VariantModule):
		return ScopeModule
	case definer.IsType(typesystem.VariantSignature), definer.IsType(typesystem.VariantCallable):
		return ScopeSignature
	default:
		return ScopeContainer
	}
}

package symbols

import (
	"github.com/julianjensen/inference/internal/typesystem"
)

type ScopeKind int

const (
	ScopeGlobal    ScopeKind = iota // the single root
	ScopeContainer                  // members of an interface, literal or object
	ScopeModule                     // lexical scope of a module or namespace
	ScopeSignature                  // parameters and type parameters of a signature
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeContainer:
		return "container"
	case ScopeModule:
		return "module"
	case ScopeSignature:
		return "signature"
	default:
		return "scope"
	}
}

// Tree is the arena of scopes of one compilation unit. Scopes refer to each
// other by ScopeID and to their definers by TypeID.
type Tree struct {
	u        *typesystem.Universe
	scopes   []*SymbolTable // index 0 is NoScope
	global   typesystem.ScopeID
	builtins []string

	// member counts of the pre-declared entries when they were installed
	pristine map[typesystem.TypeID]int
}

// SymbolTable is one scope: an insertion-ordered map from escaped name to
// entry, a parent link and memoized child scopes keyed by their definer.
type SymbolTable struct {
	tree      *Tree
	id        typesystem.ScopeID
	parent    typesystem.ScopeID
	definer   typesystem.TypeID
	scopeKind ScopeKind

	keys  []string
	store map[string]typesystem.TypeID

	children   map[typesystem.TypeID]typesystem.ScopeID
	childOrder []typesystem.TypeID
}

func (t *Tree) newScope(parent typesystem.ScopeID, definer typesystem.TypeID, kind ScopeKind) *SymbolTable {
	s := &SymbolTable{
		tree:      t,
		id:        typesystem.ScopeID(len(t.scopes)),
		parent:    parent,
		definer:   definer,
		scopeKind: kind,
		store:     make(map[string]typesystem.TypeID),
		children:  make(map[typesystem.TypeID]typesystem.ScopeID),
	}
	t.scopes = append(t.scopes, s)
	return s
}

// Universe returns the type arena the scopes index into.
func (t *Tree) Universe() *typesystem.Universe { return t.u }

// Global returns the root scope.
func (t *Tree) Global() *SymbolTable { return t.Get(t.global) }

// Get returns the live scope with the given ID, or nil.
func (t *Tree) Get(id typesystem.ScopeID) *SymbolTable {
	if id <= typesystem.NoScope || int(id) >= len(t.scopes) {
		return nil
	}
	return t.scopes[id]
}

// Len counts live scopes.
func (t *Tree) Len() int {
	n := 0
	for _, s := range t.scopes {
		if s != nil {
			n++
		}
	}
	return n
}

func (s *SymbolTable) ID() typesystem.ScopeID         { return s.id }
func (s *SymbolTable) Kind() ScopeKind                { return s.scopeKind }
func (s *SymbolTable) Tree() *Tree                    { return s.tree }
func (s *SymbolTable) Universe() *typesystem.Universe { return s.tree.u }

// Parent returns the enclosing scope, or nil for the root.
func (s *SymbolTable) Parent() *SymbolTable {
	return s.tree.Get(s.parent)
}

// Definer returns the type whose inner scope this is, or nil for the root.
func (s *SymbolTable) Definer() typesystem.Type {
	return s.tree.u.Get(s.definer)
}

// IsGlobalScope reports whether this is the root.
func (s *SymbolTable) IsGlobalScope() bool {
	return s.scopeKind == ScopeGlobal
}

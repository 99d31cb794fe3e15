package symbols

import (
	"strings"

	"github.com/julianjensen/inference/internal/typesystem"
)

// Resolve looks up a possibly qualified name (e.g. "NS.Inner.Foo"). The first
// segment is found through the parent chain; later segments are looked up in
// the inner scope of each module or namespace, or in a container's members.
func (s *SymbolTable) Resolve(name string) (typesystem.Type, bool) {
	if !strings.Contains(name, ".") {
		return s.Find(name, false)
	}
	parts := strings.Split(name, ".")
	cur, ok := s.Find(parts[0], false)
	if !ok {
		return nil, false
	}
	for _, part := range parts[1:] {
		next, ok := s.member(cur, part)
		if !ok {
			return nil, false
		}
		cur = next
	}
	return cur, true
}

func (s *SymbolTable) member(container typesystem.Type, name string) (typesystem.Type, bool) {
	if inner := s.tree.Get(container.Inner()); inner != nil {
		if t, ok := inner.Find(name, true); ok {
			return t, true
		}
	}
	if m, ok := container.(typesystem.HasMembersTable); ok {
		return m.MembersTable().Member(name)
	}
	return nil, false
}

// Lexical returns the nearest module, namespace or global scope at or above s.
// Declarations made from s are bound there.
func (s *SymbolTable) Lexical() *SymbolTable {
	cur := s
	for cur.scopeKind != ScopeModule && cur.scopeKind != ScopeGlobal {
		parent := cur.Parent()
		if parent == nil {
			break
		}
		cur = parent
	}
	return cur
}

package symbols

import (
	"github.com/julianjensen/inference/internal/typesystem"
)

// NewTree creates the global scope for u and installs the built-in generic
// interfaces plus any extra names as empty interfaces.
func NewTree(u *typesystem.Universe, extraBuiltins ...string) *Tree {
	t := &Tree{
		u:        u,
		scopes:   []*SymbolTable{nil},
		builtins: extraBuiltins,
	}
	t.global = t.newScope(typesystem.NoScope, typesystem.NoType, ScopeGlobal).id
	t.InitBuiltins()
	return t
}

// InitBuiltins binds the built-ins in the global scope. Extra names that are
// already bound are left alone.
func (t *Tree) InitBuiltins() {
	global := t.Global()
	t.pristine = make(map[typesystem.TypeID]int)
	for name, obj := range t.u.Builtins() {
		global.AddAs(name, obj)
		t.pristine[obj.ID()] = obj.NumMembers()
	}
	for _, name := range t.builtins {
		if global.HasOwn(name) {
			continue
		}
		obj := t.u.NewInterface(name)
		global.Add(obj)
		t.pristine[obj.ID()] = 0
	}
}

// IsBuiltin reports whether entry is a pre-declared interface that no
// compiled declaration has added members to.
func (t *Tree) IsBuiltin(entry typesystem.Type) bool {
	n, ok := t.pristine[entry.ID()]
	if !ok {
		return false
	}
	obj, isObj := entry.(*typesystem.ObjectType)
	return isObj && obj.NumMembers() == n
}

// Reset discards every scope below the root and every root binding, then
// re-installs the built-ins.
func (t *Tree) Reset() {
	t.Global().Reset()
	t.InitBuiltins()
}

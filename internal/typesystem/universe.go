package typesystem

import (
	"iter"

	"github.com/julianjensen/inference/internal/config"
)

// Universe is the arena owning every Type of one compilation unit.
// Relations between types are stored as TypeIDs into this arena, so dropping
// the Universe releases the whole graph.
type Universe struct {
	types      []Type
	primitives map[string]*Primitive
	builtins   map[string]TypeID
}

// NewUniverse creates an arena with the primitives and the built-in generic
// interfaces (Array, ReadonlyArray, Promise) already allocated.
func NewUniverse() *Universe {
	u := &Universe{
		types:      []Type{nil}, // index 0 is NoType
		primitives: make(map[string]*Primitive, len(config.PrimitiveNames)),
		builtins:   make(map[string]TypeID),
	}
	for _, name := range config.PrimitiveNames {
		p := &Primitive{typeBase: typeBase{name: name, variant: VariantPrimitive}}
		u.register(p)
		u.primitives[name] = p
	}
	u.initBuiltins()
	return u
}

func (u *Universe) initBuiltins() {
	number := u.primitives[config.NumberTypeName]

	array := u.NewInterface(config.ArrayTypeName)
	elem := u.NewTypeParameter(config.ElementParamName, nil, false)
	array.AddTypeParameter(elem)
	array.AddMember(MemberSpec{Name: "length", Type: u.NewIdentifier("length", number, false, false)})
	array.SetIndex("n", number, elem)
	u.builtins[config.ArrayTypeName] = array.ID()

	readonly := u.NewInterface(config.ReadonlyArrayTypeName)
	relem := u.NewTypeParameter(config.ElementParamName, nil, false)
	readonly.AddTypeParameter(relem)
	readonly.AddMember(MemberSpec{Name: "length", Type: u.NewIdentifier("length", number, false, false)})
	readonly.SetIndex("n", number, relem)
	u.builtins[config.ReadonlyArrayTypeName] = readonly.ID()

	promise := u.NewInterface(config.PromiseTypeName)
	promise.AddTypeParameter(u.NewTypeParameter(config.ElementParamName, nil, false))
	u.builtins[config.PromiseTypeName] = promise.ID()
}

func (u *Universe) register(t Type) {
	b := t.base()
	b.u = u
	b.id = TypeID(len(u.types))
	u.types = append(u.types, t)
}

// Get returns the type with the given ID, or nil for NoType or an unknown ID.
func (u *Universe) Get(id TypeID) Type {
	if u == nil || id <= NoType || int(id) >= len(u.types) {
		return nil
	}
	return u.types[id]
}

// Len is the number of allocated entries.
func (u *Universe) Len() int {
	return len(u.types) - 1
}

// All yields every entry in allocation order.
func (u *Universe) All() iter.Seq[Type] {
	return func(yield func(Type) bool) {
		for _, t := range u.types[1:] {
			if !yield(t) {
				return
			}
		}
	}
}

// Primitive returns the cached primitive for name.
func (u *Universe) Primitive(name string) (*Primitive, bool) {
	p, ok := u.primitives[name]
	return p, ok
}

// MustPrimitive is Primitive for names known to be primitive.
func (u *Universe) MustPrimitive(name string) *Primitive {
	p, ok := u.primitives[name]
	if !ok {
		panic("typesystem: not a primitive: " + name)
	}
	return p
}

// Builtin returns a built-in interface such as Array.
func (u *Universe) Builtin(name string) (*ObjectType, bool) {
	id, ok := u.builtins[name]
	if !ok {
		return nil, false
	}
	obj, ok := u.Get(id).(*ObjectType)
	return obj, ok
}

// Builtins yields the built-in interfaces by name, in a stable order.
func (u *Universe) Builtins() iter.Seq2[string, *ObjectType] {
	return func(yield func(string, *ObjectType) bool) {
		for _, name := range []string{config.ArrayTypeName, config.ReadonlyArrayTypeName, config.PromiseTypeName} {
			obj, ok := u.Builtin(name)
			if !ok {
				continue
			}
			if !yield(name, obj) {
				return
			}
		}
	}
}

// NewUndef allocates a placeholder for a name referenced before its declaration.
func (u *Universe) NewUndef(name string) *Undef {
	t := &Undef{typeBase: typeBase{name: name, variant: VariantUndef}}
	u.register(t)
	return t
}

// NewReference allocates a reference to target with optional type arguments.
func (u *Universe) NewReference(target Type, args ...Type) *Reference {
	r := &Reference{typeBase: typeBase{variant: VariantReference}}
	u.register(r)
	r.Retarget(target)
	for _, a := range args {
		r.AddTypeArgument(a)
	}
	return r
}

// NewArrayOf allocates Array<elem>.
func (u *Universe) NewArrayOf(elem Type) *Reference {
	array, _ := u.Builtin(config.ArrayTypeName)
	return u.NewReference(array, elem)
}

// NewTypeParameter allocates a type parameter with an optional constraint.
func (u *Universe) NewTypeParameter(name string, constraint Type, keyOf bool) *TypeParameter {
	p := &TypeParameter{
		typeBase:   typeBase{name: name, variant: VariantTypeParameter},
		constraint: idOf(constraint),
		keyOf:      keyOf,
	}
	u.register(p)
	return p
}

func (u *Universe) newList(v Variant, types []Type) *ListType {
	l := &ListType{typeBase: typeBase{variant: v}}
	u.register(l)
	for _, t := range types {
		l.Add(t)
	}
	return l
}

// NewUnion allocates A | B | ...
func (u *Universe) NewUnion(types ...Type) *ListType {
	return u.newList(VariantUnion, types)
}

// NewIntersection allocates A & B & ...
func (u *Universe) NewIntersection(types ...Type) *ListType {
	return u.newList(VariantIntersection, types)
}

// NewTuple allocates [A, B, ...]
func (u *Universe) NewTuple(types ...Type) *ListType {
	return u.newList(VariantTuple, types)
}

func (u *Universe) newObject(v Variant, name string) *ObjectType {
	o := &ObjectType{typeBase: typeBase{name: name, variant: v}}
	u.register(o)
	o.Members = newMembers(u, o.id)
	o.Generics = Generics{gu: u}
	return o
}

// NewObject allocates a bare object type.
func (u *Universe) NewObject(name string) *ObjectType {
	return u.newObject(VariantObject, name)
}

// NewInterface allocates an empty interface.
func (u *Universe) NewInterface(name string) *ObjectType {
	return u.newObject(VariantInterface, name)
}

// NewTypeLiteral allocates an anonymous object literal type.
func (u *Universe) NewTypeLiteral() *ObjectType {
	return u.newObject(VariantTypeLiteral, AnonymousLiteralName)
}

// NewModule allocates a module container.
func (u *Universe) NewModule(name string) *ObjectType {
	return u.newObject(VariantModule, name)
}

// NewNamespace allocates a namespace container.
func (u *Universe) NewNamespace(name string) *ObjectType {
	return u.newObject(VariantNamespace, name)
}

// NewCallable allocates an empty overload set.
func (u *Universe) NewCallable(name string, kind CallableKind) *CallableType {
	c := &CallableType{typeBase: typeBase{name: name, variant: VariantCallable}, kind: kind}
	u.register(c)
	return c
}

// NewSignature allocates one overload with no parameters.
func (u *Universe) NewSignature(name string) *Signature {
	s := &Signature{
		typeBase: typeBase{name: name, variant: VariantSignature},
		byName:   make(map[string]int),
	}
	u.register(s)
	s.Generics = Generics{gu: u}
	return s
}

// NewIdentifier allocates a named binding (parameter or property).
func (u *Universe) NewIdentifier(name string, t Type, optional, rest bool) *Identifier {
	id := &Identifier{
		typeBase: typeBase{name: name, variant: VariantIdentifier},
		typ:      idOf(t),
		optional: optional,
		rest:     rest,
	}
	u.register(id)
	return id
}

// Resolve re-targets every reference recorded on placeholder to target and
// returns how many references were patched. Patched references keep the
// placeholder's name.
func (u *Universe) Resolve(placeholder *Undef, target Type) int {
	refs := placeholder.Refs()
	for _, r := range refs {
		r.patch(target)
	}
	placeholder.refs = nil
	return len(refs)
}

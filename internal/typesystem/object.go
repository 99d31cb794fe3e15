package typesystem

import (
	"github.com/julianjensen/inference/internal/config"
)

// Synthesized names for anonymous entries.
const (
	AnonymousLiteralName = "__type"
	ConstructorsName     = "__new"
	CallablesName        = "__call"
)

// ObjectType is every container variant: Object, Interface, TypeLiteral,
// Module and Namespace. The variant tag only changes rendering, except that
// Module and Namespace are lexical (their members also live in the inner scope).
type ObjectType struct {
	typeBase
	Members
	Generics

	mappedParam TypeID
	mappedValue TypeID
}

func (o *ObjectType) HasMembers() bool { return o.NumMembers() > 0 }

// IsLexical reports whether members are also bound in the inner scope.
func (o *ObjectType) IsLexical() bool {
	return o.variant.Is(VariantModule)
}

// Constructors returns the constructor overload set, or nil.
func (o *ObjectType) Constructors() *CallableType {
	return o.slot(config.ConstructorsSlot)
}

// Callables returns the call signature overload set, or nil.
func (o *ObjectType) Callables() *CallableType {
	return o.slot(config.CallablesSlot)
}

// EnsureConstructors fetches or creates the constructor overload set.
func (o *ObjectType) EnsureConstructors() *CallableType {
	return o.ensureSlot(config.ConstructorsSlot, ConstructorsName, CallableConstructor)
}

// EnsureCallables fetches or creates the call signature overload set.
func (o *ObjectType) EnsureCallables() *CallableType {
	return o.ensureSlot(config.CallablesSlot, CallablesName, CallableCall)
}

func (o *ObjectType) slot(key string) *CallableType {
	t, ok := o.get(key)
	if !ok {
		return nil
	}
	c, _ := t.(*CallableType)
	return c
}

func (o *ObjectType) ensureSlot(key, name string, kind CallableKind) *CallableType {
	if c := o.slot(key); c != nil {
		return c
	}
	c := o.typeBase.u.NewCallable(name, kind)
	o.put(key, c)
	return c
}

// Method returns the method overload set called name.
func (o *ObjectType) Method(name string) (*CallableType, bool) {
	t, ok := o.Member(name)
	if !ok {
		return nil, false
	}
	c, ok := t.(*CallableType)
	if !ok || c.kind != CallableMethod {
		return nil, false
	}
	return c, true
}

// EnsureMethod fetches or creates the method overload set called name, so
// repeated declarations accumulate overloads. A non-method member of the same
// name is replaced.
func (o *ObjectType) EnsureMethod(name string) *CallableType {
	if c, ok := o.Method(name); ok {
		return c
	}
	c := o.typeBase.u.NewCallable(name, CallableMethod)
	o.AddMember(MemberSpec{Name: name, Type: c})
	return c
}

func (o *ObjectType) NumConstructors() int {
	if c := o.Constructors(); c != nil {
		return c.NumSignatures()
	}
	return 0
}

func (o *ObjectType) NumCallables() int {
	if c := o.Callables(); c != nil {
		return c.NumSignatures()
	}
	return 0
}

// NumSignatures counts the call signatures.
func (o *ObjectType) NumSignatures() int { return o.NumCallables() }

// SetMapped marks a TypeLiteral as `{ [param in C]: value }`.
func (o *ObjectType) SetMapped(param *TypeParameter, value Type) {
	o.mappedParam = idOf(param)
	o.mappedValue = idOf(value)
}

// Mapped returns the mapped-type parameter and value, if set.
func (o *ObjectType) Mapped() (*TypeParameter, Type, bool) {
	p, ok := o.typeBase.u.Get(o.mappedParam).(*TypeParameter)
	if !ok {
		return nil, nil, false
	}
	return p, o.typeBase.u.Get(o.mappedValue), true
}

// Instantiate is the generic instantiation hook: a Reference carrying args.
func (o *ObjectType) Instantiate(args ...Type) (*Reference, error) {
	return Instantiate(o, args...)
}

package typesystem

import (
	"fmt"
)

// TypeID is the stable arena index of a Type inside its Universe.
// NoType (zero) never names a real entry.
type TypeID int32

// NoType is the zero TypeID.
const NoType TypeID = 0

// ScopeID is the stable arena index of a scope inside a symbols.Tree.
type ScopeID int32

// NoScope is the zero ScopeID.
const NoScope ScopeID = 0

// Variant tags the concrete alternative of a Type.
type Variant uint8

const (
	VariantNone Variant = iota // wildcard: matches every variant
	VariantPrimitive
	VariantUndef
	VariantReference
	VariantTypeParameter
	VariantList // abstract parent of Union, Intersection and Tuple
	VariantUnion
	VariantIntersection
	VariantTuple
	VariantObject
	VariantInterface
	VariantTypeLiteral
	VariantModule
	VariantNamespace
	VariantCallable
	VariantSignature
	VariantIdentifier
)

var variantNames = map[Variant]string{
	VariantNone:          "type",
	VariantPrimitive:     "primitive",
	VariantUndef:         "undef",
	VariantReference:     "reference",
	VariantTypeParameter: "typeparameter",
	VariantList:          "list",
	VariantUnion:         "union",
	VariantIntersection:  "intersection",
	VariantTuple:         "tuple",
	VariantObject:        "object",
	VariantInterface:     "interface",
	VariantTypeLiteral:   "typeliteral",
	VariantModule:        "module",
	VariantNamespace:     "namespace",
	VariantCallable:      "callable",
	VariantSignature:     "signature",
	VariantIdentifier:    "identifier",
}

func (v Variant) String() string {
	if s, ok := variantNames[v]; ok {
		return s
	}
	return fmt.Sprintf("variant(%d)", uint8(v))
}

// Parent returns the next variant up the is-a chain; VariantNone is the root.
func (v Variant) Parent() Variant {
	switch v {
	case VariantUnion, VariantIntersection, VariantTuple:
		return VariantList
	case VariantInterface, VariantTypeLiteral, VariantModule:
		return VariantObject
	case VariantNamespace:
		return VariantModule
	default:
		return VariantNone
	}
}

// Is reports whether target appears on v's is-a chain. VariantNone matches everything.
func (v Variant) Is(target Variant) bool {
	if target == VariantNone {
		return true
	}
	for cur := v; cur != VariantNone; cur = cur.Parent() {
		if cur == target {
			return true
		}
	}
	return false
}

// Type is the interface for every entry of a Universe.
// The set of implementations is closed to this package.
type Type interface {
	fmt.Stringer
	ID() TypeID
	Name() string
	Variant() Variant
	Universe() *Universe

	// Outer is the scope the type is declared in; Inner is its own scope, if any.
	Outer() ScopeID
	Inner() ScopeID
	SetOuter(ScopeID)
	SetInner(ScopeID)

	// Owner is the enclosing container or overload set, if any.
	Owner() Type
	SetOwner(Type)

	IsType(Variant) bool
	IsTypeOf(Type) bool
	Invariant(Type) bool
	HasMembers() bool

	// Stringify renders the type, using name in the declaration header where
	// the variant has one.
	Stringify(name string) string

	base() *typeBase
}

// typeBase carries the fields every variant shares.
type typeBase struct {
	u       *Universe
	id      TypeID
	name    string
	variant Variant
	outer   ScopeID
	inner   ScopeID
	owner   TypeID
}

func (b *typeBase) ID() TypeID          { return b.id }
func (b *typeBase) Name() string        { return b.name }
func (b *typeBase) Variant() Variant    { return b.variant }
func (b *typeBase) Universe() *Universe { return b.u }
func (b *typeBase) Outer() ScopeID      { return b.outer }
func (b *typeBase) Inner() ScopeID      { return b.inner }
func (b *typeBase) SetOuter(s ScopeID)  { b.outer = s }
func (b *typeBase) SetInner(s ScopeID)  { b.inner = s }
func (b *typeBase) base() *typeBase     { return b }

func (b *typeBase) Owner() Type {
	return b.u.Get(b.owner)
}

func (b *typeBase) SetOwner(t Type) {
	b.owner = idOf(t)
}

// IsType walks the variant chain. VariantNone is a wildcard.
func (b *typeBase) IsType(v Variant) bool {
	return b.variant.Is(v)
}

// IsTypeOf reports whether the other type's variant is on this type's chain.
// A nil candidate matches.
func (b *typeBase) IsTypeOf(other Type) bool {
	if other == nil {
		return true
	}
	return b.variant.Is(other.Variant())
}

// Invariant is strict variant equality.
func (b *typeBase) Invariant(other Type) bool {
	return other != nil && other.Variant() == b.variant
}

func (b *typeBase) HasMembers() bool { return false }

func idOf(t Type) TypeID {
	if t == nil {
		return NoType
	}
	return t.ID()
}

// Same reports whether two types are identical or structurally equal:
// the same variant with the same rendering.
func Same(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Universe() == b.Universe() && a.ID() == b.ID() {
		return true
	}
	return a.Invariant(b) && a.String() == b.String()
}

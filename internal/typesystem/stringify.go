package typesystem

import (
	"strings"

	"github.com/julianjensen/inference/internal/config"
)

// Rendering is single-line and deterministic. Nothing here allocates in the
// Universe or changes the graph.

func (o *ObjectType) String() string { return o.Stringify(o.name) }

// Stringify renders the container with name in its header.
func (o *ObjectType) Stringify(name string) string {
	body := o.body()
	if o.variant == VariantTypeLiteral || o.variant == VariantObject && isAnonymousName(name) {
		return body
	}
	return o.Header(name) + " " + body
}

// Header renders the part of a container declaration before its body, such
// as `interface Box<T>`. Literals have no header.
func (o *ObjectType) Header(name string) string {
	switch o.variant {
	case VariantInterface:
		return "interface " + name + o.declaration()
	case VariantModule:
		return "module " + name
	case VariantNamespace:
		return "namespace " + name
	case VariantTypeLiteral:
		return ""
	}
	return name + o.declaration()
}

func (o *ObjectType) body() string {
	var parts []string
	if p, v, ok := o.Mapped(); ok {
		parts = append(parts, RenderMapped(p, v))
	}
	o.EachMember(func(name string, t Type) bool {
		parts = append(parts, RenderEntry(name, t))
		return true
	})
	if idx, ok := o.Index(); ok {
		parts = append(parts, idx.String())
	}
	if len(parts) == 0 {
		return "{}"
	}
	return "{ " + strings.Join(parts, "; ") + " }"
}

// String renders `[key: K]: V`.
func (idx IndexSignature) String() string {
	return "[" + idx.KeyName + ": " + TypeText(idx.Key) + "]: " + TypeText(idx.Value)
}

// RenderMapped renders the mapped member `[P in keyof C]: V`.
func RenderMapped(p *TypeParameter, value Type) string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(p.name)
	b.WriteString(" in ")
	if p.keyOf {
		b.WriteString("keyof ")
	}
	b.WriteString(operand(p.Constraint()))
	b.WriteString("]: ")
	b.WriteString(TypeText(value))
	return b.String()
}

func (c *CallableType) String() string { return c.Stringify(c.name) }

// Stringify renders every overload, joined with "; ".
func (c *CallableType) Stringify(name string) string {
	return strings.Join(c.Overloads(name), "; ")
}

// Overloads renders each signature on its own: `new(...)` for constructors,
// `(...)` for anonymous call signatures and `name(...)` otherwise.
func (c *CallableType) Overloads(name string) []string {
	sigs := c.Signatures()
	parts := make([]string, len(sigs))
	for i, s := range sigs {
		switch {
		case c.kind == CallableConstructor:
			parts[i] = s.Stringify("new")
		case c.kind == CallableCall && isAnonymousName(name):
			parts[i] = s.Stringify("")
		default:
			parts[i] = s.Stringify(name)
		}
	}
	return parts
}

func (s *Signature) String() string { return s.Stringify(s.name) }

// Stringify renders `name<T>(a: T, b?: string, ...rest: any[]): R`.
func (s *Signature) Stringify(name string) string {
	var b strings.Builder
	b.WriteString(name)
	b.WriteString(s.declaration())
	b.WriteByte('(')
	for i, p := range s.Parameters() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
	}
	b.WriteByte(')')
	if ret := s.ReturnType(); ret != nil {
		b.WriteString(": ")
		b.WriteString(TypeText(ret))
	}
	return b.String()
}

// RenderEntry renders one member or scope entry bound under name.
func RenderEntry(name string, t Type) string {
	switch v := t.(type) {
	case nil:
		return name + ": " + config.AnyTypeName
	case *Identifier, *CallableType, *Signature, *Undef:
		return v.Stringify(name)
	case *ObjectType:
		if v.name == name && !v.variant.Is(VariantTypeLiteral) {
			return v.String()
		}
	}
	return "type " + name + " = " + TypeText(t)
}

// operand renders t for use inside an array suffix or intersection.
func operand(t Type) string {
	if t == nil {
		return config.AnyTypeName
	}
	s := TypeText(t)
	if t.IsType(VariantUnion) || t.IsType(VariantIntersection) {
		if l, ok := t.(*ListType); ok && l.Len() > 1 {
			return "(" + s + ")"
		}
	}
	return s
}

// TypeText renders t in a type position, where named containers appear by
// name only.
func TypeText(t Type) string {
	if t == nil {
		return config.AnyTypeName
	}
	if o, ok := t.(*ObjectType); ok && !o.variant.Is(VariantTypeLiteral) && !isAnonymous(o) {
		return o.name
	}
	return t.String()
}

func joinTypes(types []Type, sep string) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = TypeText(t)
	}
	return strings.Join(parts, sep)
}

func joinStrings(parts []string, sep string) string {
	return strings.Join(parts, sep)
}

func isAnonymousName(name string) bool {
	switch name {
	case "", AnonymousLiteralName, CallablesName, ConstructorsName:
		return true
	}
	return config.IsSlot(name)
}

func isAnonymous(t Type) bool {
	return isAnonymousName(t.Name())
}

func (u *Universe) resolve(ids []TypeID) []Type {
	out := make([]Type, len(ids))
	for i, id := range ids {
		out[i] = u.Get(id)
	}
	return out
}

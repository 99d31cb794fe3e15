package typesystem

import (
	"strings"

	"github.com/julianjensen/inference/internal/config"
)

// Primitive is one of the cached built-in scalar types.
type Primitive struct {
	typeBase
}

func (p *Primitive) String() string               { return p.name }
func (p *Primitive) Stringify(name string) string { return p.name }

// Undef stands for a name that was referenced before it was declared.
// Every Reference pointing at it is recorded so it can be re-targeted later.
type Undef struct {
	typeBase
	refs []TypeID
}

func (t *Undef) String() string               { return t.name }
func (t *Undef) Stringify(name string) string { return t.name }

// Refs returns the references currently pointing at this placeholder.
func (t *Undef) Refs() []*Reference {
	out := make([]*Reference, 0, len(t.refs))
	for _, id := range t.refs {
		if r, ok := t.u.Get(id).(*Reference); ok {
			out = append(out, r)
		}
	}
	return out
}

func (t *Undef) addRef(r *Reference) {
	t.refs = append(t.refs, r.id)
}

// Reference is a named-type usage with optional type arguments.
type Reference struct {
	typeBase
	ref  TypeID
	args []TypeID
}

// Target returns the referenced type, which may be an Undef.
func (r *Reference) Target() Type {
	return r.u.Get(r.ref)
}

// Retarget points the reference at t. Undef targets record the reference.
func (r *Reference) Retarget(t Type) {
	r.ref = idOf(t)
	if t != nil {
		r.name = t.Name()
	}
	if undef, ok := t.(*Undef); ok {
		undef.addRef(r)
	}
}

// patch points a forward reference at its real declaration. The reference
// keeps the placeholder's name, so a recursive alias renders by name.
func (r *Reference) patch(t Type) {
	r.ref = idOf(t)
	if undef, ok := t.(*Undef); ok {
		undef.addRef(r)
	}
}

// AddTypeArgument appends one type argument.
func (r *Reference) AddTypeArgument(t Type) {
	r.args = append(r.args, idOf(t))
}

// TypeArguments returns the type arguments in order.
func (r *Reference) TypeArguments() []Type {
	return r.u.resolve(r.args)
}

// IsArray reports whether this is Array<E>.
func (r *Reference) IsArray() bool {
	array, ok := r.u.Builtin(config.ArrayTypeName)
	return ok && r.ref == array.id && len(r.args) == 1
}

// ElementType is E for Array<E>, else nil.
func (r *Reference) ElementType() Type {
	if !r.IsArray() {
		return nil
	}
	return r.u.Get(r.args[0])
}

func (r *Reference) HasMembers() bool {
	t := r.Target()
	return t != nil && t.HasMembers()
}

func (r *Reference) String() string { return r.Stringify(r.name) }

func (r *Reference) Stringify(name string) string {
	if r.IsArray() {
		return operand(r.ElementType()) + "[]"
	}
	head := r.name
	if target := r.Target(); target != nil && isAnonymousName(r.name) && isAnonymous(target) {
		head = target.String()
	}
	if len(r.args) == 0 {
		return head
	}
	return head + "<" + joinTypes(r.TypeArguments(), ", ") + ">"
}

// TypeParameter is a generic parameter with an optional constraint.
type TypeParameter struct {
	typeBase
	constraint TypeID
	keyOf      bool
}

// Constraint returns the constraint type or nil.
func (p *TypeParameter) Constraint() Type {
	return p.u.Get(p.constraint)
}

// SetConstraint replaces the constraint.
func (p *TypeParameter) SetConstraint(t Type) {
	p.constraint = idOf(t)
}

// KeyOf marks a `keyof C` constraint.
func (p *TypeParameter) KeyOf() bool { return p.keyOf }

func (p *TypeParameter) String() string               { return p.name }
func (p *TypeParameter) Stringify(name string) string { return name }

// Declaration renders the parameter as written in a type parameter list:
// `T`, `T extends C` or `K extends keyof C`.
func (p *TypeParameter) Declaration() string {
	c := p.Constraint()
	if c == nil {
		return p.name
	}
	var b strings.Builder
	b.WriteString(p.name)
	b.WriteString(" extends ")
	if p.keyOf {
		b.WriteString("keyof ")
	}
	b.WriteString(operand(c))
	return b.String()
}

// Identifier binds a name to a type. It models parameters and properties.
type Identifier struct {
	typeBase
	typ      TypeID
	optional bool
	rest     bool
}

// Type returns the bound type.
func (id *Identifier) Type() Type { return id.u.Get(id.typ) }

// SetType rebinds the identifier.
func (id *Identifier) SetType(t Type) { id.typ = idOf(t) }

func (id *Identifier) Optional() bool { return id.optional }
func (id *Identifier) Rest() bool     { return id.rest }

func (id *Identifier) HasMembers() bool {
	t := id.Type()
	return t != nil && t.HasMembers()
}

func (id *Identifier) String() string { return id.Stringify(id.name) }

// Stringify renders `name?: type` or `...name: type`.
func (id *Identifier) Stringify(name string) string {
	var b strings.Builder
	if id.rest {
		b.WriteString("...")
	}
	b.WriteString(name)
	if id.optional {
		b.WriteByte('?')
	}
	b.WriteString(": ")
	b.WriteString(TypeText(id.Type()))
	return b.String()
}

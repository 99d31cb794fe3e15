package typesystem

import (
	"strings"
)

// HasTypeParameters is implemented by variants that carry a Generics value.
type HasTypeParameters interface {
	Type
	TypeParams() *Generics
}

// Generics is the ordered type parameter list of a container or signature.
type Generics struct {
	gu      *Universe
	tparams []TypeID
}

// AddTypeParameter appends p.
func (g *Generics) AddTypeParameter(p *TypeParameter) {
	g.tparams = append(g.tparams, p.id)
}

// TypeParameters returns the parameters in declaration order.
func (g *Generics) TypeParameters() []*TypeParameter {
	out := make([]*TypeParameter, 0, len(g.tparams))
	for _, id := range g.tparams {
		if p, ok := g.gu.Get(id).(*TypeParameter); ok {
			out = append(out, p)
		}
	}
	return out
}

// TypeParameter finds a parameter by name.
func (g *Generics) TypeParameter(name string) (*TypeParameter, bool) {
	for _, p := range g.TypeParameters() {
		if p.name == name {
			return p, true
		}
	}
	return nil, false
}

func (g *Generics) HasTypeParameters() bool { return len(g.tparams) > 0 }
func (g *Generics) NumTypeParameters() int  { return len(g.tparams) }

// TypeParams exposes the capability itself.
func (g *Generics) TypeParams() *Generics { return g }

// declaration renders `<T, K extends keyof T>`, or "" without parameters.
func (g *Generics) declaration() string {
	if len(g.tparams) == 0 {
		return ""
	}
	parts := make([]string, 0, len(g.tparams))
	for _, p := range g.TypeParameters() {
		parts = append(parts, p.Declaration())
	}
	return "<" + strings.Join(parts, ", ") + ">"
}

// Instantiate builds a Reference to generic with the given arguments.
// No substitution is performed; fewer arguments than parameters are accepted.
func Instantiate(generic HasTypeParameters, args ...Type) (*Reference, error) {
	g := generic.TypeParams()
	if len(args) > g.NumTypeParameters() {
		return nil, &ArityError{Name: generic.Name(), Want: g.NumTypeParameters(), Got: len(args)}
	}
	return generic.Universe().NewReference(generic, args...), nil
}

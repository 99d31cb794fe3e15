package analyzer

import (
	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/decl"
	"github.com/julianjensen/inference/internal/diagnostics"
	"github.com/julianjensen/inference/internal/symbols"
	"github.com/julianjensen/inference/internal/typesystem"
)

// MemberKind selects how AddMember treats a member declaration.
type MemberKind string

const (
	MemberConstructor MemberKind = "constructor"
	MemberMethod      MemberKind = "method"
	MemberCallable    MemberKind = "callable"
	MemberProperty    MemberKind = "property"
	MemberIndex       MemberKind = "index"
	MemberTypeParam   MemberKind = "typeparam"
)

// MemberKindOf maps a massaged declaration's name and flags onto a MemberKind.
func MemberKindOf(d *decl.Declaration) (MemberKind, bool) {
	switch d.Flags {
	case config.FlagSignature:
		switch d.Name {
		case config.NewMemberName:
			return MemberConstructor, true
		case config.CallMemberName:
			return MemberCallable, true
		case config.IndexMemberName:
			return MemberIndex, true
		}
	case config.FlagMethod:
		return MemberMethod, true
	case config.FlagProperty:
		return MemberProperty, true
	case config.FlagTypeParameter:
		return MemberTypeParam, true
	}
	return "", false
}

// AutoMember dispatches d onto AddMember using its name and flags.
func (c *Compiler) AutoMember(container *typesystem.ObjectType, d *decl.Declaration, scope *symbols.SymbolTable) error {
	kind, ok := MemberKindOf(d)
	if !ok {
		return diagnostics.NewUnknownMemberError(d.Name, d.Flags, d)
	}
	return c.AddMember(container, kind, d, d.Name, scope)
}

// AddMember compiles d into container. Member types are compiled in the
// container's inner scope, a child of scope.
func (c *Compiler) AddMember(container *typesystem.ObjectType, kind MemberKind, d *decl.Declaration, name string, scope *symbols.SymbolTable) error {
	inner := scope.From(container)
	c.log.Debug("add member", "container", container.Name(), "kind", kind, "name", name)

	switch kind {
	case MemberConstructor:
		return c.addSignatures(container.EnsureConstructors(), "", d, inner)
	case MemberCallable:
		return c.addSignatures(container.EnsureCallables(), "", d, inner)
	case MemberMethod:
		return c.addSignatures(container.EnsureMethod(name), name, d, inner)
	case MemberProperty:
		return c.addProperty(container, d, name, inner)
	case MemberIndex:
		return c.addIndex(container, d, inner)
	case MemberTypeParam:
		return diagnostics.NewSyntaxError(d, "type parameter '%s' cannot be added as a member", name)
	}
	return diagnostics.NewUnknownMemberError(name, string(kind), d)
}

func (c *Compiler) addSignatures(set *typesystem.CallableType, name string, d *decl.Declaration, scope *symbols.SymbolTable) error {
	for _, v := range d.Decls {
		sig, err := c.signature(name, v, scope)
		if err != nil {
			return err
		}
		set.AddSignature(sig)
	}
	return nil
}

// signature compiles one overload. Type parameters, parameters and the return
// type are compiled in the signature's own scope.
func (c *Compiler) signature(name string, v *decl.Decl, scope *symbols.SymbolTable) (*typesystem.Signature, error) {
	if v == nil {
		return nil, diagnostics.NewSyntaxError(nil, "empty signature for '%s'", name)
	}
	sig := c.u.NewSignature(name)
	local := scope.From(sig)

	for _, tp := range v.TypeParameters {
		p, err := c.TypeParameterDef(tp, local)
		if err != nil {
			return nil, err
		}
		sig.AddTypeParameter(p)
	}
	for _, pr := range v.Parameters {
		if pr == nil || pr.Name == "" {
			return nil, diagnostics.NewSyntaxError(v, "parameter without a name in '%s'", name)
		}
		t, err := c.typeOrAny(pr.Type, local)
		if err != nil {
			return nil, err
		}
		if pr.Rest && !isArrayType(t) {
			t = c.u.NewArrayOf(t)
		}
		sig.AddParameter(c.u.NewIdentifier(pr.Name, t, pr.Optional, pr.Rest))
	}
	if v.Type != nil {
		ret, err := c.TypeDef(v.Type, local)
		if err != nil {
			return nil, err
		}
		sig.SetReturnType(ret)
	}
	return sig, nil
}

func isArrayType(t typesystem.Type) bool {
	r, ok := t.(*typesystem.Reference)
	return ok && r.IsArray()
}

func (c *Compiler) addProperty(container *typesystem.ObjectType, d *decl.Declaration, name string, scope *symbols.SymbolTable) error {
	if len(d.Decls) == 0 {
		return diagnostics.NewSyntaxError(d, "property '%s' has no declaration", name)
	}
	v := d.Decls[0]
	t, err := c.typeOrAny(v.Type, scope)
	if err != nil {
		return err
	}
	container.AddMember(typesystem.MemberSpec{
		Name: name,
		Type: c.u.NewIdentifier(name, t, v.Optional, false),
	})
	return nil
}

// addIndex installs the container's single index signature. A second one
// replaces the first unless the config asks for an error.
func (c *Compiler) addIndex(container *typesystem.ObjectType, d *decl.Declaration, scope *symbols.SymbolTable) error {
	for _, v := range d.Decls {
		value, err := c.typeOrAny(v.Type, scope)
		if err != nil {
			return err
		}
		keyName := "key"
		var key typesystem.Type = c.u.MustPrimitive(config.StringTypeName)
		if len(v.Parameters) > 0 && v.Parameters[0] != nil {
			if v.Parameters[0].Name != "" {
				keyName = v.Parameters[0].Name
			}
			if key, err = c.typeOrAny(v.Parameters[0].Type, scope); err != nil {
				return err
			}
		}
		if _, exists := container.Index(); exists && c.cfg.IndexPolicy() == config.IndexError {
			return diagnostics.NewSyntaxError(d, "duplicate index signature on '%s'", container.Name())
		}
		if container.AddMember(typesystem.MemberSpec{KeyName: keyName, KeyType: key, ValueType: value}) {
			c.log.Debug("index signature replaced", "container", container.Name())
		}
	}
	return nil
}

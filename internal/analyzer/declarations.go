package analyzer

import (
	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/decl"
	"github.com/julianjensen/inference/internal/diagnostics"
	"github.com/julianjensen/inference/internal/symbols"
	"github.com/julianjensen/inference/internal/typesystem"
)

// CreateType compiles one top-level (or module-level) declaration and binds
// it in scope under its name.
func (c *Compiler) CreateType(d *decl.Declaration, scope *symbols.SymbolTable) (typesystem.Type, error) {
	if d == nil {
		return nil, diagnostics.NewSyntaxError(nil, "nil declaration")
	}
	kind := decl.GetKind(d)
	if d.Name == "" {
		return nil, diagnostics.NewSyntaxError(d, "declaration of kind '%s' has no name", kind)
	}
	c.log.Debug("create type", "name", d.Name, "kind", kind, "scope", scope.Path())

	switch kind {
	case config.KindInterface:
		return c.container(d, scope, typesystem.VariantInterface, config.KindInterface)
	case config.KindClass:
		return c.container(d, scope, typesystem.VariantObject, config.KindClass)
	case config.KindTypeLiteral:
		return c.container(d, scope, typesystem.VariantTypeLiteral, config.KindTypeLiteral)
	case config.KindModule:
		return c.module(d, scope)
	case config.KindTypeAlias:
		return c.alias(d, scope)
	case config.KindFunction:
		return c.function(d, scope)
	case config.KindVariable:
		return c.variable(d, scope)
	}
	return nil, diagnostics.NewSyntaxError(d, "unknown declaration kind '%s' for '%s'", kind, d.Name)
}

// bind adds t to scope under name. When the name was a forward-reference
// placeholder, references to it are re-targeted to t first.
func (c *Compiler) bind(scope *symbols.SymbolTable, name string, t typesystem.Type) {
	if c.cfg.PatchesForwardRefs() {
		c.patchForward(scope, name, t)
	}
	scope.AddAs(name, t)
}

// patchForward resolves the placeholder for name bound in scope, and the ones
// left in nested modules that never declared name themselves.
func (c *Compiler) patchForward(scope *symbols.SymbolTable, name string, t typesystem.Type) {
	if prev, ok := scope.Find(name, true); ok {
		if undef, isUndef := prev.(*typesystem.Undef); isUndef && prev != t {
			n := c.u.Resolve(undef, t)
			c.log.Debug("patched forward references", "name", name, "scope", scope.Path(), "count", n)
		}
	}
	for _, child := range scope.Children() {
		if child.Kind() != symbols.ScopeModule {
			continue
		}
		prev, ok := child.Find(name, true)
		if !ok {
			c.patchForward(child, name, t)
			continue
		}
		if undef, isUndef := prev.(*typesystem.Undef); isUndef {
			n := c.u.Resolve(undef, t)
			child.Remove(name)
			c.log.Debug("patched forward references", "name", name, "scope", child.Path(), "count", n)
			c.patchForward(child, name, t)
		}
	}
}

// existing returns a same-variant container already bound in scope, for
// declaration merging.
func existing(scope *symbols.SymbolTable, name string, v typesystem.Variant) (*typesystem.ObjectType, bool) {
	prev, ok := scope.Find(name, true)
	if !ok {
		return nil, false
	}
	obj, ok := prev.(*typesystem.ObjectType)
	if !ok || obj.Variant() != v {
		return nil, false
	}
	return obj, true
}

func (c *Compiler) newContainer(v typesystem.Variant, name string) *typesystem.ObjectType {
	switch v {
	case typesystem.VariantInterface:
		return c.u.NewInterface(name)
	case typesystem.VariantModule:
		return c.u.NewModule(name)
	case typesystem.VariantNamespace:
		return c.u.NewNamespace(name)
	case typesystem.VariantTypeLiteral:
		return c.u.NewTypeLiteral()
	default:
		return c.u.NewObject(name)
	}
}

// container compiles interfaces, classes and named literals. Every decl of the
// given kind merges into one container; other decl kinds (typically the
// `declare var` half of a builtin) are skipped.
func (c *Compiler) container(d *decl.Declaration, scope *symbols.SymbolTable, v typesystem.Variant, declKind string) (typesystem.Type, error) {
	obj, merged := existing(scope, d.Name, v)
	if !merged {
		obj = c.newContainer(v, d.Name)
		c.bind(scope, d.Name, obj)
	}
	inner := scope.From(obj)

	for _, variant := range d.Decls {
		if variant == nil {
			continue
		}
		if variant.Kind != "" && variant.Kind != declKind {
			c.log.Debug("skipping decl", "name", d.Name, "kind", variant.Kind)
			continue
		}
		for _, tp := range variant.TypeParameters {
			if tp != nil {
				if prev, dup := obj.TypeParameter(tp.Name); dup {
					if !inner.HasOwn(tp.Name) {
						inner.Add(prev)
					}
					continue
				}
			}
			p, err := c.TypeParameterDef(tp, inner)
			if err != nil {
				return nil, err
			}
			obj.AddTypeParameter(p)
		}
		for _, m := range variant.Members {
			if err := c.AutoMember(obj, m, scope); err != nil {
				return nil, err
			}
		}
	}
	return obj, nil
}

// module compiles a module or (flags Namespace) namespace. Nested declarations
// are created in its inner scope and also recorded as members.
func (c *Compiler) module(d *decl.Declaration, scope *symbols.SymbolTable) (typesystem.Type, error) {
	v := typesystem.VariantModule
	if d.Flags == config.FlagNamespace {
		v = typesystem.VariantNamespace
	}
	mod, merged := existing(scope, d.Name, v)
	if !merged {
		mod = c.newContainer(v, d.Name)
		c.bind(scope, d.Name, mod)
	}
	inner := scope.From(mod)

	for _, variant := range d.Decls {
		if variant == nil {
			continue
		}
		for _, nested := range variant.Members {
			t, err := c.CreateType(nested, inner)
			if err != nil {
				return nil, err
			}
			mod.AddMember(typesystem.MemberSpec{Name: nested.Name, Type: t})
		}
	}
	return mod, nil
}

func (c *Compiler) alias(d *decl.Declaration, scope *symbols.SymbolTable) (typesystem.Type, error) {
	v := firstDecl(d, config.KindTypeAlias)
	if v == nil || v.Type == nil {
		return nil, diagnostics.NewSyntaxError(d, "type alias '%s' has no type", d.Name)
	}
	bodyScope := scope
	if len(v.TypeParameters) > 0 {
		holder := c.u.NewSignature(d.Name)
		bodyScope = scope.From(holder)
		for _, tp := range v.TypeParameters {
			p, err := c.TypeParameterDef(tp, bodyScope)
			if err != nil {
				return nil, err
			}
			holder.AddTypeParameter(p)
		}
	}
	t, err := c.TypeDef(v.Type, bodyScope)
	if err != nil {
		return nil, err
	}
	c.bind(scope, d.Name, t)
	return t, nil
}

// function compiles a function declaration into a named overload set. Later
// declarations of the same name add overloads.
func (c *Compiler) function(d *decl.Declaration, scope *symbols.SymbolTable) (typesystem.Type, error) {
	var fn *typesystem.CallableType
	if prev, ok := scope.Find(d.Name, true); ok {
		if set, isSet := prev.(*typesystem.CallableType); isSet && set.IsCallable() {
			fn = set
		}
	}
	if fn == nil {
		fn = c.u.NewCallable(d.Name, typesystem.CallableCall)
		c.bind(scope, d.Name, fn)
	}
	for _, v := range d.Decls {
		if v == nil || v.Kind != "" && v.Kind != config.KindFunction {
			continue
		}
		sig, err := c.signature(d.Name, v, scope)
		if err != nil {
			return nil, err
		}
		fn.AddSignature(sig)
	}
	return fn, nil
}

func (c *Compiler) variable(d *decl.Declaration, scope *symbols.SymbolTable) (typesystem.Type, error) {
	v := firstDecl(d, config.KindVariable)
	if v == nil {
		return nil, diagnostics.NewSyntaxError(d, "variable '%s' has no declaration", d.Name)
	}
	t, err := c.typeOrAny(v.Type, scope)
	if err != nil {
		return nil, err
	}
	id := c.u.NewIdentifier(d.Name, t, v.Optional, false)
	c.bind(scope, d.Name, id)
	return id, nil
}

func firstDecl(d *decl.Declaration, kind string) *decl.Decl {
	for _, v := range d.Decls {
		if v != nil && (v.Kind == "" || v.Kind == kind) {
			return v
		}
	}
	return nil
}

package analyzer

import (
	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/decl"
	"github.com/julianjensen/inference/internal/diagnostics"
	"github.com/julianjensen/inference/internal/symbols"
	"github.com/julianjensen/inference/internal/typesystem"
)

// TypeDef compiles a type record in scope.
//
// Arrays wrap the compiled element in Array<E>. A string discriminator selects
// reference, typeliteral, union, intersection, tuple or mapped handling; any
// other discriminator must name a primitive or a scope entry. Without a
// discriminator, typeName is a required lookup.
func (c *Compiler) TypeDef(rec *decl.TypeRecord, scope *symbols.SymbolTable) (typesystem.Type, error) {
	if rec == nil {
		return nil, diagnostics.NewSyntaxError(nil, "missing type record")
	}
	if rec.IsArray {
		elem, err := c.TypeDef(rec.WithoutArray(), scope)
		if err != nil {
			return nil, err
		}
		return c.u.NewArrayOf(elem), nil
	}

	if rec.Type != "" {
		switch rec.Type {
		case config.RecordReference:
			return c.reference(rec, scope)
		case config.RecordTypeLiteral:
			return c.typeLiteral(rec, scope)
		case config.RecordUnion, config.RecordIntersection, config.RecordTuple:
			return c.list(rec, scope)
		case config.RecordMapped:
			return c.mapped(rec, scope)
		}
		if p, ok := c.u.Primitive(rec.Type); ok {
			return p, nil
		}
		if t, ok := scope.Resolve(rec.Type); ok {
			return t, nil
		}
		return nil, diagnostics.NewUnknownDiscriminatorError(rec.Type, rec)
	}

	if rec.TypeName != "" {
		t, err := c.requireType(rec.TypeName, rec, scope)
		if err != nil {
			return nil, err
		}
		if len(rec.TypeArguments) == 0 {
			return t, nil
		}
		return c.instantiate(t, rec, scope)
	}

	return nil, diagnostics.NewSyntaxError(rec, "unrecognized type record shape")
}

// typeOrAny compiles rec, defaulting a missing record to any.
func (c *Compiler) typeOrAny(rec *decl.TypeRecord, scope *symbols.SymbolTable) (typesystem.Type, error) {
	if rec == nil {
		return c.u.MustPrimitive(config.AnyTypeName), nil
	}
	return c.TypeDef(rec, scope)
}

// requireType resolves name or fails with a reference error.
func (c *Compiler) requireType(name string, rec any, scope *symbols.SymbolTable) (typesystem.Type, error) {
	if p, ok := c.u.Primitive(name); ok {
		return p, nil
	}
	if t, ok := scope.Resolve(name); ok {
		return t, nil
	}
	return nil, diagnostics.NewReferenceError(name, rec)
}

// softType resolves name, creating an Undef in the nearest module or global
// scope when nothing is bound. Later references to the same name share that
// placeholder.
func (c *Compiler) softType(name string, scope *symbols.SymbolTable) typesystem.Type {
	if p, ok := c.u.Primitive(name); ok {
		return p
	}
	if t, ok := scope.Resolve(name); ok {
		return t
	}
	undef := c.u.NewUndef(name)
	scope.Lexical().AddAs(name, undef)
	c.log.Debug("forward reference", "name", name, "scope", scope.Path())
	return undef
}

func (c *Compiler) reference(rec *decl.TypeRecord, scope *symbols.SymbolTable) (typesystem.Type, error) {
	if rec.TypeName == "" {
		return nil, diagnostics.NewSyntaxError(rec, "reference without typeName")
	}
	return c.instantiate(c.softType(rec.TypeName, scope), rec, scope)
}

// instantiate wraps target in a Reference carrying the record's type arguments.
func (c *Compiler) instantiate(target typesystem.Type, rec *decl.TypeRecord, scope *symbols.SymbolTable) (typesystem.Type, error) {
	args := make([]typesystem.Type, 0, len(rec.TypeArguments))
	for _, a := range rec.TypeArguments {
		t, err := c.typeArgument(a, scope)
		if err != nil {
			return nil, err
		}
		args = append(args, t)
	}
	generic, ok := target.(typesystem.HasTypeParameters)
	if !ok || !generic.TypeParams().HasTypeParameters() {
		return c.u.NewReference(target, args...), nil
	}
	ref, err := typesystem.Instantiate(generic, args...)
	if err != nil {
		return nil, diagnostics.NewSyntaxError(rec, "%s", err.Error())
	}
	return ref, nil
}

// typeArgument resolves simple names softly and compiles everything else.
func (c *Compiler) typeArgument(rec *decl.TypeRecord, scope *symbols.SymbolTable) (typesystem.Type, error) {
	if rec != nil && rec.IsBare() {
		switch rec.Type {
		case config.RecordReference, config.RecordTypeLiteral, config.RecordUnion,
			config.RecordIntersection, config.RecordTuple, config.RecordMapped:
		default:
			return c.softType(rec.Type, scope), nil
		}
	}
	return c.TypeDef(rec, scope)
}

func (c *Compiler) typeLiteral(rec *decl.TypeRecord, scope *symbols.SymbolTable) (typesystem.Type, error) {
	lit := c.u.NewTypeLiteral()
	for _, m := range rec.Members {
		if err := c.AutoMember(lit, m, scope); err != nil {
			return nil, err
		}
	}
	return lit, nil
}

func (c *Compiler) list(rec *decl.TypeRecord, scope *symbols.SymbolTable) (typesystem.Type, error) {
	types := make([]typesystem.Type, 0, len(rec.Types))
	for _, r := range rec.Types {
		t, err := c.TypeDef(r, scope)
		if err != nil {
			return nil, err
		}
		types = append(types, t)
	}
	switch rec.Type {
	case config.RecordUnion:
		return c.u.NewUnion(types...), nil
	case config.RecordIntersection:
		return c.u.NewIntersection(types...), nil
	default:
		return c.u.NewTuple(types...), nil
	}
}

// mapped builds `{ [K in C]: V }` as a TypeLiteral. Only the parameter (with
// its keyof flag) and the value type are modeled.
func (c *Compiler) mapped(rec *decl.TypeRecord, scope *symbols.SymbolTable) (typesystem.Type, error) {
	if rec.TypeParameter == nil {
		return nil, diagnostics.NewSyntaxError(rec, "mapped type without typeParameter")
	}
	lit := c.u.NewTypeLiteral()
	inner := scope.From(lit)
	param, err := c.TypeParameterDef(rec.TypeParameter, inner)
	if err != nil {
		return nil, err
	}
	value, err := c.typeOrAny(rec.ValueType, inner)
	if err != nil {
		return nil, err
	}
	lit.SetMapped(param, value)
	for _, m := range rec.Members {
		if err := c.AutoMember(lit, m, scope); err != nil {
			return nil, err
		}
	}
	return lit, nil
}

// TypeParameterDef parses one of the three type parameter shapes and binds
// the parameter in scope so later parameters and members can refer to it.
func (c *Compiler) TypeParameterDef(rec *decl.TypeParamRecord, scope *symbols.SymbolTable) (*typesystem.TypeParameter, error) {
	if rec == nil || rec.Name == "" {
		return nil, diagnostics.NewSyntaxError(rec, "type parameter without a name")
	}
	hasConstraint := rec.TypeOperator != "" || rec.Constraint != nil
	if rec.TypeName != "" && rec.TypeName != rec.Name && !hasConstraint {
		return nil, diagnostics.NewSyntaxError(rec, "malformed type parameter '%s': typeName '%s' without a constraint", rec.Name, rec.TypeName)
	}
	if rec.KeyOf && !hasConstraint {
		return nil, diagnostics.NewSyntaxError(rec, "malformed type parameter '%s': keyOf without typeOperator", rec.Name)
	}

	var constraint typesystem.Type
	switch {
	case rec.Constraint != nil:
		t, err := c.TypeDef(rec.Constraint, scope)
		if err != nil {
			return nil, err
		}
		constraint = t
	case rec.TypeOperator != "":
		constraint = c.u.NewReference(c.softType(rec.TypeOperator, scope))
	}

	p := c.u.NewTypeParameter(rec.Name, constraint, rec.KeyOf)
	scope.Add(p)
	return p, nil
}

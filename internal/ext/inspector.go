package ext

import (
	"fmt"
	"go/types"
	"os"
	"strings"

	"gitlab.com/tozd/go/errors"
	"golang.org/x/tools/go/packages"

	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/decl"
	"github.com/julianjensen/inference/internal/logger"
)

// LoadGoPackages loads and type-checks the packages matching patterns,
// resolved from dir.
func LoadGoPackages(dir string, patterns ...string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Mode: packages.NeedName |
			packages.NeedTypes |
			packages.NeedImports |
			packages.NeedDeps,
		Dir: dir,
		Env: append(os.Environ(), "GOWORK=off"),
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, errors.Errorf("loading packages: %w", err)
	}

	// Check for package errors
	var errs []string
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Sprintf("%s: %s", pkg.PkgPath, e.Msg))
		}
	}
	if len(errs) > 0 {
		return nil, errors.Errorf("package errors:\n  %s", strings.Join(errs, "\n  "))
	}
	return pkgs, nil
}

// InspectGoPackage turns the exported API of pkg into declarations:
// interfaces and structs become InterfaceDeclarations, other named types
// become aliases of their underlying type, and functions, variables and
// constants become function and variable declarations. Output is sorted by
// name.
func InspectGoPackage(pkg *types.Package) ([]*decl.Declaration, error) {
	if pkg == nil {
		return nil, errors.New("inspect: nil package")
	}
	ins := &goInspector{pkg: pkg}
	scope := pkg.Scope()

	var out []*decl.Declaration
	for _, name := range scope.Names() {
		obj := scope.Lookup(name)
		if !obj.Exported() {
			continue
		}
		var d *decl.Declaration
		switch o := obj.(type) {
		case *types.TypeName:
			d = ins.typeDecl(o)
		case *types.Func:
			d = ins.funcDecl(o.Name(), o.Type().(*types.Signature))
		case *types.Var:
			d = variable(o.Name(), ins.record(o.Type()))
		case *types.Const:
			d = variable(o.Name(), ins.record(o.Type()))
		}
		if d != nil {
			out = append(out, d)
		}
	}
	logger.Debug("inspected go package", "path", pkg.Path(), "declarations", len(out))
	return out, nil
}

type goInspector struct {
	pkg *types.Package
}

func (ins *goInspector) typeDecl(obj *types.TypeName) *decl.Declaration {
	if obj.IsAlias() {
		return alias(obj.Name(), ins.record(obj.Type()))
	}
	named, ok := obj.Type().(*types.Named)
	if !ok {
		return nil
	}
	tparams := ins.typeParams(named.TypeParams())

	switch u := named.Underlying().(type) {
	case *types.Interface:
		if isErrorType(named) {
			break
		}
		members := make([]*decl.Declaration, 0, u.NumMethods())
		for i := 0; i < u.NumMethods(); i++ {
			m := u.Method(i)
			if m.Exported() {
				members = append(members, ins.method(m))
			}
		}
		return iface(obj.Name(), tparams, members)

	case *types.Struct:
		var members []*decl.Declaration
		for i := 0; i < u.NumFields(); i++ {
			f := u.Field(i)
			if !f.Exported() || f.Embedded() {
				continue
			}
			_, ptr := f.Type().(*types.Pointer)
			members = append(members, property(f.Name(), ins.record(f.Type()), ptr))
		}
		mset := types.NewMethodSet(types.NewPointer(named))
		for i := 0; i < mset.Len(); i++ {
			if fn, ok := mset.At(i).Obj().(*types.Func); ok && fn.Exported() {
				members = append(members, ins.method(fn))
			}
		}
		return iface(obj.Name(), tparams, members)
	}

	d := alias(obj.Name(), ins.record(named.Underlying()))
	d.Decls[0].TypeParameters = tparams
	return d
}

func (ins *goInspector) typeParams(list *types.TypeParamList) []*decl.TypeParamRecord {
	if list == nil || list.Len() == 0 {
		return nil
	}
	out := make([]*decl.TypeParamRecord, 0, list.Len())
	for i := 0; i < list.Len(); i++ {
		tp := list.At(i)
		rec := &decl.TypeParamRecord{Name: tp.Obj().Name(), TypeName: tp.Obj().Name()}
		if c, ok := tp.Constraint().(*types.Named); ok && c.Obj().Name() != "comparable" {
			rec.Constraint = ins.record(c)
		}
		out = append(out, rec)
	}
	return out
}

func (ins *goInspector) method(fn *types.Func) *decl.Declaration {
	sig := fn.Type().(*types.Signature)
	v := ins.signature(sig, config.KindMethodSig)
	return &decl.Declaration{Name: fn.Name(), Decls: []*decl.Decl{v}}
}

func (ins *goInspector) funcDecl(name string, sig *types.Signature) *decl.Declaration {
	v := ins.signature(sig, config.KindFunction)
	v.TypeParameters = ins.typeParams(sig.TypeParams())
	return &decl.Declaration{Name: name, Decls: []*decl.Decl{v}}
}

// signature maps parameters one to one (unnamed ones become argN, a variadic
// tail becomes a rest parameter). A trailing error result is dropped; no
// results is void and several are a tuple.
func (ins *goInspector) signature(sig *types.Signature, kind string) *decl.Decl {
	v := &decl.Decl{Kind: kind}
	params := sig.Params()
	for i := 0; i < params.Len(); i++ {
		p := params.At(i)
		name := p.Name()
		if name == "" || name == "_" {
			name = fmt.Sprintf("arg%d", i)
		}
		pr := &decl.ParamRecord{Name: name, Type: ins.record(p.Type())}
		if sig.Variadic() && i == params.Len()-1 {
			pr.Rest = true
		}
		v.Parameters = append(v.Parameters, pr)
	}

	results := sig.Results()
	n := results.Len()
	if n > 0 && isErrorType(results.At(n-1).Type()) {
		n--
	}
	switch n {
	case 0:
		v.Type = decl.Name(config.VoidTypeName)
	case 1:
		v.Type = ins.record(results.At(0).Type())
	default:
		tuple := &decl.TypeRecord{Type: config.RecordTuple}
		for i := 0; i < n; i++ {
			tuple.Types = append(tuple.Types, ins.record(results.At(i).Type()))
		}
		v.Type = tuple
	}
	return v
}

// record maps a Go type onto a type record.
func (ins *goInspector) record(t types.Type) *decl.TypeRecord {
	switch t := t.(type) {
	case *types.Basic:
		return decl.Name(basicTypeName(t))

	case *types.Alias:
		return ins.record(types.Unalias(t))

	case *types.Named:
		if isErrorType(t) {
			return decl.Ref(config.ErrorTypeName)
		}
		ref := decl.Ref(ins.qualifiedName(t.Obj()))
		if args := t.TypeArgs(); args != nil {
			for i := 0; i < args.Len(); i++ {
				ref.TypeArguments = append(ref.TypeArguments, ins.record(args.At(i)))
			}
		}
		return ref

	case *types.Pointer:
		return ins.record(t.Elem())

	case *types.Slice:
		return decl.ArrayOf(ins.record(t.Elem()))

	case *types.Array:
		return decl.ArrayOf(ins.record(t.Elem()))

	case *types.Map:
		return &decl.TypeRecord{
			Type:    config.RecordTypeLiteral,
			Members: []*decl.Declaration{index(ins.record(t.Key()), ins.record(t.Elem()))},
		}

	case *types.Signature:
		call := ins.signature(t, config.KindCall)
		return &decl.TypeRecord{
			Type:    config.RecordTypeLiteral,
			Members: []*decl.Declaration{{Name: config.CallMemberName, Decls: []*decl.Decl{call}}},
		}

	case *types.Struct:
		lit := &decl.TypeRecord{Type: config.RecordTypeLiteral}
		for i := 0; i < t.NumFields(); i++ {
			if f := t.Field(i); f.Exported() {
				lit.Members = append(lit.Members, property(f.Name(), ins.record(f.Type()), false))
			}
		}
		return lit

	case *types.TypeParam:
		return &decl.TypeRecord{TypeName: t.Obj().Name()}

	default:
		// Channels and anonymous interfaces have no declaration-level shape.
		return decl.Name(config.AnyTypeName)
	}
}

// qualifiedName is the bare name for objects of the inspected package and
// pkg.Name otherwise.
func (ins *goInspector) qualifiedName(obj *types.TypeName) string {
	if obj.Pkg() == nil || obj.Pkg() == ins.pkg {
		return obj.Name()
	}
	return obj.Pkg().Name() + "." + obj.Name()
}

// basicTypeName maps Go basic types to primitive names.
func basicTypeName(t *types.Basic) string {
	info := t.Info()
	switch {
	case info&types.IsBoolean != 0:
		return config.BooleanTypeName
	case info&types.IsString != 0:
		return config.StringTypeName
	case info&types.IsNumeric != 0:
		return config.NumberTypeName
	case t.Kind() == types.UntypedNil:
		return config.NullTypeName
	}
	return config.AnyTypeName
}

// isErrorType checks if a type is the error interface.
func isErrorType(t types.Type) bool {
	named, ok := t.(*types.Named)
	if ok {
		t = named.Underlying()
	}
	iface, ok := t.(*types.Interface)
	if !ok {
		return false
	}
	return iface.NumMethods() == 1 && iface.Method(0).Name() == "Error"
}

func iface(name string, tparams []*decl.TypeParamRecord, members []*decl.Declaration) *decl.Declaration {
	return &decl.Declaration{Name: name, Decls: []*decl.Decl{{
		Kind:           config.KindInterface,
		TypeParameters: tparams,
		Members:        members,
	}}}
}

func alias(name string, t *decl.TypeRecord) *decl.Declaration {
	return &decl.Declaration{Name: name, Decls: []*decl.Decl{{Kind: config.KindTypeAlias, Type: t}}}
}

func variable(name string, t *decl.TypeRecord) *decl.Declaration {
	return &decl.Declaration{Name: name, Decls: []*decl.Decl{{Kind: config.KindVariable, Type: t}}}
}

func property(name string, t *decl.TypeRecord, optional bool) *decl.Declaration {
	return &decl.Declaration{Name: name, Decls: []*decl.Decl{{Kind: config.KindPropertySig, Type: t, Optional: optional}}}
}

func index(key, value *decl.TypeRecord) *decl.Declaration {
	return &decl.Declaration{Name: config.IndexMemberName, Decls: []*decl.Decl{{
		Kind:       config.KindIndex,
		Parameters: []*decl.ParamRecord{{Name: "key", Type: key}},
		Type:       value,
	}}}
}

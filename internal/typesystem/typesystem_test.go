package typesystem

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/diagnostics"
)

func TestPrimitivesAreCached(t *testing.T) {
	u := NewUniverse()
	for _, name := range config.PrimitiveNames {
		t.Run(name, func(t *testing.T) {
			a, ok := u.Primitive(name)
			require.True(t, ok)
			b, _ := u.Primitive(name)
			assert.Same(t, a, b)
			assert.True(t, a.Invariant(b))
			assert.Equal(t, name, a.String())
		})
	}
	_, ok := u.Primitive("Frobnicate")
	assert.False(t, ok)
}

func TestVariantChain(t *testing.T) {
	tests := []struct {
		variant Variant
		target  Variant
		want    bool
	}{
		{VariantNamespace, VariantModule, true},
		{VariantNamespace, VariantObject, true},
		{VariantInterface, VariantObject, true},
		{VariantTypeLiteral, VariantObject, true},
		{VariantTuple, VariantList, true},
		{VariantUnion, VariantList, true},
		{VariantUnion, VariantIntersection, false},
		{VariantModule, VariantNamespace, false},
		{VariantPrimitive, VariantNone, true},
		{VariantCallable, VariantObject, false},
	}
	for _, tt := range tests {
		t.Run(tt.variant.String()+"/"+tt.target.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.variant.Is(tt.target))
		})
	}
}

func TestIsTypeAndInvariant(t *testing.T) {
	u := NewUniverse()
	ns := u.NewNamespace("NS")
	mod := u.NewModule("M")
	iface := u.NewInterface("I")

	assert.True(t, ns.IsType(VariantModule))
	assert.True(t, ns.IsTypeOf(mod))
	assert.True(t, ns.IsTypeOf(nil))
	assert.False(t, mod.IsTypeOf(ns))
	assert.False(t, ns.Invariant(mod))
	assert.True(t, iface.Invariant(u.NewInterface("J")))
	assert.False(t, iface.Invariant(nil))
}

func TestInterfaceRendering(t *testing.T) {
	u := NewUniverse()
	str := u.MustPrimitive(config.StringTypeName)
	anyT := u.MustPrimitive(config.AnyTypeName)

	iface := u.NewInterface("Box")
	assert.Equal(t, "interface Box {}", iface.String())

	tp := u.NewTypeParameter("T", nil, false)
	iface.AddTypeParameter(tp)
	kp := u.NewTypeParameter("K", u.NewReference(tp), true)
	iface.AddTypeParameter(kp)

	iface.AddMember(MemberSpec{Name: "label", Type: u.NewIdentifier("label", str, true, false)})

	get := iface.EnsureMethod("get")
	sig := u.NewSignature("get")
	sig.AddParameter(u.NewIdentifier("key", kp, false, false))
	sig.AddParameter(u.NewIdentifier("rest", u.NewArrayOf(anyT), false, true))
	sig.SetReturnType(tp)
	get.AddSignature(sig)

	iface.SetIndex("key", str, anyT)

	want := "interface Box<T, K extends keyof T> { label?: string; get(key: K, ...rest: any[]): T; [key: string]: any }"
	assert.Equal(t, want, iface.String())
	assert.Equal(t, iface.String(), iface.String())
}

func TestConstructorAndCallRendering(t *testing.T) {
	u := NewUniverse()
	anyT := u.MustPrimitive(config.AnyTypeName)
	obj := u.NewInterface("Object")

	ctor := u.NewInterface("ObjectConstructor")
	sig := u.NewSignature("")
	sig.AddParameter(u.NewIdentifier("value", anyT, true, false))
	sig.SetReturnType(u.NewReference(obj))
	ctor.EnsureConstructors().AddSignature(sig)

	call := u.NewSignature("")
	call.SetReturnType(anyT)
	ctor.EnsureCallables().AddSignature(call)

	assert.Equal(t, "interface ObjectConstructor { new(value?: any): Object; (): any }", ctor.String())
	assert.Equal(t, 2, ctor.NumMembers())
	assert.Equal(t, 1, ctor.NumConstructors())
	assert.Equal(t, 1, ctor.NumCallables())
	assert.Equal(t, 1, ctor.NumSignatures())
}

func TestListRendering(t *testing.T) {
	u := NewUniverse()
	str := u.MustPrimitive(config.StringTypeName)
	num := u.MustPrimitive(config.NumberTypeName)
	boolean := u.MustPrimitive(config.BooleanTypeName)

	union := u.NewUnion(str, num)
	tests := []struct {
		name string
		typ  Type
		want string
	}{
		{"union", union, "string | number"},
		{"intersection wraps union", u.NewIntersection(union, boolean), "(string | number) & boolean"},
		{"tuple", u.NewTuple(str, num), "[string, number]"},
		{"array of primitive", u.NewArrayOf(str), "string[]"},
		{"array of union", u.NewArrayOf(union), "(string | number)[]"},
		{"array of array", u.NewArrayOf(u.NewArrayOf(num)), "number[][]"},
		{"empty tuple", u.NewTuple(), "[]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.typ.String())
		})
	}
}

func TestListQueries(t *testing.T) {
	u := NewUniverse()
	str := u.MustPrimitive(config.StringTypeName)
	num := u.MustPrimitive(config.NumberTypeName)

	tuple := u.NewTuple(str, num)
	assert.Equal(t, 2, tuple.Len())
	assert.Same(t, num, tuple.At(1))
	assert.Nil(t, tuple.At(2))
	assert.True(t, tuple.HasType(num))
	assert.True(t, tuple.HasType(u.MustPrimitive(config.StringTypeName)))
	assert.False(t, tuple.HasType(u.MustPrimitive(config.BooleanTypeName)))
	assert.Same(t, num, tuple.IndexType())
	assert.Nil(t, u.NewTuple().IndexType())
	assert.Nil(t, u.NewUnion(str).IndexType())

	lit := u.NewTypeLiteral()
	assert.False(t, u.NewUnion(str, num).HasMembers())
	lit.AddMember(MemberSpec{Name: "a", Type: u.NewIdentifier("a", str, false, false)})
	assert.True(t, u.NewUnion(str, lit).HasMembers())
}

func TestReservedMemberNames(t *testing.T) {
	u := NewUniverse()
	str := u.MustPrimitive(config.StringTypeName)
	iface := u.NewInterface("Weird")

	iface.EnsureConstructors()
	assert.False(t, iface.HasOwn("constructor"))

	iface.AddMember(MemberSpec{Name: "constructor", Type: u.NewIdentifier("constructor", str, false, false)})
	assert.True(t, iface.HasOwn("constructor"))
	m, ok := iface.Member("constructor")
	require.True(t, ok)
	assert.IsType(t, &Identifier{}, m)
	assert.NotNil(t, iface.Constructors())
	assert.Equal(t, []string{config.ConstructorsSlot, "constructor"}, iface.MemberNames())
}

func TestMemberNamedLikeSlot(t *testing.T) {
	u := NewUniverse()
	str := u.MustPrimitive(config.StringTypeName)
	iface := u.NewInterface("Odd")

	ctors := iface.EnsureConstructors()
	iface.AddMember(MemberSpec{Name: config.ConstructorsSlot, Type: u.NewIdentifier(config.ConstructorsSlot, str, false, false)})
	iface.AddMember(MemberSpec{Name: config.CallablesSlot, Type: u.NewIdentifier(config.CallablesSlot, str, false, false)})

	assert.Same(t, ctors, iface.Constructors())
	assert.Nil(t, iface.Callables())
	assert.Equal(t, 3, iface.NumMembers())

	m, ok := iface.Member(config.ConstructorsSlot)
	require.True(t, ok)
	assert.IsType(t, &Identifier{}, m)
	assert.True(t, iface.HasOwn(config.CallablesSlot))

	iface.EnsureCallables()
	m, ok = iface.Member(config.CallablesSlot)
	require.True(t, ok)
	assert.IsType(t, &Identifier{}, m)
	assert.NotNil(t, iface.Callables())
}

func TestMemberOwnerAndIndex(t *testing.T) {
	u := NewUniverse()
	str := u.MustPrimitive(config.StringTypeName)
	num := u.MustPrimitive(config.NumberTypeName)
	iface := u.NewInterface("Dict")

	prop := u.NewIdentifier("size", num, false, false)
	assert.False(t, iface.AddMember(MemberSpec{Name: "size", Type: prop}))
	assert.Same(t, iface, prop.Owner())
	assert.True(t, iface.AddMember(MemberSpec{Name: "size", Type: u.NewIdentifier("size", str, false, false)}))
	assert.Equal(t, 1, iface.NumMembers())

	assert.False(t, iface.AddMember(MemberSpec{KeyName: "k", KeyType: str, ValueType: num}))
	assert.True(t, iface.AddMember(MemberSpec{KeyName: "k", KeyType: str, ValueType: str}))
	idx, ok := iface.Index()
	require.True(t, ok)
	assert.Same(t, str, idx.Value)
	assert.Equal(t, 1, iface.NumMembers())

	var names []string
	iface.EachMember(func(name string, _ Type) bool {
		names = append(names, name)
		return true
	})
	assert.Equal(t, []string{"size"}, names)
}

func TestSignatureParamBy(t *testing.T) {
	u := NewUniverse()
	anyT := u.MustPrimitive(config.AnyTypeName)
	sig := u.NewSignature("")
	value := u.NewIdentifier("value", anyT, true, false)
	sig.AddParameter(value)

	byName, ok := sig.ParamBy("value")
	require.True(t, ok)
	byIndex, ok := sig.ParamBy(0)
	require.True(t, ok)
	assert.Same(t, byName, byIndex)
	assert.True(t, byName.Optional())

	_, ok = sig.ParamBy(1)
	assert.False(t, ok)
	_, ok = sig.ParamBy("missing")
	assert.False(t, ok)
	_, ok = sig.ParamBy(1.5)
	assert.False(t, ok)
}

func TestSignatureOwnerFollowsOverloadSet(t *testing.T) {
	u := NewUniverse()
	iface := u.NewInterface("Fn")
	set := iface.EnsureMethod("run")
	sig := u.NewSignature("run")
	set.AddSignature(sig)

	assert.Same(t, set, sig.Parent())
	assert.Same(t, iface, sig.Owner())
	assert.Same(t, iface, set.Owner())
}

func TestEnsureMethodAccumulates(t *testing.T) {
	u := NewUniverse()
	iface := u.NewInterface("I")
	a := iface.EnsureMethod("m")
	a.AddSignature(u.NewSignature("m"))
	b := iface.EnsureMethod("m")
	b.AddSignature(u.NewSignature("m"))
	assert.Same(t, a, b)
	assert.Equal(t, 2, a.NumSignatures())
	assert.Equal(t, "m(); m()", a.String())
}

func TestUndefResolve(t *testing.T) {
	u := NewUniverse()
	undef := u.NewUndef("Later")
	r1 := u.NewReference(undef)
	r2 := u.NewReference(undef, u.MustPrimitive(config.StringTypeName))
	assert.Len(t, undef.Refs(), 2)

	later := u.NewInterface("Later")
	assert.Equal(t, 2, u.Resolve(undef, later))
	assert.Same(t, later, r1.Target())
	assert.Same(t, later, r2.Target())
	assert.Empty(t, undef.Refs())
	assert.Equal(t, "Later<string>", r2.String())
}

func TestPatchedReferenceKeepsName(t *testing.T) {
	u := NewUniverse()
	undef := u.NewUndef("Json")
	str := u.MustPrimitive(config.StringTypeName)
	self := u.NewReference(undef)
	body := u.NewUnion(str, u.NewArrayOf(self))

	assert.Equal(t, 1, u.Resolve(undef, body))
	assert.Same(t, body, self.Target())
	assert.Equal(t, "Json", self.String())
	assert.Equal(t, "string | Json[]", body.String())

	loop := u.NewUndef("T")
	ref := u.NewReference(loop)
	union := u.NewUnion(u.MustPrimitive(config.NumberTypeName), ref)
	u.Resolve(loop, union)
	assert.Equal(t, "number | T", union.String())
	assert.False(t, union.HasMembers())
}

func TestInstantiate(t *testing.T) {
	u := NewUniverse()
	array, ok := u.Builtin(config.ArrayTypeName)
	require.True(t, ok)

	ref, err := array.Instantiate(u.MustPrimitive(config.NumberTypeName))
	require.NoError(t, err)
	assert.True(t, ref.IsArray())
	assert.Equal(t, "number[]", ref.String())

	_, err = array.Instantiate(u.MustPrimitive(config.NumberTypeName), u.MustPrimitive(config.StringTypeName))
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostics.ErrSyntax))
	var arity *ArityError
	require.ErrorAs(t, err, &arity)
	assert.Equal(t, 1, arity.Want)
}

func TestMappedLiteral(t *testing.T) {
	u := NewUniverse()
	tp := u.NewTypeParameter("T", nil, false)
	k := u.NewTypeParameter("K", u.NewReference(tp), true)
	lit := u.NewTypeLiteral()
	lit.SetMapped(k, u.MustPrimitive(config.BooleanTypeName))
	assert.Equal(t, "{ [K in keyof T]: boolean }", lit.String())
}

func TestBuiltinsRender(t *testing.T) {
	u := NewUniverse()
	array, ok := u.Builtin(config.ArrayTypeName)
	require.True(t, ok)
	assert.Equal(t, "interface Array<T> { length: number; [n: number]: T }", array.String())
	promise, ok := u.Builtin(config.PromiseTypeName)
	require.True(t, ok)
	assert.Equal(t, "interface Promise<T> {}", promise.String())
}

func TestStringifyDoesNotAllocate(t *testing.T) {
	u := NewUniverse()
	iface := u.NewInterface("I")
	iface.EnsureCallables().AddSignature(u.NewSignature(""))
	before := u.Len()
	first := iface.String()
	second := iface.String()
	assert.Equal(t, first, second)
	assert.Equal(t, before, u.Len())
	assert.Equal(t, 1, iface.NumSignatures())
}

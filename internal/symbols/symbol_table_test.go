package symbols

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/typesystem"
)

func newTestTree(extra ...string) (*Tree, *typesystem.Universe) {
	u := typesystem.NewUniverse()
	return NewTree(u, extra...), u
}

func TestFindWalksParents(t *testing.T) {
	tree, u := newTestTree()
	global := tree.Global()
	outer := u.NewInterface("Outer")
	global.Add(outer)

	inner := global.From(outer)
	local := u.NewInterface("Local")
	inner.Add(local)

	got, ok := inner.Find("Outer", false)
	require.True(t, ok)
	assert.Same(t, outer, got)

	_, ok = inner.Find("Outer", true)
	assert.False(t, ok)
	assert.True(t, inner.Has("Outer"))
	assert.False(t, inner.HasOwn("Outer"))
	assert.True(t, inner.HasOwn("Local"))
	assert.False(t, global.Has("Local"))

	_, ok = global.Find("Missing", false)
	assert.False(t, ok)
}

func TestAddSetsOuterAndOverwrites(t *testing.T) {
	tree, u := newTestTree()
	global := tree.Global()
	first := u.NewInterface("Dup")
	second := u.NewInterface("Dup")

	global.Add(first)
	assert.Equal(t, global.ID(), first.Outer())
	size := global.Size()

	global.Add(second)
	got, _ := global.Find("Dup", true)
	assert.Same(t, second, got)
	assert.Equal(t, size, global.Size())
}

func TestAddAsAliasesPrimitiveWithoutOwningIt(t *testing.T) {
	tree, u := newTestTree()
	str := u.MustPrimitive(config.StringTypeName)
	tree.Global().AddAs("Text", str)

	got, ok := tree.Global().Find("Text", true)
	require.True(t, ok)
	assert.Same(t, str, got)
	assert.Equal(t, typesystem.NoScope, str.Outer())
}

func TestReservedNamesAreEscaped(t *testing.T) {
	tree, u := newTestTree()
	global := tree.Global()
	assert.False(t, global.Has("constructor"))
	assert.False(t, global.Has("toString"))

	ctor := u.NewIdentifier("constructor", u.MustPrimitive(config.AnyTypeName), false, false)
	global.Add(ctor)
	assert.True(t, global.HasOwn("constructor"))
	assert.Contains(t, global.Names(), "constructor")
}

func TestFromIsMemoized(t *testing.T) {
	tree, u := newTestTree()
	global := tree.Global()
	iface := u.NewInterface("I")

	a := global.From(iface)
	b := global.From(iface)
	assert.Same(t, a, b)
	assert.Equal(t, a.ID(), iface.Inner())
	assert.Same(t, global, a.Parent())
	assert.Same(t, iface, a.Definer())
	assert.Equal(t, ScopeContainer, a.Kind())

	ns := u.NewNamespace("NS")
	assert.Equal(t, ScopeModule, global.From(ns).Kind())
	sig := u.NewSignature("")
	assert.Equal(t, ScopeSignature, a.From(sig).Kind())
	assert.Equal(t, "global.I.signature", a.From(sig).Path())
}

func TestLexical(t *testing.T) {
	tree, u := newTestTree()
	global := tree.Global()
	ns := global.From(u.NewNamespace("NS"))
	iface := ns.From(u.NewInterface("I"))
	sig := iface.From(u.NewSignature("m"))

	assert.Same(t, global, global.Lexical())
	assert.Same(t, global, global.From(u.NewInterface("J")).Lexical())
	assert.Same(t, ns, ns.Lexical())
	assert.Same(t, ns, iface.Lexical())
	assert.Same(t, ns, sig.Lexical())
}

func TestBuiltinsInstalled(t *testing.T) {
	tree, _ := newTestTree("Error", "Date")
	global := tree.Global()
	for _, name := range []string{config.ArrayTypeName, config.ReadonlyArrayTypeName, config.PromiseTypeName, "Error", "Date"} {
		assert.True(t, global.HasOwn(name), name)
	}
	date, _ := global.Find("Date", true)
	assert.True(t, date.IsType(typesystem.VariantInterface))
}

func TestSymbolsDeepIsPostOrderAndRestartable(t *testing.T) {
	tree, u := newTestTree()
	global := tree.Global()
	global.Reset()

	a := u.NewInterface("A")
	global.Add(a)
	inner := global.From(a)
	inner.Add(u.NewInterface("B"))
	inner.From(u.NewInterface("X")).Add(u.NewInterface("C"))

	names := func(deep bool) []string {
		var out []string
		for typ := range global.Symbols(deep) {
			out = append(out, typ.Name())
		}
		return out
	}
	assert.Equal(t, []string{"A"}, names(false))
	assert.Equal(t, []string{"C", "B", "A"}, names(true))
	assert.Equal(t, names(true), names(true))

	var first []string
	for typ := range global.Symbols(true) {
		first = append(first, typ.Name())
		break
	}
	assert.Equal(t, []string{"C"}, first)
}

func TestEachFiltersByVariant(t *testing.T) {
	tree, u := newTestTree()
	global := tree.Global()
	global.Reset()
	global.Add(u.NewInterface("I"))
	global.Add(u.NewNamespace("N"))
	global.Add(u.NewModule("M"))
	global.AddAs("U", u.NewUnion(u.MustPrimitive(config.StringTypeName)))

	var modules []string
	for typ := range global.Each(typesystem.VariantModule, false) {
		modules = append(modules, typ.Name())
	}
	assert.Equal(t, []string{"N", "M"}, modules)

	var all []string
	for typ := range global.Each(typesystem.VariantNone, false) {
		all = append(all, typ.Variant().String())
	}
	assert.Len(t, all, 4)

	var keys []string
	for name := range global.All() {
		keys = append(keys, name)
	}
	assert.Equal(t, []string{"I", "N", "M", "U"}, keys)
}

func TestResetAndClear(t *testing.T) {
	tree, u := newTestTree()
	global := tree.Global()
	iface := u.NewInterface("I")
	global.Add(iface)
	child := global.From(iface)
	child.Add(u.NewInterface("Inner"))
	childID := child.ID()

	tree.Reset()
	assert.Nil(t, tree.Get(childID))
	assert.Equal(t, typesystem.NoScope, iface.Inner())
	assert.False(t, global.HasOwn("I"))
	assert.True(t, global.HasOwn(config.ArrayTypeName))

	other := u.NewInterface("Other")
	scope := global.From(other)
	scope.Clear()
	assert.Nil(t, scope.Parent())
	assert.Nil(t, scope.Definer())
	_, ok := global.Lookup(other)
	assert.False(t, ok)
	assert.Equal(t, 0, scope.Size())
}

func TestResolveQualifiedNames(t *testing.T) {
	tree, u := newTestTree()
	global := tree.Global()
	ns := u.NewNamespace("NS")
	global.Add(ns)
	inner := u.NewInterface("Inner")
	global.From(ns).Add(inner)
	ns.AddMember(typesystem.MemberSpec{Name: "Inner", Type: inner})

	got, ok := global.Resolve("NS.Inner")
	require.True(t, ok)
	assert.Same(t, inner, got)

	iface := u.NewInterface("Shape")
	global.Add(iface)
	area := u.NewIdentifier("area", u.MustPrimitive(config.NumberTypeName), false, false)
	iface.AddMember(typesystem.MemberSpec{Name: "area", Type: area})
	got, ok = global.Resolve("Shape.area")
	require.True(t, ok)
	assert.Same(t, area, got)

	_, ok = global.Resolve("NS.Missing")
	assert.False(t, ok)
	_, ok = global.Resolve("Nope.Inner")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	tree, u := newTestTree()
	global := tree.Global()
	global.Add(u.NewInterface("Gone"))
	assert.True(t, global.Remove("Gone"))
	assert.False(t, global.Remove("Gone"))
	assert.False(t, slices.Contains(global.Names(), "Gone"))
}

func TestIsBuiltinTracksExtension(t *testing.T) {
	tree, u := newTestTree("Error")
	global := tree.Global()

	array, ok := global.Find(config.ArrayTypeName, true)
	require.True(t, ok)
	assert.True(t, tree.IsBuiltin(array))

	errType, ok := global.Find("Error", true)
	require.True(t, ok)
	assert.True(t, tree.IsBuiltin(errType))

	errType.(*typesystem.ObjectType).AddMember(typesystem.MemberSpec{
		Name: "message",
		Type: u.NewIdentifier("message", u.MustPrimitive(config.StringTypeName), false, false),
	})
	assert.False(t, tree.IsBuiltin(errType))
	assert.False(t, tree.IsBuiltin(u.NewInterface("Mine")))
}

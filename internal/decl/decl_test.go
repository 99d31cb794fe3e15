package decl

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianjensen/inference/internal/config"
	"github.com/julianjensen/inference/internal/diagnostics"
)

func TestTypeRecordDecodesStringOrObject(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		want   TypeRecord
	}{
		{"json bare", FormatJSON, `[{"name":"x","decls":[{"kind":"VariableDeclaration","type":"string"}]}]`, TypeRecord{Type: "string"}},
		{"json object", FormatJSON, `[{"name":"x","decls":[{"kind":"VariableDeclaration","type":{"type":"reference","typeName":"Foo","isArray":true}}]}]`, TypeRecord{Type: "reference", TypeName: "Foo", IsArray: true}},
		{"yaml bare", FormatYAML, "- name: x\n  decls:\n    - kind: VariableDeclaration\n      type: number\n", TypeRecord{Type: "number"}},
		{"yaml object", FormatYAML, "- name: x\n  decls:\n    - kind: VariableDeclaration\n      type: {type: union, types: [a, b]}\n", TypeRecord{Type: "union", Types: []*TypeRecord{Name("a"), Name("b")}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := Decode([]byte(tt.input), tt.format)
			require.NoError(t, err)
			require.Len(t, defs, 1)
			require.Len(t, defs[0].Decls, 1)
			assert.Equal(t, tt.want, *defs[0].Decls[0].Type)
		})
	}
}

func TestTypeRecordMarshalsBareAsString(t *testing.T) {
	data, err := json.Marshal(&Decl{Kind: "VariableDeclaration", Type: Name("any")})
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"VariableDeclaration","type":"any"}`, string(data))

	data, err = json.Marshal(ArrayOf(Name("string")))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"string","isArray":true}`, string(data))
}

func TestDecodeShapes(t *testing.T) {
	tests := []struct {
		name   string
		format Format
		input  string
		names  []string
	}{
		{"json single", FormatJSON, `{"name":"A","kind":"InterfaceDeclaration"}`, []string{"A"}},
		{"json array", FormatJSON, `[{"name":"A"},{"name":"B"}]`, []string{"A", "B"}},
		{"json keyed keeps order", FormatJSON, `{"Zed":{"decls":[]},"Alpha":[{"kind":"InterfaceDeclaration"}]}`, []string{"Zed", "Alpha"}},
		{"yaml keyed keeps order", FormatYAML, "Zed:\n  decls: []\nAlpha:\n  - kind: InterfaceDeclaration\n", []string{"Zed", "Alpha"}},
		{"yaml single", FormatYAML, "name: A\ndecls: []\n", []string{"A"}},
		{"empty", FormatJSON, "  ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defs, err := Decode([]byte(tt.input), tt.format)
			require.NoError(t, err)
			var names []string
			for _, d := range defs {
				names = append(names, d.Name)
			}
			assert.Equal(t, tt.names, names)
		})
	}

	_, err := Decode([]byte(`"nope"`), FormatJSON)
	assert.Error(t, err)
	_, err = Decode([]byte(`{}`), Format("toml"))
	assert.Error(t, err)
}

func TestLoadFixtures(t *testing.T) {
	defs, err := Load("testdata/object_constructor.json")
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "ObjectConstructor", defs[0].Name)
	member := defs[0].Decls[0].Members[0]
	assert.Equal(t, "New", member.Name)
	assert.True(t, member.Decls[0].Parameters[0].Optional)

	defs, err = Load("testdata/lib.yaml")
	require.NoError(t, err)
	require.Len(t, defs, 3)
	assert.Equal(t, "Object", defs[0].Name)
	assert.Len(t, defs[0].Decls, 2)

	_, err = Load("testdata/missing.json")
	assert.Error(t, err)
	_, err = Load("testdata/lib.txt")
	assert.Error(t, err)
}

func TestGetKind(t *testing.T) {
	tests := []struct {
		name string
		decl *Declaration
		want string
	}{
		{"explicit", &Declaration{Kind: config.KindClass, Decls: []*Decl{{Kind: config.KindInterface}}}, config.KindClass},
		{"from decls", &Declaration{Decls: []*Decl{{Kind: config.KindInterface}}}, config.KindInterface},
		{"variable ignored", &Declaration{Decls: []*Decl{{Kind: config.KindVariable}, {Kind: config.KindInterface}}}, config.KindInterface},
		{"variable alone", &Declaration{Decls: []*Decl{{Kind: config.KindVariable}}}, config.KindVariable},
		{"none", &Declaration{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetKind(tt.decl))
		})
	}
}

func TestMassageRejectsConflictingKinds(t *testing.T) {
	defs := []*Declaration{{
		Name:  "Broken",
		Decls: []*Decl{{Kind: config.KindInterface}, {Kind: config.KindFunction}},
	}}
	err := Massage(defs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostics.ErrConsistency))
	var de *diagnostics.Error
	require.ErrorAs(t, err, &de)
	assert.Equal(t, []string{config.KindFunction, config.KindInterface}, de.Kinds)
	assert.Contains(t, err.Error(), "Broken")
	assert.Contains(t, err.Error(), config.KindInterface)
	assert.Contains(t, err.Error(), config.KindFunction)

	require.NoError(t, MassageLenient(defs))
	assert.Equal(t, config.KindInterface, defs[0].Kind)
}

func TestMassageToleratesVariable(t *testing.T) {
	defs := []*Declaration{{
		Name:  "Object",
		Decls: []*Decl{{Kind: config.KindInterface}, {Kind: config.KindVariable}},
	}}
	require.NoError(t, Massage(defs))
	assert.Equal(t, config.KindInterface, defs[0].Kind)
}

func TestMassageFillsMemberFlags(t *testing.T) {
	defs, err := Load("testdata/lib.yaml")
	require.NoError(t, err)
	require.NoError(t, Massage(defs))

	members := defs[0].Decls[0].Members
	assert.Equal(t, config.FlagMethod, members[0].Flags)
	assert.Equal(t, "toString", members[0].Name)
	assert.Equal(t, config.FlagProperty, members[1].Flags)
	assert.Equal(t, config.KindTypeAlias, defs[1].Kind)
	assert.Equal(t, config.KindFunction, defs[2].Kind)

	ctor, err := Load("testdata/object_constructor.json")
	require.NoError(t, err)
	require.NoError(t, Massage(ctor))
	assert.Equal(t, config.KindInterface, ctor[0].Kind)
	assert.Equal(t, "", ctor[0].Flags)
	m := ctor[0].Decls[0].Members[0]
	assert.Equal(t, config.NewMemberName, m.Name)
	assert.Equal(t, config.FlagSignature, m.Flags)
	assert.Equal(t, config.KindConstruct, m.Kind)
}

func TestMassageRecursesIntoTypeLiterals(t *testing.T) {
	defs := []*Declaration{{
		Name: "x",
		Decls: []*Decl{{
			Kind: config.KindVariable,
			Type: &TypeRecord{Type: config.RecordTypeLiteral, Members: []*Declaration{{
				Name:  "bad",
				Decls: []*Decl{{Kind: config.KindPropertySig}, {Kind: config.KindMethodSig}},
			}}},
		}},
	}}
	err := Massage(defs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostics.ErrConsistency))
}

func TestMassageSkipsNullParameters(t *testing.T) {
	defs, err := Decode([]byte(`{"name": "f", "decls": [{"kind": "FunctionDeclaration", "parameters": [null,
	  {"name": "opts", "type": {"type": "typeliteral", "members": [
	    {"name": "bad", "decls": [{"kind": "PropertySignature"}, {"kind": "MethodSignature"}]}
	  ]}}]}]}`), FormatJSON)
	require.NoError(t, err)

	err = Massage(defs)
	require.Error(t, err)
	assert.True(t, errors.Is(err, diagnostics.ErrConsistency))

	defs, err = Decode([]byte(`{"name": "g", "decls": [{"kind": "FunctionDeclaration", "parameters": [null]}]}`), FormatJSON)
	require.NoError(t, err)
	require.NoError(t, Massage(defs))
	assert.Equal(t, config.KindFunction, defs[0].Kind)
}

// Package decl models the pre-parsed declaration records consumed by the
// analyzer and decodes them from JSON or YAML.
package decl

import (
	"encoding/json"

	"gopkg.in/yaml.v3"
)

// Declaration is one named construct with its overload variants.
type Declaration struct {
	Name  string  `json:"name" yaml:"name"`
	Kind  string  `json:"kind,omitempty" yaml:"kind,omitempty"`
	Flags string  `json:"flags,omitempty" yaml:"flags,omitempty"`
	Decls []*Decl `json:"decls,omitempty" yaml:"decls,omitempty"`
}

// Decl is one overload variant of a Declaration. Members holds interface or
// literal members, or the nested declarations of a module.
type Decl struct {
	Kind           string             `json:"kind" yaml:"kind"`
	Type           *TypeRecord        `json:"type,omitempty" yaml:"type,omitempty"`
	Parameters     []*ParamRecord     `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	TypeParameters []*TypeParamRecord `json:"typeParameters,omitempty" yaml:"typeParameters,omitempty"`
	Members        []*Declaration     `json:"members,omitempty" yaml:"members,omitempty"`
	Optional       bool               `json:"optional,omitempty" yaml:"optional,omitempty"`
	Rest           bool               `json:"rest,omitempty" yaml:"rest,omitempty"`
}

// ParamRecord is one signature parameter (or the key of an index signature).
type ParamRecord struct {
	Name     string      `json:"name" yaml:"name"`
	Type     *TypeRecord `json:"type,omitempty" yaml:"type,omitempty"`
	Optional bool        `json:"optional,omitempty" yaml:"optional,omitempty"`
	Rest     bool        `json:"rest,omitempty" yaml:"rest,omitempty"`
}

// TypeParamRecord is a type parameter in one of three shapes:
//
//	{name: T, typeName: T}                               bare
//	{name: T, typeName: T, typeOperator: C}              T extends C
//	{name: K, typeName: K, typeOperator: T, keyOf: true} K extends keyof T
//
// Constraint may carry a full type record instead of the typeOperator name.
type TypeParamRecord struct {
	Name         string      `json:"name" yaml:"name"`
	TypeName     string      `json:"typeName,omitempty" yaml:"typeName,omitempty"`
	TypeOperator string      `json:"typeOperator,omitempty" yaml:"typeOperator,omitempty"`
	KeyOf        bool        `json:"keyOf,omitempty" yaml:"keyOf,omitempty"`
	Constraint   *TypeRecord `json:"constraint,omitempty" yaml:"constraint,omitempty"`
}

// TypeRecord is either a bare name (only Type set) or a discriminated record.
type TypeRecord struct {
	Type          string           `json:"type,omitempty" yaml:"type,omitempty"`
	TypeName      string           `json:"typeName,omitempty" yaml:"typeName,omitempty"`
	TypeArguments []*TypeRecord    `json:"typeArguments,omitempty" yaml:"typeArguments,omitempty"`
	Types         []*TypeRecord    `json:"types,omitempty" yaml:"types,omitempty"`
	Members       []*Declaration   `json:"members,omitempty" yaml:"members,omitempty"`
	IsArray       bool             `json:"isArray,omitempty" yaml:"isArray,omitempty"`
	TypeParameter *TypeParamRecord `json:"typeParameter,omitempty" yaml:"typeParameter,omitempty"`
	ValueType     *TypeRecord      `json:"valueType,omitempty" yaml:"valueType,omitempty"`
}

// typeRecordFields has TypeRecord's fields without its codec methods.
type typeRecordFields TypeRecord

// Name wraps a bare type name.
func Name(name string) *TypeRecord {
	return &TypeRecord{Type: name}
}

// Ref builds a "reference" record with optional type arguments.
func Ref(name string, args ...*TypeRecord) *TypeRecord {
	return &TypeRecord{Type: "reference", TypeName: name, TypeArguments: args}
}

// ArrayOf marks a copy of elem as an array.
func ArrayOf(elem *TypeRecord) *TypeRecord {
	c := *elem
	c.IsArray = true
	return &c
}

// IsBare reports whether the record is only a name.
func (r *TypeRecord) IsBare() bool {
	return r.Type != "" && r.TypeName == "" && len(r.TypeArguments) == 0 && len(r.Types) == 0 &&
		len(r.Members) == 0 && !r.IsArray && r.TypeParameter == nil && r.ValueType == nil
}

// WithoutArray returns a copy with the array flag stripped.
func (r *TypeRecord) WithoutArray() *TypeRecord {
	c := *r
	c.IsArray = false
	return &c
}

func (r *TypeRecord) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*r = TypeRecord{Type: name}
		return nil
	}
	var fields typeRecordFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*r = TypeRecord(fields)
	return nil
}

func (r *TypeRecord) MarshalJSON() ([]byte, error) {
	if r.IsBare() {
		return json.Marshal(r.Type)
	}
	return json.Marshal((*typeRecordFields)(r))
}

func (r *TypeRecord) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*r = TypeRecord{Type: node.Value}
		return nil
	}
	var fields typeRecordFields
	if err := node.Decode(&fields); err != nil {
		return err
	}
	*r = TypeRecord(fields)
	return nil
}

func (r *TypeRecord) MarshalYAML() (interface{}, error) {
	if r.IsBare() {
		return r.Type, nil
	}
	return (*typeRecordFields)(r), nil
}

package config

import "strings"

// DeclFileExtensions are the input formats accepted by the loader.
var DeclFileExtensions = []string{".json", ".yaml", ".yml"}

// Primitive type names
const (
	AnyTypeName       = "any"
	NeverTypeName     = "never"
	UndefinedTypeName = "undefined"
	VoidTypeName      = "void"
	NumberTypeName    = "number"
	StringTypeName    = "string"
	BooleanTypeName   = "boolean"
	SymbolTypeName    = "symbol"
	NullTypeName      = "null"
	ObjectTypeName    = "object"
	UnknownTypeName   = "unknown"
	BigIntTypeName    = "bigint"
)

// PrimitiveNames lists every primitive in registration order.
var PrimitiveNames = []string{
	AnyTypeName,
	NeverTypeName,
	UndefinedTypeName,
	VoidTypeName,
	NumberTypeName,
	StringTypeName,
	BooleanTypeName,
	SymbolTypeName,
	NullTypeName,
	ObjectTypeName,
	UnknownTypeName,
	BigIntTypeName,
}

// Built-in type names
const (
	ArrayTypeName         = "Array"
	ReadonlyArrayTypeName = "ReadonlyArray"
	PromiseTypeName       = "Promise"
	ErrorTypeName         = "Error"
	ElementParamName      = "T"
)

// Type record discriminators
const (
	RecordReference    = "reference"
	RecordTypeLiteral  = "typeliteral"
	RecordUnion        = "union"
	RecordIntersection = "intersection"
	RecordTuple        = "tuple"
	RecordMapped       = "mapped"
)

// Declaration kinds
const (
	KindInterface    = "InterfaceDeclaration"
	KindClass        = "ClassDeclaration"
	KindModule       = "ModuleDeclaration"
	KindTypeAlias    = "TypeAliasDeclaration"
	KindFunction     = "FunctionDeclaration"
	KindVariable     = "VariableDeclaration"
	KindTypeLiteral  = "TypeLiteral"
	KindConstruct    = "ConstructSignature"
	KindCall         = "CallSignature"
	KindIndex        = "IndexSignature"
	KindMethodSig    = "MethodSignature"
	KindMethodDecl   = "MethodDeclaration"
	KindPropertySig  = "PropertySignature"
	KindPropertyDecl = "PropertyDeclaration"
	KindConstructor  = "Constructor"
	KindTypeParam    = "TypeParameter"
)

// Declaration flags
const (
	FlagSignature     = "Signature"
	FlagMethod        = "Method"
	FlagProperty      = "Property"
	FlagTypeParameter = "TypeParameter"
	FlagNamespace     = "Namespace"
)

// Signature member names used together with FlagSignature
const (
	NewMemberName   = "New"
	CallMemberName  = "Call"
	IndexMemberName = "Index"
)

// Member slots for overload sets that have no user-visible name.
// They start with EscapePrefix followed by a non-reserved word, so no escaped
// user name can produce them.
const (
	ConstructorsSlot = "%new"
	CallablesSlot    = "%call"
)

// EscapePrefix is prepended to names that collide with the base object protocol.
const EscapePrefix = "%"

// ReservedNames are the members of the universal base-object protocol.
var ReservedNames = map[string]bool{
	"constructor":          true,
	"toString":             true,
	"toLocaleString":       true,
	"valueOf":              true,
	"hasOwnProperty":       true,
	"isPrototypeOf":        true,
	"propertyIsEnumerable": true,
	"__proto__":            true,
	"__defineGetter__":     true,
	"__defineSetter__":     true,
	"__lookupGetter__":     true,
	"__lookupSetter__":     true,
}

// Escape returns the storage key for a user-visible name. Names that already
// start with EscapePrefix get a second one, so they never equal a slot key.
func Escape(name string) string {
	if ReservedNames[name] || strings.HasPrefix(name, EscapePrefix) {
		return EscapePrefix + name
	}
	return name
}

// Unescape reverses Escape. Slot keys are returned unchanged.
func Unescape(key string) string {
	if strings.HasPrefix(key, EscapePrefix+EscapePrefix) {
		return key[len(EscapePrefix):]
	}
	if rest, ok := strings.CutPrefix(key, EscapePrefix); ok && ReservedNames[rest] {
		return rest
	}
	return key
}

// IsSlot reports whether key is one of the anonymous overload-set slots.
func IsSlot(key string) bool {
	return key == ConstructorsSlot || key == CallablesSlot
}

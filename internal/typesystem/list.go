package typesystem

import (
	"github.com/julianjensen/inference/internal/config"
)

// ListType is a Union, Intersection or Tuple: an ordered list of constituents.
type ListType struct {
	typeBase
	list []TypeID

	visiting bool // set while HasMembers walks a recursive alias
}

// Add appends a constituent.
func (l *ListType) Add(t Type) {
	l.list = append(l.list, idOf(t))
}

// Types returns the constituents in order.
func (l *ListType) Types() []Type {
	return l.u.resolve(l.list)
}

// Len is the number of constituents.
func (l *ListType) Len() int { return len(l.list) }

// At returns the constituent at position i, or nil when out of range.
func (l *ListType) At(i int) Type {
	if i < 0 || i >= len(l.list) {
		return nil
	}
	return l.u.Get(l.list[i])
}

// HasType is a structural membership test.
func (l *ListType) HasType(t Type) bool {
	for _, c := range l.Types() {
		if Same(c, t) {
			return true
		}
	}
	return false
}

// IndexType is `number` for a populated tuple, else nil.
func (l *ListType) IndexType() Type {
	if l.variant != VariantTuple || len(l.list) == 0 {
		return nil
	}
	return l.u.MustPrimitive(config.NumberTypeName)
}

// HasMembers delegates to the constituents.
func (l *ListType) HasMembers() bool {
	if l.visiting {
		return false
	}
	l.visiting = true
	defer func() { l.visiting = false }()
	for _, c := range l.Types() {
		if c.HasMembers() {
			return true
		}
	}
	return false
}

func (l *ListType) String() string { return l.Stringify(l.name) }

func (l *ListType) Stringify(string) string {
	types := l.Types()
	switch l.variant {
	case VariantTuple:
		return "[" + joinTypes(types, ", ") + "]"
	case VariantIntersection:
		parts := make([]string, len(types))
		for i, t := range types {
			parts[i] = operand(t)
		}
		return joinStrings(parts, " & ")
	default:
		return joinTypes(types, " | ")
	}
}

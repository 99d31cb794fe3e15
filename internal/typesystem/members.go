package typesystem

import (
	"github.com/julianjensen/inference/internal/config"
)

// HasMembersTable is implemented by container variants.
type HasMembersTable interface {
	Type
	MembersTable() *Members
}

// MemberSpec describes one member to add. Setting KeyType or ValueType
// instead of Name/Type declares the index signature.
type MemberSpec struct {
	Name string
	Type Type

	KeyName   string
	KeyType   Type
	ValueType Type
}

func (s MemberSpec) isIndex() bool {
	return s.KeyType != nil || s.ValueType != nil
}

// IndexSignature is the single `[key: K]: V` of a container.
type IndexSignature struct {
	KeyName string
	Key     Type
	Value   Type
}

// Members is the ordered member map of a container plus its index signature.
// Keys are stored escaped; the constructor and call overload sets use the
// slot keys from config.
type Members struct {
	mu        *Universe
	container TypeID
	keys      []string
	table     map[string]TypeID

	indexName  string
	indexKey   TypeID
	indexValue TypeID
}

func newMembers(u *Universe, container TypeID) Members {
	return Members{mu: u, container: container, table: make(map[string]TypeID)}
}

// MembersTable exposes the capability itself.
func (m *Members) MembersTable() *Members { return m }

// AddMember inserts or replaces a member and records the owning container.
// It reports whether an existing entry (or index signature) was replaced.
func (m *Members) AddMember(spec MemberSpec) bool {
	if spec.isIndex() {
		return m.SetIndex(spec.KeyName, spec.KeyType, spec.ValueType)
	}
	return m.put(config.Escape(spec.Name), spec.Type)
}

// put stores t under an already escaped key or a slot key.
func (m *Members) put(key string, t Type) bool {
	_, exists := m.table[key]
	if !exists {
		m.keys = append(m.keys, key)
	}
	m.table[key] = idOf(t)
	if t != nil && ownable(t) {
		t.SetOwner(m.mu.Get(m.container))
	}
	return exists
}

// SetIndex installs the index signature, reporting whether one was replaced.
func (m *Members) SetIndex(keyName string, key, value Type) bool {
	replaced := m.indexKey != NoType || m.indexValue != NoType
	if keyName == "" {
		keyName = "key"
	}
	m.indexName = keyName
	m.indexKey = idOf(key)
	m.indexValue = idOf(value)
	return replaced
}

// Index returns the index signature, if any.
func (m *Members) Index() (IndexSignature, bool) {
	if m.indexKey == NoType && m.indexValue == NoType {
		return IndexSignature{}, false
	}
	return IndexSignature{
		KeyName: m.indexName,
		Key:     m.mu.Get(m.indexKey),
		Value:   m.mu.Get(m.indexValue),
	}, true
}

// Member looks up a member by its user-visible name.
func (m *Members) Member(name string) (Type, bool) {
	return m.get(config.Escape(name))
}

func (m *Members) get(key string) (Type, bool) {
	id, ok := m.table[key]
	if !ok {
		return nil, false
	}
	return m.mu.Get(id), true
}

// HasOwn reports whether a member with that user-visible name was added.
func (m *Members) HasOwn(name string) bool {
	_, ok := m.table[config.Escape(name)]
	return ok
}

// NumMembers counts map entries; the index signature is not counted.
func (m *Members) NumMembers() int { return len(m.keys) }

// EachMember calls fn with each unescaped name and type in insertion order
// until fn returns false.
func (m *Members) EachMember(fn func(name string, t Type) bool) {
	for _, key := range m.keys {
		if !fn(config.Unescape(key), m.mu.Get(m.table[key])) {
			return
		}
	}
}

// MemberNames returns the unescaped names in insertion order.
func (m *Members) MemberNames() []string {
	names := make([]string, len(m.keys))
	for i, key := range m.keys {
		names[i] = config.Unescape(key)
	}
	return names
}

// ownable limits owner back-links to entries created for exactly one container.
func ownable(t Type) bool {
	if t.base().owner != NoType {
		return false
	}
	switch t.(type) {
	case *Identifier, *CallableType:
		return true
	case *ObjectType:
		id, builtin := t.Universe().builtins[t.Name()]
		return !builtin || id != t.ID()
	}
	return false
}

package typesystem

// CallableKind distinguishes the three kinds of overload set.
type CallableKind uint8

const (
	CallableCall CallableKind = iota
	CallableConstructor
	CallableMethod
)

func (k CallableKind) String() string {
	switch k {
	case CallableConstructor:
		return "constructor"
	case CallableMethod:
		return "method"
	default:
		return "callable"
	}
}

// CallableType is an overload set: signatures sharing one name.
type CallableType struct {
	typeBase
	kind CallableKind
	sigs []TypeID
}

func (c *CallableType) Kind() CallableKind  { return c.kind }
func (c *CallableType) IsConstructor() bool { return c.kind == CallableConstructor }
func (c *CallableType) IsMethod() bool      { return c.kind == CallableMethod }
func (c *CallableType) IsCallable() bool    { return c.kind == CallableCall }

// AddSignature appends s and links it back to this overload set.
func (c *CallableType) AddSignature(s *Signature) {
	c.sigs = append(c.sigs, s.id)
	s.parent = c.id
}

// Signatures returns the overloads in declaration order.
func (c *CallableType) Signatures() []*Signature {
	out := make([]*Signature, 0, len(c.sigs))
	for _, id := range c.sigs {
		if s, ok := c.u.Get(id).(*Signature); ok {
			out = append(out, s)
		}
	}
	return out
}

// Signature returns overload i, or nil.
func (c *CallableType) Signature(i int) *Signature {
	if i < 0 || i >= len(c.sigs) {
		return nil
	}
	s, _ := c.u.Get(c.sigs[i]).(*Signature)
	return s
}

func (c *CallableType) NumSignatures() int { return len(c.sigs) }

// Signature is one overload: parameters, type parameters and a return type.
type Signature struct {
	typeBase
	Generics

	params []TypeID
	byName map[string]int
	ret    TypeID
	parent TypeID
}

// AddParameter appends p; later parameters with the same name shadow earlier
// ones for ParamBy.
func (s *Signature) AddParameter(p *Identifier) {
	s.byName[p.name] = len(s.params)
	s.params = append(s.params, p.id)
	p.SetOwner(s)
}

// Parameters returns the parameters in order.
func (s *Signature) Parameters() []*Identifier {
	out := make([]*Identifier, 0, len(s.params))
	for _, id := range s.params {
		if p, ok := s.typeBase.u.Get(id).(*Identifier); ok {
			out = append(out, p)
		}
	}
	return out
}

func (s *Signature) NumParameters() int { return len(s.params) }

// ParamBy finds a parameter by position (int) or by name (string).
func (s *Signature) ParamBy(key any) (*Identifier, bool) {
	idx := -1
	switch k := key.(type) {
	case int:
		idx = k
	case string:
		i, ok := s.byName[k]
		if !ok {
			return nil, false
		}
		idx = i
	}
	if idx < 0 || idx >= len(s.params) {
		return nil, false
	}
	p, ok := s.typeBase.u.Get(s.params[idx]).(*Identifier)
	return p, ok
}

func (s *Signature) SetReturnType(t Type) { s.ret = idOf(t) }

// ReturnType returns the declared return type or nil.
func (s *Signature) ReturnType() Type { return s.typeBase.u.Get(s.ret) }

// Parent returns the overload set holding this signature.
func (s *Signature) Parent() *CallableType {
	c, _ := s.typeBase.u.Get(s.parent).(*CallableType)
	return c
}

// Owner is the enclosing container, taken from the overload set unless set directly.
func (s *Signature) Owner() Type {
	if s.owner != NoType {
		return s.typeBase.u.Get(s.owner)
	}
	if c := s.Parent(); c != nil {
		return c.Owner()
	}
	return nil
}

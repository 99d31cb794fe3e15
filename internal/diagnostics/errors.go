// Package diagnostics defines the error taxonomy of the declaration compiler.
package diagnostics

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrorKind classifies a compiler failure.
type ErrorKind int

const (
	// ReferenceErr is a required name missing from scope.
	ReferenceErr ErrorKind = iota
	// SyntaxErr is a record whose shape matches no known discriminator or kind.
	SyntaxErr
	// ConsistencyErr is a declaration whose overload variants disagree on kind.
	ConsistencyErr
	// UnknownMemberErr is a member kind the compiler does not know.
	UnknownMemberErr
)

func (k ErrorKind) String() string {
	switch k {
	case ReferenceErr:
		return "reference error"
	case SyntaxErr:
		return "syntax error"
	case ConsistencyErr:
		return "consistency error"
	case UnknownMemberErr:
		return "unknown member"
	default:
		return "error"
	}
}

// Sentinels for errors.Is.
var (
	ErrReference     = &Error{Kind: ReferenceErr}
	ErrSyntax        = &Error{Kind: SyntaxErr}
	ErrConsistency   = &Error{Kind: ConsistencyErr}
	ErrUnknownMember = &Error{Kind: UnknownMemberErr}
)

// Error is a fatal compiler error with enough context to find the offending input.
type Error struct {
	Kind     ErrorKind
	Name     string   // offending name, if any
	DeclKind string   // offending kind or discriminator, if any
	Kinds    []string // conflicting kinds (ConsistencyErr)
	Record   any      // offending input fragment
	Msg      string
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	b.WriteString(": ")
	b.WriteString(e.Msg)
	if e.Record != nil {
		b.WriteString("\n  record: ")
		b.WriteString(Dump(e.Record))
	}
	return b.String()
}

// Is matches any *Error of the same kind, so the sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// NewReferenceError reports a required type name that is not declared.
func NewReferenceError(name string, record any) *Error {
	return &Error{
		Kind:   ReferenceErr,
		Name:   name,
		Record: record,
		Msg:    fmt.Sprintf("type '%s' is not defined", name),
	}
}

// NewSyntaxError reports a record shape the compiler does not recognize.
func NewSyntaxError(record any, format string, args ...any) *Error {
	return &Error{
		Kind:   SyntaxErr,
		Record: record,
		Msg:    fmt.Sprintf(format, args...),
	}
}

// NewUnknownDiscriminatorError reports an unrecognized `type` discriminator.
func NewUnknownDiscriminatorError(discriminator string, record any) *Error {
	return &Error{
		Kind:     SyntaxErr,
		DeclKind: discriminator,
		Record:   record,
		Msg:      fmt.Sprintf("unknown type discriminator '%s'", discriminator),
	}
}

// NewConsistencyError reports overload variants of one declaration with different kinds.
func NewConsistencyError(name string, kinds []string, record any) *Error {
	sorted := append([]string(nil), kinds...)
	sort.Strings(sorted)
	return &Error{
		Kind:   ConsistencyErr,
		Name:   name,
		Kinds:  sorted,
		Record: record,
		Msg:    fmt.Sprintf("declaration '%s' has conflicting kinds: %s", name, strings.Join(sorted, ", ")),
	}
}

// NewUnknownMemberError reports a member kind outside the known set.
func NewUnknownMemberError(name, kind string, record any) *Error {
	return &Error{
		Kind:     UnknownMemberErr,
		Name:     name,
		DeclKind: kind,
		Record:   record,
		Msg:      fmt.Sprintf("unknown member '%s' of kind '%s'", name, kind),
	}
}

// Dump renders an input fragment as compact JSON, falling back to %v.
func Dump(record any) string {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Sprintf("%v", record)
	}
	return string(data)
}

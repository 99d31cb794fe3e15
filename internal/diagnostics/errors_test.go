package diagnostics

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSentinelsMatchByKind(t *testing.T) {
	tests := []struct {
		err      error
		sentinel error
	}{
		{NewReferenceError("Foo", nil), ErrReference},
		{NewSyntaxError(nil, "bad %s", "shape"), ErrSyntax},
		{NewUnknownDiscriminatorError("conditional", nil), ErrSyntax},
		{NewConsistencyError("X", []string{"b", "a"}, nil), ErrConsistency},
		{NewUnknownMemberError("m", "weird", nil), ErrUnknownMember},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			wrapped := fmt.Errorf("compiling: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
	assert.False(t, errors.Is(NewReferenceError("Foo", nil), ErrSyntax))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "reference error: type 'Foo' is not defined", NewReferenceError("Foo", nil).Error())
	assert.Equal(t, "unknown member: unknown member 'm' of kind 'weird'", NewUnknownMemberError("m", "weird", nil).Error())

	err := NewConsistencyError("X", []string{"b", "a"}, map[string]string{"name": "X"})
	assert.Equal(t, []string{"a", "b"}, err.Kinds)
	assert.Equal(t, "consistency error: declaration 'X' has conflicting kinds: a, b\n  record: {\"name\":\"X\"}", err.Error())
}

func TestDumpFallsBack(t *testing.T) {
	assert.Equal(t, `{"a":1}`, Dump(map[string]int{"a": 1}))
	assert.Equal(t, "+Inf", Dump(math.Inf(1)))
}

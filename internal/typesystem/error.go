package typesystem

import (
	"errors"
	"fmt"

	"github.com/julianjensen/inference/internal/diagnostics"
)

// ArityError indicates more type arguments than a generic declares.
// It matches diagnostics.ErrSyntax.
type ArityError struct {
	Name string
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("type '%s' takes %d type argument(s), got %d", e.Name, e.Want, e.Got)
}

func (e *ArityError) Is(target error) bool {
	var d *diagnostics.Error
	return errors.As(target, &d) && d.Kind == diagnostics.SyntaxErr
}

// NotContainerError indicates a member operation on a type without a member table.
type NotContainerError struct {
	Name    string
	Variant Variant
}

func (e *NotContainerError) Error() string {
	return fmt.Sprintf("type '%s' (%s) cannot hold members", e.Name, e.Variant)
}

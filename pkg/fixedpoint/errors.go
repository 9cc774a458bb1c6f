package fixedpoint

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrTypeMismatch = errors.New("numeric type mismatch")

// TypeMismatchError is returned (or raised, for the chaining methods) when an
// operation combines values of two different kinds.
type TypeMismatchError struct {
	Op    string
	Left  Kind
	Right Kind
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: can not %s %s and %s values", ErrTypeMismatch.Error(), e.Op, e.Left, e.Right)
}

func (e *TypeMismatchError) Is(target error) bool {
	return target == ErrTypeMismatch
}

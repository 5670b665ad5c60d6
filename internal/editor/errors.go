package editor

import (
	"errors"
	"fmt"
)

var (
	ErrIndexOutOfRange = errors.New("index out of range")
	ErrLastOption      = errors.New("cannot remove last option")
	ErrUnknownField    = errors.New("unknown question field")
	ErrInvalidValue    = errors.New("invalid field value")
	ErrIDExhausted     = errors.New("could not generate a unique question id")
)

// OperationError reports a rejected editor operation. The state the operation
// was applied to is left untouched.
type OperationError struct {
	Op  string
	Err error
}

func (e *OperationError) Error() string {
	return fmt.Sprintf("editor: %s: %v", e.Op, e.Err)
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

func opError(op string, err error) error {
	return &OperationError{Op: op, Err: err}
}

func questionIndexError(index, length int) error {
	return fmt.Errorf("%w: question %d (have %d)", ErrIndexOutOfRange, index, length)
}

func optionIndexError(index, length int) error {
	return fmt.Errorf("%w: option %d (have %d)", ErrIndexOutOfRange, index, length)
}

// IsPrecondition reports whether err is a rejected operation the caller can
// recover from by correcting its input.
func IsPrecondition(err error) bool {
	var opErr *OperationError
	return errors.As(err, &opErr)
}

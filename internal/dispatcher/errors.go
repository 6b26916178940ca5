package dispatcher

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateID          = errors.New("duplicate context id")
	ErrUnknownParent        = errors.New("unknown parent context id")
	ErrUnknownID            = errors.New("unknown context id")
	ErrUnknownToken         = errors.New("unknown token")
	ErrFactoryDeclined      = errors.New("context factory declined")
	ErrAmbiguousContextType = errors.New("ambiguous context type")
	ErrDuplicateToken       = errors.New("duplicate token")
	ErrReentrantDispatch    = errors.New("re-entrant dispatch")
)

// Error describes a dispatch failure. ContextID and Token are zero when they do not apply.
type Error struct {
	Op        string
	ContextID uint32
	Token     uint32
	Err       error
}

func (e *Error) Error() string {
	switch {
	case e.Token != 0:
		return fmt.Sprintf("%s: token %d: %v", e.Op, e.Token, e.Err)
	case e.ContextID != 0:
		return fmt.Sprintf("%s: context %d: %v", e.Op, e.ContextID, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

func contextError(op string, id uint32, err error) error {
	return &Error{Op: op, ContextID: id, Err: err}
}

func tokenError(op string, token uint32, err error) error {
	return &Error{Op: op, Token: token, Err: err}
}

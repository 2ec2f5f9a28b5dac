package professor

import (
	"errors"
	"fmt"
)

// Error kinds. Every repository failure matches exactly one of them with errors.Is.
var (
	ErrRetrieval = errors.New("retrieval error")
	ErrCreation  = errors.New("creation error")
	ErrUpdate    = errors.New("update error")
	ErrDeletion  = errors.New("deletion error")
	ErrNotFound  = errors.New("not found")
)

const (
	EntityProfessor  = "professor"
	EntityProfessors = "professors"
	EntityEvent      = "professor event"
	EntityEvents     = "professor events"
)

// Error wraps a store failure with the kind of operation that failed.
// It unwraps to both Kind and Err.
type Error struct {
	Kind   error
	Entity string
	ID     uint
	Err    error
}

func (e *Error) Error() string {
	subject := e.Entity
	if e.ID != 0 {
		subject = fmt.Sprintf("%s %d", e.Entity, e.ID)
	}

	var msg string
	switch e.Kind {
	case ErrNotFound:
		msg = subject + " not found"
	case ErrRetrieval:
		msg = "error retrieving " + subject
	case ErrCreation:
		msg = "error creating " + subject
	case ErrUpdate:
		msg = "error updating " + subject
	case ErrDeletion:
		msg = "error deleting " + subject
	default:
		msg = "error with " + subject
	}

	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func RetrievalError(entity string, id uint, err error) error {
	return &Error{Kind: ErrRetrieval, Entity: entity, ID: id, Err: err}
}

func CreationError(entity string, err error) error {
	return &Error{Kind: ErrCreation, Entity: entity, Err: err}
}

func UpdateError(entity string, id uint, err error) error {
	return &Error{Kind: ErrUpdate, Entity: entity, ID: id, Err: err}
}

func DeletionError(entity string, id uint, err error) error {
	return &Error{Kind: ErrDeletion, Entity: entity, ID: id, Err: err}
}

func NotFoundError(entity string, id uint) error {
	return &Error{Kind: ErrNotFound, Entity: entity, ID: id}
}

// IsNotFound reports whether err is a NotFoundError
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

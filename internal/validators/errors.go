// Package validators holds the field rules shared by the reviewer and review entities.
package validators

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package, the entities and their repositories matches exactly one of
// these with errors.Is (a storage error wrapping a corrupt row also matches the validation kind underneath).
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrRange           = errors.New("out of range")
	ErrTypeMismatch    = errors.New("type mismatch")
	ErrStorage         = errors.New("storage error")
)

// ValidationError reports a rejected field value.
// Kind is one of ErrInvalidArgument, ErrRange or ErrTypeMismatch.
type ValidationError struct {
	Kind    error
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return e.Kind
}

// InvalidArgument returns a ValidationError for malformed or insecure input.
func InvalidArgument(format string, args ...interface{}) error {
	return &ValidationError{Kind: ErrInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// OutOfRange returns a ValidationError for well-formed input outside its bounds.
func OutOfRange(format string, args ...interface{}) error {
	return &ValidationError{Kind: ErrRange, Message: fmt.Sprintf(format, args...)}
}

// TypeMismatch returns a ValidationError for a value of the wrong Go type.
func TypeMismatch(format string, args ...interface{}) error {
	return &ValidationError{Kind: ErrTypeMismatch, Message: fmt.Sprintf(format, args...)}
}

// StorageError reports that the relational store rejected or failed an operation, or that a row read back from it
// no longer passes validation.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrStorage) match any StorageError.
func (e *StorageError) Is(target error) bool {
	return target == ErrStorage
}

// NewStorageError wraps err as a StorageError for the named operation. A nil err stays nil.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StorageError{Op: op, Err: err}
}

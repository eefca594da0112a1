/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a record is not found
	ErrNotFound = errors.New("record not found")

	// ErrInvalidInput is returned when input validation fails
	ErrInvalidInput = errors.New("invalid input")

	// ErrKeyMissing is returned when a record has no value at its collection's key path
	ErrKeyMissing = errors.New("record key missing")

	// ErrUnknownCollection is returned for a collection with no registry entry
	ErrUnknownCollection = errors.New("unknown collection")

	// ErrLocalUnavailable is returned when the embedded store cannot be opened or a transaction fails
	ErrLocalUnavailable = errors.New("local store unavailable")

	// ErrRemoteUnavailable is returned when the hosted store cannot be reached or rejects a query
	ErrRemoteUnavailable = errors.New("remote store unavailable")

	// ErrSchemaTooNew is returned when the on-disk schema version is newer than this build supports
	ErrSchemaTooNew = errors.New("schema version is newer than supported")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Collection string
	Key        string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Collection, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError represents an input validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %q: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// KeyMissingError is a ValidationError raised before any storage is touched
// when a record lacks a usable key.
type KeyMissingError struct {
	Collection string
	Field      string
}

func (e *KeyMissingError) Error() string {
	return fmt.Sprintf("%s record has no value for key field %q", e.Collection, e.Field)
}

func (e *KeyMissingError) Is(target error) bool {
	return target == ErrKeyMissing || target == ErrInvalidInput
}

// UnknownCollectionError names a collection that is not declared in the registry
type UnknownCollectionError struct {
	Collection string
}

func (e *UnknownCollectionError) Error() string {
	return fmt.Sprintf("collection %q is not registered", e.Collection)
}

func (e *UnknownCollectionError) Is(target error) bool {
	return target == ErrUnknownCollection
}

// LocalError wraps a failure of the embedded store.
type LocalError struct {
	Op         string
	Collection string
	Err        error
}

func (e *LocalError) Error() string {
	if e.Collection == "" {
		return fmt.Sprintf("local %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("local %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *LocalError) Is(target error) bool {
	return target == ErrLocalUnavailable
}

func (e *LocalError) Unwrap() error {
	return e.Err
}

// RemoteError wraps a failure of the hosted store.
type RemoteError struct {
	Op         string
	Collection string
	Err        error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *RemoteError) Is(target error) bool {
	return target == ErrRemoteUnavailable
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(collection, key string) error {
	return &NotFoundError{Collection: collection, Key: key}
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewKeyMissingError creates a new KeyMissingError
func NewKeyMissingError(collection, field string) error {
	return &KeyMissingError{Collection: collection, Field: field}
}

// NewUnknownCollectionError creates a new UnknownCollectionError
func NewUnknownCollectionError(collection string) error {
	return &UnknownCollectionError{Collection: collection}
}

// NewLocalError wraps err as a LocalError. A nil err yields nil.
func NewLocalError(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &LocalError{Op: op, Collection: collection, Err: err}
}

// NewRemoteError wraps err as a RemoteError. A nil err yields nil.
func NewRemoteError(op, collection string, err error) error {
	if err == nil {
		return nil
	}
	return &RemoteError{Op: op, Collection: collection, Err: err}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsKeyMissing checks if an error reports a record without a key
func IsKeyMissing(err error) bool {
	return errors.Is(err, ErrKeyMissing)
}

// IsUnknownCollection checks if an error names an unregistered collection
func IsUnknownCollection(err error) bool {
	return errors.Is(err, ErrUnknownCollection)
}

// IsLocal checks if an error came from the embedded store
func IsLocal(err error) bool {
	return errors.Is(err, ErrLocalUnavailable)
}

// IsRemote checks if an error came from the hosted store
func IsRemote(err error) bool {
	return errors.Is(err, ErrRemoteUnavailable)
}

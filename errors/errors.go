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
	// ErrSessionClosed is returned when an operation is invoked on a closed session
	ErrSessionClosed = errors.New("session is closed")

	// ErrEntityNotFound is returned when a refresh target no longer exists in storage
	ErrEntityNotFound = errors.New("entity not found")

	// ErrOptimisticLock is returned when a version check fails during update or delete
	ErrOptimisticLock = errors.New("optimistic lock check failed")

	// ErrStorageOperation wraps any failure surfaced by the persister or connection layer
	ErrStorageOperation = errors.New("storage operation failed")

	// ErrQueryCompilation is returned for invalid query text or parameter mismatch
	ErrQueryCompilation = errors.New("query compilation failed")
)

// SessionClosedError represents an operation attempted on a closed session
type SessionClosedError struct {
	Operation string
}

func (e *SessionClosedError) Error() string {
	if e.Operation != "" {
		return fmt.Sprintf("cannot perform %s: session is closed", e.Operation)
	}
	return "session is closed"
}

func (e *SessionClosedError) Is(target error) bool {
	return target == ErrSessionClosed
}

// EntityNotFoundError represents a row that no longer exists in storage
type EntityNotFoundError struct {
	EntityName string
	ID         any
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("no row with identifier %v exists for entity %q", e.ID, e.EntityName)
}

func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrEntityNotFound
}

// OptimisticLockError represents a version mismatch detected by the persister
type OptimisticLockError struct {
	EntityName string
	ID         any
	Version    any
}

func (e *OptimisticLockError) Error() string {
	return fmt.Sprintf("row was updated or deleted by another session: entity %q, identifier %v, expected version %v",
		e.EntityName, e.ID, e.Version)
}

func (e *OptimisticLockError) Is(target error) bool {
	return target == ErrOptimisticLock
}

// StorageOperationError wraps a failure from the persister or connection layer
type StorageOperationError struct {
	Operation string
	Cause     error
}

func (e *StorageOperationError) Error() string {
	return fmt.Sprintf("storage operation %q failed: %v", e.Operation, e.Cause)
}

func (e *StorageOperationError) Is(target error) bool {
	return target == ErrStorageOperation
}

func (e *StorageOperationError) Unwrap() error {
	return e.Cause
}

// QueryCompilationError represents invalid query text or a parameter mismatch
type QueryCompilationError struct {
	QueryText string
	Cause     error
}

func (e *QueryCompilationError) Error() string {
	return fmt.Sprintf("could not compile query %q: %v", e.QueryText, e.Cause)
}

func (e *QueryCompilationError) Is(target error) bool {
	return target == ErrQueryCompilation
}

func (e *QueryCompilationError) Unwrap() error {
	return e.Cause
}

// Helper functions for creating errors

// NewSessionClosedError creates a new SessionClosedError
func NewSessionClosedError(operation string) error {
	return &SessionClosedError{Operation: operation}
}

// NewEntityNotFoundError creates a new EntityNotFoundError
func NewEntityNotFoundError(entityName string, id any) error {
	return &EntityNotFoundError{EntityName: entityName, ID: id}
}

// NewOptimisticLockError creates a new OptimisticLockError
func NewOptimisticLockError(entityName string, id, version any) error {
	return &OptimisticLockError{EntityName: entityName, ID: id, Version: version}
}

// NewStorageOperationError creates a new StorageOperationError
func NewStorageOperationError(operation string, cause error) error {
	return &StorageOperationError{Operation: operation, Cause: cause}
}

// NewQueryCompilationError creates a new QueryCompilationError
func NewQueryCompilationError(queryText string, cause error) error {
	return &QueryCompilationError{QueryText: queryText, Cause: cause}
}

// IsSessionClosed checks if an error indicates a closed session
func IsSessionClosed(err error) bool {
	return errors.Is(err, ErrSessionClosed)
}

// IsEntityNotFound checks if an error is an entity not found error
func IsEntityNotFound(err error) bool {
	return errors.Is(err, ErrEntityNotFound)
}

// IsOptimisticLock checks if an error is an optimistic lock error
func IsOptimisticLock(err error) bool {
	return errors.Is(err, ErrOptimisticLock)
}

// IsStorageOperation checks if an error is a storage operation error
func IsStorageOperation(err error) bool {
	return errors.Is(err, ErrStorageOperation)
}

// IsQueryCompilation checks if an error is a query compilation error
func IsQueryCompilation(err error) bool {
	return errors.Is(err, ErrQueryCompilation)
}

/*
Package errors provides semantic error types for the reactivestore session core.

The package defines the error taxonomy of the stateless session with specific
types that can be checked using the standard errors.Is() function or the
provided helper functions.

Common Errors:

	var (
	    ErrSessionClosed    = errors.New("session is closed")
	    ErrEntityNotFound   = errors.New("entity not found")
	    ErrOptimisticLock   = errors.New("optimistic lock check failed")
	    ErrStorageOperation = errors.New("storage operation failed")
	    ErrQueryCompilation = errors.New("query compilation failed")
	)

Usage:

	// Check error type
	result := session.Refresh(ctx, order).AwaitUninterruptible()
	if err := result.Failure(); err != nil {
	    if errors.IsEntityNotFound(err) {
	        // The row was deleted out-of-band
	        return fmt.Errorf("order vanished: %w", err)
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewEntityNotFoundError("Order", "o-42")
	err := errors.NewOptimisticLockError("Order", "o-42", int64(3))
	err := errors.NewStorageOperationError("update", cause)

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package reactivestore

import "github.com/suparena/reactivestore/persister"

// LoadOption customizes a Get or Refresh call.
type LoadOption func(*loadOptions)

type loadOptions struct {
	lock persister.LockOptions
}

// WithLockMode requests a row-level lock for the load.
func WithLockMode(mode persister.LockMode) LoadOption {
	return func(o *loadOptions) {
		o.lock.Mode = mode
	}
}

// WithLockScope extends the requested lock to owned collections.
func WithLockScope() LoadOption {
	return func(o *loadOptions) {
		o.lock.Scope = true
	}
}

// normalizeLock reduces an optional set of load options to a concrete lock
// specification. Absent options normalize to LockNone; the session never
// passes an unspecified lock to a persister.
func normalizeLock(opts ...LoadOption) persister.LockOptions {
	o := loadOptions{lock: persister.LockOptions{Mode: persister.LockNone}}
	for _, opt := range opts {
		opt(&o)
	}
	return o.lock
}

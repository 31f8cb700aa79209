/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package persister

import (
	"context"
	"reflect"

	"github.com/suparena/reactivestore/cache"
	"github.com/suparena/reactivestore/future"
)

// LockMode describes the row-level lock requested for a load.
type LockMode int

const (
	// LockNone is the default when no lock is requested.
	LockNone LockMode = iota
	// LockRead requests a shared lock for the duration of the load.
	LockRead
	// LockWrite requests an exclusive lock for the duration of the load.
	LockWrite
)

// String returns the lock mode name.
func (m LockMode) String() string {
	switch m {
	case LockRead:
		return "READ"
	case LockWrite:
		return "WRITE"
	default:
		return "NONE"
	}
}

// LockOptions pairs a lock mode with its scope. The session normalizes an
// absent lock request to a concrete LockOptions before any persister call.
type LockOptions struct {
	Mode LockMode
	// Scope extends the lock to owned collections when true.
	Scope bool
}

// VersionType describes how the opaque version token of a versioned entity
// is seeded and advanced. Implementations decide the concrete representation.
type VersionType interface {
	// Seed returns the initial version value for a fresh row.
	Seed() any
	// Increment returns the successor of the given version value.
	Increment(current any) any
	// Equal reports whether two version values are the same.
	Equal(a, b any) bool
}

// IdentifierGenerator produces identifiers for entities being inserted.
// It may return a pre-existing identifier unchanged.
type IdentifierGenerator interface {
	Generate(ctx context.Context, entity any, p EntityPersister) *future.Future[any]
}

// ProxyFactory creates interception-based stand-ins for rows that have not
// been materialized yet.
type ProxyFactory interface {
	CreateProxy(entityName string, id any) any
}

// LazyReference is the default stand-in handed out when an entity type has
// no dedicated proxy factory. It carries just enough to materialize later.
type LazyReference struct {
	EntityName string
	ID         any
}

// EntityPersister executes row-level storage operations for one entity type
// and exposes the mapping metadata the session core branches on. All storage
// operations return futures; the session composes them.
type EntityPersister interface {
	// EntityName returns the logical entity name.
	EntityName() string
	// MappedType returns the Go type this persister materializes.
	MappedType() reflect.Type

	// GetIdentifier extracts the identifier value from an entity instance.
	GetIdentifier(entity any) (any, error)
	// SetIdentifier writes the identifier value into an entity instance.
	SetIdentifier(entity any, id any) error
	// GetPropertyValues extracts the ordered property state array.
	GetPropertyValues(entity any) ([]any, error)
	// SetPropertyValues writes a property state array back into an entity.
	SetPropertyValues(entity any, state []any) error
	// GetVersion extracts the version value, or nil for unversioned types.
	GetVersion(entity any) (any, error)

	// IsVersioned reports whether the entity type carries a version token.
	IsVersioned() bool
	// VersionIndex returns the offset of the version inside the state array,
	// or -1 for unversioned types.
	VersionIndex() int
	// VersionType returns the version semantics for versioned types.
	VersionType() VersionType

	// IdentifierAssignedByInsert reports whether the identifier is produced
	// by the insert statement itself (post-insert generation).
	IdentifierAssignedByInsert() bool
	// IdentifierGenerator returns the generator used ahead of inserts.
	IdentifierGenerator() IdentifierGenerator

	// HasProxyFactory reports whether a per-type proxy factory is configured.
	HasProxyFactory() bool
	// ProxyFactory returns the configured proxy factory, or nil.
	ProxyFactory() ProxyFactory
	// HasSubclasses reports whether the mapped type has mapped subclasses.
	HasSubclasses() bool
	// EnhancedForLazyLoading reports whether instances support field-level
	// lazy enhancement.
	EnhancedForLazyLoading() bool
	// HasProxy reports whether classic proxies can represent this type.
	HasProxy() bool
	// CreateProxy synthesizes a classic proxy for the given identifier.
	CreateProxy(id any) any
	// CreateEnhancedProxy synthesizes an instance-shaped enhanced stand-in.
	CreateEnhancedProxy(id any) any

	// CanWriteToCache reports whether this type participates in the
	// second-level cache.
	CanWriteToCache() bool
	// CacheAccess returns the cache access strategy for this type.
	CacheAccess() cache.AccessStrategy

	// Load materializes the row for id, or resolves to nil when absent.
	// When instance is non-nil the row is loaded into that same instance.
	Load(ctx context.Context, id any, instance any, lock LockOptions) *future.Future[any]
	// Insert stores a row without an identifier and resolves to the
	// storage-generated identifier (post-insert generation only).
	Insert(ctx context.Context, state []any, entity any) *future.Future[any]
	// InsertWithID stores a row under a pre-resolved identifier.
	InsertWithID(ctx context.Context, id any, state []any, entity any) *future.Future[struct{}]
	// Update rewrites the row, checking previousVersion when non-nil.
	Update(ctx context.Context, id any, state []any, previousVersion any, entity any) *future.Future[struct{}]
	// Delete removes the row, checking version when non-nil.
	Delete(ctx context.Context, id any, version any, entity any) *future.Future[struct{}]
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cache

import "fmt"

// Key addresses one entity row in the second-level cache. It carries the
// tenant so multi-tenant deployments never share cached rows.
type Key struct {
	EntityName string
	ID         any
	Tenant     string
}

// String renders the key in a stable, human-readable form.
func (k Key) String() string {
	if k.Tenant == "" {
		return fmt.Sprintf("%s#%v", k.EntityName, k.ID)
	}
	return fmt.Sprintf("%s@%s#%v", k.EntityName, k.Tenant, k.ID)
}

// AccessStrategy is the narrow contract the session core uses to talk to a
// second-level cache. Storage of cached data is out of scope here.
type AccessStrategy interface {
	// GenerateKey derives the cache key for an entity row.
	GenerateKey(id any, entityName, tenant string) Key
	// Evict removes the entry for the given key, if any.
	Evict(key Key) error
}

// NoopAccess is the strategy used when caching is disabled. Eviction is
// still issued by the session, it just has no effect.
type NoopAccess struct{}

// GenerateKey derives the cache key for an entity row.
func (NoopAccess) GenerateKey(id any, entityName, tenant string) Key {
	return Key{EntityName: entityName, ID: id, Tenant: tenant}
}

// Evict does nothing.
func (NoopAccess) Evict(Key) error { return nil }

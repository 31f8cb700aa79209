/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package reactivestore

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/reactivestore/cache"
	"github.com/suparena/reactivestore/errors"
	"github.com/suparena/reactivestore/future"
	"github.com/suparena/reactivestore/idgen"
	"github.com/suparena/reactivestore/persister"
)

// StatelessSession executes entity CRUD, identifier generation, version
// management and lazy-reference resolution over an asynchronous connection,
// without keeping a per-transaction identity cache. Its transient
// persistence context is discarded after every top-level operation.
//
// A session is built for single-flow use: operations compose asynchronous
// steps, but the session itself must not be driven from multiple flows at
// once.
type StatelessSession struct {
	factory *Factory
	conn    Connection
	pc      *PersistenceContext

	mu           sync.Mutex
	fetchProfile string
	open         bool
	rollbackOnly bool
	opCount      int64
}

// Context returns the session's transient persistence context.
func (s *StatelessSession) Context() *PersistenceContext { return s.pc }

// IsOpen reports whether the session is still usable.
func (s *StatelessSession) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

// IsRollbackOnly reports whether the session has been marked unusable for
// further writes after an unrecoverable query failure.
func (s *StatelessSession) IsRollbackOnly() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rollbackOnly
}

// FetchProfile returns the load-time fetch profile currently in force.
func (s *StatelessSession) FetchProfile() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fetchProfile
}

func (s *StatelessSession) setFetchProfile(profile string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fetchProfile = profile
}

func (s *StatelessSession) markRollbackOnly() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rollbackOnly = true
}

func (s *StatelessSession) checkOpen(operation string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.open {
		return errors.NewSessionClosedError(operation)
	}
	return nil
}

func (s *StatelessSession) checkWritable(operation string) error {
	if err := s.checkOpen(operation); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.rollbackOnly {
		return errors.NewStorageOperationError(operation, fmt.Errorf("session is marked rollback-only"))
	}
	return nil
}

// afterOperation runs the post-operation bookkeeping shared by the query
// pipeline. There is no transaction to complete in a stateless session;
// only the operation counter advances.
func (s *StatelessSession) afterOperation(success bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.opCount++
}

// wrapStorage converts a persister failure into the session's error
// taxonomy, passing already-specific kinds through untouched.
func wrapStorage(operation string, err error) error {
	if err == nil {
		return nil
	}
	if errors.IsOptimisticLock(err) || errors.IsEntityNotFound(err) ||
		errors.IsStorageOperation(err) || errors.IsSessionClosed(err) {
		return err
	}
	return errors.NewStorageOperationError(operation, err)
}

// generatorFor returns the persister's identifier generator, defaulting to
// assigned identifiers when none is configured.
func generatorFor(p persister.EntityPersister) persister.IdentifierGenerator {
	if g := p.IdentifierGenerator(); g != nil {
		return g
	}
	if p.IdentifierAssignedByInsert() {
		return idgen.PostInsert{}
	}
	return idgen.Assigned{}
}

// Get materializes the entity with the given identifier, or resolves to nil
// when no row exists. Absence is never an error here. On completion the
// transient context is cleared unless a nested load is still outstanding.
func (s *StatelessSession) Get(ctx context.Context, entityName string, id any, opts ...LoadOption) *future.Future[any] {
	if err := s.checkOpen("get"); err != nil {
		return future.Failed[any](err)
	}
	p, err := s.factory.registry.ByName(entityName)
	if err != nil {
		return future.Failed[any](err)
	}
	lock := normalizeLock(opts...)

	return future.New(ctx, func(ctx context.Context) (any, error) {
		defer func() {
			if !s.pc.LoadInProgress() {
				s.pc.Clear()
			}
		}()
		entity, err := p.Load(ctx, id, nil, lock).Get(ctx)
		if err != nil {
			return nil, wrapStorage("load", err)
		}
		return entity, nil
	})
}

// Insert stores a new row for the entity. Identifier generation runs before
// the insert path is chosen: post-insert strategies insert without an
// identifier and write the generated value back afterwards, all other
// strategies resolve the identifier first and attach it to the insert.
// The entity argument is only mutated once the storage step has succeeded.
func (s *StatelessSession) Insert(ctx context.Context, entity any) *future.Future[struct{}] {
	if err := s.checkWritable("insert"); err != nil {
		return future.Failed[struct{}](err)
	}
	p, err := s.factory.registry.ByInstance(entity)
	if err != nil {
		return future.Failed[struct{}](err)
	}

	return future.New(ctx, func(ctx context.Context) (struct{}, error) {
		var none struct{}

		id, err := generatorFor(p).Generate(ctx, entity, p).Get(ctx)
		if err != nil {
			return none, wrapStorage("generate identifier", err)
		}

		state, err := p.GetPropertyValues(entity)
		if err != nil {
			return none, err
		}

		// Seed the version into the state array before either insert path,
		// but only when it differs from the in-memory value.
		substituted := false
		if p.IsVersioned() {
			vt := p.VersionType()
			seed := vt.Seed()
			if !vt.Equal(seed, state[p.VersionIndex()]) {
				state[p.VersionIndex()] = seed
				substituted = true
			}
		}

		if p.IdentifierAssignedByInsert() {
			generated, err := p.Insert(ctx, state, entity).Get(ctx)
			if err != nil {
				return none, wrapStorage("insert", err)
			}
			if substituted {
				if err := p.SetPropertyValues(entity, state); err != nil {
					return none, err
				}
			}
			if generated != nil {
				if err := p.SetIdentifier(entity, generated); err != nil {
					return none, err
				}
			}
			return none, nil
		}

		if _, err := p.InsertWithID(ctx, id, state, entity).Get(ctx); err != nil {
			return none, wrapStorage("insert", err)
		}
		if substituted {
			if err := p.SetPropertyValues(entity, state); err != nil {
				return none, err
			}
		}
		if err := p.SetIdentifier(entity, id); err != nil {
			return none, err
		}
		return none, nil
	})
}

// Update rewrites the row for the entity. Versioned types send the
// incremented version in the state array and the previous version for the
// persister's optimistic check; the entity's version field advances only
// after the storage step succeeds.
func (s *StatelessSession) Update(ctx context.Context, entity any) *future.Future[struct{}] {
	if err := s.checkWritable("update"); err != nil {
		return future.Failed[struct{}](err)
	}
	p, err := s.factory.registry.ByInstance(entity)
	if err != nil {
		return future.Failed[struct{}](err)
	}

	return future.New(ctx, func(ctx context.Context) (struct{}, error) {
		var none struct{}

		id, err := p.GetIdentifier(entity)
		if err != nil {
			return none, err
		}
		state, err := p.GetPropertyValues(entity)
		if err != nil {
			return none, err
		}

		var previousVersion any
		if p.IsVersioned() {
			previousVersion, err = p.GetVersion(entity)
			if err != nil {
				return none, err
			}
			state[p.VersionIndex()] = p.VersionType().Increment(previousVersion)
		}

		if _, err := p.Update(ctx, id, state, previousVersion, entity).Get(ctx); err != nil {
			return none, wrapStorage("update", err)
		}
		if p.IsVersioned() {
			if err := p.SetPropertyValues(entity, state); err != nil {
				return none, err
			}
		}
		return none, nil
	})
}

// Delete removes the row for the entity, keyed by identifier and checked
// against the entity's version when the type is versioned.
func (s *StatelessSession) Delete(ctx context.Context, entity any) *future.Future[struct{}] {
	if err := s.checkWritable("delete"); err != nil {
		return future.Failed[struct{}](err)
	}
	p, err := s.factory.registry.ByInstance(entity)
	if err != nil {
		return future.Failed[struct{}](err)
	}

	return future.New(ctx, func(ctx context.Context) (struct{}, error) {
		var none struct{}

		id, err := p.GetIdentifier(entity)
		if err != nil {
			return none, err
		}
		version, err := p.GetVersion(entity)
		if err != nil {
			return none, err
		}
		if _, err := p.Delete(ctx, id, version, entity).Get(ctx); err != nil {
			return none, wrapStorage("delete", err)
		}
		return none, nil
	})
}

// Refresh reloads the entity's state from storage into the same instance.
// The corresponding second-level cache entry is evicted first, a no-op
// eviction when caching is disabled. The load runs under the "refresh"
// fetch profile, restored unconditionally afterwards. A vanished row fails
// with an EntityNotFoundError.
func (s *StatelessSession) Refresh(ctx context.Context, entity any, opts ...LoadOption) *future.Future[struct{}] {
	if err := s.checkOpen("refresh"); err != nil {
		return future.Failed[struct{}](err)
	}
	p, err := s.factory.registry.ByInstance(entity)
	if err != nil {
		return future.Failed[struct{}](err)
	}
	lock := normalizeLock(opts...)

	return future.New(ctx, func(ctx context.Context) (struct{}, error) {
		var none struct{}

		id, err := p.GetIdentifier(entity)
		if err != nil {
			return none, err
		}

		access := p.CacheAccess()
		if access == nil {
			access = cache.NoopAccess{}
		}
		key := access.GenerateKey(id, p.EntityName(), s.factory.tenant)
		if err := access.Evict(key); err != nil {
			return none, wrapStorage("evict", err)
		}

		previousProfile := s.FetchProfile()
		s.setFetchProfile("refresh")
		defer s.setFetchProfile(previousProfile)

		result, err := func() (any, error) {
			defer func() {
				if !s.pc.LoadInProgress() {
					s.pc.Clear()
				}
			}()
			return p.Load(ctx, id, entity, lock).Get(ctx)
		}()
		if err != nil {
			return none, wrapStorage("refresh", err)
		}
		if result == nil {
			return none, errors.NewEntityNotFoundError(p.EntityName(), id)
		}
		return none, nil
	})
}

// Close closes the session and its connection. Further operations fail
// with a SessionClosedError.
func (s *StatelessSession) Close() error {
	s.mu.Lock()
	if !s.open {
		s.mu.Unlock()
		return nil
	}
	s.open = false
	s.mu.Unlock()
	return s.conn.Close()
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory EntityPersister implementation for testing
package mock

import (
	"context"
	"fmt"
	"sync"

	"github.com/suparena/reactivestore/errors"
	"github.com/suparena/reactivestore/future"
	"github.com/suparena/reactivestore/persister"
)

// Persister is an in-memory implementation of persister.EntityPersister.
// Rows are property state arrays keyed by canonical identifier. Version
// checks behave like a real storage layer: a mismatch fails with an
// optimistic lock error.
type Persister struct {
	*persister.Base

	mu     sync.RWMutex
	rows   map[string][]any
	nextID int64

	loadCount   int64
	insertCount int64
	updateCount int64
	deleteCount int64

	loadErr   error
	insertErr error
	updateErr error
	deleteErr error
}

// NewPersister creates a mock persister for the struct type T.
func NewPersister[T any](mapping persister.Mapping, opts ...persister.BaseOption) (*Persister, error) {
	base, err := persister.NewBase[T](mapping, opts...)
	if err != nil {
		return nil, err
	}
	return &Persister{
		Base: base,
		rows: make(map[string][]any),
	}, nil
}

// WithLoadError makes Load fail with the given error
func (m *Persister) WithLoadError(err error) *Persister {
	m.loadErr = err
	return m
}

// WithInsertError makes Insert and InsertWithID fail with the given error
func (m *Persister) WithInsertError(err error) *Persister {
	m.insertErr = err
	return m
}

// WithUpdateError makes Update fail with the given error
func (m *Persister) WithUpdateError(err error) *Persister {
	m.updateErr = err
	return m
}

// WithDeleteError makes Delete fail with the given error
func (m *Persister) WithDeleteError(err error) *Persister {
	m.deleteErr = err
	return m
}

func canonical(id any) string {
	return fmt.Sprintf("%v", id)
}

// Load materializes the row for id, or resolves to nil when absent.
func (m *Persister) Load(ctx context.Context, id any, instance any, lock persister.LockOptions) *future.Future[any] {
	return future.New(ctx, func(context.Context) (any, error) {
		if m.loadErr != nil {
			return nil, m.loadErr
		}

		m.mu.Lock()
		m.loadCount++
		state, exists := m.rows[canonical(id)]
		if exists {
			state = append([]any(nil), state...)
		}
		m.mu.Unlock()

		if !exists {
			return nil, nil
		}

		target := instance
		if target == nil {
			target = m.NewInstance()
		}
		if err := m.SetIdentifier(target, id); err != nil {
			return nil, err
		}
		if err := m.SetPropertyValues(target, state); err != nil {
			return nil, err
		}
		return target, nil
	})
}

// Insert stores a row and resolves to the storage-generated identifier.
func (m *Persister) Insert(ctx context.Context, state []any, entity any) *future.Future[any] {
	return future.New(ctx, func(context.Context) (any, error) {
		if m.insertErr != nil {
			return nil, m.insertErr
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		m.insertCount++
		m.nextID++
		id := fmt.Sprintf("gen-%d", m.nextID)
		m.rows[id] = append([]any(nil), state...)
		return any(id), nil
	})
}

// InsertWithID stores a row under a pre-resolved identifier.
func (m *Persister) InsertWithID(ctx context.Context, id any, state []any, entity any) *future.Future[struct{}] {
	return future.New(ctx, func(context.Context) (struct{}, error) {
		var none struct{}
		if m.insertErr != nil {
			return none, m.insertErr
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		m.insertCount++
		key := canonical(id)
		if _, exists := m.rows[key]; exists {
			return none, fmt.Errorf("row with identifier %v already exists", id)
		}
		m.rows[key] = append([]any(nil), state...)
		return none, nil
	})
}

// Update rewrites the row, checking previousVersion when non-nil.
func (m *Persister) Update(ctx context.Context, id any, state []any, previousVersion any, entity any) *future.Future[struct{}] {
	return future.New(ctx, func(context.Context) (struct{}, error) {
		var none struct{}
		if m.updateErr != nil {
			return none, m.updateErr
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		m.updateCount++
		key := canonical(id)
		stored, exists := m.rows[key]
		if !exists {
			return none, errors.NewOptimisticLockError(m.EntityName(), id, previousVersion)
		}
		if previousVersion != nil {
			if !m.VersionType().Equal(stored[m.VersionIndex()], previousVersion) {
				return none, errors.NewOptimisticLockError(m.EntityName(), id, previousVersion)
			}
		}
		m.rows[key] = append([]any(nil), state...)
		return none, nil
	})
}

// Delete removes the row, checking version when non-nil.
func (m *Persister) Delete(ctx context.Context, id any, version any, entity any) *future.Future[struct{}] {
	return future.New(ctx, func(context.Context) (struct{}, error) {
		var none struct{}
		if m.deleteErr != nil {
			return none, m.deleteErr
		}

		m.mu.Lock()
		defer m.mu.Unlock()
		m.deleteCount++
		key := canonical(id)
		stored, exists := m.rows[key]
		if !exists {
			return none, errors.NewOptimisticLockError(m.EntityName(), id, version)
		}
		if version != nil && m.IsVersioned() {
			if !m.VersionType().Equal(stored[m.VersionIndex()], version) {
				return none, errors.NewOptimisticLockError(m.EntityName(), id, version)
			}
		}
		delete(m.rows, key)
		return none, nil
	})
}

// RowCount returns the number of stored rows.
func (m *Persister) RowCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rows)
}

// StoredState returns a copy of the state array for an identifier.
func (m *Persister) StoredState(id any) ([]any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	state, ok := m.rows[canonical(id)]
	if !ok {
		return nil, false
	}
	return append([]any(nil), state...), true
}

// RemoveRow deletes a row out-of-band, bypassing version checks. Tests use
// this to simulate concurrent deletion.
func (m *Persister) RemoveRow(id any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rows, canonical(id))
}

// LoadCount returns the number of Load calls issued.
func (m *Persister) LoadCount() int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.loadCount
}

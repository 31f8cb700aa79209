/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/reactivestore/persister"
)

// Registry resolves entity persisters by logical entity name or by the
// runtime type of an entity instance. It is the session factory's metamodel.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]persister.EntityPersister
	byType  map[reflect.Type]persister.EntityPersister
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		byName: make(map[string]persister.EntityPersister),
		byType: make(map[reflect.Type]persister.EntityPersister),
	}
}

// Register adds a persister under its entity name and mapped type.
// Registering the same entity name twice is an error.
func (r *Registry) Register(p persister.EntityPersister) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := p.EntityName()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("persister for entity %q already registered", name)
	}
	r.byName[name] = p
	r.byType[p.MappedType()] = p
	return nil
}

// ByName retrieves the persister registered under the given entity name.
func (r *Registry) ByName(entityName string) (persister.EntityPersister, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.byName[entityName]
	if !exists {
		return nil, fmt.Errorf("no persister registered for entity %q", entityName)
	}
	return p, nil
}

// ByInstance resolves the persister from the runtime type of an entity.
// The entity must be a struct pointer.
func (r *Registry) ByInstance(entity any) (persister.EntityPersister, error) {
	t := reflect.TypeOf(entity)
	if t == nil {
		return nil, fmt.Errorf("cannot resolve persister for nil entity")
	}
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, exists := r.byType[t]
	if !exists {
		return nil, fmt.Errorf("no persister registered for type %s", t)
	}
	return p, nil
}

// EntityNames returns all registered entity names.
func (r *Registry) EntityNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	return names
}

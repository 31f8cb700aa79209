/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package reactivestore

import (
	"sync"
	"testing"

	"github.com/suparena/reactivestore/cache"
	"github.com/suparena/reactivestore/idgen"
	"github.com/suparena/reactivestore/persister"
	"github.com/suparena/reactivestore/persister/mock"
	"github.com/suparena/reactivestore/registry"
)

// Test entities

type Order struct {
	ID      string
	Total   float64
	Status  string
	Version int64
}

type Receipt struct {
	ID     string
	Amount float64
}

// Animal has mapped subclasses but no proxy factory: the resolver cannot
// keep it lazy and must materialize.
type Animal struct {
	ID   string
	Name string
}

// Customer supports field enhancement and has no subclasses.
type Customer struct {
	ID   string
	Name string
}

// Invoice supports enhancement, has subclasses and a proxy factory.
type Invoice struct {
	ID    string
	Total float64
}

var orderMapping = persister.Mapping{
	EntityName:   "Order",
	IDField:      "ID",
	VersionField: "Version",
	Properties:   []string{"Total", "Status", "Version"},
}

// stubProxyFactory records created proxies.
type stubProxyFactory struct {
	mu      sync.Mutex
	created int
}

type stubProxy struct {
	EntityName string
	ID         any
}

func (f *stubProxyFactory) CreateProxy(entityName string, id any) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created++
	return &stubProxy{EntityName: entityName, ID: id}
}

// recordingCache records evictions issued through it.
type recordingCache struct {
	mu        sync.Mutex
	evictions []cache.Key
}

func (c *recordingCache) GenerateKey(id any, entityName, tenant string) cache.Key {
	return cache.Key{EntityName: entityName, ID: id, Tenant: tenant}
}

func (c *recordingCache) Evict(key cache.Key) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictions = append(c.evictions, key)
	return nil
}

func (c *recordingCache) evicted() []cache.Key {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]cache.Key(nil), c.evictions...)
}

func newOrderPersister(t *testing.T, opts ...persister.BaseOption) *mock.Persister {
	t.Helper()
	opts = append([]persister.BaseOption{persister.WithIdentifierGenerator(idgen.UUID{})}, opts...)
	p, err := mock.NewPersister[Order](orderMapping, opts...)
	if err != nil {
		t.Fatalf("failed to create order persister: %v", err)
	}
	return p
}

func newSession(t *testing.T, persisters ...persister.EntityPersister) *StatelessSession {
	t.Helper()
	reg := registry.New()
	for _, p := range persisters {
		if err := reg.Register(p); err != nil {
			t.Fatalf("failed to register persister: %v", err)
		}
	}
	factory := NewFactory(reg)
	return factory.OpenStatelessSession(nil)
}

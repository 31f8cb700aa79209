/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package reactivestore

import (
	"fmt"

	"github.com/suparena/reactivestore/query"
	"github.com/suparena/reactivestore/registry"
)

// Connection is the asynchronous storage connection a session owns for its
// lifetime. Closing the session closes the connection.
type Connection interface {
	Close() error
}

// NoopConnection is a connection with no underlying transport, useful for
// persisters that manage their own clients.
type NoopConnection struct{}

// Close does nothing.
func (NoopConnection) Close() error { return nil }

// Factory holds the shared, immutable collaborators every session needs:
// the persister registry (metamodel), the compiled-plan cache and the
// tenant identifier. Sessions are cheap; the factory is built once.
type Factory struct {
	registry        *registry.Registry
	planCache       *query.PlanCache
	tenant          string
	enhancedProxies bool
}

// FactoryOption customizes a Factory.
type FactoryOption func(*Factory)

// WithPlanCompiler installs the query plan compiler. Sessions created from
// a factory without one cannot create queries.
func WithPlanCompiler(compiler query.PlanCompiler) FactoryOption {
	return func(f *Factory) {
		f.planCache = query.NewPlanCache(compiler)
	}
}

// WithTenant sets the tenant identifier used for cache-key generation.
func WithTenant(tenant string) FactoryOption {
	return func(f *Factory) {
		f.tenant = tenant
	}
}

// WithEnhancedProxies permits enhancement-based proxies for sessions of
// this factory.
func WithEnhancedProxies(allowed bool) FactoryOption {
	return func(f *Factory) {
		f.enhancedProxies = allowed
	}
}

// NewFactory creates a session factory over the given persister registry.
func NewFactory(reg *registry.Registry, opts ...FactoryOption) *Factory {
	f := &Factory{
		registry:        reg,
		enhancedProxies: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Registry returns the persister registry.
func (f *Factory) Registry() *registry.Registry { return f.registry }

// Tenant returns the tenant identifier.
func (f *Factory) Tenant() string { return f.tenant }

// OpenStatelessSession opens a session over the given connection. The
// session takes exclusive ownership of the connection.
func (f *Factory) OpenStatelessSession(conn Connection) *StatelessSession {
	if conn == nil {
		conn = NoopConnection{}
	}
	return &StatelessSession{
		factory: f,
		conn:    conn,
		pc:      newPersistenceContext(),
		open:    true,
	}
}

// plan returns the cached plan for the text, compiling on first use.
func (f *Factory) plan(text string, shallow bool) (*query.Plan, error) {
	if f.planCache == nil {
		return nil, fmt.Errorf("no query plan compiler configured")
	}
	return f.planCache.Get(text, shallow)
}

// nativePlan wraps a raw SQL specification into a plan.
func (f *Factory) nativePlan(spec query.NativeSpec) (*query.Plan, error) {
	if f.planCache == nil {
		return nil, fmt.Errorf("no query plan compiler configured")
	}
	return f.planCache.Native(spec)
}

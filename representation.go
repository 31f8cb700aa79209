/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package reactivestore

// RepresentationKind discriminates the polymorphic entity representation
// held by the transient persistence context.
type RepresentationKind int

const (
	// KindMaterialized is a fully loaded, concrete instance.
	KindMaterialized RepresentationKind = iota
	// KindEnhancedProxy is an instance-shaped stand-in produced by field
	// enhancement, usable without a proxy factory.
	KindEnhancedProxy
	// KindFactoryProxy is an interception-based stand-in created through a
	// per-entity-type proxy factory.
	KindFactoryProxy
	// KindNarrowedProxy is a factory proxy whose declared type has been
	// refined to the concrete subtype.
	KindNarrowedProxy
)

// String returns the kind name.
func (k RepresentationKind) String() string {
	switch k {
	case KindMaterialized:
		return "materialized"
	case KindEnhancedProxy:
		return "enhanced-proxy"
	case KindFactoryProxy:
		return "factory-proxy"
	case KindNarrowedProxy:
		return "narrowed-proxy"
	default:
		return "unknown"
	}
}

// Representation is the tagged variant standing for one logical row inside
// the transient persistence context: either the materialized instance or
// one of the proxy shapes.
type Representation struct {
	Kind RepresentationKind
	Key  EntityKey
	// Value is the entity instance or proxy value.
	Value any
	// DeclaredEntity is the entity name the representation was issued
	// under; narrowing rewrites it to the concrete subtype's name.
	DeclaredEntity string
}

// NewMaterialized wraps a fully loaded instance.
func NewMaterialized(key EntityKey, entity any) *Representation {
	return &Representation{Kind: KindMaterialized, Key: key, Value: entity, DeclaredEntity: key.EntityName}
}

// NewEnhancedProxy wraps an enhancement-based stand-in.
func NewEnhancedProxy(key EntityKey, proxy any, declared string) *Representation {
	return &Representation{Kind: KindEnhancedProxy, Key: key, Value: proxy, DeclaredEntity: declared}
}

// NewFactoryProxy wraps a factory-created stand-in.
func NewFactoryProxy(key EntityKey, proxy any, declared string) *Representation {
	return &Representation{Kind: KindFactoryProxy, Key: key, Value: proxy, DeclaredEntity: declared}
}

// IsProxy reports whether the representation is any proxy shape.
func (r *Representation) IsProxy() bool {
	return r.Kind == KindEnhancedProxy || r.Kind == KindFactoryProxy || r.Kind == KindNarrowedProxy
}

// Narrow refines a factory proxy's declared type to the concrete entity
// name. Narrowing is idempotent: a representation already declared under
// the concrete name is returned unchanged, as are materialized instances
// and enhanced proxies (which are already instance-shaped).
func (r *Representation) Narrow(concrete string) *Representation {
	if r.Kind != KindFactoryProxy && r.Kind != KindNarrowedProxy {
		return r
	}
	if r.DeclaredEntity == concrete {
		return r
	}
	return &Representation{
		Kind:           KindNarrowedProxy,
		Key:            r.Key,
		Value:          r.Value,
		DeclaredEntity: concrete,
	}
}

// resolveFns is the per-variant resolution table: how each representation
// kind yields the value handed back to callers.
var resolveFns = map[RepresentationKind]func(*Representation) any{
	KindMaterialized:  func(r *Representation) any { return r.Value },
	KindEnhancedProxy: func(r *Representation) any { return r.Value },
	KindFactoryProxy:  func(r *Representation) any { return r.Value },
	KindNarrowedProxy: func(r *Representation) any { return r.Value },
}

// Resolve returns the value callers receive for this representation.
func (r *Representation) Resolve() any {
	if fn, ok := resolveFns[r.Kind]; ok {
		return fn(r)
	}
	return r.Value
}

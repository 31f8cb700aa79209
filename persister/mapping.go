/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package persister

import (
	"fmt"
	"reflect"

	"github.com/suparena/reactivestore/cache"
)

// Mapping declares how one Go type maps onto a logical entity: which field
// holds the identifier, which (if any) holds the version token, the ordered
// property fields making up the state array, and the capability flags the
// lazy-reference resolver branches on.
type Mapping struct {
	// EntityName is the logical entity name (defaults to the type name).
	EntityName string
	// IDField names the struct field holding the identifier.
	IDField string
	// VersionField names the struct field holding the version token.
	// Empty means the type is unversioned.
	VersionField string
	// Properties lists the struct fields, in order, forming the property
	// state array. The version field must appear here when present.
	Properties []string
	// PostInsertID marks identifier generation as a side effect of the
	// insert statement.
	PostInsertID bool
	// HasSubclasses marks types with mapped subclasses.
	HasSubclasses bool
	// EnhancedForLazyLoading marks types supporting field-level enhancement.
	EnhancedForLazyLoading bool
	// ClassicProxies marks types representable by classic proxies.
	ClassicProxies bool
	// CacheEnabled marks types participating in the second-level cache.
	CacheEnabled bool
}

// Validate checks the mapping against the given struct type.
func (m Mapping) Validate(typ reflect.Type) error {
	if typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return fmt.Errorf("mapping %q: mapped type %s is not a struct", m.EntityName, typ)
	}
	if m.IDField == "" {
		return fmt.Errorf("mapping %q: missing identifier field", m.EntityName)
	}
	if _, ok := typ.FieldByName(m.IDField); !ok {
		return fmt.Errorf("mapping %q: identifier field %q not found on %s", m.EntityName, m.IDField, typ)
	}
	if m.VersionField != "" {
		if _, ok := typ.FieldByName(m.VersionField); !ok {
			return fmt.Errorf("mapping %q: version field %q not found on %s", m.EntityName, m.VersionField, typ)
		}
		if m.versionIndex() < 0 {
			return fmt.Errorf("mapping %q: version field %q must be listed in properties", m.EntityName, m.VersionField)
		}
	}
	for _, p := range m.Properties {
		if _, ok := typ.FieldByName(p); !ok {
			return fmt.Errorf("mapping %q: property field %q not found on %s", m.EntityName, p, typ)
		}
	}
	return nil
}

func (m Mapping) versionIndex() int {
	if m.VersionField == "" {
		return -1
	}
	for i, p := range m.Properties {
		if p == m.VersionField {
			return i
		}
	}
	return -1
}

// Int64Version is the default version semantics: a monotonically increasing
// int64 seeded at zero.
type Int64Version struct{}

// Seed returns the initial version value for a fresh row.
func (Int64Version) Seed() any { return int64(0) }

// Increment returns the successor of the given version value.
func (Int64Version) Increment(current any) any {
	v, ok := current.(int64)
	if !ok {
		return int64(0)
	}
	return v + 1
}

// Equal reports whether two version values are the same.
func (Int64Version) Equal(a, b any) bool { return a == b }

// Base carries the mapping-driven, reflection-backed half of an
// EntityPersister. Concrete persisters embed it and supply the storage
// operations.
type Base struct {
	mapping      Mapping
	typ          reflect.Type
	versionIdx   int
	versionType  VersionType
	generator    IdentifierGenerator
	proxyFactory ProxyFactory
	cacheAccess  cache.AccessStrategy
}

// NewBase builds the metadata half of a persister for the struct type of T.
func NewBase[T any](mapping Mapping, opts ...BaseOption) (*Base, error) {
	typ := reflect.TypeOf((*T)(nil)).Elem()
	if mapping.EntityName == "" {
		mapping.EntityName = typ.Name()
	}
	if err := mapping.Validate(typ); err != nil {
		return nil, err
	}
	b := &Base{
		mapping:     mapping,
		typ:         typ,
		versionIdx:  mapping.versionIndex(),
		versionType: Int64Version{},
		cacheAccess: cache.NoopAccess{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b, nil
}

// BaseOption customizes a Base.
type BaseOption func(*Base)

// WithVersionType overrides the default Int64Version semantics.
func WithVersionType(vt VersionType) BaseOption {
	return func(b *Base) { b.versionType = vt }
}

// WithIdentifierGenerator sets the generator used ahead of inserts.
func WithIdentifierGenerator(g IdentifierGenerator) BaseOption {
	return func(b *Base) { b.generator = g }
}

// WithProxyFactory sets the per-type proxy factory.
func WithProxyFactory(f ProxyFactory) BaseOption {
	return func(b *Base) { b.proxyFactory = f }
}

// WithCacheAccess sets the second-level cache strategy.
func WithCacheAccess(a cache.AccessStrategy) BaseOption {
	return func(b *Base) { b.cacheAccess = a }
}

// EntityName returns the logical entity name.
func (b *Base) EntityName() string { return b.mapping.EntityName }

// MappedType returns the Go type this persister materializes.
func (b *Base) MappedType() reflect.Type { return b.typ }

// Mapping returns the declared mapping.
func (b *Base) Mapping() Mapping { return b.mapping }

// NewInstance returns a fresh zero instance of the mapped type as a
// struct pointer.
func (b *Base) NewInstance() any { return reflect.New(b.typ).Interface() }

func (b *Base) structValue(entity any) (reflect.Value, error) {
	v := reflect.ValueOf(entity)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return reflect.Value{}, fmt.Errorf("entity for %q must be a struct pointer, got %T", b.mapping.EntityName, entity)
	}
	if v.Elem().Type() != b.typ {
		return reflect.Value{}, fmt.Errorf("entity type %s does not match persister for %q", v.Elem().Type(), b.mapping.EntityName)
	}
	return v.Elem(), nil
}

// GetIdentifier extracts the identifier value from an entity instance.
func (b *Base) GetIdentifier(entity any) (any, error) {
	v, err := b.structValue(entity)
	if err != nil {
		return nil, err
	}
	return v.FieldByName(b.mapping.IDField).Interface(), nil
}

// SetIdentifier writes the identifier value into an entity instance.
func (b *Base) SetIdentifier(entity any, id any) error {
	v, err := b.structValue(entity)
	if err != nil {
		return err
	}
	field := v.FieldByName(b.mapping.IDField)
	idVal := reflect.ValueOf(id)
	if !idVal.Type().AssignableTo(field.Type()) {
		if idVal.Type().ConvertibleTo(field.Type()) {
			idVal = idVal.Convert(field.Type())
		} else {
			return fmt.Errorf("identifier %T is not assignable to field %q of %q", id, b.mapping.IDField, b.mapping.EntityName)
		}
	}
	field.Set(idVal)
	return nil
}

// GetPropertyValues extracts the ordered property state array.
func (b *Base) GetPropertyValues(entity any) ([]any, error) {
	v, err := b.structValue(entity)
	if err != nil {
		return nil, err
	}
	state := make([]any, len(b.mapping.Properties))
	for i, p := range b.mapping.Properties {
		state[i] = v.FieldByName(p).Interface()
	}
	return state, nil
}

// SetPropertyValues writes a property state array back into an entity.
func (b *Base) SetPropertyValues(entity any, state []any) error {
	v, err := b.structValue(entity)
	if err != nil {
		return err
	}
	if len(state) != len(b.mapping.Properties) {
		return fmt.Errorf("state length %d does not match %d mapped properties of %q",
			len(state), len(b.mapping.Properties), b.mapping.EntityName)
	}
	for i, p := range b.mapping.Properties {
		field := v.FieldByName(p)
		if state[i] == nil {
			field.Set(reflect.Zero(field.Type()))
			continue
		}
		sv := reflect.ValueOf(state[i])
		if !sv.Type().AssignableTo(field.Type()) {
			if sv.Type().ConvertibleTo(field.Type()) {
				sv = sv.Convert(field.Type())
			} else {
				return fmt.Errorf("value %T is not assignable to property %q of %q", state[i], p, b.mapping.EntityName)
			}
		}
		field.Set(sv)
	}
	return nil
}

// GetVersion extracts the version value, or nil for unversioned types.
func (b *Base) GetVersion(entity any) (any, error) {
	if b.mapping.VersionField == "" {
		return nil, nil
	}
	v, err := b.structValue(entity)
	if err != nil {
		return nil, err
	}
	return v.FieldByName(b.mapping.VersionField).Interface(), nil
}

// IsVersioned reports whether the entity type carries a version token.
func (b *Base) IsVersioned() bool { return b.mapping.VersionField != "" }

// VersionIndex returns the offset of the version inside the state array.
func (b *Base) VersionIndex() int { return b.versionIdx }

// VersionType returns the version semantics for versioned types.
func (b *Base) VersionType() VersionType { return b.versionType }

// IdentifierAssignedByInsert reports post-insert identifier generation.
func (b *Base) IdentifierAssignedByInsert() bool { return b.mapping.PostInsertID }

// IdentifierGenerator returns the generator used ahead of inserts.
func (b *Base) IdentifierGenerator() IdentifierGenerator { return b.generator }

// HasProxyFactory reports whether a per-type proxy factory is configured.
func (b *Base) HasProxyFactory() bool { return b.proxyFactory != nil }

// ProxyFactory returns the configured proxy factory, or nil.
func (b *Base) ProxyFactory() ProxyFactory { return b.proxyFactory }

// HasSubclasses reports whether the mapped type has mapped subclasses.
func (b *Base) HasSubclasses() bool { return b.mapping.HasSubclasses }

// EnhancedForLazyLoading reports field-level enhancement support.
func (b *Base) EnhancedForLazyLoading() bool { return b.mapping.EnhancedForLazyLoading }

// HasProxy reports whether classic proxies can represent this type.
func (b *Base) HasProxy() bool { return b.mapping.ClassicProxies }

// CreateProxy synthesizes a classic proxy for the given identifier. The
// configured proxy factory wins; otherwise a LazyReference stands in.
func (b *Base) CreateProxy(id any) any {
	if b.proxyFactory != nil {
		return b.proxyFactory.CreateProxy(b.mapping.EntityName, id)
	}
	return &LazyReference{EntityName: b.mapping.EntityName, ID: id}
}

// CreateEnhancedProxy synthesizes an instance-shaped stand-in: a zero value
// of the mapped type with only the identifier populated.
func (b *Base) CreateEnhancedProxy(id any) any {
	instance := reflect.New(b.typ).Interface()
	// Best effort: an unassignable id leaves the field zeroed.
	_ = b.SetIdentifier(instance, id)
	return instance
}

// CanWriteToCache reports second-level cache participation.
func (b *Base) CanWriteToCache() bool { return b.mapping.CacheEnabled }

// CacheAccess returns the cache access strategy for this type.
func (b *Base) CacheAccess() cache.AccessStrategy { return b.cacheAccess }

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package persister

import (
	"reflect"
	"testing"
)

type order struct {
	ID      string
	Total   float64
	Status  string
	Version int64
}

var orderMapping = Mapping{
	EntityName:   "Order",
	IDField:      "ID",
	VersionField: "Version",
	Properties:   []string{"Total", "Status", "Version"},
}

func TestMappingValidate(t *testing.T) {
	typ := reflect.TypeOf(order{})

	if err := orderMapping.Validate(typ); err != nil {
		t.Fatalf("valid mapping rejected: %v", err)
	}

	cases := []struct {
		name    string
		mutate  func(m *Mapping)
	}{
		{"MissingIDField", func(m *Mapping) { m.IDField = "" }},
		{"UnknownIDField", func(m *Mapping) { m.IDField = "Nope" }},
		{"UnknownVersionField", func(m *Mapping) { m.VersionField = "Nope" }},
		{"VersionNotInProperties", func(m *Mapping) { m.Properties = []string{"Total", "Status"} }},
		{"UnknownProperty", func(m *Mapping) { m.Properties = []string{"Total", "Nope", "Version"} }},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			m := orderMapping
			c.mutate(&m)
			if err := m.Validate(typ); err == nil {
				t.Errorf("expected %s to be rejected", c.name)
			}
		})
	}

	if err := orderMapping.Validate(reflect.TypeOf("")); err == nil {
		t.Error("non-struct types must be rejected")
	}
}

func TestBaseAccessors(t *testing.T) {
	b, err := NewBase[order](orderMapping)
	if err != nil {
		t.Fatalf("NewBase failed: %v", err)
	}

	if b.EntityName() != "Order" {
		t.Errorf("unexpected entity name %q", b.EntityName())
	}
	if !b.IsVersioned() || b.VersionIndex() != 2 {
		t.Errorf("version metadata mismatch: versioned=%v index=%d", b.IsVersioned(), b.VersionIndex())
	}

	entity := &order{ID: "o-1", Total: 10, Status: "pending", Version: 3}

	id, err := b.GetIdentifier(entity)
	if err != nil || id != "o-1" {
		t.Errorf("GetIdentifier = %v, %v", id, err)
	}

	version, err := b.GetVersion(entity)
	if err != nil || version != int64(3) {
		t.Errorf("GetVersion = %v, %v", version, err)
	}

	state, err := b.GetPropertyValues(entity)
	if err != nil {
		t.Fatalf("GetPropertyValues failed: %v", err)
	}
	if !reflect.DeepEqual(state, []any{10.0, "pending", int64(3)}) {
		t.Errorf("unexpected state array %v", state)
	}

	state[0] = 25.0
	state[2] = int64(4)
	if err := b.SetPropertyValues(entity, state); err != nil {
		t.Fatalf("SetPropertyValues failed: %v", err)
	}
	if entity.Total != 25.0 || entity.Version != 4 {
		t.Errorf("write-back mismatch: %+v", entity)
	}

	if err := b.SetPropertyValues(entity, []any{1.0}); err == nil {
		t.Error("a short state array must be rejected")
	}
	if err := b.SetIdentifier(entity, "o-2"); err != nil || entity.ID != "o-2" {
		t.Errorf("SetIdentifier failed: %v", err)
	}
	if _, err := b.GetIdentifier(order{}); err == nil {
		t.Error("non-pointer entities must be rejected")
	}
}

func TestBaseDefaultsEntityNameToTypeName(t *testing.T) {
	m := orderMapping
	m.EntityName = ""
	b, err := NewBase[order](m)
	if err != nil {
		t.Fatalf("NewBase failed: %v", err)
	}
	if b.EntityName() != "order" {
		t.Errorf("expected the type name as entity name, got %q", b.EntityName())
	}
}

func TestInt64Version(t *testing.T) {
	vt := Int64Version{}
	if vt.Seed() != int64(0) {
		t.Error("seed must be zero")
	}
	if vt.Increment(int64(3)) != int64(4) {
		t.Error("increment must be the successor")
	}
	if vt.Increment("garbage") != int64(0) {
		t.Error("a non-int64 value restarts at zero")
	}
	if !vt.Equal(int64(2), int64(2)) || vt.Equal(int64(2), int64(3)) {
		t.Error("equality mismatch")
	}
}

func TestCreateEnhancedProxy(t *testing.T) {
	b, err := NewBase[order](orderMapping)
	if err != nil {
		t.Fatalf("NewBase failed: %v", err)
	}

	proxy := b.CreateEnhancedProxy("o-9")
	o, ok := proxy.(*order)
	if !ok {
		t.Fatalf("expected an instance-shaped proxy, got %T", proxy)
	}
	if o.ID != "o-9" {
		t.Errorf("expected the identifier populated, got %q", o.ID)
	}
	if o.Total != 0 || o.Status != "" || o.Version != 0 {
		t.Errorf("all other fields must stay zero: %+v", o)
	}
}

func TestCreateProxyWithoutFactory(t *testing.T) {
	b, err := NewBase[order](orderMapping)
	if err != nil {
		t.Fatalf("NewBase failed: %v", err)
	}

	proxy := b.CreateProxy("o-1")
	ref, ok := proxy.(*LazyReference)
	if !ok {
		t.Fatalf("expected a lazy reference, got %T", proxy)
	}
	if ref.EntityName != "Order" || ref.ID != "o-1" {
		t.Errorf("unexpected lazy reference %+v", ref)
	}
}

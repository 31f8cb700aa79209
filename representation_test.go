/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package reactivestore

import "testing"

func TestRepresentationKinds(t *testing.T) {
	key := NewEntityKey("Order", "o-1")

	cases := []struct {
		rep     *Representation
		kind    RepresentationKind
		isProxy bool
	}{
		{NewMaterialized(key, "entity"), KindMaterialized, false},
		{NewEnhancedProxy(key, "proxy", "Order"), KindEnhancedProxy, true},
		{NewFactoryProxy(key, "proxy", "Order"), KindFactoryProxy, true},
		{NewFactoryProxy(key, "proxy", "Animal").Narrow("Order"), KindNarrowedProxy, true},
	}
	for _, c := range cases {
		if c.rep.Kind != c.kind {
			t.Errorf("expected kind %s, got %s", c.kind, c.rep.Kind)
		}
		if c.rep.IsProxy() != c.isProxy {
			t.Errorf("kind %s: IsProxy = %v, want %v", c.kind, c.rep.IsProxy(), c.isProxy)
		}
		if c.rep.Resolve() != c.rep.Value {
			t.Errorf("kind %s: Resolve must hand back the value", c.kind)
		}
	}
}

func TestNarrowing(t *testing.T) {
	key := NewEntityKey("Cat", "c-1")

	t.Run("FactoryProxyNarrows", func(t *testing.T) {
		rep := NewFactoryProxy(key, "proxy", "Animal")
		narrowed := rep.Narrow("Cat")
		if narrowed == rep {
			t.Fatal("narrowing to a different type must produce a new representation")
		}
		if narrowed.Kind != KindNarrowedProxy || narrowed.DeclaredEntity != "Cat" {
			t.Errorf("unexpected narrowed representation: %+v", narrowed)
		}
		if narrowed.Value != rep.Value {
			t.Error("narrowing must preserve the proxy value")
		}
	})

	t.Run("NarrowingIsIdempotent", func(t *testing.T) {
		rep := NewFactoryProxy(key, "proxy", "Cat")
		if rep.Narrow("Cat") != rep {
			t.Error("narrowing to the already-declared type must return the same object")
		}
	})

	t.Run("NonFactoryShapesUnchanged", func(t *testing.T) {
		materialized := NewMaterialized(key, "entity")
		if materialized.Narrow("Cat") != materialized {
			t.Error("materialized instances are never narrowed")
		}
		enhanced := NewEnhancedProxy(key, "proxy", "Animal")
		if enhanced.Narrow("Cat") != enhanced {
			t.Error("enhanced proxies are already instance-shaped")
		}
	})
}

func TestEntityKeyEquality(t *testing.T) {
	a := NewEntityKey("Order", "o-1")
	b := NewEntityKey("Order", "o-1")
	c := NewEntityKey("Order", "o-2")
	d := NewEntityKey("Invoice", "o-1")

	if a != b {
		t.Error("keys with equal name and id must compare equal")
	}
	if a == c || a == d {
		t.Error("keys differing in id or name must not compare equal")
	}
	if a.String() != "Order#o-1" {
		t.Errorf("unexpected rendering %q", a.String())
	}
}

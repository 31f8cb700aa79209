/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package cache

import "testing"

func TestKeyString(t *testing.T) {
	plain := Key{EntityName: "Order", ID: "o-1"}
	if plain.String() != "Order#o-1" {
		t.Errorf("unexpected rendering %q", plain.String())
	}

	tenanted := Key{EntityName: "Order", ID: "o-1", Tenant: "acme"}
	if tenanted.String() != "Order@acme#o-1" {
		t.Errorf("unexpected rendering %q", tenanted.String())
	}
}

func TestNoopAccess(t *testing.T) {
	var strategy AccessStrategy = NoopAccess{}

	key := strategy.GenerateKey("o-1", "Order", "acme")
	if key.EntityName != "Order" || key.ID != "o-1" || key.Tenant != "acme" {
		t.Errorf("unexpected key %+v", key)
	}
	if err := strategy.Evict(key); err != nil {
		t.Errorf("noop eviction must not fail: %v", err)
	}
}

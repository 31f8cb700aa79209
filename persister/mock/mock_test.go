/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"testing"

	"github.com/suparena/reactivestore/errors"
	"github.com/suparena/reactivestore/persister"
)

type item struct {
	ID      string
	Name    string
	Version int64
}

var itemMapping = persister.Mapping{
	EntityName:   "Item",
	IDField:      "ID",
	VersionField: "Version",
	Properties:   []string{"Name", "Version"},
}

func newItemPersister(t *testing.T) *Persister {
	t.Helper()
	p, err := NewPersister[item](itemMapping)
	if err != nil {
		t.Fatalf("failed to create persister: %v", err)
	}
	return p
}

func TestLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := newItemPersister(t)

	if _, err := p.InsertWithID(ctx, "i-1", []any{"widget", int64(0)}, nil).Get(ctx); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	loaded, err := p.Load(ctx, "i-1", nil, persister.LockOptions{}).Get(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	it, ok := loaded.(*item)
	if !ok {
		t.Fatalf("expected *item, got %T", loaded)
	}
	if it.ID != "i-1" || it.Name != "widget" {
		t.Errorf("round trip mismatch: %+v", it)
	}

	absent, err := p.Load(ctx, "missing", nil, persister.LockOptions{}).Get(ctx)
	if err != nil || absent != nil {
		t.Errorf("absent rows must resolve to nil, got %v, %v", absent, err)
	}
	if p.LoadCount() != 2 {
		t.Errorf("expected two load calls, got %d", p.LoadCount())
	}
}

func TestLoadIntoProvidedInstance(t *testing.T) {
	ctx := context.Background()
	p := newItemPersister(t)
	if _, err := p.InsertWithID(ctx, "i-1", []any{"widget", int64(2)}, nil).Get(ctx); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	target := &item{ID: "stale", Name: "stale"}
	loaded, err := p.Load(ctx, "i-1", target, persister.LockOptions{}).Get(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded != any(target) {
		t.Error("load must reuse the provided instance")
	}
	if target.ID != "i-1" || target.Name != "widget" || target.Version != 2 {
		t.Errorf("instance not refreshed: %+v", target)
	}
}

func TestInsertGeneratesIdentifiers(t *testing.T) {
	ctx := context.Background()
	p := newItemPersister(t)

	id1, err := p.Insert(ctx, []any{"a", int64(0)}, nil).Get(ctx)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	id2, err := p.Insert(ctx, []any{"b", int64(0)}, nil).Get(ctx)
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if id1 != "gen-1" || id2 != "gen-2" {
		t.Errorf("unexpected generated identifiers %v, %v", id1, id2)
	}
}

func TestInsertWithIDRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	p := newItemPersister(t)

	if _, err := p.InsertWithID(ctx, "i-1", []any{"a", int64(0)}, nil).Get(ctx); err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if _, err := p.InsertWithID(ctx, "i-1", []any{"b", int64(0)}, nil).Get(ctx); err == nil {
		t.Fatal("duplicate identifiers must be rejected")
	}
}

func TestUpdateVersionCheck(t *testing.T) {
	ctx := context.Background()
	p := newItemPersister(t)
	if _, err := p.InsertWithID(ctx, "i-1", []any{"a", int64(0)}, nil).Get(ctx); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if _, err := p.Update(ctx, "i-1", []any{"b", int64(1)}, int64(0), nil).Get(ctx); err != nil {
		t.Fatalf("matching version must update: %v", err)
	}

	_, err := p.Update(ctx, "i-1", []any{"c", int64(1)}, int64(0), nil).Get(ctx)
	if !errors.IsOptimisticLock(err) {
		t.Fatalf("stale version must fail optimistically, got %v", err)
	}

	_, err = p.Update(ctx, "missing", []any{"c", int64(1)}, int64(0), nil).Get(ctx)
	if !errors.IsOptimisticLock(err) {
		t.Fatalf("a vanished row must fail optimistically, got %v", err)
	}
}

func TestDeleteVersionCheck(t *testing.T) {
	ctx := context.Background()
	p := newItemPersister(t)
	if _, err := p.InsertWithID(ctx, "i-1", []any{"a", int64(3)}, nil).Get(ctx); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	_, err := p.Delete(ctx, "i-1", int64(2), nil).Get(ctx)
	if !errors.IsOptimisticLock(err) {
		t.Fatalf("stale version must fail optimistically, got %v", err)
	}

	if _, err := p.Delete(ctx, "i-1", int64(3), nil).Get(ctx); err != nil {
		t.Fatalf("matching version must delete: %v", err)
	}
	if p.RowCount() != 0 {
		t.Errorf("expected no rows, got %d", p.RowCount())
	}
}

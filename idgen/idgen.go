/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package idgen

import (
	"context"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"github.com/suparena/reactivestore/future"
	"github.com/suparena/reactivestore/persister"
)

// Assigned expects the application to have set the identifier already and
// returns it unchanged. A zero identifier is an error.
type Assigned struct{}

// Generate returns the pre-assigned identifier from the entity.
func (Assigned) Generate(ctx context.Context, entity any, p persister.EntityPersister) *future.Future[any] {
	id, err := p.GetIdentifier(entity)
	if err != nil {
		return future.Failed[any](err)
	}
	if id == nil || reflect.ValueOf(id).IsZero() {
		return future.Failed[any](fmt.Errorf("entity %q has no assigned identifier", p.EntityName()))
	}
	return future.Completed(id)
}

// UUID generates random UUID string identifiers. A pre-existing identifier
// on the entity is returned unchanged.
type UUID struct{}

// Generate returns the entity's identifier, generating a fresh UUID when
// the field is still zero.
func (UUID) Generate(ctx context.Context, entity any, p persister.EntityPersister) *future.Future[any] {
	id, err := p.GetIdentifier(entity)
	if err != nil {
		return future.Failed[any](err)
	}
	if s, ok := id.(string); ok && s != "" {
		return future.Completed(id)
	}
	if id != nil && !reflect.ValueOf(id).IsZero() {
		return future.Completed(id)
	}
	return future.Completed[any](uuid.NewString())
}

// PostInsert marks identifier generation as a side effect of the insert
// statement. Generate is never consulted for a value; it resolves to nil so
// the insert path can branch on the persister's strategy alone.
type PostInsert struct{}

// Generate resolves to nil; the storage layer produces the identifier.
func (PostInsert) Generate(ctx context.Context, entity any, p persister.EntityPersister) *future.Future[any] {
	return future.Completed[any](nil)
}

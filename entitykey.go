/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package reactivestore

import "fmt"

// EntityKey is the immutable identity tuple addressing one logical row:
// entity name plus primary-key value. Keys compare and hash by value, so
// identifiers must be comparable scalars.
type EntityKey struct {
	EntityName string
	ID         any
}

// NewEntityKey builds the identity tuple for an entity name and identifier.
func NewEntityKey(entityName string, id any) EntityKey {
	return EntityKey{EntityName: entityName, ID: id}
}

// String renders the key for diagnostics.
func (k EntityKey) String() string {
	return fmt.Sprintf("%s#%v", k.EntityName, k.ID)
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package reactivestore

import "sync"

// PersistenceContext is the transient identity map owned by one stateless
// session: entity key to representation, plus the load-depth counter that
// tracks nested materializing loads. It lives for the duration of one
// top-level operation and is cleared afterwards.
//
// The context is owned exclusively by its session and is mutated only by
// the lifecycle orchestrator and the lazy-reference resolver. The mutex
// guards against continuations running on different goroutines, not against
// concurrent use of the session, which remains unsupported.
type PersistenceContext struct {
	mu        sync.Mutex
	entries   map[EntityKey]*Representation
	loadDepth int
}

// newPersistenceContext creates an empty context.
func newPersistenceContext() *PersistenceContext {
	return &PersistenceContext{
		entries: make(map[EntityKey]*Representation),
	}
}

// Get returns the representation registered for the key, or nil.
func (pc *PersistenceContext) Get(key EntityKey) *Representation {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.entries[key]
}

// Proxy returns the representation for the key only when it is a proxy
// shape, or nil.
func (pc *PersistenceContext) Proxy(key EntityKey) *Representation {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if rep, ok := pc.entries[key]; ok && rep.IsProxy() {
		return rep
	}
	return nil
}

// Add registers a representation under its key. A second registration for
// the same key replaces the first; at most one representation is ever held
// per key.
func (pc *PersistenceContext) Add(rep *Representation) {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.entries[rep.Key] = rep
}

// NarrowProxy refines the proxy registered for the key to the concrete
// entity name, replacing the registered entry, and returns the result.
// Returns nil when no proxy is registered for the key.
func (pc *PersistenceContext) NarrowProxy(key EntityKey, concrete string) *Representation {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	rep, ok := pc.entries[key]
	if !ok || !rep.IsProxy() {
		return nil
	}
	narrowed := rep.Narrow(concrete)
	pc.entries[key] = narrowed
	return narrowed
}

// BeforeLoad marks the start of a materializing load.
func (pc *PersistenceContext) BeforeLoad() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.loadDepth++
}

// AfterLoad marks the completion of a materializing load. It must run on
// both the success and failure branch of the load it guards.
func (pc *PersistenceContext) AfterLoad() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	if pc.loadDepth > 0 {
		pc.loadDepth--
	}
}

// LoadInProgress reports whether a nested load is still outstanding. The
// load-depth counter is the single source of truth for this.
func (pc *PersistenceContext) LoadInProgress() bool {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return pc.loadDepth > 0
}

// Clear removes all entries. The load-depth counter is left untouched so a
// clear issued by an enclosing operation cannot corrupt an in-flight load.
func (pc *PersistenceContext) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	pc.entries = make(map[EntityKey]*Representation)
}

// Size returns the number of registered representations.
func (pc *PersistenceContext) Size() int {
	pc.mu.Lock()
	defer pc.mu.Unlock()
	return len(pc.entries)
}

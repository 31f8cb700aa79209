/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package reactivestore

import (
	"context"

	"github.com/suparena/reactivestore/errors"
	"github.com/suparena/reactivestore/future"
)

// InternalLoad resolves a lazy reference to an entity representation. It is
// invoked during association traversal and as the fallback path of Get.
//
// The decision is ordered, first match wins:
//
//  1. a materialized representation already registered for the key is
//     returned as-is, preserving reference identity within one
//     result-processing pass
//  2. an eager request skips every proxy path and materializes
//  3. with enhancement permitted and supported, a proxy factory yields an
//     existing proxy narrowed to the concrete type, a fresh factory proxy
//     when subclasses make the concrete type ambiguous, or an enhanced
//     proxy otherwise; enhancement without a factory covers only types
//     without subclasses
//  4. without enhancement, classic proxies are narrowed or synthesized
//  5. everything else materializes
//
// Materialization brackets the load with the context's load-depth counter
// so the nested Get cannot clear the context mid-pass.
func (s *StatelessSession) InternalLoad(ctx context.Context, entityName string, id any, eager, nullable bool) *future.Future[*Representation] {
	if err := s.checkOpen("internal load"); err != nil {
		return future.Failed[*Representation](err)
	}
	p, err := s.factory.registry.ByName(entityName)
	if err != nil {
		return future.Failed[*Representation](err)
	}
	key := NewEntityKey(p.EntityName(), id)

	// An already-materialized representation always wins over synthesizing
	// a new one. This covers result-set processing with eager joined
	// fetches where the row was materialized earlier in the same pass.
	// Registered proxies flow through the branches below so they can be
	// narrowed.
	if rep := s.pc.Get(key); rep != nil && rep.Kind == KindMaterialized {
		return future.Completed(rep)
	}

	if !eager {
		if s.factory.enhancedProxies && p.EnhancedForLazyLoading() {
			if p.HasProxyFactory() {
				if existing := s.pc.Proxy(key); existing != nil {
					return future.Completed(s.pc.NarrowProxy(key, p.EntityName()))
				}
				if p.HasSubclasses() {
					// Only a factory proxy can honor laziness when the
					// concrete subtype is still unknown.
					rep := NewFactoryProxy(key, p.ProxyFactory().CreateProxy(entityName, id), entityName)
					s.pc.Add(rep)
					return future.Completed(rep)
				}
				return future.Completed(s.enhancedProxy(key, p.CreateEnhancedProxy(id), entityName))
			}
			if !p.HasSubclasses() {
				return future.Completed(s.enhancedProxy(key, p.CreateEnhancedProxy(id), entityName))
			}
			// Subclasses without a proxy factory: enhancement alone cannot
			// represent an unresolved subtype, so the row is loaded below.
		} else if p.HasProxy() {
			if existing := s.pc.Proxy(key); existing != nil {
				return future.Completed(s.pc.NarrowProxy(key, p.EntityName()))
			}
			rep := NewFactoryProxy(key, p.CreateProxy(id), entityName)
			s.pc.Add(rep)
			return future.Completed(rep)
		}
	}

	return s.materialize(ctx, key, entityName, id, nullable)
}

// enhancedProxy returns the enhanced proxy registered for the key, or
// registers the freshly synthesized one. Reusing the registered stand-in
// keeps resolution idempotent within one pass.
func (s *StatelessSession) enhancedProxy(key EntityKey, proxy any, declared string) *Representation {
	if existing := s.pc.Proxy(key); existing != nil {
		return existing
	}
	rep := NewEnhancedProxy(key, proxy, declared)
	s.pc.Add(rep)
	return rep
}

func (s *StatelessSession) materialize(ctx context.Context, key EntityKey, entityName string, id any, nullable bool) *future.Future[*Representation] {
	// The depth counter is adjusted around the nested get so
	// the context survives until this pass is done.
	s.pc.BeforeLoad()
	return future.New(ctx, func(ctx context.Context) (*Representation, error) {
		defer s.pc.AfterLoad()

		entity, err := s.Get(ctx, entityName, id).Get(ctx)
		if err != nil {
			return nil, err
		}
		if entity == nil {
			if nullable {
				return nil, nil
			}
			return nil, errors.NewEntityNotFoundError(key.EntityName, id)
		}
		rep := NewMaterialized(key, entity)
		s.pc.Add(rep)
		return rep, nil
	})
}

/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package reactivestore

import (
	"context"
	"reflect"

	"github.com/suparena/reactivestore/errors"
	"github.com/suparena/reactivestore/future"
	"github.com/suparena/reactivestore/query"
)

// CreateQuery compiles the query text through the plan collaborator and
// wraps it with its parameter metadata. A compilation failure marks the
// session rollback-only.
func (s *StatelessSession) CreateQuery(text string) (*query.Query, error) {
	if err := s.checkOpen("create query"); err != nil {
		return nil, err
	}
	plan, err := s.factory.plan(text, false)
	if err != nil {
		s.markRollbackOnly()
		return nil, errors.NewQueryCompilationError(text, err)
	}
	q := query.NewQuery(text, plan)
	q.SetComment(text)
	return q, nil
}

// CreateQueryTyped additionally validates the compiled result shape against
// the requested result type.
func (s *StatelessSession) CreateQueryTyped(text string, resultType reflect.Type) (*query.Query, error) {
	q, err := s.CreateQuery(text)
	if err != nil {
		return nil, err
	}
	if err := q.CheckResultType(resultType); err != nil {
		s.markRollbackOnly()
		return nil, errors.NewQueryCompilationError(text, err)
	}
	q.SetResultType(resultType)
	return q, nil
}

var tupleType = reflect.TypeOf(query.Tuple{})

// CreateNativeQuery wraps raw SQL into an executable query.
func (s *StatelessSession) CreateNativeQuery(sql string) (*query.Query, error) {
	return s.createNativeQuery(query.NativeSpec{SQL: sql})
}

// CreateNativeQueryTyped wraps raw SQL with a concrete result type. The
// generic tuple type installs a tuple-transforming result mapper; any other
// type registers a single-entity result mapping under a fixed alias.
func (s *StatelessSession) CreateNativeQueryTyped(sql string, resultType reflect.Type) (*query.Query, error) {
	spec := query.NativeSpec{SQL: sql}
	if resultType == tupleType {
		spec.TupleTransform = true
	} else {
		spec.ResultType = resultType
		spec.EntityAlias = query.EntityAlias
	}
	q, err := s.createNativeQuery(spec)
	if err != nil {
		return nil, err
	}
	q.SetResultType(resultType)
	return q, nil
}

// CreateNativeQueryMapped wraps raw SQL with a named result-set mapping.
func (s *StatelessSession) CreateNativeQueryMapped(sql, resultSetMapping string) (*query.Query, error) {
	return s.createNativeQuery(query.NativeSpec{SQL: sql, ResultSetMapping: resultSetMapping})
}

func (s *StatelessSession) createNativeQuery(spec query.NativeSpec) (*query.Query, error) {
	if err := s.checkOpen("create native query"); err != nil {
		return nil, err
	}
	plan, err := s.factory.nativePlan(spec)
	if err != nil {
		s.markRollbackOnly()
		return nil, errors.NewQueryCompilationError(spec.SQL, err)
	}
	q := query.NewNativeQuery(spec, plan)
	q.SetComment("dynamic native SQL query")
	return q, nil
}

// List executes the query and resolves to its result rows. The transient
// persistence context is cleared and post-operation bookkeeping runs on
// completion, success or failure, before the outcome reaches the caller.
func (s *StatelessSession) List(ctx context.Context, q *query.Query) *future.Future[[]any] {
	if err := s.checkOpen("query list"); err != nil {
		return future.Failed[[]any](err)
	}
	if err := q.ValidateParameters(); err != nil {
		s.markRollbackOnly()
		return future.Failed[[]any](errors.NewQueryCompilationError(q.Text(), err))
	}

	return future.New(ctx, func(ctx context.Context) (_ []any, err error) {
		defer func() {
			s.pc.Clear()
			s.afterOperation(err == nil)
		}()
		list, execErr := q.Plan().Exec.List(ctx, q.Parameters()).Get(ctx)
		if execErr != nil {
			err = wrapStorage("query list", execErr)
			return nil, err
		}
		return list, nil
	})
}

// ExecuteUpdate executes a bulk statement and resolves to the affected-row
// count, with the same completion discipline as List.
func (s *StatelessSession) ExecuteUpdate(ctx context.Context, q *query.Query) *future.Future[int] {
	if err := s.checkWritable("execute update"); err != nil {
		return future.Failed[int](err)
	}
	if err := q.ValidateParameters(); err != nil {
		s.markRollbackOnly()
		return future.Failed[int](errors.NewQueryCompilationError(q.Text(), err))
	}

	return future.New(ctx, func(ctx context.Context) (_ int, err error) {
		defer func() {
			s.pc.Clear()
			s.afterOperation(err == nil)
		}()
		count, execErr := q.Plan().Exec.ExecuteUpdate(ctx, q.Parameters()).Get(ctx)
		if execErr != nil {
			err = wrapStorage("execute update", execErr)
			return 0, err
		}
		return count, nil
	})
}

// AddBulkCleanup runs a bulk operation's post-completion cleanup action
// synchronously and immediately. A stateless session has no transactional
// boundary to defer it to.
func (s *StatelessSession) AddBulkCleanup(action func()) {
	if action != nil {
		action()
	}
}

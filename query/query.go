/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package query

import (
	"fmt"
	"reflect"
)

// EntityAlias is the fixed alias under which a single-entity result mapping
// is registered on a native query.
const EntityAlias = "alias1"

// Tuple is the generic row shape produced by native queries that request
// tuple results instead of a mapped entity.
type Tuple struct {
	Aliases []string
	Values  []any
}

// Get returns the value for a column alias, or nil when absent.
func (t Tuple) Get(alias string) any {
	for i, a := range t.Aliases {
		if a == alias && i < len(t.Values) {
			return t.Values[i]
		}
	}
	return nil
}

// NativeSpec specifies a raw SQL query and how its results are shaped.
type NativeSpec struct {
	// SQL is the raw statement text.
	SQL string
	// ResultType requests materialization into this type, when set.
	ResultType reflect.Type
	// ResultSetMapping names a pre-registered result mapping, when set.
	ResultSetMapping string
	// TupleTransform installs the generic tuple transformer.
	TupleTransform bool
	// EntityAlias is the alias for a single-entity mapping.
	EntityAlias string
}

// Query wraps a compiled plan with bound parameters. It is created through
// the session and executed through the session's pipeline, never directly.
type Query struct {
	text       string
	plan       *Plan
	params     map[string]any
	comment    string
	resultType reflect.Type
	native     *NativeSpec
}

// NewQuery wraps a compiled plan.
func NewQuery(text string, plan *Plan) *Query {
	return &Query{
		text:   text,
		plan:   plan,
		params: make(map[string]any),
	}
}

// NewNativeQuery wraps a native plan together with its specification.
func NewNativeQuery(spec NativeSpec, plan *Plan) *Query {
	return &Query{
		text:   spec.SQL,
		plan:   plan,
		params: make(map[string]any),
		native: &spec,
	}
}

// Text returns the source query text.
func (q *Query) Text() string { return q.text }

// Plan returns the compiled plan backing this query.
func (q *Query) Plan() *Plan { return q.plan }

// Set binds a named parameter value.
func (q *Query) Set(name string, value any) *Query {
	q.params[name] = value
	return q
}

// Parameters returns the bound parameters.
func (q *Query) Parameters() map[string]any { return q.params }

// SetComment attaches a comment carried alongside the statement.
func (q *Query) SetComment(comment string) *Query {
	q.comment = comment
	return q
}

// Comment returns the attached comment.
func (q *Query) Comment() string { return q.comment }

// SetResultType records the requested result type.
func (q *Query) SetResultType(t reflect.Type) { q.resultType = t }

// ResultType returns the requested result type, or nil.
func (q *Query) ResultType() reflect.Type { return q.resultType }

// Native returns the native specification, or nil for dialect queries.
func (q *Query) Native() *NativeSpec { return q.native }

// ValidateParameters checks bound parameters against the plan metadata.
func (q *Query) ValidateParameters() error {
	return q.plan.Parameters.Validate(q.params)
}

// CheckResultType validates the compiled result shape against a requested
// result type. Plans that do not declare their returned entity pass.
func (q *Query) CheckResultType(requested reflect.Type) error {
	if q.plan.ReturnedEntity == "" || requested == nil {
		return nil
	}
	name := requested.Name()
	if requested.Kind() == reflect.Ptr {
		name = requested.Elem().Name()
	}
	if q.plan.ReturnedEntity != name {
		return fmt.Errorf("query returns %q but result type %s was requested", q.plan.ReturnedEntity, requested)
	}
	return nil
}

/*
Package query defines the compiled-query surface of the stateless session:
the plan compiler contract, a memoizing plan cache, and the Query wrapper
carrying parameter bindings.

Plan compilation itself is an external collaborator. The session obtains
plans through a PlanCache, binds parameters on a Query, and executes the
plan through its own pipeline so that post-operation bookkeeping always
runs, whatever the outcome.

Native queries are described by a NativeSpec: a tuple-transforming result
mapper when the generic Tuple type is requested, a single-entity mapping
under the fixed alias "alias1" for concrete types, or a named result-set
mapping.
*/
package query

/*
Package persister defines the row-level storage contract consumed by the
stateless session core.

The main interface is EntityPersister, which pairs mapping metadata with
asynchronous storage operations for one entity type:

	type EntityPersister interface {
	    Load(ctx context.Context, id any, instance any, lock LockOptions) *future.Future[any]
	    Insert(ctx context.Context, state []any, entity any) *future.Future[any]
	    InsertWithID(ctx context.Context, id any, state []any, entity any) *future.Future[struct{}]
	    Update(ctx context.Context, id any, state []any, previousVersion any, entity any) *future.Future[struct{}]
	    Delete(ctx context.Context, id any, version any, entity any) *future.Future[struct{}]
	    // ... mapping metadata and property access
	}

Base provides the metadata half, driven by a declarative Mapping and
reflection over the mapped struct type. Concrete persisters embed Base and
supply only the storage operations.

Implementations:
  - ddb: DynamoDB implementation using conditional expressions for
    optimistic version checks
  - mock: in-memory implementation for testing

SQL/DML generation and execution strategy are the implementation's own
concern; the session core only composes the futures these operations return.
*/
package persister

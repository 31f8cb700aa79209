/*
Package ddb provides a DynamoDB-backed EntityPersister.

Rows follow a single-table layout: the partition key is
"<EntityName>#<id>" and every item carries an EntityType discriminator
attribute alongside the marshaled entity attributes.

Optimistic concurrency maps onto conditional expressions: updates and
deletes of versioned entities are conditioned on the stored version
attribute still matching the previous version, and a failed condition
surfaces as an OptimisticLockError. Post-insert identifier generation mints
a UUID at the storage layer, since DynamoDB has no server-side generation.

Lock modes other than NONE request strongly consistent reads; DynamoDB has
no row locks to acquire.
*/
package ddb

/*
Package cache defines the second-level cache access contract consumed by the
stateless session core.

Only key generation and eviction are part of the contract; cache storage
itself is an external concern. NoopAccess is a valid strategy when caching
is disabled, so callers can issue evictions unconditionally.
*/
package cache

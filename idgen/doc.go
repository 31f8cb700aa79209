/*
Package idgen provides identifier generation strategies for entity inserts.

Strategies:
  - Assigned: the application sets the identifier before insert
  - UUID: random UUID strings, honoring any pre-existing identifier
  - PostInsert: the storage layer produces the identifier as a side effect
    of the insert statement

All strategies implement persister.IdentifierGenerator and resolve through
futures so the session can compose them with storage calls.
*/
package idgen

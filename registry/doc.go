/*
Package registry resolves entity persisters by name or runtime type and
loads declarative entity mappings from YAML files.

The Registry is the session factory's metamodel: every entity type the
session can touch is registered here once, and lookups never mutate it.

Mapping files describe how struct fields map onto identifier, version and
property state:

	entities:
	  Order:
	    id: ID
	    version: Version
	    properties: [Total, Status, Version]
	    postInsertId: true

LoadMappings parses and validates the declaration; building an actual
persister from a mapping additionally checks the fields against the Go type.
*/
package registry

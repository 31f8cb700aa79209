package testmodels

import "github.com/go-openapi/strfmt"

// Order is the versioned test entity used by persister tests.
type Order struct {

	// Unique identifier for the order.
	// Required: true
	ID string `json:"Id"`

	// Total amount of the order.
	Total float64 `json:"Total"`

	// Current status of the order.
	Status string `json:"Status"`

	// Optimistic-concurrency version token.
	Version int64 `json:"Version"`

	// Timestamp when the order was created.
	// Format: date-time
	CreatedAt *strfmt.DateTime `json:"CreatedAt"`
}

// OrderMappingProperties is the property state order used in mappings.
var OrderMappingProperties = []string{"Total", "Status", "Version", "CreatedAt"}

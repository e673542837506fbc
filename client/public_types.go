package client

import "github.com/domdoescode/blue-billywig/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	SearchParams = types.SearchParams

	// Domain entities
	User         = types.User
	XMLNode      = types.XMLNode
	SearchResult = types.SearchResult
)

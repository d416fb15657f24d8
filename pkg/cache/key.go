package cache

import (
	"fmt"
	"net/url"
	"sort"
	"strings"
)

// Key represents a unique identifier for a cached PeeringDB response.
type Key struct {
	// Endpoint is the API endpoint path (e.g., "/api/net").
	Endpoint string

	// QueryParams are the query parameters (e.g., {"skip": "250"}).
	// Pagination cursors live here, so every page caches separately.
	QueryParams url.Values
}

// String generates a deterministic cache key string.
// Format: pdb:endpoint:query1=val1:query2=val2
//
// Example:
//
//	pdb:api/net:depth=1:skip=250
func (k Key) String() string {
	parts := []string{"pdb"}

	endpoint := strings.Trim(k.Endpoint, "/")
	if endpoint != "" {
		parts = append(parts, endpoint)
	}

	// Query params sorted for determinism
	if len(k.QueryParams) > 0 {
		queryKeys := make([]string, 0, len(k.QueryParams))
		for key := range k.QueryParams {
			queryKeys = append(queryKeys, key)
		}
		sort.Strings(queryKeys)

		for _, key := range queryKeys {
			parts = append(parts, fmt.Sprintf("%s=%s", key, k.QueryParams.Get(key)))
		}
	}

	return strings.Join(parts, ":")
}

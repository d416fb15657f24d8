// Package cache provides a redis-backed cache for PeeringDB API responses.
//
// PeeringDB responses carry ETag and Last-Modified headers; cached entries are
// revalidated with conditional requests (If-None-Match / If-Modified-Since) so
// repeated fetch runs avoid re-downloading unchanged pages. Entry lifetime
// follows the Expires header when present, falling back to DefaultTTL.
//
// The cache is shared across processes via redis, matching the throttle state
// in pkg/ratelimit: several fetch runs on the same host see one cache and one
// backoff horizon.
package cache

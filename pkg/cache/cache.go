// Package cache provides pluggable storage backends for catalog API
// responses.
//
// # Overview
//
// Search and list responses from a catalog change slowly and are expensive to
// rebuild (every page costs a throttled HTTP round trip), so the catalog
// client can store them through a [Cache]. Four backends exist:
//
//   - [FileCache]: directory of JSON entries for CLI usage
//   - [NullCache]: disables caching
//   - [RedisCache]: shared cache for server deployments
//   - [MongoCache]: document-store cache where Redis is not available
//
// Distribution downloads are never cached; only metadata responses go
// through this package.
//
// # Keys
//
// A [Keyer] builds cache keys from request parameters. Keys embed a SHA-256
// hash of the parameters, so arbitrary query text is safe to key on. Use
// [NewScopedKeyer] to prefix keys when several deployments share one backend.
package cache

import (
	"context"
	"time"
)

// TTLs for the cached response kinds. Catalog metadata moves slowly;
// search results are kept shorter than direct identifier lookups because
// relevance ordering changes as publishers add datasets.
const (
	// TTLSearch is the time-to-live for keyword search responses.
	TTLSearch = 6 * time.Hour

	// TTLDataset is the time-to-live for dataset-by-identifier responses.
	TTLDataset = 24 * time.Hour
)

// Cache is the interface implemented by all cache backends.
//
// Get reports a miss with (nil, false, nil); an error return means the
// backend itself failed, not that the key was absent. A ttl of 0 passed to
// Set means the entry never expires.
type Cache interface {
	// Get retrieves the value stored under key.
	Get(ctx context.Context, key string) (data []byte, hit bool, err error)

	// Set stores data under key with the given time-to-live.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes the value stored under key. Deleting an absent key is
	// not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the backend.
	Close() error
}

// SearchKeyOpts are the request parameters that distinguish one search
// response from another. Two searches with equal options and equal query
// text share a cache entry.
type SearchKeyOpts struct {
	Publisher string `json:"publisher,omitempty"`
	MaxPages  int    `json:"max_pages,omitempty"`
	StartPage int    `json:"start_page,omitempty"`
}

// Keyer builds cache keys for the catalog client's cacheable requests.
type Keyer interface {
	// SearchKey generates a key for a keyword search response.
	SearchKey(query string, opts SearchKeyOpts) string

	// DatasetKey generates a key for a dataset-by-identifier response.
	DatasetKey(id string) string

	// HTTPKey generates a key for any other HTTP response, namespaced to
	// avoid collisions between endpoints.
	HTTPKey(namespace, key string) string
}

// DefaultKeyer is the standard Keyer implementation.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// SearchKey generates a key for a keyword search response.
// Query text and options are hashed, so any query string is safe.
func (k *DefaultKeyer) SearchKey(query string, opts SearchKeyOpts) string {
	return hashKey("search", query, opts)
}

// DatasetKey generates a key for a dataset-by-identifier response.
func (k *DefaultKeyer) DatasetKey(id string) string {
	return hashKey("dataset", id)
}

// HTTPKey generates a namespaced key for a generic HTTP response.
func (k *DefaultKeyer) HTTPKey(namespace, key string) string {
	return "http:" + namespace + ":" + key
}

// Ensure DefaultKeyer implements Keyer.
var _ Keyer = (*DefaultKeyer)(nil)

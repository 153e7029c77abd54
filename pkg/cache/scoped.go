package cache

// ScopedKeyer wraps a Keyer with a fixed prefix so several deployments can
// share one backend without key collisions — a staging and a production
// crawler pointed at the same Redis, or one client instance per catalog.
//
// Example usage:
//
//	// Keys for the flood-monitoring catalog
//	floodKeyer := cache.NewScopedKeyer(nil, "flood:")
//
//	// Keys for the shared default deployment
//	keyer := cache.NewDefaultKeyer()
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer that prepends prefix to every key built by
// inner. A nil inner falls back to the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// SearchKey generates a prefixed key for a keyword search response.
func (k *ScopedKeyer) SearchKey(query string, opts SearchKeyOpts) string {
	return k.prefix + k.inner.SearchKey(query, opts)
}

// DatasetKey generates a prefixed key for a dataset-by-identifier response.
func (k *ScopedKeyer) DatasetKey(id string) string {
	return k.prefix + k.inner.DatasetKey(id)
}

// HTTPKey generates a prefixed, namespaced key for a generic HTTP response.
func (k *ScopedKeyer) HTTPKey(namespace, key string) string {
	return k.prefix + k.inner.HTTPKey(namespace, key)
}

// Ensure ScopedKeyer implements Keyer.
var _ Keyer = (*ScopedKeyer)(nil)

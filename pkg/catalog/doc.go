// Package catalog implements the client for list-style open-data catalog
// APIs.
//
// # Overview
//
// The catalogs this client talks to expose one paginated list endpoint:
// query parameters _page and _pageSize select a slice of the dataset
// collection, and responses arrive in a JSON envelope of the shape
//
//	{"result": {"items": [...], "next": "https://...?_page=1"}}
//
// where the next pointer disappears on the last page. Items are dataset
// records contributed by many publishers, so their field naming is not
// uniform; decoding tolerates the common spellings (see [DatasetRecord]).
//
// # Usage
//
//	client := catalog.NewClient(catalog.Options{BaseURL: baseURL})
//	records, err := client.Search(ctx, "bathing water", catalog.SearchOptions{})
//
// Search and identifier lookups can be cached through a cache.Cache backend;
// distribution downloads never pass through this package.
package catalog

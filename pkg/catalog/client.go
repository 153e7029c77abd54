package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/opendata-tools/govcat/pkg/cache"
	goverrors "github.com/opendata-tools/govcat/pkg/errors"
	"github.com/opendata-tools/govcat/pkg/httputil"
)

// DefaultMaxPages is the page-budget ceiling applied when a search or lookup
// does not set its own. Real result sets exhaust their next pointers long
// before this.
const DefaultMaxPages = 40

// Options configure a [Client]. Only BaseURL is required; nil dependencies
// select safe defaults (no caching, default transport, default logger).
type Options struct {
	// BaseURL is the catalog's list endpoint.
	BaseURL string

	// HTTP overrides the transport client.
	HTTP *httputil.Client

	// Cache stores search and lookup responses. Nil disables caching.
	Cache cache.Cache

	// Keyer builds cache keys. Nil selects the default keyer.
	Keyer cache.Keyer

	// Logger receives progress logging. Nil selects log.Default().
	Logger *log.Logger
}

// Client queries one catalog's list endpoint. A Client performs no
// concurrent requests of its own; every call blocks until the response,
// timeout, or context cancellation.
type Client struct {
	baseURL string
	http    *httputil.Client
	cache   cache.Cache
	keyer   cache.Keyer
	logger  *log.Logger
}

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	c := &Client{
		baseURL: strings.TrimRight(opts.BaseURL, "/"),
		http:    opts.HTTP,
		cache:   opts.Cache,
		keyer:   opts.Keyer,
		logger:  opts.Logger,
	}
	if c.http == nil {
		c.http = httputil.NewClient(httputil.Options{})
	}
	if c.cache == nil {
		c.cache = cache.NewNullCache()
	}
	if c.keyer == nil {
		c.keyer = cache.NewDefaultKeyer()
	}
	if c.logger == nil {
		c.logger = log.Default()
	}
	return c
}

// BaseURL returns the configured list endpoint.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases the cache backend.
func (c *Client) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// SearchOptions tune a keyword search.
type SearchOptions struct {
	// Publisher restricts results to one publisher identifier.
	Publisher string

	// MaxPages caps how many pages the paginator may walk. Zero selects
	// DefaultMaxPages.
	MaxPages int

	// StartPage is the zero-based page to start from.
	StartPage int

	// Refresh bypasses the cache and stores the fresh response.
	Refresh bool
}

// Search runs a keyword search against the list endpoint and decodes every
// matching item into a DatasetRecord. Responses are cached under the query
// and options when a cache backend is configured.
func (c *Client) Search(ctx context.Context, query string, opts SearchOptions) ([]DatasetRecord, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, goverrors.New(goverrors.ErrCodeInvalidQuery, "search query cannot be empty")
	}
	if opts.MaxPages == 0 {
		opts.MaxPages = DefaultMaxPages
	}

	params := url.Values{"text": {query}}
	if opts.Publisher != "" {
		params.Set("publisher", opts.Publisher)
	}

	key := c.keyer.SearchKey(query, cache.SearchKeyOpts{
		Publisher: opts.Publisher,
		MaxPages:  opts.MaxPages,
		StartPage: opts.StartPage,
	})
	return c.cachedList(ctx, params, key, cache.TTLSearch, opts.MaxPages, opts.StartPage, opts.Refresh)
}

// DatasetByID looks a dataset up by its identifier. Catalogs legitimately
// answer with several records for one identifier (one per edition or
// publisher variant), so the result is a slice; callers needing exactly one
// record enforce that themselves.
func (c *Client) DatasetByID(ctx context.Context, id string) ([]DatasetRecord, error) {
	if err := goverrors.ValidateDatasetID(id); err != nil {
		return nil, err
	}
	params := url.Values{"identifier": {id}}
	return c.cachedList(ctx, params, c.keyer.DatasetKey(id), cache.TTLDataset, DefaultMaxPages, 0, false)
}

// cachedList serves a list query from cache when possible, otherwise drives
// the paginator and stores the decoded records.
func (c *Client) cachedList(ctx context.Context, params url.Values, key string, ttl time.Duration, maxPages, startPage int, refresh bool) ([]DatasetRecord, error) {
	if !refresh {
		if data, hit, err := c.cache.Get(ctx, key); err == nil && hit {
			var records []DatasetRecord
			if err := json.Unmarshal(data, &records); err == nil {
				c.logger.Debug("catalog cache hit", "key", key, "records", len(records))
				return records, nil
			}
		}
	}

	env, err := c.FetchPages(ctx, c.listURL(params), maxPages, startPage)
	if err != nil {
		return nil, err
	}
	records := c.decodeRecords(env.Result.Items)

	if data, err := json.Marshal(records); err == nil {
		_ = c.cache.Set(ctx, key, data, ttl)
	}
	return records, nil
}

// listURL appends params to the base list endpoint.
func (c *Client) listURL(params url.Values) string {
	if len(params) == 0 {
		return c.baseURL
	}
	return fmt.Sprintf("%s?%s", c.baseURL, params.Encode())
}

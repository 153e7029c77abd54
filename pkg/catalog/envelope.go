package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

// PageSize is the fixed page size requested from list endpoints. The
// paginator always rewrites _pageSize to this value; page parameters
// embedded in a caller-supplied URL are overridden, never merged.
const PageSize = 50

// Envelope is the JSON wrapper around one list-endpoint response.
type Envelope struct {
	Result Page `json:"result"`
}

// Page is the payload of one list response: the item slice for the requested
// page and a pointer to the next page, absent on the last one.
type Page struct {
	About        string            `json:"_about,omitempty"`
	Page         int               `json:"page"`
	ItemsPerPage int               `json:"itemsPerPage,omitempty"`
	Next         string            `json:"next,omitempty"`
	Items        []json.RawMessage `json:"items"`
}

// HasNext reports whether the API advertised a further page.
func (p *Page) HasNext() bool { return p.Next != "" }

// FetchPages walks the list endpoint at baseURL page by page, starting at
// startPage, and returns the last envelope received with its items replaced
// by the accumulated items of every page visited.
//
// Iteration stops as soon as a response carries no next pointer; maxPages is
// a safety ceiling for a misbehaving API, not an expected iteration count.
// Each page's items are prepended to the running accumulation, so the
// combined list is in reverse-page order. Consumers treat the set as
// unordered, and keeping the accumulation cheap matters more than cosmetic
// ordering.
func (c *Client) FetchPages(ctx context.Context, baseURL string, maxPages, startPage int) (*Envelope, error) {
	if maxPages < 1 {
		return nil, fmt.Errorf("page budget must be positive, got %d", maxPages)
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse list url: %w", err)
	}

	var (
		env   Envelope
		items []json.RawMessage
	)
	page := startPage
	for remaining := maxPages; remaining > 0; remaining-- {
		q := u.Query()
		q.Set("_pageSize", strconv.Itoa(PageSize))
		q.Set("_page", strconv.Itoa(page))
		u.RawQuery = q.Encode()

		env = Envelope{}
		if err := c.http.GetJSON(ctx, u.String(), &env); err != nil {
			return nil, err
		}
		c.logger.Debug("fetched catalog page", "page", page, "items", len(env.Result.Items), "more", env.Result.HasNext())

		items = append(append([]json.RawMessage{}, env.Result.Items...), items...)
		if !env.Result.HasNext() {
			break
		}
		page++
	}

	env.Result.Items = items
	return &env, nil
}

// decodeRecords converts raw envelope items into dataset records. Items that
// fail to decode are logged and skipped rather than failing the whole page
// set; one malformed publisher record should not hide the rest.
func (c *Client) decodeRecords(items []json.RawMessage) []DatasetRecord {
	records := make([]DatasetRecord, 0, len(items))
	for _, raw := range items {
		rec, err := decodeRecord(raw)
		if err != nil {
			c.logger.Warn("skipping malformed catalog item", "err", err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

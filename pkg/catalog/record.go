package catalog

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/opendata-tools/govcat/pkg/formats"
)

// Distribution is one downloadable rendering of a dataset: a format tag, a
// human-readable name (publishers often encode a year or variant in it), and
// the download URL.
//
// The format tag is derived purely from the metadata the catalog supplied
// (format label, then URL extension); downloaded content is never inspected.
type Distribution struct {
	Name   string         `json:"name"`
	URL    string         `json:"url"`
	Format formats.Format `json:"format"`
}

// DatasetRecord is one catalog entry. Records are constructed by the
// paginator from raw API items and are not mutated afterwards.
//
// Metadata collects the item's remaining scalar fields verbatim, since
// publishers attach arbitrary extra keys to their records.
type DatasetRecord struct {
	ID            string            `json:"id"`
	Title         string            `json:"title"`
	Description   string            `json:"description"`
	Publisher     string            `json:"publisher"`
	Distributions []Distribution    `json:"distributions"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Field spellings observed across publishers, in lookup order.
var (
	idKeys        = []string{"identifier", "notation", "id", "_about"}
	titleKeys     = []string{"title", "label", "name"}
	descKeys      = []string{"description", "comment", "abstract"}
	publisherKeys = []string{"publisher", "creator", "organisation"}
	distKeys      = []string{"distribution", "distributions", "resources"}
	distNameKeys  = []string{"name", "title", "label"}
	distURLKeys   = []string{"url", "downloadURL", "accessURL", "accessUrl"}
	distFmtKeys   = []string{"format", "mediaType", "mimetype"}
)

// decodeRecord converts one raw API item into a DatasetRecord.
func decodeRecord(raw json.RawMessage) (DatasetRecord, error) {
	var item map[string]any
	if err := json.Unmarshal(raw, &item); err != nil {
		return DatasetRecord{}, fmt.Errorf("decode item: %w", err)
	}

	rec := DatasetRecord{
		ID:          pickString(item, idKeys),
		Title:       pickString(item, titleKeys),
		Description: pickString(item, descKeys),
		Publisher:   pickString(item, publisherKeys),
	}
	if rec.ID == "" {
		return DatasetRecord{}, fmt.Errorf("item has no identifier")
	}

	for _, key := range distKeys {
		list, ok := item[key].([]any)
		if !ok {
			continue
		}
		for _, el := range list {
			if d, ok := decodeDistribution(el); ok {
				rec.Distributions = append(rec.Distributions, d)
			}
		}
		break
	}

	rec.Metadata = collectMetadata(item)
	return rec, nil
}

// decodeDistribution reads one distribution entry. Entries without a URL are
// dropped: there is nothing to fetch and nothing to report.
func decodeDistribution(el any) (Distribution, bool) {
	m, ok := el.(map[string]any)
	if !ok {
		return Distribution{}, false
	}
	d := Distribution{
		Name: pickString(m, distNameKeys),
		URL:  pickString(m, distURLKeys),
	}
	if d.URL == "" {
		return Distribution{}, false
	}
	if d.Name == "" {
		d.Name = d.URL
	}
	d.Format = formats.Derive(pickString(m, distFmtKeys), d.URL)
	return d, true
}

// pickString returns the first non-empty scalar value under any of keys.
// Linked-data catalogs sometimes wrap scalars as {"_value": "..."} or name
// resources as {"label": "..."}; both unwrap here.
func pickString(m map[string]any, keys []string) string {
	for _, key := range keys {
		switch v := m[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case map[string]any:
			for _, inner := range []string{"_value", "label", "name", "id"} {
				if s, ok := v[inner].(string); ok && s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// collectMetadata keeps the item's scalar fields that the typed record did
// not claim, with keys sorted out of map order for stable rendering.
func collectMetadata(item map[string]any) map[string]string {
	claimed := make(map[string]bool)
	for _, keys := range [][]string{idKeys, titleKeys, descKeys, publisherKeys, distKeys} {
		for _, k := range keys {
			claimed[k] = true
		}
	}

	meta := make(map[string]string)
	for k, v := range item {
		if claimed[k] {
			continue
		}
		switch v := v.(type) {
		case string:
			meta[k] = v
		case float64:
			meta[k] = trimFloat(v)
		case bool:
			meta[k] = fmt.Sprintf("%t", v)
		}
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// trimFloat renders JSON numbers without a trailing ".0" for integral values.
func trimFloat(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}

// MetadataKeys returns the record's metadata keys in sorted order.
func (r *DatasetRecord) MetadataKeys() []string {
	keys := make([]string, 0, len(r.Metadata))
	for k := range r.Metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

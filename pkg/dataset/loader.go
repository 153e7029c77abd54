// Package dataset loads the content behind a catalog record: it selects the
// parseable distributions, downloads each one, and assembles a uniform
// multi-entry result.
//
// Loading degrades rather than fails: a distribution whose download or parse
// goes wrong becomes a placeholder entry, and a dataset with nothing
// parseable at all yields a listing of what does exist. Only three
// conditions abort a load — an ambiguous reference, a missing record, and
// context cancellation.
package dataset

import (
	"bytes"
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/opendata-tools/govcat/pkg/catalog"
	"github.com/opendata-tools/govcat/pkg/charset"
	"github.com/opendata-tools/govcat/pkg/formats"
	"github.com/opendata-tools/govcat/pkg/httputil"
	"github.com/opendata-tools/govcat/pkg/tabular"
)

// Loader downloads and parses dataset distributions. The zero dependencies
// are all optional: a nil transport gets defaults, a nil priority list gets
// [formats.DefaultPriority], a nil logger gets log.Default().
//
// A Loader holds no per-load state; distribution downloads are never cached.
type Loader struct {
	http     *httputil.Client
	priority formats.Priority
	logger   *log.Logger
}

// NewLoader builds a Loader.
func NewLoader(client *httputil.Client, priority formats.Priority, logger *log.Logger) *Loader {
	if client == nil {
		client = httputil.NewClient(httputil.Options{})
	}
	if priority == nil {
		priority = formats.DefaultPriority()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		http:     client,
		priority: priority,
		logger:   logger,
	}
}

// Priority returns the loader's configured format priority list.
func (l *Loader) Priority() formats.Priority { return l.priority }

// LoadOptions tune one load call.
type LoadOptions struct {
	// Encoding forces a charset label for text formats, skipping detection.
	Encoding string

	// Priority overrides the loader's format priority list for this call.
	Priority formats.Priority
}

// LoadOne loads the single dataset behind records. It fails with
// [ErrNoDataset] for an empty set and with a [MultipleDatasetsError] when
// the reference is ambiguous; loading operates on exactly one dataset.
func (l *Loader) LoadOne(ctx context.Context, records []catalog.DatasetRecord, opts LoadOptions) (*FetchResult, error) {
	switch len(records) {
	case 0:
		return nil, ErrNoDataset
	case 1:
		return l.Load(ctx, records[0], opts)
	default:
		ids := make([]string, len(records))
		for i, rec := range records {
			ids[i] = rec.ID
		}
		return nil, &MultipleDatasetsError{IDs: ids}
	}
}

// Load fetches and parses rec's distributions in priority order.
//
// Every selected distribution contributes exactly one entry: a table when
// download and parse succeed, a placeholder otherwise. A failure on one
// distribution never aborts the rest. When no distribution is in an
// acceptable format, the result holds a single listing entry describing all
// original distributions so the caller can still discover what exists.
func (l *Loader) Load(ctx context.Context, rec catalog.DatasetRecord, opts LoadOptions) (*FetchResult, error) {
	priority := opts.Priority
	if priority == nil {
		priority = l.priority
	}

	selected := formats.Select(rec.Distributions, priority, func(d catalog.Distribution) formats.Format {
		return d.Format
	})

	result := &FetchResult{Dataset: rec}
	if len(selected) == 0 {
		l.logger.Info("no distribution in an acceptable format", "dataset", rec.ID, "priority", priority)
		result.Entries = []Entry{{
			Name:  ListingName,
			Table: listingTable(rec.Distributions),
		}}
		return result, nil
	}

	for _, dist := range selected {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		entry := Entry{Name: dist.Name, Format: dist.Format, URL: dist.URL}
		table, encoding, err := l.fetchTable(ctx, dist, opts.Encoding)
		if err != nil {
			l.logger.Warn("distribution degraded to placeholder",
				"dataset", rec.ID, "name", dist.Name, "format", dist.Format, "err", err)
			entry.Reason = err.Error()
		} else {
			entry.Table = table
			entry.Encoding = encoding
			l.logger.Info("parsed distribution",
				"dataset", rec.ID, "name", dist.Name, "format", dist.Format,
				"rows", table.NumRows(), "cols", table.NumCols())
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

// fetchTable downloads one distribution and parses it by its format tag.
// For text formats it also reports the charset label the bytes were decoded
// under, detected unless the caller forced one.
func (l *Loader) fetchTable(ctx context.Context, dist catalog.Distribution, encodingOverride string) (*tabular.Table, string, error) {
	body, err := l.http.Get(ctx, dist.URL)
	if err != nil {
		return nil, "", err
	}

	if dist.Format.IsText() {
		encoding := encodingOverride
		if encoding == "" {
			encoding = charset.DetectBytes(body, charset.DefaultFallback)
		}
		body = charset.Decode(body, encoding)

		var table *tabular.Table
		switch dist.Format {
		case formats.CSV:
			table, err = tabular.ParseCSV(bytes.NewReader(body))
		case formats.XML:
			table, err = tabular.ParseXML(body)
		default:
			err = fmt.Errorf("no parser for %s", dist.Format)
		}
		if err != nil {
			return nil, "", err
		}
		return table, encoding, nil
	}

	switch dist.Format {
	case formats.XLSX:
		table, err := tabular.ParseXLSX(body)
		if err != nil {
			return nil, "", err
		}
		return table, "", nil
	default:
		return nil, "", fmt.Errorf("no parser for %s", dist.Format)
	}
}

// listingTable renders every original distribution as one row, whatever its
// format.
func listingTable(dists []catalog.Distribution) *tabular.Table {
	t := &tabular.Table{Columns: []string{"name", "format", "url"}}
	for _, d := range dists {
		t.Rows = append(t.Rows, []string{d.Name, d.Format.String(), d.URL})
	}
	return t
}

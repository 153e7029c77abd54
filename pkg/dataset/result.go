package dataset

import (
	"github.com/opendata-tools/govcat/pkg/catalog"
	"github.com/opendata-tools/govcat/pkg/formats"
	"github.com/opendata-tools/govcat/pkg/tabular"
)

// ListingName is the entry name used for the synthesized listing table when
// none of a dataset's distributions is in an acceptable format.
const ListingName = "available formats"

// Entry is the outcome for one selected distribution: either a parsed table
// or a placeholder. A placeholder keeps the format tag and URL so the caller
// can still see what exists and fetch it by other means; Reason records, for
// a human, why no table is attached.
type Entry struct {
	Name     string         `json:"name"`
	Format   formats.Format `json:"format"`
	URL      string         `json:"url,omitempty"`
	Encoding string         `json:"encoding,omitempty"`
	Table    *tabular.Table `json:"table,omitempty"`
	Reason   string         `json:"reason,omitempty"`
}

// Parsed reports whether the entry carries a table rather than a
// placeholder.
func (e *Entry) Parsed() bool { return e.Table != nil }

// FetchResult is one dataset load: the outcome per selected distribution, in
// priority order, plus the originating record for display. A FetchResult is
// constructed fresh per load and shares no state with other loads.
type FetchResult struct {
	Dataset catalog.DatasetRecord `json:"dataset"`
	Entries []Entry               `json:"entries"`
}

// Entry returns the named entry, or nil when no distribution of that name
// was selected.
func (r *FetchResult) Entry(name string) *Entry {
	for i := range r.Entries {
		if r.Entries[i].Name == name {
			return &r.Entries[i]
		}
	}
	return nil
}

// ParsedCount returns how many entries carry tables.
func (r *FetchResult) ParsedCount() int {
	n := 0
	for i := range r.Entries {
		if r.Entries[i].Parsed() {
			n++
		}
	}
	return n
}

// PlaceholderCount returns how many entries degraded to placeholders.
func (r *FetchResult) PlaceholderCount() int {
	return len(r.Entries) - r.ParsedCount()
}

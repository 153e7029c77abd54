package catalog

import (
	_ "embed"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
)

// Publisher is one entry of the embedded publisher directory: a static
// reference table of the organisations whose datasets this client targets.
// The directory is a curation aid for the search layer and the CLI; the
// catalog itself remains the source of truth for which publisher owns a
// record.
type Publisher struct {
	ID       string `toml:"id" json:"id"`
	Label    string `toml:"label" json:"label"`
	Homepage string `toml:"homepage" json:"homepage,omitempty"`
}

//go:embed publishers.toml
var publishersTOML []byte

var loadPublishers = sync.OnceValue(func() []Publisher {
	var dir struct {
		Publisher []Publisher `toml:"publisher"`
	}
	// The table is embedded and validated by tests; a decode failure here
	// would be a build defect, so an empty directory is the only fallback.
	_ = toml.Unmarshal(publishersTOML, &dir)
	return dir.Publisher
})

// Publishers returns the embedded publisher directory. The returned slice is
// a copy; callers may reorder it freely.
func Publishers() []Publisher {
	src := loadPublishers()
	out := make([]Publisher, len(src))
	copy(out, src)
	return out
}

// LookupPublisher finds a directory entry by identifier or label,
// case-insensitively. Label matching accepts any entry whose label contains
// the query, so "environment" finds the Environment Agency.
func LookupPublisher(q string) (Publisher, bool) {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return Publisher{}, false
	}
	for _, p := range loadPublishers() {
		if strings.ToLower(p.ID) == q {
			return p, true
		}
	}
	for _, p := range loadPublishers() {
		if strings.Contains(strings.ToLower(p.Label), q) {
			return p, true
		}
	}
	return Publisher{}, false
}

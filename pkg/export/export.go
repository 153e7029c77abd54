// Package export persists a loaded dataset to disk: one file per parsed
// entry plus a manifest describing the run.
//
// The manifest records a fresh run identifier, the dataset's identity, every
// file written, and every placeholder entry that was skipped, so an export
// directory is self-describing long after the run.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/opendata-tools/govcat/pkg/dataset"
	"github.com/opendata-tools/govcat/pkg/tabular"
)

// Output formats for table files.
const (
	FormatCSV  = "csv"
	FormatJSON = "json"
)

// ManifestName is the file name of the run manifest inside the export
// directory.
const ManifestName = "manifest.json"

// Options configure one export run.
type Options struct {
	// Dir is the target directory, created if needed.
	Dir string

	// Format selects the table file format, FormatCSV or FormatJSON.
	// Empty selects CSV.
	Format string
}

// Manifest describes one export run.
type Manifest struct {
	RunID     string    `json:"run_id"`
	DatasetID string    `json:"dataset_id"`
	Title     string    `json:"title,omitempty"`
	Publisher string    `json:"publisher,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	Files     []File    `json:"files"`
	Skipped   []Skipped `json:"skipped,omitempty"`
}

// File is one table written to disk.
type File struct {
	Entry string `json:"entry"`
	Path  string `json:"path"`
	Rows  int    `json:"rows"`
}

// Skipped is one placeholder entry that had no table to write.
type Skipped struct {
	Entry  string `json:"entry"`
	Format string `json:"format"`
	URL    string `json:"url,omitempty"`
	Reason string `json:"reason,omitempty"`
}

// Write persists res under opts.Dir and returns the manifest, which is also
// written to the directory as manifest.json. Parsed entries become one file
// each; placeholders are recorded in the manifest instead.
func Write(res *dataset.FetchResult, opts Options) (*Manifest, error) {
	format := opts.Format
	if format == "" {
		format = FormatCSV
	}
	if format != FormatCSV && format != FormatJSON {
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	manifest := &Manifest{
		RunID:     uuid.NewString(),
		DatasetID: res.Dataset.ID,
		Title:     res.Dataset.Title,
		Publisher: res.Dataset.Publisher,
		CreatedAt: time.Now().UTC(),
		Files:     []File{},
	}

	for i := range res.Entries {
		entry := &res.Entries[i]
		if !entry.Parsed() {
			manifest.Skipped = append(manifest.Skipped, Skipped{
				Entry:  entry.Name,
				Format: entry.Format.String(),
				URL:    entry.URL,
				Reason: entry.Reason,
			})
			continue
		}

		name := fmt.Sprintf("%s.%s", slug(entry.Name), format)
		path := filepath.Join(opts.Dir, name)
		if err := writeTable(entry.Table, path, format); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		manifest.Files = append(manifest.Files, File{
			Entry: entry.Name,
			Path:  name,
			Rows:  entry.Table.NumRows(),
		})
	}

	if err := writeJSONFile(filepath.Join(opts.Dir, ManifestName), manifest); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	return manifest, nil
}

// writeTable writes one table in the chosen format.
func writeTable(t *tabular.Table, path, format string) error {
	if format == FormatJSON {
		return writeJSONFile(path, t.Records())
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Columns); err != nil {
		return err
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return err
	}
	w.Flush()
	return w.Error()
}

// writeJSONFile writes v as indented JSON.
func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// slug reduces an entry name to a safe file stem: lower-case letters,
// digits, and single hyphens.
func slug(name string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	s := strings.TrimRight(b.String(), "-")
	if s == "" {
		return "entry"
	}
	return s
}

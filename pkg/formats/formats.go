// Package formats defines the distribution format tags known to the catalog
// client and the priority-ordered selection of parseable formats.
//
// A format tag is derived from the metadata the catalog supplies for a
// distribution (a media type label and/or a download URL), never from the
// downloaded content itself. Only a subset of tags is parseable; which subset,
// and in which order of preference, is expressed as a [Priority] list.
package formats

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Format identifies one distribution file format.
type Format string

// Known format tags. Unknown is the zero value and matches nothing.
const (
	CSV     Format = "csv"
	XLSX    Format = "xlsx"
	XLS     Format = "xls"
	ODS     Format = "ods"
	XML     Format = "xml"
	JSON    Format = "json"
	HTML    Format = "html"
	PDF     Format = "pdf"
	ZIP     Format = "zip"
	Unknown Format = ""
)

// String returns the tag as a plain string.
func (f Format) String() string {
	if f == Unknown {
		return "unknown"
	}
	return string(f)
}

// IsSpreadsheet returns true for workbook formats.
func (f Format) IsSpreadsheet() bool {
	switch f {
	case XLSX, XLS, ODS:
		return true
	default:
		return false
	}
}

// IsText returns true for formats whose bytes are character data and therefore
// need charset handling before parsing.
func (f Format) IsText() bool {
	switch f {
	case CSV, XML, JSON, HTML:
		return true
	default:
		return false
	}
}

// labelTags maps normalized metadata labels (media types and plain words, as
// publishers actually write them) to format tags.
var labelTags = map[string]Format{
	"csv":                         CSV,
	"text/csv":                    CSV,
	"application/csv":             CSV,
	"text/comma-separated-values": CSV,
	"xlsx": XLSX,
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": XLSX,
	"xls":                      XLS,
	"excel":                    XLS,
	"application/vnd.ms-excel": XLS,
	"ods": ODS,
	"application/vnd.oasis.opendocument.spreadsheet": ODS,
	"xml":                      XML,
	"text/xml":                 XML,
	"application/xml":          XML,
	"json":                     JSON,
	"application/json":         JSON,
	"html":                     HTML,
	"text/html":                HTML,
	"pdf":                      PDF,
	"application/pdf":          PDF,
	"zip":                      ZIP,
	"application/zip":          ZIP,
	"application/octet-stream": Unknown,
}

// FromLabel maps a metadata format label (media type or plain word) to a tag.
// Matching is case-insensitive and ignores media type parameters. Structured
// syntax suffixes ("+xml", "+json") are honored. Unrecognized labels map to
// Unknown.
func FromLabel(label string) Format {
	l := strings.ToLower(strings.TrimSpace(label))
	if i := strings.IndexByte(l, ';'); i >= 0 {
		l = strings.TrimSpace(l[:i])
	}
	if f, ok := labelTags[l]; ok {
		return f
	}
	switch {
	case strings.HasSuffix(l, "+xml"):
		return XML
	case strings.HasSuffix(l, "+json"):
		return JSON
	}
	return Unknown
}

// FromURL maps a download URL to a tag by its path extension.
// Unrecognized or missing extensions map to Unknown.
func FromURL(rawURL string) Format {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.ToLower(strings.TrimPrefix(path.Ext(p), "."))
	if f, ok := labelTags[ext]; ok {
		return f
	}
	return Unknown
}

// Derive resolves a distribution's format tag from its metadata label, falling
// back to the URL extension when the label is missing or unrecognized. Content
// is never inspected.
func Derive(label, rawURL string) Format {
	if f := FromLabel(label); f != Unknown {
		return f
	}
	return FromURL(rawURL)
}

// Priority is an ordered list of acceptable format tags, highest preference
// first. A Priority is read-only configuration: the resolver never mutates it,
// and callers that need a different ordering pass their own list.
type Priority []Format

// DefaultPriority returns the standard priority list: CSV ahead of XLSX ahead
// of XML. Each call returns a fresh copy, so callers may reorder or extend the
// result without affecting anyone else.
func DefaultPriority() Priority {
	return Priority{CSV, XLSX, XML}
}

// Index returns the position of f in the list, or -1 if f is not listed.
func (p Priority) Index(f Format) int {
	for i, g := range p {
		if g == f {
			return i
		}
	}
	return -1
}

// Contains reports whether f appears in the list.
func (p Priority) Contains(f Format) bool {
	return p.Index(f) >= 0
}

// String renders the list as a comma-separated tag string.
func (p Priority) String() string {
	tags := make([]string, len(p))
	for i, f := range p {
		tags[i] = f.String()
	}
	return strings.Join(tags, ",")
}

// ParsePriority parses a comma-separated tag string ("csv,xlsx,xml") into a
// Priority. Tags are matched like metadata labels; an unrecognized tag is an
// error rather than a silently empty selection.
func ParsePriority(s string) (Priority, error) {
	var p Priority
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		f := FromLabel(tok)
		if f == Unknown {
			return nil, fmt.Errorf("unknown format %q", tok)
		}
		p = append(p, f)
	}
	return p, nil
}

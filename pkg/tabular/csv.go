package tabular

import (
	"encoding/csv"
	"errors"
	"io"
	"strings"
)

// ErrEmpty is returned when a source parses successfully but yields no rows
// at all, not even a header.
var ErrEmpty = errors.New("tabular: no rows")

// candidate cell delimiters, in sniffing order.
var delimiters = []rune{',', ';', '\t', '|'}

// ParseCSV reads character-separated content into a Table. The delimiter is
// sniffed from the first line (comma, semicolon, tab, or pipe), a UTF-8 BOM
// is stripped, quoting follows the usual CSV rules with lenient handling of
// stray quotes, and records may vary in width. The first record becomes the
// header.
//
// The reader must yield UTF-8; decode legacy encodings first (see the charset
// package).
func ParseCSV(r io.Reader) (*Table, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text := strings.TrimPrefix(string(raw), "\uFEFF")
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmpty
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.Comma = sniffDelimiter(text)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmpty
	}

	return &Table{
		Columns: records[0],
		Rows:    normalize(records[0], records[1:]),
	}, nil
}

// sniffDelimiter picks the candidate delimiter occurring most often in the
// first line, counting only occurrences outside double quotes. Comma wins
// ties by candidate order.
func sniffDelimiter(text string) rune {
	line := text
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}

	counts := make(map[rune]int, len(delimiters))
	inQuotes := false
	for _, c := range line {
		if c == '"' {
			inQuotes = !inQuotes
			continue
		}
		if inQuotes {
			continue
		}
		for _, d := range delimiters {
			if c == d {
				counts[d]++
			}
		}
	}

	best := delimiters[0]
	for _, d := range delimiters[1:] {
		if counts[d] > counts[best] {
			best = d
		}
	}
	return best
}

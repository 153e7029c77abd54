// Package tabular normalizes parsed distribution content into one table
// shape, whatever format it arrived in.
//
// Parsers exist for the formats the catalog client knows how to read: CSV
// (including the semicolon-delimited variant many European publishers emit),
// XLSX workbooks, and generic record-style XML. All parsers produce a [Table]
// whose first source row is treated as the header.
package tabular

// Table holds one parsed distribution: a header and data rows.
//
// Rows are normalized to the header width (short rows are padded with empty
// cells); cell values are always strings, since catalog content carries no
// reliable type information.
type Table struct {
	Columns []string
	Rows    [][]string
}

// NumRows returns the number of data rows (the header is not counted).
func (t *Table) NumRows() int { return len(t.Rows) }

// NumCols returns the header width.
func (t *Table) NumCols() int { return len(t.Columns) }

// Records returns the rows as column-keyed maps. Cells beyond the header
// width are dropped; missing cells are empty strings.
func (t *Table) Records() []map[string]string {
	recs := make([]map[string]string, len(t.Rows))
	for i, row := range t.Rows {
		rec := make(map[string]string, len(t.Columns))
		for j, col := range t.Columns {
			if j < len(row) {
				rec[col] = row[j]
			} else {
				rec[col] = ""
			}
		}
		recs[i] = rec
	}
	return recs
}

// normalize pads every row to the header width.
func normalize(header []string, rows [][]string) [][]string {
	for i, row := range rows {
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			rows[i] = padded
		}
	}
	return rows
}

package tabular

import (
	"fmt"
	"sort"

	"github.com/clbanning/mxj/v2"
)

// ParseXML reads record-style XML into a Table. The parser looks for the
// first repeated element group under the document root (depth-first) and
// treats each repetition as one row. Scalar children become cells keyed by
// element name; one level of nesting is flattened with dotted keys; deeper
// structure is dropped. Column order is alphabetical, since the XML-to-map
// decoding does not preserve document order.
//
// A document with no repeated group but a flat root element yields a
// single-row table. The bytes must be UTF-8; decode first if needed.
func ParseXML(b []byte) (*Table, error) {
	m, err := mxj.NewMapXml(b)
	if err != nil {
		return nil, fmt.Errorf("decode xml: %w", err)
	}

	rows := findRecords(map[string]interface{}(m))
	if rows == nil {
		return nil, fmt.Errorf("no repeated element group found")
	}
	if len(rows) == 0 {
		return nil, ErrEmpty
	}

	flat := make([]map[string]string, len(rows))
	colSet := make(map[string]struct{})
	for i, row := range rows {
		flat[i] = flatten(row)
		for k := range flat[i] {
			colSet[k] = struct{}{}
		}
	}

	columns := make([]string, 0, len(colSet))
	for k := range colSet {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	table := &Table{Columns: columns}
	for _, rec := range flat {
		row := make([]string, len(columns))
		for j, col := range columns {
			row[j] = rec[col]
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// findRecords locates the row list: the first slice of element maps reachable
// from the root, searching depth-first with sorted keys so the choice is
// deterministic. A leaf-only document maps to a single synthetic row; nothing
// recognizable maps to nil.
func findRecords(node map[string]interface{}) []map[string]interface{} {
	keys := make([]string, 0, len(node))
	for k := range node {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := node[k].(type) {
		case []interface{}:
			rows := make([]map[string]interface{}, 0, len(v))
			for _, item := range v {
				if m, ok := item.(map[string]interface{}); ok {
					rows = append(rows, m)
				}
			}
			if len(rows) > 0 {
				return rows
			}
		case map[string]interface{}:
			if rows := findRecords(v); rows != nil {
				return rows
			}
		}
	}

	if isLeaf(node) {
		return []map[string]interface{}{node}
	}
	return nil
}

// isLeaf reports whether every value in the map is scalar.
func isLeaf(node map[string]interface{}) bool {
	for _, v := range node {
		switch v.(type) {
		case map[string]interface{}, []interface{}:
			return false
		}
	}
	return len(node) > 0
}

// flatten converts one record element to cells: scalars directly, nested
// elements as "parent.child" for their scalar children.
func flatten(node map[string]interface{}) map[string]string {
	out := make(map[string]string, len(node))
	for k, v := range node {
		switch val := v.(type) {
		case map[string]interface{}:
			for k2, v2 := range val {
				switch v2.(type) {
				case map[string]interface{}, []interface{}:
				default:
					out[k+"."+k2] = fmt.Sprint(v2)
				}
			}
		case []interface{}:
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}

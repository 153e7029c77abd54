package formats

import (
	"reflect"
	"testing"
)

type dist struct {
	name string
	url  string
	tag  Format
}

func (d dist) format() Format { return d.tag }

var (
	byName = func(d dist) string { return d.name }
	byURL  = func(d dist) string { return d.url }
)

func TestSelectFiltersAndOrders(t *testing.T) {
	prio := Priority{CSV, XLSX, XML}

	tests := []struct {
		name  string
		dists []dist
		want  []string
	}{
		{
			name: "mixed formats sort by priority",
			dists: []dist{
				{"report 2017", "u1", XML},
				{"report 2016", "u2", CSV},
				{"report 2016 workbook", "u3", XLSX},
			},
			want: []string{"report 2016", "report 2016 workbook", "report 2017"},
		},
		{
			name: "unacceptable formats are dropped",
			dists: []dist{
				{"pdf rendering", "u1", PDF},
				{"table", "u2", CSV},
				{"site", "u3", HTML},
			},
			want: []string{"table"},
		},
		{
			name: "nothing acceptable yields empty",
			dists: []dist{
				{"pdf rendering", "u1", PDF},
				{"archive", "u2", ZIP},
				{"mystery", "u3", Unknown},
			},
			want: []string{},
		},
		{
			name: "equal priority keeps source order",
			dists: []dist{
				{"csv b", "u1", CSV},
				{"xml", "u2", XML},
				{"csv a", "u3", CSV},
			},
			want: []string{"csv b", "csv a", "xml"},
		},
		{
			name:  "empty input",
			dists: nil,
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Keys(tt.dists, prio, dist.format, byName)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Keys() = %v, want %v", got, tt.want)
			}
		})
	}
}

// Keying the same selection by name and by URL must agree on cardinality and
// positional order, whatever the input looks like.
func TestKeySelectorsAgree(t *testing.T) {
	inputs := [][]dist{
		{
			{"a 2017", "https://x.gov/a.xml", XML},
			{"a 2016", "https://x.gov/a.csv", CSV},
			{"a 2016 wb", "https://x.gov/a.xlsx", XLSX},
		},
		{
			{"only pdf", "https://x.gov/a.pdf", PDF},
		},
		{
			{"dup name", "https://x.gov/1.csv", CSV},
			{"dup name", "https://x.gov/2.csv", CSV},
		},
		nil,
	}

	for i, dists := range inputs {
		prio := DefaultPriority()
		names := Keys(dists, prio, dist.format, byName)
		urls := Keys(dists, prio, dist.format, byURL)

		if len(names) != len(urls) {
			t.Fatalf("input %d: cardinality mismatch: %d names vs %d urls", i, len(names), len(urls))
		}

		selected := Select(dists, prio, dist.format)
		for j := range selected {
			if names[j] != selected[j].name || urls[j] != selected[j].url {
				t.Errorf("input %d: position %d keys (%q, %q) do not match selection (%q, %q)",
					i, j, names[j], urls[j], selected[j].name, selected[j].url)
			}
		}
	}
}

func TestSelectLeavesInputIntact(t *testing.T) {
	dists := []dist{
		{"xml", "u1", XML},
		{"csv", "u2", CSV},
	}
	Select(dists, Priority{CSV, XML}, dist.format)

	if dists[0].name != "xml" || dists[1].name != "csv" {
		t.Errorf("Select reordered its input: %v", dists)
	}
}

func TestSelectUnlistedPriority(t *testing.T) {
	dists := []dist{
		{"csv", "u1", CSV},
	}
	if got := Select(dists, Priority{}, dist.format); len(got) != 0 {
		t.Errorf("empty priority selected %v", got)
	}
}

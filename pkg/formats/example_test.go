package formats_test

import (
	"fmt"

	"github.com/opendata-tools/govcat/pkg/formats"
)

func ExampleDerive() {
	// Tags come from the catalog's metadata label, falling back to the URL.
	fmt.Println(formats.Derive("text/csv; charset=UTF-8", ""))
	fmt.Println(formats.Derive("", "https://data.example.gov/births-2016.xlsx"))
	fmt.Println(formats.Derive("shapefile", "https://data.example.gov/api/42"))
	// Output:
	// csv
	// xlsx
	// unknown
}

func ExampleKeys() {
	type distribution struct {
		Name   string
		URL    string
		Format formats.Format
	}

	dists := []distribution{
		{Name: "Report 2017", URL: "https://x.gov/2017.xml", Format: formats.XML},
		{Name: "Report 2016", URL: "https://x.gov/2016.csv", Format: formats.CSV},
		{Name: "Site", URL: "https://x.gov/site.html", Format: formats.HTML},
	}

	names := formats.Keys(dists, formats.DefaultPriority(),
		func(d distribution) formats.Format { return d.Format },
		func(d distribution) string { return d.Name })

	fmt.Println(names)
	// Output:
	// [Report 2016 Report 2017]
}

func ExamplePriority_String() {
	fmt.Println(formats.DefaultPriority())
	// Output:
	// csv,xlsx,xml
}

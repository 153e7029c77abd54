package dataset

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/opendata-tools/govcat/pkg/catalog"
	"github.com/opendata-tools/govcat/pkg/formats"
	"github.com/opendata-tools/govcat/pkg/httputil"
)

// testLoader builds a Loader against srv with a negligible courtesy delay
// and a single attempt per URL, so failing distributions fail fast.
func testLoader(srv *httptest.Server, priority formats.Priority) *Loader {
	return NewLoader(httputil.NewClient(httputil.Options{
		HTTPClient:    srv.Client(),
		CourtesyDelay: time.Nanosecond,
		Attempts:      1,
	}), priority, nil)
}

// buildWorkbook synthesizes a one-sheet XLSX body.
func buildWorkbook(t *testing.T, rows [][]string) []byte {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				t.Fatal(err)
			}
			if err := f.SetCellValue("Sheet1", name, cell); err != nil {
				t.Fatal(err)
			}
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestLoadAssemblesAllAcceptableDistributions(t *testing.T) {
	workbook := buildWorkbook(t, [][]string{{"year", "count"}, {"2016", "7"}})

	mux := http.NewServeMux()
	mux.HandleFunc("/2016.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("year,count\n2016,5\n"))
	})
	mux.HandleFunc("/2016.xlsx", func(w http.ResponseWriter, r *http.Request) {
		w.Write(workbook)
	})
	mux.HandleFunc("/2017.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<rows><row><year>2017</year><count>9</count></row><row><year>2017</year><count>3</count></row></rows>`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	rec := catalog.DatasetRecord{
		ID:    "counts",
		Title: "Counts by year",
		Distributions: []catalog.Distribution{
			{Name: "2017 via XML", URL: srv.URL + "/2017.xml", Format: formats.XML},
			{Name: "2016 via CSV", URL: srv.URL + "/2016.csv", Format: formats.CSV},
			{Name: "2016 via XLSX", URL: srv.URL + "/2016.xlsx", Format: formats.XLSX},
		},
	}

	res, err := testLoader(srv, formats.Priority{formats.CSV, formats.XLSX, formats.XML}).
		Load(context.Background(), rec, LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// Selection is format-membership filtering, not year deduplication:
	// all three distributions appear, ordered CSV, XLSX, XML.
	wantOrder := []string{"2016 via CSV", "2016 via XLSX", "2017 via XML"}
	if len(res.Entries) != len(wantOrder) {
		t.Fatalf("got %d entries, want %d", len(res.Entries), len(wantOrder))
	}
	for i, name := range wantOrder {
		if res.Entries[i].Name != name {
			t.Errorf("entries[%d].Name = %q, want %q", i, res.Entries[i].Name, name)
		}
		if !res.Entries[i].Parsed() {
			t.Errorf("entries[%d] (%s) is a placeholder: %s", i, name, res.Entries[i].Reason)
		}
	}

	if got := res.Entry("2016 via CSV").Table.Rows; len(got) != 1 || got[0][1] != "5" {
		t.Errorf("csv rows = %v", got)
	}
	if got := res.Entry("2017 via XML").Table.NumRows(); got != 2 {
		t.Errorf("xml rows = %d, want 2", got)
	}
	if res.ParsedCount() != 3 || res.PlaceholderCount() != 0 {
		t.Errorf("counts = %d parsed / %d placeholders", res.ParsedCount(), res.PlaceholderCount())
	}
}

func TestLoadIsolatesPerDistributionFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/good.csv", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a,b\n1,2\n"))
	})
	mux.HandleFunc("/gone.csv", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	rec := catalog.DatasetRecord{
		ID: "partial",
		Distributions: []catalog.Distribution{
			{Name: "good", URL: srv.URL + "/good.csv", Format: formats.CSV},
			{Name: "gone", URL: srv.URL + "/gone.csv", Format: formats.CSV},
		},
	}

	res, err := testLoader(srv, formats.DefaultPriority()).Load(context.Background(), rec, LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(res.Entries))
	}
	if !res.Entry("good").Parsed() {
		t.Error("good entry should be parsed")
	}
	bad := res.Entry("gone")
	if bad.Parsed() {
		t.Fatal("gone entry should be a placeholder")
	}
	if bad.Format != formats.CSV || bad.URL != srv.URL+"/gone.csv" {
		t.Errorf("placeholder keeps format and URL, got %+v", bad)
	}
	if bad.Reason == "" {
		t.Error("placeholder carries no reason")
	}
}

func TestLoadNothingAcceptableYieldsListing(t *testing.T) {
	rec := catalog.DatasetRecord{
		ID: "opaque",
		Distributions: []catalog.Distribution{
			{Name: "report", URL: "http://x/report.pdf", Format: formats.PDF},
			{Name: "archive", URL: "http://x/archive.zip", Format: formats.ZIP},
		},
	}

	res, err := NewLoader(nil, nil, nil).Load(context.Background(), rec, LoadOptions{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(res.Entries) != 1 {
		t.Fatalf("got %d entries, want single listing", len(res.Entries))
	}
	listing := res.Entries[0]
	if listing.Name != ListingName || !listing.Parsed() {
		t.Fatalf("listing entry = %+v", listing)
	}
	if listing.Table.NumRows() != 2 {
		t.Errorf("listing rows = %d, want 2", listing.Table.NumRows())
	}
	if got := listing.Table.Rows[0]; got[0] != "report" || got[1] != "pdf" || got[2] != "http://x/report.pdf" {
		t.Errorf("listing row = %v", got)
	}
}

func TestLoadEncodingOverride(t *testing.T) {
	// "Müll,Straße" in Latin-1.
	latin1 := []byte{'k', ',', 'v', '\n', 'M', 0xFC, 'l', 'l', ',', 'S', 't', 'r', 'a', 0xDF, 'e', '\n'}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(latin1)
	}))
	defer srv.Close()

	rec := catalog.DatasetRecord{
		ID: "umlauts",
		Distributions: []catalog.Distribution{
			{Name: "data", URL: srv.URL + "/data.csv", Format: formats.CSV},
		},
	}

	res, err := testLoader(srv, formats.DefaultPriority()).
		Load(context.Background(), rec, LoadOptions{Encoding: "ISO-8859-1"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	entry := res.Entry("data")
	if entry.Encoding != "ISO-8859-1" {
		t.Errorf("Encoding = %q, want override", entry.Encoding)
	}
	if got := entry.Table.Rows[0]; got[0] != "Müll" || got[1] != "Straße" {
		t.Errorf("decoded row = %v", got)
	}
}

func TestLoadOne(t *testing.T) {
	loader := NewLoader(nil, nil, nil)
	ctx := context.Background()

	if _, err := loader.LoadOne(ctx, nil, LoadOptions{}); !errors.Is(err, ErrNoDataset) {
		t.Errorf("empty set: err = %v, want ErrNoDataset", err)
	}

	two := []catalog.DatasetRecord{{ID: "a"}, {ID: "b"}}
	_, err := loader.LoadOne(ctx, two, LoadOptions{})
	var multi *MultipleDatasetsError
	if !errors.As(err, &multi) {
		t.Fatalf("ambiguous set: err = %v, want MultipleDatasetsError", err)
	}
	if len(multi.IDs) != 2 || multi.IDs[0] != "a" {
		t.Errorf("IDs = %v", multi.IDs)
	}

	one := []catalog.DatasetRecord{{ID: "solo"}}
	res, err := loader.LoadOne(ctx, one, LoadOptions{})
	if err != nil {
		t.Fatalf("single set: %v", err)
	}
	if res.Dataset.ID != "solo" {
		t.Errorf("Dataset.ID = %q", res.Dataset.ID)
	}
}

func TestLoadCancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a\n1\n"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rec := catalog.DatasetRecord{
		ID: "c",
		Distributions: []catalog.Distribution{
			{Name: "d", URL: srv.URL, Format: formats.CSV},
		},
	}
	if _, err := testLoader(srv, formats.DefaultPriority()).Load(ctx, rec, LoadOptions{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

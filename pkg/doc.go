// Package pkg provides the core libraries of the govcat catalog client.
//
// # Overview
//
// Govcat retrieves datasets from government open-data catalogs: paginated
// list APIs aggregating many publishers, each publishing the same dataset in
// several file formats and inconsistent text encodings. The libraries here
// normalize that mess into uniform tables.
//
// # Architecture
//
// The typical data flow:
//
//	Catalog list endpoint (_page/_pageSize)
//	         ↓
//	    [catalog] package (paginator + record decoding)
//	         ↓
//	    [formats] package (priority-ordered distribution selection)
//	         ↓
//	    [dataset] package (download, [charset] detection, [tabular] parsing)
//	         ↓
//	    FetchResult → CLI display, [export] to disk, or the HTTP facade
//
// # Main Packages
//
// [httputil] - Throttled, retried HTTP transport with the error taxonomy
// every fetch shares (TransportError, FormatMismatchError).
//
// [catalog] - The catalog API client: pagination envelope, dataset records
// and distributions, keyword search, identifier lookup, and the embedded
// publisher directory.
//
// [formats] - Format tags, the priority list, and the generic resolver that
// filters and orders a dataset's distributions.
//
// [charset] - Best-effort statistical encoding detection and UTF-8 decoding
// for downloaded text.
//
// [tabular] - The uniform Table shape plus the CSV, XLSX, and XML parsers
// that produce it.
//
// [dataset] - The loader and assembler: one FetchResult per dataset, with
// per-distribution failures degraded to placeholders.
//
// [export] - Persists a FetchResult to disk with a run manifest.
//
// [cache] - Pluggable response cache backends (file, null, Redis, Mongo)
// for catalog metadata; distribution downloads are never cached.
//
// [errors] - The error code taxonomy shared by the CLI and HTTP surfaces.
//
// [httputil]: https://pkg.go.dev/github.com/opendata-tools/govcat/pkg/httputil
// [catalog]: https://pkg.go.dev/github.com/opendata-tools/govcat/pkg/catalog
// [formats]: https://pkg.go.dev/github.com/opendata-tools/govcat/pkg/formats
// [charset]: https://pkg.go.dev/github.com/opendata-tools/govcat/pkg/charset
// [tabular]: https://pkg.go.dev/github.com/opendata-tools/govcat/pkg/tabular
// [dataset]: https://pkg.go.dev/github.com/opendata-tools/govcat/pkg/dataset
// [export]: https://pkg.go.dev/github.com/opendata-tools/govcat/pkg/export
// [cache]: https://pkg.go.dev/github.com/opendata-tools/govcat/pkg/cache
// [errors]: https://pkg.go.dev/github.com/opendata-tools/govcat/pkg/errors
package pkg

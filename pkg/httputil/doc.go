// Package httputil implements the catalog transport: throttled, retried
// HTTP GETs with an identifying client tag.
//
// # Overview
//
// Everything the catalog client sends over the wire goes through [Client]:
//
//   - a fixed User-Agent identifying this library to the API operator
//   - a response timeout and a separate connect timeout
//   - a courtesy pause after every request, success or failure, so bursts
//     of sequential calls stay polite to a shared government endpoint
//   - a bounded retry budget for transient failures
//
// # Retry behavior
//
// Non-200 responses and network-level failures are considered transient and
// are retried until the attempt budget is exhausted, at which point the last
// failure surfaces as a [TransportError] carrying the final HTTP status.
//
// A 200 response with the wrong declared content type is not transient: the
// server answered deterministically, so retrying cannot help. That case
// fails immediately with a [FormatMismatchError].
//
// [Retry] is the bounded loop underneath; it retries only errors wrapped in
// [RetryableError] and returns everything else unchanged.
//
// # Defaults
//
//   - Response timeout: 120 seconds
//   - Connect timeout: 60 seconds
//   - Courtesy delay: 1 second
//   - Attempt budget: 5
package httputil

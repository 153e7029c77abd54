package httputil

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNetwork marks transport failures that never produced an HTTP status
// (DNS, dial, TLS, mid-body disconnects). Check with errors.Is.
var ErrNetwork = errors.New("network error")

// TransportError is the terminal failure of a fetch: the attempt budget ran
// out without a usable response. Status holds the last HTTP status observed,
// or zero when the failure stayed below the HTTP layer (then Err wraps
// [ErrNetwork] with the cause).
type TransportError struct {
	URL    string
	Status int
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("GET %s: status %d %s", e.URL, e.Status, http.StatusText(e.Status))
	}
	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// FormatMismatchError reports a 200 response whose declared content type is
// not the expected structured-data type. The server answered
// deterministically, so this is never retried.
type FormatMismatchError struct {
	URL      string
	Declared string
	Expected string
}

func (e *FormatMismatchError) Error() string {
	return fmt.Sprintf("GET %s: content type %q, expected %q", e.URL, e.Declared, e.Expected)
}

// Package charset guesses the text encoding of downloaded distribution bytes
// and decodes them to UTF-8.
//
// Government publishers rarely declare encodings, and when they do the
// declaration is often wrong. Detection is therefore best-effort by contract:
// [Detect] always returns a usable label, falling back to a caller-supplied
// default whenever statistical detection fails, is inconclusive, or cannot
// read the source at all. Downstream parsing must proceed with some encoding,
// so no error surface exists here.
package charset

import (
	"bytes"
	"io"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/transform"
)

// DefaultFallback is the encoding assumed when detection fails. Detection
// failure on real catalog content almost always means legacy single-byte
// text, so Latin-1 recovers more of it than a UTF-8 assumption would.
const DefaultFallback = "ISO-8859-1"

// sampleSize bounds how much of the source is read for detection.
const sampleSize = 64 * 1024

// Detect reads a sample from r and returns the label of the most confident
// encoding candidate. It returns fallback when the source cannot be read,
// when no candidate clears the detector's confidence floor, or when the top
// candidate carries no usable label.
func Detect(r io.Reader, fallback string) string {
	sample := make([]byte, sampleSize)
	n, err := io.ReadFull(r, sample)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return fallback
	}
	return DetectBytes(sample[:n], fallback)
}

// DetectBytes is Detect over an in-memory sample.
func DetectBytes(sample []byte, fallback string) string {
	res, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || res == nil || res.Charset == "" {
		return fallback
	}
	return res.Charset
}

// NewReader wraps r so that reads yield UTF-8, decoding from the encoding
// named by label. Labels are resolved against the IANA index; an unknown or
// unsupported label leaves r undecorated, which keeps already-UTF-8 content
// readable no matter what the detector claimed.
func NewReader(r io.Reader, label string) io.Reader {
	enc := lookup(label)
	if enc == nil {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// Decode converts b from the encoding named by label to UTF-8. Decoding is
// best-effort like everything else here: if the label is unknown or the
// transform fails partway, the original bytes come back unchanged.
func Decode(b []byte, label string) []byte {
	enc := lookup(label)
	if enc == nil {
		return b
	}
	out, _, err := transform.Bytes(enc.NewDecoder(), b)
	if err != nil {
		return b
	}
	return out
}

// DecodeReader fully reads r and decodes the result from label to UTF-8.
func DecodeReader(r io.Reader, label string) ([]byte, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(NewReader(r, label)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// lookup resolves an IANA charset label to an x/text encoding. The IANA index
// returns a nil encoding without error for names it knows but cannot decode;
// both cases collapse to nil here.
func lookup(label string) encoding.Encoding {
	enc, err := ianaindex.IANA.Encoding(label)
	if err != nil || enc == nil {
		return nil
	}
	return enc
}

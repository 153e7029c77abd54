package charset

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

// errReader fails on every read, standing in for an unreachable byte source.
type errReader struct{}

func (errReader) Read([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestDetectUnreachableSource(t *testing.T) {
	if got := Detect(errReader{}, "ASCII"); got != "ASCII" {
		t.Errorf("Detect(errReader) = %q, want fallback %q", got, "ASCII")
	}
}

func TestDetectEmptySource(t *testing.T) {
	if got := Detect(strings.NewReader(""), "ISO-8859-1"); got != "ISO-8859-1" {
		t.Errorf("Detect(empty) = %q, want fallback", got)
	}
}

func TestDetectUTF8(t *testing.T) {
	text := strings.Repeat("Straßenverzeichnis der Gemeinden, völlig überarbeitet. ", 50)
	if got := Detect(strings.NewReader(text), "ASCII"); got != "UTF-8" {
		t.Errorf("Detect(utf-8 text) = %q, want UTF-8", got)
	}
}

func TestDetectUTF16LE(t *testing.T) {
	var b bytes.Buffer
	b.Write([]byte{0xFF, 0xFE})
	for _, r := range "hello, world" {
		b.WriteByte(byte(r))
		b.WriteByte(0)
	}
	if got := Detect(&b, "ASCII"); got != "UTF-16LE" {
		t.Errorf("Detect(utf-16le) = %q, want UTF-16LE", got)
	}
}

func TestNewReaderDecodesLatin1(t *testing.T) {
	raw := []byte{'c', 'a', 'f', 0xE9}

	out, err := io.ReadAll(NewReader(bytes.NewReader(raw), "ISO-8859-1"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(out) != "café" {
		t.Errorf("decoded %q, want %q", out, "café")
	}
}

func TestNewReaderUnknownLabelPassthrough(t *testing.T) {
	raw := []byte("plain bytes")

	out, err := io.ReadAll(NewReader(bytes.NewReader(raw), "not-a-charset"))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(out, raw) {
		t.Errorf("passthrough modified bytes: %q", out)
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		raw   []byte
		label string
		want  string
	}{
		{"latin-1", []byte{0xE9, 0xE8}, "ISO-8859-1", "éè"},
		{"windows-1252", []byte{0x80}, "windows-1252", "€"},
		{"unknown label passes through", []byte("abc"), "martian", "abc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.raw, tt.label); string(got) != tt.want {
				t.Errorf("Decode = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeReader(t *testing.T) {
	out, err := DecodeReader(bytes.NewReader([]byte{0xFC}), "ISO-8859-1")
	if err != nil {
		t.Fatalf("DecodeReader: %v", err)
	}
	if string(out) != "ü" {
		t.Errorf("DecodeReader = %q, want %q", out, "ü")
	}
}

package textenc

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding identifies the character encoding of an annotation file.
type Encoding string

const (
	UTF8    Encoding = "utf-8"
	UTF16LE Encoding = "utf-16le"
	UTF16BE Encoding = "utf-16be"
	Latin1  Encoding = "latin-1"
)

var (
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect classifies the encoding of the file at path. A UTF-16 byte order
// mark on the first line decides immediately; otherwise the remaining byte
// stream is validated as strict UTF-8, with Latin-1 as the fallback. The
// classification itself is total; only opening or reading the file can fail.
func Detect(path string) (Encoding, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	header, err := br.ReadBytes('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	switch {
	case bytes.HasPrefix(header, bomUTF16LE):
		return UTF16LE, nil
	case bytes.HasPrefix(header, bomUTF16BE):
		return UTF16BE, nil
	}

	rest, err := io.ReadAll(br)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	if utf8.Valid(rest) {
		return UTF8, nil
	}
	return Latin1, nil
}

// NewReader wraps r so that reads yield UTF-8 text regardless of the source
// encoding. Unknown tags fall back to passing bytes through unchanged.
func NewReader(r io.Reader, enc Encoding) io.Reader {
	switch enc {
	case UTF16LE:
		return transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder())
	case UTF16BE:
		return transform.NewReader(r, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder())
	case Latin1:
		return transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	default:
		return r
	}
}

// NewWriter wraps w so that UTF-8 text written to it is stored in enc. The
// UTF-16 encoders emit the appropriate byte order mark.
func NewWriter(w io.Writer, enc Encoding) io.Writer {
	switch enc {
	case UTF16LE:
		return transform.NewWriter(w, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder())
	case UTF16BE:
		return transform.NewWriter(w, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewEncoder())
	case Latin1:
		return transform.NewWriter(w, charmap.ISO8859_1.NewEncoder())
	default:
		return w
	}
}

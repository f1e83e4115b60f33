package negs

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

const fileExt = ".txt"

// ReadFile reads and decodes the NEGS file at path. Paths without the .txt
// extension are rejected before the file is opened.
func ReadFile(path string) (*Document, error) {
	if !strings.EqualFold(filepath.Ext(path), fileExt) {
		return nil, &FormatError{Record: "file", Err: fmt.Errorf("%w: %s", ErrNotTxt, filepath.Base(path))}
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, &FormatError{Record: "file", Err: err}
	}
	defer func() { _ = f.Close() }()

	return Read(f)
}

// Read buffers r entirely and decodes it as a NEGS document.
func Read(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &FormatError{Record: "file", Err: err}
	}
	return ReadDocument(Lines(data))
}

// Lines splits raw file contents into records.
//
// Files are published in Latin-1; content that is not valid UTF-8 is
// converted so that each character, accented or not, keeps one offset.
// A UTF-8 BOM is dropped, CRLF endings are accepted and trailing blank lines
// are ignored.
func Lines(data []byte) []string {
	if !utf8.Valid(data) {
		// ISO-8859-1 maps every byte, so the conversion cannot fail.
		data, _ = charmap.ISO8859_1.NewDecoder().Bytes(data)
	}
	text := strings.TrimPrefix(string(data), "\ufeff")
	text = strings.ReplaceAll(text, "\r\n", "\n")

	lines := strings.Split(text, "\n")
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

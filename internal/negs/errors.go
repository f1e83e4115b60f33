package negs

import (
	"errors"
	"fmt"
)

var (
	// ErrTooFewLines is returned when a document has no room for both header and trailer.
	ErrTooFewLines = errors.New("document needs at least a header and a trailer line")

	// ErrShortLine is returned when a line ends before the last span its record reads.
	ErrShortLine = errors.New("line shorter than record width")

	// ErrNotNumeric is returned when an integer or scaled field holds non-digit text.
	ErrNotNumeric = errors.New("non-numeric text in numeric field")

	// ErrNotTxt is returned by ReadFile for paths without the .txt extension.
	ErrNotTxt = errors.New("not a .txt file")
)

// FormatError reports a structural problem with a NEGS document: too few
// lines, a line too short for its record, or a file that cannot be read.
//
// Fields:
//   - Line:   1-based line number, 0 when the problem is not tied to a line.
//   - Record: "header", "trade", "trailer", "document" or "file".
//   - Err:    the underlying cause (ErrTooFewLines, ErrShortLine, I/O errors...).
type FormatError struct {
	Line   int
	Record string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("negs: %s record at line %d: %v", e.Record, e.Line, e.Err)
	}
	return fmt.Sprintf("negs: %s: %v", e.Record, e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }

// DecodeError reports a field whose raw text does not match its declared kind.
type DecodeError struct {
	Line  int
	Field string
	Raw   string
	Err   error
}

func (e *DecodeError) Error() string {
	msg := fmt.Sprintf("negs: decode %q", e.Raw)
	if e.Field != "" {
		msg = fmt.Sprintf("negs: field %s: decode %q", e.Field, e.Raw)
	}
	if e.Line > 0 {
		msg = fmt.Sprintf("%s at line %d", msg, e.Line)
	}
	return fmt.Sprintf("%s: %v", msg, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// atLine stamps a line number on the typed errors produced by the record parsers.
func atLine(err error, line int) error {
	var fe *FormatError
	if errors.As(err, &fe) {
		fe.Line = line
		return err
	}
	var de *DecodeError
	if errors.As(err, &de) {
		de.Line = line
	}
	return err
}

func shortLine(record string, got, want int) error {
	return &FormatError{
		Record: record,
		Err:    fmt.Errorf("%w: got %d characters, need %d", ErrShortLine, got, want),
	}
}

package negs

import (
	"errors"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// span is a half-open [start,end) character range of a fixed-width line.
type span struct{ start, end int }

// record wraps one line. Offsets count characters, so lines holding
// non-ASCII text are indexed through their runes.
type record struct {
	line  string
	runes []rune
}

func newRecord(line string) record {
	for i := 0; i < len(line); i++ {
		if line[i] >= utf8.RuneSelf {
			return record{line: line, runes: []rune(line)}
		}
	}
	return record{line: line}
}

func (r record) len() int {
	if r.runes != nil {
		return len(r.runes)
	}
	return len(r.line)
}

func (r record) at(i int) rune {
	if r.runes != nil {
		return r.runes[i]
	}
	return rune(r.line[i])
}

// slice returns the raw text of s. Callers check the record width first.
func (r record) slice(s span) string {
	if r.runes != nil {
		return string(r.runes[s.start:s.end])
	}
	return r.line[s.start:s.end]
}

// fieldReader decodes spans of one record and keeps the first decode failure.
type fieldReader struct {
	rec record
	err error
}

func (f *fieldReader) text(s span) string {
	return DecodeText(f.rec.slice(s))
}

func (f *fieldReader) integer(name string, s span) int64 {
	n, err := DecodeInt(f.rec.slice(s))
	f.fail(name, err)
	return n
}

func (f *fieldReader) scaled(name string, s span, divisor int64) decimal.Decimal {
	d, err := DecodeScaled(f.rec.slice(s), divisor)
	f.fail(name, err)
	return d
}

func (f *fieldReader) fail(name string, err error) {
	if err == nil || f.err != nil {
		return
	}
	var de *DecodeError
	if errors.As(err, &de) {
		de.Field = name
	}
	f.err = err
}

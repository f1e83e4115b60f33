package negs

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

// PriceDivisor rescales the implied two-decimal price fields.
const PriceDivisor = 100

// Kind declares how the raw text of a field is normalized.
type Kind interface {
	decode(raw string) (any, error)
	String() string
}

type textKind struct{}

func (textKind) decode(raw string) (any, error) { return DecodeText(raw), nil }
func (textKind) String() string                 { return "text" }

type intKind struct{}

func (intKind) decode(raw string) (any, error) { return DecodeInt(raw) }
func (intKind) String() string                 { return "integer" }

type scaledKind struct{ divisor int64 }

func (k scaledKind) decode(raw string) (any, error) { return DecodeScaled(raw, k.divisor) }
func (k scaledKind) String() string                 { return fmt.Sprintf("scaled(%d)", k.divisor) }

var (
	// Text strips leading zeros and surrounding blanks.
	Text Kind = textKind{}
	// Integer parses a left-zero-padded base-10 number.
	Integer Kind = intKind{}
)

// Scaled parses a left-zero-padded number carrying an implied divisor.
func Scaled(divisor int64) Kind { return scaledKind{divisor: divisor} }

// Decode normalizes raw according to kind. The result is a string, an int64
// or a decimal.Decimal.
func Decode(raw string, kind Kind) (any, error) {
	return kind.decode(raw)
}

// DecodeText strips leading zero characters and surrounding whitespace.
// Leading blanks are stripped together with the zeros so that the result
// never starts with either, which keeps the function idempotent.
func DecodeText(raw string) string {
	s := strings.TrimLeftFunc(raw, func(r rune) bool { return r == '0' || unicode.IsSpace(r) })
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// DecodeInt parses a left-zero-padded integer. An all-zero or blank field is 0.
func DecodeInt(raw string) (int64, error) {
	digits := strings.TrimLeft(strings.TrimSpace(raw), "0")
	if digits == "" {
		return 0, nil
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, &DecodeError{Raw: raw, Err: ErrNotNumeric}
		}
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, &DecodeError{Raw: raw, Err: err}
	}
	return n, nil
}

// DecodeScaled parses raw as DecodeInt does and divides the result by divisor.
func DecodeScaled(raw string, divisor int64) (decimal.Decimal, error) {
	if divisor <= 0 {
		return decimal.Zero, &DecodeError{Raw: raw, Err: fmt.Errorf("invalid divisor %d", divisor)}
	}
	n, err := DecodeInt(raw)
	if err != nil {
		return decimal.Zero, err
	}
	return decimal.NewFromInt(n).Div(decimal.NewFromInt(divisor)), nil
}

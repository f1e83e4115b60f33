// Package negs decodes the NEGS file published by the B3/Sinacor clearing
// system for a trading session.
//
// A NEGS file is a sequence of fixed-width records:
//
//	line 0         header   (file identification, generation and session dates)
//	lines 1..N-2   trades   (one registro de negócio per line)
//	line N-1       trailer  (file identification, total records generated)
//
// Two field tables exist. The header byte at offset 39 selects between them:
// 'S' marks the extended layout used when client accounts exceed 7 digits,
// which moves the client code to [184,193) and adds four instrument fields.
// The layout is detected once per document and passed to every parser.
//
// Fields are decoded as text (leading zeros and blanks stripped), integers or
// implied-decimal numbers (decimal.Decimal, divided by PriceDivisor).
// Structural problems are reported as *FormatError, malformed numeric fields
// as *DecodeError; decoding stops at the first one.
package negs

package negs

import (
	"fmt"
	"time"
)

// dateLayout is the YYYYMMDD form of every NEGS date field.
const dateLayout = "20060102"

// headerWidth is the last offset read from header and trailer lines.
const headerWidth = 200

// Identification is shared by the header and trailer records.
type Identification struct {
	RecordType      string `json:"tipo_registro"`
	FileName        string `json:"nome_arquivo"`
	FileCode        string `json:"codigo_arquivo"`
	UserCode        string `json:"codigo_usuario"`
	OriginCode      string `json:"codigo_origem"`
	DestinationCode string `json:"codigo_destino"`
}

func (i Identification) ident() Identification { return i }

var (
	idRecordType      = span{0, 2}
	idFileName        = span{2, 10}
	idFileCode        = span{2, 6}
	idUserCode        = span{6, 10}
	idOriginCode      = span{10, 18}
	idDestinationCode = span{18, 22}
)

func readIdentification(f *fieldReader) Identification {
	return Identification{
		RecordType:      f.text(idRecordType),
		FileName:        f.text(idFileName),
		FileCode:        f.text(idFileCode),
		UserCode:        f.text(idUserCode),
		OriginCode:      f.text(idOriginCode),
		DestinationCode: f.text(idDestinationCode),
	}
}

func identificationColumns[T interface{ ident() Identification }]() []column[T] {
	return []column[T]{
		{"tipo_registro", func(v T) any { return v.ident().RecordType }},
		{"nome_arquivo", func(v T) any { return v.ident().FileName }},
		{"codigo_arquivo", func(v T) any { return v.ident().FileCode }},
		{"codigo_usuario", func(v T) any { return v.ident().UserCode }},
		{"codigo_origem", func(v T) any { return v.ident().OriginCode }},
		{"codigo_destino", func(v T) any { return v.ident().DestinationCode }},
	}
}

// Header is the first record of a NEGS document.
type Header struct {
	Identification
	GeneratedOn string `json:"data_geracao"`
	SessionDate string `json:"data_pregao"`
	Reserved    string `json:"reserva"`
}

var (
	hdrGeneratedOn = span{22, 30}
	hdrSessionDate = span{30, 38}
	// The reserved tail starts one byte later under the extended layout.
	hdrReserved         = span{38, headerWidth}
	hdrReservedExtended = span{39, headerWidth}
)

var headerColumns = append(identificationColumns[Header](), []column[Header]{
	{"data_geracao", func(h Header) any { return h.GeneratedOn }},
	{"data_pregao", func(h Header) any { return h.SessionDate }},
	{"reserva", func(h Header) any { return h.Reserved }},
}...)

// HeaderColumns returns the header column names in table order.
func HeaderColumns() []string { return columnNames(headerColumns) }

// Row returns the header values in HeaderColumns order.
func (h Header) Row() []any { return columnValues(h, headerColumns) }

// ParseHeader decodes a header line under the given layout.
func ParseHeader(line string, layout Layout) (Header, error) {
	rec := newRecord(line)
	if rec.len() < headerWidth {
		return Header{}, shortLine("header", rec.len(), headerWidth)
	}
	f := &fieldReader{rec: rec}

	reserved := hdrReserved
	if layout == LayoutExtended {
		reserved = hdrReservedExtended
	}

	return Header{
		Identification: readIdentification(f),
		GeneratedOn:    f.text(hdrGeneratedOn),
		SessionDate:    f.text(hdrSessionDate),
		Reserved:       f.text(reserved),
	}, nil
}

// Session parses the trading session date (data_pregao).
func (h Header) Session() (time.Time, error) {
	d, err := time.Parse(dateLayout, h.SessionDate)
	if err != nil {
		return time.Time{}, fmt.Errorf("session date %q: %w", h.SessionDate, err)
	}
	return d, nil
}

package negs

import (
	"fmt"
	"time"
)

// Trailer is the last record of a NEGS document. Its layout never changes.
type Trailer struct {
	Identification
	GeneratedOn  string `json:"data_geracao_arquivo"`
	TotalRecords string `json:"total_registros_gerados"`
	Reserved     string `json:"reserva"`
}

var (
	trlGeneratedOn  = span{22, 30}
	trlTotalRecords = span{30, 39}
	trlReserved     = span{39, headerWidth}
)

var trailerColumns = append(identificationColumns[Trailer](), []column[Trailer]{
	{"data_geracao_arquivo", func(t Trailer) any { return t.GeneratedOn }},
	{"total_registros_gerados", func(t Trailer) any { return t.TotalRecords }},
	{"reserva", func(t Trailer) any { return t.Reserved }},
}...)

// TrailerColumns returns the trailer column names in table order.
func TrailerColumns() []string { return columnNames(trailerColumns) }

// Row returns the trailer values in TrailerColumns order.
func (t Trailer) Row() []any { return columnValues(t, trailerColumns) }

// ParseTrailer decodes a trailer line. The record count stays text.
func ParseTrailer(line string) (Trailer, error) {
	rec := newRecord(line)
	if rec.len() < headerWidth {
		return Trailer{}, shortLine("trailer", rec.len(), headerWidth)
	}
	f := &fieldReader{rec: rec}
	return Trailer{
		Identification: readIdentification(f),
		GeneratedOn:    f.text(trlGeneratedOn),
		TotalRecords:   f.text(trlTotalRecords),
		Reserved:       f.text(trlReserved),
	}, nil
}

// GeneratedAt parses the file generation date.
func (t Trailer) GeneratedAt() (time.Time, error) {
	d, err := time.Parse(dateLayout, t.GeneratedOn)
	if err != nil {
		return time.Time{}, fmt.Errorf("generation date %q: %w", t.GeneratedOn, err)
	}
	return d, nil
}

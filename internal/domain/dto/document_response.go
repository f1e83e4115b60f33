package dto

import "github.com/guttosm/negspulse/internal/negs"

// DocumentResponse is returned by POST /api/v1/negs/parse.
//
// Header, Trades and Trailer keep the NEGS column names as JSON keys;
// preco_negocio is serialized as a decimal string.
type DocumentResponse struct {
	Filename   string       `json:"filename" example:"NEGS_20240104.txt"`
	Layout     string       `json:"layout" example:"standard"`
	TradeCount int          `json:"trade_count" example:"2"`
	Header     negs.Header  `json:"header"`
	Trades     []negs.Trade `json:"trades"`
	Trailer    negs.Trailer `json:"trailer"`
}

// NewDocumentResponse maps a decoded document to the API contract.
func NewDocumentResponse(filename string, doc *negs.Document) DocumentResponse {
	return DocumentResponse{
		Filename:   filename,
		Layout:     doc.Layout.String(),
		TradeCount: len(doc.Trades),
		Header:     doc.Header,
		Trades:     doc.Trades,
		Trailer:    doc.Trailer,
	}
}

package models

import "time"

// NegsFile summarizes one ingested NEGS document (a row of negs_files).
//
// Fields:
//   - SessionDate: trading session the file reports (data_pregao).
//   - UserCode: broker user code from the header; together with SessionDate it
//     identifies the document for idempotent ingestion.
//   - Layout: "standard" or "extended".
//   - TradeCount: number of trade records persisted for the file.
type NegsFile struct {
	ID          int64     `json:"id" example:"42"`
	Filename    string    `json:"filename" example:"NEGS_20240104.txt"`
	SessionDate time.Time `json:"session_date" example:"2024-01-04T00:00:00Z"`
	UserCode    string    `json:"user_code" example:"308"`
	Layout      string    `json:"layout" example:"standard"`
	TradeCount  int       `json:"trade_count" example:"1532"`
	IngestedAt  time.Time `json:"ingested_at"`
}

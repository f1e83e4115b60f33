package models

import "github.com/shopspring/decimal"

// Aggregate represents aggregated NEGS trades for a specific ticker.
//
// Fields:
//   - Ticker: codigo_negociacao used in the aggregation (e.g., "VALE3").
//   - MaxRangeValue: the maximum preco_negocio observed in the selected period,
//     exact as stored (NUMERIC(20,2)).
//   - MaxDailyVolume: the maximum quantidade_negocio summed over a single
//     session date during the selected period.
//
// swagger:model Aggregate
type Aggregate struct {
	Ticker         string          `json:"ticker" example:"PETR4"`
	MaxRangeValue  decimal.Decimal `json:"max_range_value" swaggertype:"string" example:"20.50"`
	MaxDailyVolume int64           `json:"max_daily_volume" example:"150000"`
}

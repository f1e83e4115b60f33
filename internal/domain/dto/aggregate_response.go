package dto

import (
	"time"

	"github.com/guttosm/negspulse/internal/domain/models"
	"github.com/shopspring/decimal"
)

// AggregateResponse represents the JSON structure returned by the
// GET /api/v1/aggregate endpoint.
//
// Fields match the API contract and may differ from internal domain models.
// DataInicio and DataFim echo the session-date window that was queried.
// MaxRangeValue is serialized as a decimal string, like preco_negocio in
// DocumentResponse.
type AggregateResponse struct {
	Ticker         string          `json:"ticker" example:"PETR4"`                              // codigo_negociacao requested
	DataInicio     string          `json:"data_inicio,omitempty" example:"2024-09-01"`          // First session date considered
	DataFim        string          `json:"data_fim,omitempty" example:"2024-09-30"`             // Last session date considered
	MaxRangeValue  decimal.Decimal `json:"max_range_value" swaggertype:"string" example:"20.5"` // Highest preco_negocio in the window
	MaxDailyVolume int64           `json:"max_daily_volume" example:"150000"`                   // Highest per-session quantidade_negocio sum
}

// NewAggregateResponse maps an aggregate and its query window to the API contract.
// Nil dates are left out of the response.
func NewAggregateResponse(agg *models.Aggregate, start, end *time.Time) AggregateResponse {
	resp := AggregateResponse{
		Ticker:         agg.Ticker,
		MaxRangeValue:  agg.MaxRangeValue,
		MaxDailyVolume: agg.MaxDailyVolume,
	}
	if start != nil {
		resp.DataInicio = start.Format(time.DateOnly)
	}
	if end != nil {
		resp.DataFim = end.Format(time.DateOnly)
	}
	return resp
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/guttosm/negspulse/internal/domain/models"
	"github.com/guttosm/negspulse/internal/storage"
)

// AggregateService defines business logic for computing aggregates.
type AggregateService interface {
	GetAggregate(ctx context.Context, ticker string, startDate *time.Time, endDate *time.Time) (*models.Aggregate, error)
}

type aggregateService struct {
	repo storage.NegsRepository
}

func NewAggregateService(repo storage.NegsRepository) AggregateService {
	return &aggregateService{repo: repo}
}

// GetAggregate looks tickers up the way codigo_negociacao is stored: trimmed and upper case.
func (s *aggregateService) GetAggregate(ctx context.Context, ticker string, startDate *time.Time, endDate *time.Time) (*models.Aggregate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.repo.GetAggregateByTicker(strings.ToUpper(strings.TrimSpace(ticker)), startDate, endDate)
}

package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/carmitra/carmitra/internal/domain"
	"github.com/carmitra/carmitra/internal/repository"
)

// DealershipService derives dealership rollups from stored reviews. It holds
// no state of its own; every call recomputes from the review store.
type DealershipService struct {
	reviews repository.ReviewRepository
	logger  *slog.Logger
}

// NewDealershipService creates a new dealership service.
func NewDealershipService(reviews repository.ReviewRepository, logger *slog.Logger) *DealershipService {
	return &DealershipService{reviews: reviews, logger: logger}
}

// ListDealerships returns dealership rollups matching filter, best sales
// rating first.
func (s *DealershipService) ListDealerships(ctx context.Context, filter domain.DealershipFilter) ([]domain.Dealership, error) {
	filter.City = strings.TrimSpace(filter.City)
	filter.Brand = strings.TrimSpace(filter.Brand)

	reviews, err := s.reviews.ListForDealerships(ctx, filter.City)
	if err != nil {
		return nil, fmt.Errorf("list dealerships: %w", err)
	}

	dealerships := domain.RollUpDealerships(reviews, filter)
	s.logger.DebugContext(ctx, "dealerships aggregated",
		slog.Int("reviews", len(reviews)),
		slog.Int("dealerships", len(dealerships)),
	)
	return dealerships, nil
}

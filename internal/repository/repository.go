package repository

import (
	"context"
	"time"

	"github.com/carmitra/carmitra/internal/domain"
)

// ReviewRepository persists reviews. Reviews are append-only: there is no
// update or delete.
type ReviewRepository interface {
	// Create inserts a new review.
	Create(ctx context.Context, review *domain.Review) error

	// GetByID retrieves a review by its identifier.
	GetByID(ctx context.Context, id string) (*domain.Review, error)

	// List returns every review, newest first.
	List(ctx context.Context) ([]domain.Review, error)

	// Search returns reviews whose car model, dealership name or city contains
	// query, ignoring case. Newest first.
	Search(ctx context.Context, query string) ([]domain.Review, error)

	// ListForDealerships returns the rollup projection of every review, or of
	// the reviews whose city equals city ignoring case when city is non-empty.
	ListForDealerships(ctx context.Context, city string) ([]domain.DealershipReview, error)
}

// GuideUpdate carries the fields of a partial guide update. Nil fields are
// left unchanged.
type GuideUpdate struct {
	Title      *string
	Summary    *string
	Content    *string
	Category   *string
	Tags       *[]string
	AuthorName *string
	ReadTime   *int
}

// GuideRepository persists guides.
type GuideRepository interface {
	// Create inserts a new guide.
	Create(ctx context.Context, guide *domain.Guide) error

	// GetByUUID retrieves a guide by its UUID.
	GetByUUID(ctx context.Context, uuid string) (*domain.Guide, error)

	// List returns guide summaries, newest publish date first.
	List(ctx context.Context) ([]domain.GuideSummary, error)

	// Update applies update and sets lastUpdated, returning the stored guide.
	Update(ctx context.Context, uuid string, update GuideUpdate, lastUpdated time.Time) (*domain.Guide, error)

	// Delete removes a guide by its UUID.
	Delete(ctx context.Context, uuid string) error
}

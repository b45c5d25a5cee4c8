package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carmitra/carmitra/internal/domain"
	"github.com/carmitra/carmitra/internal/repository"
	apperrors "github.com/carmitra/carmitra/pkg/errors"
	"github.com/carmitra/carmitra/pkg/validator"
)

// CreateReviewInput is a review submission. Field order is the order in which
// fields are checked; the first failure is reported.
type CreateReviewInput struct {
	CarModel              string     `json:"carModel" validate:"required" msg:"Car model is required"`
	Comment               string     `json:"comment" validate:"required" msg:"Review comment is required"`
	DealershipName        string     `json:"dealershipName" validate:"required" msg:"Dealership name is required"`
	City                  string     `json:"city" validate:"required" msg:"City is required"`
	Variant               string     `json:"variant" validate:"required" msg:"Variant is required"`
	PurchaseDate          string     `json:"purchaseDate" validate:"purchasedate"`
	Rating                *float64   `json:"rating" validate:"required,gte=1,lte=5,whole" msg:"Rating must be a number between 1 and 5"`
	SalesExperienceRating *float64   `json:"salesExperienceRating" validate:"required,gte=1,lte=5,whole" msg:"Sales experience rating must be a number between 1 and 5"`
	Pros                  StringList `json:"pros" validate:"required" msg:"Pros must be an array of strings"`
	Cons                  StringList `json:"cons" validate:"required" msg:"Cons must be an array of strings"`
	FuelEfficiency        *float64   `json:"fuelEfficiency" validate:"required,gte=0" msg:"Fuel efficiency must be a positive number"`
	PricePaid             *float64   `json:"pricePaid" validate:"required,gte=0" msg:"Price paid must be a positive number"`
	OwnershipDuration     int        `json:"ownershipDuration" validate:"gte=0" msg:"Ownership duration must be a non-negative number of months"`
}

// StringList is a JSON array of strings. Any other JSON shape, including null
// or an array holding a non-string, decodes to nil so that the field fails
// its required check in order with the other fields.
type StringList []string

// UnmarshalJSON implements json.Unmarshaler.
func (l *StringList) UnmarshalJSON(data []byte) error {
	*l = nil
	var items []any
	if err := json.Unmarshal(data, &items); err != nil || items == nil {
		return nil
	}
	list := make(StringList, 0, len(items))
	for _, item := range items {
		str, ok := item.(string)
		if !ok {
			return nil
		}
		list = append(list, str)
	}
	*l = list
	return nil
}

// normalize trims every string field in place.
func (in *CreateReviewInput) normalize() {
	in.CarModel = strings.TrimSpace(in.CarModel)
	in.Comment = strings.TrimSpace(in.Comment)
	in.DealershipName = strings.TrimSpace(in.DealershipName)
	in.City = strings.TrimSpace(in.City)
	in.Variant = strings.TrimSpace(in.Variant)
	in.PurchaseDate = strings.TrimSpace(in.PurchaseDate)
}

// ReviewService implements the business logic for review operations.
type ReviewService struct {
	repo      repository.ReviewRepository
	publisher EventPublisher
	logger    *slog.Logger
	now       Clock
}

// NewReviewService creates a new review service. publisher may be nil.
func NewReviewService(repo repository.ReviewRepository, publisher EventPublisher, logger *slog.Logger) *ReviewService {
	return &ReviewService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       systemClock,
	}
}

// ListReviews returns every review, newest first.
func (s *ReviewService) ListReviews(ctx context.Context) ([]domain.Review, error) {
	reviews, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return reviews, nil
}

// GetReview returns the review with the given id.
func (s *ReviewService) GetReview(ctx context.Context, id string) (*domain.Review, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperrors.InvalidArgument("Review ID is required")
	}
	if !isUUID(id) {
		return nil, apperrors.NotFound("Review", id)
	}

	review, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get review: %w", err)
	}
	return review, nil
}

// SearchReviews returns reviews whose car model, dealership name or city
// contains query, ignoring case. A blank query lists every review.
func (s *ReviewService) SearchReviews(ctx context.Context, query string) ([]domain.Review, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return s.ListReviews(ctx)
	}

	reviews, err := s.repo.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("search reviews: %w", err)
	}
	return reviews, nil
}

// CreateReview validates and stores a new review.
func (s *ReviewService) CreateReview(ctx context.Context, input CreateReviewInput) (*domain.Review, error) {
	input.normalize()
	if err := validator.ValidateCtx(withClock(ctx, s.now), input); err != nil {
		return nil, toValidationError(err)
	}

	review := &domain.Review{
		ID:                    uuid.NewString(),
		CarModel:              input.CarModel,
		Rating:                int(*input.Rating),
		Comment:               input.Comment,
		DealershipName:        input.DealershipName,
		City:                  input.City,
		Variant:               input.Variant,
		PurchaseDate:          input.PurchaseDate,
		SalesExperienceRating: int(*input.SalesExperienceRating),
		PricePaid:             *input.PricePaid,
		OwnershipDuration:     input.OwnershipDuration,
		Pros:                  domain.CleanList(input.Pros),
		Cons:                  domain.CleanList(input.Cons),
		FuelEfficiency:        *input.FuelEfficiency,
		CreatedAt:             s.now().UTC(),
	}

	if err := s.repo.Create(ctx, review); err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}

	s.logger.InfoContext(ctx, "review created",
		slog.String("review_id", review.ID),
		slog.String("dealership", review.DealershipName),
		slog.String("city", review.City),
	)

	if s.publisher != nil {
		reportPublish(ctx, s.logger, s.publisher.PublishReviewCreated(ctx, review),
			slog.String("review_id", review.ID))
	}

	return review, nil
}

// toValidationError converts a struct validation failure into a 400 carrying
// the first failing field's message.
func toValidationError(err error) error {
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		return apperrors.Validation(ve.First())
	}
	return apperrors.Internal(err)
}

// isUUID reports whether s is a UUID in canonical 8-4-4-4-12 form.
func isUUID(s string) bool {
	return len(s) == 36 && uuid.Validate(s) == nil
}

package service

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/carmitra/carmitra/internal/domain"
	"github.com/carmitra/carmitra/internal/repository"
	apperrors "github.com/carmitra/carmitra/pkg/errors"
	"github.com/carmitra/carmitra/pkg/validator"
)

// CreateGuideInput is a new guide. Only title, summary and content are
// required; the rest take defaults.
type CreateGuideInput struct {
	Title      string   `json:"title" validate:"required" msg:"Title is required"`
	Summary    string   `json:"summary" validate:"required" msg:"Summary is required"`
	Content    string   `json:"content" validate:"required" msg:"Content is required"`
	Category   string   `json:"category"`
	Tags       []string `json:"tags"`
	AuthorName string   `json:"authorName"`
	ReadTime   *int     `json:"readTime" validate:"omitempty,gte=1" msg:"Read time must be a positive number of minutes"`
}

// UpdateGuideInput is a partial guide update. Nil fields are left unchanged;
// supplied string fields must not be blank.
type UpdateGuideInput struct {
	Title      *string   `json:"title" validate:"omitempty,notblank" msg:"Title cannot be empty"`
	Summary    *string   `json:"summary" validate:"omitempty,notblank" msg:"Summary cannot be empty"`
	Content    *string   `json:"content" validate:"omitempty,notblank" msg:"Content cannot be empty"`
	Category   *string   `json:"category" validate:"omitempty,notblank" msg:"Category cannot be empty"`
	Tags       *[]string `json:"tags"`
	AuthorName *string   `json:"authorName" validate:"omitempty,notblank" msg:"Author name cannot be empty"`
	ReadTime   *int      `json:"readTime" validate:"omitempty,gte=1" msg:"Read time must be a positive number of minutes"`
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// GuideService implements the business logic for guide operations.
type GuideService struct {
	repo      repository.GuideRepository
	publisher EventPublisher
	logger    *slog.Logger
	now       Clock
}

// NewGuideService creates a new guide service. publisher may be nil.
func NewGuideService(repo repository.GuideRepository, publisher EventPublisher, logger *slog.Logger) *GuideService {
	return &GuideService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
		now:       systemClock,
	}
}

// ListGuides returns guide summaries, newest first.
func (s *GuideService) ListGuides(ctx context.Context) ([]domain.GuideSummary, error) {
	guides, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list guides: %w", err)
	}
	return guides, nil
}

// checkGuideUUID rejects a blank uuid and reports anything that cannot be a
// stored guide's UUID as not found.
func checkGuideUUID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperrors.InvalidArgument("Guide UUID is required")
	}
	if !isUUID(id) {
		return "", apperrors.NotFound("Guide", id)
	}
	return id, nil
}

// GetGuide returns the full guide with the given UUID.
func (s *GuideService) GetGuide(ctx context.Context, id string) (*domain.Guide, error) {
	id, err := checkGuideUUID(id)
	if err != nil {
		return nil, err
	}

	guide, err := s.repo.GetByUUID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get guide: %w", err)
	}
	return guide, nil
}

// CreateGuide validates input, applies defaults and stores a new guide.
func (s *GuideService) CreateGuide(ctx context.Context, input CreateGuideInput) (*domain.Guide, error) {
	input.Title = strings.TrimSpace(input.Title)
	input.Summary = strings.TrimSpace(input.Summary)
	input.Content = strings.TrimSpace(input.Content)
	if err := validator.Validate(input); err != nil {
		return nil, toValidationError(err)
	}

	now := s.now().UTC()
	guide := &domain.Guide{
		UUID:        uuid.NewString(),
		Title:       input.Title,
		Summary:     input.Summary,
		Content:     input.Content,
		Category:    cmp.Or(strings.TrimSpace(input.Category), domain.DefaultGuideCategory),
		Tags:        domain.UniqueTags(input.Tags),
		AuthorName:  cmp.Or(strings.TrimSpace(input.AuthorName), domain.DefaultGuideAuthor),
		PublishDate: now,
		LastUpdated: now,
		ReadTime:    domain.EstimateReadTime(input.Content),
	}
	if input.ReadTime != nil {
		guide.ReadTime = *input.ReadTime
	}

	if err := s.repo.Create(ctx, guide); err != nil {
		return nil, fmt.Errorf("create guide: %w", err)
	}

	s.logger.InfoContext(ctx, "guide created",
		slog.String("guide_uuid", guide.UUID),
		slog.String("title", guide.Title),
	)

	if s.publisher != nil {
		reportPublish(ctx, s.logger, s.publisher.PublishGuideCreated(ctx, guide),
			slog.String("guide_uuid", guide.UUID))
	}

	return guide, nil
}

// UpdateGuide merges the supplied fields into the guide and refreshes its
// lastUpdated time. The UUID and publish date never change.
func (s *GuideService) UpdateGuide(ctx context.Context, id string, input UpdateGuideInput) (*domain.Guide, error) {
	id, err := checkGuideUUID(id)
	if err != nil {
		return nil, err
	}

	input.Title = trimPtr(input.Title)
	input.Summary = trimPtr(input.Summary)
	input.Content = trimPtr(input.Content)
	input.Category = trimPtr(input.Category)
	input.AuthorName = trimPtr(input.AuthorName)
	if err := validator.Validate(input); err != nil {
		return nil, toValidationError(err)
	}

	update := repository.GuideUpdate{
		Title:      input.Title,
		Summary:    input.Summary,
		Content:    input.Content,
		Category:   input.Category,
		AuthorName: input.AuthorName,
		ReadTime:   input.ReadTime,
	}
	if input.Tags != nil {
		tags := domain.UniqueTags(*input.Tags)
		update.Tags = &tags
	}

	guide, err := s.repo.Update(ctx, id, update, s.now().UTC())
	if err != nil {
		return nil, fmt.Errorf("update guide: %w", err)
	}

	s.logger.InfoContext(ctx, "guide updated", slog.String("guide_uuid", guide.UUID))

	if s.publisher != nil {
		reportPublish(ctx, s.logger, s.publisher.PublishGuideUpdated(ctx, guide),
			slog.String("guide_uuid", guide.UUID))
	}

	return guide, nil
}

// DeleteGuide removes the guide with the given UUID.
func (s *GuideService) DeleteGuide(ctx context.Context, id string) error {
	id, err := checkGuideUUID(id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete guide: %w", err)
	}

	s.logger.InfoContext(ctx, "guide deleted", slog.String("guide_uuid", id))

	if s.publisher != nil {
		reportPublish(ctx, s.logger, s.publisher.PublishGuideDeleted(ctx, id),
			slog.String("guide_uuid", id))
	}

	return nil
}

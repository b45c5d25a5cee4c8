package service

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/carmitra/carmitra/internal/domain"
	"github.com/carmitra/carmitra/internal/repository"
)

// --- Mock review repository ---

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	args := m.Called(ctx, review)
	return args.Error(0)
}

func (m *mockReviewRepository) GetByID(ctx context.Context, id string) (*domain.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Review), args.Error(1)
}

func (m *mockReviewRepository) List(ctx context.Context) ([]domain.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) Search(ctx context.Context, query string) ([]domain.Review, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Review), args.Error(1)
}

func (m *mockReviewRepository) ListForDealerships(ctx context.Context, city string) ([]domain.DealershipReview, error) {
	args := m.Called(ctx, city)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DealershipReview), args.Error(1)
}

// --- Mock guide repository ---

type mockGuideRepository struct {
	mock.Mock
}

func (m *mockGuideRepository) Create(ctx context.Context, guide *domain.Guide) error {
	args := m.Called(ctx, guide)
	return args.Error(0)
}

func (m *mockGuideRepository) GetByUUID(ctx context.Context, uuid string) (*domain.Guide, error) {
	args := m.Called(ctx, uuid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Guide), args.Error(1)
}

func (m *mockGuideRepository) List(ctx context.Context) ([]domain.GuideSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.GuideSummary), args.Error(1)
}

func (m *mockGuideRepository) Update(ctx context.Context, uuid string, update repository.GuideUpdate, lastUpdated time.Time) (*domain.Guide, error) {
	args := m.Called(ctx, uuid, update, lastUpdated)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Guide), args.Error(1)
}

func (m *mockGuideRepository) Delete(ctx context.Context, uuid string) error {
	args := m.Called(ctx, uuid)
	return args.Error(0)
}

// --- Mock event publisher ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishReviewCreated(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
}

func (m *mockPublisher) PublishGuideCreated(ctx context.Context, guide *domain.Guide) error {
	return m.Called(ctx, guide).Error(0)
}

func (m *mockPublisher) PublishGuideUpdated(ctx context.Context, guide *domain.Guide) error {
	return m.Called(ctx, guide).Error(0)
}

func (m *mockPublisher) PublishGuideDeleted(ctx context.Context, uuid string) error {
	return m.Called(ctx, uuid).Error(0)
}

// --- helpers ---

var fixedNow = time.Date(2025, time.March, 15, 10, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carmitra/carmitra/internal/domain"
	"github.com/carmitra/carmitra/internal/event"
	"github.com/carmitra/carmitra/internal/repository"
	"github.com/carmitra/carmitra/internal/service"
	"github.com/carmitra/carmitra/pkg/health"
)

// ============================================================================
// Mock repositories
// ============================================================================

type mockReviewRepository struct {
	mock.Mock
}

func (m *mockReviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return m.Called(ctx, review).Error(0)
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

type mockGuideRepository struct {
	mock.Mock
}

func (m *mockGuideRepository) Create(ctx context.Context, guide *domain.Guide) error {
	return m.Called(ctx, guide).Error(0)
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
	return m.Called(ctx, uuid).Error(0)
}

// ============================================================================
// Test helpers
// ============================================================================

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testEnv struct {
	reviews *mockReviewRepository
	guides  *mockGuideRepository
	router  http.Handler
}

// newTestEnv builds the production router over mock repositories with event
// publishing disabled.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := testLogger()
	reviews := &mockReviewRepository{}
	guides := &mockGuideRepository{}
	events := event.NewProducer(nil, logger)

	router := NewRouter(RouterConfig{
		ServiceName:        "carmitra-test",
		CORSAllowedOrigins: []string{"*"},
		PprofAllowedCIDRs:  []string{"127.0.0.0/8"},
		ExposeErrorDetails: true,
	}, Services{
		Reviews:     service.NewReviewService(reviews, events, logger),
		Guides:      service.NewGuideService(guides, events, logger),
		Dealerships: service.NewDealershipService(reviews, logger),
	}, health.NewHandler(), logger)

	t.Cleanup(func() {
		reviews.AssertExpectations(t)
		guides.AssertExpectations(t)
	})
	return &testEnv{reviews: reviews, guides: guides, router: router}
}

func (e *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func (e *testEnv) doJSON(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	return e.do(method, target, buf.String())
}

// envelope decodes an envelope response, keeping data raw for a second decode.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return env
}

package seed

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carmitra/carmitra/pkg/httpclient"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

var fixedNow = time.Date(2025, time.March, 15, 0, 0, 0, 0, time.UTC)

// fakeAPI records submissions and answers with the configured status.
type fakeAPI struct {
	mu          sync.Mutex
	reviews     []ReviewRequest
	guides      []GuideRequest
	healthCode  int
	guideStatus int
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/health":
		w.WriteHeader(f.healthCode)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	case r.Method == http.MethodPost && r.URL.Path == "/api/cars/reviews":
		var rv ReviewRequest
		_ = json.NewDecoder(r.Body).Decode(&rv)
		f.mu.Lock()
		f.reviews = append(f.reviews, rv)
		f.mu.Unlock()
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"success":true,"message":"Review submitted successfully"}`))
	case r.Method == http.MethodPost && r.URL.Path == "/api/guides":
		var g GuideRequest
		_ = json.NewDecoder(r.Body).Decode(&g)
		f.mu.Lock()
		f.guides = append(f.guides, g)
		f.mu.Unlock()
		w.WriteHeader(f.guideStatus)
		if f.guideStatus == http.StatusCreated {
			_, _ = w.Write([]byte(`{"success":true,"message":"Guide created successfully"}`))
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"message":"Title is required"}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func newTestSeeder(t *testing.T, api *fakeAPI) *Seeder {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	cfg := httpclient.DefaultConfig()
	cfg.MaxRetries = 0
	client := httpclient.NewCircuitBreakerClient(
		httpclient.New(cfg),
		httpclient.DefaultCircuitBreakerConfig("seed-test"),
		nil,
		testLogger(),
	)

	s := New(client, srv.URL+"/", testLogger())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestRun_SubmitsCatalogue(t *testing.T) {
	api := &fakeAPI{healthCode: http.StatusOK, guideStatus: http.StatusCreated}
	s := newTestSeeder(t, api)

	res, err := s.Run(context.Background(), Reviews(), Guides())
	require.NoError(t, err)

	assert.Equal(t, Result{Reviews: len(Reviews()), Guides: len(Guides())}, res)
	require.Len(t, api.reviews, len(Reviews()))
	require.Len(t, api.guides, len(Guides()))

	// 04/2023 to March 2025.
	assert.Equal(t, "Maruti Suzuki Swift", api.reviews[0].CarModel)
	assert.Equal(t, 23, api.reviews[0].OwnershipDuration)
	for _, rv := range api.reviews {
		assert.Greater(t, rv.OwnershipDuration, 0, rv.CarModel)
		assert.GreaterOrEqual(t, rv.Rating, 1)
		assert.LessOrEqual(t, rv.Rating, 5)
	}
}

func TestRun_CountsRejections(t *testing.T) {
	api := &fakeAPI{healthCode: http.StatusOK, guideStatus: http.StatusBadRequest}
	s := newTestSeeder(t, api)

	res, err := s.Run(context.Background(), Reviews()[:2], Guides())
	require.NoError(t, err)
	assert.Equal(t, Result{Reviews: 2, Guides: 0, Rejected: len(Guides())}, res)
}

func TestRun_SkipsInvalidPurchaseDate(t *testing.T) {
	api := &fakeAPI{healthCode: http.StatusOK, guideStatus: http.StatusCreated}
	s := newTestSeeder(t, api)

	future := Reviews()[0]
	future.PurchaseDate = "12/2099"
	malformed := Reviews()[1]
	malformed.PurchaseDate = "2023-01"

	res, err := s.Run(context.Background(), []ReviewRequest{future, malformed, Reviews()[2]}, nil)
	require.NoError(t, err)
	assert.Equal(t, Result{Reviews: 1, Rejected: 2}, res)
	require.Len(t, api.reviews, 1)
	assert.Equal(t, "Tata Nexon", api.reviews[0].CarModel)
}

func TestRun_APIUnavailable(t *testing.T) {
	api := &fakeAPI{healthCode: http.StatusServiceUnavailable}
	s := newTestSeeder(t, api)

	_, err := s.Run(context.Background(), Reviews(), Guides())
	require.Error(t, err)
	assert.Empty(t, api.reviews)
}

func TestCatalogue_Complete(t *testing.T) {
	for _, rv := range Reviews() {
		assert.NotEmpty(t, rv.Pros, rv.CarModel)
		assert.NotEmpty(t, rv.Cons, rv.CarModel)
		assert.Zero(t, rv.OwnershipDuration, rv.CarModel)
	}
	for _, g := range Guides() {
		assert.NotEmpty(t, g.Title)
		assert.NotEmpty(t, g.Content)
	}
}

// Package seed submits the sample catalogue through the public API.
package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/carmitra/carmitra/internal/domain"
	"github.com/carmitra/carmitra/pkg/httpclient"
)

const remoteName = "carmitra-api"

// Client is the HTTP surface the seeder needs. *httpclient.CircuitBreakerClient
// implements it.
type Client interface {
	Get(ctx context.Context, url string) (*http.Response, error)
	Post(ctx context.Context, url, contentType string, body io.Reader) (*http.Response, error)
}

// Result counts the outcome of a seed run.
type Result struct {
	Reviews  int
	Guides   int
	Rejected int
}

// Seeder posts reviews and guides to a running API.
type Seeder struct {
	client  Client
	baseURL string
	logger  *slog.Logger
	now     func() time.Time
}

// New creates a seeder targeting the API at baseURL.
func New(client Client, baseURL string, logger *slog.Logger) *Seeder {
	return &Seeder{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
		now:     time.Now,
	}
}

// Run checks the API is up, then submits every review and guide. Rejected
// submissions are logged and counted. Run stops early only when the API
// cannot be reached.
func (s *Seeder) Run(ctx context.Context, reviews []ReviewRequest, guides []GuideRequest) (Result, error) {
	var res Result

	if err := s.ping(ctx); err != nil {
		return res, err
	}

	for _, r := range reviews {
		ok, err := s.submitReview(ctx, r)
		if err != nil {
			return res, err
		}
		if ok {
			res.Reviews++
		} else {
			res.Rejected++
		}
	}

	for _, g := range guides {
		ok, err := s.submitGuide(ctx, g)
		if err != nil {
			return res, err
		}
		if ok {
			res.Guides++
		} else {
			res.Rejected++
		}
	}

	return res, nil
}

func (s *Seeder) ping(ctx context.Context) error {
	resp, err := s.client.Get(ctx, s.baseURL+"/health")
	if err != nil {
		return fmt.Errorf("reach api: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("api health: %w", httpclient.ParseResponseError(resp, remoteName))
	}
	_ = resp.Body.Close()
	return nil
}

// submitReview derives the ownership duration from the purchase date the way
// the submission form does, then posts the review.
func (s *Seeder) submitReview(ctx context.Context, r ReviewRequest) (bool, error) {
	now := s.now()
	if err := domain.CheckPurchaseDate(r.PurchaseDate, now); err != nil {
		s.logger.WarnContext(ctx, "skipping review with invalid purchase date",
			slog.String("car_model", r.CarModel),
			slog.String("purchase_date", r.PurchaseDate),
			slog.String("error", err.Error()),
		)
		return false, nil
	}
	r.OwnershipDuration = domain.OwnershipMonths(r.PurchaseDate, now)

	ok, err := s.post(ctx, "/api/cars/reviews", r, slog.String("car_model", r.CarModel))
	if ok {
		s.logger.InfoContext(ctx, "review submitted",
			slog.String("car_model", r.CarModel),
			slog.String("dealership", r.DealershipName),
			slog.String("owned_for", domain.FormatOwnership(r.OwnershipDuration)),
		)
	}
	return ok, err
}

func (s *Seeder) submitGuide(ctx context.Context, g GuideRequest) (bool, error) {
	ok, err := s.post(ctx, "/api/guides", g, slog.String("title", g.Title))
	if ok {
		s.logger.InfoContext(ctx, "guide created", slog.String("title", g.Title))
	}
	return ok, err
}

// post sends body as JSON. It reports false for a request the API rejected
// and an error only when the API is unreachable or failing.
func (s *Seeder) post(ctx context.Context, path string, body any, attr slog.Attr) (bool, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return false, fmt.Errorf("marshal %s body: %w", path, err)
	}

	resp, err := s.client.Post(ctx, s.baseURL+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		if errors.Is(err, httpclient.ErrCircuitOpen) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return false, fmt.Errorf("post %s: %w", path, err)
		}
		s.logger.ErrorContext(ctx, "submission failed", attr, slog.String("error", err.Error()))
		return false, nil
	}

	if resp.StatusCode != http.StatusCreated {
		rejected := httpclient.ParseResponseError(resp, remoteName)
		s.logger.WarnContext(ctx, "submission rejected", attr,
			slog.Int("status", resp.StatusCode),
			slog.String("error", rejected.Error()),
		)
		return false, nil
	}
	_ = resp.Body.Close()
	return true, nil
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carmitra/carmitra/internal/service"
	"github.com/carmitra/carmitra/pkg/httputil"
	"github.com/carmitra/carmitra/pkg/validator"
)

// ReviewHandler handles HTTP requests for car review endpoints.
type ReviewHandler struct {
	service       *service.ReviewService
	logger        *slog.Logger
	exposeDetails bool
}

// NewReviewHandler creates a new review HTTP handler.
func NewReviewHandler(svc *service.ReviewService, logger *slog.Logger, exposeDetails bool) *ReviewHandler {
	return &ReviewHandler{
		service:       svc,
		logger:        logger,
		exposeDetails: exposeDetails,
	}
}

// ListReviews handles GET /api/cars/reviews
func (h *ReviewHandler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.ListReviews(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// GetReview handles GET /api/cars/reviews/{id}
func (h *ReviewHandler) GetReview(w http.ResponseWriter, r *http.Request) {
	review, err := h.service.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, review)
}

// SearchReviews handles GET /api/cars/search?query=
func (h *ReviewHandler) SearchReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.service.SearchReviews(r.Context(), r.URL.Query().Get("query"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, reviews)
}

// CreateReview handles POST /api/cars/reviews
func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, httputil.MaxBodyBytes)

	var input service.CreateReviewInput
	if err := validator.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}

	review, err := h.service.CreateReview(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "Review submitted successfully", review)
}

package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/carmitra/carmitra/internal/service"
	"github.com/carmitra/carmitra/pkg/httputil"
	"github.com/carmitra/carmitra/pkg/validator"
)

// GuideHandler handles HTTP requests for buying guide endpoints.
type GuideHandler struct {
	service       *service.GuideService
	logger        *slog.Logger
	exposeDetails bool
}

// NewGuideHandler creates a new guide HTTP handler.
func NewGuideHandler(svc *service.GuideService, logger *slog.Logger, exposeDetails bool) *GuideHandler {
	return &GuideHandler{
		service:       svc,
		logger:        logger,
		exposeDetails: exposeDetails,
	}
}

// ListGuides handles GET /api/guides
func (h *GuideHandler) ListGuides(w http.ResponseWriter, r *http.Request) {
	guides, err := h.service.ListGuides(r.Context())
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, guides)
}

// GetGuide handles GET /api/guides/{uuid}
func (h *GuideHandler) GetGuide(w http.ResponseWriter, r *http.Request) {
	guide, err := h.service.GetGuide(r.Context(), chi.URLParam(r, "uuid"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, guide)
}

// CreateGuide handles POST /api/guides
func (h *GuideHandler) CreateGuide(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, httputil.MaxBodyBytes)

	var input service.CreateGuideInput
	if err := validator.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}

	guide, err := h.service.CreateGuide(r.Context(), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}
	httputil.WriteSuccess(w, http.StatusCreated, "Guide created successfully", guide)
}

// UpdateGuide handles PUT /api/guides/{uuid}
func (h *GuideHandler) UpdateGuide(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, httputil.MaxBodyBytes)

	var input service.UpdateGuideInput
	if err := validator.DecodeJSON(r, &input); err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}

	guide, err := h.service.UpdateGuide(r.Context(), chi.URLParam(r, "uuid"), input)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "Guide updated successfully", guide)
}

// DeleteGuide handles DELETE /api/guides/{uuid}
func (h *GuideHandler) DeleteGuide(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteGuide(r.Context(), chi.URLParam(r, "uuid")); err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}
	httputil.WriteSuccess(w, http.StatusOK, "Guide deleted successfully", nil)
}

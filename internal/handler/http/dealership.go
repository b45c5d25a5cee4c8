package http

import (
	"log/slog"
	"net/http"

	"github.com/carmitra/carmitra/internal/domain"
	"github.com/carmitra/carmitra/internal/service"
	"github.com/carmitra/carmitra/pkg/httputil"
)

// DealershipHandler serves dealership rollups.
type DealershipHandler struct {
	service       *service.DealershipService
	logger        *slog.Logger
	exposeDetails bool
}

// NewDealershipHandler creates a new dealership HTTP handler.
func NewDealershipHandler(svc *service.DealershipService, logger *slog.Logger, exposeDetails bool) *DealershipHandler {
	return &DealershipHandler{
		service:       svc,
		logger:        logger,
		exposeDetails: exposeDetails,
	}
}

// ListDealerships handles GET /api/dealerships?city=&brand=
func (h *DealershipHandler) ListDealerships(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	dealerships, err := h.service.ListDealerships(r.Context(), domain.DealershipFilter{
		City:  q.Get("city"),
		Brand: q.Get("brand"),
	})
	if err != nil {
		httputil.WriteError(w, r, err, h.logger, h.exposeDetails)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, dealerships)
}

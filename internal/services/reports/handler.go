package reports

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"smart-menu/internal/logger"
	"smart-menu/internal/web"
)

// Handler handles HTTP requests for sales reports
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new reports handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Sales handles GET /api/admin/reports?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Both parameters default to today.
func (h *Handler) Sales(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	from, err := parseDateParam(r.URL.Query().Get("from"))
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "from must be in YYYY-MM-DD format", requestID, h.logger)
		return
	}
	to, err := parseDateParam(r.URL.Query().Get("to"))
	if err != nil {
		web.WriteError(w, http.StatusBadRequest, "to must be in YYYY-MM-DD format", requestID, h.logger)
		return
	}
	if to.Before(from) {
		web.WriteError(w, http.StatusBadRequest, "to must not be before from", requestID, h.logger)
		return
	}

	report, err := h.service.Sales(r.Context(), from, to, requestID)
	if err != nil {
		h.logger.Error("report_failed", requestID, "Failed to build sales report", err, nil)
		web.WriteDomainError(w, err, requestID, h.logger)
		return
	}

	web.WriteJSON(w, http.StatusOK, report, h.logger)
}

func parseDateParam(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01-02", value)
}

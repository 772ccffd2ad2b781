package tracking

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"smart-menu/internal/logger"
	"smart-menu/internal/web"
)

// Handler handles HTTP requests for order tracking
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new tracking handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// GetOrderStatus handles GET /api/orders/{orderNumber}
func (h *Handler) GetOrderStatus(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	orderNumber := chi.URLParam(r, "orderNumber")
	if orderNumber == "" {
		web.WriteError(w, http.StatusBadRequest, "Order number is required", requestID, h.logger)
		return
	}

	resp, err := h.service.GetOrder(r.Context(), orderNumber, requestID)
	if err != nil {
		h.logger.Error("order_lookup_failed", requestID, "Failed to load order status", err, map[string]interface{}{
			"order_number": orderNumber,
		})
		web.WriteDomainError(w, err, requestID, h.logger)
		return
	}

	web.WriteJSON(w, http.StatusOK, resp, h.logger)
}

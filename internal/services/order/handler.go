package order

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"smart-menu/internal/logger"
	"smart-menu/internal/models"
	"smart-menu/internal/web"
)

// Handler handles HTTP requests for the order service
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new order handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// CreateOrder handles POST /api/orders
func (h *Handler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	var req models.PlaceOrderRequest
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&req); err != nil {
		h.logger.Error("validation_failed", requestID, "Failed to parse order request", err, nil)
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID, h.logger)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	resp, err := h.service.PlaceOrder(ctx, &req, requestID)
	if err != nil {
		h.logger.Error("order_creation_failed", requestID, "Failed to place order", err, map[string]interface{}{
			"table_id": req.TableID,
			"lines":    len(req.Lines),
		})
		web.WriteDomainError(w, err, requestID, h.logger)
		return
	}

	web.WriteJSON(w, http.StatusCreated, resp, h.logger)
}

// UpdateStatus handles POST /api/admin/orders/{orderID}/status
func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	orderID, err := strconv.ParseInt(chi.URLParam(r, "orderID"), 10, 64)
	if err != nil || orderID <= 0 {
		web.WriteError(w, http.StatusBadRequest, "Invalid order id", requestID, h.logger)
		return
	}

	var req models.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID, h.logger)
		return
	}

	changedBy := req.ChangedBy
	if changedBy == "" {
		changedBy = "staff"
	}

	err = h.service.UpdateStatus(r.Context(), orderID, models.OrderStatus(req.Status), changedBy, requestID)
	if err != nil {
		h.logger.Error("status_update_failed", requestID, "Failed to update order status", err, map[string]interface{}{
			"order_id":   orderID,
			"new_status": req.Status,
		})
		web.WriteDomainError(w, err, requestID, h.logger)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true}, h.logger)
}

// SubmitFeedback handles POST /api/feedback
func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	var req models.SubmitFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID, h.logger)
		return
	}

	if err := h.service.SubmitFeedback(r.Context(), &req, requestID); err != nil {
		h.logger.Error("feedback_failed", requestID, "Failed to submit feedback", err, map[string]interface{}{
			"order_id": req.OrderID,
		})
		web.WriteDomainError(w, err, requestID, h.logger)
		return
	}

	web.WriteJSON(w, http.StatusCreated, map[string]bool{"ok": true}, h.logger)
}

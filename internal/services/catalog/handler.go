package catalog

import (
	"encoding/json"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"smart-menu/internal/logger"
	"smart-menu/internal/models"
	"smart-menu/internal/web"
)

// Handler handles HTTP requests for the menu catalog
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// TodayMenu handles GET /api/menu
func (h *Handler) TodayMenu(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	categories, err := h.service.TodayMenu(r.Context(), requestID)
	if err != nil {
		h.logger.Error("menu_load_failed", requestID, "Failed to load today's menu", err, nil)
		web.WriteDomainError(w, err, requestID, h.logger)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"date":       time.Now().Format("2006-01-02"),
		"categories": categories,
	}, h.logger)
}

type upsertDailyEntryRequest struct {
	MenuItemID   int64  `json:"menu_item_id"`
	Date         string `json:"date"`
	IsAvailable  bool   `json:"is_available"`
	SpecialPrice *int64 `json:"special_price,omitempty"`
}

// UpsertDailyEntry handles PUT /api/admin/daily-menu
func (h *Handler) UpsertDailyEntry(w http.ResponseWriter, r *http.Request) {
	requestID := chimiddleware.GetReqID(r.Context())

	var req upsertDailyEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.WriteError(w, http.StatusBadRequest, "Invalid JSON format", requestID, h.logger)
		return
	}

	if req.MenuItemID <= 0 {
		web.WriteError(w, http.StatusBadRequest, "menu_item_id is required", requestID, h.logger)
		return
	}

	date := time.Now()
	if req.Date != "" {
		parsed, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			web.WriteError(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format", requestID, h.logger)
			return
		}
		date = parsed
	}

	if req.SpecialPrice != nil && *req.SpecialPrice < 0 {
		web.WriteError(w, http.StatusBadRequest, "special_price must not be negative", requestID, h.logger)
		return
	}

	entry := &models.DailyMenuEntry{
		MenuItemID:   req.MenuItemID,
		Date:         date,
		IsAvailable:  req.IsAvailable,
		SpecialPrice: req.SpecialPrice,
	}

	if err := h.service.UpsertDailyEntry(r.Context(), entry, requestID); err != nil {
		h.logger.Error("daily_menu_update_failed", requestID, "Failed to update daily menu", err, map[string]interface{}{
			"menu_item_id": req.MenuItemID,
		})
		web.WriteDomainError(w, err, requestID, h.logger)
		return
	}

	web.WriteJSON(w, http.StatusOK, map[string]bool{"ok": true}, h.logger)
}

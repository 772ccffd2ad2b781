package order

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	"smart-menu/internal/logger"
	"smart-menu/internal/models"
)

func newTestRouter(store *fakeStore) *chi.Mux {
	log := logger.New("order-handler-test", "error")
	svc := NewService(store, nil, log)
	svc.randSeq = func() int { return 500 }
	h := NewHandler(svc, log)

	r := chi.NewRouter()
	r.Post("/api/orders", h.CreateOrder)
	r.Post("/api/feedback", h.SubmitFeedback)
	r.Post("/api/admin/orders/{orderID}/status", h.UpdateStatus)
	return r
}

func seededStore() *fakeStore {
	store := newFakeStore()
	store.tables[5] = &models.Table{ID: 5, Number: "T5"}
	store.dailyItems[10] = &models.DailyItem{
		MenuItemID:   10,
		Name:         "Special",
		BasePrice:    5000,
		SpecialPrice: intPtr(4000),
		PrepMinutes:  15,
	}
	return store
}

func TestCreateOrderHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		check      func(*testing.T, *models.PlaceOrderResponse)
	}{
		{
			name: "successful order",
			body: models.PlaceOrderRequest{
				TableID: 5,
				Lines:   []models.PlaceOrderLine{{MenuItemID: 10, Quantity: 2}},
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, resp *models.PlaceOrderResponse) {
				if resp.OrderNumber == "" {
					t.Error("order number is empty")
				}
				if resp.TotalAmount != 8000 {
					t.Errorf("total = %d, want 8000", resp.TotalAmount)
				}
				if resp.Status != "pending" {
					t.Errorf("status = %q, want pending", resp.Status)
				}
			},
		},
		{
			name: "dropped line reported",
			body: models.PlaceOrderRequest{
				TableID: 5,
				Lines: []models.PlaceOrderLine{
					{MenuItemID: 10, Quantity: 1},
					{MenuItemID: 404, Quantity: 1},
				},
			},
			wantStatus: http.StatusCreated,
			check: func(t *testing.T, resp *models.PlaceOrderResponse) {
				if len(resp.DroppedItems) != 1 || resp.DroppedItems[0] != 404 {
					t.Errorf("dropped items = %v, want [404]", resp.DroppedItems)
				}
			},
		},
		{
			name: "unknown table",
			body: models.PlaceOrderRequest{
				TableID: 77,
				Lines:   []models.PlaceOrderLine{{MenuItemID: 10, Quantity: 1}},
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name: "all lines unavailable",
			body: models.PlaceOrderRequest{
				TableID: 5,
				Lines:   []models.PlaceOrderLine{{MenuItemID: 404, Quantity: 1}},
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "empty cart",
			body:       models.PlaceOrderRequest{TableID: 5},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "invalid JSON",
			body:       "not json",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(seededStore())

			var body []byte
			switch v := tt.body.(type) {
			case string:
				body = []byte(v)
			default:
				body, _ = json.Marshal(v)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}

			if tt.check != nil {
				var resp models.PlaceOrderResponse
				if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
					t.Fatalf("failed to decode response: %v", err)
				}
				tt.check(t, &resp)
			}
		})
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		body       string
		wantStatus int
	}{
		{"valid transition", "/api/admin/orders/1/status", `{"status":"confirmed","changed_by":"waiter"}`, http.StatusOK},
		{"invalid status value", "/api/admin/orders/1/status", `{"status":"cooking"}`, http.StatusBadRequest},
		{"backward transition", "/api/admin/orders/2/status", `{"status":"pending"}`, http.StatusConflict},
		{"unknown order", "/api/admin/orders/99/status", `{"status":"confirmed"}`, http.StatusNotFound},
		{"bad order id", "/api/admin/orders/abc/status", `{"status":"confirmed"}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededStore()
			store.orders[1] = &models.Order{ID: 1, Number: "T5-20250101-100", Status: models.StatusPending}
			store.orders[2] = &models.Order{ID: 2, Number: "T5-20250101-101", Status: models.StatusReady}
			router := newTestRouter(store)

			req := httptest.NewRequest(http.MethodPost, tt.url, bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestSubmitFeedbackHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"delivered order", `{"order_id":1,"rating":5,"comments":"great"}`, http.StatusCreated},
		{"order still preparing", `{"order_id":2,"rating":4}`, http.StatusUnprocessableEntity},
		{"rating out of range", `{"order_id":1,"rating":6}`, http.StatusBadRequest},
		{"unknown order", `{"order_id":42,"rating":3}`, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := seededStore()
			store.orders[1] = &models.Order{ID: 1, Number: "T5-20250101-100", Status: models.StatusDelivered}
			store.orders[2] = &models.Order{ID: 2, Number: "T5-20250101-101", Status: models.StatusPreparing}
			router := newTestRouter(store)

			req := httptest.NewRequest(http.MethodPost, "/api/feedback", bytes.NewReader([]byte(tt.body)))
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d (body: %s)", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

package order

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"testing"
	"time"

	"smart-menu/internal/logger"
	"smart-menu/internal/models"
)

// fakeStore is an in-memory Store for service tests
type fakeStore struct {
	tables     map[int64]*models.Table
	dailyItems map[int64]*models.DailyItem
	orders     map[int64]*models.Order
	lines      map[int64][]models.OrderLine
	feedback   []models.Feedback

	nextID        int64
	dupCollisions int
	createErr     error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		tables:     make(map[int64]*models.Table),
		dailyItems: make(map[int64]*models.DailyItem),
		orders:     make(map[int64]*models.Order),
		lines:      make(map[int64][]models.OrderLine),
	}
}

func (f *fakeStore) GetTable(_ context.Context, id int64) (*models.Table, error) {
	table, ok := f.tables[id]
	if !ok {
		return nil, models.ErrTableNotFound
	}
	return table, nil
}

func (f *fakeStore) GetDailyItem(_ context.Context, menuItemID int64, _ time.Time) (*models.DailyItem, error) {
	item, ok := f.dailyItems[menuItemID]
	if !ok {
		return nil, models.ErrItemNotAvailable
	}
	return item, nil
}

func (f *fakeStore) CreateOrder(_ context.Context, order *models.Order, lines []models.OrderLine) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.dupCollisions > 0 {
		f.dupCollisions--
		return models.ErrDuplicateOrderNumber
	}
	f.nextID++
	order.ID = f.nextID
	order.CreatedAt = time.Now()
	stored := *order
	f.orders[order.ID] = &stored
	f.lines[order.ID] = append([]models.OrderLine(nil), lines...)
	return nil
}

func (f *fakeStore) GetOrderByID(_ context.Context, id int64) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, models.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeStore) UpdateOrderStatus(_ context.Context, id int64, status models.OrderStatus) error {
	order, ok := f.orders[id]
	if !ok {
		return models.ErrOrderNotFound
	}
	order.Status = status
	return nil
}

func (f *fakeStore) CreateFeedback(_ context.Context, fb *models.Feedback) error {
	f.feedback = append(f.feedback, *fb)
	return nil
}

// fakePublisher records published events
type fakePublisher struct {
	created []interface{}
	updates []interface{}
}

func (f *fakePublisher) PublishOrderCreated(_ context.Context, msg interface{}) error {
	f.created = append(f.created, msg)
	return nil
}

func (f *fakePublisher) PublishStatusUpdate(_ context.Context, msg interface{}) error {
	f.updates = append(f.updates, msg)
	return nil
}

func intPtr(v int64) *int64 { return &v }

func newTestService(store *fakeStore, pub EventPublisher) *Service {
	svc := NewService(store, pub, logger.New("order-service-test", "error"))
	svc.randSeq = func() int { return 123 }
	return svc
}

func TestPlaceOrderTotalsReconcile(t *testing.T) {
	store := newFakeStore()
	store.tables[5] = &models.Table{ID: 5, Number: "T5"}
	store.dailyItems[1] = &models.DailyItem{MenuItemID: 1, Name: "Soup", BasePrice: 1000, PrepMinutes: 10}
	store.dailyItems[2] = &models.DailyItem{MenuItemID: 2, Name: "Bread", BasePrice: 500, PrepMinutes: 5}

	svc := newTestService(store, nil)

	resp, err := svc.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		TableID: 5,
		Lines: []models.PlaceOrderLine{
			{MenuItemID: 1, Quantity: 2},
			{MenuItemID: 2, Quantity: 1},
		},
	}, "test")
	if err != nil {
		t.Fatalf("PlaceOrder() returned error: %v", err)
	}

	if resp.TotalAmount != 2500 {
		t.Errorf("total = %d, want 2500", resp.TotalAmount)
	}

	if len(store.orders) != 1 {
		t.Fatalf("expected 1 persisted order, got %d", len(store.orders))
	}

	lines := store.lines[1]
	if len(lines) != 2 {
		t.Fatalf("expected 2 persisted lines, got %d", len(lines))
	}

	var sum int64
	for i := range lines {
		sum += lines[i].Subtotal()
	}
	if sum != store.orders[1].TotalAmount {
		t.Errorf("line subtotals sum to %d but order total is %d", sum, store.orders[1].TotalAmount)
	}
}

func TestPlaceOrderSpecialPriceWins(t *testing.T) {
	store := newFakeStore()
	store.tables[5] = &models.Table{ID: 5, Number: "T5"}
	store.dailyItems[10] = &models.DailyItem{
		MenuItemID:   10,
		Name:         "Special",
		BasePrice:    5000,
		SpecialPrice: intPtr(4000),
		PrepMinutes:  15,
	}

	svc := newTestService(store, nil)

	resp, err := svc.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		TableID: 5,
		Lines:   []models.PlaceOrderLine{{MenuItemID: 10, Quantity: 2}},
	}, "test")
	if err != nil {
		t.Fatalf("PlaceOrder() returned error: %v", err)
	}

	pattern := fmt.Sprintf(`^T5-%s-\d{3}$`, time.Now().Format("20060102"))
	if !regexp.MustCompile(pattern).MatchString(resp.OrderNumber) {
		t.Errorf("order number %q does not match %q", resp.OrderNumber, pattern)
	}

	if resp.TotalAmount != 8000 {
		t.Errorf("total = %d, want 8000", resp.TotalAmount)
	}

	lines := store.lines[1]
	if len(lines) != 1 {
		t.Fatalf("expected 1 persisted line, got %d", len(lines))
	}
	if lines[0].UnitPrice != 4000 {
		t.Errorf("unit price = %d, want special price 4000", lines[0].UnitPrice)
	}
}

func TestPlaceOrderDropsUnavailableLines(t *testing.T) {
	store := newFakeStore()
	store.tables[1] = &models.Table{ID: 1, Number: "T1"}
	store.dailyItems[1] = &models.DailyItem{MenuItemID: 1, Name: "Soup", BasePrice: 1000}

	svc := newTestService(store, nil)

	resp, err := svc.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		TableID: 1,
		Lines: []models.PlaceOrderLine{
			{MenuItemID: 1, Quantity: 1},
			{MenuItemID: 99, Quantity: 3},
		},
	}, "test")
	if err != nil {
		t.Fatalf("PlaceOrder() returned error: %v", err)
	}

	if len(resp.DroppedItems) != 1 || resp.DroppedItems[0] != 99 {
		t.Errorf("dropped items = %v, want [99]", resp.DroppedItems)
	}
	if resp.TotalAmount != 1000 {
		t.Errorf("total = %d, want 1000 (dropped line excluded)", resp.TotalAmount)
	}
	if len(store.lines[1]) != 1 {
		t.Errorf("expected only the available line persisted, got %d lines", len(store.lines[1]))
	}
}

func TestPlaceOrderEmptyAfterFiltering(t *testing.T) {
	store := newFakeStore()
	store.tables[1] = &models.Table{ID: 1, Number: "T1"}

	svc := newTestService(store, nil)

	_, err := svc.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		TableID: 1,
		Lines:   []models.PlaceOrderLine{{MenuItemID: 42, Quantity: 1}},
	}, "test")
	if !errors.Is(err, models.ErrEmptyOrder) {
		t.Fatalf("expected ErrEmptyOrder, got %v", err)
	}

	if len(store.orders) != 0 {
		t.Errorf("expected no persisted orders, got %d", len(store.orders))
	}
}

func TestPlaceOrderUnknownTable(t *testing.T) {
	store := newFakeStore()
	svc := newTestService(store, nil)

	_, err := svc.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		TableID: 7,
		Lines:   []models.PlaceOrderLine{{MenuItemID: 1, Quantity: 1}},
	}, "test")
	if !errors.Is(err, models.ErrTableNotFound) {
		t.Fatalf("expected ErrTableNotFound, got %v", err)
	}
}

func TestPlaceOrderRetriesOnDuplicateNumber(t *testing.T) {
	store := newFakeStore()
	store.tables[1] = &models.Table{ID: 1, Number: "T1"}
	store.dailyItems[1] = &models.DailyItem{MenuItemID: 1, Name: "Soup", BasePrice: 1000}
	store.dupCollisions = 2

	svc := newTestService(store, nil)

	resp, err := svc.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		TableID: 1,
		Lines:   []models.PlaceOrderLine{{MenuItemID: 1, Quantity: 1}},
	}, "test")
	if err != nil {
		t.Fatalf("PlaceOrder() returned error after collisions: %v", err)
	}
	if resp.OrderNumber == "" {
		t.Error("expected order number after retry")
	}
}

func TestPlaceOrderGivesUpAfterMaxAttempts(t *testing.T) {
	store := newFakeStore()
	store.tables[1] = &models.Table{ID: 1, Number: "T1"}
	store.dailyItems[1] = &models.DailyItem{MenuItemID: 1, Name: "Soup", BasePrice: 1000}
	store.dupCollisions = maxNumberAttempts + 1

	svc := newTestService(store, nil)

	_, err := svc.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		TableID: 1,
		Lines:   []models.PlaceOrderLine{{MenuItemID: 1, Quantity: 1}},
	}, "test")
	if err == nil {
		t.Fatal("expected error when every attempt collides")
	}
	if !errors.Is(err, models.ErrDuplicateOrderNumber) {
		t.Errorf("expected wrapped ErrDuplicateOrderNumber, got %v", err)
	}
}

func TestPlaceOrderPublishesEvent(t *testing.T) {
	store := newFakeStore()
	store.tables[1] = &models.Table{ID: 1, Number: "T1"}
	store.dailyItems[1] = &models.DailyItem{MenuItemID: 1, Name: "Soup", BasePrice: 1000}
	pub := &fakePublisher{}

	svc := newTestService(store, pub)

	_, err := svc.PlaceOrder(context.Background(), &models.PlaceOrderRequest{
		TableID: 1,
		Lines:   []models.PlaceOrderLine{{MenuItemID: 1, Quantity: 1}},
	}, "test")
	if err != nil {
		t.Fatalf("PlaceOrder() returned error: %v", err)
	}

	if len(pub.created) != 1 {
		t.Fatalf("expected 1 order created event, got %d", len(pub.created))
	}
	msg, ok := pub.created[0].(models.OrderCreatedMessage)
	if !ok {
		t.Fatalf("unexpected message type %T", pub.created[0])
	}
	if msg.TableNumber != "T1" || msg.TotalAmount != 1000 {
		t.Errorf("unexpected event payload: %+v", msg)
	}
}

func TestUpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   models.OrderStatus
		newStatus models.OrderStatus
		wantErr   error
	}{
		{"forward step", models.StatusPending, models.StatusConfirmed, nil},
		{"forward jump", models.StatusPending, models.StatusPreparing, nil},
		{"cancel from preparing", models.StatusPreparing, models.StatusCancelled, nil},
		{"backward", models.StatusReady, models.StatusPreparing, models.ErrInvalidTransition},
		{"out of delivered", models.StatusDelivered, models.StatusCancelled, models.ErrInvalidTransition},
		{"out of cancelled", models.StatusCancelled, models.StatusPending, models.ErrInvalidTransition},
		{"unknown status", models.StatusPending, "cooking", models.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := newFakeStore()
			store.orders[1] = &models.Order{ID: 1, Number: "T1-20250101-100", Status: tt.current}
			pub := &fakePublisher{}
			svc := newTestService(store, pub)

			err := svc.UpdateStatus(context.Background(), 1, tt.newStatus, "waiter", "test")
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("UpdateStatus() = %v, want %v", err, tt.wantErr)
				}
				if store.orders[1].Status != tt.current {
					t.Errorf("status changed to %s despite rejected transition", store.orders[1].Status)
				}
				return
			}

			if err != nil {
				t.Fatalf("UpdateStatus() returned error: %v", err)
			}
			if store.orders[1].Status != tt.newStatus {
				t.Errorf("status = %s, want %s", store.orders[1].Status, tt.newStatus)
			}
			if len(pub.updates) != 1 {
				t.Errorf("expected 1 status update event, got %d", len(pub.updates))
			}
		})
	}
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	svc := newTestService(newFakeStore(), nil)

	err := svc.UpdateStatus(context.Background(), 404, models.StatusConfirmed, "waiter", "test")
	if !errors.Is(err, models.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestSubmitFeedback(t *testing.T) {
	store := newFakeStore()
	store.orders[1] = &models.Order{ID: 1, Number: "T1-20250101-100", Status: models.StatusDelivered}
	store.orders[2] = &models.Order{ID: 2, Number: "T1-20250101-101", Status: models.StatusPreparing}

	svc := newTestService(store, nil)

	// Delivered order accepts feedback
	err := svc.SubmitFeedback(context.Background(), &models.SubmitFeedbackRequest{
		OrderID: 1, Rating: 5, Comments: "great",
	}, "test")
	if err != nil {
		t.Fatalf("SubmitFeedback() returned error: %v", err)
	}
	if len(store.feedback) != 1 {
		t.Fatalf("expected 1 feedback row, got %d", len(store.feedback))
	}

	// Order still preparing rejects feedback and writes nothing
	err = svc.SubmitFeedback(context.Background(), &models.SubmitFeedbackRequest{
		OrderID: 2, Rating: 4,
	}, "test")
	if !errors.Is(err, models.ErrFeedbackNotAllowed) {
		t.Fatalf("expected ErrFeedbackNotAllowed, got %v", err)
	}
	if len(store.feedback) != 1 {
		t.Errorf("feedback row created for non-delivered order")
	}

	// Rating outside 1..5 is rejected before the order lookup
	err = svc.SubmitFeedback(context.Background(), &models.SubmitFeedbackRequest{
		OrderID: 1, Rating: 6,
	}, "test")
	if !errors.Is(err, models.ErrInvalidRating) {
		t.Fatalf("expected ErrInvalidRating, got %v", err)
	}
}

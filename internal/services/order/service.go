package order

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"smart-menu/internal/logger"
	"smart-menu/internal/models"
)

// maxNumberAttempts bounds the order-number regeneration loop when the
// random suffix collides with an existing order.
const maxNumberAttempts = 5

// Store is the persistence interface the order service depends on.
// CreateOrder must write the order and all its lines atomically.
type Store interface {
	GetTable(ctx context.Context, id int64) (*models.Table, error)
	GetDailyItem(ctx context.Context, menuItemID int64, date time.Time) (*models.DailyItem, error)
	CreateOrder(ctx context.Context, order *models.Order, lines []models.OrderLine) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error
	CreateFeedback(ctx context.Context, fb *models.Feedback) error
}

// EventPublisher publishes order lifecycle events. Publishing is best
// effort: a broker failure never rolls back a committed order.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, msg interface{}) error
	PublishStatusUpdate(ctx context.Context, msg interface{}) error
}

// Service converts submitted carts into durable orders and applies
// staff status changes.
type Service struct {
	store     Store
	publisher EventPublisher
	logger    *logger.Logger
	now       func() time.Time
	randSeq   func() int
}

// NewService creates a new order service
func NewService(store Store, publisher EventPublisher, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		publisher: publisher,
		logger:    log,
		now:       time.Now,
		randSeq:   func() int { return 100 + rand.Intn(900) },
	}
}

// PlaceOrder validates the cart against today's menu, persists the
// order with its lines in one transaction and returns the generated
// order number. Lines whose menu item is not on today's menu are not
// persisted; their ids are reported back in DroppedItems.
func (s *Service) PlaceOrder(ctx context.Context, req *models.PlaceOrderRequest, requestID string) (*models.PlaceOrderResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	table, err := s.store.GetTable(ctx, req.TableID)
	if err != nil {
		if errors.Is(err, models.ErrTableNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to look up table: %w", err)
	}

	today := s.now()

	var lines []models.OrderLine
	var dropped []int64
	for _, reqLine := range req.Lines {
		item, err := s.store.GetDailyItem(ctx, reqLine.MenuItemID, today)
		if err != nil {
			if errors.Is(err, models.ErrItemNotAvailable) {
				dropped = append(dropped, reqLine.MenuItemID)
				continue
			}
			return nil, fmt.Errorf("failed to resolve menu item %d: %w", reqLine.MenuItemID, err)
		}

		lines = append(lines, models.OrderLine{
			MenuItemID:   item.MenuItemID,
			Name:         item.Name,
			Quantity:     reqLine.Quantity,
			UnitPrice:    item.EffectivePrice(),
			Instructions: reqLine.Instructions,
			PrepMinutes:  item.PrepMinutes,
		})
	}

	if len(lines) == 0 {
		return nil, models.ErrEmptyOrder
	}

	var total int64
	for i := range lines {
		total += lines[i].Subtotal()
	}

	order := &models.Order{
		TableID:     req.TableID,
		Status:      models.StatusPending,
		TotalAmount: total,
		Notes:       req.Notes,
	}

	// The 3-digit suffix can collide under load; the unique index on
	// order_number rejects the duplicate and we regenerate.
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		order.Number = models.GenerateOrderNumber(table.Number, today, s.randSeq())

		err = s.store.CreateOrder(ctx, order, lines)
		if err == nil {
			break
		}
		if !errors.Is(err, models.ErrDuplicateOrderNumber) {
			return nil, fmt.Errorf("failed to persist order: %w", err)
		}

		s.logger.Debug("order_number_collision", requestID,
			fmt.Sprintf("Order number %s already exists, regenerating", order.Number),
			map[string]interface{}{"attempt": attempt + 1})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to persist order after %d attempts: %w", maxNumberAttempts, err)
	}

	s.logger.Info("order_created", requestID, "Order created", map[string]interface{}{
		"order_number":  order.Number,
		"table_number":  table.Number,
		"total_amount":  total,
		"lines":         len(lines),
		"dropped_items": len(dropped),
	})

	if s.publisher != nil {
		msg := models.OrderCreatedMessage{
			OrderNumber: order.Number,
			TableNumber: table.Number,
			IsRoom:      table.IsRoom,
			Lines:       lines,
			TotalAmount: total,
			Notes:       req.Notes,
			CreatedAt:   order.CreatedAt,
		}
		if err := s.publisher.PublishOrderCreated(ctx, msg); err != nil {
			s.logger.Error("order_publish_failed", requestID,
				"Failed to publish order created event", err,
				map[string]interface{}{"order_number": order.Number})
		}
	}

	return &models.PlaceOrderResponse{
		OrderNumber:  order.Number,
		Status:       string(models.StatusPending),
		TotalAmount:  total,
		DroppedItems: dropped,
	}, nil
}

// UpdateStatus applies a staff status change. Transitions are
// forward-only; cancellation is allowed from any non-terminal status.
func (s *Service) UpdateStatus(ctx context.Context, orderID int64, newStatus models.OrderStatus, changedBy, requestID string) error {
	if !models.ValidStatus(newStatus) {
		return models.ErrInvalidStatus
	}

	order, err := s.store.GetOrderByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("failed to look up order: %w", err)
	}

	if !models.CanTransition(order.Status, newStatus) {
		return fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, order.Status, newStatus)
	}

	if err := s.store.UpdateOrderStatus(ctx, orderID, newStatus); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}

	s.logger.Info("status_updated", requestID, "Order status updated", map[string]interface{}{
		"order_number": order.Number,
		"old_status":   string(order.Status),
		"new_status":   string(newStatus),
		"changed_by":   changedBy,
	})

	if s.publisher != nil {
		msg := models.StatusUpdateMessage{
			OrderNumber: order.Number,
			OldStatus:   order.Status,
			NewStatus:   newStatus,
			ChangedBy:   changedBy,
			Timestamp:   s.now().UTC(),
		}
		if err := s.publisher.PublishStatusUpdate(ctx, msg); err != nil {
			s.logger.Error("status_publish_failed", requestID,
				"Failed to publish status update event", err,
				map[string]interface{}{"order_number": order.Number})
		}
	}

	return nil
}

// SubmitFeedback appends customer feedback for a delivered order
func (s *Service) SubmitFeedback(ctx context.Context, req *models.SubmitFeedbackRequest, requestID string) error {
	if req.Rating < 1 || req.Rating > 5 {
		return models.ErrInvalidRating
	}
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %v", models.ErrValidation, err)
	}

	order, err := s.store.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		if errors.Is(err, models.ErrOrderNotFound) {
			return err
		}
		return fmt.Errorf("failed to look up order: %w", err)
	}

	if order.Status != models.StatusDelivered {
		return models.ErrFeedbackNotAllowed
	}

	fb := &models.Feedback{
		OrderID:  req.OrderID,
		Rating:   req.Rating,
		Comments: req.Comments,
	}
	if err := s.store.CreateFeedback(ctx, fb); err != nil {
		return fmt.Errorf("failed to persist feedback: %w", err)
	}

	s.logger.Info("feedback_submitted", requestID, "Feedback submitted", map[string]interface{}{
		"order_number": order.Number,
		"rating":       req.Rating,
	})

	return nil
}

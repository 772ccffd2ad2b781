package tracking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"smart-menu/internal/database"
	"smart-menu/internal/logger"
	"smart-menu/internal/models"
)

// OrderStatusResponse is the customer-facing projection of an order
type OrderStatusResponse struct {
	OrderNumber         string             `json:"order_number"`
	Status              models.OrderStatus `json:"status"`
	Cancelled           bool               `json:"cancelled"`
	TotalAmount         int64              `json:"total_amount"`
	CreatedAt           time.Time          `json:"created_at"`
	EstimatedCompletion time.Time          `json:"estimated_completion"`
	EstimatedMinutes    int                `json:"estimated_minutes"`
	Timeline            []Stage            `json:"timeline"`
	Lines               []models.OrderLine `json:"lines"`
}

// Service computes read-only derived views of orders for customer
// tracking. It never mutates state.
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new tracking service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log,
	}
}

// GetOrder loads an order by its public order number and projects its
// status, estimated completion time and progress timeline.
func (s *Service) GetOrder(ctx context.Context, orderNumber, requestID string) (*OrderStatusResponse, error) {
	var order models.Order
	err := s.db.QueryRow(ctx, database.GetOrderByNumberSQL, orderNumber).Scan(
		&order.ID,
		&order.Number,
		&order.TableID,
		&order.Status,
		&order.TotalAmount,
		&order.Notes,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrOrderNotFound
		}
		s.logger.Error("db_query_failed", requestID, "Failed to query order", err, map[string]interface{}{
			"order_number": orderNumber,
		})
		return nil, fmt.Errorf("query order: %w", err)
	}

	lines, err := s.getOrderLines(ctx, order.ID, requestID)
	if err != nil {
		return nil, err
	}

	estimatedAt, estimatedMinutes := EstimatedCompletion(order.CreatedAt, lines)

	return &OrderStatusResponse{
		OrderNumber:         order.Number,
		Status:              order.Status,
		Cancelled:           order.Status == models.StatusCancelled,
		TotalAmount:         order.TotalAmount,
		CreatedAt:           order.CreatedAt,
		EstimatedCompletion: estimatedAt,
		EstimatedMinutes:    estimatedMinutes,
		Timeline:            StatusTimeline(order.Status),
		Lines:               lines,
	}, nil
}

func (s *Service) getOrderLines(ctx context.Context, orderID int64, requestID string) ([]models.OrderLine, error) {
	rows, err := s.db.Query(ctx, database.GetOrderItemsSQL, orderID)
	if err != nil {
		s.logger.Error("db_query_failed", requestID, "Failed to query order items", err, map[string]interface{}{
			"order_id": orderID,
		})
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	var lines []models.OrderLine
	for rows.Next() {
		var line models.OrderLine
		err := rows.Scan(
			&line.ID,
			&line.OrderID,
			&line.MenuItemID,
			&line.Name,
			&line.Quantity,
			&line.UnitPrice,
			&line.Instructions,
			&line.PrepMinutes,
		)
		if err != nil {
			s.logger.Error("db_scan_failed", requestID, "Failed to scan order item row", err, nil)
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return lines, nil
}

// HealthCheck checks the health of the database dependency
func (s *Service) HealthCheck(ctx context.Context) bool {
	if err := s.db.Ping(ctx); err != nil {
		s.logger.Error("health_check_failed", "", "Database ping failed", err, nil)
		return false
	}
	return true
}

package reports

import (
	"context"
	"fmt"
	"time"

	"smart-menu/internal/database"
	"smart-menu/internal/logger"
)

const topItemsLimit = 10

// SalesReport aggregates sales over a date range. Revenue counts only
// delivered orders; the status breakdown covers all orders.
type SalesReport struct {
	From             string           `json:"from"`
	To               string           `json:"to"`
	DeliveredRevenue int64            `json:"delivered_revenue"`
	DeliveredOrders  int              `json:"delivered_orders"`
	OrdersByStatus   map[string]int   `json:"orders_by_status"`
	TopItems         []ItemSalesEntry `json:"top_items"`
}

// ItemSalesEntry is one menu item's sales over the report range
type ItemSalesEntry struct {
	MenuItemID    int64  `json:"menu_item_id"`
	Name          string `json:"name"`
	TotalQuantity int    `json:"total_quantity"`
	TotalRevenue  int64  `json:"total_revenue"`
}

// Service computes sales reports for the admin panel
type Service struct {
	db     *database.DB
	logger *logger.Logger
}

// NewService creates a new reports service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log,
	}
}

// Sales builds the sales report for the inclusive date range [from, to]
func (s *Service) Sales(ctx context.Context, from, to time.Time, requestID string) (*SalesReport, error) {
	fromStr := from.Format("2006-01-02")
	toStr := to.Format("2006-01-02")

	report := &SalesReport{
		From: fromStr,
		To:   toStr,
		OrdersByStatus: map[string]int{
			"pending": 0, "confirmed": 0, "preparing": 0,
			"ready": 0, "delivered": 0, "cancelled": 0,
		},
	}

	err := s.db.QueryRow(ctx, database.DeliveredRevenueSQL, fromStr, toStr).Scan(
		&report.DeliveredRevenue,
		&report.DeliveredOrders,
	)
	if err != nil {
		return nil, fmt.Errorf("query delivered revenue: %w", err)
	}

	rows, err := s.db.Query(ctx, database.OrdersByStatusSQL, fromStr, toStr)
	if err != nil {
		return nil, fmt.Errorf("query orders by status: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("scan status count: %w", err)
		}
		report.OrdersByStatus[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate status counts: %w", err)
	}

	itemRows, err := s.db.Query(ctx, database.TopItemsSQL, fromStr, toStr, topItemsLimit)
	if err != nil {
		return nil, fmt.Errorf("query top items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var entry ItemSalesEntry
		err := itemRows.Scan(&entry.MenuItemID, &entry.Name, &entry.TotalQuantity, &entry.TotalRevenue)
		if err != nil {
			return nil, fmt.Errorf("scan top item: %w", err)
		}
		report.TopItems = append(report.TopItems, entry)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate top items: %w", err)
	}

	s.logger.Debug("report_built", requestID, "Sales report built", map[string]interface{}{
		"from": fromStr,
		"to":   toStr,
	})

	return report, nil
}

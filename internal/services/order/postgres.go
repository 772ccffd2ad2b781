package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"smart-menu/internal/database"
	"smart-menu/internal/models"
)

// uniqueViolation is the PostgreSQL error code for unique constraint
// violations
const uniqueViolation = "23505"

// PostgresStore implements Store on top of the PostgreSQL pool
type PostgresStore struct {
	db *database.DB
}

// NewPostgresStore creates a new PostgreSQL-backed order store
func NewPostgresStore(db *database.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) GetTable(ctx context.Context, id int64) (*models.Table, error) {
	var table models.Table
	err := s.db.QueryRow(ctx, database.GetTableSQL, id).Scan(
		&table.ID,
		&table.Number,
		&table.IsRoom,
		&table.Location,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrTableNotFound
		}
		return nil, fmt.Errorf("query table: %w", err)
	}
	return &table, nil
}

// GetDailyItem resolves a menu item against the daily menu for the
// given date. Items without an available daily menu entry report
// ErrItemNotAvailable.
func (s *PostgresStore) GetDailyItem(ctx context.Context, menuItemID int64, date time.Time) (*models.DailyItem, error) {
	var item models.DailyItem
	err := s.db.QueryRow(ctx, database.GetDailyItemSQL, menuItemID, date.Format("2006-01-02")).Scan(
		&item.MenuItemID,
		&item.Name,
		&item.BasePrice,
		&item.SpecialPrice,
		&item.PrepMinutes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrItemNotAvailable
		}
		return nil, fmt.Errorf("query daily item: %w", err)
	}
	return &item, nil
}

// CreateOrder writes the order and all its lines in a single
// transaction. A reader never observes the order without its lines.
func (s *PostgresStore) CreateOrder(ctx context.Context, order *models.Order, lines []models.OrderLine) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	err = tx.QueryRow(ctx, database.InsertOrderSQL,
		order.Number,
		order.TableID,
		string(order.Status),
		order.TotalAmount,
		order.Notes,
	).Scan(&order.ID, &order.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrDuplicateOrderNumber
		}
		return fmt.Errorf("insert order: %w", err)
	}

	for i := range lines {
		lines[i].OrderID = order.ID
		_, err = tx.Exec(ctx, database.InsertOrderItemSQL,
			order.ID,
			lines[i].MenuItemID,
			lines[i].Quantity,
			lines[i].UnitPrice,
			lines[i].Instructions,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	return tx.Commit(ctx)
}

func (s *PostgresStore) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.QueryRow(ctx, database.GetOrderByIDSQL, id).Scan(
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
		return nil, fmt.Errorf("query order: %w", err)
	}
	return &order, nil
}

func (s *PostgresStore) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	tag, err := s.db.Pool.Exec(ctx, database.UpdateOrderStatusSQL, string(status), id)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrOrderNotFound
	}
	return nil
}

func (s *PostgresStore) CreateFeedback(ctx context.Context, fb *models.Feedback) error {
	if err := s.db.Exec(ctx, database.InsertFeedbackSQL, fb.OrderID, fb.Rating, fb.Comments); err != nil {
		return fmt.Errorf("insert feedback: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

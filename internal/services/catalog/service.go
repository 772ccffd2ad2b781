package catalog

import (
	"context"
	"fmt"
	"time"

	"smart-menu/internal/database"
	"smart-menu/internal/logger"
	"smart-menu/internal/models"
)

// Service serves the customer-facing menu and lets staff publish the
// daily menu.
type Service struct {
	db     *database.DB
	logger *logger.Logger
	now    func() time.Time
}

// NewService creates a new catalog service
func NewService(db *database.DB, log *logger.Logger) *Service {
	return &Service{
		db:     db,
		logger: log,
		now:    time.Now,
	}
}

// TodayMenu returns the categories that have available items today,
// each with its items priced from the daily menu.
func (s *Service) TodayMenu(ctx context.Context, requestID string) ([]models.MenuCategory, error) {
	today := s.now().Format("2006-01-02")

	rows, err := s.db.Query(ctx, database.GetTodayCategoriesSQL, today)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	var categories []models.MenuCategory
	for rows.Next() {
		var cat models.MenuCategory
		if err := rows.Scan(&cat.ID, &cat.Name, &cat.Description); err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, cat)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate categories: %w", err)
	}

	for i := range categories {
		items, err := s.itemsForCategory(ctx, categories[i].ID, today)
		if err != nil {
			return nil, err
		}
		categories[i].Items = items
	}

	s.logger.Debug("menu_loaded", requestID, "Loaded today's menu", map[string]interface{}{
		"date":       today,
		"categories": len(categories),
	})

	return categories, nil
}

func (s *Service) itemsForCategory(ctx context.Context, categoryID int64, today string) ([]models.MenuEntry, error) {
	rows, err := s.db.Query(ctx, database.GetTodayItemsByCategorySQL, categoryID, today)
	if err != nil {
		return nil, fmt.Errorf("query menu items: %w", err)
	}
	defer rows.Close()

	var items []models.MenuEntry
	for rows.Next() {
		var entry models.MenuEntry
		var specialPrice *int64
		err := rows.Scan(
			&entry.MenuItemID,
			&entry.Name,
			&entry.Description,
			&entry.BasePrice,
			&specialPrice,
			&entry.PrepMinutes,
			&entry.IsFastFood,
		)
		if err != nil {
			return nil, fmt.Errorf("scan menu item: %w", err)
		}

		entry.Price = entry.BasePrice
		if specialPrice != nil {
			entry.Price = *specialPrice
			entry.HasDiscount = *specialPrice < entry.BasePrice
		}
		items = append(items, entry)
	}

	return items, rows.Err()
}

// UpsertDailyEntry publishes or updates the daily menu entry for one
// menu item and date.
func (s *Service) UpsertDailyEntry(ctx context.Context, entry *models.DailyMenuEntry, requestID string) error {
	var exists bool
	err := s.db.QueryRow(ctx, database.CheckMenuItemExistsSQL, entry.MenuItemID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check menu item: %w", err)
	}
	if !exists {
		return models.ErrMenuItemNotFound
	}

	err = s.db.Exec(ctx, database.UpsertDailyEntrySQL,
		entry.MenuItemID,
		entry.Date.Format("2006-01-02"),
		entry.IsAvailable,
		entry.SpecialPrice,
	)
	if err != nil {
		return fmt.Errorf("upsert daily menu entry: %w", err)
	}

	s.logger.Info("daily_menu_updated", requestID, "Daily menu entry updated", map[string]interface{}{
		"menu_item_id": entry.MenuItemID,
		"date":         entry.Date.Format("2006-01-02"),
		"is_available": entry.IsAvailable,
	})

	return nil
}

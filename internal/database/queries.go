package database

// Order queries
const (
	InsertOrderSQL = `
		INSERT INTO orders (order_number, table_id, status, total_amount, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	InsertOrderItemSQL = `
		INSERT INTO order_items (order_id, menu_item_id, quantity, unit_price, special_instructions)
		VALUES ($1, $2, $3, $4, $5)`

	UpdateOrderStatusSQL = `
		UPDATE orders SET status = $1, updated_at = NOW()
		WHERE id = $2`

	GetOrderByIDSQL = `
		SELECT id, order_number, table_id, status, total_amount, notes, created_at, updated_at
		FROM orders WHERE id = $1`

	GetOrderByNumberSQL = `
		SELECT id, order_number, table_id, status, total_amount, notes, created_at, updated_at
		FROM orders WHERE order_number = $1`

	GetOrderItemsSQL = `
		SELECT oi.id, oi.order_id, oi.menu_item_id, m.name, oi.quantity, oi.unit_price,
			   oi.special_instructions, m.preparation_time
		FROM order_items oi
		JOIN menu_items m ON oi.menu_item_id = m.id
		WHERE oi.order_id = $1
		ORDER BY oi.id ASC`

	InsertFeedbackSQL = `
		INSERT INTO feedback (order_id, rating, comments)
		VALUES ($1, $2, $3)`
)

// Catalog queries
const (
	GetTableSQL = `
		SELECT id, table_number, is_room, location
		FROM tables WHERE id = $1`

	GetDailyItemSQL = `
		SELECT m.id, m.name, m.price, dm.special_price, m.preparation_time
		FROM menu_items m
		JOIN daily_menu dm ON m.id = dm.menu_item_id
		WHERE m.id = $1 AND dm.date_available = $2 AND dm.is_available = TRUE`

	GetTodayCategoriesSQL = `
		SELECT DISTINCT c.id, c.name, c.description
		FROM categories c
		JOIN menu_items m ON c.id = m.category_id
		JOIN daily_menu dm ON m.id = dm.menu_item_id
		WHERE dm.date_available = $1 AND dm.is_available = TRUE
		ORDER BY c.name`

	GetTodayItemsByCategorySQL = `
		SELECT m.id, m.name, m.description, m.price, dm.special_price,
			   m.preparation_time, m.is_fast_food
		FROM menu_items m
		JOIN daily_menu dm ON m.id = dm.menu_item_id
		WHERE m.category_id = $1 AND dm.date_available = $2 AND dm.is_available = TRUE
		ORDER BY m.name`

	UpsertDailyEntrySQL = `
		INSERT INTO daily_menu (menu_item_id, date_available, is_available, special_price)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (menu_item_id, date_available) DO UPDATE SET
			is_available = EXCLUDED.is_available,
			special_price = EXCLUDED.special_price`

	CheckMenuItemExistsSQL = `
		SELECT EXISTS(SELECT 1 FROM menu_items WHERE id = $1)`
)

// Report queries
const (
	DeliveredRevenueSQL = `
		SELECT COALESCE(SUM(total_amount), 0)::bigint, COUNT(*)::int
		FROM orders
		WHERE status = 'delivered' AND created_at::date BETWEEN $1 AND $2`

	OrdersByStatusSQL = `
		SELECT status, COUNT(*)::int
		FROM orders
		WHERE created_at::date BETWEEN $1 AND $2
		GROUP BY status`

	TopItemsSQL = `
		SELECT m.id, m.name, SUM(oi.quantity)::int AS total_quantity,
			   SUM(oi.quantity * oi.unit_price)::bigint AS total_revenue
		FROM order_items oi
		JOIN menu_items m ON oi.menu_item_id = m.id
		JOIN orders o ON oi.order_id = o.id
		WHERE o.status = 'delivered' AND o.created_at::date BETWEEN $1 AND $2
		GROUP BY m.id, m.name
		ORDER BY total_quantity DESC
		LIMIT $3`
)

package models

import "time"

// Table represents a physical seating location identified by a QR code.
// Rooms use the same record with IsRoom set.
type Table struct {
	ID       int64  `json:"id"`
	Number   string `json:"table_number"`
	IsRoom   bool   `json:"is_room"`
	Location string `json:"location,omitempty"`
}

// Category groups menu items on the customer menu
type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// MenuItem represents a catalog item. Prices are in cents.
type MenuItem struct {
	ID          int64  `json:"id"`
	CategoryID  int64  `json:"category_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	PrepMinutes int    `json:"preparation_time"`
	IsFastFood  bool   `json:"is_fast_food"`
	IsAvailable bool   `json:"is_available"`
}

// DailyMenuEntry is the per-date availability and optional special
// price override for a menu item. Unique per (menu item, date).
type DailyMenuEntry struct {
	MenuItemID   int64     `json:"menu_item_id"`
	Date         time.Time `json:"date_available"`
	IsAvailable  bool      `json:"is_available"`
	SpecialPrice *int64    `json:"special_price,omitempty"`
}

// DailyItem is a menu item joined with its daily menu entry for one
// date, as resolved at order time.
type DailyItem struct {
	MenuItemID   int64
	Name         string
	BasePrice    int64
	SpecialPrice *int64
	PrepMinutes  int
}

// EffectivePrice returns the special price when set, else the base price.
func (d *DailyItem) EffectivePrice() int64 {
	if d.SpecialPrice != nil {
		return *d.SpecialPrice
	}
	return d.BasePrice
}

// MenuEntry is one item on the customer-facing menu for today
type MenuEntry struct {
	MenuItemID  int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	BasePrice   int64  `json:"base_price"`
	HasDiscount bool   `json:"has_discount"`
	PrepMinutes int    `json:"preparation_time"`
	IsFastFood  bool   `json:"is_fast_food"`
}

// MenuCategory is a category with its available items for today
type MenuCategory struct {
	ID          int64       `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Items       []MenuEntry `json:"items"`
}

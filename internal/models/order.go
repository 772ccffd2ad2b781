package models

import (
	"fmt"
	"time"
)

// OrderStatus represents the status of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusConfirmed OrderStatus = "confirmed"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
)

// MaxLineQuantity bounds the quantity of a single order line
const MaxLineQuantity = 20

// statusRank orders the non-cancelled statuses along the lifecycle
var statusRank = map[OrderStatus]int{
	StatusPending:   0,
	StatusConfirmed: 1,
	StatusPreparing: 2,
	StatusReady:     3,
	StatusDelivered: 4,
}

// ValidStatus reports whether s is one of the known status values
func ValidStatus(s OrderStatus) bool {
	if s == StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed from s
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransition reports whether an order may move from one status to
// another. Transitions are forward-only along
// pending -> confirmed -> preparing -> ready -> delivered; skipping
// intermediate stages is allowed, going backward is not. Cancellation
// is reachable from any non-terminal status.
func CanTransition(from, to OrderStatus) bool {
	if !ValidStatus(from) || !ValidStatus(to) {
		return false
	}
	if from.IsTerminal() {
		return false
	}
	if to == StatusCancelled {
		return true
	}
	return statusRank[to] > statusRank[from]
}

// Order represents a customer order. Amounts are in cents.
type Order struct {
	ID          int64       `json:"id,omitempty"`
	Number      string      `json:"order_number"`
	TableID     int64       `json:"table_id"`
	Status      OrderStatus `json:"status"`
	TotalAmount int64       `json:"total_amount"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at,omitempty"`
	UpdatedAt   time.Time   `json:"updated_at,omitempty"`
}

// OrderLine is one line of an order. The unit price is captured at
// order time and never recomputed.
type OrderLine struct {
	ID           int64  `json:"id,omitempty"`
	OrderID      int64  `json:"order_id,omitempty"`
	MenuItemID   int64  `json:"menu_item_id"`
	Name         string `json:"name,omitempty"`
	Quantity     int    `json:"quantity"`
	UnitPrice    int64  `json:"unit_price"`
	Instructions string `json:"special_instructions,omitempty"`
	PrepMinutes  int    `json:"-"`
}

// Subtotal returns quantity * unit price for the line
func (l *OrderLine) Subtotal() int64 {
	return int64(l.Quantity) * l.UnitPrice
}

// PlaceOrderRequest is the request to place a new order
type PlaceOrderRequest struct {
	TableID int64            `json:"table_id"`
	Lines   []PlaceOrderLine `json:"lines"`
	Notes   string           `json:"notes,omitempty"`
}

// PlaceOrderLine is one requested cart line
type PlaceOrderLine struct {
	MenuItemID   int64  `json:"menu_item_id"`
	Quantity     int    `json:"quantity"`
	Instructions string `json:"instructions,omitempty"`
}

// Validate checks the structural validity of the request. Availability
// of the referenced items is resolved later against the daily menu.
func (req *PlaceOrderRequest) Validate() error {
	if req.TableID <= 0 {
		return fmt.Errorf("table_id is required")
	}
	if len(req.Lines) == 0 {
		return fmt.Errorf("lines array cannot be empty")
	}
	for i, line := range req.Lines {
		if line.MenuItemID <= 0 {
			return fmt.Errorf("lines[%d].menu_item_id is required", i)
		}
		if line.Quantity < 1 || line.Quantity > MaxLineQuantity {
			return fmt.Errorf("lines[%d].quantity must be between 1 and %d", i, MaxLineQuantity)
		}
	}
	return nil
}

// PlaceOrderResponse reports the outcome of a placed order. Lines
// referencing items not on today's menu are not persisted; their menu
// item ids are reported in DroppedItems.
type PlaceOrderResponse struct {
	OrderNumber  string  `json:"order_number"`
	Status       string  `json:"status"`
	TotalAmount  int64   `json:"total_amount"`
	DroppedItems []int64 `json:"dropped_items,omitempty"`
}

// UpdateStatusRequest is the staff request to change an order's status
type UpdateStatusRequest struct {
	Status    string `json:"status"`
	ChangedBy string `json:"changed_by,omitempty"`
}

// GenerateOrderNumber builds a human-readable order number in the
// format {tableNumber}-{YYYYMMDD}-{3-digit sequence}.
func GenerateOrderNumber(tableNumber string, date time.Time, sequence int) string {
	return fmt.Sprintf("%s-%s-%03d", tableNumber, date.Format("20060102"), sequence)
}

package models

import "time"

// OrderCreatedMessage is published to the kitchen feed when an order
// is placed
type OrderCreatedMessage struct {
	OrderNumber string      `json:"order_number"`
	TableNumber string      `json:"table_number"`
	IsRoom      bool        `json:"is_room"`
	Lines       []OrderLine `json:"lines"`
	TotalAmount int64       `json:"total_amount"`
	Notes       string      `json:"notes,omitempty"`
	CreatedAt   time.Time   `json:"created_at"`
}

// StatusUpdateMessage is broadcast to notification subscribers on
// every status change
type StatusUpdateMessage struct {
	OrderNumber string      `json:"order_number"`
	OldStatus   OrderStatus `json:"old_status"`
	NewStatus   OrderStatus `json:"new_status"`
	ChangedBy   string      `json:"changed_by"`
	Timestamp   time.Time   `json:"timestamp"`
}

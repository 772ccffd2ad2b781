package models

import "errors"

// Domain error kinds. Storage implementations translate low-level
// failures into these so the services and handlers can branch on them.
var (
	ErrTableNotFound        = errors.New("table not found")
	ErrOrderNotFound        = errors.New("order not found")
	ErrItemNotAvailable     = errors.New("menu item not available today")
	ErrMenuItemNotFound     = errors.New("menu item not found")
	ErrEmptyOrder           = errors.New("no orderable items in cart")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrInvalidRating        = errors.New("rating must be between 1 and 5")
	ErrFeedbackNotAllowed   = errors.New("feedback is only allowed for delivered orders")
	ErrDuplicateOrderNumber = errors.New("order number already exists")
	ErrValidation           = errors.New("validation failed")
)

package models

import (
	"fmt"
	"time"
)

// Feedback is a customer rating left after an order was delivered
type Feedback struct {
	ID        int64     `json:"id,omitempty"`
	OrderID   int64     `json:"order_id"`
	Rating    int       `json:"rating"`
	Comments  string    `json:"comments,omitempty"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// SubmitFeedbackRequest is the request to leave feedback for an order
type SubmitFeedbackRequest struct {
	OrderID  int64  `json:"order_id"`
	Rating   int    `json:"rating"`
	Comments string `json:"comments,omitempty"`
}

// Validate checks the structural validity of the request
func (req *SubmitFeedbackRequest) Validate() error {
	if req.OrderID <= 0 {
		return fmt.Errorf("order_id is required")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return fmt.Errorf("rating must be between 1 and 5")
	}
	return nil
}

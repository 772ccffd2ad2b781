package notification

import (
	"strings"
	"testing"
	"time"

	"smart-menu/internal/models"
)

func TestFormatNotification(t *testing.T) {
	base := models.StatusUpdateMessage{
		OrderNumber: "T5-20250314-123",
		OldStatus:   models.StatusPending,
		ChangedBy:   "waiter",
		Timestamp:   time.Date(2025, 3, 14, 18, 30, 0, 0, time.UTC),
	}

	tests := []struct {
		status models.OrderStatus
		want   string
	}{
		{models.StatusConfirmed, "confirmed"},
		{models.StatusPreparing, "being prepared"},
		{models.StatusReady, "ready"},
		{models.StatusDelivered, "delivered"},
		{models.StatusCancelled, "cancelled"},
	}

	for _, tt := range tests {
		msg := base
		msg.NewStatus = tt.status

		got := formatNotification(&msg)
		if !strings.Contains(got, msg.OrderNumber) {
			t.Errorf("notification for %s missing order number: %s", tt.status, got)
		}
		if !strings.Contains(got, tt.want) {
			t.Errorf("notification for %s missing %q: %s", tt.status, tt.want, got)
		}
		if !strings.Contains(got, "2025-03-14") {
			t.Errorf("notification for %s missing date: %s", tt.status, got)
		}
	}
}

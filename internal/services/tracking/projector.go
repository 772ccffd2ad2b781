package tracking

import (
	"time"

	"smart-menu/internal/models"
)

// Buffer added per order line on top of the slowest item's
// preparation time, capped at maxBufferMinutes.
const (
	bufferPerLineMinutes = 2
	maxBufferMinutes     = 15
)

// Stage is one step of the customer-facing progress timeline
type Stage struct {
	Stage    models.OrderStatus `json:"stage"`
	Label    string             `json:"label"`
	Complete bool               `json:"complete"`
}

// The four visible stages of an order, in lifecycle order. The
// intermediate "confirmed" status shares the first stage with
// "pending".
var timelineStages = []struct {
	status models.OrderStatus
	label  string
}{
	{models.StatusPending, "Order Received"},
	{models.StatusPreparing, "Preparing"},
	{models.StatusReady, "Ready"},
	{models.StatusDelivered, "Delivered"},
}

// EstimatedCompletion derives the estimated completion time of an
// order: the slowest line's preparation time plus a bounded per-line
// buffer. Lines with unknown preparation time contribute zero.
func EstimatedCompletion(createdAt time.Time, lines []models.OrderLine) (time.Time, int) {
	maxPrep := 0
	for i := range lines {
		if lines[i].PrepMinutes > maxPrep {
			maxPrep = lines[i].PrepMinutes
		}
	}

	buffer := len(lines) * bufferPerLineMinutes
	if buffer > maxBufferMinutes {
		buffer = maxBufferMinutes
	}

	minutes := maxPrep + buffer
	return createdAt.Add(time.Duration(minutes) * time.Minute), minutes
}

// StatusTimeline projects a status onto the four-stage progress
// timeline. A cancelled order leaves every stage incomplete; the
// caller renders a distinct cancelled treatment instead.
func StatusTimeline(status models.OrderStatus) []Stage {
	currentIndex := stageIndex(status)

	stages := make([]Stage, len(timelineStages))
	for i, s := range timelineStages {
		stages[i] = Stage{
			Stage:    s.status,
			Label:    s.label,
			Complete: currentIndex >= 0 && i <= currentIndex,
		}
	}
	return stages
}

func stageIndex(status models.OrderStatus) int {
	switch status {
	case models.StatusPending, models.StatusConfirmed:
		return 0
	case models.StatusPreparing:
		return 1
	case models.StatusReady:
		return 2
	case models.StatusDelivered:
		return 3
	default: // cancelled or unknown
		return -1
	}
}

package notification

import (
	"context"
	"fmt"

	"smart-menu/internal/logger"
	"smart-menu/internal/messaging"
	"smart-menu/internal/models"
)

// Subscriber consumes order status change events and prints a
// human-readable notification per change.
type Subscriber struct {
	consumer *messaging.Consumer
	logger   *logger.Logger
}

// NewSubscriber creates a new notification subscriber
func NewSubscriber(consumer *messaging.Consumer, log *logger.Logger) *Subscriber {
	return &Subscriber{
		consumer: consumer,
		logger:   log,
	}
}

// Start consumes messages until the context is cancelled
func (s *Subscriber) Start(ctx context.Context) error {
	requestID := logger.GenerateRequestID()
	s.logger.Info("service_started", requestID, "Notification subscriber started", nil)

	err := s.consumer.StartConsuming(ctx, s.handleStatusUpdate)
	if err != nil && ctx.Err() != nil {
		// Shutdown requested; not a failure.
		return nil
	}
	return err
}

// handleStatusUpdate processes one status update message
func (s *Subscriber) handleStatusUpdate(ctx context.Context, body []byte) error {
	requestID := logger.GenerateRequestID()

	var update models.StatusUpdateMessage
	if err := messaging.ParseMessage(body, &update); err != nil {
		s.logger.Error("message_parsing_failed", requestID, "Failed to parse status update", err, nil)
		return fmt.Errorf("failed to parse status update: %w", err)
	}

	fmt.Println(formatNotification(&update))

	s.logger.Info("notification_displayed", requestID, "Notification displayed", map[string]interface{}{
		"order_number": update.OrderNumber,
		"old_status":   string(update.OldStatus),
		"new_status":   string(update.NewStatus),
		"changed_by":   update.ChangedBy,
	})

	return nil
}

// formatNotification creates a human-readable notification line
func formatNotification(update *models.StatusUpdateMessage) string {
	timestamp := update.Timestamp.Format("2006-01-02 15:04:05")

	switch update.NewStatus {
	case models.StatusConfirmed:
		return fmt.Sprintf("[%s] Order %s has been confirmed by %s.",
			timestamp, update.OrderNumber, update.ChangedBy)
	case models.StatusPreparing:
		return fmt.Sprintf("[%s] Order %s is now being prepared.",
			timestamp, update.OrderNumber)
	case models.StatusReady:
		return fmt.Sprintf("[%s] Order %s is ready to be served!",
			timestamp, update.OrderNumber)
	case models.StatusDelivered:
		return fmt.Sprintf("[%s] Order %s has been delivered. Enjoy your meal!",
			timestamp, update.OrderNumber)
	case models.StatusCancelled:
		return fmt.Sprintf("[%s] Order %s has been cancelled.",
			timestamp, update.OrderNumber)
	default:
		return fmt.Sprintf("[%s] Order %s status changed from '%s' to '%s' by %s.",
			timestamp, update.OrderNumber, update.OldStatus, update.NewStatus, update.ChangedBy)
	}
}

// Close stops the underlying consumer
func (s *Subscriber) Close() error {
	return s.consumer.Close()
}

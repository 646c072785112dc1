package notifications

import (
	"context"
	"fmt"
	"strings"

	"groundbook/pkg/kafka"
	"groundbook/pkg/logger"
)

// Notifier consumes booking events and delivers customer notifications.
// The current channel is a structured log line mirroring the message that
// would go out by email; swapping in a real mail provider only touches
// deliver().
type Notifier struct {
	log *logger.Logger
}

func NewNotifier(log *logger.Logger) *Notifier {
	return &Notifier{log: log}
}

func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	var event BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return fmt.Errorf("failed to decode booking event %s: %w", msg.GetEventID(), err)
	}

	switch event.EventType {
	case EventBookingConfirmed:
		n.deliver(event, fmt.Sprintf(
			"Your booking at %s on %s for %s is confirmed. Total: %.2f",
			event.GroundName, event.Date, strings.Join(event.Slots, ", "), event.TotalPrice,
		))
	case EventBookingCancelled:
		n.deliver(event, fmt.Sprintf(
			"Your booking at %s on %s for %s has been cancelled.",
			event.GroundName, event.Date, strings.Join(event.Slots, ", "),
		))
	default:
		n.log.Warn("Unknown booking event type", "event_type", event.EventType, "event_id", msg.GetEventID())
	}

	return nil
}

func (n *Notifier) deliver(event BookingEvent, body string) {
	n.log.Info("Notification delivered",
		"event_type", event.EventType,
		"user_id", event.UserID,
		"customer", event.CustomerName,
		"body", body,
	)
}

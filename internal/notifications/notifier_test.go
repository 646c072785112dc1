package notifications

import (
	"context"
	"encoding/json"
	"testing"

	"groundbook/pkg/kafka"
	"groundbook/pkg/logger"
)

func testNotifier() *Notifier {
	return NewNotifier(logger.New(logger.Config{
		Level:   "error",
		Format:  logger.JSON,
		Service: "test",
	}))
}

func eventMessage(t *testing.T, event BookingEvent) kafka.Message {
	t.Helper()
	payload, err := json.Marshal(event)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}
	return kafka.Message{
		Key:   event.GroundID,
		Value: payload,
		Headers: map[string]string{
			kafka.HeaderEventID:   "evt-1",
			kafka.HeaderEventType: event.EventType,
		},
	}
}

func TestHandle_ConfirmedEvent(t *testing.T) {
	msg := eventMessage(t, BookingEvent{
		EventType:  EventBookingConfirmed,
		GroundID:   "64b000000000000000000001",
		GroundName: "City Arena",
		Date:       "2025-06-17",
		Slots:      []string{"14:00"},
		UserID:     "auth0|user-1",
		TotalPrice: 2500,
	})

	if err := testNotifier().Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandle_UnknownEventTypeIsNotAnError(t *testing.T) {
	msg := eventMessage(t, BookingEvent{
		EventType: "booking.rescheduled",
		GroundID:  "64b000000000000000000001",
	})

	// Unknown types are logged and skipped so the consumer keeps its offset
	// moving.
	if err := testNotifier().Handle(context.Background(), msg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestHandle_MalformedPayloadFails(t *testing.T) {
	msg := kafka.Message{Value: []byte("{not json")}

	if err := testNotifier().Handle(context.Background(), msg); err == nil {
		t.Fatal("expected decode error")
	}
}

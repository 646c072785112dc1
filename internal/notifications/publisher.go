package notifications

import (
	"context"
	"time"

	"groundbook/pkg/kafka"
	"groundbook/pkg/logger"
)

type Publisher interface {
	PublishBookingEvent(ctx context.Context, event BookingEvent) error
}

type kafkaPublisher struct {
	producer *kafka.Producer
	log      *logger.Logger
}

func NewKafkaPublisher(producer *kafka.Producer, log *logger.Logger) Publisher {
	return &kafkaPublisher{producer: producer, log: log}
}

// PublishBookingEvent keys messages by ground so per-ground ordering is
// preserved across partitions.
func (p *kafkaPublisher) PublishBookingEvent(ctx context.Context, event BookingEvent) error {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	msg := kafka.NewMessage().
		WithKey(event.GroundID).
		WithValue(event).
		WithEventType(event.EventType).
		WithSource("groundbook").
		Build()

	if err := p.producer.Publish(ctx, msg); err != nil {
		return err
	}

	p.log.Debug("Booking event published",
		"event_type", event.EventType,
		"ground_id", event.GroundID,
		"date", event.Date,
		"slots", len(event.Slots),
	)
	return nil
}

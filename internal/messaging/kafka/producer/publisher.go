package producer

import (
	"context"

	"go-workschedule/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	// Keyed by the decided request id so all decisions for one request land
	// in the same partition; the outbox id doubles as a consumer dedupe key.
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "outbox_id", Value: []byte(event.ID)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}

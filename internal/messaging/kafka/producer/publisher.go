package producer

import (
	"context"

	"go-peoplehub/internal/messaging/kafka"

	kafkago "github.com/segmentio/kafka-go"
)

// publishEvent menulis satu event outbox ke topic-nya. Key = aggregate id
// supaya event satu aggregate selalu berurutan di partition yang sama.
func publishEvent(ctx context.Context, writer *kafkago.Writer, event kafka.OutboxEvent) error {
	msg := kafkago.Message{
		Topic: event.Topic,
		Key:   []byte(event.AggregateID),
		Value: event.Payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte(event.EventType)},
			{Key: "aggregate_type", Value: []byte(event.AggregateType)},
			{Key: "request_id", Value: []byte(event.RequestID)},
		},
	}

	return writer.WriteMessages(ctx, msg)
}

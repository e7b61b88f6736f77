// Package events publishes route and vehicle lifecycle events to Kafka.
// Publishing is a best-effort side channel: failures are logged, never
// surfaced to the mutating operation.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// Topics and event types emitted by this service.
const (
	TopicRouteEvents   = "route-events"
	TopicVehicleEvents = "vehicle-events"

	RouteSaved     = "route.saved"
	RouteDeleted   = "route.deleted"
	VehicleSaved   = "vehicle.saved"
	VehicleDeleted = "vehicle.deleted"
)

const source = "mone-routing"

// cloudEvent is the envelope written to every topic.
type cloudEvent struct {
	ID     string          `json:"id"`
	Type   string          `json:"type"`
	Source string          `json:"source"`
	Time   time.Time       `json:"time"`
	Data   json.RawMessage `json:"data"`
}

// Publisher writes lifecycle events. The zero value is unusable; a nil
// *Publisher is a valid no-op, which tests rely on.
type Publisher struct {
	writer *kafkago.Writer
	logger *zap.Logger
}

// NewPublisher creates a publisher for the given brokers.
func NewPublisher(brokers []string, logger *zap.Logger) *Publisher {
	writer := &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireOne,
		Async:        false,
	}
	return &Publisher{writer: writer, logger: logger}
}

// Publish emits one event, keyed for per-entity ordering. Errors are
// logged and swallowed.
func (p *Publisher) Publish(ctx context.Context, topic, eventType, key string, data any) {
	if p == nil {
		return
	}

	payload, err := json.Marshal(data)
	if err != nil {
		p.logger.Error("failed to encode event payload",
			zap.String("type", eventType),
			zap.Error(err),
		)
		return
	}

	envelope, err := json.Marshal(cloudEvent{
		ID:     uuid.NewString(),
		Type:   eventType,
		Source: source,
		Time:   time.Now().UTC(),
		Data:   payload,
	})
	if err != nil {
		p.logger.Error("failed to encode event envelope", zap.Error(err))
		return
	}

	err = p.writer.WriteMessages(ctx, kafkago.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: envelope,
	})
	if err != nil {
		p.logger.Warn("failed to publish event",
			zap.String("topic", topic),
			zap.String("type", eventType),
			zap.Error(err),
		)
	}
}

// Close closes the underlying writer.
func (p *Publisher) Close() error {
	if p == nil {
		return nil
	}
	return p.writer.Close()
}

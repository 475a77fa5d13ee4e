package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/fathima-sithara/asset-service/internal/models"
)

// AssetEvent mirrors the activity-log actions onto the event bus.
type AssetEvent struct {
	AssetID   string        `json:"asset_id"`
	Action    models.Action `json:"action"`
	OwnerID   string        `json:"owner_id"`
	Details   string        `json:"details,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// Publisher writes asset events to Kafka. A nil Publisher is valid and
// publishes nothing, so the event bus stays optional.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers []string, topic string) *Publisher {
	w := kafka.NewWriter(kafka.WriterConfig{
		Brokers:  brokers,
		Topic:    topic,
		Balancer: &kafka.LeastBytes{},
	})
	return &Publisher{writer: w}
}

func (p *Publisher) Publish(ctx context.Context, ev AssetEvent) error {
	if p == nil || p.writer == nil {
		return nil
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	msg := kafka.Message{Key: []byte(ev.AssetID), Value: b, Time: ev.Timestamp}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *Publisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

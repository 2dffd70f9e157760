// Package events publishes notifications about directory changes, such as a
// newly registered donation camp, to interested consumers.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

type Type string

const (
	UserRegistered    Type = "user.registered"
	CampRegistered    Type = "camp.registered"
	CampStatusChanged Type = "camp.status_changed"
	InventoryUpdated  Type = "inventory.updated"
	DonationRecorded  Type = "donation.recorded"
)

type Event struct {
	Type       Type      `json:"type"`
	EntityID   int64     `json:"entityId"`
	OccurredAt time.Time `json:"occurredAt"`
	Payload    any       `json:"payload,omitempty"`
}

// Kind names the entity a type of event is about: "camp" for both
// camp.registered and camp.status_changed.
func (t Type) Kind() string {
	kind, _, _ := strings.Cut(string(t), ".")
	return kind
}

// Key groups every event of one entity onto the same partition, whatever
// its type, so consumers see them in publish order.
func (e Event) Key() string {
	return fmt.Sprintf("%s/%d", e.Type.Kind(), e.EntityID)
}

type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// LogPublisher writes events to the process log. It is used when no broker is configured.
type LogPublisher struct{}

func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (LogPublisher) Publish(_ context.Context, event Event) error {
	log.Printf("[INFO] event: %s entity=%d at=%s", event.Type, event.EntityID, event.OccurredAt.Format(time.RFC3339))
	return nil
}

func (LogPublisher) Close() error { return nil }

// KafkaPublisher sends JSON encoded events to a Kafka topic. Writes are
// asynchronous; delivery failures are logged by the completion callback.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
			BatchTimeout: 50 * time.Millisecond,
			Async:        true,
			Completion: func(messages []kafka.Message, err error) {
				if err != nil {
					log.Printf("[ERROR] KafkaPublisher: failed to deliver %d message(s): %v", len(messages), err)
				}
			},
		},
	}
}

func (p *KafkaPublisher) Publish(ctx context.Context, event Event) error {
	msg, err := encode(event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write %s: %w", event.Type, err)
	}
	return nil
}

// Close flushes pending messages.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

func encode(event Event) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("encode %s: %w", event.Type, err)
	}
	return kafka.Message{
		Key:   []byte(event.Key()),
		Value: value,
		Time:  event.OccurredAt,
	}, nil
}

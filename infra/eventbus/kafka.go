package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/amirasaad/bankaccount/pkg/eventbus"
	"github.com/segmentio/kafka-go"
)

// Envelope is the JSON body of every message written to Kafka.
type Envelope struct {
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurredAt"`
	Payload    json.RawMessage `json:"payload"`
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher forwards domain events to a Kafka topic as JSON envelopes.
// It is attached to a Bus as a handler, so events reach Kafka only after the
// emitting unit of work has committed.
type KafkaPublisher struct {
	writer messageWriter
	topic  string
	logger *slog.Logger
	now    func() time.Time
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) (*KafkaPublisher, error) {
	parsed := parseBrokers(brokers)
	if len(parsed) == 0 {
		return nil, errors.New("kafka publisher: brokers are required")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errors.New("kafka publisher: topic is required")
	}
	if logger == nil {
		logger = slog.Default()
	}

	writer := &kafka.Writer{
		Addr:                   kafka.TCP(parsed...),
		Topic:                  topic,
		AllowAutoTopicCreation: true,
		RequiredAcks:           kafka.RequireOne,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           10 * time.Millisecond,
		WriteTimeout:           5 * time.Second,
		MaxAttempts:            3,
	}
	logger.Info("Kafka publisher initialized", "brokers", parsed, "topic", topic)
	return newKafkaPublisher(writer, topic, logger), nil
}

func newKafkaPublisher(w messageWriter, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: w,
		topic:  topic,
		logger: logger.With("bus", "kafka"),
		now:    time.Now,
	}
}

// Subscribe registers the publisher on bus for each event type.
func (p *KafkaPublisher) Subscribe(bus eventbus.Bus, eventTypes ...string) {
	for _, t := range eventTypes {
		bus.Register(t, p.Publish)
	}
}

// Publish writes one event. Events carrying an account number are keyed by
// it so that entries for one account stay ordered within a partition.
func (p *KafkaPublisher) Publish(ctx context.Context, event eventbus.Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("kafka publisher: marshal %s: %w", event.Type(), err)
	}
	body, err := json.Marshal(Envelope{
		Type:       event.Type(),
		OccurredAt: p.now().UTC(),
		Payload:    payload,
	})
	if err != nil {
		return fmt.Errorf("kafka publisher: marshal envelope: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(messageKey(event)),
		Value: body,
		Time:  p.now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("kafka publish failed", "type", event.Type(), "topic", p.topic, "error", err)
		return fmt.Errorf("kafka publisher: publish failed: %w", err)
	}
	p.logger.Debug("kafka event published", "type", event.Type(), "topic", p.topic)
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	if p == nil || p.writer == nil {
		return nil
	}
	return p.writer.Close()
}

type accountKeyed interface {
	GetAccountNumber() string
}

func messageKey(event eventbus.Event) string {
	if k, ok := event.(accountKeyed); ok && k.GetAccountNumber() != "" {
		return k.GetAccountNumber()
	}
	return event.Type()
}

func parseBrokers(brokers []string) []string {
	out := make([]string, 0, len(brokers))
	for _, b := range brokers {
		for _, part := range strings.Split(b, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

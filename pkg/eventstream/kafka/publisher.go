// Package kafka publishes jigyasa events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/papercomputeco/jigyasa/pkg/eventstream"
)

// DefaultTopic receives events when no topic is configured.
const DefaultTopic = "jigyasa.events"

// ErrNoBrokers is returned when no broker address is configured.
var ErrNoBrokers = errors.New("no kafka brokers configured")

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Config configures the Kafka publisher.
type Config struct {
	Brokers []string
	Topic   string
	Logger  *zap.Logger
}

// Publisher writes events as JSON messages keyed by event type.
type Publisher struct {
	writer MessageWriter
	topic  string
	logger *zap.Logger
}

var _ eventstream.Publisher = (*Publisher)(nil)

// NewPublisher creates a Kafka publisher writing to cfg.Topic.
func NewPublisher(cfg Config) (*Publisher, error) {
	if len(cfg.Brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if cfg.Topic == "" {
		cfg.Topic = DefaultTopic
	}

	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
	}
	return NewPublisherWithWriter(writer, cfg.Topic, cfg.Logger), nil
}

// NewPublisherWithWriter creates a publisher over an existing writer.
func NewPublisherWithWriter(w MessageWriter, topic string, logger *zap.Logger) *Publisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Publisher{writer: w, topic: topic, logger: logger}
}

// PublishNote writes a note event.
func (p *Publisher) PublishNote(ctx context.Context, event *eventstream.NoteAddedEvent) error {
	if event == nil {
		return eventstream.ErrNilEvent
	}
	return p.write(ctx, event.Envelope, event)
}

// PublishAgent writes an agent completion event.
func (p *Publisher) PublishAgent(ctx context.Context, event *eventstream.AgentCompletedEvent) error {
	if event == nil {
		return eventstream.ErrNilEvent
	}
	return p.write(ctx, event.Envelope, event)
}

func (p *Publisher) write(ctx context.Context, env eventstream.Envelope, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", eventstream.ErrPublish, env.EventType, err)
	}

	msg := kafkago.Message{
		Key:   []byte(env.EventType),
		Value: payload,
		Time:  env.EmittedAt,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(env.EventID)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("%w: %s to %s: %v", eventstream.ErrPublish, env.EventType, p.topic, err)
	}

	p.logger.Debug("published event",
		zap.String("topic", p.topic),
		zap.String("event_type", env.EventType),
		zap.String("event_id", env.EventID),
	)
	return nil
}

// Close flushes and closes the writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

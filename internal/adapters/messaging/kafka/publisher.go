package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/fxrates_backend/internal/core/ports/services"
	"github.com/SscSPs/fxrates_backend/internal/middleware"
	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// Keyed payloads choose their own partition key; others get a random one.
type Keyed interface {
	EventKey() string
}

// MessageWriter is the subset of *kafka.Writer used by the publisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher implements portssvc.EventPublisher on a kafka-go writer.
type Publisher struct {
	writer MessageWriter
	logger *slog.Logger
	now    func() time.Time
}

var _ portssvc.EventPublisher = (*Publisher)(nil)

// NewWriter builds an asynchronous writer for brokers. The topic is set per message.
// Delivery failures surface only through the completion callback, which logs them.
func NewWriter(brokers []string, logger *slog.Logger) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		Async:                  true,
		Compression:            kafka.Snappy,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				for _, m := range messages {
					logger.Error("Failed to deliver event",
						slog.String("topic", m.Topic),
						slog.String("key", string(m.Key)),
						slog.String("error", err.Error()))
				}
				return
			}
			logger.Debug("Events delivered", slog.Int("count", len(messages)))
		},
	}
}

// NewPublisher wraps writer. logger receives failures that happen outside a request.
func NewPublisher(writer MessageWriter, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("Kafka publisher initialized")
	return &Publisher{writer: writer, logger: logger, now: time.Now}
}

func buildMessage(topic string, payload any, at time.Time) (kafka.Message, error) {
	value, err := json.Marshal(payload)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event payload: %w", err)
	}
	key := uuid.NewString()
	if keyed, ok := payload.(Keyed); ok {
		key = keyed.EventKey()
	}
	return kafka.Message{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Time:  at,
		Headers: []kafka.Header{
			{Key: "content-type", Value: []byte("application/json")},
		},
	}, nil
}

// Publish hands payload to the writer and returns immediately. Errors are logged, never returned.
func (p *Publisher) Publish(ctx context.Context, topic string, payload any) {
	logger := middleware.GetLoggerFromCtx(ctx)

	msg, err := buildMessage(topic, payload, p.now())
	if err != nil {
		logger.Error("Failed to build event", slog.String("topic", topic), slog.String("error", err.Error()))
		return
	}

	// The request context may end before an async write is flushed.
	if err := p.writer.WriteMessages(context.WithoutCancel(ctx), msg); err != nil {
		logger.Error("Failed to publish event", slog.String("topic", topic), slog.String("error", err.Error()))
		return
	}
	logger.Debug("Event queued", slog.String("topic", topic), slog.String("key", string(msg.Key)))
}

// Close flushes pending messages and closes the writer.
func (p *Publisher) Close() error {
	if p.writer == nil {
		return nil
	}
	p.logger.Info("Closing Kafka publisher")
	return p.writer.Close()
}

package eventpublisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/iho/goaccounts/internal/domain"
)

// MessageWriter is the subset of *kafka.Writer used by KafkaPublisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Config for KafkaPublisher.
type Config struct {
	Brokers    []string
	Topic      string
	MaxRetries int
	Logger     *zerolog.Logger
	// OnRetry is called before every retried write.
	OnRetry func()
}

// KafkaPublisher writes statement requests to a Kafka topic as JSON, keyed by
// entity id so all statements of an entity stay in one partition.
type KafkaPublisher struct {
	writer          MessageWriter
	topic           string
	maxRetries      int
	initialInterval time.Duration
	maxInterval     time.Duration
	logger          zerolog.Logger
	onRetry         func()
}

// NewKafkaPublisher creates a publisher backed by a kafka.Writer.
func NewKafkaPublisher(cfg Config) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
	}

	return NewKafkaPublisherWithWriter(writer, cfg)
}

// NewKafkaPublisherWithWriter creates a publisher around an existing writer.
func NewKafkaPublisherWithWriter(writer MessageWriter, cfg Config) *KafkaPublisher {
	p := &KafkaPublisher{
		writer:          writer,
		topic:           cfg.Topic,
		maxRetries:      cfg.MaxRetries,
		initialInterval: 100 * time.Millisecond,
		maxInterval:     2 * time.Second,
		logger:          zerolog.Nop(),
		onRetry:         cfg.OnRetry,
	}

	if cfg.Logger != nil {
		p.logger = *cfg.Logger
	}
	if p.maxRetries < 0 {
		p.maxRetries = 0
	}

	return p
}

// Publish writes the event, retrying transient broker errors with
// exponential backoff.
func (p *KafkaPublisher) Publish(ctx context.Context, event *domain.StatementRequested) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal statement event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.EntityID),
		Value: payload,
		Time:  event.RequestedAt,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = p.initialInterval
	b.MaxInterval = p.maxInterval

	attempt := 0
	err = backoff.Retry(func() error {
		err := p.writer.WriteMessages(ctx, msg)
		if err == nil {
			return nil
		}

		if !isTransient(err) || attempt >= p.maxRetries {
			return backoff.Permanent(err)
		}

		attempt++
		if p.onRetry != nil {
			p.onRetry()
		}
		p.logger.Warn().
			Err(err).
			Str("event_id", event.ID).
			Int("retry", attempt).
			Msg("statement publish failed, retrying")

		return err
	}, backoff.WithContext(b, ctx))
	if err != nil {
		return fmt.Errorf("publish statement to %s: %w", p.topic, err)
	}

	p.logger.Debug().
		Str("event_id", event.ID).
		Str("entity_id", event.EntityID).
		Str("topic", p.topic).
		Msg("statement event published")

	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// isTransient reports whether a write error is worth retrying.
func isTransient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var kafkaErr kafka.Error
	if errors.As(err, &kafkaErr) {
		return kafkaErr.Temporary()
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}

	var writeErrs kafka.WriteErrors
	if errors.As(err, &writeErrs) {
		for _, e := range writeErrs {
			if e != nil && !isTransient(e) {
				return false
			}
		}
		return true
	}

	return false
}

// LogPublisher logs statement requests instead of sending them. It is used
// when no brokers are configured.
type LogPublisher struct {
	logger zerolog.Logger
}

// NewLogPublisher creates a new LogPublisher.
func NewLogPublisher(logger zerolog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the event without its attachment.
func (p *LogPublisher) Publish(_ context.Context, event *domain.StatementRequested) error {
	p.logger.Info().
		Str("event_id", event.ID).
		Str("event_type", event.Type).
		Str("entity_id", event.EntityID).
		Str("entity_kind", event.EntityKind).
		Str("email", event.Email).
		Str("file_name", event.FileName).
		Int("attachment_bytes", len(event.Attachment)).
		Msg("statement event published")

	return nil
}

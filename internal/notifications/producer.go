package notifications

import (
	"context"
	"fmt"
	"time"

	"offerly/pkg/logger"

	"github.com/IBM/sarama"
)

// Producer publishes quote lifecycle events.
type Producer interface {
	PublishQuoteEvent(ctx context.Context, event *QuoteEvent) error
	Close() error
}

// ProducerConfig contains configuration for the Kafka quote event producer.
type ProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	Timeout          time.Duration
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
}

// DefaultProducerConfig returns a default producer configuration.
func DefaultProducerConfig(brokers []string, topic string) *ProducerConfig {
	return &ProducerConfig{
		Brokers:          brokers,
		Topic:            topic,
		RetryMax:         3,
		Timeout:          10 * time.Second,
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
	}
}

// KafkaProducer publishes quote events to Kafka synchronously.
type KafkaProducer struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
	log      *logger.Logger
}

// NewKafkaProducer creates the Kafka quote event producer.
func NewKafkaProducer(config *ProducerConfig, log *logger.Logger) (Producer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = config.Timeout
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps a client's events on one partition
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	return &KafkaProducer{producer: producer, config: config, log: log}, nil
}

func (p *KafkaProducer) PublishQuoteEvent(ctx context.Context, event *QuoteEvent) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal quote event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic: p.config.Topic,
		Key:   sarama.StringEncoder(event.PartitionKey()),
		Value: sarama.ByteEncoder(messageBytes),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event_type"), Value: []byte(event.Type)},
			{Key: []byte("quote_id"), Value: []byte(event.QuoteID)},
			{Key: []byte("producer"), Value: []byte("offerly-quotes")},
			{Key: []byte("created_at"), Value: []byte(event.CreatedAt.Format(time.RFC3339))},
		},
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := p.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send quote event to Kafka: %w", err)
	}

	p.log.InfoWithContext(ctx, "quote event published", map[string]interface{}{
		"topic":     p.config.Topic,
		"partition": partition,
		"offset":    offset,
		"type":      event.Type,
		"quote_id":  event.QuoteID,
	})
	return nil
}

func (p *KafkaProducer) Close() error {
	if p.producer != nil {
		if err := p.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// noopProducer stands in when Kafka is disabled or unreachable at startup.
// Finalization must not depend on the event bus being up.
type noopProducer struct {
	log *logger.Logger
}

// NewNoopProducer returns a producer that drops events with a debug log.
func NewNoopProducer(log *logger.Logger) Producer {
	return &noopProducer{log: log}
}

func (p *noopProducer) PublishQuoteEvent(ctx context.Context, event *QuoteEvent) error {
	p.log.InfoWithContext(ctx, "kafka disabled, quote event dropped", map[string]interface{}{
		"type":     event.Type,
		"quote_id": event.QuoteID,
	})
	return nil
}

func (p *noopProducer) Close() error { return nil }

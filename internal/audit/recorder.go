package audit

import (
	"context"
	"fmt"
	"time"

	"ticketly/pkg/logger"

	"github.com/IBM/sarama"
)

// Recorder is the contract every mutating service publishes through
type Recorder interface {
	Record(ctx context.Context, event *Event) error
	Close() error
}

// ProducerConfig contains configuration for the Kafka audit producer
type ProducerConfig struct {
	Brokers          []string
	Topic            string
	RetryMax         int
	TimeoutMs        int
	RequiredAcks     sarama.RequiredAcks
	CompressionType  sarama.CompressionCodec
	IdempotentWrites bool
	MaxMessageBytes  int
}

// DefaultProducerConfig returns a default producer configuration
func DefaultProducerConfig() *ProducerConfig {
	return &ProducerConfig{
		Brokers:          []string{"localhost:9092"},
		Topic:            "ticketly.audit",
		RetryMax:         3,
		TimeoutMs:        10000, // 10 seconds
		RequiredAcks:     sarama.WaitForAll,
		CompressionType:  sarama.CompressionSnappy,
		IdempotentWrites: true,
		MaxMessageBytes:  1000000, // 1MB
	}
}

// KafkaRecorder publishes audit events to Kafka
type KafkaRecorder struct {
	producer sarama.SyncProducer
	config   *ProducerConfig
}

// NewKafkaRecorder creates a new Kafka audit recorder
func NewKafkaRecorder(config *ProducerConfig) (*KafkaRecorder, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Producer.Return.Successes = true
	saramaConfig.Producer.Return.Errors = true
	saramaConfig.Producer.RequiredAcks = config.RequiredAcks
	saramaConfig.Producer.Compression = config.CompressionType
	saramaConfig.Producer.Retry.Max = config.RetryMax
	saramaConfig.Producer.Timeout = time.Duration(config.TimeoutMs) * time.Millisecond
	saramaConfig.Producer.Idempotent = config.IdempotentWrites
	saramaConfig.Producer.MaxMessageBytes = config.MaxMessageBytes

	if config.IdempotentWrites {
		saramaConfig.Net.MaxOpenRequests = 1
	}

	// Hash partitioner keeps one principal's events ordered
	saramaConfig.Producer.Partitioner = sarama.NewHashPartitioner

	producer, err := sarama.NewSyncProducer(config.Brokers, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.GetDefault().Info("Kafka audit recorder created", "topic", config.Topic)
	return &KafkaRecorder{
		producer: producer,
		config:   config,
	}, nil
}

// Record publishes a single audit event
func (r *KafkaRecorder) Record(ctx context.Context, event *Event) error {
	messageBytes, err := event.ToJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal audit event: %w", err)
	}

	message := &sarama.ProducerMessage{
		Topic:     r.config.Topic,
		Key:       sarama.StringEncoder(event.PartitionKey()),
		Value:     sarama.ByteEncoder(messageBytes),
		Headers:   r.createHeaders(event),
		Timestamp: event.CreatedAt,
	}

	partition, offset, err := r.producer.SendMessage(message)
	if err != nil {
		return fmt.Errorf("failed to send audit event to Kafka: %w", err)
	}

	logger.GetDefault().Debug("audit event published",
		"topic", r.config.Topic,
		"partition", partition,
		"offset", offset,
		"action", event.Action,
	)
	return nil
}

// createHeaders creates Kafka headers for audit events
func (r *KafkaRecorder) createHeaders(event *Event) []sarama.RecordHeader {
	return []sarama.RecordHeader{
		{Key: []byte("event_id"), Value: []byte(event.ID.String())},
		{Key: []byte("action"), Value: []byte(event.Action)},
		{Key: []byte("principal"), Value: []byte(event.Principal)},
		{Key: []byte("producer"), Value: []byte("ticketly-engine")},
		{Key: []byte("created_at"), Value: []byte(event.CreatedAt.Format(time.RFC3339))},
	}
}

// Close closes the Kafka producer
func (r *KafkaRecorder) Close() error {
	if r.producer != nil {
		if err := r.producer.Close(); err != nil {
			return fmt.Errorf("failed to close Kafka producer: %w", err)
		}
	}
	return nil
}

// NopRecorder discards every event. Used when the audit trail broker is
// disabled and in tests.
type NopRecorder struct{}

func NewNopRecorder() *NopRecorder {
	return &NopRecorder{}
}

func (n *NopRecorder) Record(ctx context.Context, event *Event) error {
	return nil
}

func (n *NopRecorder) Close() error {
	return nil
}

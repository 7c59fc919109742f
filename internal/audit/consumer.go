package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"ticketly/pkg/logger"

	"github.com/IBM/sarama"
)

// ConsumerConfig configures the audit log consumer group
type ConsumerConfig struct {
	Brokers          []string
	GroupID          string
	Topics           []string
	SessionTimeoutMs int
	HeartbeatMs      int
	OffsetOldest     bool
}

// DefaultConsumerConfig returns a default consumer configuration
func DefaultConsumerConfig() *ConsumerConfig {
	return &ConsumerConfig{
		Brokers:          []string{"localhost:9092"},
		GroupID:          "ticketly-audit-log",
		Topics:           []string{"ticketly.audit"},
		SessionTimeoutMs: 30000,
		HeartbeatMs:      3000,
		OffsetOldest:     true,
	}
}

// LogConsumer drains the audit topic into the structured log. It is the
// built-in sink; external consumers subscribe to the same topic for
// anything heavier.
type LogConsumer struct {
	consumerGroup sarama.ConsumerGroup
	config        *ConsumerConfig
	cancel        context.CancelFunc
}

// NewLogConsumer creates the audit log consumer
func NewLogConsumer(config *ConsumerConfig) (*LogConsumer, error) {
	saramaConfig := sarama.NewConfig()

	saramaConfig.Consumer.Group.Session.Timeout = time.Duration(config.SessionTimeoutMs) * time.Millisecond
	saramaConfig.Consumer.Group.Heartbeat.Interval = time.Duration(config.HeartbeatMs) * time.Millisecond
	saramaConfig.Consumer.Return.Errors = true
	saramaConfig.Consumer.Offsets.AutoCommit.Enable = true
	saramaConfig.Consumer.Offsets.AutoCommit.Interval = 1 * time.Second

	if config.OffsetOldest {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetOldest
	} else {
		saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	}

	consumerGroup, err := sarama.NewConsumerGroup(config.Brokers, config.GroupID, saramaConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumer group: %w", err)
	}

	return &LogConsumer{
		consumerGroup: consumerGroup,
		config:        config,
	}, nil
}

// Start runs the consumer loop until the context is cancelled
func (c *LogConsumer) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	go c.handleErrors()
	go func() {
		handler := &logHandler{}
		for {
			select {
			case <-ctx.Done():
				return
			default:
				if err := c.consumerGroup.Consume(ctx, c.config.Topics, handler); err != nil {
					logger.GetDefault().Error("audit consumer error", "error", err)
					time.Sleep(time.Second)
				}
			}
		}
	}()

	logger.GetDefault().Info("audit log consumer started", "topics", c.config.Topics)
	return nil
}

func (c *LogConsumer) handleErrors() {
	for err := range c.consumerGroup.Errors() {
		logger.GetDefault().Error("audit consumer group error", "error", err)
	}
}

// Stop shuts the consumer down
func (c *LogConsumer) Stop() error {
	if c.cancel != nil {
		c.cancel()
	}
	if err := c.consumerGroup.Close(); err != nil {
		return fmt.Errorf("failed to close consumer group: %w", err)
	}
	return nil
}

type logHandler struct{}

func (h *logHandler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *logHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *logHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message := <-claim.Messages():
			if message == nil {
				return nil
			}

			var event Event
			if err := json.Unmarshal(message.Value, &event); err != nil {
				logger.GetDefault().Warn("failed to unmarshal audit event",
					"offset", message.Offset, "error", err)
				session.MarkMessage(message, "")
				continue
			}

			logger.GetDefault().Info("audit",
				"action", event.Action,
				"principal", event.Principal,
				"seat_ids", event.SeatIDs,
				"at", event.CreatedAt,
			)
			session.MarkMessage(message, "")

		case <-session.Context().Done():
			return nil
		}
	}
}

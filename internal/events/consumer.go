package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/account_ledger/internal/core/domain"
	"github.com/segmentio/kafka-go"
)

// MessageReader is the part of *kafka.Reader used by CustomerEventConsumer.
type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

// HandlerFunc processes one decoded customer event.
type HandlerFunc func(ctx context.Context, event domain.CustomerEvent) error

// CustomerEventConsumer reads customer events from Kafka and passes them to a handler.
// Malformed messages and handler errors are logged and skipped.
type CustomerEventConsumer struct {
	reader  MessageReader
	handler HandlerFunc
	logger  *slog.Logger
}

// NewCustomerEventConsumer creates a consumer in group groupID for topic.
func NewCustomerEventConsumer(brokers []string, groupID, topic string, handler HandlerFunc, logger *slog.Logger) (*CustomerEventConsumer, error) {
	if len(brokers) == 0 {
		return nil, fmt.Errorf("customer event consumer: brokers are required")
	}
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		GroupID: groupID,
		Topic:   topic,
	})
	return NewCustomerEventConsumerWithReader(reader, handler, logger), nil
}

// NewCustomerEventConsumerWithReader wraps an existing reader.
func NewCustomerEventConsumerWithReader(reader MessageReader, handler HandlerFunc, logger *slog.Logger) *CustomerEventConsumer {
	if logger == nil {
		logger = slog.Default()
	}
	return &CustomerEventConsumer{reader: reader, handler: handler, logger: logger.With("component", "customer_event_consumer")}
}

// LogHandler returns a handler that only records the event.
func LogHandler(logger *slog.Logger) HandlerFunc {
	return func(ctx context.Context, event domain.CustomerEvent) error {
		logger.InfoContext(ctx, "Received customer event",
			slog.String("event_type", string(event.EventType)),
			slog.String("customer_id", event.CustomerID),
			slog.String("related_id", event.RelatedID))
		return nil
	}
}

// Run consumes until ctx is cancelled or the reader fails, then closes the reader.
func (c *CustomerEventConsumer) Run(ctx context.Context) error {
	defer func() {
		if err := c.reader.Close(); err != nil {
			c.logger.Warn("Failed to close customer event reader", slog.String("error", err.Error()))
		}
	}()

	for {
		msg, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			return fmt.Errorf("customer event consumer: read: %w", err)
		}

		var event domain.CustomerEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			c.logger.Warn("Skipping malformed customer event",
				slog.Int64("offset", msg.Offset),
				slog.String("error", err.Error()))
			continue
		}
		if err := c.handler(ctx, event); err != nil {
			c.logger.Error("Customer event handler failed",
				slog.String("customer_id", event.CustomerID),
				slog.String("error", err.Error()))
		}
	}
}

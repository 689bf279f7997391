package events

import (
	"context"
	"log/slog"

	"github.com/SscSPs/account_ledger/internal/core/domain"
)

// LogSink records events in the application log. It is used when no broker is configured.
type LogSink struct {
	logger *slog.Logger
}

// NewLogSink creates a sink writing to logger.
func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Send(ctx context.Context, event domain.CustomerEvent) error {
	s.logger.InfoContext(ctx, "Customer event",
		slog.String("event_type", string(event.EventType)),
		slog.String("customer_id", event.CustomerID),
		slog.String("related_id", event.RelatedID),
		slog.Time("timestamp", event.Timestamp))
	return nil
}

package notifier

import (
	"context"
	"log/slog"

	"booking_service/internal/models"
)

// LogSink writes events to the log instead of delivering them. Default sink
// for local runs.
type LogSink struct {
	log *slog.Logger
}

func NewLogSink(log *slog.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Publish(_ context.Context, event models.NotificationEvent) error {
	s.log.Info("notification dispatched",
		slog.String("channel", string(event.Channel)),
		slog.String("to", event.To),
		slog.String("subject", event.Subject),
		slog.String("body", event.Body),
	)

	return nil
}

package audit

import (
	"context"
	"log/slog"
)

// LogSink writes events as structured audit log lines.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(ctx context.Context, event Event) error {
	args := []any{
		"event", string(event.Type),
		"event_id", event.ID,
		"log_type", "audit",
	}
	if event.RequestID != "" {
		args = append(args, "request_id", event.RequestID)
	}
	if event.Error != "" {
		args = append(args, "error", event.Error)
	}
	for k, v := range event.Details {
		args = append(args, k, v)
	}
	s.logger.InfoContext(ctx, string(event.Type), args...)
	return nil
}

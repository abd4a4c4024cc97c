package notify

import (
	"context"
	"log/slog"
)

// LogSender writes notifications to the structured log instead of a bridge.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger}
}

func (s *LogSender) Send(ctx context.Context, message, destination string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "notification",
		slog.String("destination", destination),
		slog.String("message", message))
	return nil
}

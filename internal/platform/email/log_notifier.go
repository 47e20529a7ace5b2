package email

import (
	"context"
	"log/slog"
)

// LogNotifier writes notices to the structured log instead of delivering them.
// Used when no SMTP host is configured, e.g. in development.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that only logs.
func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

// Send logs the notice and reports success.
func (n *LogNotifier) Send(ctx context.Context, to string, subject string, body string) error {
	n.logger.InfoContext(ctx, "notice delivery skipped, SMTP not configured",
		slog.String("to", to),
		slog.String("subject", subject),
		slog.Int("body_bytes", len(body)),
	)
	return nil
}

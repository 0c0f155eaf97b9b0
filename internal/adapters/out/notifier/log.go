package notifier

import (
	"context"
	"log/slog"

	"workshop/internal/core/ports"
)

// LogNotifier writes messages to the log. It is used when no webhook URL is
// configured, so the outbox still drains.
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.With("component", "log_notifier")}
}

func (n *LogNotifier) Notify(ctx context.Context, msg ports.OutboxMessage) error {
	n.logger.InfoContext(ctx, "Order event",
		"event", msg.Name,
		"event_id", msg.ID.String(),
		"order_id", msg.OrderID.String(),
		"payload", string(msg.Payload),
	)
	return nil
}

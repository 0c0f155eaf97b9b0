package commands

import (
	"context"
	"fmt"

	"workshop/internal/core/ports"
)

// DispatchResult counts the outcome of one dispatch run.
type DispatchResult struct {
	Sent   int
	Failed int
}

// DispatchNotificationsCommandHandler moves outbox messages to the notifier.
// A failed delivery is recorded on the message and retried on a later run;
// it never affects the order it describes.
type DispatchNotificationsCommandHandler struct {
	outbox   ports.EventOutbox
	notifier ports.Notifier
}

func NewDispatchNotificationsCommandHandler(
	outbox ports.EventOutbox,
	notifier ports.Notifier,
) DispatchNotificationsCommandHandler {
	return DispatchNotificationsCommandHandler{outbox: outbox, notifier: notifier}
}

func (h DispatchNotificationsCommandHandler) Handle(
	ctx context.Context,
	cmd DispatchNotificationsCommand,
) (DispatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchResult{}, err
	}

	messages, err := h.outbox.FetchPending(ctx, cmd.BatchSize(), cmd.MaxAttempts())
	if err != nil {
		return DispatchResult{}, fmt.Errorf("fetch pending notifications: %w", err)
	}

	var result DispatchResult
	for _, msg := range messages {
		if notifyErr := h.notifier.Notify(ctx, msg); notifyErr != nil {
			if err = h.outbox.MarkFailed(ctx, msg.ID, notifyErr.Error()); err != nil {
				return result, fmt.Errorf("mark notification %s failed: %w", msg.ID, err)
			}
			result.Failed++
			continue
		}
		if err = h.outbox.MarkDispatched(ctx, msg.ID); err != nil {
			return result, fmt.Errorf("mark notification %s dispatched: %w", msg.ID, err)
		}
		result.Sent++
	}
	return result, nil
}

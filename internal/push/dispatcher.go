package push

import (
	"context"
	"fmt"
	"log/slog"

	"nostagram/internal/observability"
	"nostagram/internal/repository"
)

// Delivery statuses reported by the dispatcher.
const (
	StatusSent          = "sent"
	StatusNoTokens      = "no_tokens"
	StatusNotConfigured = "messaging_not_configured"
)

// Result summarizes one fan-out to a user's devices.
type Result struct {
	Status        string
	SuccessCount  int
	FailureCount  int
	RemovedTokens int
}

// Dispatcher fans a notification out to every registered device of a user and
// prunes tokens the provider reports as dead.
type Dispatcher struct {
	sender Sender
	tokens repository.TokenRepository
	logger *slog.Logger
}

// NewDispatcher creates a push dispatcher.
func NewDispatcher(sender Sender, tokens repository.TokenRepository, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{sender: sender, tokens: tokens, logger: logger}
}

// SendToUser delivers a notification to all of the user's devices. Failures
// for individual tokens do not fail the whole dispatch; permanently invalid
// tokens are deleted. Callers run this off the request path and a failure
// never surfaces to the originating API call.
func (d *Dispatcher) SendToUser(ctx context.Context, userID uint, n Notification) (*Result, error) {
	if d.sender == nil || !d.sender.Enabled() {
		observability.PushDeliveries.WithLabelValues(StatusNotConfigured).Inc()
		return &Result{Status: StatusNotConfigured}, nil
	}

	registered, err := d.tokens.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing push tokens for user %d: %w", userID, err)
	}
	if len(registered) == 0 {
		observability.PushDeliveries.WithLabelValues(StatusNoTokens).Inc()
		return &Result{Status: StatusNoTokens}, nil
	}

	tokens := make([]string, len(registered))
	for i, t := range registered {
		tokens[i] = t.Token
	}

	results, err := d.sender.Send(ctx, tokens, n)
	if err != nil {
		return nil, fmt.Errorf("sending push to user %d: %w", userID, err)
	}

	res := &Result{Status: StatusSent}
	var invalid []string
	for _, r := range results {
		if r.Success {
			res.SuccessCount++
			continue
		}
		res.FailureCount++
		if r.Invalid {
			invalid = append(invalid, r.Token)
		}
		if r.Err != nil {
			d.logger.WarnContext(ctx, "push delivery failed",
				"user_id", userID,
				"invalid_token", r.Invalid,
				"error", r.Err)
		}
	}

	if len(invalid) > 0 {
		removed, err := d.tokens.DeleteTokens(ctx, invalid)
		if err != nil {
			d.logger.ErrorContext(ctx, "failed to remove invalid push tokens",
				"user_id", userID, "count", len(invalid), "error", err)
		} else {
			res.RemovedTokens = int(removed)
			observability.PushTokensRemoved.Add(float64(removed))
		}
	}

	observability.PushDeliveries.WithLabelValues(StatusSent).Inc()
	return res, nil
}

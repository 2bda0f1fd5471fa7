package engine

import (
	"context"
	"fmt"

	"github.com/five82/deskremote/internal/remote"
)

const defaultActionFailure = "Action failed"

// PerformAction sends one power action to the server. It runs on the
// caller's goroutine, is never debounced or retried, and does not change
// engine state. A server-side refusal is returned as a remote.Error with
// KindRejected carrying the server's text.
func (e *Engine) PerformAction(ctx context.Context, kind remote.ActionKind) (*remote.ActionResult, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, string(kind))
	}

	e.mu.Lock()
	stopped := e.stopped
	e.mu.Unlock()
	if stopped {
		return nil, ErrStopped
	}

	logger := e.log.With().Str("action", string(kind)).Logger()
	result, err := e.client.PerformAction(ctx, kind)
	if err != nil {
		logger.Warn().Err(err).Msg("action request failed")
		return nil, err
	}
	if result == nil || !result.Success {
		msg := defaultActionFailure
		if result != nil && result.Error != "" {
			msg = result.Error
		}
		logger.Warn().Str("reason", msg).Msg("action rejected")
		return result, &remote.Error{Kind: remote.KindRejected, Path: "/action", Message: msg}
	}

	logger.Info().Msg("action sent")
	return result, nil
}

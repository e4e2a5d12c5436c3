package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger.
// Useful for development when you want to see protocol events in console.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter creates a new SlogAdapter that writes to the given slog.Logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event to the slog logger at Debug level.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("session_id", event.SessionID),
		slog.String("direction", event.Direction.String()),
		slog.String("layer", event.Layer.String()),
		slog.String("category", event.Category.String()),
	}

	if event.Endpoint != "" {
		attrs = append(attrs, slog.String("endpoint", event.Endpoint))
	}

	// Add type-specific attributes
	switch {
	case event.HTTP != nil:
		if event.HTTP.Method != "" {
			attrs = append(attrs, slog.String("method", event.HTTP.Method))
		}
		if event.HTTP.URL != "" {
			attrs = append(attrs, slog.String("url", event.HTTP.URL))
		}
		if event.HTTP.Status != 0 {
			attrs = append(attrs, slog.Int("status", event.HTTP.Status))
		}
		attrs = append(attrs,
			slog.Int("body_size", event.HTTP.Size),
			slog.Bool("truncated", event.HTTP.Truncated),
		)
	case event.Envelope != nil:
		attrs = append(attrs,
			slog.String("action", event.Envelope.Action),
			slog.Int("envelope_size", event.Envelope.Size),
			slog.Bool("authenticated", event.Envelope.Authenticated),
		)
	case event.Action != nil:
		attrs = append(attrs,
			slog.String("action", event.Action.Action),
			slog.String("outcome", event.Action.Outcome),
		)
		if event.Action.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.Action.Reason))
		}
		if event.Action.Duration != nil {
			attrs = append(attrs, slog.Duration("duration", *event.Action.Duration))
		}
	case event.StateChange != nil:
		attrs = append(attrs,
			slog.String("entity", event.StateChange.Entity.String()),
			slog.String("old_state", event.StateChange.OldState),
			slog.String("new_state", event.StateChange.NewState),
		)
		if event.StateChange.Reason != "" {
			attrs = append(attrs, slog.String("reason", event.StateChange.Reason))
		}
	case event.Error != nil:
		attrs = append(attrs,
			slog.String("error_layer", event.Error.Layer.String()),
			slog.String("error_msg", event.Error.Message),
			slog.String("error_context", event.Error.Context),
		)
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "protocol", attrs...)
}

// Compile-time interface satisfaction check.
var _ Logger = (*SlogAdapter)(nil)

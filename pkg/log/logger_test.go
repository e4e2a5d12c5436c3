package log

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

// capturingLogger collects events for assertions.
type capturingLogger struct {
	events []Event
}

func (c *capturingLogger) Log(event Event) {
	c.events = append(c.events, event)
}

func TestNoopLogger(t *testing.T) {
	// Must not panic; nothing observable to assert.
	NoopLogger{}.Log(Event{SessionID: "x"})
}

func TestMultiLoggerFansOut(t *testing.T) {
	first := &capturingLogger{}
	second := &capturingLogger{}

	multi := NewMultiLogger(first, second)
	multi.Log(Event{SessionID: "fan-out"})

	if len(first.events) != 1 || len(second.events) != 1 {
		t.Fatalf("event counts = %d, %d; want 1, 1", len(first.events), len(second.events))
	}
	if first.events[0].SessionID != "fan-out" {
		t.Errorf("SessionID = %q", first.events[0].SessionID)
	}
}

func TestMultiLoggerEmpty(t *testing.T) {
	// A MultiLogger with no targets must be usable.
	NewMultiLogger().Log(Event{})
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{
		SessionID: "abc",
		Direction: DirectionOut,
		Layer:     LayerEnvelope,
		Category:  CategoryMessage,
		Endpoint:  "192.168.1.10:80",
		Envelope:  &EnvelopeEvent{Action: "GetScopes", Size: 321, Authenticated: true},
	})

	out := buf.String()
	for _, want := range []string{"session_id=abc", "layer=ENVELOPE", "action=GetScopes", "authenticated=true", "endpoint=192.168.1.10:80"} {
		if !strings.Contains(out, want) {
			t.Errorf("slog output missing %q: %s", want, out)
		}
	}
}

func TestSlogAdapterErrorEvent(t *testing.T) {
	var buf bytes.Buffer
	handler := slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})
	adapter := NewSlogAdapter(slog.New(handler))

	adapter.Log(Event{
		Direction: DirectionIn,
		Layer:     LayerHTTP,
		Category:  CategoryError,
		Error:     &ErrorEventData{Layer: LayerHTTP, Message: "connection refused", Context: "dispatch"},
	})

	out := buf.String()
	for _, want := range []string{"error_layer=HTTP", "connection refused", "error_context=dispatch"} {
		if !strings.Contains(out, want) {
			t.Errorf("slog output missing %q: %s", want, out)
		}
	}
}

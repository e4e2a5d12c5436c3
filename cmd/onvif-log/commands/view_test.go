package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/onvif-protocol/onvif-go/pkg/log"
)

func TestFormatHTTPRequestEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	event := log.Event{
		Timestamp: ts,
		SessionID: "abc12345-6789-0123-4567-890abcdef012",
		Direction: log.DirectionOut,
		Layer:     log.LayerHTTP,
		Category:  log.CategoryMessage,
		Endpoint:  "http://192.168.1.64/onvif/device_service",
		HTTP: &log.HTTPEvent{
			Method: "POST",
			URL:    "http://192.168.1.64/onvif/device_service",
			Size:   482,
			Body:   []byte("<s:Envelope>\n  <s:Body/>\n</s:Envelope>"),
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	// Check timestamp format
	if !strings.Contains(output, "2026-01-28T10:15:32.123456Z") {
		t.Errorf("expected microsecond timestamp, got: %s", output)
	}

	// Check session ID (shortened)
	if !strings.Contains(output, "[sess:abc12345]") {
		t.Errorf("expected shortened session ID, got: %s", output)
	}

	// Check direction
	if !strings.Contains(output, "OUT") {
		t.Errorf("expected OUT direction, got: %s", output)
	}

	// Check layer and type
	if !strings.Contains(output, "HTTP Request") {
		t.Errorf("expected HTTP Request header, got: %s", output)
	}

	// Check request line and size
	if !strings.Contains(output, "POST http://192.168.1.64/onvif/device_service") {
		t.Errorf("expected request line, got: %s", output)
	}
	if !strings.Contains(output, "482 bytes") {
		t.Errorf("expected body size, got: %s", output)
	}

	// Body preview is collapsed to one line
	if !strings.Contains(output, "Body: <s:Envelope> <s:Body/> </s:Envelope>") {
		t.Errorf("expected collapsed body preview, got: %s", output)
	}
}

func TestFormatHTTPResponseEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 125789000, time.UTC)
	event := log.Event{
		Timestamp: ts,
		SessionID: "abc12345-6789-0123-4567-890abcdef012",
		Direction: log.DirectionIn,
		Layer:     log.LayerHTTP,
		Category:  log.CategoryMessage,
		HTTP: &log.HTTPEvent{
			Status:    200,
			Size:      8192,
			Body:      []byte("<s:Envelope/>"),
			Truncated: true,
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "Response") {
		t.Errorf("expected Response type, got: %s", output)
	}
	if !strings.Contains(output, "Status: 200") {
		t.Errorf("expected Status: 200, got: %s", output)
	}
	if !strings.Contains(output, "(truncated)") {
		t.Errorf("expected truncation marker, got: %s", output)
	}
}

func TestFormatEnvelopeEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	event := log.Event{
		Timestamp: ts,
		SessionID: "abc12345-6789-0123-4567-890abcdef012",
		Direction: log.DirectionOut,
		Layer:     log.LayerEnvelope,
		Category:  log.CategoryMessage,
		Envelope: &log.EnvelopeEvent{
			Action:        "GetDeviceInformation",
			Size:          643,
			Authenticated: true,
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "ENVELOPE Envelope") {
		t.Errorf("expected ENVELOPE layer header, got: %s", output)
	}
	if !strings.Contains(output, "Action: GetDeviceInformation") {
		t.Errorf("expected action name, got: %s", output)
	}
	if !strings.Contains(output, "Security: UsernameToken attached") {
		t.Errorf("expected security note, got: %s", output)
	}
}

func TestFormatActionEventResolved(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	elapsed := 2333 * time.Microsecond
	event := log.Event{
		Timestamp: ts,
		SessionID: "abc12345-6789-0123-4567-890abcdef012",
		Direction: log.DirectionOut,
		Layer:     log.LayerAction,
		Category:  log.CategoryMessage,
		Action: &log.ActionEvent{
			Action:   "GetScopes",
			Outcome:  log.OutcomeResolved,
			Duration: &elapsed,
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "Outcome: resolved") {
		t.Errorf("expected resolved outcome, got: %s", output)
	}
	if !strings.Contains(output, "Duration: 2.333ms") {
		t.Errorf("expected duration, got: %s", output)
	}
}

func TestFormatActionEventRejected(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	event := log.Event{
		Timestamp: ts,
		SessionID: "abc12345-6789-0123-4567-890abcdef012",
		Direction: log.DirectionOut,
		Layer:     log.LayerAction,
		Category:  log.CategoryMessage,
		Action: &log.ActionEvent{
			Action:  "SetHostname",
			Outcome: log.OutcomeRejected,
			Reason:  "action not implemented: SetHostname",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "Outcome: rejected") {
		t.Errorf("expected rejected outcome, got: %s", output)
	}
	if !strings.Contains(output, "Reason: action not implemented: SetHostname") {
		t.Errorf("expected rejection reason, got: %s", output)
	}
}

func TestFormatStateChangeEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 30, 0, time.UTC)
	event := log.Event{
		Timestamp: ts,
		SessionID: "abc12345-6789-0123-4567-890abcdef012",
		Direction: log.DirectionIn,
		Layer:     log.LayerAction,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   log.StateEntityClockSkew,
			OldState: "0s",
			NewState: "1.25s",
			Reason:   "GetSystemDateAndTime",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "State") {
		t.Errorf("expected State label, got: %s", output)
	}
	if !strings.Contains(output, "CLOCK_SKEW") {
		t.Errorf("expected CLOCK_SKEW entity, got: %s", output)
	}
	if !strings.Contains(output, "0s -> 1.25s") {
		t.Errorf("expected state transition, got: %s", output)
	}
}

func TestFormatErrorEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 35, 0, time.UTC)
	event := log.Event{
		Timestamp: ts,
		SessionID: "abc12345-6789-0123-4567-890abcdef012",
		Direction: log.DirectionIn,
		Layer:     log.LayerHTTP,
		Category:  log.CategoryError,
		Error: &log.ErrorEventData{
			Layer:   log.LayerHTTP,
			Message: "http status 401",
			Context: "GetDeviceInformation",
		},
	}

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "Error") {
		t.Errorf("expected Error label, got: %s", output)
	}
	if !strings.Contains(output, "Message: http status 401") {
		t.Errorf("expected error message, got: %s", output)
	}
	if !strings.Contains(output, "Context: GetDeviceInformation") {
		t.Errorf("expected error context, got: %s", output)
	}
}

func TestPreviewBodyCapsLength(t *testing.T) {
	long := strings.Repeat("x", 2*bodyPreviewLimit)
	preview := previewBody([]byte(long))
	if len(preview) != bodyPreviewLimit+3 {
		t.Errorf("preview length = %d, want %d", len(preview), bodyPreviewLimit+3)
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("preview should end with ellipsis: %q", preview)
	}
}

func TestFilterByLayer(t *testing.T) {
	events := []log.Event{
		{Layer: log.LayerHTTP, Category: log.CategoryMessage},
		{Layer: log.LayerEnvelope, Category: log.CategoryMessage},
		{Layer: log.LayerAction, Category: log.CategoryMessage},
	}

	envelope := log.LayerEnvelope
	filter := ViewFilter{Layer: &envelope}

	filtered := filterEvents(events, filter)
	if len(filtered) != 1 {
		t.Errorf("expected 1 event, got %d", len(filtered))
	}
	if filtered[0].Layer != log.LayerEnvelope {
		t.Errorf("expected envelope layer, got %v", filtered[0].Layer)
	}
}

func TestFilterByDirection(t *testing.T) {
	events := []log.Event{
		{Direction: log.DirectionIn, Category: log.CategoryMessage},
		{Direction: log.DirectionOut, Category: log.CategoryMessage},
		{Direction: log.DirectionIn, Category: log.CategoryMessage},
	}

	out := log.DirectionOut
	filter := ViewFilter{Direction: &out}

	filtered := filterEvents(events, filter)
	if len(filtered) != 1 {
		t.Errorf("expected 1 event, got %d", len(filtered))
	}
	if filtered[0].Direction != log.DirectionOut {
		t.Errorf("expected out direction, got %v", filtered[0].Direction)
	}
}

func TestFilterByCategory(t *testing.T) {
	events := []log.Event{
		{Category: log.CategoryMessage},
		{Category: log.CategoryState},
		{Category: log.CategoryError},
	}

	state := log.CategoryState
	filter := ViewFilter{Category: &state}

	filtered := filterEvents(events, filter)
	if len(filtered) != 1 {
		t.Errorf("expected 1 event, got %d", len(filtered))
	}
	if filtered[0].Category != log.CategoryState {
		t.Errorf("expected state category, got %v", filtered[0].Category)
	}
}

func TestParseLayer(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Layer
		wantErr  bool
	}{
		{"http", log.LayerHTTP, false},
		{"HTTP", log.LayerHTTP, false},
		{"envelope", log.LayerEnvelope, false},
		{"action", log.LayerAction, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		got, err := parseLayer(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseLayer(%q) expected error", tt.input)
			}
		} else {
			if err != nil {
				t.Errorf("parseLayer(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("parseLayer(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Direction
		wantErr  bool
	}{
		{"in", log.DirectionIn, false},
		{"IN", log.DirectionIn, false},
		{"out", log.DirectionOut, false},
		{"OUT", log.DirectionOut, false},
		{"invalid", 0, true},
	}

	for _, tt := range tests {
		got, err := parseDirection(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDirection(%q) expected error", tt.input)
			}
		} else {
			if err != nil {
				t.Errorf("parseDirection(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("parseDirection(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		}
	}
}

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Category
		wantErr  bool
	}{
		{"message", log.CategoryMessage, false},
		{"state", log.CategoryState, false},
		{"ERROR", log.CategoryError, false},
		{"control", 0, true},
	}

	for _, tt := range tests {
		got, err := parseCategory(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseCategory(%q) expected error", tt.input)
			}
		} else {
			if err != nil {
				t.Errorf("parseCategory(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("parseCategory(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		}
	}
}

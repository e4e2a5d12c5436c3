// Package commands implements the onvif-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/onvif-protocol/onvif-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Layer     *log.Layer
	Direction *log.Direction
	Category  *log.Category
}

// bodyPreviewLimit caps how much of a captured body the view renders.
const bodyPreviewLimit = 120

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [sess:id] DIRECTION LAYER Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	sessID := shortenSessionID(event.SessionID)
	dir := event.Direction.String()

	// Determine event type label
	var typeLabel string
	switch {
	case event.HTTP != nil && event.HTTP.Method != "":
		typeLabel = "Request"
	case event.HTTP != nil:
		typeLabel = "Response"
	case event.Envelope != nil:
		typeLabel = "Envelope"
	case event.Action != nil:
		typeLabel = "Action"
	case event.StateChange != nil:
		typeLabel = "State"
	case event.Error != nil:
		typeLabel = "Error"
	default:
		typeLabel = "Unknown"
	}

	fmt.Fprintf(w, "%s [sess:%s] %-3s %s %s\n", ts, sessID, dir, event.Layer.String(), typeLabel)

	if event.Endpoint != "" {
		fmt.Fprintf(w, "  Endpoint: %s\n", event.Endpoint)
	}

	// Type-specific details
	switch {
	case event.HTTP != nil:
		formatHTTPDetails(w, event.HTTP)
	case event.Envelope != nil:
		formatEnvelopeDetails(w, event.Envelope)
	case event.Action != nil:
		formatActionDetails(w, event.Action)
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenSessionID returns the first 8 characters of the session ID.
func shortenSessionID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatHTTPDetails writes HTTP-layer details.
func formatHTTPDetails(w io.Writer, httpEvent *log.HTTPEvent) {
	if httpEvent.Method != "" {
		fmt.Fprintf(w, "  %s %s\n", httpEvent.Method, httpEvent.URL)
	}
	if httpEvent.Status != 0 {
		fmt.Fprintf(w, "  Status: %d\n", httpEvent.Status)
	}
	fmt.Fprintf(w, "  Size: %d bytes\n", httpEvent.Size)
	if len(httpEvent.Body) > 0 {
		fmt.Fprintf(w, "  Body: %s", previewBody(httpEvent.Body))
		if httpEvent.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

// formatEnvelopeDetails writes envelope-layer details.
func formatEnvelopeDetails(w io.Writer, env *log.EnvelopeEvent) {
	fmt.Fprintf(w, "  Action: %s\n", env.Action)
	fmt.Fprintf(w, "  Size: %d bytes\n", env.Size)
	if env.Authenticated {
		fmt.Fprintln(w, "  Security: UsernameToken attached")
	}
	if len(env.Body) > 0 {
		fmt.Fprintf(w, "  Body: %s", previewBody(env.Body))
		if env.Truncated {
			fmt.Fprintf(w, " (truncated)")
		}
		fmt.Fprintln(w)
	}
}

// formatActionDetails writes action settlement details.
func formatActionDetails(w io.Writer, action *log.ActionEvent) {
	fmt.Fprintf(w, "  Action: %s\n", action.Action)
	fmt.Fprintf(w, "  Outcome: %s\n", action.Outcome)
	if action.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", action.Reason)
	}
	if action.Duration != nil {
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(*action.Duration))
	}
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  Entity: %s\n", sc.Entity.String())
	if sc.OldState != "" {
		fmt.Fprintf(w, "  %s -> %s\n", sc.OldState, sc.NewState)
	} else {
		fmt.Fprintf(w, "  -> %s\n", sc.NewState)
	}
	if sc.Reason != "" {
		fmt.Fprintf(w, "  Reason: %s\n", sc.Reason)
	}
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Layer: %s\n", err.Layer.String())
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// previewBody renders a captured body as one whitespace-collapsed line
// so multi-kilobyte envelopes do not flood the terminal.
func previewBody(body []byte) string {
	preview := strings.Join(strings.Fields(string(body)), " ")
	runes := []rune(preview)
	if len(runes) > bodyPreviewLimit {
		return string(runes[:bodyPreviewLimit]) + "..."
	}
	return preview
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// filterEvents returns events matching the filter criteria.
func filterEvents(events []log.Event, filter ViewFilter) []log.Event {
	var result []log.Event
	for _, e := range events {
		if filter.Layer != nil && e.Layer != *filter.Layer {
			continue
		}
		if filter.Direction != nil && e.Direction != *filter.Direction {
			continue
		}
		if filter.Category != nil && e.Category != *filter.Category {
			continue
		}
		result = append(result, e)
	}
	return result
}

// ParseLayerFlag parses a layer string from command-line flag (case-insensitive).
func ParseLayerFlag(s string) (log.Layer, error) {
	return parseLayer(s)
}

// parseLayer parses a layer string (case-insensitive).
func parseLayer(s string) (log.Layer, error) {
	switch strings.ToLower(s) {
	case "http":
		return log.LayerHTTP, nil
	case "envelope":
		return log.LayerEnvelope, nil
	case "action":
		return log.LayerAction, nil
	default:
		return 0, fmt.Errorf("invalid layer: %s (must be http, envelope, or action)", s)
	}
}

// ParseDirectionFlag parses a direction string from command-line flag (case-insensitive).
func ParseDirectionFlag(s string) (log.Direction, error) {
	return parseDirection(s)
}

// parseDirection parses a direction string (case-insensitive).
func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be message, state, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open capture file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		// Apply filter
		if filter.Layer != nil && event.Layer != *filter.Layer {
			continue
		}
		if filter.Direction != nil && event.Direction != *filter.Direction {
			continue
		}
		if filter.Category != nil && event.Category != *filter.Category {
			continue
		}

		formatEvent(output, event)
	}

	return nil
}

// Package log provides structured protocol capture for ONVIF sessions.
//
// This package defines the Logger interface and Event types for capturing
// protocol-level events at multiple layers (HTTP transport, SOAP envelope,
// action dispatch). It is separate from operational logging (slog) - protocol
// capture provides a complete machine-readable event trace for debugging
// device interoperability problems after the fact.
//
// # Basic Usage
//
// Applications configure capture by providing a Logger implementation:
//
//	// For development: log to console via slog
//	cfg.Capture = log.NewSlogAdapter(slog.Default())
//
//	// For production: write to binary file
//	cfg.Capture, _ = log.NewFileLogger("/var/log/onvif/session.olog")
//
//	// Both: use MultiLogger
//	cfg.Capture = log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    fileLogger,
//	)
//
// # Event Types
//
// Events are captured at multiple layers:
//   - HTTP: Raw request/response bodies (HTTPEvent)
//   - Envelope: Built SOAP envelopes before dispatch (EnvelopeEvent)
//   - Action: Dispatch settlements with outcome and duration (ActionEvent)
//
// Session lifecycle and clock-skew changes are recorded as
// StateChangeEvent; errors at any layer as ErrorEventData.
//
// # File Format
//
// Log files use CBOR encoding with .olog extension. The onvif-log CLI tool
// provides viewing, filtering, and export capabilities.
package log

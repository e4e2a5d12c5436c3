// Package transport dispatches SOAP envelopes to ONVIF device service
// endpoints over HTTP.
//
// The transport layer handles:
//   - HTTP POST with SOAP 1.2 content negotiation
//   - TLS, including PKCS#12 client certificates
//   - RFC 2617 HTTP digest authentication fallback
//   - Transport-layer capture logging
//
// # Protocol Stack
//
//	┌────────────────────────────────┐
//	│       SOAP 1.2 Envelopes       │
//	├────────────────────────────────┤
//	│          HTTP POST             │
//	├────────────────────────────────┤
//	│       TLS (optional)           │
//	├────────────────────────────────┤
//	│            TCP                 │
//	└────────────────────────────────┘
//
// # Authentication
//
// Most devices authenticate at the message layer through the
// WS-Security header carried inside the envelope; the transport passes
// those envelopes through untouched. Some devices instead (or
// additionally) protect the service endpoint with HTTP digest. For
// those, enable DigestAuth in the ClientConfig and the client answers
// 401 challenges with RFC 2617 digest credentials. No other retry is
// performed at this layer.
//
// # Errors
//
// Every failure is reported as *Error. When a response was received
// its status code and raw body are preserved so callers can diagnose
// device-specific behavior.
package transport

package transport

import "fmt"

// Error describes a failed SOAP exchange with a device.
type Error struct {
	// Op is the exchange phase that failed: "request" (building the
	// HTTP request), "post" (the round trip or a fault/status
	// failure), "read" (draining the response body) or "parse"
	// (decoding the response XML).
	Op string

	// Status is the HTTP status code, when a response was received.
	// Zero when the failure happened before any response arrived.
	Status int

	// RawBody preserves the response body for diagnosis, when one was
	// read. Devices frequently put the useful detail in a fault body
	// the status line does not show.
	RawBody []byte

	// Err is the underlying cause.
	Err error
}

// Error returns a one-line description of the failure.
func (e *Error) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("transport %s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("transport %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

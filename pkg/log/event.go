package log

import (
	"time"
)

// MaxEventBodySize caps the number of payload bytes stored in a single
// event. Larger bodies are truncated; the Truncated flag records that.
const MaxEventBodySize = 4096

// TruncateBody returns at most MaxEventBodySize bytes of b and whether
// truncation happened. The returned slice is a copy.
func TruncateBody(b []byte) ([]byte, bool) {
	if len(b) == 0 {
		return nil, false
	}
	n := len(b)
	truncated := false
	if n > MaxEventBodySize {
		n = MaxEventBodySize
		truncated = true
	}
	out := make([]byte, n)
	copy(out, b[:n])
	return out, truncated
}

// Event represents a protocol log event captured at any layer.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// SessionID uniquely identifies the capturing session (UUID).
	SessionID string `cbor:"2,keyasint"`

	// Direction indicates message flow.
	Direction Direction `cbor:"3,keyasint"`

	// Layer where the event was captured.
	Layer Layer `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Endpoint is the device service address the event relates to.
	Endpoint string `cbor:"6,keyasint,omitempty"`

	// Type-specific payload (one of these will be set).
	HTTP        *HTTPEvent        `cbor:"10,keyasint,omitempty"` // HTTP layer
	Envelope    *EnvelopeEvent    `cbor:"11,keyasint,omitempty"` // SOAP envelope layer
	Action      *ActionEvent      `cbor:"12,keyasint,omitempty"` // Action dispatch layer
	StateChange *StateChangeEvent `cbor:"13,keyasint,omitempty"` // Session/skew state
	Error       *ErrorEventData   `cbor:"14,keyasint,omitempty"` // Errors at any layer
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn indicates an incoming message.
	DirectionIn Direction = 0
	// DirectionOut indicates an outgoing message.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Layer indicates which protocol layer captured the event.
type Layer uint8

const (
	// LayerHTTP is the transport layer (raw request/response bodies).
	LayerHTTP Layer = 0
	// LayerEnvelope is the SOAP message layer (built envelopes).
	LayerEnvelope Layer = 1
	// LayerAction is the action dispatch layer.
	LayerAction Layer = 2
)

// String returns the layer name.
func (l Layer) String() string {
	switch l {
	case LayerHTTP:
		return "HTTP"
	case LayerEnvelope:
		return "ENVELOPE"
	case LayerAction:
		return "ACTION"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage indicates a protocol message (request/response).
	CategoryMessage Category = 0
	// CategoryState indicates a state change.
	CategoryState Category = 1
	// CategoryError indicates an error event.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// HTTPEvent captures one HTTP message at the transport layer.
type HTTPEvent struct {
	// Method is the HTTP method (requests only).
	Method string `cbor:"1,keyasint,omitempty"`

	// URL is the request URL (requests only).
	URL string `cbor:"2,keyasint,omitempty"`

	// Status is the HTTP status code (responses only).
	Status int `cbor:"3,keyasint,omitempty"`

	// Size is the full body size in bytes.
	Size int `cbor:"4,keyasint"`

	// Body is the message body (may be truncated).
	Body []byte `cbor:"5,keyasint,omitempty"`

	// Truncated indicates if Body was truncated.
	Truncated bool `cbor:"6,keyasint,omitempty"`
}

// EnvelopeEvent captures a built SOAP envelope before dispatch.
type EnvelopeEvent struct {
	// Action is the protocol action the envelope carries.
	Action string `cbor:"1,keyasint"`

	// Size is the full envelope size in bytes.
	Size int `cbor:"2,keyasint"`

	// Body is the envelope text (may be truncated).
	Body []byte `cbor:"3,keyasint,omitempty"`

	// Truncated indicates if Body was truncated.
	Truncated bool `cbor:"4,keyasint,omitempty"`

	// Authenticated records whether a security header was attached.
	Authenticated bool `cbor:"5,keyasint,omitempty"`
}

// Action settlement outcomes.
const (
	// OutcomeResolved marks a call that completed successfully.
	OutcomeResolved = "resolved"
	// OutcomeRejected marks a call that settled with an error.
	OutcomeRejected = "rejected"
)

// ActionEvent captures the settlement of one dispatched action.
type ActionEvent struct {
	// Action is the protocol action name.
	Action string `cbor:"1,keyasint"`

	// Outcome is OutcomeResolved or OutcomeRejected.
	Outcome string `cbor:"2,keyasint"`

	// Reason carries the rejection error text, if any.
	Reason string `cbor:"3,keyasint,omitempty"`

	// Duration is the time from dispatch to settlement.
	// Stored as nanoseconds.
	Duration *time.Duration `cbor:"4,keyasint,omitempty"`
}

// StateChangeEvent captures session lifecycle and skew changes.
type StateChangeEvent struct {
	// Entity being changed.
	Entity StateEntity `cbor:"1,keyasint"`

	// OldState is the previous state (may be empty).
	OldState string `cbor:"2,keyasint,omitempty"`

	// NewState is the new state.
	NewState string `cbor:"3,keyasint"`

	// Reason for the change (if available).
	Reason string `cbor:"4,keyasint,omitempty"`
}

// StateEntity indicates what entity changed state.
type StateEntity uint8

const (
	// StateEntitySession indicates a session lifecycle change.
	StateEntitySession StateEntity = 0
	// StateEntityClockSkew indicates a recorded clock-skew change.
	StateEntityClockSkew StateEntity = 1
)

// String returns the state entity name.
func (s StateEntity) String() string {
	switch s {
	case StateEntitySession:
		return "SESSION"
	case StateEntityClockSkew:
		return "CLOCK_SKEW"
	default:
		return "UNKNOWN"
	}
}

// ErrorEventData captures errors at any layer.
type ErrorEventData struct {
	// Layer where the error occurred.
	Layer Layer `cbor:"1,keyasint"`

	// Message is the error message.
	Message string `cbor:"2,keyasint"`

	// Context describes what operation was being performed.
	Context string `cbor:"3,keyasint,omitempty"`
}

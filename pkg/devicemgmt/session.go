package devicemgmt

import (
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/onvif-protocol/onvif-go/pkg/log"
	"github.com/onvif-protocol/onvif-go/pkg/transport"
)

// Config configures a Session.
type Config struct {
	// XAddr is the device service endpoint, e.g.
	// "http://192.168.1.64/onvif/device_service".
	XAddr string

	// Username and Password authenticate requests through a
	// WS-Security UsernameToken. Both empty means unauthenticated
	// requests; setting only one is a configuration error.
	Username string
	Password string

	// Transport dispatches built envelopes. When nil, a
	// transport.Client with default configuration is used.
	Transport transport.Dispatcher

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// Capture receives envelope, action and state protocol events
	// (optional).
	Capture log.Logger

	// CaptureID identifies this session in capture events.
	// Defaults to a random UUID.
	CaptureID string
}

// Validate checks the configuration for inconsistencies.
func (c *Config) Validate() error {
	if c.XAddr == "" {
		return fmt.Errorf("%w: XAddr is required", ErrInvalidConfig)
	}
	endpoint, err := url.Parse(c.XAddr)
	if err != nil {
		return fmt.Errorf("%w: XAddr: %v", ErrInvalidConfig, err)
	}
	if endpoint.Scheme != "http" && endpoint.Scheme != "https" {
		return fmt.Errorf("%w: XAddr scheme must be http or https", ErrInvalidConfig)
	}
	if endpoint.Host == "" {
		return fmt.Errorf("%w: XAddr host is required", ErrInvalidConfig)
	}
	if (c.Username == "") != (c.Password == "") {
		return fmt.Errorf("%w: username and password must be set together", ErrInvalidConfig)
	}
	return nil
}

// Session is a stateful client for one device's Device Management
// service.
//
// The zero value is an unconfigured session: every action rejects with
// ErrNotConfigured until Configure succeeds. NewSession returns a
// configured session directly.
//
// A Session is safe for concurrent use. Actions may be dispatched
// concurrently with no queueing or mutual exclusion; the clock-skew
// estimate is the only mutable field and the last completed time
// synchronization wins.
type Session struct {
	configureMu sync.Mutex
	configured  atomic.Bool

	// Identity fields are written once by Configure and read-only
	// afterwards.
	endpoint   *url.URL
	username   string
	password   string
	dispatcher transport.Dispatcher
	logger     *slog.Logger
	capture    log.Logger
	captureID  string

	// skewMillis is the current clock-skew estimate in milliseconds
	// (device time minus local time).
	skewMillis atomic.Int64

	// now is the wall clock; tests substitute it.
	now func() time.Time
}

// NewSession creates a configured session.
func NewSession(config Config) (*Session, error) {
	s := &Session{}
	if err := s.Configure(config); err != nil {
		return nil, err
	}
	return s, nil
}

// Configure initializes the session identity. It must be called exactly
// once before any action is dispatched; a second call fails with
// ErrAlreadyConfigured.
func (s *Session) Configure(config Config) error {
	if err := config.Validate(); err != nil {
		return err
	}

	s.configureMu.Lock()
	defer s.configureMu.Unlock()

	if s.configured.Load() {
		return ErrAlreadyConfigured
	}

	dispatcher := config.Transport
	if dispatcher == nil {
		client, err := transport.NewClient(transport.DefaultClientConfig())
		if err != nil {
			return fmt.Errorf("failed to create transport: %w", err)
		}
		dispatcher = client
	}

	captureID := config.CaptureID
	if captureID == "" {
		captureID = uuid.NewString()
	}

	// Validate already parsed this successfully.
	endpoint, err := url.Parse(config.XAddr)
	if err != nil {
		return fmt.Errorf("%w: XAddr: %v", ErrInvalidConfig, err)
	}

	s.endpoint = endpoint
	s.username = config.Username
	s.password = config.Password
	s.dispatcher = dispatcher
	s.logger = config.Logger
	s.capture = config.Capture
	s.captureID = captureID

	// Publish the identity fields: Invoke loads this flag before
	// reading any of them.
	s.configured.Store(true)

	if s.logger != nil {
		s.logger.Debug("Configure: session configured",
			"endpoint", endpoint.String(),
			"authenticated", config.Username != "",
			"captureID", captureID)
	}
	s.captureState(log.StateEntitySession, "unconfigured", "configured", "")

	return nil
}

// Endpoint returns the configured device service endpoint, or nil when
// the session is unconfigured.
func (s *Session) Endpoint() *url.URL {
	if !s.configured.Load() {
		return nil
	}
	endpoint := *s.endpoint
	return &endpoint
}

// CaptureID returns the identifier stamped on this session's capture
// events, or empty when the session is unconfigured.
func (s *Session) CaptureID() string {
	if !s.configured.Load() {
		return ""
	}
	return s.captureID
}

// ClockSkew returns the current estimate of device time minus local
// time. Zero until the first successful time synchronization.
func (s *Session) ClockSkew() time.Duration {
	return time.Duration(s.skewMillis.Load()) * time.Millisecond
}

// recordSkew stores the skew derived from one time-synchronization
// response: device UTC minus the local instant the response was
// captured. The store is unconditional; when synchronizations race,
// the last one to complete wins.
func (s *Session) recordSkew(deviceUTC, observedLocal time.Time) {
	skew := deviceUTC.Sub(observedLocal).Milliseconds()
	previous := s.skewMillis.Swap(skew)

	if s.logger != nil {
		s.logger.Debug("recordSkew: clock skew updated",
			"skewMs", skew,
			"previousMs", previous)
	}
	s.captureState(log.StateEntityClockSkew,
		fmt.Sprintf("%dms", previous),
		fmt.Sprintf("%dms", skew),
		"time synchronization")
}

// clock returns the session wall clock.
func (s *Session) clock() time.Time {
	if s.now != nil {
		return s.now()
	}
	return time.Now()
}

// captureEvent stamps the session identity onto event and hands it to
// the capture logger, when one is configured.
func (s *Session) captureEvent(event log.Event) {
	if s.capture == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	event.SessionID = s.captureID
	if s.endpoint != nil {
		event.Endpoint = s.endpoint.String()
	}
	s.capture.Log(event)
}

// captureState records a state transition in the capture log.
func (s *Session) captureState(entity log.StateEntity, oldState, newState, reason string) {
	s.captureEvent(log.Event{
		Direction: log.DirectionOut,
		Layer:     log.LayerAction,
		Category:  log.CategoryState,
		StateChange: &log.StateChangeEvent{
			Entity:   entity,
			OldState: oldState,
			NewState: newState,
			Reason:   reason,
		},
	})
}

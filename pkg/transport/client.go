package transport

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	dac "github.com/xinsnake/go-http-digest-auth-client"

	"github.com/onvif-protocol/onvif-go/pkg/log"
	"github.com/onvif-protocol/onvif-go/pkg/soap"
)

const (
	// DefaultTimeout bounds a single exchange, including the digest
	// re-issue when HTTP digest authentication is enabled.
	DefaultTimeout = 10 * time.Second

	// MaxResponseSize caps how many response bytes are read.
	// Device management responses are small; anything beyond this is
	// a misbehaving device.
	MaxResponseSize = 4 << 20

	userAgent = "onvif-go/1.0"
)

// Dispatcher posts SOAP envelopes to a device service endpoint and
// returns the parsed response. It is the seam between action dispatch
// and the network.
type Dispatcher interface {
	// Do posts envelope to endpoint. action is the full action URI,
	// carried in the HTTP headers. Implementations must be safe for
	// concurrent use.
	Do(ctx context.Context, endpoint *url.URL, action string, envelope string) (*soap.Response, error)
}

// ClientConfig configures a SOAP HTTP client.
type ClientConfig struct {
	// Timeout bounds each exchange. Applied through the underlying
	// http.Client, so it also covers the digest re-issue.
	Timeout time.Duration

	// TLSInsecureSkipVerify disables server certificate verification
	// for https endpoints.
	TLSInsecureSkipVerify bool

	// ClientCertFile is an optional PKCS#12 bundle presented as the
	// TLS client certificate.
	ClientCertFile string

	// ClientCertPassword decrypts ClientCertFile.
	ClientCertPassword string

	// DigestAuth enables RFC 2617 HTTP digest authentication for
	// devices that protect the endpoint at the HTTP layer instead of
	// through WS-Security.
	DigestAuth bool

	// DigestUsername and DigestPassword are the HTTP digest
	// credentials. Only consulted when DigestAuth is set.
	DigestUsername string
	DigestPassword string

	// Logger for transport diagnostics (optional).
	Logger *slog.Logger

	// Capture receives HTTP-layer protocol events (optional).
	Capture log.Logger

	// CaptureID identifies this client's traffic in capture events.
	CaptureID string
}

// DefaultClientConfig returns a client configuration with default values.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout: DefaultTimeout,
	}
}

// Client is a Dispatcher over HTTP POST. A Client is safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	digest     *dac.DigestTransport
	logger     *slog.Logger
	capture    log.Logger
	captureID  string
}

// Compile-time interface satisfaction check.
var _ Dispatcher = (*Client)(nil)

// NewClient creates a SOAP HTTP client with the given configuration.
func NewClient(config ClientConfig) (*Client, error) {
	if config.Timeout == 0 {
		config.Timeout = DefaultTimeout
	}

	tlsConfig, err := newTLSConfig(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create TLS config: %w", err)
	}

	httpClient := &http.Client{
		Timeout: config.Timeout,
	}
	if tlsConfig != nil {
		httpClient.Transport = &http.Transport{TLSClientConfig: tlsConfig}
	}

	client := &Client{
		httpClient: httpClient,
		logger:     config.Logger,
		capture:    config.Capture,
		captureID:  config.CaptureID,
	}

	if config.DigestAuth {
		t := dac.NewTransport(config.DigestUsername, config.DigestPassword)
		client.digest = &t
		client.digest.HTTPClient = httpClient
	}

	return client, nil
}

// Do posts envelope to endpoint and returns the parsed SOAP response.
//
// The action URI is carried both in the SOAP 1.2 Content-Type action
// parameter and in a separate SOAPAction header, because fielded
// devices disagree on which one they read.
//
// Any received response body is preserved on the returned *Error, and
// a response that is itself a SOAP fault is reported as an error even
// when the device answered 200.
func (c *Client) Do(ctx context.Context, endpoint *url.URL, action string, envelope string) (*soap.Response, error) {
	if endpoint == nil {
		return nil, &Error{Op: "request", Err: errors.New("nil endpoint")}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(envelope))
	if err != nil {
		return nil, &Error{Op: "request", Err: err}
	}
	req.Header.Set("Content-Type", fmt.Sprintf("application/soap+xml; charset=utf-8; action=%q", action))
	req.Header.Set("SOAPAction", action)
	req.Header.Set("User-Agent", userAgent)

	if c.logger != nil {
		c.logger.Debug("Do: posting request",
			"endpoint", endpoint.String(),
			"action", action,
			"size", len(envelope))
	}
	c.captureHTTP(log.DirectionOut, endpoint.String(), &log.HTTPEvent{
		Method: http.MethodPost,
		URL:    endpoint.String(),
		Size:   len(envelope),
	}, []byte(envelope))

	resp, err := c.roundTrip(req)
	if err != nil {
		c.captureError(endpoint.String(), err, "HTTP round trip")
		return nil, &Error{Op: "post", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseSize))
	if err != nil {
		c.captureError(endpoint.String(), err, "reading response body")
		return nil, &Error{Op: "read", Status: resp.StatusCode, Err: err}
	}

	if c.logger != nil {
		c.logger.Debug("Do: received response",
			"endpoint", endpoint.String(),
			"action", action,
			"status", resp.StatusCode,
			"size", len(body))
	}
	c.captureHTTP(log.DirectionIn, endpoint.String(), &log.HTTPEvent{
		Status: resp.StatusCode,
		Size:   len(body),
	}, body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		statusErr := &Error{
			Op:      "post",
			Status:  resp.StatusCode,
			RawBody: body,
			Err:     fmt.Errorf("http status %s", resp.Status),
		}
		// Fault bodies accompany 400/500 answers; surface their
		// reason instead of the bare status line when present.
		if parsed, perr := soap.ParseResponse(body); perr == nil {
			if fault := parsed.Fault(); fault != nil {
				statusErr.Err = fault
			}
		}
		return nil, statusErr
	}

	parsed, err := soap.ParseResponse(body)
	if err != nil {
		c.captureError(endpoint.String(), err, "parsing response")
		return nil, &Error{Op: "parse", Status: resp.StatusCode, RawBody: body, Err: err}
	}

	if fault := parsed.Fault(); fault != nil {
		return nil, &Error{Op: "post", Status: resp.StatusCode, RawBody: body, Err: fault}
	}

	return parsed, nil
}

// roundTrip performs the HTTP exchange, answering a digest challenge
// when digest authentication is configured. The digest transport
// buffers and re-issues the request itself; the configured client
// timeout still applies to the whole exchange.
func (c *Client) roundTrip(req *http.Request) (*http.Response, error) {
	if c.digest != nil {
		return c.digest.RoundTrip(req)
	}
	return c.httpClient.Do(req)
}

// captureHTTP records one HTTP message in the capture log.
func (c *Client) captureHTTP(direction log.Direction, endpoint string, httpEvent *log.HTTPEvent, body []byte) {
	if c.capture == nil {
		return
	}
	httpEvent.Body, httpEvent.Truncated = log.TruncateBody(body)
	c.capture.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: c.captureID,
		Direction: direction,
		Layer:     log.LayerHTTP,
		Category:  log.CategoryMessage,
		Endpoint:  endpoint,
		HTTP:      httpEvent,
	})
}

// captureError records a transport-layer failure in the capture log.
func (c *Client) captureError(endpoint string, err error, context string) {
	if c.capture == nil {
		return
	}
	c.capture.Log(log.Event{
		Timestamp: time.Now(),
		SessionID: c.captureID,
		Direction: log.DirectionIn,
		Layer:     log.LayerHTTP,
		Category:  log.CategoryError,
		Endpoint:  endpoint,
		Error: &log.ErrorEventData{
			Layer:   log.LayerHTTP,
			Message: err.Error(),
			Context: context,
		},
	})
}

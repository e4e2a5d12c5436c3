package devicemgmt

import (
	"context"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/onvif-protocol/onvif-go/pkg/log"
	"github.com/onvif-protocol/onvif-go/pkg/soap"
)

const testXAddr = "http://192.0.2.10/onvif/device_service"

// soapDocument wraps a body fragment in a SOAP 1.2 envelope the way
// devices render responses.
func soapDocument(body string) []byte {
	return []byte(`<?xml version="1.0" encoding="UTF-8"?>` +
		`<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://www.w3.org/2003/05/soap-envelope"` +
		` xmlns:tds="http://www.onvif.org/ver10/device/wsdl"` +
		` xmlns:tt="http://www.onvif.org/ver10/schema">` +
		`<SOAP-ENV:Body>` + body + `</SOAP-ENV:Body>` +
		`</SOAP-ENV:Envelope>`)
}

// parseDocument parses a device response fixture.
func parseDocument(t *testing.T, body string) *soap.Response {
	t.Helper()
	resp, err := soap.ParseResponse(soapDocument(body))
	require.NoError(t, err)
	return resp
}

// newTestSession returns a configured, authenticated session whose
// dispatches land in spy.
func newTestSession(t *testing.T, spy *spyDispatcher) *Session {
	t.Helper()
	s, err := NewSession(Config{
		XAddr:     testXAddr,
		Username:  "admin",
		Password:  "secret",
		Transport: spy,
	})
	require.NoError(t, err)
	return s
}

// spyCall is one exchange recorded by spyDispatcher.
type spyCall struct {
	endpoint string
	action   string
	envelope string
}

// spyDispatcher stands in for the HTTP transport. It records every
// dispatched call and replies with canned responses.
type spyDispatcher struct {
	mu    sync.Mutex
	calls []spyCall

	// resp and err are the reply for every call. respond, when set,
	// takes precedence and is consulted per call.
	resp    *soap.Response
	err     error
	respond func(call spyCall) (*soap.Response, error)
}

func (d *spyDispatcher) Do(_ context.Context, endpoint *url.URL, action string, envelope string) (*soap.Response, error) {
	call := spyCall{action: action, envelope: envelope}
	if endpoint != nil {
		call.endpoint = endpoint.String()
	}
	d.mu.Lock()
	d.calls = append(d.calls, call)
	respond, resp, err := d.respond, d.resp, d.err
	d.mu.Unlock()

	if respond != nil {
		return respond(call)
	}
	if resp == nil && err == nil {
		return soap.ParseResponse(soapDocument(""))
	}
	return resp, err
}

func (d *spyDispatcher) count() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.calls)
}

func (d *spyDispatcher) last() spyCall {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.calls) == 0 {
		return spyCall{}
	}
	return d.calls[len(d.calls)-1]
}

// recordingCapture collects capture events for assertions.
type recordingCapture struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recordingCapture) Log(event log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingCapture) all() []log.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]log.Event, len(r.events))
	copy(out, r.events)
	return out
}

var _ log.Logger = (*recordingCapture)(nil)

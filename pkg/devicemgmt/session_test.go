package devicemgmt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onvif-protocol/onvif-go/pkg/log"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{
			name:   "authenticated",
			config: Config{XAddr: testXAddr, Username: "admin", Password: "secret"},
		},
		{
			name:   "anonymous",
			config: Config{XAddr: testXAddr},
		},
		{
			name:   "https endpoint",
			config: Config{XAddr: "https://192.0.2.10/onvif/device_service"},
		},
		{
			name:    "missing xaddr",
			config:  Config{},
			wantErr: true,
		},
		{
			name:    "unparseable xaddr",
			config:  Config{XAddr: "http://192.0.2.10:not-a-port/"},
			wantErr: true,
		},
		{
			name:    "wrong scheme",
			config:  Config{XAddr: "ftp://192.0.2.10/onvif"},
			wantErr: true,
		},
		{
			name:    "missing host",
			config:  Config{XAddr: "http:///onvif/device_service"},
			wantErr: true,
		},
		{
			name:    "username without password",
			config:  Config{XAddr: testXAddr, Username: "admin"},
			wantErr: true,
		},
		{
			name:    "password without username",
			config:  Config{XAddr: testXAddr, Password: "secret"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewSession(t *testing.T) {
	spy := &spyDispatcher{}
	s := newTestSession(t, spy)

	require.NotNil(t, s.Endpoint())
	assert.Equal(t, testXAddr, s.Endpoint().String())
	assert.NotEmpty(t, s.CaptureID())
	assert.Equal(t, time.Duration(0), s.ClockSkew())
}

func TestNewSessionInvalidConfig(t *testing.T) {
	s, err := NewSession(Config{XAddr: "ftp://192.0.2.10/onvif"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.Nil(t, s)
}

func TestConfigureTwice(t *testing.T) {
	s := newTestSession(t, &spyDispatcher{})

	err := s.Configure(Config{XAddr: testXAddr, Transport: &spyDispatcher{}})
	assert.ErrorIs(t, err, ErrAlreadyConfigured)
}

func TestUnconfiguredSession(t *testing.T) {
	var s Session

	assert.Nil(t, s.Endpoint())
	assert.Empty(t, s.CaptureID())

	pending := s.Invoke(context.Background(), ActionGetHostname, nil)
	resp, err := pending.Outcome()
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestConfigureCaptureState(t *testing.T) {
	capture := &recordingCapture{}
	s, err := NewSession(Config{
		XAddr:     testXAddr,
		Transport: &spyDispatcher{},
		Capture:   capture,
		CaptureID: "11111111-2222-3333-4444-555555555555",
	})
	require.NoError(t, err)
	assert.Equal(t, "11111111-2222-3333-4444-555555555555", s.CaptureID())

	events := capture.all()
	require.Len(t, events, 1)
	event := events[0]
	assert.Equal(t, s.CaptureID(), event.SessionID)
	assert.Equal(t, testXAddr, event.Endpoint)
	assert.Equal(t, log.CategoryState, event.Category)
	require.NotNil(t, event.StateChange)
	assert.Equal(t, log.StateEntitySession, event.StateChange.Entity)
	assert.Equal(t, "unconfigured", event.StateChange.OldState)
	assert.Equal(t, "configured", event.StateChange.NewState)
}

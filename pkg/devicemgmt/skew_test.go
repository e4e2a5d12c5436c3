package devicemgmt

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onvif-protocol/onvif-go/pkg/log"
	"github.com/onvif-protocol/onvif-go/pkg/soap"
)

// systemDateTimeResponse renders a complete GetSystemDateAndTime reply
// reporting utc as the device clock.
func systemDateTimeResponse(utc time.Time) string {
	return fmt.Sprintf(`<tds:GetSystemDateAndTimeResponse><tds:SystemDateAndTime>`+
		`<tt:DateTimeType>NTP</tt:DateTimeType>`+
		`<tt:DaylightSavings>false</tt:DaylightSavings>`+
		`<tt:TimeZone><tt:TZ>CST-8</tt:TZ></tt:TimeZone>`+
		`<tt:UTCDateTime>`+
		`<tt:Time><tt:Hour>%d</tt:Hour><tt:Minute>%d</tt:Minute><tt:Second>%d</tt:Second></tt:Time>`+
		`<tt:Date><tt:Year>%d</tt:Year><tt:Month>%d</tt:Month><tt:Day>%d</tt:Day></tt:Date>`+
		`</tt:UTCDateTime>`+
		`</tds:SystemDateAndTime></tds:GetSystemDateAndTimeResponse>`,
		utc.Hour(), utc.Minute(), utc.Second(), utc.Year(), int(utc.Month()), utc.Day())
}

func TestSystemDateAndTimeRecordsSkew(t *testing.T) {
	// The device clock trails the local one by five seconds.
	local := time.Date(2024, 3, 10, 12, 0, 5, 0, time.UTC)
	device := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	capture := &recordingCapture{}
	spy := &spyDispatcher{resp: parseDocument(t, systemDateTimeResponse(device))}
	s, err := NewSession(Config{
		XAddr:     testXAddr,
		Username:  "admin",
		Password:  "secret",
		Transport: spy,
		Capture:   capture,
	})
	require.NoError(t, err)
	s.now = func() time.Time { return local }

	deviceTime, err := s.GetSystemDateAndTime(context.Background())
	require.NoError(t, err)
	require.NotNil(t, deviceTime.UTC)
	assert.True(t, deviceTime.UTC.Equal(device))
	assert.Equal(t, "CST-8", deviceTime.TimeZone)
	assert.Equal(t, "NTP", deviceTime.DateTimeType)
	require.NotNil(t, deviceTime.DaylightSavings)
	assert.False(t, *deviceTime.DaylightSavings)

	assert.Equal(t, -5*time.Second, s.ClockSkew())

	// The skew change lands in the capture log between the envelope
	// and the settlement.
	events := capture.all()
	require.Len(t, events, 4)
	skewChange := events[2]
	require.NotNil(t, skewChange.StateChange)
	assert.Equal(t, log.StateEntityClockSkew, skewChange.StateChange.Entity)
	assert.Equal(t, "0ms", skewChange.StateChange.OldState)
	assert.Equal(t, "-5000ms", skewChange.StateChange.NewState)
	assert.Equal(t, "time synchronization", skewChange.StateChange.Reason)
}

func TestSystemDateAndTimeIncompleteResponse(t *testing.T) {
	// Second is missing from the device reply.
	incomplete := `<tds:GetSystemDateAndTimeResponse><tds:SystemDateAndTime>` +
		`<tt:DateTimeType>Manual</tt:DateTimeType>` +
		`<tt:UTCDateTime>` +
		`<tt:Time><tt:Hour>12</tt:Hour><tt:Minute>0</tt:Minute></tt:Time>` +
		`<tt:Date><tt:Year>2024</tt:Year><tt:Month>3</tt:Month><tt:Day>10</tt:Day></tt:Date>` +
		`</tt:UTCDateTime>` +
		`</tds:SystemDateAndTime></tds:GetSystemDateAndTimeResponse>`

	capture := &recordingCapture{}
	spy := &spyDispatcher{resp: parseDocument(t, incomplete)}
	s, err := NewSession(Config{
		XAddr:     testXAddr,
		Transport: spy,
		Capture:   capture,
	})
	require.NoError(t, err)
	s.skewMillis.Store(2500)

	deviceTime, err := s.GetSystemDateAndTime(context.Background())

	// The call still resolves; only the skew update is skipped.
	require.NoError(t, err)
	assert.Nil(t, deviceTime.UTC)
	assert.Equal(t, "Manual", deviceTime.DateTimeType)
	assert.Equal(t, 2500*time.Millisecond, s.ClockSkew())

	var sawMiss bool
	for _, event := range capture.all() {
		if event.Category == log.CategoryError && event.Error != nil {
			sawMiss = true
			assert.Contains(t, event.Error.Message, "no complete UTC time")
		}
	}
	assert.True(t, sawMiss, "expected the skipped update to be captured")
}

func TestSkewAppliedToSubsequentRequests(t *testing.T) {
	local := time.Date(2024, 3, 10, 12, 0, 5, 0, time.UTC)
	device := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

	timeResp := parseDocument(t, systemDateTimeResponse(device))
	hostResp := parseDocument(t, hostnameResponse)
	spy := &spyDispatcher{respond: func(call spyCall) (*soap.Response, error) {
		if strings.HasSuffix(call.action, "/GetSystemDateAndTime") {
			return timeResp, nil
		}
		return hostResp, nil
	}}
	s := newTestSession(t, spy)
	s.now = func() time.Time { return local }

	_, err := s.GetSystemDateAndTime(context.Background())
	require.NoError(t, err)
	require.Equal(t, -5*time.Second, s.ClockSkew())

	_, err = s.GetHostname(context.Background())
	require.NoError(t, err)

	// The follow-up request stamps local time shifted onto the device
	// clock: 12:00:05 local minus the five second skew.
	doc, err := soap.ParseResponse([]byte(spy.last().envelope))
	require.NoError(t, err)
	created := doc.Envelope().Get("Header").Get("Security").
		Get("UsernameToken").Get("Created").Text()
	assert.Equal(t, "2024-03-10T12:00:00.000Z", created)
}

func TestSkewLastCompletionWins(t *testing.T) {
	local := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	earlyResp := parseDocument(t, systemDateTimeResponse(local.Add(3*time.Second)))
	lateResp := parseDocument(t, systemDateTimeResponse(local.Add(-10*time.Second)))

	// The first call to arrive is held at the gate; the second one
	// answers immediately. Whichever goroutine wins the race, the
	// gated response always finishes last.
	var arrivals atomic.Int32
	gate := make(chan struct{})
	spy := &spyDispatcher{respond: func(spyCall) (*soap.Response, error) {
		if arrivals.Add(1) == 1 {
			<-gate
			return lateResp, nil
		}
		return earlyResp, nil
	}}
	s := newTestSession(t, spy)
	s.now = func() time.Time { return local }

	first := s.Invoke(context.Background(), ActionGetSystemDateAndTime, nil)
	second := s.Invoke(context.Background(), ActionGetSystemDateAndTime, nil)

	select {
	case <-first.Done():
	case <-second.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("no call settled")
	}
	assert.Equal(t, 3*time.Second, s.ClockSkew())

	close(gate)
	_, err := first.Wait(context.Background())
	require.NoError(t, err)
	_, err = second.Wait(context.Background())
	require.NoError(t, err)

	// The gated synchronization completed last, so its estimate stands.
	assert.Equal(t, -10*time.Second, s.ClockSkew())
}

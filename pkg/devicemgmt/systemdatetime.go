package devicemgmt

import (
	"time"

	"github.com/onvif-protocol/onvif-go/pkg/soap"
)

// DeviceTime is the device's view of its own clock, parsed from a
// GetSystemDateAndTime response.
type DeviceTime struct {
	// TimeZone is the device's POSIX TZ string, empty when absent.
	TimeZone string

	// DaylightSavings is tri-state: nil when the response omits it.
	DaylightSavings *bool

	// DateTimeType is "Manual", "NTP", or empty when absent.
	DateTimeType string

	// UTC is the device's UTC instant. nil when the response omits any
	// of the six numeric date/time fields; partial data is treated as
	// absent, never defaulted.
	UTC *time.Time
}

// deviceTimeOf extracts the device clock from a GetSystemDateAndTime
// response. Absence at any nesting level returns ok=false: that is "no
// time information", not an error, and callers leave the skew unchanged.
func deviceTimeOf(resp *soap.Response) (DeviceTime, bool) {
	systemDateTime := resp.Body().
		Get("GetSystemDateAndTimeResponse").
		Get("SystemDateAndTime")
	if systemDateTime == nil {
		return DeviceTime{}, false
	}

	deviceTime := DeviceTime{
		TimeZone:     systemDateTime.Get("TimeZone").Get("TZ").Text(),
		DateTimeType: systemDateTime.Get("DateTimeType").Text(),
	}
	if enabled, ok := systemDateTime.Get("DaylightSavings").Bool(); ok {
		deviceTime.DaylightSavings = &enabled
	}
	deviceTime.UTC = utcInstantOf(systemDateTime.Get("UTCDateTime"))

	return deviceTime, true
}

// utcInstantOf composes the six numeric date/time fields into a UTC
// instant. All six must be present; the fields are interpreted as UTC
// with no local-timezone involvement.
func utcInstantOf(utc *soap.Node) *time.Time {
	date := utc.Get("Date")
	clock := utc.Get("Time")

	year, okYear := date.Get("Year").Int()
	month, okMonth := date.Get("Month").Int()
	day, okDay := date.Get("Day").Int()
	hour, okHour := clock.Get("Hour").Int()
	minute, okMinute := clock.Get("Minute").Int()
	second, okSecond := clock.Get("Second").Int()

	if !okYear || !okMonth || !okDay || !okHour || !okMinute || !okSecond {
		return nil
	}

	instant := time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC)
	return &instant
}

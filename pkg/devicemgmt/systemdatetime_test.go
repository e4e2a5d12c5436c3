package devicemgmt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceTimeOf(t *testing.T) {
	t.Run("complete", func(t *testing.T) {
		resp := parseDocument(t, systemDateTimeResponse(
			time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)))

		deviceTime, ok := deviceTimeOf(resp)
		require.True(t, ok)
		require.NotNil(t, deviceTime.UTC)
		assert.Equal(t, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), *deviceTime.UTC)
		assert.Equal(t, "CST-8", deviceTime.TimeZone)
		assert.Equal(t, "NTP", deviceTime.DateTimeType)
		require.NotNil(t, deviceTime.DaylightSavings)
		assert.False(t, *deviceTime.DaylightSavings)
	})

	t.Run("daylight savings on", func(t *testing.T) {
		resp := parseDocument(t, `<tds:GetSystemDateAndTimeResponse>`+
			`<tds:SystemDateAndTime><tt:DaylightSavings>true</tt:DaylightSavings>`+
			`</tds:SystemDateAndTime></tds:GetSystemDateAndTimeResponse>`)

		deviceTime, ok := deviceTimeOf(resp)
		require.True(t, ok)
		require.NotNil(t, deviceTime.DaylightSavings)
		assert.True(t, *deviceTime.DaylightSavings)
	})

	t.Run("missing second", func(t *testing.T) {
		resp := parseDocument(t, `<tds:GetSystemDateAndTimeResponse>`+
			`<tds:SystemDateAndTime><tt:UTCDateTime>`+
			`<tt:Time><tt:Hour>12</tt:Hour><tt:Minute>30</tt:Minute></tt:Time>`+
			`<tt:Date><tt:Year>2024</tt:Year><tt:Month>3</tt:Month><tt:Day>10</tt:Day></tt:Date>`+
			`</tt:UTCDateTime></tds:SystemDateAndTime></tds:GetSystemDateAndTimeResponse>`)

		deviceTime, ok := deviceTimeOf(resp)
		require.True(t, ok)
		assert.Nil(t, deviceTime.UTC, "partial time must not be defaulted")
	})

	t.Run("non-numeric field", func(t *testing.T) {
		resp := parseDocument(t, `<tds:GetSystemDateAndTimeResponse>`+
			`<tds:SystemDateAndTime><tt:UTCDateTime>`+
			`<tt:Time><tt:Hour>12</tt:Hour><tt:Minute>30</tt:Minute><tt:Second>oops</tt:Second></tt:Time>`+
			`<tt:Date><tt:Year>2024</tt:Year><tt:Month>3</tt:Month><tt:Day>10</tt:Day></tt:Date>`+
			`</tt:UTCDateTime></tds:SystemDateAndTime></tds:GetSystemDateAndTimeResponse>`)

		deviceTime, ok := deviceTimeOf(resp)
		require.True(t, ok)
		assert.Nil(t, deviceTime.UTC)
	})

	t.Run("no UTCDateTime element", func(t *testing.T) {
		resp := parseDocument(t, `<tds:GetSystemDateAndTimeResponse>`+
			`<tds:SystemDateAndTime><tt:DateTimeType>Manual</tt:DateTimeType>`+
			`</tds:SystemDateAndTime></tds:GetSystemDateAndTimeResponse>`)

		deviceTime, ok := deviceTimeOf(resp)
		require.True(t, ok)
		assert.Nil(t, deviceTime.UTC)
		assert.Equal(t, "Manual", deviceTime.DateTimeType)
	})

	t.Run("missing SystemDateAndTime", func(t *testing.T) {
		resp := parseDocument(t, `<tds:GetSystemDateAndTimeResponse/>`)

		_, ok := deviceTimeOf(resp)
		assert.False(t, ok)
	})

	t.Run("unrelated body", func(t *testing.T) {
		resp := parseDocument(t, `<tds:GetHostnameResponse/>`)

		_, ok := deviceTimeOf(resp)
		assert.False(t, ok)
	})
}

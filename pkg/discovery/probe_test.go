package discovery

import (
	"context"
	"fmt"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/onvif-protocol/onvif-go/pkg/soap"
)

// probeMatchesResponse uses the gSOAP-style prefixes fielded devices
// answer with, which differ from the ones the probe declares.
const probeMatchesResponse = `<?xml version="1.0" encoding="UTF-8"?>` +
	`<SOAP-ENV:Envelope xmlns:SOAP-ENV="http://www.w3.org/2003/05/soap-envelope"` +
	` xmlns:wsa="http://schemas.xmlsoap.org/ws/2004/08/addressing"` +
	` xmlns:wsdd="http://schemas.xmlsoap.org/ws/2005/04/discovery"` +
	` xmlns:dn="http://www.onvif.org/ver10/network/wsdl">` +
	`<SOAP-ENV:Header>` +
	`<wsa:RelatesTo>urn:uuid:probe-1</wsa:RelatesTo>` +
	`<wsa:Action>http://schemas.xmlsoap.org/ws/2005/04/discovery/ProbeMatches</wsa:Action>` +
	`</SOAP-ENV:Header>` +
	`<SOAP-ENV:Body>` +
	`<wsdd:ProbeMatches>` +
	`<wsdd:ProbeMatch>` +
	`<wsa:EndpointReference><wsa:Address>urn:uuid:1419d68a-1dd2-11b2-a105-000000000000</wsa:Address></wsa:EndpointReference>` +
	`<wsdd:Types>dn:NetworkVideoTransmitter tds:Device</wsdd:Types>` +
	`<wsdd:Scopes>onvif://www.onvif.org/type/video_encoder onvif://www.onvif.org/name/Front%20Gate` +
	` onvif://www.onvif.org/hardware/IC-2000 onvif://www.onvif.org/location/dock</wsdd:Scopes>` +
	`<wsdd:XAddrs>http://192.0.2.7/onvif/device_service http://[2001:db8::7]/onvif/device_service</wsdd:XAddrs>` +
	`<wsdd:MetadataVersion>1</wsdd:MetadataVersion>` +
	`</wsdd:ProbeMatch>` +
	`</wsdd:ProbeMatches>` +
	`</SOAP-ENV:Body>` +
	`</SOAP-ENV:Envelope>`

func TestBuildProbe(t *testing.T) {
	typed := buildProbe("urn:uuid:probe-1", TypeNetworkVideoTransmitter)

	assert.True(t, strings.HasPrefix(typed, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, typed, `<a:MessageID>urn:uuid:probe-1</a:MessageID>`)
	assert.Contains(t, typed, `<a:To>urn:schemas-xmlsoap-org:ws:2005:04:discovery</a:To>`)
	assert.Contains(t, typed, `<a:Action>http://schemas.xmlsoap.org/ws/2005/04/discovery/Probe</a:Action>`)
	assert.Contains(t, typed, `<d:Types>dn:NetworkVideoTransmitter</d:Types>`)
	assert.Contains(t, typed, `xmlns:dn="http://www.onvif.org/ver10/network/wsdl"`)

	bare := buildProbe("urn:uuid:probe-2", "")
	assert.NotContains(t, bare, "<d:Types>")
	assert.Contains(t, bare, "<d:Probe></d:Probe>")
}

func TestParseProbeMatches(t *testing.T) {
	sent := map[string]bool{"urn:uuid:probe-1": true}

	devices := parseProbeMatches([]byte(probeMatchesResponse), sent)
	require.Len(t, devices, 1)

	device := devices[0]
	assert.Equal(t, "urn:uuid:1419d68a-1dd2-11b2-a105-000000000000", device.UUID)
	assert.Equal(t, []string{
		"http://192.0.2.7/onvif/device_service",
		"http://[2001:db8::7]/onvif/device_service",
	}, device.XAddrs)
	assert.Equal(t, []string{"dn:NetworkVideoTransmitter", "tds:Device"}, device.Types)
	assert.Equal(t, "Front Gate", device.Name)
	assert.Equal(t, "IC-2000", device.Hardware)
	assert.Equal(t, "dock", device.Location)
}

func TestParseProbeMatchesForeignRelatesTo(t *testing.T) {
	sent := map[string]bool{"urn:uuid:someone-else": true}

	devices := parseProbeMatches([]byte(probeMatchesResponse), sent)
	assert.Nil(t, devices, "answers to foreign probes must be dropped")
}

func TestParseProbeMatchesNoRelatesTo(t *testing.T) {
	response := strings.Replace(probeMatchesResponse,
		`<wsa:RelatesTo>urn:uuid:probe-1</wsa:RelatesTo>`, "", 1)
	sent := map[string]bool{"urn:uuid:probe-1": true}

	devices := parseProbeMatches([]byte(response), sent)
	assert.Len(t, devices, 1, "a match without RelatesTo is tolerated")
}

func TestParseProbeMatchesSkipsEmptyXAddrs(t *testing.T) {
	response := strings.Replace(probeMatchesResponse,
		"http://192.0.2.7/onvif/device_service http://[2001:db8::7]/onvif/device_service", "", 1)
	sent := map[string]bool{"urn:uuid:probe-1": true}

	devices := parseProbeMatches([]byte(response), sent)
	assert.Empty(t, devices)
}

func TestParseProbeMatchesGarbage(t *testing.T) {
	assert.Nil(t, parseProbeMatches([]byte("not an envelope"), nil))
}

func TestDefaultProbeConfig(t *testing.T) {
	config := DefaultProbeConfig()
	assert.Equal(t, MulticastAddress, config.Address)
	assert.Equal(t, ProbeTimeout, config.Timeout)
	assert.Equal(t, TypeNetworkVideoTransmitter, config.Types)
}

func TestProbeInterfaceMissing(t *testing.T) {
	_, err := Probe(context.Background(), ProbeConfig{
		Interface: "definitely-missing-0",
		Timeout:   50 * time.Millisecond,
	})
	assert.ErrorIs(t, err, ErrNoInterface)
}

// TestProbeLoopback runs a complete probe round against a responder on
// the loopback interface, standing in for a device.
func TestProbeLoopback(t *testing.T) {
	responder, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer responder.Close()

	// Answer every received probe with one match relating to it.
	go func() {
		buffer := make([]byte, maxDatagramSize)
		for {
			n, from, err := responder.ReadFrom(buffer)
			if err != nil {
				return
			}
			doc, err := soap.ParseResponse(buffer[:n])
			if err != nil {
				continue
			}
			messageID := doc.Envelope().Get("Header").Get("MessageID").Text()
			_, _ = responder.WriteTo([]byte(probeMatchAnswer(messageID)), from)
		}
	}()

	devices, err := Probe(context.Background(), ProbeConfig{
		Address: responder.LocalAddr().String(),
		Timeout: 600 * time.Millisecond,
	})
	require.NoError(t, err)
	require.Len(t, devices, 1, "answers to every probe of the round must merge")

	device := devices[0]
	assert.Equal(t, "urn:uuid:dev-1", device.UUID)
	assert.Equal(t, "Front Gate", device.Name)
	assert.Equal(t, "http://192.0.2.7/onvif/device_service", device.XAddr())
	require.NotNil(t, device.Addr)
	assert.True(t, device.Addr.IsLoopback())
}

func TestProbeLoopbackFilter(t *testing.T) {
	responder, err := net.ListenPacket("udp4", "127.0.0.1:0")
	require.NoError(t, err)
	defer responder.Close()

	go func() {
		buffer := make([]byte, maxDatagramSize)
		for {
			n, from, err := responder.ReadFrom(buffer)
			if err != nil {
				return
			}
			doc, err := soap.ParseResponse(buffer[:n])
			if err != nil {
				continue
			}
			messageID := doc.Envelope().Get("Header").Get("MessageID").Text()
			_, _ = responder.WriteTo([]byte(probeMatchAnswer(messageID)), from)
		}
	}()

	devices, err := Probe(context.Background(), ProbeConfig{
		Address: responder.LocalAddr().String(),
		Timeout: 400 * time.Millisecond,
		Filter:  FilterByHardware("IC-3000"),
	})
	require.NoError(t, err)
	assert.Empty(t, devices, "filter must drop the answering device")
}

// probeMatchAnswer renders a ProbeMatches envelope relating to the
// given probe MessageID.
func probeMatchAnswer(relatesTo string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>`+
		`<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"`+
		` xmlns:a="http://schemas.xmlsoap.org/ws/2004/08/addressing"`+
		` xmlns:d="http://schemas.xmlsoap.org/ws/2005/04/discovery">`+
		`<s:Header>`+
		`<a:RelatesTo>%s</a:RelatesTo>`+
		`<a:Action>http://schemas.xmlsoap.org/ws/2005/04/discovery/ProbeMatches</a:Action>`+
		`</s:Header>`+
		`<s:Body><d:ProbeMatches><d:ProbeMatch>`+
		`<a:EndpointReference><a:Address>urn:uuid:dev-1</a:Address></a:EndpointReference>`+
		`<d:Types>dn:NetworkVideoTransmitter</d:Types>`+
		`<d:Scopes>onvif://www.onvif.org/name/Front%%20Gate onvif://www.onvif.org/hardware/IC-2000</d:Scopes>`+
		`<d:XAddrs>http://192.0.2.7/onvif/device_service</d:XAddrs>`+
		`</d:ProbeMatch></d:ProbeMatches></s:Body>`+
		`</s:Envelope>`, relatesTo)
}

// Package onviftest provides a simulated ONVIF device for tests.
//
// Device serves the Device Management endpoint over httptest: it
// verifies WS-Security UsernameToken digests, answers the implemented
// actions with canned bodies derived from its public fields, and
// records every request it saw. The simulated clock can be shifted
// relative to the host clock to exercise skew compensation end to end.
package onviftest

import (
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/onvif-protocol/onvif-go/pkg/soap"
)

const soapContentType = "application/soap+xml; charset=utf-8"

// preAuthActions may be called without credentials, mirroring the
// bootstrap rules of real devices: the clock must be readable before
// a digest can be computed against it.
var preAuthActions = map[string]bool{
	"GetSystemDateAndTime": true,
	"GetWsdlUrl":           true,
}

// Request is one exchange recorded by the device.
type Request struct {
	// Action is the local name of the first body element.
	Action string

	// Envelope is the raw request body.
	Envelope []byte

	// ContentType is the received Content-Type header.
	ContentType string

	// Authorized records whether the security header verified (always
	// true when the device has no credentials configured).
	Authorized bool
}

// Device is a simulated ONVIF device. Configure the public fields
// before Start; they are read-only while the device is serving.
type Device struct {
	// Username and Password, when set, make the device verify the
	// WS-Security UsernameToken on every request outside the
	// pre-authentication set.
	Username string
	Password string

	// ClockOffset shifts the simulated device clock relative to the
	// host clock.
	ClockOffset time.Duration

	// CreatedWindow bounds how far the security header's Created
	// instant may drift from the device clock. Zero disables the
	// freshness check; digests are still verified.
	CreatedWindow time.Duration

	// OmitSecond drops the Second element from GetSystemDateAndTime
	// replies, a quirk seen on fielded firmwares.
	OmitSecond bool

	// Identity served by GetDeviceInformation.
	Manufacturer    string
	Model           string
	FirmwareVersion string
	SerialNumber    string
	HardwareID      string

	// Hostname served by GetHostname.
	Hostname string

	// DiscoveryMode served by GetDiscoveryMode.
	DiscoveryMode string

	// Scopes served by GetScopes, alternating Fixed/Configurable.
	Scopes []string

	// DNSServers served by GetDNS as manual IPv4 entries.
	DNSServers []string

	// Respond, when set, overrides reply construction for an action.
	// Returning ok=false falls back to the canned reply.
	Respond func(action string) (body string, ok bool)

	mu       sync.Mutex
	requests []Request
	server   *httptest.Server
}

// New returns a device with a plausible default identity and no
// credentials.
func New() *Device {
	return &Device{
		Manufacturer:    "Initech",
		Model:           "IC-2000",
		FirmwareVersion: "1.4.2",
		SerialNumber:    "IC2000-00017",
		HardwareID:      "17",
		Hostname:        "testcam",
		DiscoveryMode:   "Discoverable",
		Scopes: []string{
			"onvif://www.onvif.org/type/video_encoder",
			"onvif://www.onvif.org/name/IC-2000",
		},
		DNSServers: []string{"192.0.2.53"},
	}
}

// Start begins serving and returns the device service XAddr.
func (d *Device) Start() string {
	d.server = httptest.NewServer(http.HandlerFunc(d.handle))
	return d.XAddr()
}

// XAddr returns the device service endpoint, or "" before Start.
func (d *Device) XAddr() string {
	if d.server == nil {
		return ""
	}
	return d.server.URL + "/onvif/device_service"
}

// Close shuts the device down.
func (d *Device) Close() {
	if d.server != nil {
		d.server.Close()
	}
}

// Requests returns a copy of every recorded exchange.
func (d *Device) Requests() []Request {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Request, len(d.requests))
	copy(out, d.requests)
	return out
}

// LastRequest returns the most recent exchange.
func (d *Device) LastRequest() (Request, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.requests) == 0 {
		return Request{}, false
	}
	return d.requests[len(d.requests)-1], true
}

func (d *Device) record(req Request) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.requests = append(d.requests, req)
}

// now is the simulated device clock.
func (d *Device) now() time.Time {
	return time.Now().Add(d.ClockOffset)
}

func (d *Device) handle(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read failed", http.StatusInternalServerError)
		return
	}

	doc, err := soap.ParseResponse(body)
	if err != nil || doc.Body() == nil {
		d.fault(w, "s:Sender", "ter:WellFormed", "malformed envelope")
		return
	}

	action := ""
	if children := doc.Body().Each(); len(children) > 0 {
		action = children[0].Name()
	}

	authorized := d.authorize(doc)
	d.record(Request{
		Action:      action,
		Envelope:    body,
		ContentType: r.Header.Get("Content-Type"),
		Authorized:  authorized,
	})

	if !authorized && !preAuthActions[action] {
		d.fault(w, "s:Sender", "ter:NotAuthorized", "the action requested requires authorization")
		return
	}

	if d.Respond != nil {
		if custom, ok := d.Respond(action); ok {
			d.reply(w, custom)
			return
		}
	}

	switch action {
	case "GetSystemDateAndTime":
		d.reply(w, d.systemDateTimeBody())
	case "GetDeviceInformation":
		d.reply(w, d.deviceInformationBody())
	case "GetCapabilities":
		d.reply(w, d.capabilitiesBody())
	case "GetServiceCapabilities":
		d.reply(w, `<tds:GetServiceCapabilitiesResponse><tds:Capabilities>`+
			`<tds:Network IPFilter="false" ZeroConfiguration="false" IPVersion6="false"/>`+
			`<tds:Security TLS1.2="true" OnboardKeyGeneration="false"/>`+
			`<tds:System DiscoveryResolve="true" DiscoveryBye="true" RemoteDiscovery="false"/>`+
			`</tds:Capabilities></tds:GetServiceCapabilitiesResponse>`)
	case "GetServices":
		d.reply(w, d.servicesBody())
	case "GetHostname":
		d.reply(w, `<tds:GetHostnameResponse><tds:HostnameInformation>`+
			`<tt:FromDHCP>false</tt:FromDHCP>`+
			`<tt:Name>`+soap.EscapeText(d.Hostname)+`</tt:Name>`+
			`</tds:HostnameInformation></tds:GetHostnameResponse>`)
	case "GetScopes":
		d.reply(w, d.scopesBody())
	case "GetDiscoveryMode":
		d.reply(w, `<tds:GetDiscoveryModeResponse><tds:DiscoveryMode>`+
			d.DiscoveryMode+`</tds:DiscoveryMode></tds:GetDiscoveryModeResponse>`)
	case "GetDNS":
		d.reply(w, d.dnsBody())
	case "GetNetworkInterfaces":
		d.reply(w, `<tds:GetNetworkInterfacesResponse>`+
			`<tds:NetworkInterfaces token="eth0"><tt:Enabled>true</tt:Enabled>`+
			`<tt:Info><tt:Name>eth0</tt:Name><tt:HwAddress>02:42:c0:a8:01:40</tt:HwAddress><tt:MTU>1500</tt:MTU></tt:Info>`+
			`</tds:NetworkInterfaces></tds:GetNetworkInterfacesResponse>`)
	case "GetNetworkProtocols":
		d.reply(w, `<tds:GetNetworkProtocolsResponse>`+
			`<tds:NetworkProtocols><tt:Name>HTTP</tt:Name><tt:Enabled>true</tt:Enabled><tt:Port>80</tt:Port></tds:NetworkProtocols>`+
			`<tds:NetworkProtocols><tt:Name>RTSP</tt:Name><tt:Enabled>true</tt:Enabled><tt:Port>554</tt:Port></tds:NetworkProtocols>`+
			`</tds:GetNetworkProtocolsResponse>`)
	case "GetNetworkDefaultGateway":
		d.reply(w, `<tds:GetNetworkDefaultGatewayResponse><tds:NetworkGateway>`+
			`<tt:IPv4Address>192.0.2.1</tt:IPv4Address>`+
			`</tds:NetworkGateway></tds:GetNetworkDefaultGatewayResponse>`)
	case "SystemReboot":
		d.reply(w, `<tds:SystemRebootResponse><tds:Message>Rebooting in 30 seconds</tds:Message></tds:SystemRebootResponse>`)
	default:
		d.fault(w, "s:Receiver", "ter:ActionNotSupported", "the requested action is not supported")
	}
}

// authorize verifies the WS-Security UsernameToken: the digest must
// bind the nonce, the Created instant and the configured password, and
// Created must fall inside the freshness window when one is set.
func (d *Device) authorize(doc *soap.Response) bool {
	if d.Username == "" && d.Password == "" {
		return true
	}

	token := doc.Envelope().Get("Header").Get("Security").Get("UsernameToken")
	if token == nil {
		return false
	}
	if token.Get("Username").Text() != d.Username {
		return false
	}

	created := token.Get("Created").Text()
	nonce, err := base64.StdEncoding.DecodeString(token.Get("Nonce").Text())
	if err != nil || len(nonce) == 0 {
		return false
	}
	if token.Get("Password").Text() != soap.PasswordDigest(nonce, created, d.Password) {
		return false
	}

	if d.CreatedWindow > 0 {
		instant, err := time.Parse(time.RFC3339, created)
		if err != nil {
			return false
		}
		drift := instant.Sub(d.now())
		if drift < -d.CreatedWindow || drift > d.CreatedWindow {
			return false
		}
	}
	return true
}

func (d *Device) systemDateTimeBody() string {
	now := d.now().UTC()
	second := fmt.Sprintf("<tt:Second>%d</tt:Second>", now.Second())
	if d.OmitSecond {
		second = ""
	}
	return fmt.Sprintf(`<tds:GetSystemDateAndTimeResponse><tds:SystemDateAndTime>`+
		`<tt:DateTimeType>NTP</tt:DateTimeType>`+
		`<tt:DaylightSavings>false</tt:DaylightSavings>`+
		`<tt:TimeZone><tt:TZ>UTC</tt:TZ></tt:TimeZone>`+
		`<tt:UTCDateTime>`+
		`<tt:Time><tt:Hour>%d</tt:Hour><tt:Minute>%d</tt:Minute>%s</tt:Time>`+
		`<tt:Date><tt:Year>%d</tt:Year><tt:Month>%d</tt:Month><tt:Day>%d</tt:Day></tt:Date>`+
		`</tt:UTCDateTime>`+
		`</tds:SystemDateAndTime></tds:GetSystemDateAndTimeResponse>`,
		now.Hour(), now.Minute(), second, now.Year(), int(now.Month()), now.Day())
}

func (d *Device) deviceInformationBody() string {
	return `<tds:GetDeviceInformationResponse>` +
		`<tds:Manufacturer>` + soap.EscapeText(d.Manufacturer) + `</tds:Manufacturer>` +
		`<tds:Model>` + soap.EscapeText(d.Model) + `</tds:Model>` +
		`<tds:FirmwareVersion>` + soap.EscapeText(d.FirmwareVersion) + `</tds:FirmwareVersion>` +
		`<tds:SerialNumber>` + soap.EscapeText(d.SerialNumber) + `</tds:SerialNumber>` +
		`<tds:HardwareId>` + soap.EscapeText(d.HardwareID) + `</tds:HardwareId>` +
		`</tds:GetDeviceInformationResponse>`
}

func (d *Device) capabilitiesBody() string {
	return `<tds:GetCapabilitiesResponse><tds:Capabilities>` +
		`<tt:Device><tt:XAddr>` + d.XAddr() + `</tt:XAddr>` +
		`<tt:Network><tt:IPFilter>false</tt:IPFilter><tt:ZeroConfiguration>false</tt:ZeroConfiguration></tt:Network>` +
		`<tt:System><tt:DiscoveryResolve>true</tt:DiscoveryResolve><tt:DiscoveryBye>true</tt:DiscoveryBye></tt:System>` +
		`</tt:Device>` +
		`<tt:Media><tt:XAddr>` + d.mediaXAddr() + `</tt:XAddr></tt:Media>` +
		`</tds:Capabilities></tds:GetCapabilitiesResponse>`
}

func (d *Device) servicesBody() string {
	return `<tds:GetServicesResponse>` +
		`<tds:Service><tds:Namespace>http://www.onvif.org/ver10/device/wsdl</tds:Namespace>` +
		`<tds:XAddr>` + d.XAddr() + `</tds:XAddr>` +
		`<tds:Version><tt:Major>2</tt:Major><tt:Minor>42</tt:Minor></tds:Version></tds:Service>` +
		`<tds:Service><tds:Namespace>http://www.onvif.org/ver10/media/wsdl</tds:Namespace>` +
		`<tds:XAddr>` + d.mediaXAddr() + `</tds:XAddr>` +
		`<tds:Version><tt:Major>2</tt:Major><tt:Minor>60</tt:Minor></tds:Version></tds:Service>` +
		`</tds:GetServicesResponse>`
}

func (d *Device) mediaXAddr() string {
	if d.server == nil {
		return ""
	}
	return d.server.URL + "/onvif/media_service"
}

func (d *Device) scopesBody() string {
	var b strings.Builder
	b.WriteString(`<tds:GetScopesResponse>`)
	for i, scope := range d.Scopes {
		def := "Fixed"
		if i%2 == 1 {
			def = "Configurable"
		}
		b.WriteString(`<tds:Scopes><tt:ScopeDef>` + def + `</tt:ScopeDef>`)
		b.WriteString(`<tt:ScopeItem>` + soap.EscapeText(scope) + `</tt:ScopeItem></tds:Scopes>`)
	}
	b.WriteString(`</tds:GetScopesResponse>`)
	return b.String()
}

func (d *Device) dnsBody() string {
	var b strings.Builder
	b.WriteString(`<tds:GetDNSResponse><tds:DNSInformation>`)
	b.WriteString(`<tt:FromDHCP>false</tt:FromDHCP>`)
	b.WriteString(`<tt:SearchDomain>example.net</tt:SearchDomain>`)
	for _, server := range d.DNSServers {
		b.WriteString(`<tt:DNSManual><tt:Type>IPv4</tt:Type>`)
		b.WriteString(`<tt:IPv4Address>` + server + `</tt:IPv4Address></tt:DNSManual>`)
	}
	b.WriteString(`</tds:DNSInformation></tds:GetDNSResponse>`)
	return b.String()
}

// reply writes body wrapped in a response envelope.
func (d *Device) reply(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", soapContentType)
	_, _ = io.WriteString(w, d.envelope(body))
}

// fault writes a SOAP 1.2 fault. Devices answer these with HTTP 400.
func (d *Device) fault(w http.ResponseWriter, code, subcode, reason string) {
	body := `<s:Fault>` +
		`<s:Code><s:Value>` + code + `</s:Value>` +
		`<s:Subcode><s:Value>` + subcode + `</s:Value></s:Subcode></s:Code>` +
		`<s:Reason><s:Text xml:lang="en">` + soap.EscapeText(reason) + `</s:Text></s:Reason>` +
		`</s:Fault>`
	w.Header().Set("Content-Type", soapContentType)
	w.WriteHeader(http.StatusBadRequest)
	_, _ = io.WriteString(w, d.envelope(body))
}

func (d *Device) envelope(body string) string {
	return `<?xml version="1.0" encoding="UTF-8"?>` +
		`<s:Envelope xmlns:s="http://www.w3.org/2003/05/soap-envelope"` +
		` xmlns:tds="http://www.onvif.org/ver10/device/wsdl"` +
		` xmlns:tt="http://www.onvif.org/ver10/schema"` +
		` xmlns:ter="http://www.onvif.org/ver10/error">` +
		`<s:Body>` + body + `</s:Body></s:Envelope>`
}

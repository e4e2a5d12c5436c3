package discovery

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/onvif-protocol/onvif-go/pkg/soap"
)

const (
	namespaceAddressing  = "http://schemas.xmlsoap.org/ws/2004/08/addressing"
	namespaceDiscovery   = "http://schemas.xmlsoap.org/ws/2005/04/discovery"
	namespaceNetworkWSDL = "http://www.onvif.org/ver10/network/wsdl"

	actionProbe = "http://schemas.xmlsoap.org/ws/2005/04/discovery/Probe"
	discoveryTo = "urn:schemas-xmlsoap-org:ws:2005:04:discovery"
)

const (
	// resendDelay separates the two probe rounds.
	resendDelay = 120 * time.Millisecond

	// readSlice bounds a single read so the loop re-checks the
	// context and the overall deadline.
	readSlice = 250 * time.Millisecond

	maxDatagramSize = 64 << 10
)

// ProbeConfig configures one WS-Discovery probe round.
type ProbeConfig struct {
	// Address is the destination for probe datagrams. Defaults to
	// MulticastAddress; a unicast "host:3702" probes a single device.
	Address string

	// Interface restricts the probe to the named network interface.
	// Empty binds the wildcard address and uses the default route.
	Interface string

	// Timeout is how long to collect answers after the first send.
	// Defaults to ProbeTimeout. A context deadline that expires sooner
	// takes precedence.
	Timeout time.Duration

	// Types is the WS-Discovery type filter of the first probe.
	// Defaults to TypeNetworkVideoTransmitter. An unfiltered second
	// probe is always sent alongside it.
	Types string

	// Filter drops non-matching devices when set.
	Filter FilterFunc

	// Logger for discovery diagnostics (optional).
	Logger *slog.Logger
}

// DefaultProbeConfig returns the default probe configuration.
func DefaultProbeConfig() ProbeConfig {
	return ProbeConfig{
		Address: MulticastAddress,
		Timeout: ProbeTimeout,
		Types:   TypeNetworkVideoTransmitter,
	}
}

// Probe sends WS-Discovery Probe messages and collects the matches that
// answer before the window closes. Answers from the same device are
// merged; devices are returned in arrival order. Nothing answering is
// an empty slice, not an error. A context cancelled while collecting
// returns what was already collected.
func Probe(ctx context.Context, config ProbeConfig) ([]Device, error) {
	if config.Address == "" {
		config.Address = MulticastAddress
	}
	if config.Timeout <= 0 {
		config.Timeout = ProbeTimeout
	}
	if config.Types == "" {
		config.Types = TypeNetworkVideoTransmitter
	}

	target, err := net.ResolveUDPAddr("udp4", config.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve probe address: %w", err)
	}

	listenAddr := ":0"
	if config.Interface != "" {
		ip, err := interfaceIPv4(config.Interface)
		if err != nil {
			return nil, err
		}
		listenAddr = net.JoinHostPort(ip.String(), "0")
	}
	conn, err := net.ListenPacket("udp4", listenAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to open probe socket: %w", err)
	}
	defer conn.Close()

	// One typed probe for conforming devices, one bare probe for
	// firmwares that only answer unfiltered probes. Each carries its
	// own MessageID; answers must relate to one of them.
	sent := make(map[string]bool, 2)
	probes := make([]string, 0, 2)
	for _, types := range []string{config.Types, ""} {
		id := "urn:uuid:" + uuid.NewString()
		sent[id] = true
		probes = append(probes, buildProbe(id, types))
	}

	deadline := time.Now().Add(config.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	// Discovery runs on lossy UDP; each probe is sent twice.
	for attempt := 0; attempt < 2; attempt++ {
		for _, probe := range probes {
			if _, err := conn.WriteTo([]byte(probe), target); err != nil {
				return nil, fmt.Errorf("failed to send probe: %w", err)
			}
		}
		if attempt == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(resendDelay):
			}
		}
	}
	if config.Logger != nil {
		config.Logger.Debug("Probe: probes sent",
			"target", target.String(),
			"types", config.Types)
	}

	found := make(map[string]*Device)
	var order []string
	buffer := make([]byte, maxDatagramSize)
	for {
		if ctx.Err() != nil {
			break
		}
		remain := time.Until(deadline)
		if remain <= 0 {
			break
		}
		wait := readSlice
		if remain < wait {
			wait = remain
		}
		_ = conn.SetReadDeadline(time.Now().Add(wait))
		n, from, err := conn.ReadFrom(buffer)
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			return nil, fmt.Errorf("failed to read probe answer: %w", err)
		}

		for _, device := range parseProbeMatches(buffer[:n], sent) {
			if udp, ok := from.(*net.UDPAddr); ok {
				device.Addr = udp.IP
			}
			if config.Filter != nil && !config.Filter(&device) {
				continue
			}
			key := device.UUID
			if key == "" {
				key = device.XAddr()
			}
			if existing, ok := found[key]; ok {
				existing.merge(device)
				continue
			}
			answer := device
			found[key] = &answer
			order = append(order, key)
			if config.Logger != nil {
				config.Logger.Debug("Probe: device answered",
					"uuid", device.UUID,
					"xaddr", device.XAddr(),
					"from", from.String())
			}
		}
	}

	devices := make([]Device, 0, len(order))
	for _, key := range order {
		devices = append(devices, *found[key])
	}
	return devices, nil
}

// buildProbe renders one WS-Discovery Probe envelope. An empty types
// string omits the Types filter element.
func buildProbe(messageID, types string) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	b.WriteString(`<s:Envelope xmlns:s="` + soap.NamespaceEnvelope + `"`)
	b.WriteString(` xmlns:a="` + namespaceAddressing + `"`)
	b.WriteString(` xmlns:d="` + namespaceDiscovery + `"`)
	b.WriteString(` xmlns:dn="` + namespaceNetworkWSDL + `">`)
	b.WriteString(`<s:Header>`)
	b.WriteString(`<a:MessageID>` + soap.EscapeText(messageID) + `</a:MessageID>`)
	b.WriteString(`<a:To>` + discoveryTo + `</a:To>`)
	b.WriteString(`<a:Action>` + actionProbe + `</a:Action>`)
	b.WriteString(`</s:Header>`)
	b.WriteString(`<s:Body><d:Probe>`)
	if types != "" {
		b.WriteString(`<d:Types>` + soap.EscapeText(types) + `</d:Types>`)
	}
	b.WriteString(`</d:Probe></s:Body>`)
	b.WriteString(`</s:Envelope>`)
	return b.String()
}

// parseProbeMatches decodes the devices announced in one datagram.
// Answers relating to a probe this run did not send are dropped; an
// absent RelatesTo is tolerated because some firmwares omit it.
func parseProbeMatches(data []byte, sent map[string]bool) []Device {
	doc, err := soap.ParseResponse(data)
	if err != nil {
		return nil
	}
	relatesTo := doc.Envelope().Get("Header").Get("RelatesTo").Text()
	if relatesTo != "" && len(sent) > 0 && !sent[relatesTo] {
		return nil
	}

	var devices []Device
	for _, match := range doc.Body().Get("ProbeMatches").All("ProbeMatch") {
		device := Device{
			UUID:   match.Get("EndpointReference").Get("Address").Text(),
			XAddrs: strings.Fields(match.Get("XAddrs").Text()),
			Scopes: strings.Fields(match.Get("Scopes").Text()),
			Types:  strings.Fields(match.Get("Types").Text()),
		}
		if len(device.XAddrs) == 0 {
			continue
		}
		device.decodeScopes()
		devices = append(devices, device)
	}
	return devices
}

// interfaceIPv4 returns the first IPv4 address of the named interface.
func interfaceIPv4(name string) (net.IP, error) {
	iface, err := net.InterfaceByName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoInterface, name)
	}
	addrs, err := iface.Addrs()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrNoInterface, name)
	}
	for _, addr := range addrs {
		var ip net.IP
		switch value := addr.(type) {
		case *net.IPNet:
			ip = value.IP
		case *net.IPAddr:
			ip = value.IP
		}
		if ip = ip.To4(); ip != nil {
			return ip, nil
		}
	}
	return nil, fmt.Errorf("%w: %s has no IPv4 address", ErrNoInterface, name)
}

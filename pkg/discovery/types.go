package discovery

import (
	"errors"
	"net"
	"net/url"
	"strings"
	"time"
)

// WS-Discovery constants.
const (
	// MulticastAddress is the WS-Discovery multicast group and port.
	MulticastAddress = "239.255.255.250:3702"

	// ProbeTimeout is the default window for collecting probe matches.
	ProbeTimeout = 3 * time.Second

	// TypeNetworkVideoTransmitter is the probe type filter that matches
	// ONVIF video devices.
	TypeNetworkVideoTransmitter = "dn:NetworkVideoTransmitter"
)

// mDNS constants.
const (
	// ServiceONVIF is the DNS-SD service type some devices advertise.
	ServiceONVIF = "_onvif._tcp"

	// Domain is the mDNS domain.
	Domain = "local"

	// BrowseTimeout is the default timeout for mDNS browsing.
	BrowseTimeout = 10 * time.Second
)

// Scope URI prefixes carrying device identity attributes.
const (
	ScopePrefixName     = "onvif://www.onvif.org/name/"
	ScopePrefixHardware = "onvif://www.onvif.org/hardware/"
	ScopePrefixLocation = "onvif://www.onvif.org/location/"
)

// Discovery errors.
var (
	// ErrNoInterface indicates the configured network interface does not
	// exist or carries no usable IPv4 address.
	ErrNoInterface = errors.New("no usable network interface")

	// ErrNotFound indicates no device matched before the context ended.
	ErrNotFound = errors.New("device not found")
)

// Device is one ONVIF endpoint found on the network.
type Device struct {
	// UUID is the stable endpoint reference (urn:uuid:...), when the
	// device announced one. Empty for mDNS results.
	UUID string

	// Name is decoded from the name scope, or taken from the mDNS
	// instance name.
	Name string

	// Hardware is decoded from the hardware scope.
	Hardware string

	// Location is decoded from the location scope.
	Location string

	// XAddrs are the device service endpoints, usually one per network
	// interface the device answers on.
	XAddrs []string

	// Scopes is the full scope URI list as sent.
	Scopes []string

	// Types is the WS-Discovery type list as sent.
	Types []string

	// Addr is the source address the announcement arrived from.
	Addr net.IP
}

// XAddr returns the first announced device service endpoint, or "".
func (d *Device) XAddr() string {
	if len(d.XAddrs) == 0 {
		return ""
	}
	return d.XAddrs[0]
}

// decodeScopes fills the identity fields from the well-known scope
// prefixes. Later scopes win when a prefix repeats.
func (d *Device) decodeScopes() {
	for _, scope := range d.Scopes {
		switch {
		case strings.HasPrefix(scope, ScopePrefixName):
			d.Name = unescapeScope(strings.TrimPrefix(scope, ScopePrefixName))
		case strings.HasPrefix(scope, ScopePrefixHardware):
			d.Hardware = unescapeScope(strings.TrimPrefix(scope, ScopePrefixHardware))
		case strings.HasPrefix(scope, ScopePrefixLocation):
			d.Location = unescapeScope(strings.TrimPrefix(scope, ScopePrefixLocation))
		}
	}
}

// merge folds another announcement for the same device into d.
// Addresses, scopes and types are unioned; identity fields are
// re-decoded from the merged scope list.
func (d *Device) merge(other Device) {
	d.XAddrs = mergeStrings(d.XAddrs, other.XAddrs)
	d.Scopes = mergeStrings(d.Scopes, other.Scopes)
	d.Types = mergeStrings(d.Types, other.Types)
	if d.UUID == "" {
		d.UUID = other.UUID
	}
	if d.Addr == nil {
		d.Addr = other.Addr
	}
	d.decodeScopes()
	if d.Name == "" {
		d.Name = other.Name
	}
}

// unescapeScope decodes a percent-encoded scope value, falling back to
// the raw text when the encoding is broken.
func unescapeScope(value string) string {
	decoded, err := url.PathUnescape(value)
	if err != nil {
		return value
	}
	return decoded
}

// mergeStrings appends the values of next that are missing from base,
// preserving order and dropping blanks.
func mergeStrings(base, next []string) []string {
	seen := make(map[string]struct{}, len(base))
	for _, value := range base {
		seen[value] = struct{}{}
	}
	for _, value := range next {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		base = append(base, value)
	}
	return base
}

// FilterFunc drops devices a discovery run should not report.
type FilterFunc func(*Device) bool

// FilterByScope returns a filter matching devices that announce at
// least one scope with the given prefix.
func FilterByScope(prefix string) FilterFunc {
	return func(d *Device) bool {
		for _, scope := range d.Scopes {
			if strings.HasPrefix(scope, prefix) {
				return true
			}
		}
		return false
	}
}

// FilterByHardware returns a filter matching devices whose hardware
// scope equals the given model.
func FilterByHardware(model string) FilterFunc {
	return func(d *Device) bool {
		return d.Hardware == model
	}
}

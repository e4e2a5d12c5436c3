// Package discovery finds ONVIF devices on the local network.
//
// Two mechanisms are implemented:
//
// # WS-Discovery (Probe)
//
// The mechanism the ONVIF core specification mandates. Probe multicasts
// a WS-Discovery Probe for dn:NetworkVideoTransmitter to
// 239.255.255.250:3702 and collects ProbeMatch answers until the window
// closes. Each match carries the device service XAddrs plus scope URIs
// describing the device. A second, unfiltered probe is sent in the same
// round because some firmwares only answer probes without a type filter.
//
// # mDNS (Browser)
//
// Some devices additionally advertise _onvif._tcp over mDNS/DNS-SD.
// Browser wraps a zeroconf browse and converts service entries into the
// same Device type, deriving the device service XAddr from the
// advertised host, port and optional "path" TXT record.
//
// # Scopes
//
// Devices publish identity attributes as scope URIs:
//
//	onvif://www.onvif.org/name/<name>
//	onvif://www.onvif.org/hardware/<model>
//	onvif://www.onvif.org/location/<where>
//
// Values are percent-encoded. Device decodes the three well-known
// prefixes into fields and keeps the full scope list as sent.
package discovery

package devicemgmt

import (
	"context"

	"github.com/onvif-protocol/onvif-go/pkg/soap"
)

// DeviceInformation is the identity block from GetDeviceInformation.
type DeviceInformation struct {
	Manufacturer    string
	Model           string
	FirmwareVersion string
	SerialNumber    string
	HardwareID      string
}

// Service is one entry of a GetServices response.
type Service struct {
	Namespace string
	XAddr     string
	Major     int
	Minor     int
}

// HostnameInformation is the device hostname configuration.
type HostnameInformation struct {
	FromDHCP bool
	Name     string
}

// Scope is one device scope with its definition class
// ("Fixed" or "Configurable").
type Scope struct {
	Def string
	URI string
}

// DNSInformation is the device DNS configuration. Servers merges the
// manual and DHCP-derived address lists.
type DNSInformation struct {
	FromDHCP      bool
	SearchDomains []string
	Servers       []string
}

// NetworkProtocol is one transport protocol the device serves.
type NetworkProtocol struct {
	Name    string
	Enabled bool
	Ports   []int
}

// NetworkGateway is the device default gateway configuration.
type NetworkGateway struct {
	IPv4 []string
	IPv6 []string
}

// GetSystemDateAndTime queries the device clock. On success the
// session's clock-skew estimate is refreshed before the call returns;
// a response without complete time fields leaves the skew unchanged
// and still succeeds.
func (s *Session) GetSystemDateAndTime(ctx context.Context) (DeviceTime, error) {
	resp, err := s.Invoke(ctx, ActionGetSystemDateAndTime, nil).Wait(ctx)
	if err != nil {
		return DeviceTime{}, err
	}
	deviceTime, _ := deviceTimeOf(resp)
	return deviceTime, nil
}

// GetDeviceInformation returns the device identity block.
func (s *Session) GetDeviceInformation(ctx context.Context) (*DeviceInformation, error) {
	resp, err := s.Invoke(ctx, ActionGetDeviceInformation, nil).Wait(ctx)
	if err != nil {
		return nil, err
	}
	info := resp.Body().Get("GetDeviceInformationResponse")
	return &DeviceInformation{
		Manufacturer:    info.Get("Manufacturer").Text(),
		Model:           info.Get("Model").Text(),
		FirmwareVersion: info.Get("FirmwareVersion").Text(),
		SerialNumber:    info.Get("SerialNumber").Text(),
		HardwareID:      info.Get("HardwareId").Text(),
	}, nil
}

// GetCapabilities returns the raw capabilities tree for the given
// category ("All" when empty). The tree shape varies too much across
// firmwares to flatten into structs.
func (s *Session) GetCapabilities(ctx context.Context, category string) (*soap.Node, error) {
	params := Params{}
	if category != "" {
		params["Category"] = category
	}
	resp, err := s.Invoke(ctx, ActionGetCapabilities, params).Wait(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Body().Get("GetCapabilitiesResponse").Get("Capabilities"), nil
}

// GetServices lists the service endpoints the device exposes.
func (s *Session) GetServices(ctx context.Context, includeCapability bool) ([]Service, error) {
	resp, err := s.Invoke(ctx, ActionGetServices, Params{"IncludeCapability": includeCapability}).Wait(ctx)
	if err != nil {
		return nil, err
	}
	var services []Service
	for _, node := range resp.Body().Get("GetServicesResponse").All("Service") {
		version := node.Get("Version")
		major, _ := version.Get("Major").Int()
		minor, _ := version.Get("Minor").Int()
		services = append(services, Service{
			Namespace: node.Get("Namespace").Text(),
			XAddr:     node.Get("XAddr").Text(),
			Major:     major,
			Minor:     minor,
		})
	}
	return services, nil
}

// GetServiceCapabilities returns the raw device service capabilities
// tree.
func (s *Session) GetServiceCapabilities(ctx context.Context) (*soap.Node, error) {
	resp, err := s.Invoke(ctx, ActionGetServiceCapabilities, nil).Wait(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Body().Get("GetServiceCapabilitiesResponse").Get("Capabilities"), nil
}

// GetHostname returns the device hostname configuration.
func (s *Session) GetHostname(ctx context.Context) (*HostnameInformation, error) {
	resp, err := s.Invoke(ctx, ActionGetHostname, nil).Wait(ctx)
	if err != nil {
		return nil, err
	}
	info := resp.Body().Get("GetHostnameResponse").Get("HostnameInformation")
	fromDHCP, _ := info.Get("FromDHCP").Bool()
	return &HostnameInformation{
		FromDHCP: fromDHCP,
		Name:     info.Get("Name").Text(),
	}, nil
}

// GetScopes lists the device's scope parameters.
func (s *Session) GetScopes(ctx context.Context) ([]Scope, error) {
	resp, err := s.Invoke(ctx, ActionGetScopes, nil).Wait(ctx)
	if err != nil {
		return nil, err
	}
	var scopes []Scope
	for _, node := range resp.Body().Get("GetScopesResponse").All("Scopes") {
		scopes = append(scopes, Scope{
			Def: node.Get("ScopeDef").Text(),
			URI: node.Get("ScopeItem").Text(),
		})
	}
	return scopes, nil
}

// GetDiscoveryMode returns "Discoverable" or "NonDiscoverable".
func (s *Session) GetDiscoveryMode(ctx context.Context) (string, error) {
	resp, err := s.Invoke(ctx, ActionGetDiscoveryMode, nil).Wait(ctx)
	if err != nil {
		return "", err
	}
	return resp.Body().Get("GetDiscoveryModeResponse").Get("DiscoveryMode").Text(), nil
}

// GetDNS returns the device DNS configuration.
func (s *Session) GetDNS(ctx context.Context) (*DNSInformation, error) {
	resp, err := s.Invoke(ctx, ActionGetDNS, nil).Wait(ctx)
	if err != nil {
		return nil, err
	}
	info := resp.Body().Get("GetDNSResponse").Get("DNSInformation")
	fromDHCP, _ := info.Get("FromDHCP").Bool()
	dns := &DNSInformation{FromDHCP: fromDHCP}
	for _, node := range info.All("SearchDomain") {
		dns.SearchDomains = append(dns.SearchDomains, node.Text())
	}
	for _, name := range []string{"DNSFromDHCP", "DNSManual"} {
		for _, node := range info.All(name) {
			if addr := node.Get("IPv4Address").Text(); addr != "" {
				dns.Servers = append(dns.Servers, addr)
			}
			if addr := node.Get("IPv6Address").Text(); addr != "" {
				dns.Servers = append(dns.Servers, addr)
			}
		}
	}
	return dns, nil
}

// GetNetworkInterfaces returns the raw network interface tree; its
// shape is deeply firmware-dependent.
func (s *Session) GetNetworkInterfaces(ctx context.Context) (*soap.Node, error) {
	resp, err := s.Invoke(ctx, ActionGetNetworkInterfaces, nil).Wait(ctx)
	if err != nil {
		return nil, err
	}
	return resp.Body().Get("GetNetworkInterfacesResponse"), nil
}

// GetNetworkProtocols lists the protocols the device serves.
func (s *Session) GetNetworkProtocols(ctx context.Context) ([]NetworkProtocol, error) {
	resp, err := s.Invoke(ctx, ActionGetNetworkProtocols, nil).Wait(ctx)
	if err != nil {
		return nil, err
	}
	var protocols []NetworkProtocol
	for _, node := range resp.Body().Get("GetNetworkProtocolsResponse").All("NetworkProtocols") {
		enabled, _ := node.Get("Enabled").Bool()
		protocol := NetworkProtocol{
			Name:    node.Get("Name").Text(),
			Enabled: enabled,
		}
		for _, port := range node.All("Port") {
			if value, ok := port.Int(); ok {
				protocol.Ports = append(protocol.Ports, value)
			}
		}
		protocols = append(protocols, protocol)
	}
	return protocols, nil
}

// GetNetworkDefaultGateway returns the configured default gateways.
func (s *Session) GetNetworkDefaultGateway(ctx context.Context) (*NetworkGateway, error) {
	resp, err := s.Invoke(ctx, ActionGetNetworkDefaultGateway, nil).Wait(ctx)
	if err != nil {
		return nil, err
	}
	gateway := &NetworkGateway{}
	node := resp.Body().Get("GetNetworkDefaultGatewayResponse").Get("NetworkGateway")
	for _, addr := range node.All("IPv4Address") {
		gateway.IPv4 = append(gateway.IPv4, addr.Text())
	}
	for _, addr := range node.All("IPv6Address") {
		gateway.IPv6 = append(gateway.IPv6, addr.Text())
	}
	return gateway, nil
}

// SystemReboot asks the device to reboot and returns the device's
// farewell message.
func (s *Session) SystemReboot(ctx context.Context) (string, error) {
	resp, err := s.Invoke(ctx, ActionSystemReboot, nil).Wait(ctx)
	if err != nil {
		return "", err
	}
	return resp.Body().Get("SystemRebootResponse").Get("Message").Text(), nil
}

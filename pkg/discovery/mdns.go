package discovery

import (
	"context"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/enbility/zeroconf/v3"
)

// defaultServicePath is the device service path assumed for mDNS
// results; fielded devices overwhelmingly serve it there.
const defaultServicePath = "/onvif/device_service"

// BrowserConfig configures mDNS browsing.
type BrowserConfig struct {
	// Service is the DNS-SD service type to browse.
	// Defaults to ServiceONVIF.
	Service string

	// Domain is the browse domain. Defaults to Domain.
	Domain string

	// Interface restricts browsing to one network interface.
	// Empty means all multicast-capable interfaces.
	Interface string

	// Filter drops non-matching devices when set.
	Filter FilterFunc
}

// DefaultBrowserConfig returns the default browser configuration.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Service: ServiceONVIF,
		Domain:  Domain,
	}
}

// Browser finds devices that advertise themselves over mDNS/DNS-SD.
// WS-Discovery is the primary mechanism; browsing catches devices on
// networks where UDP to 3702 is filtered but mDNS is not.
type Browser struct {
	config BrowserConfig

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewBrowser creates an mDNS browser.
func NewBrowser(config BrowserConfig) (*Browser, error) {
	if config.Service == "" {
		config.Service = ServiceONVIF
	}
	if config.Domain == "" {
		config.Domain = Domain
	}
	return &Browser{config: config}, nil
}

// Browse emits devices as they are announced until ctx ends.
// Announcements for an instance already emitted merge their addresses
// into the emitted device; a withdrawn instance is forgotten so a
// re-announcement emits it again.
func (b *Browser) Browse(ctx context.Context) (<-chan *Device, error) {
	ctx, cancel := context.WithCancel(ctx)
	b.mu.Lock()
	b.cancel = cancel
	b.mu.Unlock()

	out := make(chan *Device)
	entries := make(chan *zeroconf.ServiceEntry)
	removed := make(chan *zeroconf.ServiceEntry)

	go func() {
		defer close(out)

		devices := make(map[string]*Device)
		for {
			select {
			case entry, ok := <-entries:
				if !ok {
					return
				}
				raw := serviceEntryOf(entry)
				device := raw.ToDevice()
				if device == nil {
					continue
				}
				if b.config.Filter != nil && !b.config.Filter(device) {
					continue
				}

				if existing, found := devices[raw.Instance]; found {
					existing.merge(*device)
					continue
				}
				devices[raw.Instance] = device
				select {
				case out <- device:
				case <-ctx.Done():
					return
				}

			case entry, ok := <-removed:
				if ok && entry != nil {
					delete(devices, entry.Instance)
				}

			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		_ = zeroconf.Browse(ctx, b.config.Service, b.config.Domain, entries, removed, b.options()...)
	}()

	return out, nil
}

// FindAll collects devices until ctx ends and returns what was found.
// A timeout with nothing announced is an empty slice, not an error.
func (b *Browser) FindAll(ctx context.Context) ([]Device, error) {
	results, err := b.Browse(ctx)
	if err != nil {
		return nil, err
	}

	var devices []Device
	for {
		select {
		case device, ok := <-results:
			if !ok {
				return devices, nil
			}
			devices = append(devices, *device)
		case <-ctx.Done():
			return devices, nil
		}
	}
}

// Stop cancels the active browse.
func (b *Browser) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.cancel != nil {
		b.cancel()
	}
}

// options returns zeroconf client options based on config.
func (b *Browser) options() []zeroconf.ClientOption {
	var opts []zeroconf.ClientOption
	if b.config.Interface != "" {
		iface, err := net.InterfaceByName(b.config.Interface)
		if err == nil {
			opts = append(opts, zeroconf.SelectIfaces([]net.Interface{*iface}))
		}
	}
	return opts
}

// ServiceEntry is raw mDNS entry data, decoupled from the zeroconf
// types so conversions stay testable.
type ServiceEntry struct {
	Instance string
	Host     string
	Port     int
	Text     []string
	Addrs    []net.IP
}

// serviceEntryOf copies the fields Browse needs out of a zeroconf entry.
func serviceEntryOf(entry *zeroconf.ServiceEntry) ServiceEntry {
	addrs := make([]net.IP, 0, len(entry.AddrIPv4)+len(entry.AddrIPv6))
	addrs = append(addrs, entry.AddrIPv4...)
	addrs = append(addrs, entry.AddrIPv6...)
	return ServiceEntry{
		Instance: entry.Instance,
		Host:     entry.HostName,
		Port:     entry.Port,
		Text:     entry.Text,
		Addrs:    addrs,
	}
}

// ToDevice converts the entry into a Device, deriving one XAddr per
// address from the advertised port and the "path" TXT record when one
// is present. Entries without addresses convert to nil.
func (e *ServiceEntry) ToDevice() *Device {
	if len(e.Addrs) == 0 {
		return nil
	}

	path := defaultServicePath
	for _, txt := range e.Text {
		key, value, found := strings.Cut(txt, "=")
		if found && key == "path" && value != "" {
			if !strings.HasPrefix(value, "/") {
				value = "/" + value
			}
			path = value
		}
	}

	xaddrs := make([]string, 0, len(e.Addrs))
	for _, ip := range e.Addrs {
		host := ip.String()
		if ip.To4() == nil {
			host = "[" + host + "]"
		}
		xaddrs = append(xaddrs, fmt.Sprintf("http://%s:%d%s", host, e.Port, path))
	}

	return &Device{
		Name:   e.Instance,
		XAddrs: xaddrs,
		Addr:   e.Addrs[0],
	}
}

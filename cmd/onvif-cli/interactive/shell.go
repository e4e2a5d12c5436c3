// Package interactive provides the interactive command-line interface
// for the ONVIF operator shell.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/onvif-protocol/onvif-go/pkg/devicemgmt"
	"github.com/onvif-protocol/onvif-go/pkg/discovery"
	"github.com/onvif-protocol/onvif-go/pkg/log"
	"github.com/onvif-protocol/onvif-go/pkg/soap"
	"github.com/onvif-protocol/onvif-go/pkg/transport"
)

// queryTimeout bounds one device query issued from the prompt.
const queryTimeout = 15 * time.Second

// Config provides settings to the interactive shell. This interface
// allows the interactive layer to access CLI settings without
// depending on the main package's flag handling.
type Config interface {
	// InventoryPath returns the device inventory file path, or "".
	InventoryPath() string

	// Logger returns the debug logger handed to sessions and
	// transports, or nil.
	Logger() *slog.Logger

	// Capture returns the protocol capture sink, or nil.
	Capture() log.Logger
}

// Shell handles interactive mode for onvif-cli.
type Shell struct {
	config Config
	rl     *readline.Instance

	// session is the device conversation commands operate on.
	session *devicemgmt.Session

	// found holds the last discovery results, indexed by 'use <n>'.
	found []discovery.Device

	inventory *Inventory
}

// New creates a new interactive shell.
func New(cfg Config) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "onvif> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := &Shell{
		config:    cfg,
		rl:        rl,
		inventory: &Inventory{},
	}

	if path := cfg.InventoryPath(); path != "" {
		inv, err := LoadInventory(path)
		switch {
		case err == nil:
			s.inventory = inv
		case !errors.Is(err, os.ErrNotExist):
			fmt.Fprintf(rl.Stdout(), "Warning: %v\n", err)
		}
	}

	return s, nil
}

// Stdout returns a writer that properly coordinates with the readline
// input. Use this for log output to avoid interfering with the prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Stderr returns a writer that properly coordinates with the readline
// input.
func (s *Shell) Stderr() io.Writer {
	return s.rl.Stderr()
}

// Run starts the interactive command loop.
func (s *Shell) Run(ctx context.Context, cancel context.CancelFunc) {
	defer s.rl.Close()

	s.printHelp()
	if n := len(s.inventory.Devices); n > 0 {
		fmt.Fprintf(s.rl.Stdout(), "%d device(s) in inventory (type 'devices' to list)\n", n)
	}

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		parts := strings.Fields(input)
		cmd := strings.ToLower(parts[0])
		args := parts[1:]

		switch cmd {
		case "help", "?":
			s.printHelp()

		case "connect", "c":
			s.cmdConnect(args)

		case "disconnect":
			s.cmdDisconnect()

		case "info", "i":
			s.cmdInfo()

		case "time", "t":
			s.cmdTime()

		case "sync":
			s.cmdSync()

		case "skew":
			s.cmdSkew()

		case "caps":
			s.cmdCapabilities(args)

		case "services":
			s.cmdServices(args)

		case "hostname":
			s.cmdHostname()

		case "scopes":
			s.cmdScopes()

		case "dns":
			s.cmdDNS()

		case "interfaces", "ifaces":
			s.cmdInterfaces()

		case "protocols":
			s.cmdProtocols()

		case "gateway", "gw":
			s.cmdGateway()

		case "discoverymode", "dm":
			s.cmdDiscoveryMode()

		case "reboot":
			s.cmdReboot()

		case "discover", "d":
			s.cmdDiscover(args)

		case "mdns", "m":
			s.cmdMDNS(args)

		case "use", "u":
			s.cmdUse(args)

		case "devices", "ls":
			s.cmdDevices()

		case "save":
			s.cmdSave(args)

		case "load":
			s.cmdLoad(args)

		case "quit", "exit", "q":
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			cancel()
			return

		default:
			fmt.Fprintf(s.rl.Stdout(), "Unknown command: %s (type 'help' for commands)\n", cmd)
		}
	}
}

func (s *Shell) printHelp() {
	fmt.Fprintln(s.rl.Stdout(), `
ONVIF Device Commands:
  Connection:
    connect <xaddr|name> [user] [pass] - Connect to a device (inventory names work)
    disconnect         - Drop the current connection
    skew               - Show the current clock-skew estimate
    sync               - Refresh the clock-skew estimate

  Device Queries:
    info               - Device manufacturer, model, firmware, serial
    time               - Device clock, time zone, DST, skew
    caps [category]    - Capability tree (All, Analytics, Device, Events, Imaging, Media, PTZ)
    services [caps]    - Service endpoints (with device service capabilities)
    hostname           - Hostname configuration
    scopes             - Device scope parameters
    reboot             - Reboot the device

  Network Queries:
    dns                - DNS configuration
    interfaces         - Network interface tree
    protocols          - Served protocols and ports
    gateway            - Default gateway addresses
    discoverymode      - Discoverable / NonDiscoverable

  Discovery:
    discover [seconds] - WS-Discovery probe for devices
    mdns [seconds]     - mDNS browse for advertised devices
    use <n> [user] [pass] - Connect to the n-th discovered device

  Inventory:
    devices            - List saved devices
    save [file]        - Save the inventory (default from -inventory)
    load [file]        - Load an inventory file

  General:
    help               - Show this help
    quit               - Exit the shell`)
}

// current returns the active session, printing a hint when there is
// none.
func (s *Shell) current() *devicemgmt.Session {
	if s.session == nil {
		fmt.Fprintln(s.rl.Stdout(), "Not connected (use 'connect <xaddr>' or 'use <n>')")
		return nil
	}
	return s.session
}

func queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), queryTimeout)
}

// cmdConnect handles the connect command.
func (s *Shell) cmdConnect(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: connect <xaddr|name> [username] [password]")
		fmt.Fprintln(s.rl.Stdout(), "  Example: connect 192.168.1.64 admin secret")
		return
	}

	var username, password string
	if len(args) > 1 {
		username = args[1]
	}
	if len(args) > 2 {
		password = args[2]
	}

	name := ""
	target := args[0]
	if entry := s.inventory.Find(target); entry != nil {
		name = entry.Name
		target = entry.XAddr
		if username == "" {
			username = entry.Username
			password = entry.Password
		}
	}

	xaddr, err := normalizeXAddr(target)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid address: %v\n", err)
		return
	}

	s.connect(name, xaddr, username, password)
}

// connect dials xaddr, verifies it by reading the device clock, and
// replaces the current session on success.
func (s *Shell) connect(name, xaddr, username, password string) {
	// One capture identity ties the HTTP and envelope events of this
	// connection together.
	captureID := uuid.NewString()

	clientConfig := transport.DefaultClientConfig()
	clientConfig.Logger = s.config.Logger()
	clientConfig.Capture = s.config.Capture()
	clientConfig.CaptureID = captureID

	client, err := transport.NewClient(clientConfig)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	session, err := devicemgmt.NewSession(devicemgmt.Config{
		XAddr:     xaddr,
		Username:  username,
		Password:  password,
		Transport: client,
		Logger:    s.config.Logger(),
		Capture:   s.config.Capture(),
		CaptureID: captureID,
	})
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	ctx, cancel := queryContext()
	defer cancel()

	deviceTime, err := session.GetSystemDateAndTime(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Connect failed: %v\n", err)
		return
	}

	s.session = session
	fmt.Fprintf(s.rl.Stdout(), "Connected to %s\n", session.Endpoint())
	if deviceTime.UTC != nil {
		fmt.Fprintf(s.rl.Stdout(), "  Device time %s, clock skew %s\n",
			deviceTime.UTC.Format(time.RFC3339), session.ClockSkew())
	} else {
		fmt.Fprintln(s.rl.Stdout(), "  Device reported no clock; skew assumed zero")
	}

	if name == "" {
		name = session.Endpoint().Host
	}
	s.inventory.Upsert(Entry{Name: name, XAddr: xaddr, Username: username, Password: password})
}

// cmdDisconnect handles the disconnect command.
func (s *Shell) cmdDisconnect() {
	if s.session == nil {
		fmt.Fprintln(s.rl.Stdout(), "Not connected")
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Disconnected from %s\n", s.session.Endpoint())
	s.session = nil
}

// cmdInfo handles the info command.
func (s *Shell) cmdInfo() {
	session := s.current()
	if session == nil {
		return
	}
	ctx, cancel := queryContext()
	defer cancel()

	info, err := session.GetDeviceInformation(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "  Manufacturer: %s\n", info.Manufacturer)
	fmt.Fprintf(s.rl.Stdout(), "  Model:        %s\n", info.Model)
	fmt.Fprintf(s.rl.Stdout(), "  Firmware:     %s\n", info.FirmwareVersion)
	fmt.Fprintf(s.rl.Stdout(), "  Serial:       %s\n", info.SerialNumber)
	fmt.Fprintf(s.rl.Stdout(), "  Hardware ID:  %s\n", info.HardwareID)
}

// cmdTime handles the time command.
func (s *Shell) cmdTime() {
	session := s.current()
	if session == nil {
		return
	}
	ctx, cancel := queryContext()
	defer cancel()

	deviceTime, err := session.GetSystemDateAndTime(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if deviceTime.UTC != nil {
		fmt.Fprintf(s.rl.Stdout(), "  Device UTC: %s\n", deviceTime.UTC.Format(time.RFC3339))
	} else {
		fmt.Fprintln(s.rl.Stdout(), "  Device UTC: not reported")
	}
	if deviceTime.TimeZone != "" {
		fmt.Fprintf(s.rl.Stdout(), "  Time zone:  %s\n", deviceTime.TimeZone)
	}
	if deviceTime.DateTimeType != "" {
		fmt.Fprintf(s.rl.Stdout(), "  Set by:     %s\n", deviceTime.DateTimeType)
	}
	if deviceTime.DaylightSavings != nil {
		fmt.Fprintf(s.rl.Stdout(), "  DST:        %v\n", *deviceTime.DaylightSavings)
	}
	fmt.Fprintf(s.rl.Stdout(), "  Clock skew: %s\n", session.ClockSkew())
}

// cmdSync handles the sync command.
func (s *Shell) cmdSync() {
	session := s.current()
	if session == nil {
		return
	}
	ctx, cancel := queryContext()
	defer cancel()

	if _, err := session.GetSystemDateAndTime(ctx); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Clock skew refreshed: %s\n", session.ClockSkew())
}

// cmdSkew handles the skew command.
func (s *Shell) cmdSkew() {
	session := s.current()
	if session == nil {
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Clock skew: %s (positive means the device clock runs ahead)\n",
		session.ClockSkew())
}

// cmdCapabilities handles the caps command.
func (s *Shell) cmdCapabilities(args []string) {
	session := s.current()
	if session == nil {
		return
	}
	category := ""
	if len(args) > 0 {
		category = args[0]
	}
	ctx, cancel := queryContext()
	defer cancel()

	caps, err := session.GetCapabilities(ctx, category)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if caps == nil || len(caps.Each()) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No capabilities reported")
		return
	}
	for _, child := range caps.Each() {
		writeNode(s.rl.Stdout(), child, 1)
	}
}

// cmdServices handles the services command. With the caps argument the
// device service capabilities tree is shown as well.
func (s *Shell) cmdServices(args []string) {
	session := s.current()
	if session == nil {
		return
	}
	withCaps := len(args) > 0 &&
		(strings.EqualFold(args[0], "capabilities") || strings.EqualFold(args[0], "caps"))

	ctx, cancel := queryContext()
	defer cancel()

	services, err := session.GetServices(ctx, withCaps)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if len(services) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No services reported")
	}
	for _, svc := range services {
		fmt.Fprintf(s.rl.Stdout(), "  %s %d.%d\n", svc.Namespace, svc.Major, svc.Minor)
		fmt.Fprintf(s.rl.Stdout(), "      %s\n", svc.XAddr)
	}

	if !withCaps {
		return
	}
	caps, err := session.GetServiceCapabilities(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintln(s.rl.Stdout(), "  Device service capabilities:")
	for _, child := range caps.Each() {
		writeNode(s.rl.Stdout(), child, 2)
	}
}

// cmdHostname handles the hostname command.
func (s *Shell) cmdHostname() {
	session := s.current()
	if session == nil {
		return
	}
	ctx, cancel := queryContext()
	defer cancel()

	host, err := session.GetHostname(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	name := host.Name
	if name == "" {
		name = "(not set)"
	}
	source := "manual"
	if host.FromDHCP {
		source = "DHCP"
	}
	fmt.Fprintf(s.rl.Stdout(), "  Hostname: %s (%s)\n", name, source)
}

// cmdScopes handles the scopes command.
func (s *Shell) cmdScopes() {
	session := s.current()
	if session == nil {
		return
	}
	ctx, cancel := queryContext()
	defer cancel()

	scopes, err := session.GetScopes(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if len(scopes) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No scopes reported")
		return
	}
	for _, scope := range scopes {
		fmt.Fprintf(s.rl.Stdout(), "  [%-12s] %s\n", scope.Def, scope.URI)
	}
}

// cmdDNS handles the dns command.
func (s *Shell) cmdDNS() {
	session := s.current()
	if session == nil {
		return
	}
	ctx, cancel := queryContext()
	defer cancel()

	dns, err := session.GetDNS(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	source := "manual"
	if dns.FromDHCP {
		source = "DHCP"
	}
	fmt.Fprintf(s.rl.Stdout(), "  Source: %s\n", source)
	if len(dns.SearchDomains) > 0 {
		fmt.Fprintf(s.rl.Stdout(), "  Search domains: %s\n", strings.Join(dns.SearchDomains, ", "))
	}
	if len(dns.Servers) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "  No DNS servers configured")
		return
	}
	for _, server := range dns.Servers {
		fmt.Fprintf(s.rl.Stdout(), "  Server: %s\n", server)
	}
}

// cmdInterfaces handles the interfaces command.
func (s *Shell) cmdInterfaces() {
	session := s.current()
	if session == nil {
		return
	}
	ctx, cancel := queryContext()
	defer cancel()

	node, err := session.GetNetworkInterfaces(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if node == nil || len(node.Each()) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No network interfaces reported")
		return
	}
	for _, iface := range node.Each() {
		writeNode(s.rl.Stdout(), iface, 1)
	}
}

// cmdProtocols handles the protocols command.
func (s *Shell) cmdProtocols() {
	session := s.current()
	if session == nil {
		return
	}
	ctx, cancel := queryContext()
	defer cancel()

	protocols, err := session.GetNetworkProtocols(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if len(protocols) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No protocols reported")
		return
	}
	for _, protocol := range protocols {
		state := "enabled"
		if !protocol.Enabled {
			state = "disabled"
		}
		fmt.Fprintf(s.rl.Stdout(), "  %-6s %-8s ports %v\n", protocol.Name, state, protocol.Ports)
	}
}

// cmdGateway handles the gateway command.
func (s *Shell) cmdGateway() {
	session := s.current()
	if session == nil {
		return
	}
	ctx, cancel := queryContext()
	defer cancel()

	gateway, err := session.GetNetworkDefaultGateway(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if len(gateway.IPv4) == 0 && len(gateway.IPv6) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No default gateway configured")
		return
	}
	for _, addr := range gateway.IPv4 {
		fmt.Fprintf(s.rl.Stdout(), "  IPv4: %s\n", addr)
	}
	for _, addr := range gateway.IPv6 {
		fmt.Fprintf(s.rl.Stdout(), "  IPv6: %s\n", addr)
	}
}

// cmdDiscoveryMode handles the discoverymode command.
func (s *Shell) cmdDiscoveryMode() {
	session := s.current()
	if session == nil {
		return
	}
	ctx, cancel := queryContext()
	defer cancel()

	mode, err := session.GetDiscoveryMode(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "  Discovery mode: %s\n", mode)
}

// cmdReboot handles the reboot command.
func (s *Shell) cmdReboot() {
	session := s.current()
	if session == nil {
		return
	}
	ctx, cancel := queryContext()
	defer cancel()

	message, err := session.SystemReboot(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}
	if message == "" {
		message = "(no message)"
	}
	fmt.Fprintf(s.rl.Stdout(), "  Device: %s\n", message)
	fmt.Fprintln(s.rl.Stdout(), "Rebooting; the device will drop off the network shortly")
}

// cmdDiscover handles the discover command.
func (s *Shell) cmdDiscover(args []string) {
	timeout, err := parseSeconds(args, discovery.ProbeTimeout)
	if err != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: discover [seconds]")
		return
	}

	config := discovery.DefaultProbeConfig()
	config.Timeout = timeout
	config.Logger = s.config.Logger()

	fmt.Fprintf(s.rl.Stdout(), "Probing for devices (%s)...\n", timeout)

	// The extra margin lets the probe window close on its own instead
	// of being cut off by the context.
	ctx, cancel := context.WithTimeout(context.Background(), timeout+2*time.Second)
	defer cancel()

	devices, err := discovery.Probe(ctx, config)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Discovery failed: %v\n", err)
		return
	}
	s.showFound(devices)
}

// cmdMDNS handles the mdns command.
func (s *Shell) cmdMDNS(args []string) {
	timeout, err := parseSeconds(args, discovery.BrowseTimeout)
	if err != nil {
		fmt.Fprintln(s.rl.Stdout(), "Usage: mdns [seconds]")
		return
	}

	browser, err := discovery.NewBrowser(discovery.DefaultBrowserConfig())
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Error: %v\n", err)
		return
	}

	fmt.Fprintf(s.rl.Stdout(), "Browsing %s (%s)...\n", discovery.ServiceONVIF, timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	devices, err := browser.FindAll(ctx)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Browse failed: %v\n", err)
		return
	}
	s.showFound(devices)
}

// showFound stores and prints a discovery result set.
func (s *Shell) showFound(devices []discovery.Device) {
	s.found = devices
	if len(devices) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No devices found")
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Found %d device(s):\n", len(devices))
	for i := range devices {
		writeDevice(s.rl.Stdout(), i+1, &devices[i])
	}
	fmt.Fprintln(s.rl.Stdout(), "Connect with 'use <n> [username] [password]'")
}

// cmdUse handles the use command.
func (s *Shell) cmdUse(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(s.rl.Stdout(), "Usage: use <n> [username] [password]")
		return
	}
	if len(s.found) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "No discovery results; run 'discover' or 'mdns' first")
		return
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 || n > len(s.found) {
		fmt.Fprintf(s.rl.Stdout(), "No device %q; pick 1-%d\n", args[0], len(s.found))
		return
	}
	device := &s.found[n-1]
	if device.XAddr() == "" {
		fmt.Fprintf(s.rl.Stdout(), "Device %d announced no service address\n", n)
		return
	}

	var username, password string
	if len(args) > 1 {
		username = args[1]
	}
	if len(args) > 2 {
		password = args[2]
	}

	xaddr, err := normalizeXAddr(device.XAddr())
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Invalid address: %v\n", err)
		return
	}
	s.connect(device.Name, xaddr, username, password)
}

// cmdDevices handles the devices command.
func (s *Shell) cmdDevices() {
	if len(s.inventory.Devices) == 0 {
		fmt.Fprintln(s.rl.Stdout(), "Inventory is empty")
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "\nSaved Devices (%d):\n", len(s.inventory.Devices))
	fmt.Fprintln(s.rl.Stdout(), "-------------------------------------------")
	active := ""
	if s.session != nil {
		active = s.session.Endpoint().String()
	}
	for _, entry := range s.inventory.Devices {
		marker := " "
		if entry.XAddr == active {
			marker = "*"
		}
		fmt.Fprintf(s.rl.Stdout(), "%s %s\n", marker, entry.Name)
		fmt.Fprintf(s.rl.Stdout(), "      XAddr: %s\n", entry.XAddr)
		if entry.Username != "" {
			fmt.Fprintf(s.rl.Stdout(), "      User:  %s\n", entry.Username)
		}
	}
	fmt.Fprintln(s.rl.Stdout())
}

// cmdSave handles the save command.
func (s *Shell) cmdSave(args []string) {
	path := s.config.InventoryPath()
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		fmt.Fprintln(s.rl.Stdout(), "Usage: save <file> (or start with -inventory)")
		return
	}
	if err := s.inventory.Save(path); err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Save failed: %v\n", err)
		return
	}
	fmt.Fprintf(s.rl.Stdout(), "Saved %d device(s) to %s\n", len(s.inventory.Devices), path)
}

// cmdLoad handles the load command.
func (s *Shell) cmdLoad(args []string) {
	path := s.config.InventoryPath()
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		fmt.Fprintln(s.rl.Stdout(), "Usage: load <file> (or start with -inventory)")
		return
	}
	inv, err := LoadInventory(path)
	if err != nil {
		fmt.Fprintf(s.rl.Stdout(), "Load failed: %v\n", err)
		return
	}
	s.inventory = inv
	fmt.Fprintf(s.rl.Stdout(), "Loaded %d device(s) from %s\n", len(inv.Devices), path)
}

// normalizeXAddr fills in the parts operators leave out: a bare host
// gets the http scheme and the conventional device service path.
func normalizeXAddr(raw string) (string, error) {
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Host == "" {
		return "", fmt.Errorf("no host in %q", raw)
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/onvif/device_service"
	}
	return u.String(), nil
}

// parseSeconds reads an optional leading seconds argument.
func parseSeconds(args []string, fallback time.Duration) (time.Duration, error) {
	if len(args) == 0 {
		return fallback, nil
	}
	seconds, err := strconv.Atoi(args[0])
	if err != nil || seconds <= 0 {
		return 0, fmt.Errorf("not a number of seconds: %q", args[0])
	}
	return time.Duration(seconds) * time.Second, nil
}

// writeNode renders a parsed XML subtree as an indented outline.
func writeNode(w io.Writer, node *soap.Node, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	children := node.Each()
	if len(children) == 0 {
		if text := node.Text(); text != "" {
			fmt.Fprintf(w, "%s%s: %s\n", indent, node.Name(), text)
		} else {
			fmt.Fprintf(w, "%s%s\n", indent, node.Name())
		}
		return
	}
	fmt.Fprintf(w, "%s%s\n", indent, node.Name())
	for _, child := range children {
		writeNode(w, child, depth+1)
	}
}

// writeDevice renders one discovered device with its selection index.
func writeDevice(w io.Writer, index int, device *discovery.Device) {
	name := device.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(w, "  [%d] %s\n", index, name)
	if device.Hardware != "" {
		fmt.Fprintf(w, "      Hardware: %s\n", device.Hardware)
	}
	if device.Location != "" {
		fmt.Fprintf(w, "      Location: %s\n", device.Location)
	}
	for _, xaddr := range device.XAddrs {
		fmt.Fprintf(w, "      XAddr: %s\n", xaddr)
	}
	if device.Addr != nil {
		fmt.Fprintf(w, "      From: %s\n", device.Addr)
	}
}

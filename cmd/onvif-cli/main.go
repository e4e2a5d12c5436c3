// Command onvif-cli is an interactive shell for ONVIF device management.
//
// This command demonstrates a complete device management client with:
//   - WS-Discovery and mDNS device discovery
//   - Clock-skew compensated WS-Security authentication
//   - Device, network and capability queries
//   - A persistent device inventory
//   - Protocol capture to .olog files
//
// Usage:
//
//	onvif-cli [flags]
//
// Flags:
//
//	-inventory string  Device inventory file (YAML)
//	-capture string    Write a protocol capture to this .olog file
//	-v                 Enable verbose debug logging
//
// Examples:
//
//	# Open the shell and probe the local network
//	onvif-cli
//	onvif> discover
//
//	# Keep credentials between runs
//	onvif-cli -inventory ~/.onvif-devices.yaml
//
//	# Record every exchange for later inspection with onvif-log
//	onvif-cli -capture session.olog -v
//
// Interactive Commands:
//
//	connect <xaddr> [user] [pass] - Connect to a device
//	discover [seconds]            - WS-Discovery probe
//	use <n> [user] [pass]         - Connect to a discovered device
//	info / time / caps / services - Query the device
//	devices / save / load         - Manage the inventory
//	help                          - Full command list
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/onvif-protocol/onvif-go/cmd/onvif-cli/interactive"
	onviflog "github.com/onvif-protocol/onvif-go/pkg/log"
)

// Config holds the CLI configuration.
// It implements interactive.Config.
type Config struct {
	InventoryFile string
	CaptureFile   string
	Verbose       bool

	logger  *slog.Logger
	capture onviflog.Logger
}

// InventoryPath implements interactive.Config.
func (c *Config) InventoryPath() string {
	return c.InventoryFile
}

// Logger implements interactive.Config.
func (c *Config) Logger() *slog.Logger {
	return c.logger
}

// Capture implements interactive.Config.
func (c *Config) Capture() onviflog.Logger {
	return c.capture
}

var config Config

func init() {
	flag.StringVar(&config.InventoryFile, "inventory", "", "Device inventory file (YAML)")
	flag.StringVar(&config.CaptureFile, "capture", "", "Write a protocol capture to this .olog file")
	flag.BoolVar(&config.Verbose, "v", false, "Enable verbose debug logging")
}

func main() {
	flag.Parse()

	log.SetFlags(log.Ltime | log.Lmicroseconds)

	if config.CaptureFile != "" {
		fileLogger, err := onviflog.NewFileLogger(config.CaptureFile)
		if err != nil {
			log.Fatalf("Failed to open capture file: %v", err)
		}
		defer fileLogger.Close()
		config.capture = fileLogger
		log.Printf("Capturing protocol events to %s", config.CaptureFile)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sh, err := interactive.New(&config)
	if err != nil {
		log.Fatalf("Failed to create shell: %v", err)
	}

	// Debug output goes through readline so it does not tear the
	// prompt; it can only be wired up once the shell exists.
	if config.Verbose {
		config.logger = slog.New(slog.NewTextHandler(sh.Stdout(), &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	log.SetOutput(sh.Stdout())

	go sh.Run(ctx, cancel)

	// Wait for shutdown signal or context cancellation
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Printf("Received signal: %v", sig)
	case <-ctx.Done():
		// Context was cancelled (e.g., by the quit command)
	}

	log.Println("Goodbye!")
}

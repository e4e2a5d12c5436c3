package interactive

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry is one saved device in the operator's inventory.
type Entry struct {
	// Name is the operator-facing label, usually taken from the
	// device's discovery name or its host.
	Name string `yaml:"name"`

	// XAddr is the device service endpoint.
	XAddr string `yaml:"xaddr"`

	// Username and Password are the stored credentials, when any.
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// Inventory is the operator's saved device list.
type Inventory struct {
	Devices []Entry `yaml:"devices"`
}

// ParseInventory parses inventory YAML.
func ParseInventory(data []byte) (*Inventory, error) {
	var inv Inventory
	if err := yaml.Unmarshal(data, &inv); err != nil {
		return nil, fmt.Errorf("parsing inventory: %w", err)
	}
	for i, entry := range inv.Devices {
		if entry.XAddr == "" {
			return nil, fmt.Errorf("inventory device %d missing xaddr", i)
		}
	}
	return &inv, nil
}

// LoadInventory reads and parses an inventory file.
func LoadInventory(path string) (*Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading inventory: %w", err)
	}
	inv, err := ParseInventory(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return inv, nil
}

// Save writes the inventory to path. The file carries credentials, so
// it is created owner-readable only.
func (inv *Inventory) Save(path string) error {
	data, err := yaml.Marshal(inv)
	if err != nil {
		return fmt.Errorf("encoding inventory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("writing inventory: %w", err)
	}
	return nil
}

// Upsert adds entry to the inventory, replacing an existing entry with
// the same XAddr. A blank name defaults to the endpoint.
func (inv *Inventory) Upsert(entry Entry) {
	if entry.Name == "" {
		entry.Name = entry.XAddr
	}
	for i := range inv.Devices {
		if inv.Devices[i].XAddr == entry.XAddr {
			inv.Devices[i] = entry
			return
		}
	}
	inv.Devices = append(inv.Devices, entry)
}

// Find resolves a device reference to an inventory entry. An exact
// name match wins; otherwise a case-insensitive substring match is
// accepted when it is unambiguous. Nil means no (unique) match.
func (inv *Inventory) Find(ref string) *Entry {
	for i := range inv.Devices {
		if inv.Devices[i].Name == ref {
			return &inv.Devices[i]
		}
	}
	var match *Entry
	needle := strings.ToLower(ref)
	for i := range inv.Devices {
		if strings.Contains(strings.ToLower(inv.Devices[i].Name), needle) {
			if match != nil {
				return nil
			}
			match = &inv.Devices[i]
		}
	}
	return match
}

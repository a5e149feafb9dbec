package powersupply

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// writeDevice lays out a fake power_supply entry under root.
func writeDevice(t *testing.T, root, name string, attrs map[string]string) {
	t.Helper()
	dir := filepath.Join(root, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("failed to create fixture dir: %v", err)
	}
	for attr, value := range attrs {
		if err := os.WriteFile(filepath.Join(dir, attr), []byte(value+"\n"), 0o644); err != nil {
			t.Fatalf("failed to write fixture attr %s: %v", attr, err)
		}
	}
}

func TestSysfsReadEnergy(t *testing.T) {
	root := t.TempDir()
	writeDevice(t, root, "BAT0", map[string]string{
		"type":        "Battery",
		"status":      "Discharging",
		"energy_now":  "24000000",
		"energy_full": "48000000",
	})

	r := &SysfsReader{Root: root}
	reading, err := r.Read("BAT0")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if reading.Status != StatusDischarging {
		t.Fatalf("expected Discharging, got %s", reading.Status)
	}
	if reading.Now != 24000000 || reading.Full != 48000000 {
		t.Fatalf("unexpected charge values %v/%v", reading.Now, reading.Full)
	}
	if reading.PercentOnly {
		t.Fatalf("energy-reporting device must not be percent-only")
	}
}

func TestSysfsPrefersChargeOverEnergy(t *testing.T) {
	root := t.TempDir()
	writeDevice(t, root, "BAT0", map[string]string{
		"type":        "Battery",
		"status":      "Charging",
		"charge_now":  "3000",
		"charge_full": "6000",
		"energy_now":  "1",
		"energy_full": "1",
	})

	r := &SysfsReader{Root: root}
	reading, err := r.Read("BAT0")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if reading.Now != 3000 || reading.Full != 6000 {
		t.Fatalf("charge_* attributes must win, got %v/%v", reading.Now, reading.Full)
	}
}

func TestSysfsCapacityOnlyDevice(t *testing.T) {
	root := t.TempDir()
	writeDevice(t, root, "BAT0", map[string]string{
		"type":     "Battery",
		"status":   "Full",
		"capacity": "97",
	})

	r := &SysfsReader{Root: root}
	reading, err := r.Read("BAT0")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !reading.PercentOnly {
		t.Fatalf("capacity-only device must be percent-only")
	}
	if reading.Now != 97 {
		t.Fatalf("expected capacity 97, got %v", reading.Now)
	}
	if reading.Status != StatusFull {
		t.Fatalf("expected Full, got %s", reading.Status)
	}
}

func TestSysfsUnknownStatus(t *testing.T) {
	root := t.TempDir()
	writeDevice(t, root, "BAT0", map[string]string{
		"type":     "Battery",
		"status":   "Not charging",
		"capacity": "80",
	})

	r := &SysfsReader{Root: root}
	reading, err := r.Read("BAT0")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if reading.Status != StatusUnknown {
		t.Fatalf("unrecognized status string must map to Unknown, got %s", reading.Status)
	}
}

func TestSysfsMissingDevice(t *testing.T) {
	r := &SysfsReader{Root: t.TempDir()}
	_, err := r.Read("BAT9")
	if err == nil {
		t.Fatalf("expected an error for a missing device")
	}
	if !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable in the chain, got %v", err)
	}
}

func TestSysfsMalformedValue(t *testing.T) {
	root := t.TempDir()
	writeDevice(t, root, "BAT0", map[string]string{
		"type":     "Battery",
		"status":   "Discharging",
		"capacity": "not-a-number",
	})

	r := &SysfsReader{Root: root}
	if _, err := r.Read("BAT0"); !errors.Is(err, ErrUnreadable) {
		t.Fatalf("expected ErrUnreadable for a malformed value, got %v", err)
	}
}

func TestSysfsDiscoverFiltersNonBatteries(t *testing.T) {
	root := t.TempDir()
	writeDevice(t, root, "BAT1", map[string]string{
		"type":     "Battery",
		"status":   "Discharging",
		"capacity": "50",
	})
	writeDevice(t, root, "BAT0", map[string]string{
		"type":        "Battery",
		"status":      "Discharging",
		"energy_now":  "1",
		"energy_full": "2",
	})
	writeDevice(t, root, "AC", map[string]string{
		"type":   "Mains",
		"online": "1",
	})
	writeDevice(t, root, "hidpp_battery_0", map[string]string{
		"type":   "Battery",
		"status": "Discharging",
		// No capacity-equivalent attribute: not pollable.
	})

	r := &SysfsReader{Root: root}
	names, err := r.Discover()
	if err != nil {
		t.Fatalf("Discover failed: %v", err)
	}
	if len(names) != 2 || names[0] != "BAT0" || names[1] != "BAT1" {
		t.Fatalf("expected sorted [BAT0 BAT1], got %v", names)
	}
}

func TestSysfsValidate(t *testing.T) {
	root := t.TempDir()
	writeDevice(t, root, "BAT0", map[string]string{
		"type":     "Battery",
		"status":   "Discharging",
		"capacity": "50",
	})

	r := &SysfsReader{Root: root}
	if err := r.Validate("BAT0"); err != nil {
		t.Fatalf("existing battery must validate: %v", err)
	}
	if err := r.Validate("BAT7"); err == nil {
		t.Fatalf("missing battery must fail validation")
	}
}

package powersupply

import (
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// DefaultSysfsRoot is where the kernel exposes power-supply devices.
const DefaultSysfsRoot = "/sys/class/power_supply"

// SysfsReader reads battery attributes from the Linux power_supply class.
// Root is overridable for tests.
type SysfsReader struct {
	Root string
}

func NewSysfsReader() *SysfsReader {
	return &SysfsReader{Root: DefaultSysfsRoot}
}

func (r *SysfsReader) attrPath(name, attr string) string {
	return filepath.Join(r.Root, name, attr)
}

func (r *SysfsReader) readString(name, attr string) (string, error) {
	b, err := os.ReadFile(r.attrPath(name, attr))
	if err != nil {
		return "", pkgerrors.Wrapf(ErrUnreadable, "%s/%s: %v", name, attr, err)
	}
	return strings.TrimSpace(string(b)), nil
}

func (r *SysfsReader) readFloat(name, attr string) (float64, error) {
	s, err := r.readString(name, attr)
	if err != nil {
		return 0, err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, pkgerrors.Wrapf(ErrUnreadable, "%s/%s: %v", name, attr, err)
	}
	return v, nil
}

// hasAttr reports whether the device exposes the given attribute file.
func (r *SysfsReader) hasAttr(name, attr string) bool {
	_, err := os.Stat(r.attrPath(name, attr))
	return err == nil
}

// attributes picks the charge-reporting attribute pair for a device,
// preferring charge_now/charge_full, then energy_now/energy_full, then the
// percentage-only capacity attribute.
func (r *SysfsReader) attributes(name string) (now, full string) {
	if r.hasAttr(name, "charge_now") {
		return "charge_now", "charge_full"
	}
	if r.hasAttr(name, "energy_now") {
		return "energy_now", "energy_full"
	}
	return "capacity", ""
}

// Read fetches status and charge readings for one device.
func (r *SysfsReader) Read(name string) (Reading, error) {
	status, err := r.readString(name, "status")
	if err != nil {
		return Reading{}, err
	}

	reading := Reading{Status: statusFromString(status)}

	nowAttr, fullAttr := r.attributes(name)
	reading.Now, err = r.readFloat(name, nowAttr)
	if err != nil {
		return Reading{}, err
	}

	if fullAttr == "" {
		reading.PercentOnly = true
		return reading, nil
	}

	reading.Full, err = r.readFloat(name, fullAttr)
	if err != nil {
		return Reading{}, err
	}
	return reading, nil
}

// Discover lists devices of type Battery with a readable charge attribute,
// sorted by name so the device order is stable across runs.
func (r *SysfsReader) Discover() ([]string, error) {
	entries, err := os.ReadDir(r.Root)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to enumerate %s", r.Root)
	}

	var names []string
	for _, e := range entries {
		if r.isBattery(e.Name()) {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// Validate checks that a named device exists and looks like a battery.
func (r *SysfsReader) Validate(name string) error {
	if !r.isBattery(name) {
		return pkgerrors.Errorf("battery %s not found", name)
	}
	return nil
}

// isBattery mirrors the kernel-side definition: a power_supply entry of
// type Battery whose capacity-equivalent attribute is readable.
func (r *SysfsReader) isBattery(name string) bool {
	typ, err := r.readString(name, "type")
	if err != nil || typ != "Battery" {
		return false
	}

	nowAttr, fullAttr := r.attributes(name)
	if fullAttr != "" {
		return true
	}
	capacity, err := r.readFloat(name, nowAttr)
	return err == nil && capacity >= 0
}

func statusFromString(s string) Status {
	switch s {
	case "Charging":
		return StatusCharging
	case "Discharging":
		return StatusDischarging
	case "Full":
		return StatusFull
	default:
		return StatusUnknown
	}
}

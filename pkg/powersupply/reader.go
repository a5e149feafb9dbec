// Package powersupply reads charge state from power-supply devices. Two
// backends exist: a Linux sysfs reader and a portable one built on
// github.com/distatus/battery. The monitor core only sees the Reader
// interface.
package powersupply

import "errors"

// Status is the charging classification a device reports.
type Status int

const (
	StatusUnknown Status = iota
	StatusCharging
	StatusDischarging
	StatusFull
)

func (s Status) String() string {
	switch s {
	case StatusCharging:
		return "Charging"
	case StatusDischarging:
		return "Discharging"
	case StatusFull:
		return "Full"
	default:
		return "Unknown"
	}
}

// Reading is one device's raw contribution to a cycle. When PercentOnly is
// set the device exposes no now/full pair; Now then holds a percentage and
// Full is meaningless.
type Reading struct {
	Status      Status
	Now         float64
	Full        float64
	PercentOnly bool
}

// Reader fetches a reading for a named device. Implementations must return
// ErrUnreadable (possibly wrapped) when the device cannot be read this
// cycle, so the caller can tell transient read failures from other errors.
type Reader interface {
	Read(name string) (Reading, error)
}

// Discoverer enumerates available device names in a stable order.
type Discoverer interface {
	Discover() ([]string, error)
}

// ErrUnreadable marks a device that failed to report this cycle.
var ErrUnreadable = errors.New("power supply unreadable")

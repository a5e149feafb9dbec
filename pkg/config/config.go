package config

import (
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// Reader backends.
const (
	BackendSysfs    = "sysfs"
	BackendPortable = "portable"
)

// MaxInterval is the upper bound for the poll interval in seconds.
const MaxInterval = 3600

// Config holds every runtime parameter of the monitor. It is built once at
// startup (file config overlaid with CLI flags), validated, and never
// modified while the control loop runs.
type Config struct {
	// Thresholds in percent. 0 disables the corresponding level.
	Warning  int `json:"warning"`
	Critical int `json:"critical"`
	Danger   int `json:"danger"`
	Full     int `json:"full"`

	// Interval is the base poll interval in seconds. 0 disables polling
	// entirely; the loop then waits for a wake signal.
	Interval int `json:"interval"`
	// Fixed disables adaptive stretching of the poll interval.
	Fixed bool `json:"fixed"`

	WarningMsg     string `json:"warningMessage"`
	CriticalMsg    string `json:"criticalMessage"`
	FullMsg        string `json:"fullMessage"`
	ChargingMsg    string `json:"chargingMessage"`
	DischargingMsg string `json:"dischargingMessage"`

	// DangerCmd is run (via the shell) once per entry into the danger state.
	DangerCmd string `json:"dangerCommand"`
	// MsgCmd is an optional message hook; %s placeholders receive the
	// message text and the battery level.
	MsgCmd string `json:"messageCommand"`

	AppName string `json:"appName"`
	Icon    string `json:"icon"`
	// Expires lets desktop notifications use the server default timeout
	// instead of staying on screen until dismissed.
	Expires bool `json:"expires"`

	ShowNotifications bool `json:"showNotifications"`
	ShowChargingMsg   bool `json:"showChargingMessages"`

	// BatteryRequired makes an unreadable device fatal instead of skipped.
	BatteryRequired bool `json:"batteryRequired"`

	// Devices is the ordered device name list. Empty means discover.
	Devices []string `json:"devices,omitempty"`

	Backend   string `json:"backend"`
	HistoryDB string `json:"historyDB,omitempty"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Warning:           15,
		Critical:          5,
		Danger:            2,
		Full:              0,
		Interval:          60,
		WarningMsg:        "Battery is low",
		CriticalMsg:       "Battery is critically low",
		FullMsg:           "Battery is full",
		ChargingMsg:       "Battery is charging",
		DischargingMsg:    "Battery is discharging",
		AppName:           "battalert",
		ShowNotifications: true,
		BatteryRequired:   true,
		Backend:           BackendSysfs,
	}
}

// PollInterval returns the base interval as a duration.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Interval) * time.Second
}

// Validate enforces the startup invariants. Any violation is a fatal
// configuration error; the daemon must not enter the loop with a config
// that fails validation.
func (c *Config) Validate() error {
	levels := []struct {
		name  string
		value int
	}{
		{"warning", c.Warning},
		{"critical", c.Critical},
		{"danger", c.Danger},
		{"full", c.Full},
	}
	for _, l := range levels {
		if l.value < 0 || l.value > 100 {
			return pkgerrors.Errorf("%s level must be between 0 and 100, got %d", l.name, l.value)
		}
	}

	if c.Interval < 0 || c.Interval > MaxInterval {
		return pkgerrors.Errorf("interval must be between 0 and %d seconds, got %d", MaxInterval, c.Interval)
	}

	if c.Warning != 0 && c.Warning <= c.Critical {
		return pkgerrors.New("warning level must be greater than critical")
	}
	if c.Critical != 0 && c.Critical <= c.Danger {
		return pkgerrors.New("critical level must be greater than danger")
	}

	// The full level must sit above the highest enabled warning level.
	low := c.Danger
	if c.Warning != 0 {
		low = c.Warning
	} else if c.Critical != 0 {
		low = c.Critical
	}
	if c.Full != 0 && c.Full <= low {
		return pkgerrors.Errorf("full level must be greater than %d", low)
	}

	switch c.Backend {
	case BackendSysfs, BackendPortable:
	default:
		return pkgerrors.Errorf("unknown backend %q (expected %s or %s)", c.Backend, BackendSysfs, BackendPortable)
	}

	return nil
}

func (c *Config) LogrusFields() logrus.Fields {
	return logrus.Fields{
		"warning":          c.Warning,
		"critical":         c.Critical,
		"danger":           c.Danger,
		"full":             c.Full,
		"interval":         c.Interval,
		"fixed":            c.Fixed,
		"backend":          c.Backend,
		"devices":          c.Devices,
		"notifications":    c.ShowNotifications,
		"chargingMessages": c.ShowChargingMsg,
		"batteryRequired":  c.BatteryRequired,
	}
}

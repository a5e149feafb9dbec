package config

import (
	"encoding/json"
	"io"
	"os"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// RawFileConfig is the on-disk JSON shape. Pointer fields distinguish
// "not present in the file" from zero values, so a file can disable a
// threshold explicitly with 0 while leaving defaults alone when absent.
type RawFileConfig struct {
	Warning  *int `json:"warning,omitempty"`
	Critical *int `json:"critical,omitempty"`
	Danger   *int `json:"danger,omitempty"`
	Full     *int `json:"full,omitempty"`

	Interval *int  `json:"interval,omitempty"`
	Fixed    *bool `json:"fixed,omitempty"`

	WarningMsg     *string `json:"warningMessage,omitempty"`
	CriticalMsg    *string `json:"criticalMessage,omitempty"`
	FullMsg        *string `json:"fullMessage,omitempty"`
	ChargingMsg    *string `json:"chargingMessage,omitempty"`
	DischargingMsg *string `json:"dischargingMessage,omitempty"`

	DangerCmd *string `json:"dangerCommand,omitempty"`
	MsgCmd    *string `json:"messageCommand,omitempty"`

	AppName *string `json:"appName,omitempty"`
	Icon    *string `json:"icon,omitempty"`
	Expires *bool   `json:"expires,omitempty"`

	ShowNotifications *bool `json:"showNotifications,omitempty"`
	ShowChargingMsg   *bool `json:"showChargingMessages,omitempty"`
	BatteryRequired   *bool `json:"batteryRequired,omitempty"`

	Devices []string `json:"devices,omitempty"`

	Backend   *string `json:"backend,omitempty"`
	HistoryDB *string `json:"historyDB,omitempty"`
}

// LoadFile reads the JSON config at path. A missing or empty file yields an
// empty RawFileConfig, not an error, so running without a config file works.
func LoadFile(path string) (*RawFileConfig, error) {
	fp, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &RawFileConfig{}, nil
		}
		return nil, pkgerrors.Wrapf(err, "failed to open config file %s", path)
	}
	defer fp.Close()

	b, err := io.ReadAll(fp)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to read config file %s", path)
	}
	if strings.TrimSpace(string(b)) == "" {
		return &RawFileConfig{}, nil
	}

	raw := RawFileConfig{}
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, pkgerrors.Wrapf(err, "failed to unmarshal config file %s", path)
	}
	return &raw, nil
}

// Apply overlays the fields present in the file onto c.
func (r *RawFileConfig) Apply(c *Config) {
	setInt := func(dst *int, src *int) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}

	setInt(&c.Warning, r.Warning)
	setInt(&c.Critical, r.Critical)
	setInt(&c.Danger, r.Danger)
	setInt(&c.Full, r.Full)
	setInt(&c.Interval, r.Interval)
	setBool(&c.Fixed, r.Fixed)

	setString(&c.WarningMsg, r.WarningMsg)
	setString(&c.CriticalMsg, r.CriticalMsg)
	setString(&c.FullMsg, r.FullMsg)
	setString(&c.ChargingMsg, r.ChargingMsg)
	setString(&c.DischargingMsg, r.DischargingMsg)

	setString(&c.DangerCmd, r.DangerCmd)
	setString(&c.MsgCmd, r.MsgCmd)

	setString(&c.AppName, r.AppName)
	setString(&c.Icon, r.Icon)
	setBool(&c.Expires, r.Expires)

	setBool(&c.ShowNotifications, r.ShowNotifications)
	setBool(&c.ShowChargingMsg, r.ShowChargingMsg)
	setBool(&c.BatteryRequired, r.BatteryRequired)

	if len(r.Devices) > 0 {
		c.Devices = append([]string(nil), r.Devices...)
	}

	setString(&c.Backend, r.Backend)
	setString(&c.HistoryDB, r.HistoryDB)

	// Setting a full level implies fixed polling, same as the -f option.
	if r.Full != nil && *r.Full > 0 {
		c.Fixed = true
	}
	if r.ShowChargingMsg != nil && *r.ShowChargingMsg {
		c.Fixed = true
	}
}

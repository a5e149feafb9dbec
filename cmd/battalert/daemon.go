package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/battalert/battalert/pkg/config"
	"github.com/battalert/battalert/pkg/daemon"
	"github.com/battalert/battalert/pkg/version"
)

// NewDaemonCommand runs the monitor in the foreground.
func NewDaemonCommand() *cobra.Command {
	flagCfg := config.Default()
	var (
		once            bool
		noNotifications bool
		ignoreMissing   bool
	)

	cmd := &cobra.Command{
		Use:   "daemon",
		Short: "Run the battalert daemon in the foreground",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := buildConfig(cmd.Flags(), flagCfg, noNotifications, ignoreMissing)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logrus.WithFields(cfg.LogrusFields()).WithFields(logrus.Fields{
				"version": version.Version,
			}).Info("battalert daemon starting")

			if once {
				return daemon.RunOnce(cfg)
			}
			return daemon.Run(cfg, unixSocketPath)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flagCfg.Warning, "warning", "w", flagCfg.Warning, "battery warning level, 0 disables")
	f.IntVarP(&flagCfg.Critical, "critical", "c", flagCfg.Critical, "critical battery level, 0 disables")
	f.IntVarP(&flagCfg.Danger, "danger", "d", flagCfg.Danger, "battery danger level, 0 disables")
	f.IntVarP(&flagCfg.Full, "full", "f", flagCfg.Full, "full battery level, 0 disables (implies --fixed)")
	f.IntVarP(&flagCfg.Interval, "interval", "m", flagCfg.Interval, "seconds between battery checks, 0 waits for SIGUSR1")
	f.BoolVar(&flagCfg.Fixed, "fixed", false, "always check at the configured interval, never stretch it")
	f.BoolVarP(&flagCfg.ShowChargingMsg, "charging-messages", "p", false, "show a message when the battery begins charging or discharging (implies --fixed)")

	f.StringVarP(&flagCfg.WarningMsg, "warning-message", "W", flagCfg.WarningMsg, "message shown at the warning level")
	f.StringVarP(&flagCfg.CriticalMsg, "critical-message", "C", flagCfg.CriticalMsg, "message shown at the critical level")
	f.StringVarP(&flagCfg.DangerCmd, "danger-command", "D", "", "command run at the danger level")
	f.StringVarP(&flagCfg.FullMsg, "full-message", "F", flagCfg.FullMsg, "message shown when the battery is full")
	f.StringVarP(&flagCfg.ChargingMsg, "charging-message", "P", flagCfg.ChargingMsg, "message shown when the battery begins charging")
	f.StringVarP(&flagCfg.DischargingMsg, "discharging-message", "U", flagCfg.DischargingMsg, "message shown when the battery begins discharging")
	f.StringVarP(&flagCfg.MsgCmd, "message-command", "M", "", "send each message using this command; %s placeholders receive message and level")

	f.BoolVarP(&noNotifications, "no-notifications", "N", false, "disable desktop notifications")
	f.BoolVarP(&ignoreMissing, "ignore-missing", "i", false, "ignore missing battery errors")
	f.StringSliceVarP(&flagCfg.Devices, "battery", "n", nil, "battery names to watch (default: discover)")

	f.StringVarP(&flagCfg.AppName, "app-name", "a", flagCfg.AppName, "app name used in desktop notifications")
	f.StringVarP(&flagCfg.Icon, "icon", "I", "", "icon used in desktop notifications")
	f.BoolVarP(&flagCfg.Expires, "expires", "e", false, "let notifications expire instead of staying on screen")

	f.StringVar(&flagCfg.Backend, "backend", flagCfg.Backend, "battery reader backend (sysfs or portable)")
	f.StringVar(&flagCfg.HistoryDB, "history-db", "", "record every check into this SQLite database")

	f.BoolVarP(&once, "once", "o", false, "check the battery once and exit")

	return cmd
}

// buildConfig merges defaults, the config file and explicitly set flags, in
// that order of precedence (flags win).
func buildConfig(fs *pflag.FlagSet, flagCfg *config.Config, noNotifications, ignoreMissing bool) (*config.Config, error) {
	cfg := config.Default()

	raw, err := config.LoadFile(configPath)
	if err != nil {
		return nil, err
	}
	raw.Apply(cfg)

	overrides := map[string]func(){
		"warning":  func() { cfg.Warning = flagCfg.Warning },
		"critical": func() { cfg.Critical = flagCfg.Critical },
		"danger":   func() { cfg.Danger = flagCfg.Danger },
		"full": func() {
			cfg.Full = flagCfg.Full
			// A full level forces fixed polling; the estimate makes no sense
			// while charging.
			if flagCfg.Full > 0 {
				cfg.Fixed = true
			}
		},
		"interval": func() { cfg.Interval = flagCfg.Interval },
		"fixed":    func() { cfg.Fixed = flagCfg.Fixed },
		"charging-messages": func() {
			cfg.ShowChargingMsg = flagCfg.ShowChargingMsg
			if flagCfg.ShowChargingMsg {
				cfg.Fixed = true
			}
		},
		"warning-message":     func() { cfg.WarningMsg = flagCfg.WarningMsg },
		"critical-message":    func() { cfg.CriticalMsg = flagCfg.CriticalMsg },
		"danger-command":      func() { cfg.DangerCmd = flagCfg.DangerCmd },
		"full-message":        func() { cfg.FullMsg = flagCfg.FullMsg },
		"charging-message":    func() { cfg.ChargingMsg = flagCfg.ChargingMsg },
		"discharging-message": func() { cfg.DischargingMsg = flagCfg.DischargingMsg },
		"message-command":     func() { cfg.MsgCmd = flagCfg.MsgCmd },
		"no-notifications":    func() { cfg.ShowNotifications = !noNotifications },
		"ignore-missing":      func() { cfg.BatteryRequired = !ignoreMissing },
		"battery":             func() { cfg.Devices = flagCfg.Devices },
		"app-name":            func() { cfg.AppName = flagCfg.AppName },
		"icon":                func() { cfg.Icon = flagCfg.Icon },
		"expires":             func() { cfg.Expires = flagCfg.Expires },
		"backend":             func() { cfg.Backend = flagCfg.Backend },
		"history-db":          func() { cfg.HistoryDB = flagCfg.HistoryDB },
	}

	fs.Visit(func(f *pflag.Flag) {
		if apply, ok := overrides[f.Name]; ok {
			apply()
		}
	})

	return cfg, nil
}

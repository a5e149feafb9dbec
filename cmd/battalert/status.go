package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the daemon's last battery check",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := apiClient()

			report, err := c.GetStatus()
			if err != nil {
				return fmt.Errorf("failed to get status: %w", err)
			}
			conf, err := c.GetConfig()
			if err != nil {
				return fmt.Errorf("failed to get config: %w", err)
			}

			cmd.Println(bold("Battery status:"))
			cmd.Printf("  Level: %s\n", bold("%d%%", report.Level))
			cmd.Printf("  State: %s\n", stateText(report.State))
			cmd.Printf("  Discharging: %s\n", bool2Text(report.Discharging))
			cmd.Printf("  Full: %s\n", bool2Text(report.Full))
			if !report.LastCheck.IsZero() {
				cmd.Printf("  Last check: %s\n", report.LastCheck.Format(time.RFC1123))
			}

			cmd.Println()
			cmd.Println(bold("Configured levels:"))
			cmd.Printf("  Warning: %s\n", levelText(conf.Warning))
			cmd.Printf("  Critical: %s\n", levelText(conf.Critical))
			cmd.Printf("  Danger: %s\n", levelText(conf.Danger))
			cmd.Printf("  Full: %s\n", levelText(conf.Full))
			cmd.Printf("  Interval: %s\n", bold("%ds", conf.Interval))
			cmd.Printf("  Fixed interval: %s\n", bool2Text(conf.Fixed))
			cmd.Printf("  Desktop notifications: %s\n", bool2Text(conf.ShowNotifications))

			return nil
		},
	}
}

func stateText(state string) string {
	switch state {
	case "AC", "FULL":
		return color.New(color.Bold, color.FgGreen).Sprint(state)
	case "WARNING":
		return color.New(color.Bold, color.FgYellow).Sprint(state)
	case "CRITICAL", "DANGER":
		return color.New(color.Bold, color.FgRed).Sprint(state)
	default:
		return bold("%s", state)
	}
}

func levelText(level int) string {
	if level == 0 {
		return color.New(color.Faint).Sprint("disabled")
	}
	return bold("%d%%", level)
}

func bool2Text(b bool) string {
	if b {
		return color.New(color.Bold, color.FgGreen).Sprint("✔")
	}
	return color.New(color.Bold, color.FgRed).Sprint("✘")
}

func bold(format string, a ...interface{}) string {
	return color.New(color.Bold).Sprintf(format, a...)
}

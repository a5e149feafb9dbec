package main

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/battalert/battalert/pkg/client"
)

var (
	logLevel       = "info"
	unixSocketPath = "/var/run/battalert.sock"
	configPath     = "/etc/battalert.json"
)

func setupLogger() error {
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("failed to parse log level: %v", err)
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{})
	if term.IsTerminal(int(os.Stderr.Fd())) {
		logrus.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: time.Kitchen,
		})
	}

	return nil
}

func apiClient() *client.Client {
	return client.NewClient(unixSocketPath)
}

func handleCmdError(err error) {
	if err == nil {
		return
	}
	switch {
	case err == client.ErrDaemonNotRunning:
		fmt.Fprintln(os.Stderr, "\nError: battalert daemon is not running")
		fmt.Fprintln(os.Stderr, "Start it with 'battalert daemon'")
	case err == client.ErrPermissionDenied:
		fmt.Fprintln(os.Stderr, "\nError: permission denied")
		fmt.Fprintln(os.Stderr, "Try running the command again with 'sudo'")
	}
}

func main() {
	cmd := NewCommand()
	if err := cmd.Execute(); err != nil {
		handleCmdError(err)
		os.Exit(1)
	}
}

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "battalert",
		Short:        "battalert sends battery level notifications",
		Long:         `battalert watches your batteries and sends a desktop notification (or runs a command) when the charge crosses the configured warning, critical, danger or full levels.`,
		SilenceUsage: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogger()
		},
	}

	globalFlags := cmd.PersistentFlags()
	globalFlags.StringVarP(&logLevel, "log-level", "l", "info", "log level (trace, debug, info, warn, error, fatal, panic)")
	globalFlags.StringVar(&configPath, "config", configPath, "config file path")
	globalFlags.StringVar(&unixSocketPath, "daemon-socket", unixSocketPath, "battalert daemon unix socket path")

	cmd.AddCommand(
		NewDaemonCommand(),
		NewStatusCommand(),
		NewCheckCommand(),
		NewVersionCommand(),
	)

	return cmd
}

// Package daemon wires the monitor loop to the outside world: device
// discovery, notification sinks, process signals and the control API served
// over a unix socket.
package daemon

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/battalert/battalert/pkg/config"
	"github.com/battalert/battalert/pkg/history"
	"github.com/battalert/battalert/pkg/monitor"
	"github.com/battalert/battalert/pkg/notify"
	"github.com/battalert/battalert/pkg/powersupply"
)

func setupRoutes(loop *monitor.Loop, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))

	s := &server{loop: loop, cfg: cfg}
	router.GET("/status", s.getStatus)
	router.GET("/config", s.getConfig)
	router.POST("/check", s.postCheck)
	router.GET("/version", s.getVersion)

	return router
}

// Run starts the daemon: builds the loop, serves the control API and blocks
// until a terminate signal arrives or the loop fails.
func Run(cfg *config.Config, unixSocketPath string) error {
	loop, cleanup, err := buildLoop(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	router := setupRoutes(loop, cfg)
	srv := &http.Server{Handler: router}

	// A stale socket from an unclean exit would fail the listen.
	_ = os.Remove(unixSocketPath)

	l, err := net.Listen("unix", unixSocketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", unixSocketPath)
	}

	go func() {
		logrus.Infof("control api listening on %s", l.Addr().String())
		if err := srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Errorf("control api server failed: %v", err)
		}
	}()

	// SIGUSR1 asks for an immediate re-check.
	wakec := make(chan os.Signal, 1)
	signal.Notify(wakec, syscall.SIGUSR1)
	go func() {
		for range wakec {
			logrus.Debug("received SIGUSR1, waking the loop")
			loop.Wake()
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loopErr := make(chan error, 1)
	go func() {
		loopErr <- loop.Run(ctx)
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigc:
		logrus.Infof("caught signal %q: shutting down", sig)
		cancel()
		<-loopErr
	case err := <-loopErr:
		if err != nil {
			logrus.Errorf("monitor loop failed: %v", err)
			shutdownServer(srv)
			return err
		}
		logrus.Info("monitor loop finished")
	}

	shutdownServer(srv)
	logrus.Info("exiting")
	return nil
}

// RunOnce executes a single check cycle and exits, skipping signals and the
// control API entirely. Useful for scripting.
func RunOnce(cfg *config.Config) error {
	loop, cleanup, err := buildLoop(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	return loop.RunOnce()
}

// buildLoop resolves devices and sinks and assembles the monitor loop. The
// returned cleanup releases sink and recorder resources.
func buildLoop(cfg *config.Config) (*monitor.Loop, func(), error) {
	reader, devices, err := resolveDevices(cfg)
	if err != nil {
		return nil, nil, err
	}
	logrus.Infof("using batteries: %v", devices)

	loop := monitor.NewLoop(cfg, reader, devices)
	loop.Commands = notify.NewShellRunner()

	var sink *notify.DesktopSink
	if cfg.ShowNotifications {
		sink, err = notify.NewDesktopSink(cfg.AppName, cfg.Icon, cfg.Expires)
		if err != nil {
			// A missing notification backend must not stop monitoring; the
			// message-command hook keeps working.
			logrus.Errorf("desktop notifications unavailable: %v", err)
		} else {
			loop.Notifier = sink
		}
	}

	var recorder *history.Recorder
	if cfg.HistoryDB != "" {
		recorder, err = history.Open(cfg.HistoryDB)
		if err != nil {
			if sink != nil {
				_ = sink.Shutdown()
			}
			return nil, nil, err
		}
		loop.Recorder = recorder
	}

	cleanup := func() {
		if sink != nil {
			if err := sink.Shutdown(); err != nil {
				logrus.Warnf("failed to close notification backend: %v", err)
			}
		}
		if recorder != nil {
			if err := recorder.Close(); err != nil {
				logrus.Warnf("failed to close history database: %v", err)
			}
		}
	}

	return loop, cleanup, nil
}

// resolveDevices picks the reader backend and the ordered device list.
// Named devices are validated; with no names, batteries are discovered. An
// empty final list is a fatal configuration error.
func resolveDevices(cfg *config.Config) (powersupply.Reader, []string, error) {
	switch cfg.Backend {
	case config.BackendPortable:
		reader := powersupply.NewPortableReader()
		devices := cfg.Devices
		if len(devices) == 0 {
			var err error
			devices, err = reader.Discover()
			if err != nil {
				return nil, nil, err
			}
		}
		if len(devices) == 0 {
			return nil, nil, pkgerrors.New("no batteries found")
		}
		return reader, devices, nil

	default:
		reader := powersupply.NewSysfsReader()
		devices := cfg.Devices
		if len(devices) == 0 {
			var err error
			devices, err = reader.Discover()
			if err != nil {
				return nil, nil, err
			}
		} else {
			for _, name := range devices {
				if err := reader.Validate(name); err != nil {
					if cfg.BatteryRequired {
						return nil, nil, err
					}
					logrus.Warnf("ignoring missing battery: %v", err)
				}
			}
		}
		if len(devices) == 0 {
			return nil, nil, pkgerrors.New("no batteries found")
		}
		return reader, devices, nil
	}
}

func shutdownServer(srv *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.Errorf("failed to shutdown control api server: %v", err)
	}
}

package monitor

import (
	"context"
	"sync"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/battalert/battalert/pkg/config"
	"github.com/battalert/battalert/pkg/powersupply"
)

// Notifier is the desktop-notification sink. Implementations must tolerate
// being called with a dead backend; delivery failures are logged by the
// loop and never retried.
type Notifier interface {
	Notify(message string, level int, urgency Urgency) error
	Close() error
}

// CommandRunner executes shell commands for the danger hook and the
// message-command hook. Exit statuses are ignored.
type CommandRunner interface {
	Run(command string) error
	RunMessage(command, message string, level int) error
}

// Recorder persists one row per completed cycle. Optional.
type Recorder interface {
	Record(at time.Time, snap Snapshot, state State) error
}

// StatusReport is the wire shape served by the daemon's status endpoint.
type StatusReport struct {
	Level       int       `json:"level"`
	State       string    `json:"state"`
	Discharging bool      `json:"discharging"`
	Full        bool      `json:"full"`
	LastCheck   time.Time `json:"lastCheck"`
}

// Loop is the single-threaded control loop: sample, classify, dispatch,
// sleep. The only cross-goroutine interactions are Wake and Report.
type Loop struct {
	cfg     *config.Config
	reader  powersupply.Reader
	devices []string

	// Notifier may be nil when desktop notifications are disabled or the
	// backend failed to initialize. Recorder may be nil.
	Notifier Notifier
	Commands CommandRunner
	Recorder Recorder

	state  RunState
	wakeCh chan struct{}

	mu        sync.Mutex
	lastSnap  Snapshot
	lastCheck time.Time
}

func NewLoop(cfg *config.Config, reader powersupply.Reader, devices []string) *Loop {
	return &Loop{
		cfg:     cfg,
		reader:  reader,
		devices: devices,
		state:   RunState{State: StateAC},
		wakeCh:  make(chan struct{}, 1),
	}
}

// Wake asks the loop to re-sample immediately. Safe to call from any
// goroutine; redundant wakes coalesce.
func (l *Loop) Wake() {
	select {
	case l.wakeCh <- struct{}{}:
	default:
	}
}

// Report returns the last completed cycle's snapshot and state.
func (l *Loop) Report() StatusReport {
	l.mu.Lock()
	defer l.mu.Unlock()
	return StatusReport{
		Level:       l.lastSnap.Level,
		State:       l.state.State.String(),
		Discharging: l.lastSnap.Discharging,
		Full:        l.lastSnap.Full,
		LastCheck:   l.lastCheck,
	}
}

// Run drives the loop until ctx is cancelled or a fatal error occurs.
func (l *Loop) Run(ctx context.Context) error {
	if err := l.prime(); err != nil {
		return err
	}

	for {
		if err := l.cycle(); err != nil {
			return err
		}

		l.mu.Lock()
		level := l.lastSnap.Level
		l.mu.Unlock()

		delay := NextDelay(l.state.State, level, l.cfg)
		if !l.sleep(ctx, delay) {
			return nil
		}
	}
}

// RunOnce executes exactly one sample/classify/dispatch cycle, skipping the
// scheduler wait.
func (l *Loop) RunOnce() error {
	if err := l.prime(); err != nil {
		return err
	}
	return l.cycle()
}

// prime seeds the previous discharging flag from a fresh reading so the
// first cycle cannot fire a spurious charging-edge message.
func (l *Loop) prime() error {
	readings, err := l.sample()
	if err != nil {
		return err
	}
	snap, err := Aggregate(readings)
	if err != nil {
		return err
	}
	l.state.Discharging = snap.Discharging
	return nil
}

// sample reads every configured device. Unreadable devices are fatal under
// the battery-required policy, otherwise they drop out of this cycle's sum.
func (l *Loop) sample() ([]powersupply.Reading, error) {
	readings := make([]powersupply.Reading, 0, len(l.devices))
	for _, name := range l.devices {
		r, err := l.reader.Read(name)
		if err != nil {
			if l.cfg.BatteryRequired {
				return nil, pkgerrors.Wrapf(err, "could not read battery %s", name)
			}
			logrus.WithFields(logrus.Fields{
				"device": name,
			}).Warnf("skipping unreadable battery: %v", err)
			continue
		}
		readings = append(readings, r)
	}
	return readings, nil
}

func (l *Loop) cycle() error {
	readings, err := l.sample()
	if err != nil {
		return err
	}

	snap, err := Aggregate(readings)
	if err != nil {
		return err
	}

	res := Classify(snap, l.state, l.cfg)
	action := Decide(res, l.state, l.cfg)
	l.perform(action, snap.Level)

	l.mu.Lock()
	l.state = RunState{State: res.State, Discharging: snap.Discharging}
	l.lastSnap = snap
	l.lastCheck = time.Now()
	l.mu.Unlock()

	if l.Recorder != nil {
		if err := l.Recorder.Record(time.Now(), snap, res.State); err != nil {
			logrus.Warnf("failed to record history sample: %v", err)
		}
	}

	logrus.WithFields(logrus.Fields{
		"level":        snap.Level,
		"state":        res.State.String(),
		"discharging":  snap.Discharging,
		"full":         snap.Full,
		"transitioned": res.Transitioned,
	}).Debug("battery check complete")

	return nil
}

// perform executes an action against the sinks. Sink failures never stall
// the loop; they are logged and forgotten.
func (l *Loop) perform(action Action, level int) {
	switch action.Kind {
	case ActionNone:
		return

	case ActionCommand:
		if l.Commands == nil {
			return
		}
		if err := l.Commands.Run(action.Command); err != nil {
			logrus.Errorf("danger command failed: %v", err)
		}

	case ActionNotify:
		if l.Commands != nil && l.cfg.MsgCmd != "" {
			if err := l.Commands.RunMessage(l.cfg.MsgCmd, action.Message, level); err != nil {
				logrus.Errorf("message command failed: %v", err)
			}
		}
		if l.Notifier != nil && action.Message != "" {
			if err := l.Notifier.Notify(action.Message, level, action.Urgency); err != nil {
				logrus.Errorf("failed to show notification: %v", err)
			}
		}

	case ActionClose:
		if l.Notifier == nil {
			return
		}
		if err := l.Notifier.Close(); err != nil {
			logrus.Errorf("failed to close notification: %v", err)
		}
	}
}

// sleep blocks for the given delay, returning early on a wake request. An
// interval of 0 means wait for a wake signal indefinitely. Returns false
// when the context is done.
func (l *Loop) sleep(ctx context.Context, delay time.Duration) bool {
	if l.cfg.Interval == 0 {
		select {
		case <-ctx.Done():
			return false
		case <-l.wakeCh:
			return true
		}
	}

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-l.wakeCh:
		return true
	case <-timer.C:
		return true
	}
}

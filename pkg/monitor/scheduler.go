package monitor

import (
	"time"

	"github.com/battalert/battalert/pkg/config"
)

// maxDelay caps the adaptive estimate. Right after a charge/discharge
// reversal (level - warning) can be huge; an hour bound keeps the monitor
// reasonably responsive without needless wakeups.
const maxDelay = time.Hour

// NextDelay computes how long to sleep before the next sample. With fixed
// polling (or interval 0, which means wait-for-signal) the base interval is
// returned unchanged. While discharging above a threshold the delay is a
// linear time-to-threshold estimate: one interval per percent of charge
// left until the next threshold, clamped to [interval, maxDelay].
func NextDelay(state State, level int, cfg *config.Config) time.Duration {
	interval := cfg.PollInterval()
	if cfg.Fixed || cfg.Interval == 0 {
		return interval
	}

	var steps int
	switch state {
	case StateWarning:
		steps = level - cfg.Critical
	case StateDischarging:
		steps = level - cfg.Warning
	default:
		return interval
	}

	if steps < 1 {
		steps = 1
	}
	delay := time.Duration(steps) * interval
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

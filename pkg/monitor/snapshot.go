package monitor

import (
	"math"

	pkgerrors "github.com/pkg/errors"

	"github.com/battalert/battalert/pkg/powersupply"
)

// Snapshot is one cycle's aggregated power-source reading.
type Snapshot struct {
	// Level is the total charge in percent, 0..100.
	Level int
	// Discharging is true when any device reports Discharging.
	Discharging bool
	// Full is true only when every device reports Full.
	Full bool
}

// Aggregation errors. Both are fatal: a level cannot be derived.
var (
	ErrNoReadings   = pkgerrors.New("no readable power supply devices")
	ErrZeroCapacity = pkgerrors.New("total battery capacity is zero")
)

// Aggregate folds per-device readings into a single snapshot. The
// discharging flag is an OR-fold and the full flag an AND-fold across
// devices. Charge is a weighted sum: percentage-only devices contribute
// (percent, 100) so the total stays percentage-equivalent.
func Aggregate(readings []powersupply.Reading) (Snapshot, error) {
	if len(readings) == 0 {
		return Snapshot{}, ErrNoReadings
	}

	snap := Snapshot{Full: true}
	var energyNow, energyFull float64

	for _, r := range readings {
		snap.Discharging = snap.Discharging || r.Status == powersupply.StatusDischarging
		snap.Full = snap.Full && r.Status == powersupply.StatusFull

		if r.PercentOnly {
			energyNow += r.Now
			energyFull += 100
		} else {
			energyNow += r.Now
			energyFull += r.Full
		}
	}

	if energyFull == 0 {
		return Snapshot{}, ErrZeroCapacity
	}

	// Half-away-from-zero rounding, matching libc round().
	snap.Level = int(math.Round(100 * energyNow / energyFull))
	return snap, nil
}

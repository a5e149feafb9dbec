package monitor

import "github.com/battalert/battalert/pkg/config"

// Result is the outcome of classifying one snapshot.
type Result struct {
	State State
	// Transitioned is true when the state differs from the previous cycle,
	// or when an edge message fires without a state change.
	Transitioned bool
	// Edge marks a charging/discharging flip that warrants a message even
	// though the state label may be unchanged.
	Edge bool
}

// dischargeRule is one entry of the priority-ordered threshold table.
// Rules are evaluated top to bottom; the first match wins. A threshold of 0
// disables its rule.
type dischargeRule struct {
	match func(snap Snapshot, cfg *config.Config) bool
	state State
}

var dischargeRules = []dischargeRule{
	{
		match: func(s Snapshot, c *config.Config) bool { return c.Danger != 0 && s.Level <= c.Danger },
		state: StateDanger,
	},
	{
		match: func(s Snapshot, c *config.Config) bool { return c.Critical != 0 && s.Level <= c.Critical },
		state: StateCritical,
	},
	{
		match: func(s Snapshot, c *config.Config) bool { return c.Warning != 0 && s.Level <= c.Warning },
		state: StateWarning,
	},
	{
		match: func(Snapshot, *config.Config) bool { return true },
		state: StateDischarging,
	},
}

// Classify derives the new state from the snapshot, the previous run state
// and the configured thresholds. It is pure: calling it again with the same
// inputs yields the same result.
func Classify(snap Snapshot, prev RunState, cfg *config.Config) Result {
	if snap.Discharging {
		res := Result{State: StateDischarging}
		for _, rule := range dischargeRules {
			if rule.match(snap, cfg) {
				res.State = rule.state
				break
			}
		}

		// A discharge edge only carries a message in the plain discharging
		// state; at warning and below the threshold message takes over.
		if res.State == StateDischarging && cfg.ShowChargingMsg && snap.Discharging != prev.Discharging {
			res.Edge = true
		}
		res.Transitioned = res.State != prev.State || res.Edge
		return res
	}

	// Charging path.
	if cfg.Full != 0 && prev.State != StateFull && (snap.Level >= cfg.Full || snap.Full) {
		return Result{State: StateFull, Transitioned: true}
	}

	if cfg.ShowChargingMsg && snap.Discharging != prev.Discharging {
		return Result{
			State:        StateAC,
			Transitioned: true,
			Edge:         true,
		}
	}

	return Result{State: StateAC, Transitioned: prev.State != StateAC}
}

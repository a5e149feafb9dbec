// Package monitor holds the battery-state machine: snapshot aggregation,
// threshold classification, dispatch decisions, the adaptive poll scheduler
// and the control loop tying them together.
package monitor

// State is the discrete classification currently in effect. Exactly one
// state is active at a time; transitions depend only on the previous state,
// the current snapshot and the configuration.
type State int

const (
	StateAC State = iota
	StateDischarging
	StateWarning
	StateCritical
	StateDanger
	StateFull
)

func (s State) String() string {
	switch s {
	case StateAC:
		return "AC"
	case StateDischarging:
		return "DISCHARGING"
	case StateWarning:
		return "WARNING"
	case StateCritical:
		return "CRITICAL"
	case StateDanger:
		return "DANGER"
	case StateFull:
		return "FULL"
	default:
		return "UNKNOWN"
	}
}

// RunState is the only value carried across cycles: the previous state and
// the previous discharging flag (needed for the charging-edge messages).
type RunState struct {
	State       State
	Discharging bool
}

// Urgency is the severity passed to the notification sink. Critical-level
// messages are urgent; everything else is informational.
type Urgency int

const (
	UrgencyNormal Urgency = iota
	UrgencyCritical
)

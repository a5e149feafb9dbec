package monitor

import "github.com/battalert/battalert/pkg/config"

// ActionKind classifies what a transition asks the sinks to do.
type ActionKind int

const (
	// ActionNone: steady state, nothing fires.
	ActionNone ActionKind = iota
	// ActionNotify: show (or update) a message through the configured sinks.
	ActionNotify
	// ActionCommand: run the danger shell command.
	ActionCommand
	// ActionClose: dismiss the currently visible notification.
	ActionClose
)

// Action is what the dispatcher decided for one transition. Executing it is
// the loop's job; deciding it is pure.
type Action struct {
	Kind    ActionKind
	Message string
	Command string
	Urgency Urgency
}

// Decide maps a classification result to the action to perform. The state
// machine is edge-triggered: without a transition nothing ever fires, so
// repeated polls in the same state stay silent.
func Decide(res Result, prev RunState, cfg *config.Config) Action {
	if !res.Transitioned {
		return Action{Kind: ActionNone}
	}

	switch res.State {
	case StateDanger:
		if cfg.DangerCmd == "" {
			return Action{Kind: ActionNone}
		}
		return Action{Kind: ActionCommand, Command: cfg.DangerCmd}

	case StateCritical:
		return Action{Kind: ActionNotify, Message: cfg.CriticalMsg, Urgency: UrgencyCritical}

	case StateWarning:
		return Action{Kind: ActionNotify, Message: cfg.WarningMsg, Urgency: UrgencyNormal}

	case StateFull:
		return Action{Kind: ActionNotify, Message: cfg.FullMsg, Urgency: UrgencyNormal}

	case StateAC:
		if res.Edge {
			return Action{Kind: ActionNotify, Message: cfg.ChargingMsg, Urgency: UrgencyNormal}
		}
		// Plain AC entry dismisses whatever is on screen.
		return Action{Kind: ActionClose}

	case StateDischarging:
		if res.Edge {
			return Action{Kind: ActionNotify, Message: cfg.DischargingMsg, Urgency: UrgencyNormal}
		}
		if prev.State == StateFull {
			// Leaving FULL downward retires the full-battery notification.
			return Action{Kind: ActionClose}
		}
		return Action{Kind: ActionNone}
	}

	return Action{Kind: ActionNone}
}

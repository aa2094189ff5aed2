package flow

import "github.com/viant/custard/model/identity"

// Action is the per-task effect a supervisor applies at a cycle boundary.
type Action int

const (
	ActionNone Action = iota
	ActionReload
	ActionStop
)

func (a Action) String() string {
	switch a {
	case ActionReload:
		return "reload"
	case ActionStop:
		return "stop"
	}
	return "none"
}

// Merge keeps the stronger of two pending actions; stop wins over reload.
func (a Action) Merge(other Action) Action {
	if other > a {
		return other
	}
	return a
}

// Scope returns the action the outcome produced by origin implies for
// candidate, ignoring any cross-task responses.
func (c ControlFlow) Scope(origin, candidate identity.FullTaskName) Action {
	self := origin == candidate
	switch c.Kind {
	case KindReload:
		if self {
			return ActionReload
		}
	case KindFullReload:
		if candidate.Crate == origin.Crate {
			return ActionReload
		}
	case KindPartialReload:
		if c.Crates.Contains(candidate.Crate) {
			return ActionReload
		}
	case KindStopThis, KindErr:
		if self {
			return ActionStop
		}
	case KindStopAll:
		return ActionStop
	}
	return ActionNone
}

// Follow returns the action taken by a task that answered true when notified
// of this outcome.
func (c ControlFlow) Follow() Action {
	switch {
	case c.IsReload():
		return ActionReload
	case c.IsStop():
		return ActionStop
	}
	return ActionNone
}

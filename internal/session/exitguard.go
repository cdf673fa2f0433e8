package session

// GuardState is where a session stands with respect to leaving the editor.
type GuardState int

const (
	Clean GuardState = iota
	Dirty
	ConfirmPending
	Exited
)

func (s GuardState) String() string {
	switch s {
	case Clean:
		return "clean"
	case Dirty:
		return "dirty"
	case ConfirmPending:
		return "confirm-pending"
	case Exited:
		return "exited"
	default:
		return "unknown"
	}
}

// EventKind enumerates the inputs of the exit state machine.
type EventKind int

const (
	EventSettled EventKind = iota
	EventExitRequested
	EventCancel
	EventConfirmDiscard
	EventSaveAndExit
	EventSaveFailed
)

// Event is one input to Transition. Dirty is only meaningful for EventSettled.
type Event struct {
	Kind  EventKind
	Dirty bool
}

func Settled(dirty bool) Event { return Event{Kind: EventSettled, Dirty: dirty} }

var (
	ExitRequested  = Event{Kind: EventExitRequested}
	Cancel         = Event{Kind: EventCancel}
	ConfirmDiscard = Event{Kind: EventConfirmDiscard}
	SaveAndExit    = Event{Kind: EventSaveAndExit}
	SaveFailed     = Event{Kind: EventSaveFailed}
)

// Effect is the side effect the controller must carry out after a transition.
type Effect int

const (
	EffectNone Effect = iota
	EffectExit
	EffectPrompt
	EffectSave
	EffectReject
)

func (e Effect) String() string {
	switch e {
	case EffectNone:
		return "none"
	case EffectExit:
		return "exit"
	case EffectPrompt:
		return "prompt"
	case EffectSave:
		return "save"
	case EffectReject:
		return "reject"
	default:
		return "unknown"
	}
}

// Transition is the exit guard. It has no side effects.
func Transition(s GuardState, ev Event) (GuardState, Effect) {
	if s == Exited {
		return Exited, EffectReject
	}

	switch ev.Kind {
	case EventSettled:
		if s == ConfirmPending {
			return s, EffectNone
		}
		if ev.Dirty {
			return Dirty, EffectNone
		}
		return Clean, EffectNone

	case EventExitRequested:
		switch s {
		case Clean:
			return Exited, EffectExit
		default:
			// A second back press while confirming shows the same prompt again
			return ConfirmPending, EffectPrompt
		}

	case EventCancel:
		if s == ConfirmPending {
			return Dirty, EffectNone
		}
	case EventConfirmDiscard:
		if s == ConfirmPending {
			return Exited, EffectExit
		}
	case EventSaveAndExit:
		if s == ConfirmPending {
			return Exited, EffectSave
		}
	case EventSaveFailed:
		if s == ConfirmPending {
			return ConfirmPending, EffectNone
		}
	}
	return s, EffectReject
}

// ExitGuard holds the current state of one session's exit machine.
type ExitGuard struct {
	state GuardState
}

func (g *ExitGuard) State() GuardState {
	return g.state
}

// Fire applies ev and returns the effect.
func (g *ExitGuard) Fire(ev Event) Effect {
	next, effect := Transition(g.state, ev)
	g.state = next
	return effect
}

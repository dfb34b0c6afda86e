// Package domain contains core business types for the focusloop application.
package domain

// SessionType identifies what a timed interval counts toward
type SessionType string

const (
	TypeWork       SessionType = "work"
	TypeShortBreak SessionType = "short_break"
	TypeLongBreak  SessionType = "long_break"
)

// String returns the wire value
func (t SessionType) String() string {
	return string(t)
}

// Label returns the human-readable name for the type
func (t SessionType) Label() string {
	switch t {
	case TypeWork:
		return "Focus"
	case TypeShortBreak:
		return "Short Break"
	case TypeLongBreak:
		return "Long Break"
	default:
		return "Unknown"
	}
}

// IsBreak reports whether the type is one of the two break variants
func (t SessionType) IsBreak() bool {
	return t == TypeShortBreak || t == TypeLongBreak
}

// Phase represents the lifecycle phase of the session engine
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhasePaused
	PhaseAwaitingRating
)

// String returns the display string
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhasePaused:
		return "paused"
	case PhaseAwaitingRating:
		return "rating"
	default:
		return "unknown"
	}
}

// Icon returns a unicode icon for the phase
func (p Phase) Icon() string {
	switch p {
	case PhaseIdle:
		return "○"
	case PhaseRunning:
		return "●"
	case PhasePaused:
		return "⏸"
	case PhaseAwaitingRating:
		return "◐"
	default:
		return "?"
	}
}

// DistractionType categorizes an interruption
type DistractionType string

const (
	DistractionNotification  DistractionType = "notification"
	DistractionConversation  DistractionType = "conversation"
	DistractionEnvironmental DistractionType = "environmental"
	DistractionPhysical      DistractionType = "physical"
	DistractionMental        DistractionType = "mental"
	DistractionOther         DistractionType = "other"
)

// DistractionTypes lists all recognized distraction categories in display order
var DistractionTypes = []DistractionType{
	DistractionNotification,
	DistractionConversation,
	DistractionEnvironmental,
	DistractionPhysical,
	DistractionMental,
	DistractionOther,
}

// Label returns the human-readable name for the distraction type
func (d DistractionType) Label() string {
	switch d {
	case DistractionNotification:
		return "Notification"
	case DistractionConversation:
		return "Conversation"
	case DistractionEnvironmental:
		return "Environmental"
	case DistractionPhysical:
		return "Physical"
	case DistractionMental:
		return "Mental"
	default:
		return "Other"
	}
}

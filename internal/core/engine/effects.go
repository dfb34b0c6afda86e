package engine

import (
	"time"

	"focusloop/internal/domain"
)

// Effect describes a collaborator side effect requested by a state
// transition. The engine only mutates in-memory state; the caller (the TUI
// program) translates effects into recorder calls, notifications and
// scheduled messages. Recorder effects are fire-and-forget: their failure
// never rolls back the transition that produced them.
type Effect interface {
	effect()
}

// CreateSession asks the recorder to open a new session record
type CreateSession struct {
	Session domain.Session
}

// UpdateSession attaches the captured rating to a work session record
type UpdateSession struct {
	SessionID         string
	ProductivityScore int
	EnergyLevel       int
	Notes             string
}

// CompleteSession marks a session record as completed
type CompleteSession struct {
	SessionID string
}

// InterruptSession records a distraction against the active session
type InterruptSession struct {
	SessionID   string
	Distraction domain.Distraction
}

// AbandonSession marks a reset session's remote record as abandoned rather
// than leaving it in-progress server-side. Strictly best-effort: failures are
// logged and never retried.
type AbandonSession struct {
	SessionID string
}

// PlayTone requests the completion sound cue
type PlayTone struct{}

// Notify requests a desktop notification
type Notify struct {
	Title string
	Body  string
}

// ScheduleAutoStart asks the caller to deliver an auto-start callback after
// the fixed post-completion delay. Gen is a cancellation token: the engine
// ignores callbacks whose generation no longer matches.
type ScheduleAutoStart struct {
	Gen   int
	After time.Duration
}

// ArmEnforcement asks the caller to arm the break-enforcement grace timer
type ArmEnforcement struct {
	Type  domain.SessionType
	Delay time.Duration
}

// DisarmEnforcement cancels any pending break-enforcement grace timer
type DisarmEnforcement struct{}

// RefreshStats asks the caller to re-fetch daily stats and streak for display
type RefreshStats struct{}

func (CreateSession) effect()     {}
func (UpdateSession) effect()     {}
func (CompleteSession) effect()   {}
func (InterruptSession) effect()  {}
func (AbandonSession) effect()    {}
func (PlayTone) effect()          {}
func (Notify) effect()            {}
func (ScheduleAutoStart) effect() {}
func (ArmEnforcement) effect()    {}
func (DisarmEnforcement) effect() {}
func (RefreshStats) effect()      {}

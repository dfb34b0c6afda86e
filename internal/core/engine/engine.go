// Package engine implements the focus-session lifecycle state machine.
//
// The engine owns the active session, the countdown clock and the
// completed-work counter, and decides every transition: start, pause/resume,
// interruption capture, expiry, rating capture and the advance to the next
// session type. It performs no I/O itself; transitions return effects that
// the caller executes (see effects.go), so the whole lifecycle is unit
// testable without timers or a network.
package engine

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"focusloop/internal/core/timer"
	"focusloop/internal/domain"
)

// autoStartDelay is the fixed pause between a session completing and the
// next one auto-starting, long enough for the completion cues to play.
const autoStartDelay = 1500 * time.Millisecond

// Engine is the session lifecycle state machine. Not safe for concurrent
// use: all mutations happen on the TUI event loop.
type Engine struct {
	settings domain.Settings
	clock    *timer.Clock
	phase    domain.Phase
	selected domain.SessionType

	active        *domain.Session
	completedWork int

	// Pending task link and notes applied to the next created session
	taskID string
	notes  string

	// startGen invalidates stale auto-start callbacks: any transition that
	// bumps it turns an already-scheduled callback into a no-op.
	startGen int

	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// New creates an engine in the idle phase with a work session selected
func New(settings domain.Settings, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Engine{
		settings: settings,
		selected: domain.TypeWork,
		phase:    domain.PhaseIdle,
		logger:   logger,
		now:      time.Now,
		newID:    uuid.NewString,
	}
	e.clock = timer.New(ResolveSeconds(settings, e.selected))
	return e
}

// Phase returns the current lifecycle phase
func (e *Engine) Phase() domain.Phase { return e.phase }

// Selected returns the session type the clock is counting toward
func (e *Engine) Selected() domain.SessionType { return e.selected }

// Remaining returns the seconds left on the countdown
func (e *Engine) Remaining() int { return e.clock.Remaining() }

// Progress returns the elapsed fraction of the current countdown
func (e *Engine) Progress() float64 { return e.clock.Progress() }

// ClockRunning reports whether the countdown is ticking
func (e *Engine) ClockRunning() bool { return e.clock.Running() }

// CompletedWork returns the count of work sessions completed since launch.
// The counter is transient and only drives long-break cadence; server-side
// streak endpoints are the source of truth for historical counts.
func (e *Engine) CompletedWork() int { return e.completedWork }

// Settings returns the engine's current copy of the remote settings
func (e *Engine) Settings() domain.Settings { return e.settings }

// ActiveSession returns a copy of the open session, or nil when idle
func (e *Engine) ActiveSession() *domain.Session {
	if e.active == nil {
		return nil
	}
	s := *e.active
	return &s
}

// SetTaskID links the next created session to a task. Idle-only.
func (e *Engine) SetTaskID(id string) error {
	if e.phase != domain.PhaseIdle {
		return domain.ErrNotIdle
	}
	e.taskID = id
	return nil
}

// SetNotes sets the free-text notes applied to the next created session
func (e *Engine) SetNotes(notes string) {
	e.notes = notes
}

// Start opens a new session of the selected type and starts the countdown.
// No-op outside the idle phase; at most one session is ever active.
func (e *Engine) Start() []Effect {
	if e.phase != domain.PhaseIdle {
		return nil
	}

	minutes := ResolveMinutes(e.settings, e.selected)
	e.active = &domain.Session{
		ID:              e.newID(),
		Type:            e.selected,
		DurationMinutes: minutes,
		TaskID:          e.taskID,
		Notes:           e.notes,
		StartedAt:       e.now(),
	}
	e.clock.Reset(minutes * 60)
	e.clock.Start()
	e.phase = domain.PhaseRunning
	e.startGen++ // a manual start supersedes any pending auto-start

	e.logger.Debug("session started",
		"id", e.active.ID, "type", e.selected, "minutes", minutes)

	return []Effect{
		DisarmEnforcement{},
		CreateSession{Session: *e.active},
	}
}

// Toggle is the single play/pause control: it starts from idle, pauses while
// running and resumes while paused.
func (e *Engine) Toggle() []Effect {
	switch e.phase {
	case domain.PhaseIdle:
		return e.Start()
	case domain.PhaseRunning:
		e.clock.Pause()
		e.phase = domain.PhasePaused
		e.logger.Debug("session paused", "remaining", e.clock.Remaining())
	case domain.PhasePaused:
		e.clock.Start()
		e.phase = domain.PhaseRunning
		e.logger.Debug("session resumed", "remaining", e.clock.Remaining())
	}
	return nil
}

// Interrupt halts the clock and opens distraction capture. Only meaningful
// while running; the session stays open and paused until the user submits or
// cancels the capture.
func (e *Engine) Interrupt() bool {
	if e.phase != domain.PhaseRunning {
		return false
	}
	e.clock.Pause()
	e.phase = domain.PhasePaused
	e.logger.Debug("session interrupted", "remaining", e.clock.Remaining())
	return true
}

// SubmitDistraction records a distraction against the active session. The
// session remains paused: resuming after an interruption is an explicit user
// action, never automatic.
func (e *Engine) SubmitDistraction(d domain.Distraction) ([]Effect, error) {
	if e.active == nil {
		return nil, domain.ErrNoActiveSession
	}
	d.At = e.now()
	e.active.Distractions = append(e.active.Distractions, d)

	e.logger.Debug("distraction recorded",
		"session", e.active.ID, "type", d.Type, "count", len(e.active.Distractions))

	return []Effect{InterruptSession{SessionID: e.active.ID, Distraction: d}}, nil
}

// CancelDistraction closes the capture without recording anything and
// resumes ticking from the exact remaining value at interruption.
func (e *Engine) CancelDistraction() {
	if e.phase != domain.PhasePaused {
		return
	}
	e.clock.Start()
	e.phase = domain.PhaseRunning
}

// Tick advances the countdown by one second and handles expiry. Stale ticks
// delivered after a pause, reset or expiry are no-ops inside the clock.
func (e *Engine) Tick() []Effect {
	if !e.clock.Tick() {
		return nil
	}
	if e.active == nil {
		return nil
	}

	if e.active.Type == domain.TypeWork {
		// Work expiry waits for the productivity rating before any
		// recorder call; completion happens in SubmitRating.
		e.phase = domain.PhaseAwaitingRating
		e.logger.Debug("work session expired, awaiting rating", "id", e.active.ID)
		return e.completionCues("Focus session complete", "Rate your session to continue")
	}

	// Breaks complete immediately with no rating fields.
	finished := e.active.Type
	effects := e.completionCues(finished.Label()+" over", "Back to work")
	effects = append(effects, CompleteSession{SessionID: e.active.ID})
	e.logger.Debug("break completed", "id", e.active.ID, "type", finished)
	return append(effects, e.advance(finished)...)
}

// SubmitRating attaches the captured scores to the expired work session,
// completes it and advances to the next session type.
func (e *Engine) SubmitRating(productivity, energy int) ([]Effect, error) {
	if e.phase != domain.PhaseAwaitingRating || e.active == nil {
		return nil, domain.ErrNoActiveSession
	}
	if productivity < 1 || productivity > 10 {
		return nil, fmt.Errorf("productivity score %d out of range 1-10", productivity)
	}
	if energy < 1 || energy > 5 {
		return nil, fmt.Errorf("energy level %d out of range 1-5", energy)
	}

	e.active.ProductivityScore = productivity
	e.active.EnergyLevel = energy

	effects := []Effect{
		UpdateSession{
			SessionID:         e.active.ID,
			ProductivityScore: productivity,
			EnergyLevel:       energy,
			Notes:             e.active.Notes,
		},
		CompleteSession{SessionID: e.active.ID},
	}

	e.logger.Debug("work session rated",
		"id", e.active.ID, "productivity", productivity, "energy", energy)

	return append(effects, e.advance(domain.TypeWork)...), nil
}

// Reset abandons the open session and restores the full duration for the
// current type. The remote record is marked abandoned best-effort rather
// than left in-progress server-side; complete and interrupt are never
// called for a reset session.
func (e *Engine) Reset() []Effect {
	effects := []Effect{DisarmEnforcement{}}
	e.startGen++ // cancel any pending auto-start

	if e.active != nil {
		e.logger.Debug("session reset", "id", e.active.ID, "phase", e.phase)
		effects = append(effects, AbandonSession{SessionID: e.active.ID})
		e.active = nil
	}
	e.phase = domain.PhaseIdle
	e.clock.Reset(ResolveSeconds(e.settings, e.selected))
	return effects
}

// SelectType changes the session type the clock counts toward. Only
// permitted while idle: the type of an open session never changes.
func (e *Engine) SelectType(t domain.SessionType) ([]Effect, error) {
	if e.phase != domain.PhaseIdle {
		return nil, domain.ErrNotIdle
	}
	e.selected = t
	e.clock.Reset(ResolveSeconds(e.settings, t))
	// A manual type change invalidates any pending enforcement prompt.
	return []Effect{DisarmEnforcement{}}, nil
}

// SkipBreak dismisses an enforced break without ever starting it, forcing
// the selected type back to work.
func (e *Engine) SkipBreak() []Effect {
	if e.phase != domain.PhaseIdle {
		return nil
	}
	e.selected = domain.TypeWork
	e.clock.Reset(ResolveSeconds(e.settings, domain.TypeWork))
	e.logger.Debug("break skipped")
	return []Effect{DisarmEnforcement{}}
}

// AutoStart is the deferred callback scheduled by an advance. Gen must match
// the generation issued with the effect; stale callbacks are no-ops.
func (e *Engine) AutoStart(gen int) []Effect {
	if gen != e.startGen || e.phase != domain.PhaseIdle {
		return nil
	}
	return e.Start()
}

// ApplySettings replaces the engine's settings copy. Saving is idle-only;
// the new durations re-seed the countdown immediately since nothing is
// running.
func (e *Engine) ApplySettings(s domain.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if e.phase != domain.PhaseIdle {
		return domain.ErrNotIdle
	}
	e.settings = s
	e.clock.Reset(ResolveSeconds(s, e.selected))
	return nil
}

// RefreshSettings updates the settings copy from a background fetch while
// leaving a running countdown untouched: new durations take effect with the
// next advance-computed session.
func (e *Engine) RefreshSettings(s domain.Settings) {
	e.settings = s
	if e.phase == domain.PhaseIdle {
		e.clock.Reset(ResolveSeconds(s, e.selected))
	}
}

// SessionCreated records the canonical ID assigned by the recorder, if it
// differs from the client-generated one.
func (e *Engine) SessionCreated(clientID, serverID string) {
	if e.active != nil && e.active.ID == clientID && serverID != "" {
		e.active.ID = serverID
	}
}

// advance runs after any session's terminal completion: it bumps the work
// counter, selects the next session type, reseeds the clock and either
// schedules an auto-start or arms break enforcement.
func (e *Engine) advance(finished domain.SessionType) []Effect {
	if finished == domain.TypeWork {
		e.completedWork++
	}

	next := domain.TypeWork
	if finished == domain.TypeWork {
		if e.completedWork%e.settings.LongBreakInterval == 0 {
			next = domain.TypeLongBreak
		} else {
			next = domain.TypeShortBreak
		}
	}

	e.selected = next
	e.active = nil
	e.phase = domain.PhaseIdle
	e.clock.Reset(ResolveSeconds(e.settings, next))

	e.logger.Debug("advanced",
		"finished", finished, "next", next, "completed_work", e.completedWork)

	effects := []Effect{RefreshStats{}}

	autoStart := (finished == domain.TypeWork && e.settings.AutoStartBreaks) ||
		(finished.IsBreak() && e.settings.AutoStartWork)
	if autoStart {
		e.startGen++
		return append(effects, ScheduleAutoStart{Gen: e.startGen, After: autoStartDelay})
	}

	if next.IsBreak() && e.settings.EnableBreakEnforcement {
		delay := time.Duration(e.settings.BreakEnforcementDelay) * time.Minute
		effects = append(effects, ArmEnforcement{Type: next, Delay: delay})
	}
	return effects
}

// completionCues returns the best-effort sound and desktop notification
// effects, honoring the settings toggles.
func (e *Engine) completionCues(title, body string) []Effect {
	var effects []Effect
	if e.settings.EnableSoundNotifications {
		effects = append(effects, PlayTone{})
	}
	if e.settings.EnableDesktopNotifications {
		effects = append(effects, Notify{Title: title, Body: body})
	}
	return effects
}

// Package enforce implements the break-enforcement monitor.
//
// When a work session completes into a pending break and enforcement is on,
// the monitor arms a grace timer; if the break is still not running when the
// timer fires, the UI surfaces a blocking prompt. The monitor never owns
// session state — it observes the engine and routes prompt actions back into
// it. Arming hands out a generation token; any transition that invalidates
// the pending prompt disarms the monitor, turning the already-scheduled
// callback into a no-op instead of a stale prompt.
package enforce

import (
	"log/slog"
	"time"

	"focusloop/internal/domain"
)

// StateSource is the read-only view of the engine the monitor observes
type StateSource interface {
	Phase() domain.Phase
	Selected() domain.SessionType
	Settings() domain.Settings
}

// Monitor tracks a single armed grace timer at a time
type Monitor struct {
	source StateSource
	logger *slog.Logger

	gen       int
	armed     bool
	armedType domain.SessionType
	delay     time.Duration
}

// New creates a disarmed monitor observing the given source
func New(source StateSource, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{source: source, logger: logger}
}

// Arm starts a grace period for the pending break and returns the token the
// scheduled callback must present. Re-arming supersedes any earlier token.
func (m *Monitor) Arm(t domain.SessionType, delay time.Duration) int {
	m.gen++
	m.armed = true
	m.armedType = t
	m.delay = delay
	m.logger.Debug("break enforcement armed", "type", t, "delay", delay)
	return m.gen
}

// Disarm cancels the pending grace timer. Called on every transition that
// invalidates the prompt: break started, type changed away, enforcement
// disabled, reset, teardown.
func (m *Monitor) Disarm() {
	if m.armed {
		m.logger.Debug("break enforcement disarmed")
	}
	m.armed = false
}

// Armed reports whether a grace timer is pending
func (m *Monitor) Armed() bool {
	return m.armed
}

// Delay returns the grace period of the current arming
func (m *Monitor) Delay() time.Duration {
	return m.delay
}

// Due decides whether the grace callback carrying the given token should
// surface the blocking prompt. Stale tokens return false, as does any state
// that no longer warrants enforcement: the break already running, the
// selected type changed, or enforcement switched off since arming. A due
// prompt consumes the arming.
func (m *Monitor) Due(gen int) bool {
	if !m.armed || gen != m.gen {
		return false
	}
	if !m.source.Settings().EnableBreakEnforcement {
		return false
	}
	if m.source.Phase() != domain.PhaseIdle {
		return false
	}
	if m.source.Selected() != m.armedType || !m.armedType.IsBreak() {
		return false
	}
	m.armed = false
	m.logger.Debug("break enforcement due", "type", m.armedType)
	return true
}

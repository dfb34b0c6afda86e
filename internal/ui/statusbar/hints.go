package statusbar

import "focusloop/internal/domain"

// GetHints returns the keybinding hints for the given phase
func GetHints(phase domain.Phase) string {
	switch phase {
	case domain.PhaseIdle:
		return "s: start  Tab: type  t: task  o: settings  d: stats  q: quit"
	case domain.PhaseRunning:
		return "Space: pause  i: interrupt  n: note  r: reset  q: quit"
	case domain.PhasePaused:
		return "Space: resume  r: reset  q: quit"
	case domain.PhaseAwaitingRating:
		// The rating overlay owns the keys here
		return ""
	default:
		return ""
	}
}

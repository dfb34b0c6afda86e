package engine

import "focusloop/internal/domain"

// ResolveMinutes maps the current settings and a session type to the planned
// duration in whole minutes. Pure and total: every SessionType from the fixed
// three-value enumeration has a branch, unknown values fall back to work.
func ResolveMinutes(s domain.Settings, t domain.SessionType) int {
	switch t {
	case domain.TypeShortBreak:
		return s.ShortBreak
	case domain.TypeLongBreak:
		return s.LongBreak
	default:
		return s.WorkDuration
	}
}

// ResolveSeconds returns the same value as ResolveMinutes in seconds, used to
// seed the countdown clock.
func ResolveSeconds(s domain.Settings, t domain.SessionType) int {
	return ResolveMinutes(s, t) * 60
}

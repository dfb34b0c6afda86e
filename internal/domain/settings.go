package domain

import "fmt"

// Settings is the remote-owned timer configuration. The latest fetched or
// saved copy is authoritative; edits saved mid-session only take effect with
// the next advance-computed session.
type Settings struct {
	WorkDuration               int  `json:"work_duration"`       // minutes
	ShortBreak                 int  `json:"short_break"`         // minutes
	LongBreak                  int  `json:"long_break"`          // minutes
	LongBreakInterval          int  `json:"long_break_interval"` // completed work sessions per long break
	DailyPomodoroGoal          int  `json:"daily_pomodoro_goal"`
	AutoStartBreaks            bool `json:"auto_start_breaks"`
	AutoStartWork              bool `json:"auto_start_work"`
	EnableBreakEnforcement     bool `json:"enable_break_enforcement"`
	BreakEnforcementDelay      int  `json:"break_enforcement_delay"` // minutes
	EnableSoundNotifications   bool `json:"enable_sound_notifications"`
	EnableDesktopNotifications bool `json:"enable_desktop_notifications"`
}

// DefaultSettings returns the classic pomodoro defaults used until the first
// fetch from the recorder succeeds.
func DefaultSettings() Settings {
	return Settings{
		WorkDuration:               25,
		ShortBreak:                 5,
		LongBreak:                  15,
		LongBreakInterval:          4,
		DailyPomodoroGoal:          8,
		AutoStartBreaks:            false,
		AutoStartWork:              false,
		EnableBreakEnforcement:     false,
		BreakEnforcementDelay:      5,
		EnableSoundNotifications:   true,
		EnableDesktopNotifications: true,
	}
}

// Validate rejects out-of-range values before any save reaches the recorder
func (s Settings) Validate() error {
	if s.WorkDuration < 1 {
		return fmt.Errorf("%w: work_duration must be a positive number of minutes", ErrInvalidSettings)
	}
	if s.ShortBreak < 1 {
		return fmt.Errorf("%w: short_break must be a positive number of minutes", ErrInvalidSettings)
	}
	if s.LongBreak < 1 {
		return fmt.Errorf("%w: long_break must be a positive number of minutes", ErrInvalidSettings)
	}
	if s.LongBreakInterval < 2 {
		return fmt.Errorf("%w: long_break_interval must be at least 2", ErrInvalidSettings)
	}
	if s.DailyPomodoroGoal < 1 {
		return fmt.Errorf("%w: daily_pomodoro_goal must be at least 1", ErrInvalidSettings)
	}
	if s.EnableBreakEnforcement && s.BreakEnforcementDelay < 1 {
		return fmt.Errorf("%w: break_enforcement_delay must be a positive number of minutes", ErrInvalidSettings)
	}
	return nil
}

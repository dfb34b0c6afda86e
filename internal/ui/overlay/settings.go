package overlay

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"focusloop/internal/domain"
)

// SettingsDialog edits the timer configuration. Numeric fields adjust with
// left/right or direct digit entry, toggles flip with space or enter. Saving
// validates the draft and hands it back to the app to push to the recorder.
type SettingsDialog struct {
	styles   *Styles
	draft    domain.Settings
	selected int
	buffer   string // pending digit entry for the selected numeric field
	errMsg   string
}

// SettingsSavedMsg carries a validated settings draft ready to save
type SettingsSavedMsg struct {
	Settings domain.Settings
}

type settingsField struct {
	label  string
	toggle bool
	get    func(*domain.Settings) int
	set    func(*domain.Settings, int)
	getB   func(*domain.Settings) bool
	setB   func(*domain.Settings, bool)
}

var settingsFields = []settingsField{
	{label: "Work duration (min)",
		get: func(s *domain.Settings) int { return s.WorkDuration },
		set: func(s *domain.Settings, v int) { s.WorkDuration = v }},
	{label: "Short break (min)",
		get: func(s *domain.Settings) int { return s.ShortBreak },
		set: func(s *domain.Settings, v int) { s.ShortBreak = v }},
	{label: "Long break (min)",
		get: func(s *domain.Settings) int { return s.LongBreak },
		set: func(s *domain.Settings, v int) { s.LongBreak = v }},
	{label: "Long break interval",
		get: func(s *domain.Settings) int { return s.LongBreakInterval },
		set: func(s *domain.Settings, v int) { s.LongBreakInterval = v }},
	{label: "Daily pomodoro goal",
		get: func(s *domain.Settings) int { return s.DailyPomodoroGoal },
		set: func(s *domain.Settings, v int) { s.DailyPomodoroGoal = v }},
	{label: "Auto-start breaks", toggle: true,
		getB: func(s *domain.Settings) bool { return s.AutoStartBreaks },
		setB: func(s *domain.Settings, v bool) { s.AutoStartBreaks = v }},
	{label: "Auto-start work", toggle: true,
		getB: func(s *domain.Settings) bool { return s.AutoStartWork },
		setB: func(s *domain.Settings, v bool) { s.AutoStartWork = v }},
	{label: "Enforce breaks", toggle: true,
		getB: func(s *domain.Settings) bool { return s.EnableBreakEnforcement },
		setB: func(s *domain.Settings, v bool) { s.EnableBreakEnforcement = v }},
	{label: "Enforcement delay (min)",
		get: func(s *domain.Settings) int { return s.BreakEnforcementDelay },
		set: func(s *domain.Settings, v int) { s.BreakEnforcementDelay = v }},
	{label: "Sound notifications", toggle: true,
		getB: func(s *domain.Settings) bool { return s.EnableSoundNotifications },
		setB: func(s *domain.Settings, v bool) { s.EnableSoundNotifications = v }},
	{label: "Desktop notifications", toggle: true,
		getB: func(s *domain.Settings) bool { return s.EnableDesktopNotifications },
		setB: func(s *domain.Settings, v bool) { s.EnableDesktopNotifications = v }},
}

// NewSettingsDialog creates a settings form seeded from the current settings
func NewSettingsDialog(current domain.Settings) *SettingsDialog {
	return &SettingsDialog{
		styles: New(),
		draft:  current,
	}
}

// Draft returns the current edit state
func (s *SettingsDialog) Draft() domain.Settings {
	return s.draft
}

// Init initializes the dialog
func (s *SettingsDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (s *SettingsDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	field := settingsFields[s.selected]

	switch key := keyMsg.String(); key {
	case "esc":
		return s, func() tea.Msg { return CloseOverlayMsg{} }

	case "up", "k":
		s.commitBuffer()
		if s.selected > 0 {
			s.selected--
		}
		return s, nil

	case "down", "j", "tab":
		s.commitBuffer()
		if s.selected < len(settingsFields)-1 {
			s.selected++
		} else if key == "tab" {
			s.selected = 0
		}
		return s, nil

	case "left", "h":
		s.buffer = ""
		if field.toggle {
			field.setB(&s.draft, !field.getB(&s.draft))
		} else if v := field.get(&s.draft); v > 1 {
			field.set(&s.draft, v-1)
		}
		return s, nil

	case "right", "l":
		s.buffer = ""
		if field.toggle {
			field.setB(&s.draft, !field.getB(&s.draft))
		} else {
			field.set(&s.draft, field.get(&s.draft)+1)
		}
		return s, nil

	case " ":
		if field.toggle {
			field.setB(&s.draft, !field.getB(&s.draft))
		}
		return s, nil

	case "backspace":
		if len(s.buffer) > 0 {
			s.buffer = s.buffer[:len(s.buffer)-1]
		}
		return s, nil

	case "s", "enter":
		if key == "enter" && field.toggle {
			field.setB(&s.draft, !field.getB(&s.draft))
			return s, nil
		}
		s.commitBuffer()
		if err := s.draft.Validate(); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		draft := s.draft
		return s, func() tea.Msg { return SettingsSavedMsg{Settings: draft} }

	default:
		if !field.toggle && len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			if len(s.buffer) < 3 {
				s.buffer += key
			}
			return s, nil
		}
	}

	return s, nil
}

func (s *SettingsDialog) commitBuffer() {
	if s.buffer == "" {
		return
	}
	if v, err := strconv.Atoi(s.buffer); err == nil && v > 0 {
		settingsFields[s.selected].set(&s.draft, v)
	}
	s.buffer = ""
}

// View renders the form
func (s *SettingsDialog) View() string {
	var b strings.Builder

	for i, field := range settingsFields {
		style := s.styles.MenuItem
		prefix := "  "
		if i == s.selected {
			style = s.styles.MenuItemActive
			prefix = "> "
		}

		var value string
		if field.toggle {
			if field.getB(&s.draft) {
				value = "on"
			} else {
				value = "off"
			}
		} else if i == s.selected && s.buffer != "" {
			value = s.buffer + "_"
		} else {
			value = strconv.Itoa(field.get(&s.draft))
		}

		b.WriteString(style.Render(fmt.Sprintf("%s%-26s %s", prefix, field.label, value)))
		b.WriteString("\n")
	}

	if s.errMsg != "" {
		b.WriteString("\n")
		b.WriteString(s.styles.Error.Render(s.errMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(s.styles.Footer.Render("↑ ↓: Field • ← → / Space: Adjust • s: Save • Esc: Cancel"))

	return b.String()
}

// Title returns the dialog title
func (s *SettingsDialog) Title() string {
	return "Settings"
}

// Size returns the dialog dimensions
func (s *SettingsDialog) Size() (width, height int) {
	height = len(settingsFields) + 5
	if s.errMsg != "" {
		height += 2
	}
	return 60, height
}

package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"focusloop/internal/domain"
)

func TestNewSettingsDialog_SeedsDraft(t *testing.T) {
	current := domain.DefaultSettings()
	current.WorkDuration = 50

	dialog := NewSettingsDialog(current)

	if dialog.Draft().WorkDuration != 50 {
		t.Errorf("expected draft seeded with work duration 50, got %d", dialog.Draft().WorkDuration)
	}
}

func TestSettingsDialog_AdjustNumericField(t *testing.T) {
	dialog := NewSettingsDialog(domain.DefaultSettings())

	dialog.Update(tea.KeyMsg{Type: tea.KeyRight})
	if got := dialog.Draft().WorkDuration; got != 26 {
		t.Errorf("expected work duration 26, got %d", got)
	}

	dialog.Update(tea.KeyMsg{Type: tea.KeyLeft})
	dialog.Update(tea.KeyMsg{Type: tea.KeyLeft})
	if got := dialog.Draft().WorkDuration; got != 24 {
		t.Errorf("expected work duration 24, got %d", got)
	}
}

func TestSettingsDialog_NumericFieldFloor(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.ShortBreak = 1
	dialog := NewSettingsDialog(settings)

	dialog.Update(tea.KeyMsg{Type: tea.KeyDown})
	dialog.Update(tea.KeyMsg{Type: tea.KeyLeft})

	if got := dialog.Draft().ShortBreak; got != 1 {
		t.Errorf("expected short break floored at 1, got %d", got)
	}
}

func TestSettingsDialog_DigitEntry(t *testing.T) {
	dialog := NewSettingsDialog(domain.DefaultSettings())

	dialog.Update(keyRunes("4"))
	dialog.Update(keyRunes("5"))
	// Buffer commits when moving off the field
	dialog.Update(tea.KeyMsg{Type: tea.KeyDown})

	if got := dialog.Draft().WorkDuration; got != 45 {
		t.Errorf("expected work duration 45, got %d", got)
	}
}

func TestSettingsDialog_ToggleField(t *testing.T) {
	dialog := NewSettingsDialog(domain.DefaultSettings())

	// Move to the auto-start breaks toggle (sixth field)
	for i := 0; i < 5; i++ {
		dialog.Update(tea.KeyMsg{Type: tea.KeyDown})
	}

	dialog.Update(tea.KeyMsg{Type: tea.KeySpace})
	if !dialog.Draft().AutoStartBreaks {
		t.Error("expected auto-start breaks toggled on")
	}

	dialog.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if dialog.Draft().AutoStartBreaks {
		t.Error("expected enter to toggle auto-start breaks back off")
	}
}

func TestSettingsDialog_SaveValidDraft(t *testing.T) {
	dialog := NewSettingsDialog(domain.DefaultSettings())

	_, cmd := dialog.Update(keyRunes("s"))
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}

	msg, ok := cmd().(SettingsSavedMsg)
	if !ok {
		t.Fatalf("expected SettingsSavedMsg, got %T", cmd())
	}
	if msg.Settings != dialog.Draft() {
		t.Error("expected saved settings to match the draft")
	}
}

func TestSettingsDialog_SaveRejectsInvalidDraft(t *testing.T) {
	settings := domain.DefaultSettings()
	settings.LongBreakInterval = 1
	dialog := NewSettingsDialog(settings)

	_, cmd := dialog.Update(keyRunes("s"))
	if cmd != nil {
		t.Fatal("expected invalid draft to stay in the dialog")
	}
	if dialog.errMsg == "" {
		t.Error("expected validation error to be shown")
	}
}

func TestSettingsDialog_EscCloses(t *testing.T) {
	dialog := NewSettingsDialog(domain.DefaultSettings())

	_, cmd := dialog.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	if _, ok := cmd().(CloseOverlayMsg); !ok {
		t.Fatalf("expected CloseOverlayMsg, got %T", cmd())
	}
}

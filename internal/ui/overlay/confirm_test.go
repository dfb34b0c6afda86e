package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestNewConfirmDialog(t *testing.T) {
	title := "Reset Timer"
	message := "Abandon the current session?"

	dialog := NewConfirmDialog(title, message)

	if dialog.title != title {
		t.Errorf("expected title %q, got %q", title, dialog.title)
	}
	if dialog.message != message {
		t.Errorf("expected message %q, got %q", message, dialog.message)
	}
	if dialog.selected {
		t.Error("expected default selection to be No (false), got Yes (true)")
	}
	if dialog.styles == nil {
		t.Error("expected styles to be initialized")
	}
}

func TestConfirmDialog_Title(t *testing.T) {
	expected := "Reset Timer"
	dialog := NewConfirmDialog(expected, "Message")

	if got := dialog.Title(); got != expected {
		t.Errorf("expected title %q, got %q", expected, got)
	}
}

func TestConfirmDialog_Size(t *testing.T) {
	dialog := NewConfirmDialog("Title", "Single line message")

	width, height := dialog.Size()
	if width != 60 {
		t.Errorf("expected width 60, got %d", width)
	}
	if height < 6 {
		t.Errorf("expected height >= 6, got %d", height)
	}
}

func TestConfirmDialog_YesKey(t *testing.T) {
	for _, key := range []string{"y", "Y"} {
		t.Run(key, func(t *testing.T) {
			dialog := NewConfirmDialog("Title", "Message")

			_, cmd := dialog.Update(keyRunes(key))
			if cmd == nil {
				t.Fatal("expected command, got nil")
			}

			result, ok := cmd().(ConfirmResultMsg)
			if !ok {
				t.Fatalf("expected ConfirmResultMsg, got %T", cmd())
			}
			if !result.Confirmed {
				t.Error("expected confirmed result")
			}
		})
	}
}

func TestConfirmDialog_NoKeys(t *testing.T) {
	keys := []tea.KeyMsg{
		keyRunes("n"),
		keyRunes("N"),
		{Type: tea.KeyEsc},
	}

	for _, key := range keys {
		dialog := NewConfirmDialog("Title", "Message")

		_, cmd := dialog.Update(key)
		if cmd == nil {
			t.Fatalf("expected command for key %s, got nil", key.String())
		}

		result, ok := cmd().(ConfirmResultMsg)
		if !ok {
			t.Fatalf("expected ConfirmResultMsg, got %T", cmd())
		}
		if result.Confirmed {
			t.Errorf("expected declined result for key %s", key.String())
		}
	}
}

func TestConfirmDialog_EnterConfirmsSelection(t *testing.T) {
	dialog := NewConfirmDialog("Title", "Message")

	// Move selection to Yes, then confirm with enter
	dialog.Update(tea.KeyMsg{Type: tea.KeyRight})
	_, cmd := dialog.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	result := cmd().(ConfirmResultMsg)
	if !result.Confirmed {
		t.Error("expected confirmed result after moving selection to Yes")
	}
}

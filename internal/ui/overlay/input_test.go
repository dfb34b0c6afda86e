package overlay

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestInputDialog_SubmitTagsKey(t *testing.T) {
	dialog := NewInputDialog("Link Task", "task", "task id", "")

	for _, r := range "TASK-7" {
		dialog.Update(keyRunes(string(r)))
	}

	_, cmd := dialog.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}

	msg, ok := cmd().(InputSubmittedMsg)
	if !ok {
		t.Fatalf("expected InputSubmittedMsg, got %T", cmd())
	}
	if msg.Key != "task" {
		t.Errorf("expected key %q, got %q", "task", msg.Key)
	}
	if msg.Value != "TASK-7" {
		t.Errorf("expected value %q, got %q", "TASK-7", msg.Value)
	}
}

func TestInputDialog_InitialValue(t *testing.T) {
	dialog := NewInputDialog("Session Notes", "notes", "", "existing note")

	_, cmd := dialog.Update(tea.KeyMsg{Type: tea.KeyEnter})
	msg := cmd().(InputSubmittedMsg)
	if msg.Value != "existing note" {
		t.Errorf("expected initial value passed through, got %q", msg.Value)
	}
}

func TestInputDialog_EscCloses(t *testing.T) {
	dialog := NewInputDialog("Link Task", "task", "", "")

	_, cmd := dialog.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if cmd == nil {
		t.Fatal("expected command, got nil")
	}
	if _, ok := cmd().(CloseOverlayMsg); !ok {
		t.Fatalf("expected CloseOverlayMsg, got %T", cmd())
	}
}

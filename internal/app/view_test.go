package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusloop/internal/domain"
)

func TestView_ZeroSizeShowsLoading(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m.width, m.height = 0, 0

	assert.Equal(t, "Loading...", m.View())
}

func TestView_IdleFrame(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 40})

	view := m.View()

	assert.Contains(t, view, "25:00")
	assert.Contains(t, view, "idle")
	assert.Contains(t, view, "Focus")
}

func TestView_RunningFrameCountsDown(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "s")
	m, _ = update(t, m, tickMsg{})

	view := m.View()

	assert.Contains(t, view, "24:59")
	assert.Contains(t, view, "running")
}

func TestView_OverlayRendered(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "o")

	view := m.View()

	assert.Contains(t, view, "Settings")
	assert.Contains(t, view, "Work duration")
}

func TestView_OfflineIndicator(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m.isOnline = false

	assert.Contains(t, m.View(), "offline")
}

func TestView_ToastRendered(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "s")
	m, _ = pressKey(t, m, "tab") // rejected while running, toasts

	require.Equal(t, domain.TypeWork, m.engine.Selected())
	assert.Contains(t, m.View(), "Stop the timer")
}

// Package app contains the main application model and TEA implementation.
package app

import (
	"context"
	"log/slog"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"focusloop/internal/config"
	"focusloop/internal/core/enforce"
	"focusloop/internal/core/engine"
	"focusloop/internal/domain"
	"focusloop/internal/services/health"
	"focusloop/internal/services/notify"
	"focusloop/internal/services/recorder"
	"focusloop/internal/services/spool"
	"focusloop/internal/types"
	"focusloop/internal/ui/overlay"
	"focusloop/internal/ui/statusbar"
	"focusloop/internal/ui/styles"
	"focusloop/internal/ui/timerview"
	"focusloop/internal/ui/toast"
)

// Re-export Toast type and constants for convenience
type Toast = types.Toast
type ToastLevel = types.ToastLevel

const (
	ToastInfo    = types.ToastInfo
	ToastSuccess = types.ToastSuccess
	ToastWarning = types.ToastWarning
	ToastError   = types.ToastError
)

const (
	healthInterval = 30 * time.Second
	requestTimeout = 5 * time.Second
)

// Recorder is the slice of the API client the app depends on. Tests swap in
// a fake; production wiring passes *recorder.Client.
type Recorder interface {
	FetchSettings(ctx context.Context) (domain.Settings, error)
	SaveSettings(ctx context.Context, s domain.Settings) (domain.Settings, error)
	CreateSession(ctx context.Context, key string, s domain.Session) (string, error)
	UpdateSession(ctx context.Context, key, id string, productivity, energy int, notes string) error
	CompleteSession(ctx context.Context, key, id string) error
	InterruptSession(ctx context.Context, key, id string, d domain.Distraction) error
	AbandonSession(ctx context.Context, key, id string) error
	FetchDailyStats(ctx context.Context) (domain.DailyStats, error)
	FetchStreak(ctx context.Context) (domain.Streak, error)
}

// Model is the main application state
type Model struct {
	// Core state machine
	engine  *engine.Engine
	monitor *enforce.Monitor

	// Collaborators
	recorder Recorder
	notifier *notify.Notifier
	checker  *health.StatusChecker
	spool    *spool.Spool

	// Server-computed display data
	stats  domain.DailyStats
	streak domain.Streak

	// UI state
	overlayStack *overlay.Stack
	timerView    *timerview.TimerView
	toasts       []Toast
	isOnline     bool

	// Terminal size
	width  int
	height int

	// Styles
	styles *styles.Styles

	// Configuration
	config *config.Config

	// Logger
	logger *slog.Logger
}

// New creates a new application model with the given config
func New(cfg *config.Config) Model {
	logger := slog.Default()

	eng := engine.New(domain.DefaultSettings(), logger)

	rec := recorder.NewClient(cfg.API.BaseURL, cfg.API.Token, logger)
	notifier := notify.New(&notify.ExecRunner{}, logger)
	checker := health.NewStatusChecker(cfg.API.BaseURL)

	sp, err := spool.Open(cfg.Spool.Path, logger)
	if err != nil {
		logger.Warn("spool unavailable, failed writes will be dropped", "error", err)
		sp = nil
	}

	return Model{
		engine:       eng,
		monitor:      enforce.New(eng, logger),
		recorder:     rec,
		notifier:     notifier,
		checker:      checker,
		spool:        sp,
		overlayStack: overlay.NewStack(),
		timerView:    timerview.New(0),
		toasts:       []Toast{},
		isOnline:     true, // Optimistically assume online
		styles:       styles.New(),
		config:       cfg,
		logger:       logger,
	}
}

// Init returns the initial command for the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.fetchSettingsCmd(),
		m.fetchStatsCmd(),
		m.checker.CheckCmd(),
		m.replaySpoolCmd(),
		tickEvery(time.Second),
	)
}

// View renders the full frame: timer pane, status bar, then any overlay and
// toasts stacked on top.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	m.timerView.SetWidth(m.width)
	mainView := m.timerView.View(m.timerState())

	sb := statusbar.New(m.engine.Phase(), m.isOnline, m.width, m.styles)
	view := lipgloss.JoinVertical(lipgloss.Left, mainView, sb.Render())

	if !m.overlayStack.IsEmpty() {
		view = lipgloss.JoinVertical(lipgloss.Left, view, m.renderOverlay())
	}

	if len(m.toasts) > 0 {
		renderer := toast.New(m.styles)
		if toastView := renderer.Render(m.toasts, m.width); toastView != "" {
			view = lipgloss.JoinVertical(lipgloss.Left, view, toastView)
		}
	}

	return view
}

func (m Model) renderOverlay() string {
	current := m.overlayStack.Current()

	overlayView := current.View()
	if title := current.Title(); title != "" {
		titleView := m.overlayStyles().Title.Render(title)
		overlayView = lipgloss.JoinVertical(lipgloss.Left, titleView, overlayView)
	}

	width, height := current.Size()
	overlayView = m.overlayStyles().Overlay.
		Width(width).
		Height(height).
		Render(overlayView)

	return lipgloss.Place(m.width, lipgloss.Height(overlayView), lipgloss.Center, lipgloss.Center, overlayView)
}

func (m Model) overlayStyles() *overlay.Styles {
	return overlay.New()
}

func (m Model) timerState() timerview.State {
	state := timerview.State{
		Phase:          m.engine.Phase(),
		Selected:       m.engine.Selected(),
		Remaining:      m.engine.Remaining(),
		Progress:       m.engine.Progress(),
		CompletedToday: m.stats.TodayCount,
		DailyGoal:      m.engine.Settings().DailyPomodoroGoal,
		StreakDays:     m.streak.CurrentStreak,
	}
	if active := m.engine.ActiveSession(); active != nil {
		state.TaskID = active.TaskID
		state.Notes = active.Notes
		state.Distractions = len(active.Distractions)
	}
	return state
}

// addToast appends a toast to the display stack
func (m *Model) addToast(level ToastLevel, message string, lifetime time.Duration) {
	m.toasts = append(m.toasts, types.NewToast(level, message, lifetime))
}

// expireToasts removes expired toasts from the list
func (m *Model) expireToasts() {
	now := time.Now()
	kept := m.toasts[:0]
	for _, t := range m.toasts {
		if t.Expires.After(now) {
			kept = append(kept, t)
		}
	}
	m.toasts = kept
}

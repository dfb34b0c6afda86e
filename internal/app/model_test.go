package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"focusloop/internal/core/enforce"
	"focusloop/internal/core/engine"
	"focusloop/internal/domain"
	"focusloop/internal/services/health"
	"focusloop/internal/services/spool"
	"focusloop/internal/types"
	"focusloop/internal/ui/overlay"
	"focusloop/internal/ui/styles"
	"focusloop/internal/ui/timerview"
)

// fakeRecorder records calls and returns canned results
type fakeRecorder struct {
	createCalls    []domain.Session
	updateCalls    []string
	completeCalls  []string
	interruptCalls []string
	abandonCalls   []string
	keys           []string

	serverID string
	err      error
}

func (f *fakeRecorder) FetchSettings(context.Context) (domain.Settings, error) {
	return domain.DefaultSettings(), f.err
}

func (f *fakeRecorder) SaveSettings(_ context.Context, s domain.Settings) (domain.Settings, error) {
	return s, f.err
}

func (f *fakeRecorder) CreateSession(_ context.Context, key string, s domain.Session) (string, error) {
	f.createCalls = append(f.createCalls, s)
	f.keys = append(f.keys, key)
	if f.err != nil {
		return "", f.err
	}
	if f.serverID != "" {
		return f.serverID, nil
	}
	return s.ID, nil
}

func (f *fakeRecorder) UpdateSession(_ context.Context, key, id string, _, _ int, _ string) error {
	f.updateCalls = append(f.updateCalls, id)
	f.keys = append(f.keys, key)
	return f.err
}

func (f *fakeRecorder) CompleteSession(_ context.Context, key, id string) error {
	f.completeCalls = append(f.completeCalls, id)
	f.keys = append(f.keys, key)
	return f.err
}

func (f *fakeRecorder) InterruptSession(_ context.Context, key, id string, _ domain.Distraction) error {
	f.interruptCalls = append(f.interruptCalls, id)
	f.keys = append(f.keys, key)
	return f.err
}

func (f *fakeRecorder) AbandonSession(_ context.Context, key, id string) error {
	f.abandonCalls = append(f.abandonCalls, id)
	f.keys = append(f.keys, key)
	return f.err
}

func (f *fakeRecorder) FetchDailyStats(context.Context) (domain.DailyStats, error) {
	return domain.DailyStats{TodayCount: 3, TodayMinutes: 75}, f.err
}

func (f *fakeRecorder) FetchStreak(context.Context) (domain.Streak, error) {
	return domain.Streak{CurrentStreak: 2}, f.err
}

func newTestModel(rec Recorder) Model {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	eng := engine.New(domain.DefaultSettings(), logger)

	return Model{
		engine:       eng,
		monitor:      enforce.New(eng, logger),
		recorder:     rec,
		overlayStack: overlay.NewStack(),
		timerView:    timerview.New(0),
		isOnline:     true,
		styles:       styles.New(),
		logger:       logger,
		width:        100,
		height:       40,
	}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok, "Update should return app.Model")
	return model, cmd
}

func pressKey(t *testing.T, m Model, key string) (Model, tea.Cmd) {
	t.Helper()
	var msg tea.KeyMsg
	switch key {
	case "space":
		msg = tea.KeyMsg{Type: tea.KeySpace}
	case "tab":
		msg = tea.KeyMsg{Type: tea.KeyTab}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
	}
	return update(t, m, msg)
}

// runToRatingPrompt starts a work session and ticks it to expiry
func runToRatingPrompt(t *testing.T, m Model) Model {
	t.Helper()
	m, _ = pressKey(t, m, "s")
	seconds := m.engine.Remaining()
	for i := 0; i < seconds; i++ {
		m, _ = update(t, m, tickMsg(time.Now()))
	}
	require.Equal(t, domain.PhaseAwaitingRating, m.engine.Phase())
	return m
}

func TestStartKeyOpensWorkSession(t *testing.T) {
	rec := &fakeRecorder{}
	m := newTestModel(rec)

	m, cmd := pressKey(t, m, "s")

	assert.Equal(t, domain.PhaseRunning, m.engine.Phase())
	require.NotNil(t, m.engine.ActiveSession())
	assert.Equal(t, domain.TypeWork, m.engine.ActiveSession().Type)
	assert.NotNil(t, cmd, "starting should dispatch the create command")
}

func TestSessionCreatedCanonicalizesID(t *testing.T) {
	rec := &fakeRecorder{serverID: "srv-99"}
	m := newTestModel(rec)
	m, _ = pressKey(t, m, "s")
	clientID := m.engine.ActiveSession().ID

	msg := m.createSessionCmd(*m.engine.ActiveSession())()
	created, ok := msg.(sessionCreatedMsg)
	require.True(t, ok)
	assert.Equal(t, clientID, created.clientID)
	assert.Equal(t, "srv-99", created.serverID)

	m, _ = update(t, m, created)
	assert.Equal(t, "srv-99", m.engine.ActiveSession().ID)
}

func TestSpooledRetryReusesIdempotencyKey(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("recorder unreachable")}
	m := newTestModel(rec)

	sp, err := spool.Open(filepath.Join(t.TempDir(), "spool.db"),
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { sp.Close() })
	m.spool = sp

	m, _ = pressKey(t, m, "s")
	msg := m.createSessionCmd(*m.engine.ActiveSession())()
	created, ok := msg.(sessionCreatedMsg)
	require.True(t, ok)
	require.Error(t, created.err)

	// Back online: the replayed create must present the same key the
	// failed attempt carried, never a fresh one.
	rec.err = nil
	m.replaySpoolCmd()()

	require.Len(t, rec.keys, 2)
	assert.NotEmpty(t, rec.keys[0])
	assert.Equal(t, rec.keys[0], rec.keys[1])
}

func TestWorkExpiryOpensRatingPrompt(t *testing.T) {
	m := runToRatingPrompt(t, newTestModel(&fakeRecorder{}))

	require.False(t, m.overlayStack.IsEmpty())
	assert.Equal(t, "Rate Session", m.overlayStack.Current().Title())
}

func TestRatingSubmitAdvancesToBreak(t *testing.T) {
	m := runToRatingPrompt(t, newTestModel(&fakeRecorder{}))

	m, cmd := update(t, m, overlay.RatingSubmittedMsg{Productivity: 7, Energy: 4})

	assert.True(t, m.overlayStack.IsEmpty())
	assert.Equal(t, domain.PhaseIdle, m.engine.Phase())
	assert.Equal(t, domain.TypeShortBreak, m.engine.Selected())
	assert.Equal(t, 5*60, m.engine.Remaining())
	assert.NotNil(t, cmd, "rating should dispatch recorder commands")
}

func TestRatingOutOfRangeStaysOpen(t *testing.T) {
	m := runToRatingPrompt(t, newTestModel(&fakeRecorder{}))

	m, _ = update(t, m, overlay.RatingSubmittedMsg{Productivity: 11, Energy: 3})

	assert.False(t, m.overlayStack.IsEmpty(), "invalid rating should keep the prompt open")
	assert.Equal(t, domain.PhaseAwaitingRating, m.engine.Phase())
}

func TestInterruptOpensDistractionCapture(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "s")

	m, _ = pressKey(t, m, "i")

	assert.Equal(t, domain.PhasePaused, m.engine.Phase())
	require.False(t, m.overlayStack.IsEmpty())
	assert.Equal(t, "Log Distraction", m.overlayStack.Current().Title())
}

func TestDistractionCancelResumesExactly(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "s")
	m, _ = update(t, m, tickMsg(time.Now()))
	m, _ = update(t, m, tickMsg(time.Now()))
	m, _ = pressKey(t, m, "i")
	remaining := m.engine.Remaining()

	m, _ = update(t, m, overlay.DistractionCancelledMsg{})

	assert.Equal(t, domain.PhaseRunning, m.engine.Phase())
	assert.Equal(t, remaining, m.engine.Remaining())
	assert.Empty(t, m.engine.ActiveSession().Distractions)
}

func TestDistractionSubmitStaysPaused(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "s")
	m, _ = pressKey(t, m, "i")

	m, cmd := update(t, m, overlay.DistractionSubmittedMsg{
		Type:        domain.DistractionConversation,
		Description: "phone call",
	})

	assert.Equal(t, domain.PhasePaused, m.engine.Phase())
	assert.Len(t, m.engine.ActiveSession().Distractions, 1)
	assert.NotNil(t, cmd, "submit should dispatch the interrupt write")
}

func TestResetFlow(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "s")
	m, _ = update(t, m, tickMsg(time.Now()))

	m, _ = pressKey(t, m, "r")
	require.False(t, m.overlayStack.IsEmpty())

	m, cmd := update(t, m, overlay.ConfirmResultMsg{Confirmed: true})

	assert.Equal(t, domain.PhaseIdle, m.engine.Phase())
	assert.Equal(t, domain.TypeWork, m.engine.Selected())
	assert.Equal(t, 25*60, m.engine.Remaining())
	assert.Nil(t, m.engine.ActiveSession())
	assert.NotNil(t, cmd, "reset should dispatch the abandon write")
}

func TestResetDeclinedKeepsSession(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "s")
	m, _ = pressKey(t, m, "r")

	m, _ = update(t, m, overlay.ConfirmResultMsg{Confirmed: false})

	assert.NotNil(t, m.engine.ActiveSession())
	assert.True(t, m.overlayStack.IsEmpty())
}

func TestTypeSwitchRejectedWhileRunning(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "s")

	m, _ = pressKey(t, m, "tab")

	assert.Equal(t, domain.TypeWork, m.engine.Selected())
	assert.NotEmpty(t, m.toasts, "rejected switch should surface a toast")
}

func TestTypeSwitchCyclesWhileIdle(t *testing.T) {
	m := newTestModel(&fakeRecorder{})

	m, _ = pressKey(t, m, "tab")
	assert.Equal(t, domain.TypeShortBreak, m.engine.Selected())
	assert.Equal(t, 5*60, m.engine.Remaining())

	m, _ = pressKey(t, m, "tab")
	assert.Equal(t, domain.TypeLongBreak, m.engine.Selected())

	m, _ = pressKey(t, m, "tab")
	assert.Equal(t, domain.TypeWork, m.engine.Selected())
}

func TestEnforcementPromptFlow(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	settings := domain.DefaultSettings()
	settings.EnableBreakEnforcement = true
	m.engine.RefreshSettings(settings)

	// A due break is pending and the grace period has elapsed
	m, _ = pressKey(t, m, "tab") // select short break
	gen := m.monitor.Arm(domain.TypeShortBreak, 5*time.Minute)

	m, _ = update(t, m, enforceDueMsg{gen: gen})

	require.False(t, m.overlayStack.IsEmpty())
	assert.Equal(t, "Break Time", m.overlayStack.Current().Title())

	// Skipping forces the selection back to work
	m, _ = update(t, m, overlay.EnforceChoiceMsg{StartBreak: false})
	assert.Equal(t, domain.TypeWork, m.engine.Selected())
	assert.Nil(t, m.engine.ActiveSession(), "skip must never create a session")
}

func TestEnforcementStaleTokenIgnored(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	settings := domain.DefaultSettings()
	settings.EnableBreakEnforcement = true
	m.engine.RefreshSettings(settings)
	m, _ = pressKey(t, m, "tab")
	gen := m.monitor.Arm(domain.TypeShortBreak, 5*time.Minute)
	m.monitor.Disarm()

	m, _ = update(t, m, enforceDueMsg{gen: gen})

	assert.True(t, m.overlayStack.IsEmpty(), "stale enforcement token must not prompt")
}

func TestSettingsSavedWhileIdle(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "o")
	require.False(t, m.overlayStack.IsEmpty())

	settings := domain.DefaultSettings()
	settings.WorkDuration = 50
	m, cmd := update(t, m, overlay.SettingsSavedMsg{Settings: settings})

	assert.True(t, m.overlayStack.IsEmpty())
	assert.Equal(t, 50, m.engine.Settings().WorkDuration)
	assert.Equal(t, 50*60, m.engine.Remaining())
	assert.NotNil(t, cmd, "save should dispatch the settings write")
}

func TestSettingsSaveRejectedWhileRunning(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "s")
	m.overlayStack.Push(overlay.NewSettingsDialog(m.engine.Settings()))

	settings := domain.DefaultSettings()
	settings.WorkDuration = 50
	m, _ = update(t, m, overlay.SettingsSavedMsg{Settings: settings})

	assert.False(t, m.overlayStack.IsEmpty(), "dialog should stay open")
	assert.Equal(t, 25, m.engine.Settings().WorkDuration)
	assert.NotEmpty(t, m.toasts)
}

func TestHealthTransitionToasts(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m.checker = nil // not used by the handler itself

	m, _ = update(t, m, health.StatusMsg{Online: false})
	assert.False(t, m.isOnline)

	m, _ = update(t, m, health.StatusMsg{Online: true})
	assert.True(t, m.isOnline)
	assert.NotEmpty(t, m.toasts, "coming back online should toast")
}

func TestStatsMsgUpdatesDisplayData(t *testing.T) {
	m := newTestModel(&fakeRecorder{})

	m, _ = update(t, m, statsMsg{
		stats:  domain.DailyStats{TodayCount: 6, TodayMinutes: 150},
		streak: domain.Streak{CurrentStreak: 4},
	})

	assert.Equal(t, 6, m.stats.TodayCount)
	assert.Equal(t, 4, m.streak.CurrentStreak)
}

func TestToastExpiry(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m.toasts = []Toast{
		{Level: types.ToastInfo, Message: "old", Expires: time.Now().Add(-time.Second)},
		{Level: types.ToastInfo, Message: "fresh", Expires: time.Now().Add(time.Minute)},
	}

	m.expireToasts()

	require.Len(t, m.toasts, 1)
	assert.Equal(t, "fresh", m.toasts[0].Message)
}

func TestKeysRoutedToOverlayWhenOpen(t *testing.T) {
	m := newTestModel(&fakeRecorder{})
	m, _ = pressKey(t, m, "o")

	// "q" must not quit while the settings dialog is open
	m, cmd := pressKey(t, m, "q")

	assert.False(t, m.overlayStack.IsEmpty())
	if cmd != nil {
		assert.NotEqual(t, tea.Quit(), cmd())
	}
}

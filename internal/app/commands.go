package app

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"focusloop/internal/core/engine"
	"focusloop/internal/domain"
	"focusloop/internal/services/health"
	"focusloop/internal/services/spool"
)

// Message types for async operations

type tickMsg time.Time

type autoStartMsg struct {
	gen int
}

type enforceDueMsg struct {
	gen int
}

type settingsFetchedMsg struct {
	settings domain.Settings
	err      error
}

type settingsSavedMsg struct {
	settings domain.Settings
	err      error
}

type sessionCreatedMsg struct {
	clientID string
	serverID string
	err      error
}

type recorderResultMsg struct {
	op        string
	sessionID string
	spooled   bool
	err       error
}

type statsMsg struct {
	stats  domain.DailyStats
	streak domain.Streak
	err    error
}

type spoolReplayedMsg struct {
	replayed  int
	remaining int
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func healthCheckLater(checker *health.StatusChecker, after time.Duration) tea.Cmd {
	return tea.Tick(after, func(time.Time) tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return health.StatusMsg{Online: checker.Check(ctx)}
	})
}

// execEffects translates engine effects into commands and monitor calls.
// Enforcement arming mutates the monitor synchronously; everything else is
// dispatched as an async command.
func (m *Model) execEffects(effects []engine.Effect) tea.Cmd {
	if len(effects) == 0 {
		return nil
	}

	var cmds []tea.Cmd
	for _, effect := range effects {
		switch e := effect.(type) {
		case engine.CreateSession:
			cmds = append(cmds, m.createSessionCmd(e.Session))

		case engine.UpdateSession:
			cmds = append(cmds, m.updateSessionCmd(e))

		case engine.CompleteSession:
			cmds = append(cmds, m.completeSessionCmd(e.SessionID))

		case engine.InterruptSession:
			cmds = append(cmds, m.interruptSessionCmd(e.SessionID, e.Distraction))

		case engine.AbandonSession:
			cmds = append(cmds, m.abandonSessionCmd(e.SessionID))

		case engine.PlayTone:
			notifier := m.notifier
			cmds = append(cmds, func() tea.Msg {
				notifier.PlayTone()
				return nil
			})

		case engine.Notify:
			cmds = append(cmds, m.desktopNotifyCmd(e.Title, e.Body))

		case engine.ScheduleAutoStart:
			gen := e.Gen
			cmds = append(cmds, tea.Tick(e.After, func(time.Time) tea.Msg {
				return autoStartMsg{gen: gen}
			}))

		case engine.ArmEnforcement:
			gen := m.monitor.Arm(e.Type, e.Delay)
			cmds = append(cmds, tea.Tick(e.Delay, func(time.Time) tea.Msg {
				return enforceDueMsg{gen: gen}
			}))

		case engine.DisarmEnforcement:
			m.monitor.Disarm()

		case engine.RefreshStats:
			cmds = append(cmds, m.fetchStatsCmd(), m.replaySpoolCmd())
		}
	}

	return tea.Batch(cmds...)
}

func (m Model) fetchSettingsCmd() tea.Cmd {
	rec := m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		settings, err := rec.FetchSettings(ctx)
		return settingsFetchedMsg{settings: settings, err: err}
	}
}

func (m Model) saveSettingsCmd(s domain.Settings) tea.Cmd {
	rec := m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		saved, err := rec.SaveSettings(ctx, s)
		if err != nil {
			return settingsSavedMsg{settings: s, err: err}
		}
		return settingsSavedMsg{settings: saved}
	}
}

// Each write command mints its idempotency key once, when the logical write
// is born. The failed attempt and every spool replay of it send the same key,
// so a write whose response was lost is not duplicated server-side.

func (m Model) createSessionCmd(s domain.Session) tea.Cmd {
	rec, sp := m.recorder, m.spool
	key := uuid.NewString()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		serverID, err := rec.CreateSession(ctx, key, s)
		if err != nil {
			enqueue(sp, spool.OpCreate, s.ID, key, s)
			return sessionCreatedMsg{clientID: s.ID, err: err}
		}
		return sessionCreatedMsg{clientID: s.ID, serverID: serverID}
	}
}

func (m Model) updateSessionCmd(e engine.UpdateSession) tea.Cmd {
	rec, sp := m.recorder, m.spool
	key := uuid.NewString()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := rec.UpdateSession(ctx, key, e.SessionID, e.ProductivityScore, e.EnergyLevel, e.Notes)
		spooled := false
		if err != nil {
			spooled = enqueue(sp, spool.OpUpdate, e.SessionID, key, spool.RatingPayload{
				ProductivityScore: e.ProductivityScore,
				EnergyLevel:       e.EnergyLevel,
				Notes:             e.Notes,
			})
		}
		return recorderResultMsg{op: spool.OpUpdate, sessionID: e.SessionID, spooled: spooled, err: err}
	}
}

func (m Model) completeSessionCmd(id string) tea.Cmd {
	rec, sp := m.recorder, m.spool
	key := uuid.NewString()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := rec.CompleteSession(ctx, key, id)
		spooled := false
		if err != nil {
			spooled = enqueue(sp, spool.OpComplete, id, key, nil)
		}
		return recorderResultMsg{op: spool.OpComplete, sessionID: id, spooled: spooled, err: err}
	}
}

func (m Model) interruptSessionCmd(id string, d domain.Distraction) tea.Cmd {
	rec, sp := m.recorder, m.spool
	key := uuid.NewString()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := rec.InterruptSession(ctx, key, id, d)
		spooled := false
		if err != nil {
			spooled = enqueue(sp, spool.OpInterrupt, id, key, d)
		}
		return recorderResultMsg{op: spool.OpInterrupt, sessionID: id, spooled: spooled, err: err}
	}
}

// abandonSessionCmd is strictly best-effort: nothing is spooled, the session
// is already discarded locally whatever the outcome.
func (m Model) abandonSessionCmd(id string) tea.Cmd {
	rec := m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		err := rec.AbandonSession(ctx, uuid.NewString(), id)
		return recorderResultMsg{op: spool.OpAbandon, sessionID: id, err: err}
	}
}

func (m Model) desktopNotifyCmd(title, body string) tea.Cmd {
	notifier := m.notifier
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		notifier.ShowDesktop(ctx, title, body)
		return nil
	}
}

func (m Model) fetchStatsCmd() tea.Cmd {
	rec := m.recorder
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()

		stats, err := rec.FetchDailyStats(ctx)
		if err != nil {
			return statsMsg{err: err}
		}
		streak, err := rec.FetchStreak(ctx)
		if err != nil {
			return statsMsg{err: err}
		}
		return statsMsg{stats: stats, streak: streak}
	}
}

func (m Model) replaySpoolCmd() tea.Cmd {
	rec, sp := m.recorder, m.spool
	if sp == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		replayed, remaining := sp.Replay(ctx, rec)
		return spoolReplayedMsg{replayed: replayed, remaining: remaining}
	}
}

// enqueue spools a failed write, reporting whether it was actually queued.
// It uses its own context: the request context that just failed may already
// be past its deadline.
func enqueue(sp *spool.Spool, op, sessionID, key string, payload any) bool {
	if sp == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
	defer cancel()
	return sp.Enqueue(ctx, op, sessionID, key, payload) == nil
}

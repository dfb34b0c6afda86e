package app

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"focusloop/internal/domain"
	"focusloop/internal/services/health"
	"focusloop/internal/ui/overlay"
)

// Update handles incoming messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		// If overlay is open, route to overlay stack
		if !m.overlayStack.IsEmpty() {
			return m, m.overlayStack.Update(msg)
		}
		return m.handleKey(msg)

	case tickMsg:
		m.expireToasts()
		effects := m.engine.Tick()
		cmds := []tea.Cmd{tickEvery(time.Second), m.execEffects(effects)}
		if m.engine.Phase() == domain.PhaseAwaitingRating && m.overlayStack.IsEmpty() {
			cmds = append(cmds, m.pushOverlay(overlay.NewRatingDialog()))
		}
		return m, tea.Batch(cmds...)

	case autoStartMsg:
		return m, m.execEffects(m.engine.AutoStart(msg.gen))

	case enforceDueMsg:
		if !m.monitor.Due(msg.gen) {
			return m, nil
		}
		// The prompt preempts any dismissible overlay
		if cur := m.overlayStack.Current(); cur != nil {
			if b, ok := cur.(overlay.Blocking); ok && b.Blocking() {
				return m, nil
			}
			m.overlayStack.Clear()
		}
		return m, m.pushOverlay(overlay.NewEnforceDialog(m.engine.Selected()))

	case health.StatusMsg:
		wasOnline := m.isOnline
		m.isOnline = msg.Online
		cmds := []tea.Cmd{healthCheckLater(m.checker, healthInterval)}
		if msg.Online && !wasOnline {
			m.addToast(ToastSuccess, "Back online", 3*time.Second)
			cmds = append(cmds, m.replaySpoolCmd(), m.fetchStatsCmd())
		}
		return m, tea.Batch(cmds...)

	// Overlay messages
	case overlay.CloseOverlayMsg:
		m.overlayStack.Pop()
		return m, nil

	case overlay.ConfirmResultMsg:
		m.overlayStack.Pop()
		if msg.Confirmed {
			return m, m.execEffects(m.engine.Reset())
		}
		return m, nil

	case overlay.RatingSubmittedMsg:
		effects, err := m.engine.SubmitRating(msg.Productivity, msg.Energy)
		if err != nil {
			m.addToast(ToastError, err.Error(), 5*time.Second)
			return m, nil
		}
		m.overlayStack.Pop()
		return m, m.execEffects(effects)

	case overlay.DistractionSubmittedMsg:
		m.overlayStack.Pop()
		effects, err := m.engine.SubmitDistraction(domain.Distraction{
			Type:        msg.Type,
			Description: msg.Description,
		})
		if err != nil {
			m.addToast(ToastError, err.Error(), 5*time.Second)
			return m, nil
		}
		// The session stays paused; resuming is an explicit keypress.
		return m, m.execEffects(effects)

	case overlay.DistractionCancelledMsg:
		m.overlayStack.Pop()
		m.engine.CancelDistraction()
		return m, nil

	case overlay.EnforceChoiceMsg:
		m.overlayStack.Pop()
		if msg.StartBreak {
			return m, m.execEffects(m.engine.Start())
		}
		return m, m.execEffects(m.engine.SkipBreak())

	case overlay.SettingsSavedMsg:
		if err := m.engine.ApplySettings(msg.Settings); err != nil {
			if errors.Is(err, domain.ErrNotIdle) {
				m.addToast(ToastWarning, "Settings apply when the timer is idle", 5*time.Second)
			} else {
				m.addToast(ToastError, err.Error(), 5*time.Second)
			}
			return m, nil
		}
		m.overlayStack.Pop()
		return m, m.saveSettingsCmd(msg.Settings)

	case overlay.InputSubmittedMsg:
		m.overlayStack.Pop()
		return m.handleInput(msg)

	// Recorder results
	case settingsFetchedMsg:
		if msg.err != nil {
			m.logger.Debug("settings fetch failed, keeping current", "error", msg.err)
			m.addToast(ToastWarning, "Using local settings", 3*time.Second)
			return m, nil
		}
		m.engine.RefreshSettings(msg.settings)
		return m, nil

	case settingsSavedMsg:
		if msg.err != nil {
			m.addToast(ToastWarning, "Settings saved locally only", 5*time.Second)
			return m, nil
		}
		m.engine.RefreshSettings(msg.settings)
		m.addToast(ToastSuccess, "Settings saved", 3*time.Second)
		return m, nil

	case sessionCreatedMsg:
		if msg.err != nil {
			m.addToast(ToastWarning, "Offline: session queued", 3*time.Second)
			return m, nil
		}
		m.engine.SessionCreated(msg.clientID, msg.serverID)
		return m, nil

	case recorderResultMsg:
		if msg.err != nil {
			m.logger.Debug("recorder write failed",
				"op", msg.op, "session", msg.sessionID, "error", msg.err)
			if msg.spooled {
				m.addToast(ToastWarning, "Offline: change queued", 3*time.Second)
			}
		}
		return m, nil

	case statsMsg:
		if msg.err != nil {
			m.logger.Debug("stats fetch failed", "error", msg.err)
			return m, nil
		}
		m.stats = msg.stats
		m.streak = msg.streak
		return m, nil

	case spoolReplayedMsg:
		if msg.replayed > 0 {
			m.addToast(ToastSuccess, "Queued changes synced", 3*time.Second)
			return m, m.fetchStatsCmd()
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keys while no overlay is open
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "s", " ":
		return m, m.execEffects(m.engine.Toggle())

	case "tab":
		return m, m.selectType(nextType(m.engine.Selected()))

	case "1":
		return m, m.selectType(domain.TypeWork)

	case "2":
		return m, m.selectType(domain.TypeShortBreak)

	case "3":
		return m, m.selectType(domain.TypeLongBreak)

	case "i":
		if m.engine.Interrupt() {
			return m, m.pushOverlay(overlay.NewDistractionDialog())
		}
		return m, nil

	case "r":
		if m.engine.Phase() == domain.PhaseIdle {
			return m, nil
		}
		return m, m.pushOverlay(overlay.NewConfirmDialog(
			"Reset Timer", "Abandon the current session?"))

	case "t":
		if m.engine.Phase() != domain.PhaseIdle {
			m.addToast(ToastWarning, "Task links are set before starting", 3*time.Second)
			return m, nil
		}
		return m, m.pushOverlay(overlay.NewInputDialog(
			"Link Task", "task", "task id", ""))

	case "n":
		initial := ""
		if active := m.engine.ActiveSession(); active != nil {
			initial = active.Notes
		}
		return m, m.pushOverlay(overlay.NewInputDialog(
			"Session Notes", "notes", "what are you working on?", initial))

	case "o":
		return m, m.pushOverlay(overlay.NewSettingsDialog(m.engine.Settings()))

	case "d":
		return m, m.fetchStatsCmd()
	}

	return m, nil
}

func (m *Model) handleInput(msg overlay.InputSubmittedMsg) (tea.Model, tea.Cmd) {
	switch msg.Key {
	case "task":
		if err := m.engine.SetTaskID(msg.Value); err != nil {
			m.addToast(ToastWarning, "Task links are set before starting", 3*time.Second)
		}
	case "notes":
		m.engine.SetNotes(msg.Value)
	}
	return *m, nil
}

func (m *Model) selectType(t domain.SessionType) tea.Cmd {
	effects, err := m.engine.SelectType(t)
	if err != nil {
		m.addToast(ToastWarning, "Stop the timer before switching type", 3*time.Second)
		return nil
	}
	return m.execEffects(effects)
}

func (m *Model) pushOverlay(o overlay.Overlay) tea.Cmd {
	return m.overlayStack.Push(o)
}

func nextType(t domain.SessionType) domain.SessionType {
	switch t {
	case domain.TypeWork:
		return domain.TypeShortBreak
	case domain.TypeShortBreak:
		return domain.TypeLongBreak
	default:
		return domain.TypeWork
	}
}

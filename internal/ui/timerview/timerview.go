// Package timerview renders the central countdown pane: session type tabs,
// the mm:ss display, a progress bar and the daily goal line.
package timerview

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"focusloop/internal/domain"
	"focusloop/internal/ui/styles"
)

// State is everything the timer pane needs to draw a frame
type State struct {
	Phase        domain.Phase
	Selected     domain.SessionType
	Remaining    int // seconds
	Progress     float64
	TaskID       string
	Notes        string
	Distractions int

	CompletedToday int
	DailyGoal      int
	StreakDays     int
}

// TimerView renders the countdown pane
type TimerView struct {
	styles *styles.Styles
	bar    progress.Model
	width  int
}

// New creates a timer view sized for the given terminal width
func New(width int) *TimerView {
	bar := progress.New(
		progress.WithSolidFill(string(styles.Mauve)),
		progress.WithoutPercentage(),
	)
	bar.Width = 40

	return &TimerView{
		styles: styles.New(),
		bar:    bar,
		width:  width,
	}
}

// SetWidth updates the terminal width used for centering
func (tv *TimerView) SetWidth(width int) {
	tv.width = width
}

// View renders the pane for the given state
func (tv *TimerView) View(s State) string {
	var b strings.Builder

	b.WriteString(tv.renderTabs(s))
	b.WriteString("\n\n")

	label := tv.styles.TimerLabel.
		Foreground(styles.SessionTypeColor(s.Selected)).
		Render(s.Phase.Icon() + " " + s.Selected.Label())
	b.WriteString(label)
	b.WriteString("\n")

	b.WriteString(tv.styles.TimerDisplay.Render(FormatClock(s.Remaining)))
	b.WriteString("\n\n")

	b.WriteString(tv.bar.ViewAs(s.Progress))
	b.WriteString("\n")

	if meta := tv.renderMeta(s); meta != "" {
		b.WriteString("\n")
		b.WriteString(meta)
	}

	b.WriteString("\n\n")
	b.WriteString(tv.renderGoal(s))

	pane := tv.styles.TimerPane.Render(b.String())
	if tv.width > lipgloss.Width(pane) {
		pane = lipgloss.PlaceHorizontal(tv.width, lipgloss.Center, pane)
	}
	return pane
}

func (tv *TimerView) renderTabs(s State) string {
	types := []domain.SessionType{domain.TypeWork, domain.TypeShortBreak, domain.TypeLongBreak}

	var tabs []string
	for _, t := range types {
		if t == s.Selected {
			tabs = append(tabs, tv.styles.TypeTabActive(t).Render(t.Label()))
		} else {
			tabs = append(tabs, tv.styles.TypeTab(t).Render(t.Label()))
		}
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (tv *TimerView) renderMeta(s State) string {
	var parts []string

	if s.TaskID != "" {
		parts = append(parts, "task "+s.TaskID)
	}
	if s.Distractions == 1 {
		parts = append(parts, "1 distraction")
	} else if s.Distractions > 1 {
		parts = append(parts, fmt.Sprintf("%d distractions", s.Distractions))
	}
	if s.Notes != "" {
		parts = append(parts, "note saved")
	}

	if len(parts) == 0 {
		return ""
	}
	return tv.styles.TimerMeta.Render(strings.Join(parts, " • "))
}

func (tv *TimerView) renderGoal(s State) string {
	goal := fmt.Sprintf("Today %d/%d", s.CompletedToday, s.DailyGoal)
	if s.CompletedToday >= s.DailyGoal && s.DailyGoal > 0 {
		goal += " ✓"
	}
	if s.StreakDays > 0 {
		goal += fmt.Sprintf(" • %d day streak", s.StreakDays)
	}
	return tv.styles.GoalProgress.Render(goal)
}

// FormatClock renders seconds as mm:ss, spilling into hours past an hour
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	if seconds >= 3600 {
		return fmt.Sprintf("%d:%02d:%02d", seconds/3600, (seconds%3600)/60, seconds%60)
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

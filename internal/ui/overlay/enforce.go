package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"focusloop/internal/domain"
)

// EnforceDialog is the break-enforcement prompt shown when a due break has
// been sitting unstarted past the grace period. It offers exactly two ways
// out: start the break now, or skip it and queue the next work session.
type EnforceDialog struct {
	styles    *Styles
	breakType domain.SessionType
	selected  int // 0 = start break, 1 = skip
}

// EnforceChoiceMsg carries the user's answer to the enforcement prompt
type EnforceChoiceMsg struct {
	StartBreak bool
}

// NewEnforceDialog creates an enforcement prompt for the given break type
func NewEnforceDialog(breakType domain.SessionType) *EnforceDialog {
	return &EnforceDialog{
		styles:    New(),
		breakType: breakType,
	}
}

// Init initializes the dialog
func (e *EnforceDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (e *EnforceDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k", "down", "j", "tab":
			e.selected = 1 - e.selected
			return e, nil

		case "b", "B":
			return e, func() tea.Msg { return EnforceChoiceMsg{StartBreak: true} }

		case "s", "S":
			return e, func() tea.Msg { return EnforceChoiceMsg{StartBreak: false} }

		case "enter":
			start := e.selected == 0
			return e, func() tea.Msg { return EnforceChoiceMsg{StartBreak: start} }
		}
	}

	return e, nil
}

// View renders the dialog
func (e *EnforceDialog) View() string {
	var b strings.Builder

	b.WriteString(e.styles.MenuItem.Render(
		fmt.Sprintf("Your %s is overdue. Step away from the keyboard.", e.breakType.Label())))
	b.WriteString("\n\n")

	options := []string{"[B] Start break now", "[S] Skip this break"}
	for i, opt := range options {
		style := e.styles.MenuItem
		prefix := "  "
		if i == e.selected {
			style = e.styles.MenuItemActive
			prefix = "> "
		}
		b.WriteString(style.Render(prefix + opt))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(e.styles.Footer.Render("↑ ↓: Switch • Enter: Confirm"))

	return b.String()
}

// Title returns the dialog title
func (e *EnforceDialog) Title() string {
	return "Break Time"
}

// Blocking prevents the enforcement prompt from being dismissed with escape
func (e *EnforceDialog) Blocking() bool {
	return true
}

// Size returns the dialog dimensions
func (e *EnforceDialog) Size() (width, height int) {
	return 60, 8
}

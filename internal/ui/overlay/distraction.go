package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"focusloop/internal/domain"
)

// DistractionDialog captures what interrupted a running work session. The
// session clock is already paused while this dialog is open; submitting logs
// the distraction and leaves the session paused, cancelling resumes without
// logging.
type DistractionDialog struct {
	styles   *Styles
	input    textarea.Model
	selected int
	editing  bool
}

// DistractionSubmittedMsg carries a logged distraction back to the app
type DistractionSubmittedMsg struct {
	Type        domain.DistractionType
	Description string
}

// DistractionCancelledMsg signals the interrupt was dismissed without logging
type DistractionCancelledMsg struct{}

// NewDistractionDialog creates a distraction capture dialog
func NewDistractionDialog() *DistractionDialog {
	input := textarea.New()
	input.Placeholder = "What pulled you away? (optional)"
	input.SetWidth(52)
	input.SetHeight(3)
	input.CharLimit = 280

	return &DistractionDialog{
		styles: New(),
		input:  input,
	}
}

// Init initializes the dialog
func (d *DistractionDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (d *DistractionDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if d.editing {
			switch msg.String() {
			case "esc":
				d.editing = false
				d.input.Blur()
				return d, nil
			case "enter":
				return d, d.submit()
			default:
				var cmd tea.Cmd
				d.input, cmd = d.input.Update(msg)
				return d, cmd
			}
		}

		switch msg.String() {
		case "esc":
			return d, func() tea.Msg { return DistractionCancelledMsg{} }

		case "up", "k":
			if d.selected > 0 {
				d.selected--
			}
			return d, nil

		case "down", "j":
			if d.selected < len(domain.DistractionTypes)-1 {
				d.selected++
			}
			return d, nil

		case "tab", "i":
			d.editing = true
			return d, d.input.Focus()

		case "enter":
			return d, d.submit()
		}
	}

	return d, nil
}

func (d *DistractionDialog) submit() tea.Cmd {
	dtype := domain.DistractionTypes[d.selected]
	desc := strings.TrimSpace(d.input.Value())
	return func() tea.Msg {
		return DistractionSubmittedMsg{Type: dtype, Description: desc}
	}
}

// View renders the dialog
func (d *DistractionDialog) View() string {
	var b strings.Builder

	for i, dtype := range domain.DistractionTypes {
		style := d.styles.MenuItem
		prefix := "  "
		if i == d.selected && !d.editing {
			style = d.styles.MenuItemActive
			prefix = "> "
		}
		b.WriteString(style.Render(prefix + dtype.Label()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(d.input.View())
	b.WriteString("\n\n")

	if d.editing {
		b.WriteString(d.styles.Footer.Render("Enter: Log • Esc: Back to list"))
	} else {
		b.WriteString(d.styles.Footer.Render("↑ ↓: Type • Tab: Note • Enter: Log • Esc: Dismiss"))
	}

	return b.String()
}

// Title returns the dialog title
func (d *DistractionDialog) Title() string {
	return "Log Distraction"
}

// Size returns the dialog dimensions
func (d *DistractionDialog) Size() (width, height int) {
	return 60, len(domain.DistractionTypes) + 9
}

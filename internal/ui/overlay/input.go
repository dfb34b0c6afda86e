package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// InputDialog is a single-line text prompt used for the task link and the
// session notes.
type InputDialog struct {
	title  string
	key    string
	styles *Styles
	input  textinput.Model
}

// InputSubmittedMsg carries the entered text, tagged with the prompt's key
type InputSubmittedMsg struct {
	Key   string
	Value string
}

// NewInputDialog creates a text prompt. The key tags the submitted message so
// the app knows which field was edited.
func NewInputDialog(title, key, placeholder, initial string) *InputDialog {
	input := textinput.New()
	input.Placeholder = placeholder
	input.SetValue(initial)
	input.CharLimit = 200
	input.Width = 48
	input.Focus()

	return &InputDialog{
		title:  title,
		key:    key,
		styles: New(),
		input:  input,
	}
}

// Init initializes the dialog
func (d *InputDialog) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages
func (d *InputDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return d, func() tea.Msg { return CloseOverlayMsg{} }

		case "enter":
			key, value := d.key, strings.TrimSpace(d.input.Value())
			return d, func() tea.Msg { return InputSubmittedMsg{Key: key, Value: value} }
		}
	}

	var cmd tea.Cmd
	d.input, cmd = d.input.Update(msg)
	return d, cmd
}

// View renders the dialog
func (d *InputDialog) View() string {
	var b strings.Builder
	b.WriteString(d.input.View())
	b.WriteString("\n\n")
	b.WriteString(d.styles.Footer.Render("Enter: Save • Esc: Cancel"))
	return b.String()
}

// Title returns the dialog title
func (d *InputDialog) Title() string {
	return d.title
}

// Size returns the dialog dimensions
func (d *InputDialog) Size() (width, height int) {
	return 60, 5
}

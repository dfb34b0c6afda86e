package statusbar

import (
	"github.com/charmbracelet/lipgloss"

	"focusloop/internal/domain"
	"focusloop/internal/ui/styles"
)

// StatusBar represents the status bar at the bottom of the TUI
type StatusBar struct {
	phase  domain.Phase
	online bool
	width  int
	styles *styles.Styles
}

// New creates a new StatusBar for the given phase and width
func New(phase domain.Phase, online bool, width int, styles *styles.Styles) StatusBar {
	return StatusBar{
		phase:  phase,
		online: online,
		width:  width,
		styles: styles,
	}
}

// Render renders the status bar as a string
func (sb StatusBar) Render() string {
	// Phase badge, tinted by lifecycle phase
	badge := sb.styles.StatusMode.
		Foreground(styles.PhaseColors[sb.phase]).
		Render(" " + sb.phase.String() + " ")

	// Keybinding hints for the current phase
	hints := GetHints(sb.phase)

	parts := []string{badge}
	if hints != "" {
		parts = append(parts, sb.styles.StatusHint.Render(" │ "),
			sb.styles.StatusHint.Render(hints))
	}
	if !sb.online {
		parts = append(parts, sb.styles.StatusHint.Render(" │ "),
			sb.styles.StatusInfo.Render("offline"))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)

	// Apply status bar style and fill width
	return sb.styles.StatusBar.Width(sb.width).Render(content)
}

package styles

import (
	"github.com/charmbracelet/lipgloss"

	"focusloop/internal/domain"
)

// Styles holds all the UI styles
type Styles struct {
	// Timer pane
	TimerPane    lipgloss.Style
	TimerDisplay lipgloss.Style
	TimerLabel   lipgloss.Style
	TimerMeta    lipgloss.Style

	// Session type selector
	TypeTab       func(t domain.SessionType) lipgloss.Style
	TypeTabActive func(t domain.SessionType) lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusMode lipgloss.Style
	StatusHint lipgloss.Style
	StatusInfo lipgloss.Style

	// Goal / streak line
	GoalProgress lipgloss.Style

	// Toasts
	ToastInfo    lipgloss.Style
	ToastSuccess lipgloss.Style
	ToastWarning lipgloss.Style
	ToastError   lipgloss.Style
}

// New creates a new Styles instance with the Catppuccin Macchiato theme
func New() *Styles {
	return &Styles{
		TimerPane: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(Surface1).
			Padding(1, 4).
			Align(lipgloss.Center),

		TimerDisplay: lipgloss.NewStyle().
			Foreground(Text).
			Bold(true),

		TimerLabel: lipgloss.NewStyle().
			Bold(true).
			MarginBottom(1),

		TimerMeta: lipgloss.NewStyle().
			Foreground(Subtext0),

		TypeTab: func(t domain.SessionType) lipgloss.Style {
			return lipgloss.NewStyle().
				Foreground(Subtext0).
				Padding(0, 1)
		},

		TypeTabActive: func(t domain.SessionType) lipgloss.Style {
			return lipgloss.NewStyle().
				Foreground(SessionTypeColor(t)).
				Bold(true).
				Underline(true).
				Padding(0, 1)
		},

		StatusBar: lipgloss.NewStyle().
			Background(Mantle).
			Foreground(Subtext0),

		StatusMode: lipgloss.NewStyle().
			Background(Surface1).
			Foreground(Text).
			Bold(true).
			Padding(0, 1),

		StatusHint: lipgloss.NewStyle().
			Foreground(Overlay1),

		StatusInfo: lipgloss.NewStyle().
			Foreground(Subtext1),

		GoalProgress: lipgloss.NewStyle().
			Foreground(Teal),

		ToastInfo: lipgloss.NewStyle().
			Background(Surface0).
			Foreground(Text).
			Padding(0, 1),

		ToastSuccess: lipgloss.NewStyle().
			Background(Green).
			Foreground(Crust).
			Padding(0, 1),

		ToastWarning: lipgloss.NewStyle().
			Background(Yellow).
			Foreground(Crust).
			Padding(0, 1),

		ToastError: lipgloss.NewStyle().
			Background(Red).
			Foreground(Crust).
			Padding(0, 1),
	}
}

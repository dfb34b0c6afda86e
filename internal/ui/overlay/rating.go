package overlay

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// RatingDialog collects a productivity score and energy level after a
// completed work session. Both scales must be filled before submit.
type RatingDialog struct {
	styles       *Styles
	productivity int // 1-10
	energy       int // 1-5
	row          int // 0 = productivity, 1 = energy
}

// RatingSubmittedMsg carries the ratings chosen in the dialog
type RatingSubmittedMsg struct {
	Productivity int
	Energy       int
}

// NewRatingDialog creates a rating dialog with mid-scale defaults
func NewRatingDialog() *RatingDialog {
	return &RatingDialog{
		styles:       New(),
		productivity: 5,
		energy:       3,
	}
}

// Init initializes the dialog
func (r *RatingDialog) Init() tea.Cmd {
	return nil
}

// Update handles messages
func (r *RatingDialog) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down", "j", "up", "k":
			r.row = 1 - r.row
			return r, nil

		case "left", "h":
			r.adjust(-1)
			return r, nil

		case "right", "l":
			r.adjust(1)
			return r, nil

		case "1", "2", "3", "4", "5", "6", "7", "8", "9":
			n := int(msg.String()[0] - '0')
			r.set(n)
			return r, nil

		case "0":
			// 0 means 10 on the productivity scale
			if r.row == 0 {
				r.productivity = 10
			}
			return r, nil

		case "enter":
			productivity, energy := r.productivity, r.energy
			return r, func() tea.Msg {
				return RatingSubmittedMsg{Productivity: productivity, Energy: energy}
			}
		}
	}

	return r, nil
}

func (r *RatingDialog) adjust(delta int) {
	if r.row == 0 {
		r.productivity = clamp(r.productivity+delta, 1, 10)
	} else {
		r.energy = clamp(r.energy+delta, 1, 5)
	}
}

func (r *RatingDialog) set(n int) {
	if r.row == 0 {
		r.productivity = clamp(n, 1, 10)
	} else {
		r.energy = clamp(n, 1, 5)
	}
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}

// View renders the dialog
func (r *RatingDialog) View() string {
	var b strings.Builder

	b.WriteString(r.renderScale("Productivity", r.productivity, 10, r.row == 0))
	b.WriteString("\n\n")
	b.WriteString(r.renderScale("Energy", r.energy, 5, r.row == 1))
	b.WriteString("\n\n")
	b.WriteString(r.styles.Footer.Render("← → : Adjust • Tab: Switch • Enter: Submit"))

	return b.String()
}

func (r *RatingDialog) renderScale(label string, value, max int, active bool) string {
	labelStyle := r.styles.MenuItem
	if active {
		labelStyle = r.styles.MenuItemActive
	}

	var cells []string
	for i := 1; i <= max; i++ {
		cell := fmt.Sprintf("%d", i)
		if i == value {
			cells = append(cells, r.styles.ScaleActive.Render(cell))
		} else {
			cells = append(cells, r.styles.Scale.Render(cell))
		}
	}

	return labelStyle.Render(fmt.Sprintf("%-13s", label)) + strings.Join(cells, " ")
}

// Title returns the dialog title
func (r *RatingDialog) Title() string {
	return "Rate Session"
}

// Blocking prevents the rating prompt from being dismissed with escape
func (r *RatingDialog) Blocking() bool {
	return true
}

// Size returns the dialog dimensions
func (r *RatingDialog) Size() (width, height int) {
	return 60, 8
}

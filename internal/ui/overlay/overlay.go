// Package overlay contains the modal prompts layered over the timer: the
// rating capture, the distraction capture, the break-enforcement prompt, the
// settings form and the reset confirmation.
package overlay

import tea "github.com/charmbracelet/bubbletea"

// Overlay represents a modal overlay component
type Overlay interface {
	tea.Model
	Title() string
	Size() (width, height int)
}

// CloseOverlayMsg signals that the overlay should be closed
type CloseOverlayMsg struct{}

// Blocking marks overlays that cannot be dismissed with escape, like the
// break-enforcement prompt.
type Blocking interface {
	Blocking() bool
}

// Package notify delivers best-effort completion cues: a terminal bell and a
// desktop notification via the platform's notifier command. Nothing here ever
// returns an error to the state machine; a missing command or denied
// permission degrades silently.
package notify

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
)

// Notifier plays the completion tone and raises desktop notifications
type Notifier struct {
	runner CommandRunner
	out    io.Writer
	goos   string
	logger *slog.Logger
}

// New creates a Notifier with dependency injection for testing
func New(runner CommandRunner, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		runner: runner,
		out:    os.Stdout,
		goos:   runtime.GOOS,
		logger: logger,
	}
}

// PlayTone emits the audio cue. The terminal bell is the lowest common
// denominator that needs no audio stack.
func (n *Notifier) PlayTone() {
	if _, err := fmt.Fprint(n.out, "\a"); err != nil {
		n.logger.Debug("tone failed", "error", err)
	}
}

// ShowDesktop raises a desktop notification with the platform notifier.
// Failures are logged at debug and swallowed.
func (n *Notifier) ShowDesktop(ctx context.Context, title, body string) {
	var err error
	switch n.goos {
	case "darwin":
		script := fmt.Sprintf("display notification %q with title %q", body, title)
		_, err = n.runner.Run(ctx, "osascript", "-e", script)
	case "windows":
		_, err = n.runner.Run(ctx, "msg", "*", "/time:5", title+": "+body)
	default:
		_, err = n.runner.Run(ctx, "notify-send", "-a", "focusloop", title, body)
	}
	if err != nil {
		n.logger.Debug("desktop notification failed", "error", err)
	}
}

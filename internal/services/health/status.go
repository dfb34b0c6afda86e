// Package health monitors reachability of the recorder API. The result only
// drives the online/offline indicator in the statusbar; the state machine
// never consults it.
package health

import (
	"context"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// StatusChecker probes recorder API connectivity. It holds no state of its
// own: the app model owns the displayed status and feeds it from StatusMsg.
type StatusChecker struct {
	baseURL string
	client  *http.Client
}

// StatusMsg is sent when the connectivity status is refreshed
type StatusMsg struct {
	Online bool
}

// NewStatusChecker creates a checker for the given API base URL
func NewStatusChecker(baseURL string) *StatusChecker {
	return &StatusChecker{
		baseURL: baseURL,
		client: &http.Client{
			Timeout: 5 * time.Second,
			Transport: &http.Transport{
				DisableKeepAlives: true,
			},
		},
	}
}

// Check performs a connectivity check against the API base URL.
// Returns true if online, false if offline.
func (s *StatusChecker) Check(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.baseURL, nil)
	if err != nil {
		return false
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	// Any response at all means the API host is reachable; auth and
	// method errors still prove connectivity.
	return resp.StatusCode < 500
}

// CheckCmd returns a tea.Cmd that performs a one-time connectivity check
func (s *StatusChecker) CheckCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return StatusMsg{Online: s.Check(ctx)}
	}
}

// Package recorder is the HTTP client for the remote session recorder API.
//
// Every call is treated as best-effort by the callers: a failed write never
// rolls back the local state machine, it only surfaces a notice and lands in
// the retry spool.
package recorder

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"focusloop/internal/domain"
)

// Client talks JSON-over-HTTP to the recorder API
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient creates a recorder client for the given API base URL
func NewClient(baseURL, token string, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: 10 * time.Second},
		logger:  logger,
	}
}

// FetchSettings loads the remote-owned timer settings
func (c *Client) FetchSettings(ctx context.Context) (domain.Settings, error) {
	settings := domain.DefaultSettings()
	if err := c.do(ctx, "fetch_settings", http.MethodGet, "/api/settings", "", nil, &settings); err != nil {
		return settings, err
	}
	c.logger.Debug("fetched settings")
	return settings, nil
}

// SaveSettings persists edited settings and returns the server's copy
func (c *Client) SaveSettings(ctx context.Context, s domain.Settings) (domain.Settings, error) {
	saved := s
	if err := c.do(ctx, "save_settings", http.MethodPut, "/api/settings", "", s, &saved); err != nil {
		return s, err
	}
	c.logger.Debug("saved settings")
	return saved, nil
}

// createResponse is the recorder's answer to a session create
type createResponse struct {
	ID string `json:"id"`
}

// CreateSession opens a session record and returns its canonical ID. The
// idempotency key identifies the logical write: retries and spool replays
// must pass the same key they failed with so the server can deduplicate.
func (c *Client) CreateSession(ctx context.Context, key string, s domain.Session) (string, error) {
	var resp createResponse
	if err := c.do(ctx, "create", http.MethodPost, "/api/sessions", key, s, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		resp.ID = s.ID
	}
	c.logger.Debug("session created", "id", resp.ID, "type", s.Type)
	return resp.ID, nil
}

// ratingPayload carries the rating fields attached to a work session
type ratingPayload struct {
	ProductivityScore int    `json:"productivity_score,omitempty"`
	EnergyLevel       int    `json:"energy_level,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

// UpdateSession attaches rating fields and notes to an open session record
func (c *Client) UpdateSession(ctx context.Context, key, id string, productivity, energy int, notes string) error {
	payload := ratingPayload{ProductivityScore: productivity, EnergyLevel: energy, Notes: notes}
	err := c.do(ctx, "update", http.MethodPatch, "/api/sessions/"+id, key, payload, nil)
	if err != nil {
		return c.withSession(err, id)
	}
	c.logger.Debug("session updated", "id", id)
	return nil
}

// CompleteSession marks a session record completed
func (c *Client) CompleteSession(ctx context.Context, key, id string) error {
	err := c.do(ctx, "complete", http.MethodPost, "/api/sessions/"+id+"/complete", key, nil, nil)
	if err != nil {
		return c.withSession(err, id)
	}
	c.logger.Debug("session completed", "id", id)
	return nil
}

// InterruptSession records a distraction against a session
func (c *Client) InterruptSession(ctx context.Context, key, id string, d domain.Distraction) error {
	err := c.do(ctx, "interrupt", http.MethodPost, "/api/sessions/"+id+"/interrupt", key, d, nil)
	if err != nil {
		return c.withSession(err, id)
	}
	c.logger.Debug("session interrupted", "id", id, "distraction", d.Type)
	return nil
}

// AbandonSession marks a reset session's record abandoned
func (c *Client) AbandonSession(ctx context.Context, key, id string) error {
	err := c.do(ctx, "abandon", http.MethodPost, "/api/sessions/"+id+"/abandon", key, nil, nil)
	if err != nil {
		return c.withSession(err, id)
	}
	c.logger.Debug("session abandoned", "id", id)
	return nil
}

// FetchDailyStats loads today's server-computed aggregates
func (c *Client) FetchDailyStats(ctx context.Context) (domain.DailyStats, error) {
	var stats domain.DailyStats
	err := c.do(ctx, "daily_stats", http.MethodGet, "/api/stats/daily", "", nil, &stats)
	return stats, err
}

// FetchStreak loads the server-computed streak data
func (c *Client) FetchStreak(ctx context.Context) (domain.Streak, error) {
	var streak domain.Streak
	err := c.do(ctx, "streak", http.MethodGet, "/api/stats/streak", "", nil, &streak)
	return streak, err
}

// do performs one JSON request/response round trip. Writes carry an
// idempotency key; callers that may retry (the spool) supply their own so
// every attempt at the same logical write sends the same key.
func (c *Client) do(ctx context.Context, op, method, path, key string, body, out any) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &domain.RecorderError{Op: op, Message: "encode request", Err: err}
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &domain.RecorderError{Op: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		if key == "" {
			key = uuid.NewString()
		}
		req.Header.Set("Idempotency-Key", key)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Transport failures are what the offline path keys on
		return &domain.RecorderError{Op: op, Err: fmt.Errorf("%w: %v", domain.ErrOffline, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &domain.RecorderError{
			Op:      op,
			Message: fmt.Sprintf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
		}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &domain.RecorderError{Op: op, Message: "decode response", Err: err}
		}
	}
	return nil
}

// withSession stamps the session ID onto a recorder error for context
func (c *Client) withSession(err error, id string) error {
	if rerr, ok := err.(*domain.RecorderError); ok {
		rerr.SessionID = id
		return rerr
	}
	return err
}

// Package spool persists recorder writes that failed so they can be retried
// later. The state machine is optimistic-local: a transition never waits on
// the network, so a lost write lands here and is replayed on startup and
// after each completed session.
package spool

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"focusloop/internal/domain"
)

// Ops recognized by Replay
const (
	OpCreate    = "create"
	OpUpdate    = "update"
	OpComplete  = "complete"
	OpInterrupt = "interrupt"
	OpAbandon   = "abandon"
)

// Entry is one spooled recorder write. Key is the idempotency key the write
// originally failed with; replays send the same key so the server can
// deduplicate an attempt whose response was lost.
type Entry struct {
	ID        string
	Op        string
	SessionID string
	Key       string
	Payload   []byte
	CreatedAt time.Time
	Attempts  int
}

// RatingPayload is the spooled body of an update op
type RatingPayload struct {
	ProductivityScore int    `json:"productivity_score"`
	EnergyLevel       int    `json:"energy_level"`
	Notes             string `json:"notes,omitempty"`
}

// Replayer is the slice of the recorder client Replay needs
type Replayer interface {
	CreateSession(ctx context.Context, key string, s domain.Session) (string, error)
	UpdateSession(ctx context.Context, key, id string, productivity, energy int, notes string) error
	CompleteSession(ctx context.Context, key, id string) error
	InterruptSession(ctx context.Context, key, id string, d domain.Distraction) error
	AbandonSession(ctx context.Context, key, id string) error
}

// Spool is a SQLite-backed queue of failed recorder writes
type Spool struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open creates and initializes the spool database
func Open(dbPath string, logger *slog.Logger) (*Spool, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create spool directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open spool db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("exec %q: %w", p, err)
		}
	}

	s := &Spool{db: db, path: dbPath, logger: logger}
	if err := s.ensureSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure spool schema: %w", err)
	}
	return s, nil
}

func (s *Spool) ensureSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pending_writes (
		id         TEXT PRIMARY KEY,
		op         TEXT NOT NULL,
		session_id TEXT NOT NULL,
		idem_key   TEXT NOT NULL DEFAULT '',
		payload    TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		attempts   INTEGER NOT NULL DEFAULT 0
	);
	CREATE INDEX IF NOT EXISTS idx_pending_created ON pending_writes(created_at);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close releases the database handle
func (s *Spool) Close() error {
	return s.db.Close()
}

// Enqueue stores a failed write for later replay. The key must be the
// idempotency key the failed attempt carried, so replays reuse it.
func (s *Spool) Enqueue(ctx context.Context, op, sessionID, key string, payload any) error {
	var body []byte
	if payload != nil {
		var err error
		body, err = json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode spool payload: %w", err)
		}
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO pending_writes (id, op, session_id, idem_key, payload, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), op, sessionID, key, string(body), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("enqueue spooled write: %w", err)
	}

	s.logger.Debug("write spooled", "op", op, "session", sessionID)
	return nil
}

// Pending returns all spooled writes in insertion order
func (s *Spool) Pending(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, op, session_id, idem_key, payload, created_at, attempts FROM pending_writes ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("query spool: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var payload, created string
		if err := rows.Scan(&e.ID, &e.Op, &e.SessionID, &e.Key, &payload, &created, &e.Attempts); err != nil {
			return nil, fmt.Errorf("scan spool row: %w", err)
		}
		e.Payload = []byte(payload)
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, created)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Len returns the number of spooled writes
func (s *Spool) Len(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pending_writes`).Scan(&n)
	return n, err
}

func (s *Spool) delete(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM pending_writes WHERE id = ?`, id)
	return err
}

func (s *Spool) bump(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE pending_writes SET attempts = attempts + 1 WHERE id = ?`, id)
	return err
}

// Replay attempts every spooled write in order against the recorder.
// Successes are removed, failures stay queued with a bumped attempt count.
// Returns how many were replayed and how many remain.
func (s *Spool) Replay(ctx context.Context, rec Replayer) (replayed, remaining int) {
	entries, err := s.Pending(ctx)
	if err != nil {
		s.logger.Error("spool replay aborted", "error", err)
		return 0, 0
	}

	for _, e := range entries {
		if err := s.replayOne(ctx, rec, e); err != nil {
			s.logger.Debug("spool replay failed", "op", e.Op, "session", e.SessionID, "error", err)
			if err := s.bump(ctx, e.ID); err != nil {
				s.logger.Error("spool bump failed", "id", e.ID, "error", err)
			}
			remaining++
			continue
		}
		if err := s.delete(ctx, e.ID); err != nil {
			s.logger.Error("spool delete failed", "id", e.ID, "error", err)
		}
		replayed++
	}

	if replayed > 0 {
		s.logger.Info("spooled writes replayed", "count", replayed, "remaining", remaining)
	}
	return replayed, remaining
}

func (s *Spool) replayOne(ctx context.Context, rec Replayer, e Entry) error {
	switch e.Op {
	case OpCreate:
		var session domain.Session
		if err := json.Unmarshal(e.Payload, &session); err != nil {
			return fmt.Errorf("decode spooled session: %w", err)
		}
		_, err := rec.CreateSession(ctx, e.Key, session)
		return err
	case OpUpdate:
		var rating RatingPayload
		if err := json.Unmarshal(e.Payload, &rating); err != nil {
			return fmt.Errorf("decode spooled rating: %w", err)
		}
		return rec.UpdateSession(ctx, e.Key, e.SessionID, rating.ProductivityScore, rating.EnergyLevel, rating.Notes)
	case OpComplete:
		return rec.CompleteSession(ctx, e.Key, e.SessionID)
	case OpInterrupt:
		var d domain.Distraction
		if err := json.Unmarshal(e.Payload, &d); err != nil {
			return fmt.Errorf("decode spooled distraction: %w", err)
		}
		return rec.InterruptSession(ctx, e.Key, e.SessionID, d)
	case OpAbandon:
		return rec.AbandonSession(ctx, e.Key, e.SessionID)
	default:
		return fmt.Errorf("unknown spooled op %q", e.Op)
	}
}

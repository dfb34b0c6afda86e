package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors
var (
	ErrNotIdle         = errors.New("a session is already active")
	ErrNoActiveSession = errors.New("no active session")
	ErrInvalidSettings = errors.New("invalid settings")
	ErrOffline         = errors.New("offline")
)

// RecorderError represents an error from the remote session recorder API
type RecorderError struct {
	Op        string // Operation: "create", "complete", "interrupt", etc.
	SessionID string // Optional: specific session ID
	Message   string // Human-readable context
	Err       error  // Underlying error
}

func (e *RecorderError) Error() string {
	if e.SessionID != "" {
		return fmt.Sprintf("recorder %s [%s]: %s", e.Op, e.SessionID, e.message())
	}
	return fmt.Sprintf("recorder %s: %s", e.Op, e.message())
}

func (e *RecorderError) message() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "failed"
}

func (e *RecorderError) Unwrap() error {
	return e.Err
}

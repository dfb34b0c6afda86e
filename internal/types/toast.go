// Package types contains shared types used across the application.
package types

import "time"

// Toast represents a transient notification message
type Toast struct {
	Level   ToastLevel
	Message string
	Expires time.Time
}

// ToastLevel indicates the severity of a toast
type ToastLevel int

const (
	ToastInfo ToastLevel = iota
	ToastSuccess
	ToastWarning
	ToastError
)

// NewToast creates a toast that expires after the given lifetime
func NewToast(level ToastLevel, message string, lifetime time.Duration) Toast {
	return Toast{
		Level:   level,
		Message: message,
		Expires: time.Now().Add(lifetime),
	}
}

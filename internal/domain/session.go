package domain

import "time"

// Session is one timed focus or break interval instance.
//
// A session is exclusively owned by the lifecycle engine while open; once it
// reaches a terminal state ownership transfers to the recorder and the engine
// drops its reference.
type Session struct {
	ID              string        `json:"id"`
	Type            SessionType   `json:"session_type"`
	DurationMinutes int           `json:"duration"`
	TaskID          string        `json:"task_id,omitempty"`
	Notes           string        `json:"notes,omitempty"`
	// Captured only for completed work sessions
	ProductivityScore int `json:"productivity_score,omitempty"` // 1-10
	EnergyLevel       int `json:"energy_level,omitempty"`       // 1-5
	Distractions      []Distraction `json:"distractions,omitempty"`
	StartedAt         time.Time     `json:"started_at"`
}

// Distraction is a logged interruption event attached to exactly one session
type Distraction struct {
	Type        DistractionType `json:"distraction_type"`
	Description string          `json:"description,omitempty"`
	At          time.Time       `json:"at"`
}

// DailyStats holds the server-computed aggregates for today, display-only
type DailyStats struct {
	TodayCount   int `json:"today_count"`
	TodayMinutes int `json:"today_minutes"`
}

// Streak holds the server-computed streak data, display-only
type Streak struct {
	CurrentStreak     int     `json:"current_streak"`
	DailyGoalProgress float64 `json:"daily_goal_progress"`
}

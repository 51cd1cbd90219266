package entity

import "time"

// Niveles de SystemLog.
const (
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// SystemLog es una entrada de bitácora de operaciones administrativas y de auth.
type SystemLog struct {
	ID        string
	Level     string
	Action    string // backup, optimize, clear_logs, restore, login, login_failed...
	Detail    string
	Actor     string // UserID o email del actor
	CreatedAt time.Time
}

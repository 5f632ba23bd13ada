package db

import "time"

// Export status values.
const (
	StatusRunning = "running"
	StatusSaved   = "saved"
	StatusFailed  = "failed"
)

// Export represents a row in the exports table.
type Export struct {
	ID         int64
	JobID      string
	InputPath  string
	OutputPath string
	Format     string
	Start      float64
	Duration   float64
	Status     string
	Error      string
	StartedAt  time.Time
	FinishedAt *time.Time
}

// End is the clip end in seconds.
func (e Export) End() float64 {
	return e.Start + e.Duration
}

package domain

import "time"

type RunStatus string

const (
	RunStatusAcquired RunStatus = "acquired"
	RunStatusStopped  RunStatus = "stopped"
	RunStatusAborted  RunStatus = "aborted"
)

// RunRecord is the persisted summary of one `run` invocation.
type RunRecord struct {
	ID           string
	Item         Item
	Workers      int
	Target       time.Time
	StartedAt    time.Time
	FinishedAt   time.Time
	Status       RunStatus
	Attempts     int
	PurchaseURLs []string
	Error        string
}

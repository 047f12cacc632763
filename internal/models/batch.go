package models

import "time"

type BatchStatus string

const (
	BatchDraft     BatchStatus = "draft"
	BatchActive    BatchStatus = "active"
	BatchPaused    BatchStatus = "paused"
	BatchCompleted BatchStatus = "completed"
)

// Batch is an isolated, independently lifecycled scoring session. Candidates
// reference their batch by id; at most one batch is active at a time.
type Batch struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Status      BatchStatus `json:"status"`
	CreatedAt   time.Time   `json:"createdAt"`
	StartedAt   *time.Time  `json:"startedAt,omitempty"`
	CompletedAt *time.Time  `json:"completedAt,omitempty"`
}

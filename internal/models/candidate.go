package models

import "time"

type CandidateStatus string

const (
	CandidateWaiting      CandidateStatus = "waiting"
	CandidateInterviewing CandidateStatus = "interviewing"
	CandidateCompleted    CandidateStatus = "completed"
)

// Candidate is one person being evaluated. A candidate belongs to the batch
// it was created under; BatchID is empty for candidates created outside any
// batch (the legacy unbatched space).
type Candidate struct {
	ID           string          `json:"id"`
	Number       string          `json:"number"`
	Name         string          `json:"name"`
	Department   string          `json:"department"`
	Status       CandidateStatus `json:"status"`
	CurrentRound int             `json:"currentRound"`
	BatchID      string          `json:"batchId,omitempty"`

	// One Score per judge, overwritten on resubmission.
	Scores []Score `json:"scores"`
	// Auxiliary inputs (imported exam results etc.), one per score item.
	OtherScores []OtherScore `json:"otherScores"`

	TotalScore float64 `json:"totalScore"`
	FinalScore float64 `json:"finalScore"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Score holds one judge's per-dimension marks for one candidate.
// The (CandidateID, JudgeID) pair is unique within a candidate.
type Score struct {
	CandidateID string             `json:"candidateId"`
	JudgeID     string             `json:"judgeId"`
	Values      map[string]float64 `json:"values"` // dimension id -> value
	Total       float64            `json:"total"`
	UpdatedAt   time.Time          `json:"updatedAt"`
}

// OtherScore is a non-live-judge numeric input tied to a ScoreItem.
type OtherScore struct {
	ItemID    string    `json:"itemId"`
	Value     float64   `json:"value"`
	UpdatedAt time.Time `json:"updatedAt"`
}

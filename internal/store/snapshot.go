package store

import (
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
)

// ClientSnapshot is the full-state view pushed to subscribers when they
// connect. Judges are included without their credential hashes.
type ClientSnapshot struct {
	Candidates    []models.Candidate          `json:"candidates"`
	Judges        []models.PublicJudge        `json:"judges"`
	Dimensions    []models.InterviewDimension `json:"dimensions"`
	ScoreItems    []models.ScoreItem          `json:"scoreItems"`
	Questions     []models.Question           `json:"questions"`
	Batches       []models.Batch              `json:"batches"`
	Display       models.DisplaySession       `json:"displaySession"`
	Timer         models.TimerState           `json:"timerState"`
	ActiveBatchID string                      `json:"activeBatchId"`
}

// ClientSnapshot builds the subscriber view of the current state.
func (s *Store) ClientSnapshot() ClientSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := ClientSnapshot{
		Candidates:    make([]models.Candidate, 0, len(s.state.Candidates)),
		Judges:        make([]models.PublicJudge, 0, len(s.state.Judges)),
		Dimensions:    make([]models.InterviewDimension, 0, len(s.state.Dimensions)),
		ScoreItems:    make([]models.ScoreItem, 0, len(s.state.ScoreItems)),
		Questions:     make([]models.Question, 0, len(s.state.Questions)),
		Batches:       make([]models.Batch, 0, len(s.state.Batches)),
		Display:       s.state.Display,
		Timer:         s.timerSnapshotLocked(),
		ActiveBatchID: s.state.ActiveBatchID,
	}
	for _, c := range s.state.Candidates {
		snap.Candidates = append(snap.Candidates, *c)
	}
	for _, j := range s.state.Judges {
		snap.Judges = append(snap.Judges, j.Public())
	}
	for _, d := range s.state.Dimensions {
		snap.Dimensions = append(snap.Dimensions, *d)
	}
	for _, item := range s.state.ScoreItems {
		snap.ScoreItems = append(snap.ScoreItems, *item)
	}
	for _, q := range s.state.Questions {
		snap.Questions = append(snap.Questions, *q)
	}
	for _, b := range s.state.Batches {
		snap.Batches = append(snap.Batches, *b)
	}
	return snap
}

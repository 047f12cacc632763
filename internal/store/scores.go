package store

import (
	"fmt"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/scoring"
)

// scorableLocked rejects score writes for candidates outside the live
// working set. A completed or inactive batch keeps its data readable, but
// it is no longer a target for new scores.
func (s *Store) scorableLocked(c *models.Candidate) error {
	if c.BatchID == s.state.ActiveBatchID {
		return nil
	}
	current := "unbatched"
	if b := s.findBatchLocked(c.BatchID); b != nil {
		current = string(b.Status)
	}
	return apperr.Conflict(current, string(models.BatchActive),
		fmt.Sprintf("candidate %q is not in the live working set", c.Number))
}

// SubmitScore records one judge's marks for a candidate. Values are keyed
// by dimension id and must each lie within [0, maxScore]; any out-of-range
// or unknown dimension rejects the whole submission and leaves a prior
// submission intact. Resubmitting overwrites the judge's previous record.
// Only candidates in the live working set accept scores.
func (s *Store) SubmitScore(candidateID, judgeID string, values map[string]float64) (models.Score, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCandidateLocked(candidateID)
	if c == nil {
		return models.Score{}, apperr.NotFound("candidate", candidateID)
	}
	if err := s.scorableLocked(c); err != nil {
		return models.Score{}, err
	}
	if s.findJudgeLocked(judgeID) == nil {
		return models.Score{}, apperr.NotFound("judge", judgeID)
	}
	if len(values) == 0 {
		return models.Score{}, apperr.Validationf("score submission is empty")
	}

	dims := make(map[string]*models.InterviewDimension, len(s.state.Dimensions))
	for _, d := range s.state.Dimensions {
		dims[d.ID] = d
	}
	for dimID, v := range values {
		d, ok := dims[dimID]
		if !ok {
			return models.Score{}, apperr.NotFound("dimension", dimID)
		}
		if !d.IsActive {
			return models.Score{}, apperr.Validationf("dimension %q is not active", d.Name)
		}
		if v < 0 || v > d.MaxScore {
			return models.Score{}, apperr.Validationf(
				"score %.1f for dimension %q is out of range [0, %.1f]", v, d.Name, d.MaxScore)
		}
	}

	score := models.Score{
		CandidateID: candidateID,
		JudgeID:     judgeID,
		Values:      values,
		Total:       scoring.JudgeTotal(values),
		UpdatedAt:   s.now(),
	}

	// Idempotent upsert: one record per (candidate, judge).
	replaced := false
	for i := range c.Scores {
		if c.Scores[i].JudgeID == judgeID {
			c.Scores[i] = score
			replaced = true
			break
		}
	}
	if !replaced {
		c.Scores = append(c.Scores, score)
	}
	s.recomputeLocked(c)
	c.UpdatedAt = score.UpdatedAt

	if err := s.commitLocked(EventScoreSubmitted, *c); err != nil {
		return models.Score{}, err
	}
	return score, nil
}

// SetOtherScore upserts an auxiliary score value (e.g. an imported exam
// result) for a candidate.
func (s *Store) SetOtherScore(candidateID, itemID string, value float64) (models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCandidateLocked(candidateID)
	if c == nil {
		return models.Candidate{}, apperr.NotFound("candidate", candidateID)
	}
	if err := s.scorableLocked(c); err != nil {
		return models.Candidate{}, err
	}
	var item *models.ScoreItem
	for _, cur := range s.state.ScoreItems {
		if cur.ID == itemID {
			item = cur
			break
		}
	}
	if item == nil {
		return models.Candidate{}, apperr.NotFound("score item", itemID)
	}
	if value < 0 || value > item.MaxScore {
		return models.Candidate{}, apperr.Validationf(
			"value %.1f for item %q is out of range [0, %.1f]", value, item.Name, item.MaxScore)
	}

	entry := models.OtherScore{ItemID: itemID, Value: value, UpdatedAt: s.now()}
	replaced := false
	for i := range c.OtherScores {
		if c.OtherScores[i].ItemID == itemID {
			c.OtherScores[i] = entry
			replaced = true
			break
		}
	}
	if !replaced {
		c.OtherScores = append(c.OtherScores, entry)
	}
	s.recomputeLocked(c)
	c.UpdatedAt = entry.UpdatedAt

	if err := s.commitLocked(EventOtherScoreSet, *c); err != nil {
		return models.Candidate{}, err
	}
	return *c, nil
}

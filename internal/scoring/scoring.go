// Package scoring computes candidate totals. Everything here is a pure
// function of the candidate's score records and the rubric definitions;
// results are written back onto the candidate by the store after every
// accepted submission.
package scoring

import (
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
)

// Combiner folds auxiliary score-item values into a candidate's final
// score. The rubric dropped per-item weights at some point, so the
// combination rule is kept swappable instead of hard-coded.
type Combiner interface {
	Combine(interviewScore float64, itemValues []float64) float64
}

// SumCombiner adds all active item values to the interview score,
// unweighted. This is the configured default.
type SumCombiner struct{}

func (SumCombiner) Combine(interviewScore float64, itemValues []float64) float64 {
	final := interviewScore
	for _, v := range itemValues {
		final += v
	}
	return final
}

// JudgeTotal sums one judge's per-dimension values.
func JudgeTotal(values map[string]float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// InterviewScore is the arithmetic mean of all judges' totals, or 0 when no
// judge has scored yet.
func InterviewScore(scores []models.Score) float64 {
	if len(scores) == 0 {
		return 0
	}
	var sum float64
	for _, s := range scores {
		sum += s.Total
	}
	return sum / float64(len(scores))
}

// Recompute refreshes the candidate's derived totals in place. Only active
// score items contribute; values recorded against items that were later
// deactivated or deleted are ignored.
func Recompute(c *models.Candidate, items []*models.ScoreItem, combiner Combiner) {
	c.TotalScore = InterviewScore(c.Scores)

	active := make(map[string]bool, len(items))
	for _, item := range items {
		if item.IsActive {
			active[item.ID] = true
		}
	}

	var itemValues []float64
	for _, os := range c.OtherScores {
		if active[os.ItemID] {
			itemValues = append(itemValues, os.Value)
		}
	}
	c.FinalScore = combiner.Combine(c.TotalScore, itemValues)
}

package scoring

import (
	"testing"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
)

func TestJudgeTotal(t *testing.T) {
	cases := []struct {
		name   string
		values map[string]float64
		want   float64
	}{
		{"empty", nil, 0},
		{"single", map[string]float64{"d1": 7.5}, 7.5},
		{"multiple", map[string]float64{"d1": 8, "d2": 7, "d3": 9.5}, 24.5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := JudgeTotal(tc.values); got != tc.want {
				t.Errorf("JudgeTotal(%v) = %v, want %v", tc.values, got, tc.want)
			}
		})
	}
}

func TestInterviewScoreIsMeanOfTotals(t *testing.T) {
	scores := []models.Score{
		{JudgeID: "j1", Total: 15},
		{JudgeID: "j2", Total: 18},
		{JudgeID: "j3", Total: 12},
	}
	if got := InterviewScore(scores); got != 15 {
		t.Errorf("InterviewScore = %v, want 15", got)
	}
}

func TestInterviewScoreNoJudges(t *testing.T) {
	if got := InterviewScore(nil); got != 0 {
		t.Errorf("InterviewScore(nil) = %v, want 0", got)
	}
}

func TestSumCombiner(t *testing.T) {
	got := SumCombiner{}.Combine(15, []float64{3, 2.5})
	if got != 20.5 {
		t.Errorf("Combine = %v, want 20.5", got)
	}
	if got := (SumCombiner{}).Combine(15, nil); got != 15 {
		t.Errorf("Combine with no items = %v, want 15", got)
	}
}

func TestRecomputeIgnoresInactiveItems(t *testing.T) {
	c := &models.Candidate{
		Scores: []models.Score{
			{JudgeID: "j1", Total: 16},
			{JudgeID: "j2", Total: 14},
		},
		OtherScores: []models.OtherScore{
			{ItemID: "item-live", Value: 4},
			{ItemID: "item-dead", Value: 9},
			{ItemID: "item-gone", Value: 2},
		},
	}
	items := []*models.ScoreItem{
		{ID: "item-live", IsActive: true},
		{ID: "item-dead", IsActive: false},
	}

	Recompute(c, items, SumCombiner{})

	if c.TotalScore != 15 {
		t.Errorf("TotalScore = %v, want 15", c.TotalScore)
	}
	// Only the active item's 4 points count; the deactivated and deleted
	// items' recorded values are retained but excluded.
	if c.FinalScore != 19 {
		t.Errorf("FinalScore = %v, want 19", c.FinalScore)
	}
}

// weightless stand-in proving the combination rule is swappable.
type maxCombiner struct{}

func (maxCombiner) Combine(interviewScore float64, itemValues []float64) float64 {
	best := interviewScore
	for _, v := range itemValues {
		if v > best {
			best = v
		}
	}
	return best
}

func TestRecomputeUsesInjectedCombiner(t *testing.T) {
	c := &models.Candidate{
		Scores:      []models.Score{{JudgeID: "j1", Total: 10}},
		OtherScores: []models.OtherScore{{ItemID: "i1", Value: 42}},
	}
	items := []*models.ScoreItem{{ID: "i1", IsActive: true}}

	Recompute(c, items, maxCombiner{})

	if c.FinalScore != 42 {
		t.Errorf("FinalScore = %v, want 42 from injected combiner", c.FinalScore)
	}
}

package store

import (
	"testing"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
)

func TestScoreSubmissionScenario(t *testing.T) {
	s, _ := newTestStore(t)

	dim1, _ := s.CreateDimension("Communication", 10, 1)
	dim2, _ := s.CreateDimension("Expertise", 10, 2)
	judge, _ := s.CreateJudge("J1", "", "secret1")

	b1, _ := s.CreateBatch("B1", "")
	if _, err := s.StartBatch(b1.ID); err != nil {
		t.Fatalf("StartBatch: %v", err)
	}
	c1, _ := s.CreateCandidate("C1", "Candidate One", "")

	score, err := s.SubmitScore(c1.ID, judge.ID, map[string]float64{dim1.ID: 8, dim2.ID: 7})
	if err != nil {
		t.Fatalf("SubmitScore: %v", err)
	}
	if score.Total != 15 {
		t.Errorf("judge total = %v, want 15", score.Total)
	}

	got, _ := s.Candidate(c1.ID)
	if got.TotalScore != 15 {
		t.Errorf("interview score with one judge = %v, want 15", got.TotalScore)
	}
	if batch, _ := s.Batch(b1.ID); batch.Status != models.BatchActive {
		t.Errorf("batch status = %s, want active", batch.Status)
	}

	// Out-of-range submissions are rejected, not clamped, and leave the
	// prior submission intact.
	_, err = s.SubmitScore(c1.ID, judge.ID, map[string]float64{dim1.ID: 11})
	if apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("out-of-range submission: got %v, want validation error", err)
	}
	got, _ = s.Candidate(c1.ID)
	if len(got.Scores) != 1 || got.Scores[0].Values[dim1.ID] != 8 {
		t.Errorf("prior submission should be intact: %+v", got.Scores)
	}
}

func TestScoreSubmissionIdempotent(t *testing.T) {
	s, _ := newTestStore(t)

	dim, _ := s.CreateDimension("Overall", 100, 1)
	judge, _ := s.CreateJudge("J1", "", "secret1")
	c, _ := s.CreateCandidate("001", "Bob", "")

	if _, err := s.SubmitScore(c.ID, judge.ID, map[string]float64{dim.ID: 60}); err != nil {
		t.Fatalf("first submission: %v", err)
	}
	if _, err := s.SubmitScore(c.ID, judge.ID, map[string]float64{dim.ID: 75}); err != nil {
		t.Fatalf("second submission: %v", err)
	}

	got, _ := s.Candidate(c.ID)
	if len(got.Scores) != 1 {
		t.Fatalf("expected exactly one score record, got %d", len(got.Scores))
	}
	if got.Scores[0].Values[dim.ID] != 75 || got.TotalScore != 75 {
		t.Errorf("latest submission should win: %+v total=%v", got.Scores[0], got.TotalScore)
	}
}

func TestInterviewScoreIsMeanOfJudges(t *testing.T) {
	s, _ := newTestStore(t)

	dim, _ := s.CreateDimension("Overall", 10, 1)
	j1, _ := s.CreateJudge("J1", "", "secret1")
	j2, _ := s.CreateJudge("J2", "", "secret2")
	c, _ := s.CreateCandidate("001", "Bob", "")

	s.SubmitScore(c.ID, j1.ID, map[string]float64{dim.ID: 8})
	s.SubmitScore(c.ID, j2.ID, map[string]float64{dim.ID: 6})

	got, _ := s.Candidate(c.ID)
	if got.TotalScore != 7 {
		t.Errorf("interview score = %v, want mean 7", got.TotalScore)
	}
}

func TestSubmitScoreValidation(t *testing.T) {
	s, _ := newTestStore(t)

	dim, _ := s.CreateDimension("Overall", 10, 1)
	inactive, _ := s.CreateDimension("Old", 10, 2)
	active := false
	s.UpdateDimension(inactive.ID, RubricEntry{IsActive: &active})
	judge, _ := s.CreateJudge("J1", "", "secret1")
	c, _ := s.CreateCandidate("001", "Bob", "")

	tests := []struct {
		name        string
		candidateID string
		judgeID     string
		values      map[string]float64
		wantKind    apperr.Kind
	}{
		{"unknown candidate", "nope", judge.ID, map[string]float64{dim.ID: 5}, apperr.KindNotFound},
		{"unknown judge", c.ID, "nope", map[string]float64{dim.ID: 5}, apperr.KindNotFound},
		{"unknown dimension", c.ID, judge.ID, map[string]float64{"nope": 5}, apperr.KindNotFound},
		{"inactive dimension", c.ID, judge.ID, map[string]float64{inactive.ID: 5}, apperr.KindValidation},
		{"negative value", c.ID, judge.ID, map[string]float64{dim.ID: -1}, apperr.KindValidation},
		{"empty submission", c.ID, judge.ID, map[string]float64{}, apperr.KindValidation},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.SubmitScore(tc.candidateID, tc.judgeID, tc.values)
			if apperr.KindOf(err) != tc.wantKind {
				t.Errorf("got %v, want kind %v", err, tc.wantKind)
			}
		})
	}
}

func TestFinalScoreFoldsInScoreItems(t *testing.T) {
	s, _ := newTestStore(t)

	dim, _ := s.CreateDimension("Overall", 10, 1)
	judge, _ := s.CreateJudge("J1", "", "secret1")
	exam, _ := s.CreateScoreItem("Written exam", 100, 1)
	c, _ := s.CreateCandidate("001", "Bob", "")

	s.SubmitScore(c.ID, judge.ID, map[string]float64{dim.ID: 8})
	if _, err := s.SetOtherScore(c.ID, exam.ID, 90); err != nil {
		t.Fatalf("SetOtherScore: %v", err)
	}

	got, _ := s.Candidate(c.ID)
	if got.FinalScore != 98 {
		t.Errorf("final score = %v, want 98 (8 + 90 unweighted)", got.FinalScore)
	}

	// Deactivating the item removes its contribution.
	active := false
	if _, err := s.UpdateScoreItem(exam.ID, RubricEntry{IsActive: &active}); err != nil {
		t.Fatalf("UpdateScoreItem: %v", err)
	}
	got, _ = s.Candidate(c.ID)
	if got.FinalScore != 8 {
		t.Errorf("final score after deactivating item = %v, want 8", got.FinalScore)
	}

	// Out-of-range item values are rejected.
	if _, err := s.SetOtherScore(c.ID, exam.ID, 101); apperr.KindOf(err) != apperr.KindValidation {
		t.Errorf("over-max item value: got %v, want validation error", err)
	}
}

func TestBatchAddCandidatesAllOrNothing(t *testing.T) {
	s, _ := newTestStore(t)

	s.CreateCandidate("001", "Existing", "")

	rows := []CandidateRow{
		{Number: "002", Name: "New One"},
		{Number: "001", Name: "Duplicate"},
	}
	if _, err := s.BatchAddCandidates(rows); apperr.KindOf(err) != apperr.KindValidation {
		t.Fatalf("duplicate number import: got %v, want validation error", err)
	}
	if got := len(s.Candidates()); got != 1 {
		t.Errorf("rejected import must not be partially applied, have %d candidates", got)
	}

	added, err := s.BatchAddCandidates([]CandidateRow{
		{Number: "002", Name: "New One", Department: "Eng"},
		{Number: "003", Name: "New Two"},
	})
	if err != nil {
		t.Fatalf("BatchAddCandidates: %v", err)
	}
	if len(added) != 2 || len(s.Candidates()) != 3 {
		t.Errorf("import result: added=%d total=%d", len(added), len(s.Candidates()))
	}
}

func TestCompletedBatchRejectsNewScores(t *testing.T) {
	s, _ := newTestStore(t)

	dim, _ := s.CreateDimension("Overall", 10, 1)
	exam, _ := s.CreateScoreItem("Written exam", 100, 1)
	judge, _ := s.CreateJudge("J1", "", "secret1")

	b, _ := s.CreateBatch("B", "")
	if _, err := s.StartBatch(b.ID); err != nil {
		t.Fatalf("StartBatch: %v", err)
	}
	c, _ := s.CreateCandidate("001", "Bob", "")
	if _, err := s.SubmitScore(c.ID, judge.ID, map[string]float64{dim.ID: 7}); err != nil {
		t.Fatalf("SubmitScore in active batch: %v", err)
	}

	if _, err := s.CompleteBatch(b.ID); err != nil {
		t.Fatalf("CompleteBatch: %v", err)
	}

	// The completed batch's data stays readable, but new scores bounce.
	var e *apperr.Error
	_, err := s.SubmitScore(c.ID, judge.ID, map[string]float64{dim.ID: 9})
	if !asAppErr(err, &e) || e.Kind != apperr.KindConflict {
		t.Fatalf("score into completed batch: got %v, want conflict", err)
	}
	if e.Current != string(models.BatchCompleted) {
		t.Errorf("conflict current state = %q, want %q", e.Current, models.BatchCompleted)
	}
	if _, err := s.SetOtherScore(c.ID, exam.ID, 80); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("item value into completed batch: got %v, want conflict", err)
	}

	got, err := s.Candidate(c.ID)
	if err != nil {
		t.Fatalf("Candidate: %v", err)
	}
	if len(got.Scores) != 1 || got.Scores[0].Total != 7 {
		t.Errorf("completed batch's scores changed: %+v", got.Scores)
	}
}

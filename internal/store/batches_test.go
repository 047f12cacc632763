package store

import (
	"testing"

	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
)

func TestBatchLifecycle(t *testing.T) {
	s, _ := newTestStore(t)

	b, err := s.CreateBatch("Spring round", "")
	if err != nil {
		t.Fatalf("CreateBatch: %v", err)
	}
	if b.Status != models.BatchDraft {
		t.Fatalf("new batch status = %s, want draft", b.Status)
	}

	b, err = s.StartBatch(b.ID)
	if err != nil {
		t.Fatalf("StartBatch: %v", err)
	}
	if b.Status != models.BatchActive || b.StartedAt == nil {
		t.Errorf("started batch = %+v", b)
	}

	b, err = s.PauseBatch(b.ID)
	if err != nil {
		t.Fatalf("PauseBatch: %v", err)
	}
	if b.Status != models.BatchPaused {
		t.Errorf("paused batch status = %s", b.Status)
	}

	b, err = s.ResumeBatch(b.ID)
	if err != nil {
		t.Fatalf("ResumeBatch: %v", err)
	}
	if b.Status != models.BatchActive {
		t.Errorf("resumed batch status = %s", b.Status)
	}

	b, err = s.CompleteBatch(b.ID)
	if err != nil {
		t.Fatalf("CompleteBatch: %v", err)
	}
	if b.Status != models.BatchCompleted || b.CompletedAt == nil {
		t.Errorf("completed batch = %+v", b)
	}
	if _, ok := s.ActiveBatch(); ok {
		t.Error("completed batch should not stay active")
	}
}

func TestBatchIllegalTransitions(t *testing.T) {
	s, _ := newTestStore(t)

	b, _ := s.CreateBatch("B", "")

	// draft: only start is legal
	if _, err := s.PauseBatch(b.ID); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("pause from draft: got %v, want conflict", err)
	}
	if _, err := s.ResumeBatch(b.ID); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("resume from draft: got %v, want conflict", err)
	}
	if _, err := s.CompleteBatch(b.ID); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("complete from draft: got %v, want conflict", err)
	}

	s.StartBatch(b.ID)
	s.CompleteBatch(b.ID)

	// completed is terminal
	if _, err := s.StartBatch(b.ID); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("start from completed: got %v, want conflict", err)
	}

	var e *apperr.Error
	_, err := s.PauseBatch(b.ID)
	if !asAppErr(err, &e) || e.Current != string(models.BatchCompleted) || e.Requested != string(models.BatchPaused) {
		t.Errorf("conflict should carry current and requested state, got %v", err)
	}
}

func TestSingleActiveBatch(t *testing.T) {
	s, _ := newTestStore(t)

	b1, _ := s.CreateBatch("B1", "")
	b2, _ := s.CreateBatch("B2", "")

	if _, err := s.StartBatch(b1.ID); err != nil {
		t.Fatalf("StartBatch b1: %v", err)
	}
	_, err := s.StartBatch(b2.ID)
	if apperr.KindOf(err) != apperr.KindConflict {
		t.Fatalf("starting second batch: got %v, want conflict", err)
	}

	// The first batch is untouched by the rejected start.
	got, _ := s.Batch(b1.ID)
	if got.Status != models.BatchActive {
		t.Errorf("b1 status = %s after rejected second start", got.Status)
	}
	got2, _ := s.Batch(b2.ID)
	if got2.Status != models.BatchDraft {
		t.Errorf("b2 status = %s, want draft", got2.Status)
	}
}

func TestBatchIsolation(t *testing.T) {
	s, _ := newTestStore(t)

	// Unbatched space
	if _, err := s.CreateCandidate("001", "Legacy", ""); err != nil {
		t.Fatalf("CreateCandidate: %v", err)
	}

	b, _ := s.CreateBatch("B", "")
	s.StartBatch(b.ID)

	// Numbers are scoped per batch, so 001 is free again here.
	if _, err := s.CreateCandidate("001", "Batched", ""); err != nil {
		t.Fatalf("CreateCandidate in batch: %v", err)
	}

	working := s.Candidates()
	if len(working) != 1 || working[0].Name != "Batched" {
		t.Errorf("working set should be the active batch's slice: %+v", working)
	}

	s.CompleteBatch(b.ID)
	working = s.Candidates()
	if len(working) != 1 || working[0].Name != "Legacy" {
		t.Errorf("working set should fall back to the unbatched space: %+v", working)
	}

	// Completed batch data stays readable.
	batched, err := s.BatchCandidates(b.ID)
	if err != nil || len(batched) != 1 || batched[0].Name != "Batched" {
		t.Errorf("BatchCandidates after complete: %v %+v", err, batched)
	}
}

func TestActiveBatchSurvivesRestart(t *testing.T) {
	s, clock := newTestStore(t)

	b, _ := s.CreateBatch("B", "")
	if _, err := s.StartBatch(b.ID); err != nil {
		t.Fatalf("StartBatch: %v", err)
	}

	reloaded := New(s.path, s.backupDir, 10, zap.NewNop())
	reloaded.now = clock.now
	if err := reloaded.Open(); err != nil {
		t.Fatalf("Open: %v", err)
	}

	active, ok := reloaded.ActiveBatch()
	if !ok || active.ID != b.ID {
		t.Errorf("active batch not recovered after restart: %v %+v", ok, active)
	}
}

func TestDeleteBatch(t *testing.T) {
	s, _ := newTestStore(t)

	b, _ := s.CreateBatch("B", "")
	s.StartBatch(b.ID)
	s.CreateCandidate("001", "Bob", "")

	if err := s.DeleteBatch(b.ID); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("deleting active batch: got %v, want conflict", err)
	}

	// Once started a batch is history; only drafts can be deleted.
	s.CompleteBatch(b.ID)
	if err := s.DeleteBatch(b.ID); apperr.KindOf(err) != apperr.KindConflict {
		t.Errorf("deleting completed batch: got %v, want conflict", err)
	}

	draft, _ := s.CreateBatch("Draft", "")
	if err := s.DeleteBatch(draft.ID); err != nil {
		t.Fatalf("DeleteBatch draft: %v", err)
	}
	if _, err := s.Batch(draft.ID); apperr.KindOf(err) != apperr.KindNotFound {
		t.Errorf("deleted draft should be gone, got %v", err)
	}
}

func asAppErr(err error, target **apperr.Error) bool {
	if err == nil {
		return false
	}
	e, ok := err.(*apperr.Error)
	if !ok {
		return false
	}
	*target = e
	return true
}

package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
)

// Batch lifecycle: draft -> active -> {paused <-> active} -> completed.
// At most one batch is active at any time; starting a batch repoints the
// working set at its isolated candidate slice.

func (s *Store) Batches() []models.Batch {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Batch, 0, len(s.state.Batches))
	for _, b := range s.state.Batches {
		out = append(out, *b)
	}
	return out
}

func (s *Store) Batch(id string) (models.Batch, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.findBatchLocked(id)
	if b == nil {
		return models.Batch{}, apperr.NotFound("batch", id)
	}
	return *b, nil
}

// ActiveBatch returns the live batch, or false when none is active.
func (s *Store) ActiveBatch() (models.Batch, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b := s.activeBatchLocked()
	if b == nil {
		return models.Batch{}, false
	}
	return *b, true
}

func (s *Store) CreateBatch(name, description string) (models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Batch{}, apperr.Validationf("batch name is required")
	}

	b := &models.Batch{
		ID:          uuid.NewString(),
		Name:        name,
		Description: strings.TrimSpace(description),
		Status:      models.BatchDraft,
		CreatedAt:   s.now(),
	}
	s.state.Batches = append(s.state.Batches, b)

	if err := s.commitLocked(EventBatchCreated, *b); err != nil {
		return models.Batch{}, err
	}
	return *b, nil
}

func (s *Store) UpdateBatch(id string, name, description *string) (models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBatchLocked(id)
	if b == nil {
		return models.Batch{}, apperr.NotFound("batch", id)
	}
	if name != nil {
		n := strings.TrimSpace(*name)
		if n == "" {
			return models.Batch{}, apperr.Validationf("batch name cannot be empty")
		}
		b.Name = n
	}
	if description != nil {
		b.Description = strings.TrimSpace(*description)
	}

	if err := s.commitLocked(EventBatchUpdated, *b); err != nil {
		return models.Batch{}, err
	}
	return *b, nil
}

// DeleteBatch removes a draft batch and its isolated candidate slice. Once
// started a batch is part of the record: complete it to retire it, never
// delete it.
func (s *Store) DeleteBatch(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, b := range s.state.Batches {
		if b.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("batch", id)
	}
	if status := s.state.Batches[idx].Status; status != models.BatchDraft {
		return apperr.Conflict(string(status), "deleted",
			"only draft batches can be deleted")
	}

	s.state.Batches = append(s.state.Batches[:idx], s.state.Batches[idx+1:]...)
	kept := s.state.Candidates[:0]
	for _, c := range s.state.Candidates {
		if c.BatchID != id {
			kept = append(kept, c)
		}
	}
	s.state.Candidates = kept

	return s.commitLocked(EventBatchDeleted, map[string]string{"id": id})
}

// StartBatch activates a draft batch. Fails with Conflict if the batch is
// not draft or another batch is already active; the other batch's status is
// left untouched.
func (s *Store) StartBatch(id string) (models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBatchLocked(id)
	if b == nil {
		return models.Batch{}, apperr.NotFound("batch", id)
	}
	if active := s.activeBatchLocked(); active != nil && active.ID != id {
		return models.Batch{}, apperr.Conflict(string(active.Status), string(models.BatchActive),
			"batch "+active.Name+" is already active")
	}
	if b.Status != models.BatchDraft {
		return models.Batch{}, transitionConflict(b.Status, models.BatchActive)
	}

	now := s.now()
	b.Status = models.BatchActive
	b.StartedAt = &now
	s.state.ActiveBatchID = b.ID

	if err := s.commitLocked(EventBatchStarted, *b); err != nil {
		return models.Batch{}, err
	}
	return *b, nil
}

// PauseBatch pauses the active batch. The batch remains the working set;
// paused only blocks lifecycle-sensitive operations at the adapter level.
func (s *Store) PauseBatch(id string) (models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBatchLocked(id)
	if b == nil {
		return models.Batch{}, apperr.NotFound("batch", id)
	}
	if b.Status != models.BatchActive {
		return models.Batch{}, transitionConflict(b.Status, models.BatchPaused)
	}
	b.Status = models.BatchPaused

	if err := s.commitLocked(EventBatchPaused, *b); err != nil {
		return models.Batch{}, err
	}
	return *b, nil
}

func (s *Store) ResumeBatch(id string) (models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBatchLocked(id)
	if b == nil {
		return models.Batch{}, apperr.NotFound("batch", id)
	}
	if b.Status != models.BatchPaused {
		return models.Batch{}, transitionConflict(b.Status, models.BatchActive)
	}
	b.Status = models.BatchActive

	if err := s.commitLocked(EventBatchResumed, *b); err != nil {
		return models.Batch{}, err
	}
	return *b, nil
}

// CompleteBatch finishes an active or paused batch. Its data stays readable
// but it is no longer the target for new scores.
func (s *Store) CompleteBatch(id string) (models.Batch, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := s.findBatchLocked(id)
	if b == nil {
		return models.Batch{}, apperr.NotFound("batch", id)
	}
	if b.Status != models.BatchActive && b.Status != models.BatchPaused {
		return models.Batch{}, transitionConflict(b.Status, models.BatchCompleted)
	}

	now := s.now()
	b.Status = models.BatchCompleted
	b.CompletedAt = &now
	if s.state.ActiveBatchID == b.ID {
		s.state.ActiveBatchID = ""
	}

	if err := s.commitLocked(EventBatchCompleted, *b); err != nil {
		return models.Batch{}, err
	}
	return *b, nil
}

func (s *Store) findBatchLocked(id string) *models.Batch {
	for _, b := range s.state.Batches {
		if b.ID == id {
			return b
		}
	}
	return nil
}

func transitionConflict(current, requested models.BatchStatus) *apperr.Error {
	return apperr.Conflict(string(current), string(requested),
		"illegal batch transition from "+string(current)+" to "+string(requested))
}

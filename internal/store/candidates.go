package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/scoring"
)

// CandidateRow is one row of a roster import. Parsing the upload format is
// the adapter's job; the store only validates and applies rows.
type CandidateRow struct {
	Number     string `json:"number"`
	Name       string `json:"name"`
	Department string `json:"department"`
}

// CandidateUpdate carries optional field changes; nil means leave as is.
type CandidateUpdate struct {
	Number       *string                 `json:"number"`
	Name         *string                 `json:"name"`
	Department   *string                 `json:"department"`
	Status       *models.CandidateStatus `json:"status"`
	CurrentRound *int                    `json:"currentRound"`
}

// Candidates returns the current working set: the active batch's candidates,
// or the unbatched space when no batch is active.
func (s *Store) Candidates() []models.Candidate {
	s.mu.RLock()
	defer s.mu.RUnlock()
	set := s.workingSetLocked()
	out := make([]models.Candidate, 0, len(set))
	for _, c := range set {
		out = append(out, *c)
	}
	return out
}

// BatchCandidates returns the candidates belonging to one batch, which stays
// readable after the batch completes.
func (s *Store) BatchCandidates(batchID string) ([]models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.findBatchLocked(batchID) == nil {
		return nil, apperr.NotFound("batch", batchID)
	}
	out := []models.Candidate{}
	for _, c := range s.state.Candidates {
		if c.BatchID == batchID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *Store) Candidate(id string) (models.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c := s.findCandidateLocked(id)
	if c == nil {
		return models.Candidate{}, apperr.NotFound("candidate", id)
	}
	return *c, nil
}

// CreateCandidate adds a candidate to the working set. Numbers must be
// unique within the working set.
func (s *Store) CreateCandidate(number, name, department string) (models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	number = strings.TrimSpace(number)
	name = strings.TrimSpace(name)
	if number == "" || name == "" {
		return models.Candidate{}, apperr.Validationf("candidate number and name are required")
	}
	if s.numberTakenLocked(number, "") {
		return models.Candidate{}, apperr.Validationf("candidate number %q already exists", number)
	}

	now := s.now()
	c := &models.Candidate{
		ID:          uuid.NewString(),
		Number:      number,
		Name:        name,
		Department:  strings.TrimSpace(department),
		Status:      models.CandidateWaiting,
		BatchID:     s.state.ActiveBatchID,
		Scores:      []models.Score{},
		OtherScores: []models.OtherScore{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	s.state.Candidates = append(s.state.Candidates, c)

	if err := s.commitLocked(EventCandidateCreated, *c); err != nil {
		return models.Candidate{}, err
	}
	return *c, nil
}

// BatchAddCandidates validates all rows first and applies them as one unit;
// a single bad row rejects the whole import so nothing is partially applied.
func (s *Store) BatchAddCandidates(rows []CandidateRow) ([]models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(rows) == 0 {
		return nil, apperr.Validationf("no rows to import")
	}

	seen := make(map[string]bool, len(rows))
	for i, row := range rows {
		number := strings.TrimSpace(row.Number)
		name := strings.TrimSpace(row.Name)
		if number == "" || name == "" {
			return nil, apperr.Validationf("row %d: number and name are required", i+1)
		}
		if seen[number] {
			return nil, apperr.Validationf("row %d: duplicate number %q in import", i+1, number)
		}
		if s.numberTakenLocked(number, "") {
			return nil, apperr.Validationf("row %d: candidate number %q already exists", i+1, number)
		}
		seen[number] = true
	}

	now := s.now()
	added := make([]models.Candidate, 0, len(rows))
	for _, row := range rows {
		c := &models.Candidate{
			ID:          uuid.NewString(),
			Number:      strings.TrimSpace(row.Number),
			Name:        strings.TrimSpace(row.Name),
			Department:  strings.TrimSpace(row.Department),
			Status:      models.CandidateWaiting,
			BatchID:     s.state.ActiveBatchID,
			Scores:      []models.Score{},
			OtherScores: []models.OtherScore{},
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		s.state.Candidates = append(s.state.Candidates, c)
		added = append(added, *c)
	}

	if err := s.commitLocked(EventCandidatesAdded, added); err != nil {
		return nil, err
	}
	return added, nil
}

func (s *Store) UpdateCandidate(id string, upd CandidateUpdate) (models.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.findCandidateLocked(id)
	if c == nil {
		return models.Candidate{}, apperr.NotFound("candidate", id)
	}

	if upd.Number != nil {
		number := strings.TrimSpace(*upd.Number)
		if number == "" {
			return models.Candidate{}, apperr.Validationf("candidate number cannot be empty")
		}
		if number != c.Number && s.numberTakenLocked(number, c.ID) {
			return models.Candidate{}, apperr.Validationf("candidate number %q already exists", number)
		}
		c.Number = number
	}
	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return models.Candidate{}, apperr.Validationf("candidate name cannot be empty")
		}
		c.Name = name
	}
	if upd.Department != nil {
		c.Department = strings.TrimSpace(*upd.Department)
	}
	if upd.Status != nil {
		switch *upd.Status {
		case models.CandidateWaiting, models.CandidateInterviewing, models.CandidateCompleted:
			c.Status = *upd.Status
		default:
			return models.Candidate{}, apperr.Validationf("unknown candidate status %q", *upd.Status)
		}
	}
	if upd.CurrentRound != nil {
		if *upd.CurrentRound < 0 {
			return models.Candidate{}, apperr.Validationf("currentRound cannot be negative")
		}
		c.CurrentRound = *upd.CurrentRound
	}
	c.UpdatedAt = s.now()

	if err := s.commitLocked(EventCandidateUpdated, *c); err != nil {
		return models.Candidate{}, err
	}
	return *c, nil
}

func (s *Store) DeleteCandidate(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, c := range s.state.Candidates {
		if c.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("candidate", id)
	}
	s.state.Candidates = append(s.state.Candidates[:idx], s.state.Candidates[idx+1:]...)
	if s.state.Display.CurrentCandidateID == id {
		s.state.Display.CurrentCandidateID = ""
	}

	return s.commitLocked(EventCandidateDeleted, map[string]string{"id": id})
}

func (s *Store) findCandidateLocked(id string) *models.Candidate {
	for _, c := range s.state.Candidates {
		if c.ID == id {
			return c
		}
	}
	return nil
}

// numberTakenLocked checks number uniqueness within the working set only;
// different batches may reuse numbers.
func (s *Store) numberTakenLocked(number, excludeID string) bool {
	for _, c := range s.workingSetLocked() {
		if c.Number == number && c.ID != excludeID {
			return true
		}
	}
	return false
}

// recomputeLocked refreshes a candidate's derived scores against the
// current rubric.
func (s *Store) recomputeLocked(c *models.Candidate) {
	scoring.Recompute(c, s.state.ScoreItems, s.combiner)
}

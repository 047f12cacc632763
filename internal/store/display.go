package store

import (
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
)

func (s *Store) Display() models.DisplaySession {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Display
}

func (s *Store) SetStage(stage models.Stage) (models.DisplaySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch stage {
	case models.StageOpening, models.StageInterviewing, models.StageScoring:
	default:
		return models.DisplaySession{}, apperr.Validationf("unknown stage %q", stage)
	}
	s.state.Display.CurrentStage = stage

	if err := s.commitLocked(EventStageChanged, s.state.Display); err != nil {
		return models.DisplaySession{}, err
	}
	return s.state.Display, nil
}

// SetCurrentCandidate puts a candidate on the display and marks them
// interviewing. An empty id clears the display.
func (s *Store) SetCurrentCandidate(id string) (models.DisplaySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		c := s.findCandidateLocked(id)
		if c == nil {
			return models.DisplaySession{}, apperr.NotFound("candidate", id)
		}
		c.Status = models.CandidateInterviewing
		c.UpdatedAt = s.now()
	}
	s.state.Display.CurrentCandidateID = id

	if err := s.commitLocked(EventCandidateChanged, s.state.Display); err != nil {
		return models.DisplaySession{}, err
	}
	return s.state.Display, nil
}

// SetCurrentQuestion puts a question on the display. An empty id clears it.
func (s *Store) SetCurrentQuestion(id string) (models.DisplaySession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if id != "" {
		found := false
		for _, q := range s.state.Questions {
			if q.ID == id {
				found = true
				break
			}
		}
		if !found {
			return models.DisplaySession{}, apperr.NotFound("question", id)
		}
	}
	s.state.Display.CurrentQuestionID = id

	if err := s.commitLocked(EventQuestionChanged, s.state.Display); err != nil {
		return models.DisplaySession{}, err
	}
	return s.state.Display, nil
}

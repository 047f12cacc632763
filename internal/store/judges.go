package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
)

// JudgeUpdate carries optional field changes; nil means leave as is.
type JudgeUpdate struct {
	Name     *string `json:"name"`
	Title    *string `json:"title"`
	Password *string `json:"password"`
	IsActive *bool   `json:"isActive"`
}

func (s *Store) Judges() []models.Judge {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Judge, 0, len(s.state.Judges))
	for _, j := range s.state.Judges {
		out = append(out, *j)
	}
	return out
}

func (s *Store) Judge(id string) (models.Judge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	j := s.findJudgeLocked(id)
	if j == nil {
		return models.Judge{}, apperr.NotFound("judge", id)
	}
	return *j, nil
}

func (s *Store) CreateJudge(name, title, password string) (models.Judge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.Judge{}, apperr.Validationf("judge name is required")
	}
	if password == "" {
		return models.Judge{}, apperr.Validationf("judge password is required")
	}

	j := &models.Judge{
		ID:       uuid.NewString(),
		Name:     name,
		Title:    strings.TrimSpace(title),
		IsActive: true,
	}
	if err := j.SetPassword(password); err != nil {
		return models.Judge{}, apperr.Validationf("could not hash password: %v", err)
	}
	s.state.Judges = append(s.state.Judges, j)

	if err := s.commitLocked(EventJudgeCreated, j.Public()); err != nil {
		return models.Judge{}, err
	}
	return *j, nil
}

func (s *Store) UpdateJudge(id string, upd JudgeUpdate) (models.Judge, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	j := s.findJudgeLocked(id)
	if j == nil {
		return models.Judge{}, apperr.NotFound("judge", id)
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return models.Judge{}, apperr.Validationf("judge name cannot be empty")
		}
		j.Name = name
	}
	if upd.Title != nil {
		j.Title = strings.TrimSpace(*upd.Title)
	}
	if upd.Password != nil && *upd.Password != "" {
		if err := j.SetPassword(*upd.Password); err != nil {
			return models.Judge{}, apperr.Validationf("could not hash password: %v", err)
		}
	}
	if upd.IsActive != nil {
		j.IsActive = *upd.IsActive
	}

	if err := s.commitLocked(EventJudgeUpdated, j.Public()); err != nil {
		return models.Judge{}, err
	}
	return *j, nil
}

func (s *Store) DeleteJudge(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, j := range s.state.Judges {
		if j.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("judge", id)
	}
	// Scores submitted by the judge stay on the candidates; they reference
	// the judge by id only.
	s.state.Judges = append(s.state.Judges[:idx], s.state.Judges[idx+1:]...)

	return s.commitLocked(EventJudgeDeleted, map[string]string{"id": id})
}

// AuthenticateJudge checks the judge's secret and the isActive gate.
func (s *Store) AuthenticateJudge(id, password string) (models.Judge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j := s.findJudgeLocked(id)
	if j == nil {
		return models.Judge{}, apperr.NotFound("judge", id)
	}
	if !j.IsActive {
		return models.Judge{}, apperr.Validationf("judge account is disabled")
	}
	if !j.CheckPassword(password) {
		return models.Judge{}, apperr.Validationf("invalid credentials")
	}
	return *j, nil
}

func (s *Store) findJudgeLocked(id string) *models.Judge {
	for _, j := range s.state.Judges {
		if j.ID == id {
			return j
		}
	}
	return nil
}

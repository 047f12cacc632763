package store

import (
	"strings"

	"github.com/google/uuid"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
)

// RubricEntry carries optional field changes shared by dimensions and score
// items; nil means leave as is.
type RubricEntry struct {
	Name     *string  `json:"name"`
	MaxScore *float64 `json:"maxScore"`
	Order    *int     `json:"order"`
	IsActive *bool    `json:"isActive"`
}

func (s *Store) Dimensions() []models.InterviewDimension {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.InterviewDimension, 0, len(s.state.Dimensions))
	for _, d := range s.state.Dimensions {
		out = append(out, *d)
	}
	return out
}

func (s *Store) CreateDimension(name string, maxScore float64, order int) (models.InterviewDimension, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.InterviewDimension{}, apperr.Validationf("dimension name is required")
	}
	if maxScore <= 0 {
		return models.InterviewDimension{}, apperr.Validationf("dimension maxScore must be positive")
	}

	d := &models.InterviewDimension{
		ID:       uuid.NewString(),
		Name:     name,
		MaxScore: maxScore,
		Order:    order,
		IsActive: true,
	}
	s.state.Dimensions = append(s.state.Dimensions, d)

	if err := s.commitLocked(EventDimensionCreated, *d); err != nil {
		return models.InterviewDimension{}, err
	}
	return *d, nil
}

func (s *Store) UpdateDimension(id string, upd RubricEntry) (models.InterviewDimension, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var d *models.InterviewDimension
	for _, cur := range s.state.Dimensions {
		if cur.ID == id {
			d = cur
			break
		}
	}
	if d == nil {
		return models.InterviewDimension{}, apperr.NotFound("dimension", id)
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return models.InterviewDimension{}, apperr.Validationf("dimension name cannot be empty")
		}
		d.Name = name
	}
	if upd.MaxScore != nil {
		if *upd.MaxScore <= 0 {
			return models.InterviewDimension{}, apperr.Validationf("dimension maxScore must be positive")
		}
		d.MaxScore = *upd.MaxScore
	}
	if upd.Order != nil {
		d.Order = *upd.Order
	}
	if upd.IsActive != nil {
		d.IsActive = *upd.IsActive
	}

	if err := s.commitLocked(EventDimensionUpdated, *d); err != nil {
		return models.InterviewDimension{}, err
	}
	return *d, nil
}

func (s *Store) DeleteDimension(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, d := range s.state.Dimensions {
		if d.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("dimension", id)
	}
	s.state.Dimensions = append(s.state.Dimensions[:idx], s.state.Dimensions[idx+1:]...)

	return s.commitLocked(EventDimensionDeleted, map[string]string{"id": id})
}

func (s *Store) ScoreItems() []models.ScoreItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.ScoreItem, 0, len(s.state.ScoreItems))
	for _, item := range s.state.ScoreItems {
		out = append(out, *item)
	}
	return out
}

func (s *Store) CreateScoreItem(name string, maxScore float64, order int) (models.ScoreItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return models.ScoreItem{}, apperr.Validationf("score item name is required")
	}
	if maxScore <= 0 {
		return models.ScoreItem{}, apperr.Validationf("score item maxScore must be positive")
	}

	item := &models.ScoreItem{
		ID:       uuid.NewString(),
		Name:     name,
		MaxScore: maxScore,
		Order:    order,
		IsActive: true,
	}
	s.state.ScoreItems = append(s.state.ScoreItems, item)

	if err := s.commitLocked(EventScoreItemCreated, *item); err != nil {
		return models.ScoreItem{}, err
	}
	return *item, nil
}

func (s *Store) UpdateScoreItem(id string, upd RubricEntry) (models.ScoreItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var item *models.ScoreItem
	for _, cur := range s.state.ScoreItems {
		if cur.ID == id {
			item = cur
			break
		}
	}
	if item == nil {
		return models.ScoreItem{}, apperr.NotFound("score item", id)
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return models.ScoreItem{}, apperr.Validationf("score item name cannot be empty")
		}
		item.Name = name
	}
	if upd.MaxScore != nil {
		if *upd.MaxScore <= 0 {
			return models.ScoreItem{}, apperr.Validationf("score item maxScore must be positive")
		}
		item.MaxScore = *upd.MaxScore
	}
	if upd.Order != nil {
		item.Order = *upd.Order
	}
	if upd.IsActive != nil {
		item.IsActive = *upd.IsActive
	}

	// Toggling an item changes which values count toward final scores.
	for _, c := range s.state.Candidates {
		s.recomputeLocked(c)
	}

	if err := s.commitLocked(EventScoreItemUpdated, *item); err != nil {
		return models.ScoreItem{}, err
	}
	return *item, nil
}

func (s *Store) DeleteScoreItem(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, item := range s.state.ScoreItems {
		if item.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("score item", id)
	}
	s.state.ScoreItems = append(s.state.ScoreItems[:idx], s.state.ScoreItems[idx+1:]...)

	for _, c := range s.state.Candidates {
		s.recomputeLocked(c)
	}

	return s.commitLocked(EventScoreItemDeleted, map[string]string{"id": id})
}

func (s *Store) Questions() []models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Question, 0, len(s.state.Questions))
	for _, q := range s.state.Questions {
		out = append(out, *q)
	}
	return out
}

func (s *Store) CreateQuestion(title, body string, order int) (models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	title = strings.TrimSpace(title)
	if title == "" {
		return models.Question{}, apperr.Validationf("question title is required")
	}

	q := &models.Question{
		ID:       uuid.NewString(),
		Title:    title,
		Body:     body,
		Order:    order,
		IsActive: true,
	}
	s.state.Questions = append(s.state.Questions, q)

	if err := s.commitLocked(EventQuestionCreated, *q); err != nil {
		return models.Question{}, err
	}
	return *q, nil
}

func (s *Store) UpdateQuestion(id string, title, body *string, order *int, isActive *bool) (models.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var q *models.Question
	for _, cur := range s.state.Questions {
		if cur.ID == id {
			q = cur
			break
		}
	}
	if q == nil {
		return models.Question{}, apperr.NotFound("question", id)
	}

	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return models.Question{}, apperr.Validationf("question title cannot be empty")
		}
		q.Title = t
	}
	if body != nil {
		q.Body = *body
	}
	if order != nil {
		q.Order = *order
	}
	if isActive != nil {
		q.IsActive = *isActive
	}

	if err := s.commitLocked(EventQuestionUpdated, *q); err != nil {
		return models.Question{}, err
	}
	return *q, nil
}

func (s *Store) DeleteQuestion(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, q := range s.state.Questions {
		if q.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return apperr.NotFound("question", id)
	}
	s.state.Questions = append(s.state.Questions[:idx], s.state.Questions[idx+1:]...)
	if s.state.Display.CurrentQuestionID == id {
		s.state.Display.CurrentQuestionID = ""
	}

	return s.commitLocked(EventQuestionDeleted, map[string]string{"id": id})
}

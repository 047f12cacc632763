package store

import (
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
)

// The countdown is anchored to the wall clock: RemainingTime holds the
// value as of StartTime, and the live remaining is computed on read. No
// periodic tick, no accumulated rounding error.

// Timer returns the timer state with RemainingTime resolved to now.
func (s *Store) Timer() models.TimerState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.timerSnapshotLocked()
}

func (s *Store) timerSnapshotLocked() models.TimerState {
	t := s.state.Timer
	if t.IsRunning {
		t.RemainingTime = s.remainingLocked()
	}
	return t
}

// remainingLocked computes the live remaining seconds, clamped at zero.
func (s *Store) remainingLocked() int64 {
	t := &s.state.Timer
	if !t.IsRunning {
		return t.RemainingTime
	}
	elapsed := int64(s.now().Sub(t.StartTime).Seconds())
	remaining := t.RemainingTime - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// SetTimerDuration sets both total and remaining time and stops the timer.
func (s *Store) SetTimerDuration(seconds int64) (models.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seconds <= 0 {
		return models.TimerState{}, apperr.Validationf("timer duration must be positive")
	}
	t := &s.state.Timer
	t.TotalTime = seconds
	t.RemainingTime = seconds
	t.IsRunning = false
	t.IsPaused = false

	if err := s.commitLocked(EventTimerDurationSet, *t); err != nil {
		return models.TimerState{}, err
	}
	return *t, nil
}

func (s *Store) StartTimer() (models.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &s.state.Timer
	if t.IsRunning {
		return models.TimerState{}, apperr.Conflict("running", "running", "timer is already running")
	}
	if t.RemainingTime <= 0 {
		t.RemainingTime = t.TotalTime
	}
	t.IsRunning = true
	t.IsPaused = false
	t.StartTime = s.now()

	if err := s.commitLocked(EventTimerStarted, *t); err != nil {
		return models.TimerState{}, err
	}
	return *t, nil
}

// PauseTimer folds the elapsed time into RemainingTime and stops the clock.
func (s *Store) PauseTimer() (models.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &s.state.Timer
	if !t.IsRunning {
		return models.TimerState{}, apperr.Conflict(timerStateName(t), "paused", "timer is not running")
	}
	t.RemainingTime = s.remainingLocked()
	t.IsRunning = false
	t.IsPaused = true

	if err := s.commitLocked(EventTimerPaused, *t); err != nil {
		return models.TimerState{}, err
	}
	return *t, nil
}

// ResumeTimer restarts a paused countdown from a fresh wall-clock anchor.
func (s *Store) ResumeTimer() (models.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &s.state.Timer
	if !t.IsPaused {
		return models.TimerState{}, apperr.Conflict(timerStateName(t), "running", "timer is not paused")
	}
	t.IsRunning = true
	t.IsPaused = false
	t.StartTime = s.now()

	if err := s.commitLocked(EventTimerResumed, *t); err != nil {
		return models.TimerState{}, err
	}
	return *t, nil
}

// ResetTimer stops the countdown and restores remaining to the full total.
func (s *Store) ResetTimer() (models.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &s.state.Timer
	t.RemainingTime = t.TotalTime
	t.IsRunning = false
	t.IsPaused = false

	if err := s.commitLocked(EventTimerReset, *t); err != nil {
		return models.TimerState{}, err
	}
	return *t, nil
}

// ZeroTimer forces the countdown to zero without touching the configured
// total. Used by the operator to end a round early.
func (s *Store) ZeroTimer() (models.TimerState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &s.state.Timer
	t.RemainingTime = 0
	t.IsRunning = false
	t.IsPaused = false

	if err := s.commitLocked(EventTimerZeroed, *t); err != nil {
		return models.TimerState{}, err
	}
	return *t, nil
}

func timerStateName(t *models.TimerState) string {
	switch {
	case t.IsRunning:
		return "running"
	case t.IsPaused:
		return "paused"
	default:
		return "stopped"
	}
}

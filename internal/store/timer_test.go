package store

import (
	"testing"
	"time"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
)

func TestTimerCountdown(t *testing.T) {
	s, clock := newTestStore(t)

	if _, err := s.SetTimerDuration(120); err != nil {
		t.Fatalf("SetTimerDuration: %v", err)
	}
	if _, err := s.StartTimer(); err != nil {
		t.Fatalf("StartTimer: %v", err)
	}

	clock.advance(30 * time.Second)
	timer := s.Timer()
	if timer.RemainingTime != 90 {
		t.Errorf("remaining after 30s = %d, want 90", timer.RemainingTime)
	}
	if !timer.IsRunning {
		t.Error("timer should be running")
	}
}

func TestTimerPauseResumeKeepsRemaining(t *testing.T) {
	s, clock := newTestStore(t)

	s.SetTimerDuration(120)
	s.StartTimer()
	clock.advance(40 * time.Second)

	paused, err := s.PauseTimer()
	if err != nil {
		t.Fatalf("PauseTimer: %v", err)
	}
	if paused.RemainingTime != 80 {
		t.Errorf("remaining after pause = %d, want 80", paused.RemainingTime)
	}

	// A long pause does not consume time.
	clock.advance(10 * time.Minute)
	if got := s.Timer().RemainingTime; got != 80 {
		t.Errorf("remaining while paused = %d, want 80", got)
	}

	resumed, err := s.ResumeTimer()
	if err != nil {
		t.Fatalf("ResumeTimer: %v", err)
	}
	if resumed.RemainingTime != 80 {
		t.Errorf("remaining after resume = %d, want 80", resumed.RemainingTime)
	}
}

func TestTimerNeverNegative(t *testing.T) {
	s, clock := newTestStore(t)

	s.SetTimerDuration(10)
	s.StartTimer()
	clock.advance(time.Hour)

	if got := s.Timer().RemainingTime; got != 0 {
		t.Errorf("remaining after overrun = %d, want 0", got)
	}
	if paused, err := s.PauseTimer(); err != nil || paused.RemainingTime != 0 {
		t.Errorf("pause after overrun: %v remaining=%d", err, paused.RemainingTime)
	}
}

func TestTimerResetAndZero(t *testing.T) {
	s, clock := newTestStore(t)

	s.SetTimerDuration(60)
	s.StartTimer()
	clock.advance(20 * time.Second)

	reset, err := s.ResetTimer()
	if err != nil {
		t.Fatalf("ResetTimer: %v", err)
	}
	if reset.RemainingTime != 60 || reset.IsRunning || reset.IsPaused {
		t.Errorf("after reset: %+v", reset)
	}

	zeroed, err := s.ZeroTimer()
	if err != nil {
		t.Fatalf("ZeroTimer: %v", err)
	}
	if zeroed.RemainingTime != 0 {
		t.Errorf("zeroed remaining = %d", zeroed.RemainingTime)
	}
	if zeroed.TotalTime != 60 {
		t.Errorf("zero must not touch total, got %d", zeroed.TotalTime)
	}
}

func TestTimerIllegalStates(t *testing.T) {
	s, _ := newTestStore(t)

	if _, err := s.PauseTimer(); err == nil {
		t.Error("pausing a stopped timer should fail")
	}
	if _, err := s.ResumeTimer(); err == nil {
		t.Error("resuming a non-paused timer should fail")
	}
	s.StartTimer()
	if _, err := s.StartTimer(); err == nil {
		t.Error("starting a running timer should fail")
	}

	// The conflict names the timer's true state, not a generic one.
	s.PauseTimer()
	var e *apperr.Error
	if _, err := s.PauseTimer(); !asAppErr(err, &e) || e.Current != "paused" {
		t.Errorf("pausing a paused timer: got %v, want conflict with current state paused", err)
	}
}

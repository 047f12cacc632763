package store

import (
	"testing"
)

type recordingNotifier struct {
	events []string
}

func (n *recordingNotifier) Publish(eventType string, payload any) {
	n.events = append(n.events, eventType)
}

// Every committed mutation publishes exactly one event, in mutation order.
func TestMutationsPublishExactlyOneEvent(t *testing.T) {
	s, _ := newTestStore(t)
	rec := &recordingNotifier{}
	s.SetNotifier(rec)

	dim, _ := s.CreateDimension("Overall", 10, 1)
	judge, _ := s.CreateJudge("J1", "", "secret1")
	c, _ := s.CreateCandidate("001", "Bob", "")
	s.SubmitScore(c.ID, judge.ID, map[string]float64{dim.ID: 5})
	s.SetStage("scoring")
	s.StartTimer()

	want := []string{
		EventDimensionCreated,
		EventJudgeCreated,
		EventCandidateCreated,
		EventScoreSubmitted,
		EventStageChanged,
		EventTimerStarted,
	}
	if len(rec.events) != len(want) {
		t.Fatalf("published %d events, want %d: %v", len(rec.events), len(want), rec.events)
	}
	for i, typ := range want {
		if rec.events[i] != typ {
			t.Errorf("event %d = %s, want %s", i, rec.events[i], typ)
		}
	}

	// A rejected mutation publishes nothing.
	before := len(rec.events)
	if _, err := s.SubmitScore(c.ID, judge.ID, map[string]float64{dim.ID: 11}); err == nil {
		t.Fatal("expected validation error")
	}
	if len(rec.events) != before {
		t.Errorf("rejected mutation published an event: %v", rec.events[before:])
	}
}

package models

import "time"

type Stage string

const (
	StageOpening      Stage = "opening"
	StageInterviewing Stage = "interviewing"
	StageScoring      Stage = "scoring"
)

// DisplaySession is the singleton describing what the public display shows.
type DisplaySession struct {
	CurrentStage       Stage  `json:"currentStage"`
	CurrentQuestionID  string `json:"currentQuestionId"`
	CurrentCandidateID string `json:"currentCandidateId"`
}

// TimerState is the singleton countdown state. While running, the true
// remaining time is computed from StartTime on read; RemainingTime holds the
// value as of the last start/pause/reset so no periodic tick is needed.
type TimerState struct {
	TotalTime     int64     `json:"totalTime"`     // seconds
	RemainingTime int64     `json:"remainingTime"` // seconds, as of StartTime
	IsRunning     bool      `json:"isRunning"`
	IsPaused      bool      `json:"isPaused"`
	StartTime     time.Time `json:"startTime"`
}

// AppState is the single persisted document holding everything that must
// survive a restart.
type AppState struct {
	Candidates    []*Candidate          `json:"candidates"`
	Judges        []*Judge              `json:"judges"`
	Dimensions    []*InterviewDimension `json:"dimensions"`
	ScoreItems    []*ScoreItem          `json:"scoreItems"`
	Questions     []*Question           `json:"questions"`
	Batches       []*Batch              `json:"batches"`
	Display       DisplaySession        `json:"displaySession"`
	Timer         TimerState            `json:"timerState"`
	ActiveBatchID string                `json:"activeBatchId"`
	SavedAt       time.Time             `json:"savedAt"`
}

// NewAppState returns the default document used when no data file exists.
func NewAppState() *AppState {
	return &AppState{
		Candidates: []*Candidate{},
		Judges:     []*Judge{},
		Dimensions: []*InterviewDimension{},
		ScoreItems: []*ScoreItem{},
		Questions:  []*Question{},
		Batches:    []*Batch{},
		Display:    DisplaySession{CurrentStage: StageOpening},
		Timer:      TimerState{TotalTime: 300, RemainingTime: 300},
	}
}

package store

// Event types published on committed mutations. Clients use these to patch
// a warm cache; a full snapshot is re-fetched on reconnect.
const (
	EventCandidateCreated  = "candidate.created"
	EventCandidateUpdated  = "candidate.updated"
	EventCandidateDeleted  = "candidate.deleted"
	EventCandidatesAdded   = "candidate.imported"
	EventJudgeCreated      = "judge.created"
	EventJudgeUpdated      = "judge.updated"
	EventJudgeDeleted      = "judge.deleted"
	EventDimensionCreated  = "dimension.created"
	EventDimensionUpdated  = "dimension.updated"
	EventDimensionDeleted  = "dimension.deleted"
	EventScoreItemCreated  = "scoreitem.created"
	EventScoreItemUpdated  = "scoreitem.updated"
	EventScoreItemDeleted  = "scoreitem.deleted"
	EventQuestionCreated   = "question.created"
	EventQuestionUpdated   = "question.updated"
	EventQuestionDeleted   = "question.deleted"
	EventScoreSubmitted    = "score.submitted"
	EventOtherScoreSet     = "otherscore.set"
	EventBatchCreated      = "batch.created"
	EventBatchUpdated      = "batch.updated"
	EventBatchDeleted      = "batch.deleted"
	EventBatchStarted      = "batch.started"
	EventBatchPaused       = "batch.paused"
	EventBatchResumed      = "batch.resumed"
	EventBatchCompleted    = "batch.completed"
	EventStageChanged      = "stage.changed"
	EventCandidateChanged  = "display.candidate"
	EventQuestionChanged   = "display.question"
	EventTimerStarted      = "timer.started"
	EventTimerPaused       = "timer.paused"
	EventTimerResumed      = "timer.resumed"
	EventTimerReset        = "timer.reset"
	EventTimerZeroed       = "timer.zeroed"
	EventTimerDurationSet  = "timer.duration"
	EventBackupRestored    = "backup.restored"
)

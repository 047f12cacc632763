package handlers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

type ScoreHandler struct {
	log   *zap.Logger
	store *store.Store
}

func NewScoreHandler(log *zap.Logger, st *store.Store) *ScoreHandler {
	return &ScoreHandler{log: log, store: st}
}

// Submit records the logged-in judge's marks for one candidate. The judge
// identity comes from the session, never from the request body.
func (h *ScoreHandler) Submit(c *gin.Context) {
	session := sessions.Default(c)
	judgeID, ok := session.Get(SessionJudgeIDKey).(string)
	if !ok || judgeID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "judge login required"})
		return
	}

	var req struct {
		CandidateID string             `json:"candidateId"`
		Values      map[string]float64 `json:"values"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	score, err := h.store.SubmitScore(req.CandidateID, judgeID, req.Values)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.log.Info("Score submitted",
		zap.String("candidateID", req.CandidateID),
		zap.String("judgeID", judgeID),
		zap.Float64("total", score.Total))
	c.JSON(http.StatusOK, score)
}

// SetOtherScore records an auxiliary score value for a candidate, e.g. an
// imported exam result. Operator only.
func (h *ScoreHandler) SetOtherScore(c *gin.Context) {
	var req struct {
		CandidateID string  `json:"candidateId"`
		ItemID      string  `json:"itemId"`
		Value       float64 `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	candidate, err := h.store.SetOtherScore(req.CandidateID, req.ItemID, req.Value)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

// DisplayHandler drives what the public display shows.
type DisplayHandler struct {
	log   *zap.Logger
	store *store.Store
}

func NewDisplayHandler(log *zap.Logger, st *store.Store) *DisplayHandler {
	return &DisplayHandler{log: log, store: st}
}

func (h *DisplayHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Display())
}

func (h *DisplayHandler) SetStage(c *gin.Context) {
	var req struct {
		Stage models.Stage `json:"stage"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	display, err := h.store.SetStage(req.Stage)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, display)
}

func (h *DisplayHandler) SetCandidate(c *gin.Context) {
	var req struct {
		CandidateID string `json:"candidateId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	display, err := h.store.SetCurrentCandidate(req.CandidateID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, display)
}

func (h *DisplayHandler) SetQuestion(c *gin.Context) {
	var req struct {
		QuestionID string `json:"questionId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	display, err := h.store.SetCurrentQuestion(req.QuestionID)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, display)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

type QuestionHandler struct {
	log   *zap.Logger
	store *store.Store
}

func NewQuestionHandler(log *zap.Logger, st *store.Store) *QuestionHandler {
	return &QuestionHandler{log: log, store: st}
}

func (h *QuestionHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Questions())
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var req struct {
		Title string `json:"title"`
		Body  string `json:"body"`
		Order int    `json:"order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	q, err := h.store.CreateQuestion(req.Title, req.Body, req.Order)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, q)
}

func (h *QuestionHandler) Update(c *gin.Context) {
	var req struct {
		Title    *string `json:"title"`
		Body     *string `json:"body"`
		Order    *int    `json:"order"`
		IsActive *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	q, err := h.store.UpdateQuestion(c.Param("id"), req.Title, req.Body, req.Order, req.IsActive)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, q)
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteQuestion(c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

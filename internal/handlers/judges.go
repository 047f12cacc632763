package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

type JudgeHandler struct {
	log   *zap.Logger
	store *store.Store
}

func NewJudgeHandler(log *zap.Logger, st *store.Store) *JudgeHandler {
	return &JudgeHandler{log: log, store: st}
}

func (h *JudgeHandler) List(c *gin.Context) {
	judges := h.store.Judges()
	out := make([]models.PublicJudge, 0, len(judges))
	for _, j := range judges {
		out = append(out, j.Public())
	}
	c.JSON(http.StatusOK, out)
}

func (h *JudgeHandler) Create(c *gin.Context) {
	var req struct {
		Name     string `json:"name"`
		Title    string `json:"title"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	judge, err := h.store.CreateJudge(req.Name, req.Title, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, judge.Public())
}

func (h *JudgeHandler) Update(c *gin.Context) {
	var upd store.JudgeUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	judge, err := h.store.UpdateJudge(c.Param("id"), upd)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, judge.Public())
}

func (h *JudgeHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteJudge(c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

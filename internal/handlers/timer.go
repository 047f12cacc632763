package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

type TimerHandler struct {
	log   *zap.Logger
	store *store.Store
}

func NewTimerHandler(log *zap.Logger, st *store.Store) *TimerHandler {
	return &TimerHandler{log: log, store: st}
}

// Get returns the timer with remaining time resolved to now; clients can
// read it at any moment without the engine ticking in the background.
func (h *TimerHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Timer())
}

func (h *TimerHandler) SetDuration(c *gin.Context) {
	var req struct {
		Seconds int64 `json:"seconds"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	h.respond(c, func() (models.TimerState, error) { return h.store.SetTimerDuration(req.Seconds) })
}

func (h *TimerHandler) Start(c *gin.Context) {
	h.respond(c, h.store.StartTimer)
}

func (h *TimerHandler) Pause(c *gin.Context) {
	h.respond(c, h.store.PauseTimer)
}

func (h *TimerHandler) Resume(c *gin.Context) {
	h.respond(c, h.store.ResumeTimer)
}

func (h *TimerHandler) Reset(c *gin.Context) {
	h.respond(c, h.store.ResetTimer)
}

// Zero force-ends the countdown without touching the configured total.
func (h *TimerHandler) Zero(c *gin.Context) {
	h.respond(c, h.store.ZeroTimer)
}

func (h *TimerHandler) respond(c *gin.Context, op func() (models.TimerState, error)) {
	state, err := op()
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

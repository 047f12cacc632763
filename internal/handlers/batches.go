package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

type BatchHandler struct {
	log   *zap.Logger
	store *store.Store
}

func NewBatchHandler(log *zap.Logger, st *store.Store) *BatchHandler {
	return &BatchHandler{log: log, store: st}
}

func (h *BatchHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Batches())
}

func (h *BatchHandler) Get(c *gin.Context) {
	batch, err := h.store.Batch(c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

// Candidates lists a batch's isolated candidate slice, including completed
// batches whose data stays readable.
func (h *BatchHandler) Candidates(c *gin.Context) {
	candidates, err := h.store.BatchCandidates(c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}

func (h *BatchHandler) Create(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	batch, err := h.store.CreateBatch(req.Name, req.Description)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, batch)
}

func (h *BatchHandler) Update(c *gin.Context) {
	var req struct {
		Name        *string `json:"name"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	batch, err := h.store.UpdateBatch(c.Param("id"), req.Name, req.Description)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *BatchHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteBatch(c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *BatchHandler) Start(c *gin.Context) {
	batch, err := h.store.StartBatch(c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.log.Info("Batch started", zap.String("batchID", batch.ID), zap.String("name", batch.Name))
	c.JSON(http.StatusOK, batch)
}

func (h *BatchHandler) Pause(c *gin.Context) {
	batch, err := h.store.PauseBatch(c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *BatchHandler) Resume(c *gin.Context) {
	batch, err := h.store.ResumeBatch(c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, batch)
}

func (h *BatchHandler) Complete(c *gin.Context) {
	batch, err := h.store.CompleteBatch(c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.log.Info("Batch completed", zap.String("batchID", batch.ID), zap.String("name", batch.Name))
	c.JSON(http.StatusOK, batch)
}

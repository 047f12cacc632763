package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

type CandidateHandler struct {
	log   *zap.Logger
	store *store.Store
}

func NewCandidateHandler(log *zap.Logger, st *store.Store) *CandidateHandler {
	return &CandidateHandler{log: log, store: st}
}

// List returns the current working set (active batch or unbatched space).
func (h *CandidateHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Candidates())
}

func (h *CandidateHandler) Get(c *gin.Context) {
	candidate, err := h.store.Candidate(c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) Create(c *gin.Context) {
	var req struct {
		Number     string `json:"number"`
		Name       string `json:"name"`
		Department string `json:"department"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	candidate, err := h.store.CreateCandidate(req.Number, req.Name, req.Department)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, candidate)
}

// Import adds a parsed roster in one shot. Parsing the uploaded
// spreadsheet into rows happens client-side or in a separate tool; the
// engine only sees validated row data.
func (h *CandidateHandler) Import(c *gin.Context) {
	var req struct {
		Rows []store.CandidateRow `json:"rows"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	added, err := h.store.BatchAddCandidates(req.Rows)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	h.log.Info("Imported candidates", zap.Int("count", len(added)))
	c.JSON(http.StatusCreated, gin.H{"added": len(added), "candidates": added})
}

func (h *CandidateHandler) Update(c *gin.Context) {
	var upd store.CandidateUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	candidate, err := h.store.UpdateCandidate(c.Param("id"), upd)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, candidate)
}

func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.store.DeleteCandidate(c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

// RubricHandler covers interview dimensions and auxiliary score items.
type RubricHandler struct {
	log   *zap.Logger
	store *store.Store
}

func NewRubricHandler(log *zap.Logger, st *store.Store) *RubricHandler {
	return &RubricHandler{log: log, store: st}
}

type rubricCreateRequest struct {
	Name     string  `json:"name"`
	MaxScore float64 `json:"maxScore"`
	Order    int     `json:"order"`
}

func (h *RubricHandler) ListDimensions(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Dimensions())
}

func (h *RubricHandler) CreateDimension(c *gin.Context) {
	var req rubricCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dim, err := h.store.CreateDimension(req.Name, req.MaxScore, req.Order)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, dim)
}

func (h *RubricHandler) UpdateDimension(c *gin.Context) {
	var upd store.RubricEntry
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	dim, err := h.store.UpdateDimension(c.Param("id"), upd)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dim)
}

func (h *RubricHandler) DeleteDimension(c *gin.Context) {
	if err := h.store.DeleteDimension(c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RubricHandler) ListScoreItems(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.ScoreItems())
}

func (h *RubricHandler) CreateScoreItem(c *gin.Context) {
	var req rubricCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	item, err := h.store.CreateScoreItem(req.Name, req.MaxScore, req.Order)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *RubricHandler) UpdateScoreItem(c *gin.Context) {
	var upd store.RubricEntry
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	item, err := h.store.UpdateScoreItem(c.Param("id"), upd)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *RubricHandler) DeleteScoreItem(c *gin.Context) {
	if err := h.store.DeleteScoreItem(c.Param("id")); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

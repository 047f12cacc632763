package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
)

// writeError maps the engine's error taxonomy onto HTTP statuses. Conflict
// responses include both sides of the conflict so the operator UI can
// explain what happened.
func writeError(c *gin.Context, log *zap.Logger, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		log.Error("Unexpected error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	body := gin.H{"error": e.Msg, "kind": e.Kind.String()}
	switch e.Kind {
	case apperr.KindValidation:
		c.JSON(http.StatusBadRequest, body)
	case apperr.KindNotFound:
		c.JSON(http.StatusNotFound, body)
	case apperr.KindConflict:
		body["currentState"] = e.Current
		body["requestedState"] = e.Requested
		c.JSON(http.StatusConflict, body)
	case apperr.KindPersistence:
		log.Error("Persistence failure", zap.Error(err))
		c.JSON(http.StatusInternalServerError, body)
	default:
		log.Error("Unclassified error", zap.Error(err))
		c.JSON(http.StatusInternalServerError, body)
	}
}

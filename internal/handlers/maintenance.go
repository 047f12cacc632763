package handlers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

// MaintenanceHandler covers backup, restore and data export.
type MaintenanceHandler struct {
	log   *zap.Logger
	store *store.Store
}

func NewMaintenanceHandler(log *zap.Logger, st *store.Store) *MaintenanceHandler {
	return &MaintenanceHandler{log: log, store: st}
}

func (h *MaintenanceHandler) CreateBackup(c *gin.Context) {
	name, err := h.store.CreateBackup()
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": name})
}

func (h *MaintenanceHandler) ListBackups(c *gin.Context) {
	backups, err := h.store.ListBackups()
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, backups)
}

func (h *MaintenanceHandler) RestoreBackup(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := h.store.RestoreBackup(req.Name); err != nil {
		writeError(c, h.log, err)
		return
	}
	h.log.Info("Backup restored via API", zap.String("name", req.Name))
	c.Status(http.StatusOK)
}

// Export writes a standalone snapshot and serves it as a download. Exports
// are independent of the backup rotation.
func (h *MaintenanceHandler) Export(c *gin.Context) {
	name := fmt.Sprintf("export-%s.json", time.Now().UTC().Format("20060102-150405"))
	path := filepath.Join(os.TempDir(), name)
	defer os.Remove(path)

	if err := h.store.ExportData(path); err != nil {
		writeError(c, h.log, err)
		return
	}
	c.FileAttachment(path, name)
}

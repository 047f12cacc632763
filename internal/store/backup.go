package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
)

const backupPrefix = "backup-"

// BackupInfo describes one backup file in the rotation.
type BackupInfo struct {
	Name      string    `json:"name"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateBackup copies the live document into the backup directory under a
// timestamped name and prunes the rotation down to the retention count,
// oldest first.
func (s *Store) CreateBackup() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Flush in-memory state first so the backup reflects it.
	if err := s.saveLocked(); err != nil {
		return "", apperr.Persistence(err, "failed to flush state before backup")
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", apperr.Persistence(err, "failed to read data file for backup")
	}

	name := fmt.Sprintf("%s%s.json", backupPrefix, s.now().UTC().Format("20060102-150405.000000000"))
	if err := os.WriteFile(filepath.Join(s.backupDir, name), data, 0644); err != nil {
		return "", apperr.Persistence(err, "failed to write backup")
	}

	if err := s.pruneBackupsLocked(); err != nil {
		s.log.Warn("Failed to prune old backups", zap.Error(err))
	}

	s.log.Info("Backup created", zap.String("name", name))
	return name, nil
}

// ListBackups returns the rotation sorted newest first.
func (s *Store) ListBackups() ([]BackupInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.listBackupsLocked()
}

func (s *Store) listBackupsLocked() ([]BackupInfo, error) {
	entries, err := os.ReadDir(s.backupDir)
	if err != nil {
		return nil, apperr.Persistence(err, "failed to read backup directory")
	}

	out := []BackupInfo{}
	for _, e := range entries {
		if e.IsDir() || !strings.HasPrefix(e.Name(), backupPrefix) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, BackupInfo{Name: e.Name(), Size: info.Size(), CreatedAt: info.ModTime()})
	}
	// Names embed a fixed-width UTC timestamp, so name order is creation
	// order.
	sort.Slice(out, func(i, j int) bool { return out[i].Name > out[j].Name })
	return out, nil
}

func (s *Store) pruneBackupsLocked() error {
	backups, err := s.listBackupsLocked()
	if err != nil {
		return err
	}
	for _, b := range backups[min(len(backups), s.retention):] {
		if err := os.Remove(filepath.Join(s.backupDir, b.Name)); err != nil {
			return err
		}
		s.log.Debug("Pruned old backup", zap.String("name", b.Name))
	}
	return nil
}

// RestoreBackup replaces the live document with the named backup and
// reloads in-memory state from it.
func (s *Store) RestoreBackup(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if name != filepath.Base(name) || !strings.HasPrefix(name, backupPrefix) {
		return apperr.Validationf("invalid backup name %q", name)
	}
	src := filepath.Join(s.backupDir, name)
	data, err := os.ReadFile(src)
	if err != nil {
		if os.IsNotExist(err) {
			return apperr.NotFound("backup", name)
		}
		return apperr.Persistence(err, "failed to read backup")
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".restore-*.json.tmp")
	if err != nil {
		return apperr.Persistence(err, "failed to stage restore")
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return apperr.Persistence(err, "failed to stage restore")
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return apperr.Persistence(err, "failed to stage restore")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return apperr.Persistence(err, "failed to replace data file")
	}

	if err := s.loadLocked(); err != nil {
		return apperr.Persistence(err, "failed to reload restored state")
	}

	s.log.Info("State restored from backup", zap.String("name", name))
	if s.notifier != nil {
		s.notifier.Publish(EventBackupRestored, map[string]string{"name": name})
	}
	return nil
}

// ExportData writes a standalone snapshot of the current document to path.
// Exports are independent of the backup rotation.
func (s *Store) ExportData(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.saveLocked(); err != nil {
		return apperr.Persistence(err, "failed to flush state before export")
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return apperr.Persistence(err, "failed to read data file for export")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return apperr.Persistence(err, "failed to create export directory")
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return apperr.Persistence(err, "failed to write export")
	}
	s.log.Info("State exported", zap.String("path", path))
	return nil
}

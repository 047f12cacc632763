// Package store owns the authoritative in-memory session state and its
// persistence. All mutations are serialized behind one RWMutex, are written
// to disk before they are considered committed, and publish exactly one
// event through the configured Notifier on success.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/apperr"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/models"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/scoring"
)

// Notifier receives one event per committed mutation. The broadcast hub
// implements it; a nil notifier drops events (used in tests).
type Notifier interface {
	Publish(eventType string, payload any)
}

// Store is the persistent engine state. Construct with New, then Open.
type Store struct {
	mu        sync.RWMutex
	path      string
	backupDir string
	retention int
	log       *zap.Logger
	combiner  scoring.Combiner
	notifier  Notifier

	// now is the clock used for timestamps and the timer anchor;
	// overridden in tests.
	now func() time.Time

	state *models.AppState
}

func New(dataFile, backupDir string, retention int, log *zap.Logger) *Store {
	if retention <= 0 {
		retention = 10
	}
	return &Store{
		path:      dataFile,
		backupDir: backupDir,
		retention: retention,
		log:       log,
		combiner:  scoring.SumCombiner{},
		now:       time.Now,
		state:     models.NewAppState(),
	}
}

// SetNotifier wires the broadcast hub in. Must be called before serving
// requests; not safe to call concurrently with mutations.
func (s *Store) SetNotifier(n Notifier) { s.notifier = n }

// SetCombiner swaps the score-item combination policy.
func (s *Store) SetCombiner(c scoring.Combiner) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.combiner = c
}

// Open loads the data file if present, otherwise starts from defaults and
// writes the initial document. If a batch was active when the process last
// stopped, it stays the live working set without manual intervention.
func (s *Store) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("could not create data directory: %w", err)
		}
	}
	if err := os.MkdirAll(s.backupDir, 0755); err != nil {
		return fmt.Errorf("could not create backup directory: %w", err)
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		s.state = models.NewAppState()
		if err := s.saveLocked(); err != nil {
			return err
		}
		s.log.Info("No data file found, initialized defaults", zap.String("path", s.path))
		return nil
	}

	if err := s.loadLocked(); err != nil {
		return err
	}

	if active := s.activeBatchLocked(); active != nil {
		s.log.Info("Recovered active batch after restart",
			zap.String("batchID", active.ID),
			zap.String("name", active.Name))
	}
	return nil
}

// Close writes the current state one last time.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) loadLocked() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return fmt.Errorf("could not read data file: %w", err)
	}
	state := &models.AppState{}
	if err := json.Unmarshal(data, state); err != nil {
		return fmt.Errorf("could not parse data file %s: %w", s.path, err)
	}
	s.state = state
	return nil
}

// saveLocked writes the whole document atomically: marshal to a temp file
// in the same directory, then rename over the live file. A crash mid-write
// never corrupts the live document.
func (s *Store) saveLocked() error {
	s.state.SavedAt = s.now()
	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".state-*.json.tmp")
	if err != nil {
		return fmt.Errorf("could not create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("could not write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("could not replace data file: %w", err)
	}
	return nil
}

// commitLocked persists the mutated state and publishes its event. On a
// failed write the in-memory state is rolled back to the last saved copy so
// memory and disk never diverge, and a Persistence error is returned.
func (s *Store) commitLocked(eventType string, payload any) error {
	if err := s.saveLocked(); err != nil {
		s.log.Error("Failed to persist state, rolling back",
			zap.String("event", eventType), zap.Error(err))
		if loadErr := s.loadLocked(); loadErr != nil {
			s.log.Error("Rollback reload failed", zap.Error(loadErr))
		}
		return apperr.Persistence(err, "failed to persist state")
	}
	if s.notifier != nil {
		s.notifier.Publish(eventType, payload)
	}
	return nil
}

func (s *Store) activeBatchLocked() *models.Batch {
	if s.state.ActiveBatchID == "" {
		return nil
	}
	for _, b := range s.state.Batches {
		if b.ID == s.state.ActiveBatchID {
			return b
		}
	}
	return nil
}

// workingSetLocked returns the candidates of the active batch, or the
// unbatched space when no batch is active.
func (s *Store) workingSetLocked() []*models.Candidate {
	var out []*models.Candidate
	for _, c := range s.state.Candidates {
		if c.BatchID == s.state.ActiveBatchID {
			out = append(out, c)
		}
	}
	return out
}

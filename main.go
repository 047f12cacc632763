package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/a573364948/trainee-evaluation-system-sub001/internal/config"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/hub"
	logger "github.com/a573364948/trainee-evaluation-system-sub001/internal/logging"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/router"
	"github.com/a573364948/trainee-evaluation-system-sub001/internal/store"
)

func main() {
	// Initialize Logger
	log, err := logger.Init("logs")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Load configuration
	cfg, err := config.Load(".", log)
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}
	// Open the persistent store; an active batch from a previous run is
	// recovered here.
	st := store.New(cfg.Storage.DataFile, cfg.Storage.BackupDir, cfg.Storage.BackupRetention, log)
	if err := st.Open(); err != nil {
		log.Fatal("Failed to open store", zap.Error(err))
	}

	// Broadcast hub: every committed mutation is published through it.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h := hub.New(log, cfg.Hub.HeartbeatInterval, cfg.Hub.StaleTimeout, cfg.Hub.QueueSize)
	st.SetNotifier(h)
	go h.Run(ctx)

	r := router.Setup(log, cfg, st, h)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: r,
	}

	go func() {
		log.Info("Server listening on http://localhost:" + cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to run server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server shutdown failed", zap.Error(err))
	}
	if err := st.Close(); err != nil {
		log.Error("Final state save failed", zap.Error(err))
	}
}

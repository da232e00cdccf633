package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	chatusecases "parlor/internal/application/chat/usecases"
	"parlor/internal/infrastructure/config"
	"parlor/internal/infrastructure/database"
	"parlor/internal/infrastructure/email"
	"parlor/internal/infrastructure/repository"
	"parlor/internal/infrastructure/scheduler"
	"parlor/internal/shared/logger"
)

// The worker runs the expiry sweep on its own, for deployments where the API
// servers should not compete over background work. Running it alongside the
// in-server scheduler is safe: every sweep step is a guarded update, so two
// reapers only cost redundant queries.
func main() {
	env := "development"
	if len(os.Args) > 1 {
		env = os.Args[1]
	}
	if envVar := os.Getenv("ENV"); envVar != "" {
		env = envVar
	}

	cfg, err := config.Load(env)
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	log := logger.NewLogger()
	log.Infow("starting session reaper worker", "environment", env)

	if err := database.Init(&cfg.Database); err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer database.Close()

	sessionRepo := repository.NewChatSessionRepository(database.Get())

	var notifier chatusecases.SessionNotifier
	if cfg.Email.Enabled {
		notifier = email.NewSMTPNotifier(&cfg.Email, cfg.Server.BaseURL)
	}

	reconcileUC := chatusecases.NewReconcileQueueUseCase(sessionRepo, notifier, &cfg.Chat, log)
	reapUC := chatusecases.NewReapSessionsUseCase(sessionRepo, reconcileUC, &cfg.Chat, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reaper := scheduler.NewReaperScheduler(reapUC, cfg.Chat.ReaperInterval(), log)
	reaper.Start(ctx)

	log.Infow("session reaper worker started", "interval", cfg.Chat.ReaperInterval().String())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)
	reaper.Stop()
	log.Infow("session reaper worker stopped")
}

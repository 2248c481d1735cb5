package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"chatwarden/internal/application/reconciler"
	"chatwarden/internal/infrastructure/config"
	"chatwarden/internal/infrastructure/database"
	"chatwarden/internal/infrastructure/repository"
	"chatwarden/internal/infrastructure/scheduler"
	"chatwarden/internal/shared/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	log := logger.NewLogger()
	log.Infow("starting reconciliation worker",
		"interval", cfg.Service.Interval(),
		"lookback", cfg.Service.UpdatesLookback())

	if err := database.Init(&cfg.Database); err != nil {
		log.Fatalw("failed to initialize database", "error", err)
	}
	defer database.Close()

	db := database.Get()
	engine := reconciler.NewEngine(
		repository.NewOwnerRepository(db, log),
		repository.NewBotRepository(db, log),
		repository.NewChatRepository(db, log),
		repository.NewEmployeeRepository(db, log),
		repository.NewChatEmployeeRepository(db, log),
		reconciler.NewClientFactory(cfg.Service.TelegramAPIHost),
		reconciler.Config{
			Lookback:    cfg.Service.UpdatesLookback(),
			PollTimeout: cfg.Service.PollTimeoutSeconds,
		},
		log,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager, err := scheduler.NewManager(log)
	if err != nil {
		log.Fatalw("failed to create scheduler", "error", err)
	}

	if err := manager.RegisterReconciliationJob(ctx, engine, cfg.Service.Interval()); err != nil {
		log.Fatalw("failed to register reconciliation job", "error", err)
	}

	manager.Start()
	log.Infow("reconciliation worker started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Infow("received signal, shutting down", "signal", sig)
	cancel()

	if err := manager.Stop(); err != nil {
		log.Errorw("failed to stop scheduler", "error", err)
	}

	log.Infow("reconciliation worker stopped")
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"teamcoin/api"
	"teamcoin/config"
	"teamcoin/database"
	"teamcoin/events"
	"teamcoin/jobs"
	"teamcoin/repository"
	"teamcoin/service"
)

// Run initializes and starts the application
func Run(ctx context.Context) error {
	cfg := config.Get()

	log.Info("Connecting to database...")
	db, err := database.NewConnection(ctx, cfg.DatabaseURL, cfg.DBMaxConns)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	eventBus := events.NewBus()
	uowFactory := repository.NewUnitOfWorkFactory(db, eventBus)

	authService := service.NewAuthService(uowFactory, cfg.JWTSecret,
		time.Duration(cfg.TokenTTLHours)*time.Hour, cfg.StartingCoins)
	userService := service.NewUserService(uowFactory, cfg.TransactionViewLimit)
	lotteryService := service.NewLotteryService(uowFactory, cfg.LotteryHouseEdge)
	taskService := service.NewTaskService(uowFactory)
	rewardService := service.NewRewardService(uowFactory)
	gameService := service.NewGameService(uowFactory)
	leaderboardService := service.NewLeaderboardService(uowFactory)

	scheduler := jobs.NewScheduler(gameService, cfg.CampaignSweepSpec)
	if err := scheduler.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer scheduler.Stop()

	handler := api.NewHandler(
		authService,
		userService,
		lotteryService,
		taskService,
		rewardService,
		gameService,
		leaderboardService,
	)
	server := api.NewServer(cfg.HTTPPort, api.NewRouter(handler, authService))

	errCh := make(chan error, 1)
	go func() {
		log.WithFields(log.Fields{
			"port":        cfg.HTTPPort,
			"environment": cfg.Environment,
		}).Info("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("HTTP server shutdown failed")
	}

	return nil
}

// Package jobs runs background tasks on a cron schedule.
package jobs

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"

	"teamcoin/service"
)

// Scheduler sweeps expired campaigns on a fixed schedule so bonuses get paid
// even when no manager closes the campaign by hand.
type Scheduler struct {
	cron        *cron.Cron
	gameService service.GameService
	sweepSpec   string
}

// NewScheduler creates a scheduler that ends expired campaigns per the
// given cron spec.
func NewScheduler(gameService service.GameService, sweepSpec string) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		gameService: gameService,
		sweepSpec:   sweepSpec,
	}
}

// Start registers the sweep job and starts the cron loop.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.AddFunc(s.sweepSpec, func() {
		log.Debug("Sweeping expired campaigns")
		if err := s.gameService.EndExpiredGames(ctx); err != nil {
			log.WithError(err).Error("Campaign sweep failed")
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	log.WithField("spec", s.sweepSpec).Info("Campaign scheduler started")
	return nil
}

// Stop halts the cron loop and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Info("Campaign scheduler stopped")
}

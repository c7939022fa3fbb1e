// Package worker holds background jobs that run alongside the API server.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/cinereserve/cinereserve/internal/domain"
)

// HoldSweeper periodically prunes the bookkeeping left behind by expired seat
// holds. It is a hygiene job: expiry itself is enforced by the hold store on
// every read, so a stopped sweeper never blocks a seat.
type HoldSweeper struct {
	store    domain.HoldStore
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
	doneCh   chan struct{}
}

func NewHoldSweeper(store domain.HoldStore, interval time.Duration, logger *slog.Logger) *HoldSweeper {
	return &HoldSweeper{
		store:    store,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start runs the sweep loop until the context is cancelled or Stop is called.
func (s *HoldSweeper) Start(ctx context.Context) {
	s.logger.Info("starting expired hold sweeper", "interval", s.interval)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	defer close(s.doneCh)

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("stopping expired hold sweeper", "reason", "context cancelled")
			return
		case <-s.stopCh:
			s.logger.Info("stopping expired hold sweeper", "reason", "stop requested")
			return
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

// Stop signals the sweep loop to exit and waits for it to finish.
func (s *HoldSweeper) Stop() {
	close(s.stopCh)
	<-s.doneCh
}

func (s *HoldSweeper) sweep(ctx context.Context) {
	pruned, err := s.store.PruneExpired(ctx)
	if err != nil {
		s.logger.Error("expired hold sweep failed", "error", err)
		return
	}

	if pruned > 0 {
		s.logger.Info("pruned expired hold entries", "count", pruned)
	}
}

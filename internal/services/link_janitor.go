package services

import (
	"context"
	"time"

	"go.uber.org/zap"
)

const DefaultLinkJanitorInterval = time.Hour

type ExpiredLinkPruner interface {
	PruneExpiredLinks() (int64, error)
}

// SignInLinkJanitor deletes expired sign-in links on a fixed interval.
type SignInLinkJanitor struct {
	pruner   ExpiredLinkPruner
	interval time.Duration
	logger   *zap.Logger
}

func NewSignInLinkJanitor(pruner ExpiredLinkPruner, interval time.Duration, logger *zap.Logger) *SignInLinkJanitor {
	if interval <= 0 {
		interval = DefaultLinkJanitorInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SignInLinkJanitor{
		pruner:   pruner,
		interval: interval,
		logger:   logger.Named("link_janitor"),
	}
}

// Run prunes once immediately and then on every tick until ctx is done.
func (janitor *SignInLinkJanitor) Run(ctx context.Context) error {
	ticker := time.NewTicker(janitor.interval)
	defer ticker.Stop()

	janitor.run()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			janitor.run()
		}
	}
}

func (janitor *SignInLinkJanitor) run() {
	deleted, err := janitor.pruner.PruneExpiredLinks()
	if err != nil {
		janitor.logger.Warn("prune expired sign-in links failed", zap.Error(err))
		return
	}
	if deleted > 0 {
		janitor.logger.Info("pruned expired sign-in links", zap.Int64("deleted", deleted))
	}
}

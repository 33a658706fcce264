package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Poller refreshes a notification store on a fixed interval. This is pure
// polling, so staleness is bounded by the interval.
type Poller struct {
	store    *Store
	interval time.Duration
	logger   *zap.Logger
}

// NewPoller creates a poller for the given store
func NewPoller(store *Store, interval time.Duration, logger *zap.Logger) *Poller {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Poller{store: store, interval: interval, logger: logger}
}

// Run polls until ctx is cancelled. userID is re-read every tick so the
// poller follows login and logout; FetchAll already no-ops on a missing id.
func (p *Poller) Run(ctx context.Context, userID func() int) {
	p.logger.Info("starting notification poller", zap.Duration("interval", p.interval))

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	// Prime the mirror immediately rather than waiting one interval
	p.store.FetchAll(ctx, userID())

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("notification poller stopped")
			return
		case <-ticker.C:
			p.store.FetchAll(ctx, userID())
		}
	}
}

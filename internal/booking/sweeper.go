package booking

import (
	"context"
	"log/slog"
	"time"

	"github.com/kinoteka/cinema-reservation-system/internal/domain"
)

const DefaultSweepInterval = time.Minute

// Sweeper periodically deletes expired seat holds. Each tick is one
// self-contained bulk delete: it needs no coordination with the booking
// path, because finalize re-checks hold liveness inside its own
// transaction. A failed tick is logged and retried on the next one.
type Sweeper struct {
	holds    domain.HoldRepository
	interval time.Duration
	logger   *slog.Logger
	now      func() time.Time
	ticker   *time.Ticker
	done     chan struct{}
}

func NewSweeper(holds domain.HoldRepository, interval time.Duration, logger *slog.Logger) *Sweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &Sweeper{
		holds:    holds,
		interval: interval,
		logger:   logger,
		now:      time.Now,
		done:     make(chan struct{}),
	}
}

// Start launches the background loop. The first sweep runs immediately so a
// restart doesn't leave stale holds sitting until the first full interval.
func (s *Sweeper) Start(ctx context.Context) {
	s.logger.Info("starting hold expiration sweeper", "interval", s.interval.String())

	s.ticker = time.NewTicker(s.interval)

	go s.Sweep(ctx)

	go func() {
		for {
			select {
			case <-s.ticker.C:
				s.Sweep(ctx)
			case <-s.done:
				s.logger.Info("hold expiration sweeper stopped")
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

func (s *Sweeper) Stop() {
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.done)
}

// Sweep deletes every hold that expired before now. It is idempotent and
// safe to call concurrently with any other operation.
func (s *Sweeper) Sweep(ctx context.Context) {
	deleted, err := s.holds.DeleteExpired(ctx, s.now())
	if err != nil {
		s.logger.Error("failed to delete expired holds", "error", err)
		return
	}

	if deleted > 0 {
		s.logger.Info("deleted expired holds", "count", deleted)
	}
}

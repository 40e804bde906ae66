package workers

import (
	"context"
	"time"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/store"
)

type retentionWorker struct {
	ctx        context.Context
	tombstones store.TombstoneRepository
	ledger     store.ConflictLedger
	cfg        config.Workers
	logger     *logger.Logger
}

// NewRetentionWorker creates the housekeeping worker that purges tombstones
// and settled conflict-ledger rows older than the configured retention
// window. Tombstone purging additionally honours device checkpoints at the
// storage layer: a tombstone survives until every known device of its owner
// has synced past it.
func NewRetentionWorker(ctx context.Context, tombstones store.TombstoneRepository, ledger store.ConflictLedger, cfg config.Workers, logger *logger.Logger) Worker {
	return &retentionWorker{
		ctx:        ctx,
		tombstones: tombstones,
		ledger:     ledger,
		cfg:        cfg,
		logger:     logger,
	}
}

// Run implements [Worker]. It spawns the sweep loop and returns immediately.
// A zero sweep interval disables the worker.
func (w *retentionWorker) Run() {
	if w.cfg.RetentionSweepInterval <= 0 {
		w.logger.Info().Msg("retention worker disabled")
		return
	}

	w.logger.Info().
		Dur("interval", w.cfg.RetentionSweepInterval).
		Dur("retention", w.cfg.TombstoneRetention).
		Msg("retention worker started")

	go func() {
		t := time.NewTicker(w.cfg.RetentionSweepInterval)
		defer t.Stop()

		for {
			select {
			case <-w.ctx.Done():
				w.logger.Info().Msg("retention worker stopped")
				return
			case <-t.C:
				w.sweep()
			}
		}
	}()
}

func (w *retentionWorker) sweep() {
	cutoff := time.Now().UTC().Add(-w.cfg.TombstoneRetention)

	tombstonesPurged, err := w.tombstones.PurgeExpired(w.ctx, cutoff)
	if err != nil {
		w.logger.Err(err).Msg("retention sweep: purging tombstones failed")
	}

	conflictsPurged, err := w.ledger.PurgeResolvedBefore(w.ctx, cutoff)
	if err != nil {
		w.logger.Err(err).Msg("retention sweep: purging settled conflicts failed")
	}

	if tombstonesPurged > 0 || conflictsPurged > 0 {
		w.logger.Info().
			Int64("tombstones", tombstonesPurged).
			Int64("conflicts", conflictsPurged).
			Msg("retention sweep purged rows")
	}
}

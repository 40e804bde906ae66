package workers

import (
	"context"

	"github.com/kotobadev/kotoba-sync/internal/config"
	"github.com/kotobadev/kotoba-sync/internal/logger"
	"github.com/kotobadev/kotoba-sync/internal/store"
)

type Workers struct {
	workers []Worker
}

// NewWorkers assembles the server's background workers. Currently that is
// the retention sweeper that purges expired tombstones and settled
// conflict-ledger rows.
func NewWorkers(ctx context.Context, storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	return &Workers{
		workers: []Worker{
			NewRetentionWorker(ctx, storages.Tombstones, storages.ConflictLedger, cfg, logger),
		},
	}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

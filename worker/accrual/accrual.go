package accrual

import (
	"context"
	"time"

	"ledger/core"
	"ledger/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Worker accrue every registered asset periodically so indices move without user traffic
type Worker struct {
	worker.TickWorker
	ledger core.ILedgerService
}

// New new accrual worker
func New(ledger core.ILedgerService, interval time.Duration) *Worker {
	return &Worker{
		TickWorker: worker.TickWorker{
			Delay:    interval,
			ErrDelay: interval,
		},
		ledger: ledger,
	}
}

// Run run until ctx is done
func (w *Worker) Run(ctx context.Context) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")
	ctx = logger.WithContext(ctx, log)

	return w.StartTick(ctx, func(ctx context.Context) error {
		return w.onWork(ctx)
	})
}

// RunOnce one accrual pass over every asset
func (w *Worker) RunOnce(ctx context.Context) error {
	return w.onWork(ctx)
}

func (w *Worker) onWork(ctx context.Context) error {
	log := logger.FromContext(ctx)

	assets, err := w.ledger.Assets(ctx)
	if err != nil {
		log.WithError(err).Errorln("ledger.Assets")
		return err
	}

	var g errgroup.Group
	for _, asset := range assets {
		assetID := asset.AssetID
		g.Go(func() error {
			accrued, err := w.ledger.Accrue(ctx, assetID)
			if err != nil {
				log.WithError(err).Errorln("ledger.Accrue", assetID)
				return err
			}

			log.WithField("asset", assetID).Debugf("accrued, index %s borrowed %s", accrued.BorrowIndex, accrued.TotalBorrowed)
			return nil
		})
	}

	return g.Wait()
}

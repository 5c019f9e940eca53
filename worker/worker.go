package worker

import (
	"context"
	"time"

	"github.com/fox-one/pkg/logger"
)

// TickWorker run the work every Delay until ctx is done
type TickWorker struct {
	Delay        time.Duration
	ErrDelay     time.Duration
	SkipFirstRun bool
}

// StartTick run onWork repeatedly, waiting ErrDelay after a failed round
func (w *TickWorker) StartTick(ctx context.Context, onWork func(ctx context.Context) error) error {
	delay, errDelay := w.Delay, w.ErrDelay
	if delay <= 0 {
		delay = time.Second
	}

	if errDelay <= 0 {
		errDelay = delay
	}

	dur := time.Duration(0)
	if w.SkipFirstRun {
		dur = delay
	}

	timer := time.NewTimer(dur)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			if err := onWork(ctx); err != nil {
				logger.FromContext(ctx).WithError(err).Debugln("tick worker round failed")
				timer.Reset(errDelay)
			} else {
				timer.Reset(delay)
			}
		}
	}
}

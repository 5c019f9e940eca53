package ledger

import (
	"context"
	"fmt"

	"ledger/core"
	"ledger/pkg/id"
	"ledger/pkg/lending"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// replay returns the journaled transaction if the caller supplied a known trace id.
// The journaled transaction must be the same request: same action, user, asset and
// amount, the applied amount of a clamped action may be lower. An aborted transaction
// is not replayed, the caller retries with a new trace id.
func (s *Service) replay(ctx context.Context, action core.ActionType, userID, assetID string, amount decimal.Decimal) (string, *core.Transaction, error) {
	traceID, ok := traceIDFrom(ctx)
	if !ok {
		return id.GenTraceID(), nil, nil
	}

	tx, err := s.transactions.FindByTraceID(ctx, traceID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("transactions.FindByTraceID", traceID)
		return "", nil, err
	}

	if tx.ID == 0 {
		return traceID, nil, nil
	}

	if tx.Action != action {
		return "", nil, fmt.Errorf("trace %s used by %s: %w", traceID, tx.Action, core.ErrOperationForbidden)
	}

	if tx.UserID != userID || tx.AssetID != assetID || !sameAmount(action, tx.Amount, amount) {
		return "", nil, fmt.Errorf("trace %s used by another request: %w", traceID, core.ErrOperationForbidden)
	}

	if tx.Status == core.TransactionStatusAbort {
		return "", nil, fmt.Errorf("trace %s aborted: %w", traceID, core.ErrTransferFailed)
	}

	return traceID, tx, nil
}

// sameAmount whether the journaled amount answers a request of amount, repay and
// liquidate journal the amount actually applied
func sameAmount(action core.ActionType, journaled, amount decimal.Decimal) bool {
	switch action {
	case core.ActionTypeRepay, core.ActionTypeLiquidate:
		return journaled.LessThanOrEqual(amount)
	default:
		return journaled.Equal(amount)
	}
}

// execute commit the batch, journal tx and run the external transfer last
func (s *Service) execute(ctx context.Context, b *batch, tx *core.Transaction, transfer func(ctx context.Context) error) (*core.Transaction, error) {
	log := logger.FromContext(ctx).WithField("trace", tx.TraceID)

	if err := b.commit(ctx); err != nil {
		return nil, err
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		log.WithError(err).Errorln("transactions.Create")
		_ = b.rollback(ctx)
		return nil, err
	}

	if transfer != nil {
		if err := transfer(ctx); err != nil {
			log.WithError(err).Infoln("transfer failed, rollback")
			if e := b.rollback(ctx); e != nil {
				log.WithError(e).Errorln("batch.rollback")
			}

			s.finish(ctx, tx, core.TransactionStatusAbort, core.ErrTransferFailed)
			return nil, fmt.Errorf("%w: %v", core.ErrTransferFailed, err)
		}
	}

	s.finish(ctx, tx, core.TransactionStatusComplete, nil)
	return tx, nil
}

func (s *Service) finish(ctx context.Context, tx *core.Transaction, status core.TransactionStatus, cause error) {
	tx.Status = status
	if cause != nil {
		var extra core.TransactionExtraData
		if err := tx.UnmarshalExtraData(&extra); err != nil || extra == nil {
			extra = core.NewTransactionExtra()
		}

		extra.Put(core.TransactionKeyErrorCode, core.CodeOf(cause).Code())
		tx.SetExtraData(extra)
	}

	if err := s.transactions.Update(ctx, tx); err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("transactions.Update", tx.TraceID)
	}
}

// positionExtra post-state of the position for the journal
func positionExtra(position *core.Position, asset *core.Asset) core.TransactionExtraData {
	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyCollateral, position.Collateral)
	extra.Put(core.TransactionKeyDebt, lending.BorrowBalance(position, asset))
	extra.Put(core.TransactionKeyBorrowIndex, asset.BorrowIndex)
	return extra
}

func requirePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrZeroAmount
	}

	return nil
}

package ledger

import (
	"context"
	"time"

	"ledger/core"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Deposit credit amount as collateral of the user, pulled from the user
func (s *Service) Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) (tx *core.Transaction, err error) {
	defer func(start time.Time) { s.observe(core.ActionTypeDeposit, start, err) }(time.Now())

	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := requirePositive(amount); err != nil {
		return nil, err
	}

	traceID, replayed, err := s.replay(ctx, core.ActionTypeDeposit, userID, assetID, amount)
	if err != nil || replayed != nil {
		return replayed, err
	}

	log := logger.FromContext(ctx).WithField("user", userID).WithField("asset", assetID)
	ctx = logger.WithContext(ctx, log)

	b := s.newBatch()
	asset, err := b.asset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	position, err := b.position(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}

	position.Collateral = position.Collateral.Add(amount)
	asset.TotalSupplied = asset.TotalSupplied.Add(amount)

	tx = core.NewTransaction(traceID, userID, assetID, core.ActionTypeDeposit, amount, positionExtra(position, asset))
	return s.execute(ctx, b, tx, func(ctx context.Context) error {
		return s.transfers.Pull(ctx, userID, assetID, amount)
	})
}

// Withdraw take amount of collateral back, the user must stay solvent
func (s *Service) Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal) (tx *core.Transaction, err error) {
	defer func(start time.Time) { s.observe(core.ActionTypeWithdraw, start, err) }(time.Now())

	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := requirePositive(amount); err != nil {
		return nil, err
	}

	traceID, replayed, err := s.replay(ctx, core.ActionTypeWithdraw, userID, assetID, amount)
	if err != nil || replayed != nil {
		return replayed, err
	}

	log := logger.FromContext(ctx).WithField("user", userID).WithField("asset", assetID)
	ctx = logger.WithContext(ctx, log)

	b := s.newBatch()
	asset, err := b.asset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	position, err := b.position(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}

	if amount.GreaterThan(position.Collateral) {
		log.Infof("withdraw %s > collateral %s", amount, position.Collateral)
		return nil, core.ErrInsufficientBalance
	}

	if amount.GreaterThan(asset.Cash()) {
		log.Infof("withdraw %s > cash %s", amount, asset.Cash())
		return nil, core.ErrInsufficientLiquidity
	}

	position.Collateral = position.Collateral.Sub(amount)
	asset.TotalSupplied = asset.TotalSupplied.Sub(amount)

	extra := positionExtra(position, asset)

	hasDebt, err := b.hasDebt(ctx, userID)
	if err != nil {
		return nil, err
	}

	if hasDebt {
		v, err := b.valuation(ctx, userID)
		if err != nil {
			return nil, err
		}

		if !v.Solvent() {
			log.Infof("withdraw breaks ltv, debt %s > capacity %s", v.DebtValue, v.BorrowCapacity)
			return nil, core.ErrInsufficientCollateral
		}

		extra.Put(core.TransactionKeyHealthFactor, v.HealthFactor())
	}

	tx = core.NewTransaction(traceID, userID, assetID, core.ActionTypeWithdraw, amount, extra)
	return s.execute(ctx, b, tx, func(ctx context.Context) error {
		return s.transfers.Push(ctx, userID, assetID, amount)
	})
}

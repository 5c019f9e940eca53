package ledger

import (
	"context"
	"time"

	"ledger/core"
	"ledger/pkg/lending"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Borrow lend amount to the user against the collateral of every asset
func (s *Service) Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) (tx *core.Transaction, err error) {
	defer func(start time.Time) { s.observe(core.ActionTypeBorrow, start, err) }(time.Now())

	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := requirePositive(amount); err != nil {
		return nil, err
	}

	traceID, replayed, err := s.replay(ctx, core.ActionTypeBorrow, userID, assetID, amount)
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

	// accrue every asset the user touches
	if _, err := b.holdings(ctx, userID); err != nil {
		return nil, err
	}

	if cash := asset.Cash(); amount.GreaterThan(cash) {
		log.Infof("borrow %s > cash %s", amount, cash)
		return nil, core.ErrInsufficientLiquidity
	}

	position, err := b.position(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}

	incurDebt(position, asset, amount)

	v, err := b.valuation(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !v.Solvent() {
		log.Infof("borrow breaks ltv, debt %s > capacity %s", v.DebtValue, v.BorrowCapacity)
		return nil, core.ErrInsufficientCollateral
	}

	extra := positionExtra(position, asset)
	extra.Put(core.TransactionKeyHealthFactor, v.HealthFactor())

	tx = core.NewTransaction(traceID, userID, assetID, core.ActionTypeBorrow, amount, extra)
	return s.execute(ctx, b, tx, func(ctx context.Context) error {
		return s.transfers.Push(ctx, userID, assetID, amount)
	})
}

// Repay pay back the debt, amounts above the accrued debt are clamped
func (s *Service) Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) (tx *core.Transaction, err error) {
	defer func(start time.Time) { s.observe(core.ActionTypeRepay, start, err) }(time.Now())

	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := requirePositive(amount); err != nil {
		return nil, err
	}

	traceID, replayed, err := s.replay(ctx, core.ActionTypeRepay, userID, assetID, amount)
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

	applied := reduceDebt(position, asset, amount)
	if !applied.IsPositive() {
		log.Infoln("nothing to repay")
		return nil, core.ErrNoDebt
	}

	extra := positionExtra(position, asset)
	extra.Put(core.TransactionKeyRepayAmount, applied)

	tx = core.NewTransaction(traceID, userID, assetID, core.ActionTypeRepay, applied, extra)
	return s.execute(ctx, b, tx, func(ctx context.Context) error {
		return s.transfers.Pull(ctx, userID, assetID, applied)
	})
}

// incurDebt fold the accrued debt into the principal, add amount and snapshot the index
func incurDebt(position *core.Position, asset *core.Asset, amount decimal.Decimal) {
	debt := lending.BorrowBalance(position, asset)
	position.Principal = debt.Add(amount)
	position.InterestIndex = asset.BorrowIndex
	asset.TotalBorrowed = asset.TotalBorrowed.Add(amount)
}

// reduceDebt repay at most the accrued debt, returns the amount applied
func reduceDebt(position *core.Position, asset *core.Asset, amount decimal.Decimal) decimal.Decimal {
	debt := lending.BorrowBalance(position, asset)
	if !debt.IsPositive() {
		return decimal.Zero
	}

	applied := decimal.Min(amount, debt)
	position.Principal = debt.Sub(applied)
	position.InterestIndex = asset.BorrowIndex

	// per position debts round up, the pool total may fall short by the rounding dust
	asset.TotalBorrowed = decimal.Max(asset.TotalBorrowed.Sub(applied), decimal.Zero)
	return applied
}

package ledger

import (
	"context"
	"fmt"
	"sort"
	"time"

	"ledger/core"
	"ledger/pkg/lending"
	"ledger/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Liquidate repay debt of an unhealthy user in assetID and seize collateral worth the
// repaid value plus the bonus, greatest value collateral first. The repay is clamped to
// the close factor and to what the borrower's collateral can cover.
func (s *Service) Liquidate(ctx context.Context, liquidator, userID, assetID string, repayAmount decimal.Decimal) (tx *core.Transaction, err error) {
	defer func(start time.Time) { s.observe(core.ActionTypeLiquidate, start, err) }(time.Now())

	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := requirePositive(repayAmount); err != nil {
		return nil, err
	}

	if liquidator == userID {
		return nil, fmt.Errorf("self liquidation: %w", core.ErrOperationForbidden)
	}

	traceID, replayed, err := s.replay(ctx, core.ActionTypeLiquidate, liquidator, assetID, repayAmount)
	if err != nil || replayed != nil {
		return replayed, err
	}

	log := logger.FromContext(ctx).
		WithField("liquidator", liquidator).
		WithField("user", userID).
		WithField("asset", assetID)
	ctx = logger.WithContext(ctx, log)

	b := s.newBatch()
	debtAsset, err := b.asset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	holdings, err := b.holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	v := lending.Evaluate(holdings)
	if !v.Liquidatable() {
		log.Infof("not liquidatable, debt %s <= %s", v.DebtValue, v.LiquidationCapacity)
		return nil, core.ErrNotLiquidatable
	}

	position, err := b.position(ctx, userID, assetID)
	if err != nil {
		return nil, err
	}

	debtPrice, err := b.price(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if !lending.BorrowBalance(position, debtAsset).IsPositive() {
		log.Infoln("no debt in asset")
		return nil, core.ErrNoDebt
	}

	repay := repayAmount
	if s.closeFactor > 0 {
		maxClose := lending.BorrowBalance(position, debtAsset).Mul(lending.Bps(s.closeFactor)).Truncate(debtAsset.Decimals)
		repay = decimal.Min(repay, maxClose)
	}

	// never repay more than the collateral left can pay back with the bonus
	seizable := lending.RepayCapacity(holdings, debtPrice).Truncate(debtAsset.Decimals)
	if repay.GreaterThan(seizable) {
		log.Infof("repay %s clamped to seizable %s", repay, seizable)
		repay = seizable
	}

	if !repay.IsPositive() {
		log.Infoln("nothing to seize")
		return nil, core.ErrInsufficientCollateral
	}

	applied := reduceDebt(position, debtAsset, repay)
	seized, err := b.seize(ctx, holdings, liquidator, applied, debtPrice)
	if err != nil {
		return nil, err
	}

	after, err := b.valuation(ctx, userID)
	if err != nil {
		return nil, err
	}

	extra := positionExtra(position, debtAsset)
	extra.Put(core.TransactionKeyBorrower, userID)
	extra.Put(core.TransactionKeyRepayAmount, applied)
	extra.Put(core.TransactionKeySeized, seized)
	extra.Put(core.TransactionKeyHealthFactor, after.HealthFactor())

	log.Infof("liquidated, repay %s seized %v", applied, seized)

	tx = core.NewTransaction(traceID, liquidator, assetID, core.ActionTypeLiquidate, applied, extra)
	return s.execute(ctx, b, tx, func(ctx context.Context) error {
		return s.transfers.Pull(ctx, liquidator, assetID, applied)
	})
}

// seize move collateral covering repayAmount plus each collateral's bonus from the
// borrower to the liquidator, greatest value first. Returns asset_id => seized amount.
func (b *batch) seize(ctx context.Context, holdings []lending.Holding, liquidator string, repayAmount, debtPrice decimal.Decimal) (map[string]decimal.Decimal, error) {
	collaterals := make([]lending.Holding, 0, len(holdings))
	for _, h := range holdings {
		if h.Position.Collateral.IsPositive() {
			collaterals = append(collaterals, h)
		}
	}

	sort.SliceStable(collaterals, func(i, j int) bool {
		vi, vj := collaterals[i].CollateralValue(), collaterals[j].CollateralValue()
		if !vi.Equal(vj) {
			return vi.GreaterThan(vj)
		}
		return collaterals[i].Asset.AssetID < collaterals[j].Asset.AssetID
	})

	seized := map[string]decimal.Decimal{}
	remaining := repayAmount

	for _, h := range collaterals {
		if !remaining.IsPositive() {
			break
		}

		value := lending.SeizeValue(remaining, debtPrice, h.Asset.LiquidationBonus)
		amount := number.Floor(value.Div(h.Price), h.Asset.Decimals)
		if amount.GreaterThanOrEqual(h.Position.Collateral) {
			amount = h.Position.Collateral
			covered := amount.Mul(h.Price).Div(lending.Bps(h.Asset.LiquidationBonus)).Div(debtPrice)
			remaining = decimal.Max(remaining.Sub(covered), decimal.Zero)
		} else {
			remaining = decimal.Zero
		}

		if !amount.IsPositive() {
			continue
		}

		to, err := b.position(ctx, liquidator, h.Asset.AssetID)
		if err != nil {
			return nil, err
		}

		h.Position.Collateral = h.Position.Collateral.Sub(amount)
		to.Collateral = to.Collateral.Add(amount)
		seized[h.Asset.AssetID] = amount
	}

	return seized, nil
}

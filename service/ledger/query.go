package ledger

import (
	"context"

	"ledger/core"
	"ledger/pkg/lending"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// Asset the asset accrued up to now, not persisted
func (s *Service) Asset(ctx context.Context, assetID string) (*core.Asset, error) {
	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	asset, err := s.newBatch().asset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	return asset.Clone(), nil
}

// Assets every registered asset accrued up to now, not persisted
func (s *Service) Assets(ctx context.Context) ([]*core.Asset, error) {
	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	assets, err := s.assets.All(ctx)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("assets.All")
		return nil, err
	}

	now := s.now()
	for _, asset := range assets {
		lending.AccrueInterest(asset, s.model, now)
	}

	return assets, nil
}

// BalanceOf collateral of the user in the asset
func (s *Service) BalanceOf(ctx context.Context, userID, assetID string) (decimal.Decimal, error) {
	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer unlock()

	b := s.newBatch()
	if _, err := b.asset(ctx, assetID); err != nil {
		return decimal.Zero, err
	}

	position, err := b.position(ctx, userID, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	return position.Collateral, nil
}

// DebtOf accrued debt of the user in the asset
func (s *Service) DebtOf(ctx context.Context, userID, assetID string) (decimal.Decimal, error) {
	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer unlock()

	b := s.newBatch()
	asset, err := b.asset(ctx, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	position, err := b.position(ctx, userID, assetID)
	if err != nil {
		return decimal.Zero, err
	}

	return lending.BorrowBalance(position, asset), nil
}

// HealthFactor liquidation capacity over debt value, lending.MaxHealthFactor without debt
func (s *Service) HealthFactor(ctx context.Context, userID string) (decimal.Decimal, error) {
	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	defer unlock()

	v, err := s.newBatch().valuation(ctx, userID)
	if err != nil {
		return decimal.Zero, err
	}

	return v.HealthFactor(), nil
}

// Account positions and risk view of the user
func (s *Service) Account(ctx context.Context, userID string) (*core.Account, error) {
	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b := s.newBatch()
	holdings, err := b.holdings(ctx, userID)
	if err != nil {
		return nil, err
	}

	v := lending.Evaluate(holdings)
	account := &core.Account{
		UserID:              userID,
		Positions:           make([]*core.Position, 0, len(holdings)),
		CollateralValue:     v.CollateralValue,
		DebtValue:           v.DebtValue,
		BorrowCapacity:      v.BorrowCapacity,
		LiquidationCapacity: v.LiquidationCapacity,
		HealthFactor:        v.HealthFactor(),
		Liquidatable:        v.Liquidatable(),
	}

	for _, h := range holdings {
		// principal reported as the debt accrued up to now
		p := h.Position.Clone()
		p.Principal = h.Debt()
		p.InterestIndex = h.Asset.BorrowIndex
		account.Positions = append(account.Positions, p)
	}

	return account, nil
}

// Users list the users holding a position, sorted
func (s *Service) Users(ctx context.Context) ([]string, error) {
	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	users, err := s.positions.Users(ctx)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("positions.Users")
		return nil, err
	}

	return users, nil
}

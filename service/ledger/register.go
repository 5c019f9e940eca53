package ledger

import (
	"context"
	"fmt"
	"time"

	"ledger/core"
	"ledger/pkg/lending"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

// RegisterAsset register an asset with its risk parameters, admin only at the api
func (s *Service) RegisterAsset(ctx context.Context, assetID, symbol string, decimals int32, cfg core.AssetConfig) (asset *core.Asset, err error) {
	defer func(start time.Time) { s.observe(core.ActionTypeRegisterAsset, start, err) }(time.Now())

	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	log := logger.FromContext(ctx).WithField("asset", assetID)

	if err := lending.ValidateAsset(assetID, decimals, cfg); err != nil {
		log.WithError(err).Infoln("invalid asset config")
		return nil, err
	}

	existing, err := s.assets.Find(ctx, assetID)
	if err != nil {
		log.WithError(err).Errorln("assets.Find")
		return nil, err
	}

	if existing.ID > 0 {
		return nil, fmt.Errorf("asset %s: %w", assetID, core.ErrDuplicateAsset)
	}

	asset = &core.Asset{
		AssetID:              assetID,
		Symbol:               symbol,
		Decimals:             decimals,
		MaxLtv:               cfg.MaxLtv,
		LiquidationThreshold: cfg.LiquidationThreshold,
		LiquidationBonus:     cfg.LiquidationBonus,
		TotalSupplied:        decimal.Zero,
		TotalBorrowed:        decimal.Zero,
		Reserves:             decimal.Zero,
		BorrowIndex:          lending.One,
		AccruedAt:            s.now().Truncate(time.Second),
	}

	if err := s.assets.Create(ctx, asset); err != nil {
		log.WithError(err).Errorln("assets.Create")
		return nil, err
	}

	log.Infof("asset registered, ltv %d threshold %d bonus %d", cfg.MaxLtv, cfg.LiquidationThreshold, cfg.LiquidationBonus)
	return asset, nil
}

// Accrue accrue interest of the asset up to now and persist it
func (s *Service) Accrue(ctx context.Context, assetID string) (asset *core.Asset, err error) {
	defer func(start time.Time) { s.observe(core.ActionTypeAccrue, start, err) }(time.Now())

	ctx, unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	b := s.newBatch()
	asset, err = b.asset(ctx, assetID)
	if err != nil {
		return nil, err
	}

	if err := b.commit(ctx); err != nil {
		return nil, err
	}

	return asset.Clone(), nil
}

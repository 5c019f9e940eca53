package cmd

import (
	"context"
	"errors"
	"fmt"

	"ledger/core"
	"ledger/pkg/lending"
	"ledger/pkg/metrics"
	"ledger/service/ledger"
	"ledger/service/oracle"
	"ledger/service/token"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

func provideConfig() *core.Config {
	return &cfg
}

func providePriceFeed() core.IPriceFeed {
	if cfg.PriceOracle.EndPoint == "" {
		prices := make(map[string]decimal.Decimal, len(cfg.PriceOracle.Prices))
		for assetID, price := range cfg.PriceOracle.Prices {
			prices[assetID] = decimal.NewFromFloat(price)
		}

		return oracle.NewStatic(prices)
	}

	return oracle.Cache(oracle.New(cfg.PriceOracle.EndPoint), cfg.PriceOracle.CacheTTL)
}

func provideTokenLedger() *token.Ledger {
	return token.New(cfg.App.TokenOwner, cfg.App.PoolAccount)
}

func provideInterestRateModel() (core.IInterestRateModel, error) {
	r := cfg.InterestRate
	switch r.Model {
	case "", "linear":
		return lending.NewLinearModel(decimal.NewFromFloat(r.BaseRate), decimal.NewFromFloat(r.Slope)), nil
	case "jump":
		return lending.NewJumpModel(
			decimal.NewFromFloat(r.BaseRate),
			decimal.NewFromFloat(r.Slope),
			decimal.NewFromFloat(r.JumpSlope),
			decimal.NewFromFloat(r.Kink),
		), nil
	default:
		return nil, fmt.Errorf("interest rate model %q: %w", r.Model, core.ErrInvalidConfig)
	}
}

func provideMetrics() *metrics.Metrics {
	return metrics.New("ledger")
}

// provideLedger build the ledger and register the configured assets
func provideLedger(
	ctx context.Context,
	s *stores,
	prices core.IPriceFeed,
	transfers core.ITransferService,
	model core.IInterestRateModel,
	m *metrics.Metrics,
) (*ledger.Service, error) {
	svc, err := ledger.New(
		s.assets,
		s.positions,
		s.transactions,
		prices,
		transfers,
		model,
		ledger.WithCloseFactor(cfg.App.CloseFactor),
		ledger.WithDefaultAsset(cfg.App.DefaultAsset),
		ledger.WithMetrics(m),
	)
	if err != nil {
		return nil, err
	}

	log := logger.FromContext(ctx)
	for _, item := range cfg.Assets {
		_, err := svc.RegisterAsset(ctx, item.AssetID, item.Symbol, item.Decimals, item.Config())
		if errors.Is(err, core.ErrDuplicateAsset) {
			continue
		}

		if err != nil {
			log.WithError(err).Errorln("register asset", item.AssetID)
			return nil, err
		}

		log.Infoln("asset registered", item.AssetID)
	}

	return svc, nil
}

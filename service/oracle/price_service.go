package oracle

import (
	"context"
	"fmt"

	"ledger/core"
	"ledger/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type priceService struct {
	endpoint string
}

// New price feed pulling tickers from the oracle endpoint
func New(endpoint string) core.IPriceFeed {
	return &priceService{
		endpoint: endpoint,
	}
}

// PullPriceTicker pull price ticker
func (s *priceService) PullPriceTicker(ctx context.Context, assetID string) (*core.PriceTicker, error) {
	url := fmt.Sprintf("%s/api/tickers/%s", s.endpoint, assetID)
	logger.FromContext(ctx).Debugln("pull price:", url)

	var ticker core.PriceTicker
	if err := resthttp.Get(resthttp.Request(ctx), url, &ticker); err != nil {
		return nil, err
	}

	return &ticker, nil
}

func (s *priceService) Price(ctx context.Context, assetID string) (decimal.Decimal, error) {
	ticker, err := s.PullPriceTicker(ctx, assetID)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Errorln("oracle.PullPriceTicker", assetID)
		return decimal.Zero, err
	}

	if !ticker.Price.IsPositive() {
		return decimal.Zero, fmt.Errorf("price of %s is %s: %w", assetID, ticker.Price, core.ErrInvalidPrice)
	}

	return ticker.Price, nil
}

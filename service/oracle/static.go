package oracle

import (
	"context"
	"fmt"
	"sync"

	"ledger/core"

	"github.com/shopspring/decimal"
)

// Static fixed prices, set by config or by hand
type Static struct {
	mu     sync.RWMutex
	prices map[string]decimal.Decimal
}

// NewStatic new static price feed
func NewStatic(prices map[string]decimal.Decimal) *Static {
	s := &Static{prices: map[string]decimal.Decimal{}}
	for assetID, price := range prices {
		s.prices[assetID] = price
	}

	return s
}

// Set set the price of the asset
func (s *Static) Set(assetID string, price decimal.Decimal) {
	s.mu.Lock()
	s.prices[assetID] = price
	s.mu.Unlock()
}

// Price price of the asset
func (s *Static) Price(ctx context.Context, assetID string) (decimal.Decimal, error) {
	s.mu.RLock()
	price, ok := s.prices[assetID]
	s.mu.RUnlock()

	if !ok || !price.IsPositive() {
		return decimal.Zero, fmt.Errorf("no price for %s: %w", assetID, core.ErrInvalidPrice)
	}

	return price, nil
}

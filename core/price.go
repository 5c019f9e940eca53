package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// PriceTicker price ticker
type PriceTicker struct {
	Provider string          `json:"provider,omitempty"`
	AssetID  string          `json:"asset_id,omitempty"`
	Price    decimal.Decimal `json:"price,omitempty"`
}

// IPriceFeed trusted price feed, returns the value of one unit of the asset
type IPriceFeed interface {
	Price(ctx context.Context, assetID string) (decimal.Decimal, error)
}

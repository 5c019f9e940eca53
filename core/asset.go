package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// AssetConfig risk parameters of an asset, all in basis points
type AssetConfig struct {
	// 可借贷价值 / 抵押资产价值, (0, 10000]
	MaxLtv int64 `json:"max_ltv"`
	// 触发清算的 LTV, [max_ltv, 10000]
	LiquidationThreshold int64 `json:"liquidation_threshold"`
	// 清算奖励, >= 10000, 10500 means a 5% bonus
	LiquidationBonus int64 `json:"liquidation_bonus"`
}

// Asset registered asset with its running totals
type Asset struct {
	ID                   uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"-"`
	AssetID              string          `sql:"size:64;unique_index:asset_idx" json:"asset_id"`
	Symbol               string          `sql:"size:20" json:"symbol"`
	Decimals             int32           `json:"decimals"`
	MaxLtv               int64           `json:"max_ltv"`
	LiquidationThreshold int64           `json:"liquidation_threshold"`
	LiquidationBonus     int64           `json:"liquidation_bonus"`
	TotalSupplied        decimal.Decimal `sql:"type:decimal(64,16)" json:"total_supplied"`
	TotalBorrowed        decimal.Decimal `sql:"type:decimal(64,16)" json:"total_borrowed"`
	// 累计利息，抵押资产不计息，利息全部计入保留金
	Reserves    decimal.Decimal `sql:"type:decimal(64,16)" json:"reserves"`
	BorrowIndex decimal.Decimal `sql:"type:decimal(48,16)" json:"borrow_index"`
	AccruedAt   time.Time       `json:"accrued_at"`
	Version     int64           `sql:"default:0" json:"version"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Config risk parameters of the asset
func (a *Asset) Config() AssetConfig {
	return AssetConfig{
		MaxLtv:               a.MaxLtv,
		LiquidationThreshold: a.LiquidationThreshold,
		LiquidationBonus:     a.LiquidationBonus,
	}
}

// Cash liquidity the pool can still lend out or pay back
func (a *Asset) Cash() decimal.Decimal {
	cash := a.TotalSupplied.Sub(a.TotalBorrowed)
	if cash.IsNegative() {
		return decimal.Zero
	}

	return cash
}

// Clone returns a copy which can be mutated without touching the stored record
func (a *Asset) Clone() *Asset {
	clone := *a
	return &clone
}

// IAssetStore asset store interface
type IAssetStore interface {
	Create(ctx context.Context, asset *Asset) error
	// Find returns an asset with ID == 0 if not registered
	Find(ctx context.Context, assetID string) (*Asset, error)
	All(ctx context.Context) ([]*Asset, error)
	Update(ctx context.Context, asset *Asset) error
}

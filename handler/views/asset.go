package views

import (
	"time"

	"ledger/core"
	"ledger/pkg/lending"
)

// Asset asset view
type Asset struct {
	AssetID              string `json:"asset_id"`
	Symbol               string `json:"symbol"`
	Decimals             int32  `json:"decimals"`
	MaxLtv               int64  `json:"max_ltv"`
	LiquidationThreshold int64  `json:"liquidation_threshold"`
	LiquidationBonus     int64  `json:"liquidation_bonus"`
	TotalSupplied        string `json:"total_supplied"`
	TotalBorrowed        string `json:"total_borrowed"`
	Reserves             string `json:"reserves"`
	Cash                 string `json:"cash"`
	BorrowIndex          string `json:"borrow_index"`
	UtilizationRate      string `json:"utilization_rate"`
	BorrowRate           string `json:"borrow_rate"`
	AccruedAt            string `json:"accrued_at"`
}

// AssetView render the asset with its current rates
func AssetView(asset *core.Asset, model core.IInterestRateModel) Asset {
	return Asset{
		AssetID:              asset.AssetID,
		Symbol:               asset.Symbol,
		Decimals:             asset.Decimals,
		MaxLtv:               asset.MaxLtv,
		LiquidationThreshold: asset.LiquidationThreshold,
		LiquidationBonus:     asset.LiquidationBonus,
		TotalSupplied:        asset.TotalSupplied.String(),
		TotalBorrowed:        asset.TotalBorrowed.String(),
		Reserves:             asset.Reserves.String(),
		Cash:                 asset.Cash().String(),
		BorrowIndex:          asset.BorrowIndex.String(),
		UtilizationRate:      lending.UtilizationRate(asset.TotalSupplied, asset.TotalBorrowed).String(),
		BorrowRate:           lending.BorrowRate(asset, model).String(),
		AccruedAt:            asset.AccruedAt.UTC().Format(time.RFC3339),
	}
}

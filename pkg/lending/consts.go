package lending

import (
	"github.com/shopspring/decimal"
)

var (
	// SecondsPerYear seconds per year, rates are annual
	SecondsPerYear = decimal.NewFromInt(31536000)
	// BasisPoints 100%
	BasisPoints int64 = 10000
	// MaxPricision max pricision
	MaxPricision int32 = 16
	// MaxDecimals max decimals of a registered asset
	MaxDecimals int32 = 16
	// MaxBorrowRate annual borrow rate cap, 1000%
	MaxBorrowRate = decimal.NewFromInt(10)
	// MaxHealthFactor health factor of a position without debt
	MaxHealthFactor = decimal.New(1, 18)
	// One 1.0
	One = decimal.NewFromInt(1)
)

// Bps convert basis points into a ratio
func Bps(v int64) decimal.Decimal {
	return decimal.New(v, -4)
}

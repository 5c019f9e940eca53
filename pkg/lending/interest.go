package lending

import (
	"time"

	"ledger/core"
	"ledger/pkg/number"

	"github.com/shopspring/decimal"
)

// BorrowBalance caculate the accrued debt of a position
// balance = position.principal * asset.borrow_index / position.interest_index
func BorrowBalance(position *core.Position, asset *core.Asset) decimal.Decimal {
	if !position.Principal.IsPositive() {
		return decimal.Zero
	}

	borrowIndex := asset.BorrowIndex
	if !borrowIndex.IsPositive() {
		borrowIndex = One
	}

	interestIndex := position.InterestIndex
	if !interestIndex.IsPositive() {
		interestIndex = borrowIndex
	}

	return number.Ceil(position.Principal.Mul(borrowIndex).Div(interestIndex), MaxPricision)
}

// BorrowRate current annual borrow rate of the asset
func BorrowRate(asset *core.Asset, model core.IInterestRateModel) decimal.Decimal {
	return model.BorrowRate(UtilizationRate(asset.TotalSupplied, asset.TotalBorrowed))
}

// AccrueInterest accrue interest of the asset up to now
//
// index = index * (1 + rate * elapsed / seconds_per_year), elapsed in whole seconds.
// The accumulated interest is added to total_borrowed, and to total_supplied & reserves
// since collateral earns no interest. Returns the interest accumulated; a call with no
// elapsed time changes nothing.
func AccrueInterest(asset *core.Asset, model core.IInterestRateModel, now time.Time) decimal.Decimal {
	if !asset.BorrowIndex.IsPositive() {
		asset.BorrowIndex = One
	}

	now = now.Truncate(time.Second)
	if asset.AccruedAt.IsZero() {
		asset.AccruedAt = now
		return decimal.Zero
	}

	elapsed := int64(now.Sub(asset.AccruedAt) / time.Second)
	if elapsed <= 0 {
		return decimal.Zero
	}

	asset.AccruedAt = now
	rate := BorrowRate(asset, model)
	if !rate.IsPositive() {
		return decimal.Zero
	}

	timesBorrowRate := rate.Mul(decimal.NewFromInt(elapsed)).Div(SecondsPerYear)
	interestAccumulated := asset.TotalBorrowed.Mul(timesBorrowRate).Truncate(MaxPricision)

	asset.BorrowIndex = asset.BorrowIndex.Add(number.Ceil(timesBorrowRate.Mul(asset.BorrowIndex), MaxPricision))

	if interestAccumulated.IsPositive() {
		asset.TotalBorrowed = asset.TotalBorrowed.Add(interestAccumulated)
		asset.TotalSupplied = asset.TotalSupplied.Add(interestAccumulated)
		asset.Reserves = asset.Reserves.Add(interestAccumulated)
	}

	return interestAccumulated
}

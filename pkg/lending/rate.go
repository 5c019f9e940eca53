package lending

import (
	"github.com/shopspring/decimal"
)

// UtilizationRate utilization rate
// utilization_rate = total_borrowed / total_supplied, clamped to [0, 1]
func UtilizationRate(totalSupplied, totalBorrowed decimal.Decimal) decimal.Decimal {
	if !totalSupplied.IsPositive() || !totalBorrowed.IsPositive() {
		return decimal.Zero
	}

	rate := totalBorrowed.Div(totalSupplied).Truncate(MaxPricision)
	if rate.GreaterThan(One) {
		return One
	}

	return rate
}

// LinearModel rate = base_rate + utilization * slope
type LinearModel struct {
	BaseRate decimal.Decimal `json:"base_rate"`
	Slope    decimal.Decimal `json:"slope"`
}

// NewLinearModel new linear interest rate model
func NewLinearModel(baseRate, slope decimal.Decimal) *LinearModel {
	return &LinearModel{
		BaseRate: baseRate,
		Slope:    slope,
	}
}

// BorrowRate annual borrow rate
func (m *LinearModel) BorrowRate(utilization decimal.Decimal) decimal.Decimal {
	rate := clampUtilization(utilization).Mul(m.Slope).Add(m.BaseRate)
	return clampRate(rate)
}

// JumpModel linear model with a steeper slope after the kink
type JumpModel struct {
	BaseRate  decimal.Decimal `json:"base_rate"`
	Slope     decimal.Decimal `json:"slope"`
	JumpSlope decimal.Decimal `json:"jump_slope"`
	Kink      decimal.Decimal `json:"kink"`
}

// NewJumpModel new jump interest rate model
func NewJumpModel(baseRate, slope, jumpSlope, kink decimal.Decimal) *JumpModel {
	return &JumpModel{
		BaseRate:  baseRate,
		Slope:     slope,
		JumpSlope: jumpSlope,
		Kink:      kink,
	}
}

// BorrowRate annual borrow rate
func (m *JumpModel) BorrowRate(utilization decimal.Decimal) decimal.Decimal {
	u := clampUtilization(utilization)
	if !m.Kink.IsPositive() || u.LessThanOrEqual(m.Kink) {
		return clampRate(u.Mul(m.Slope).Add(m.BaseRate))
	}

	normalRate := m.Kink.Mul(m.Slope).Add(m.BaseRate)
	excessUtil := u.Sub(m.Kink)
	return clampRate(excessUtil.Mul(m.JumpSlope).Add(normalRate))
}

func clampUtilization(u decimal.Decimal) decimal.Decimal {
	if u.IsNegative() {
		return decimal.Zero
	}

	if u.GreaterThan(One) {
		return One
	}

	return u
}

func clampRate(rate decimal.Decimal) decimal.Decimal {
	if rate.IsNegative() {
		return decimal.Zero
	}

	if rate.GreaterThan(MaxBorrowRate) {
		return MaxBorrowRate
	}

	return rate.Truncate(MaxPricision)
}

package lending

import (
	"ledger/core"

	"github.com/shopspring/decimal"
)

// Holding a position together with its asset and price
type Holding struct {
	Asset    *core.Asset
	Position *core.Position
	Price    decimal.Decimal
}

// Debt accrued debt of the holding
func (h Holding) Debt() decimal.Decimal {
	return BorrowBalance(h.Position, h.Asset)
}

// CollateralValue value of the collateral
func (h Holding) CollateralValue() decimal.Decimal {
	return h.Position.Collateral.Mul(h.Price).Truncate(MaxPricision)
}

// DebtValue value of the accrued debt
func (h Holding) DebtValue() decimal.Decimal {
	return h.Debt().Mul(h.Price).Truncate(MaxPricision)
}

// Valuation aggregated risk view over the holdings of one user
//
// borrow_capacity = Σ collateral_value * max_ltv / 10000
// liquidation_capacity = Σ collateral_value * liquidation_threshold / 10000
type Valuation struct {
	CollateralValue     decimal.Decimal
	DebtValue           decimal.Decimal
	BorrowCapacity      decimal.Decimal
	LiquidationCapacity decimal.Decimal
}

// Evaluate value the holdings
func Evaluate(holdings []Holding) Valuation {
	v := Valuation{
		CollateralValue:     decimal.Zero,
		DebtValue:           decimal.Zero,
		BorrowCapacity:      decimal.Zero,
		LiquidationCapacity: decimal.Zero,
	}

	for _, h := range holdings {
		collateralValue := h.CollateralValue()
		v.CollateralValue = v.CollateralValue.Add(collateralValue)
		v.DebtValue = v.DebtValue.Add(h.DebtValue())
		v.BorrowCapacity = v.BorrowCapacity.Add(collateralValue.Mul(Bps(h.Asset.MaxLtv)).Truncate(MaxPricision))
		v.LiquidationCapacity = v.LiquidationCapacity.Add(collateralValue.Mul(Bps(h.Asset.LiquidationThreshold)).Truncate(MaxPricision))
	}

	return v
}

// HealthFactor liquidation_capacity / debt_value, MaxHealthFactor without debt
func (v Valuation) HealthFactor() decimal.Decimal {
	if !v.DebtValue.IsPositive() {
		return MaxHealthFactor
	}

	return v.LiquidationCapacity.Div(v.DebtValue).Truncate(MaxPricision)
}

// Solvent debt is covered by the borrow capacity
func (v Valuation) Solvent() bool {
	return v.DebtValue.LessThanOrEqual(v.BorrowCapacity)
}

// Liquidatable debt exceeds the liquidation capacity
func (v Valuation) Liquidatable() bool {
	return v.DebtValue.GreaterThan(v.LiquidationCapacity)
}

// SeizeValue collateral value a liquidator receives for repaying
// seize_value = repay * price * liquidation_bonus / 10000
func SeizeValue(repayAmount, price decimal.Decimal, bonus int64) decimal.Decimal {
	return repayAmount.Mul(price).Mul(Bps(bonus)).Truncate(MaxPricision)
}

// RepayCapacity debt amount, priced at debtPrice, whose seizure with the bonus would take
// every collateral of the holdings: sum(collateral * price / bonus) / debt_price
func RepayCapacity(holdings []Holding, debtPrice decimal.Decimal) decimal.Decimal {
	if !debtPrice.IsPositive() {
		return decimal.Zero
	}

	value := decimal.Zero
	for _, h := range holdings {
		if !h.Position.Collateral.IsPositive() {
			continue
		}

		value = value.Add(h.CollateralValue().Div(Bps(h.Asset.LiquidationBonus)))
	}

	return value.Div(debtPrice).Truncate(MaxPricision)
}

package lending

import (
	"testing"

	"ledger/core"

	"github.com/stretchr/testify/assert"
)

func TestEvaluate(t *testing.T) {
	collateral := &core.Asset{AssetID: "c", MaxLtv: 7500, LiquidationThreshold: 8000, BorrowIndex: One}
	debt := &core.Asset{AssetID: "d", MaxLtv: 5000, LiquidationThreshold: 6000, BorrowIndex: One}

	holdings := []Holding{
		{
			Asset:    collateral,
			Position: &core.Position{Collateral: d("100")},
			Price:    d("0.9"),
		},
		{
			Asset:    debt,
			Position: &core.Position{Collateral: d("10"), Principal: d("75"), InterestIndex: One},
			Price:    d("1"),
		},
	}

	v := Evaluate(holdings)
	assert.Equal(t, "100", v.CollateralValue.String())
	assert.Equal(t, "75", v.DebtValue.String())
	// 90 * 0.75 + 10 * 0.5
	assert.Equal(t, "72.5", v.BorrowCapacity.String())
	// 90 * 0.8 + 10 * 0.6
	assert.Equal(t, "78", v.LiquidationCapacity.String())
	assert.Equal(t, "1.04", v.HealthFactor().String())
	assert.False(t, v.Solvent())
	assert.False(t, v.Liquidatable())

	holdings[1].Position.Collateral = d("0")
	v = Evaluate(holdings)
	assert.Equal(t, "0.96", v.HealthFactor().String())
	assert.True(t, v.Liquidatable())
}

func TestEvaluateNoDebt(t *testing.T) {
	asset := &core.Asset{AssetID: "c", MaxLtv: 7500, LiquidationThreshold: 8000, BorrowIndex: One}
	v := Evaluate([]Holding{{Asset: asset, Position: &core.Position{Collateral: d("1")}, Price: d("2")}})

	assert.True(t, v.HealthFactor().Equal(MaxHealthFactor))
	assert.True(t, v.Solvent())
	assert.False(t, v.Liquidatable())

	empty := Evaluate(nil)
	assert.True(t, empty.CollateralValue.IsZero())
	assert.True(t, empty.HealthFactor().Equal(MaxHealthFactor))
}

func TestSeizeValue(t *testing.T) {
	assert.Equal(t, "31.5", SeizeValue(d("30"), d("1"), 10500).String())
	assert.Equal(t, "30", SeizeValue(d("30"), d("1"), 10000).String())
}

func TestRepayCapacity(t *testing.T) {
	c := &core.Asset{AssetID: "c", LiquidationBonus: 10500, BorrowIndex: One}
	e := &core.Asset{AssetID: "e", LiquidationBonus: 10000, BorrowIndex: One}
	debt := &core.Asset{AssetID: "d", LiquidationBonus: 10500, BorrowIndex: One}

	holdings := []Holding{
		{Asset: c, Position: &core.Position{Collateral: d("100")}, Price: d("0.1")},
		{Asset: e, Position: &core.Position{Collateral: d("10")}, Price: d("2")},
		{Asset: debt, Position: &core.Position{Principal: d("75"), InterestIndex: One}, Price: d("1")},
	}

	// 10 / 1.05 + 20 / 1
	assert.Equal(t, "29.5238095238095238", RepayCapacity(holdings, d("1")).String())
	// priced at 2 the same value covers half the amount
	assert.Equal(t, "14.7619047619047619", RepayCapacity(holdings, d("2")).String())
	assert.True(t, RepayCapacity(holdings, d("0")).IsZero())
	assert.True(t, RepayCapacity(nil, d("1")).IsZero())
}

package lending

import (
	"testing"
	"time"

	"ledger/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func newAsset(supplied, borrowed string, accruedAt time.Time) *core.Asset {
	return &core.Asset{
		AssetID:       "usd",
		TotalSupplied: d(supplied),
		TotalBorrowed: d(borrowed),
		Reserves:      decimal.Zero,
		BorrowIndex:   One,
		AccruedAt:     accruedAt,
	}
}

func TestAccrueInterest(t *testing.T) {
	model := NewLinearModel(d("0.02"), d("0.1"))
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	asset := newAsset("1000", "500", start)
	oneYear := start.Add(time.Duration(31536000) * time.Second)

	interest := AccrueInterest(asset, model, oneYear)
	assert.Equal(t, "35", interest.String())
	assert.Equal(t, "1.07", asset.BorrowIndex.String())
	assert.Equal(t, "535", asset.TotalBorrowed.String())
	assert.Equal(t, "1035", asset.TotalSupplied.String())
	assert.Equal(t, "35", asset.Reserves.String())
	assert.Equal(t, oneYear, asset.AccruedAt)
	assert.True(t, asset.TotalBorrowed.LessThanOrEqual(asset.TotalSupplied))
}

func TestAccrueInterestIdempotent(t *testing.T) {
	model := NewLinearModel(d("0.02"), d("0.1"))
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	asset := newAsset("1000", "500", start)
	now := start.Add(time.Hour)

	AccrueInterest(asset, model, now)
	snapshot := *asset

	assert.True(t, AccrueInterest(asset, model, now).IsZero())
	// sub-second elapsed time is not accrued
	assert.True(t, AccrueInterest(asset, model, now.Add(500*time.Millisecond)).IsZero())
	assert.Equal(t, snapshot, *asset)
}

func TestAccrueInterestMonotonic(t *testing.T) {
	model := NewLinearModel(d("0.02"), d("0.1"))
	start := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)
	asset := newAsset("1000", "900", start)

	last := asset.BorrowIndex
	for i := 1; i <= 10; i++ {
		AccrueInterest(asset, model, start.Add(time.Duration(i)*time.Minute))
		assert.True(t, asset.BorrowIndex.GreaterThanOrEqual(last))
		last = asset.BorrowIndex
	}

	// a clock moving backwards changes nothing
	snapshot := *asset
	AccrueInterest(asset, model, start)
	assert.Equal(t, snapshot, *asset)
}

func TestAccrueInterestFreshAsset(t *testing.T) {
	model := NewLinearModel(d("0.02"), d("0.1"))
	now := time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC)

	asset := &core.Asset{}
	assert.True(t, AccrueInterest(asset, model, now).IsZero())
	assert.Equal(t, "1", asset.BorrowIndex.String())
	assert.Equal(t, now, asset.AccruedAt)
}

func TestBorrowBalance(t *testing.T) {
	asset := &core.Asset{BorrowIndex: d("1.07")}

	assert.Equal(t, "107", BorrowBalance(&core.Position{Principal: d("100"), InterestIndex: One}, asset).String())
	assert.Equal(t, "100", BorrowBalance(&core.Position{Principal: d("100"), InterestIndex: d("1.07")}, asset).String())
	assert.True(t, BorrowBalance(&core.Position{}, asset).IsZero())

	// rounded up at the last digit
	asset.BorrowIndex = d("1.0000000000000001")
	balance := BorrowBalance(&core.Position{Principal: d("1"), InterestIndex: d("3")}, asset)
	assert.Equal(t, "0.3333333333333334", balance.String())
}

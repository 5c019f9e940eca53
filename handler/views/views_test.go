package views

import (
	"testing"
	"time"

	"ledger/core"
	"ledger/pkg/lending"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAssetView(t *testing.T) {
	asset := &core.Asset{
		AssetID:       "usd",
		Symbol:        "USD",
		Decimals:      8,
		TotalSupplied: decimal.NewFromInt(1000),
		TotalBorrowed: decimal.NewFromInt(500),
		BorrowIndex:   decimal.NewFromInt(1),
		AccruedAt:     time.Unix(0, 0),
	}
	model := lending.NewLinearModel(decimal.RequireFromString("0.02"), decimal.RequireFromString("0.1"))

	view := AssetView(asset, model)
	assert.Equal(t, "500", view.Cash)
	assert.Equal(t, "0.5", view.UtilizationRate)
	assert.Equal(t, "0.07", view.BorrowRate)
}

func TestSelect(t *testing.T) {
	view := Asset{AssetID: "usd", Symbol: "USD", Cash: "1"}

	all := Select(view, "")
	assert.Equal(t, "USD", all["symbol"])
	assert.Contains(t, all, "borrow_rate")

	m := Select(view, "asset_id, cash")
	assert.Len(t, m, 2)
	assert.Equal(t, "usd", m["asset_id"])
	assert.Equal(t, "1", m["cash"])
}

func TestTransactionView(t *testing.T) {
	tx := core.NewTransaction("trace", "alice", "usd", core.ActionTypeBorrow, decimal.NewFromInt(3), nil)
	tx.Status = core.TransactionStatusAbort

	view := TransactionView(tx)
	assert.Equal(t, "Borrow", view.Action)
	assert.Equal(t, "abort", view.Status)
	assert.JSONEq(t, "{}", string(view.Data))
}

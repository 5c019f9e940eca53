package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// Account aggregated risk view of a user
type Account struct {
	UserID              string          `json:"user_id"`
	Positions           []*Position     `json:"positions"`
	CollateralValue     decimal.Decimal `json:"collateral_value"`
	DebtValue           decimal.Decimal `json:"debt_value"`
	BorrowCapacity      decimal.Decimal `json:"borrow_capacity"`
	LiquidationCapacity decimal.Decimal `json:"liquidation_capacity"`
	HealthFactor        decimal.Decimal `json:"health_factor"`
	Liquidatable        bool            `json:"liquidatable"`
}

// ILedgerService the lending ledger
type ILedgerService interface {
	RegisterAsset(ctx context.Context, assetID, symbol string, decimals int32, cfg AssetConfig) (*Asset, error)
	Accrue(ctx context.Context, assetID string) (*Asset, error)

	Deposit(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*Transaction, error)
	Withdraw(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*Transaction, error)
	Borrow(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*Transaction, error)
	Repay(ctx context.Context, userID, assetID string, amount decimal.Decimal) (*Transaction, error)
	Liquidate(ctx context.Context, liquidator, userID, assetID string, repayAmount decimal.Decimal) (*Transaction, error)

	Asset(ctx context.Context, assetID string) (*Asset, error)
	Assets(ctx context.Context) ([]*Asset, error)
	BalanceOf(ctx context.Context, userID, assetID string) (decimal.Decimal, error)
	DebtOf(ctx context.Context, userID, assetID string) (decimal.Decimal, error)
	HealthFactor(ctx context.Context, userID string) (decimal.Decimal, error)
	Account(ctx context.Context, userID string) (*Account, error)
	// Users every user holding a position
	Users(ctx context.Context) ([]string, error)
}

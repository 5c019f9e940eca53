package ledger

import (
	"context"

	"ledger/core"

	"github.com/shopspring/decimal"
)

// SingleAsset the single asset form of the ledger, every call goes to one asset
type SingleAsset struct {
	s       *Service
	assetID string
}

// Default single asset api over the default asset
func (s *Service) Default() *SingleAsset {
	return s.Single(s.defaultAsset)
}

// Single single asset api over assetID
func (s *Service) Single(assetID string) *SingleAsset {
	return &SingleAsset{s: s, assetID: assetID}
}

// AssetID the asset served
func (a *SingleAsset) AssetID() string {
	return a.assetID
}

// Deposit deposit collateral
func (a *SingleAsset) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (*core.Transaction, error) {
	return a.s.Deposit(ctx, userID, a.assetID, amount)
}

// Withdraw withdraw collateral
func (a *SingleAsset) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (*core.Transaction, error) {
	return a.s.Withdraw(ctx, userID, a.assetID, amount)
}

// Borrow borrow
func (a *SingleAsset) Borrow(ctx context.Context, userID string, amount decimal.Decimal) (*core.Transaction, error) {
	return a.s.Borrow(ctx, userID, a.assetID, amount)
}

// Repay repay
func (a *SingleAsset) Repay(ctx context.Context, userID string, amount decimal.Decimal) (*core.Transaction, error) {
	return a.s.Repay(ctx, userID, a.assetID, amount)
}

// Liquidate liquidate
func (a *SingleAsset) Liquidate(ctx context.Context, liquidator, userID string, repayAmount decimal.Decimal) (*core.Transaction, error) {
	return a.s.Liquidate(ctx, liquidator, userID, a.assetID, repayAmount)
}

// BalanceOf collateral of the user
func (a *SingleAsset) BalanceOf(ctx context.Context, userID string) (decimal.Decimal, error) {
	return a.s.BalanceOf(ctx, userID, a.assetID)
}

// DebtOf accrued debt of the user
func (a *SingleAsset) DebtOf(ctx context.Context, userID string) (decimal.Decimal, error) {
	return a.s.DebtOf(ctx, userID, a.assetID)
}

// HealthFactor health factor of the user
func (a *SingleAsset) HealthFactor(ctx context.Context, userID string) (decimal.Decimal, error) {
	return a.s.HealthFactor(ctx, userID)
}

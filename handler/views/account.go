package views

import (
	"ledger/core"
)

// Position position view, debt includes accrued interest
type Position struct {
	AssetID    string `json:"asset_id"`
	Collateral string `json:"collateral"`
	Debt       string `json:"debt"`
}

// Account account view
type Account struct {
	UserID              string     `json:"user_id"`
	Positions           []Position `json:"positions"`
	CollateralValue     string     `json:"collateral_value"`
	DebtValue           string     `json:"debt_value"`
	BorrowCapacity      string     `json:"borrow_capacity"`
	LiquidationCapacity string     `json:"liquidation_capacity"`
	HealthFactor        string     `json:"health_factor"`
	Liquidatable        bool       `json:"liquidatable"`
}

// AccountView render the account
func AccountView(account *core.Account) Account {
	view := Account{
		UserID:              account.UserID,
		Positions:           make([]Position, 0, len(account.Positions)),
		CollateralValue:     account.CollateralValue.String(),
		DebtValue:           account.DebtValue.String(),
		BorrowCapacity:      account.BorrowCapacity.String(),
		LiquidationCapacity: account.LiquidationCapacity.String(),
		HealthFactor:        account.HealthFactor.String(),
		Liquidatable:        account.Liquidatable,
	}

	for _, p := range account.Positions {
		view.Positions = append(view.Positions, Position{
			AssetID:    p.AssetID,
			Collateral: p.Collateral.String(),
			Debt:       p.Principal.String(),
		})
	}

	return view
}

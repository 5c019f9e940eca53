package core

// ActionType ledger action type
type ActionType int

const (
	_ ActionType = iota
	// ActionTypeRegisterAsset register asset
	ActionTypeRegisterAsset
	// ActionTypeDeposit deposit collateral
	ActionTypeDeposit
	// ActionTypeWithdraw withdraw collateral
	ActionTypeWithdraw
	// ActionTypeBorrow borrow
	ActionTypeBorrow
	// ActionTypeRepay repay debt
	ActionTypeRepay
	// ActionTypeLiquidate liquidate an unhealthy position
	ActionTypeLiquidate
	// ActionTypeAccrue accrue interest of an asset
	ActionTypeAccrue
)

var actionNames = map[ActionType]string{
	ActionTypeRegisterAsset: "RegisterAsset",
	ActionTypeDeposit:       "Deposit",
	ActionTypeWithdraw:      "Withdraw",
	ActionTypeBorrow:        "Borrow",
	ActionTypeRepay:         "Repay",
	ActionTypeLiquidate:     "Liquidate",
	ActionTypeAccrue:        "Accrue",
}

func (i ActionType) String() string {
	if name, ok := actionNames[i]; ok {
		return name
	}

	return "Unknown"
}

// ParseActionType parse action type from its name, 0 if unknown
func ParseActionType(name string) ActionType {
	for t, n := range actionNames {
		if n == name {
			return t
		}
	}

	return 0
}

package core

import "github.com/shopspring/decimal"

// IInterestRateModel maps utilization in [0, 1] to an annual borrow rate.
// Implementations must be pure functions of utilization.
type IInterestRateModel interface {
	BorrowRate(utilization decimal.Decimal) decimal.Decimal
}

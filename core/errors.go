package core

import (
	"errors"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrReentrant the engine was called back from inside one of its own operations
	ErrReentrant ErrorCode = 100002

	// ErrAssetNotFound no asset
	ErrAssetNotFound ErrorCode = 100100
	// ErrZeroAmount amount must be positive
	ErrZeroAmount ErrorCode = 100101
	// ErrDuplicateAsset asset already registered
	ErrDuplicateAsset ErrorCode = 100102
	// ErrInvalidConfig invalid asset config
	ErrInvalidConfig ErrorCode = 100103
	// ErrInsufficientCollateral insufficient collateral
	ErrInsufficientCollateral ErrorCode = 100104
	// ErrInsufficientLiquidity insufficient liquidity
	ErrInsufficientLiquidity ErrorCode = 100105
	// ErrInsufficientBalance insufficient balance
	ErrInsufficientBalance ErrorCode = 100106
	// ErrNotLiquidatable position is healthy
	ErrNotLiquidatable ErrorCode = 100107
	// ErrInvalidPrice invalid price
	ErrInvalidPrice ErrorCode = 100108
	// ErrNoDebt nothing to repay
	ErrNoDebt ErrorCode = 100109
	// ErrTransferFailed asset transfer failed
	ErrTransferFailed ErrorCode = 100110
	// ErrInsufficientAllowance spender not approved for the amount
	ErrInsufficientAllowance ErrorCode = 100111
)

var errorNames = map[ErrorCode]string{
	ErrUnknown:                "UNKNOWN",
	ErrOperationForbidden:     "OPERATION_FORBIDDEN",
	ErrReentrant:              "REENTRANT_CALL",
	ErrAssetNotFound:          "ASSET_NOT_FOUND",
	ErrZeroAmount:             "ZERO_AMOUNT",
	ErrDuplicateAsset:         "DUPLICATE_ASSET",
	ErrInvalidConfig:          "INVALID_CONFIG",
	ErrInsufficientCollateral: "INSUFFICIENT_COLLATERAL",
	ErrInsufficientLiquidity:  "INSUFFICIENT_LIQUIDITY",
	ErrInsufficientBalance:    "INSUFFICIENT_BALANCE",
	ErrNotLiquidatable:        "NOT_LIQUIDATABLE",
	ErrInvalidPrice:           "INVALID_PRICE",
	ErrNoDebt:                 "NO_DEBT",
	ErrTransferFailed:         "TRANSFER_FAILED",
	ErrInsufficientAllowance:  "INSUFFICIENT_ALLOWANCE",
}

// Code numeric error code
func (e ErrorCode) Code() int {
	return int(e)
}

func (e ErrorCode) String() string {
	if name, ok := errorNames[e]; ok {
		return name
	}

	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	return e.String()
}

// Retryable solvency errors may pass after the caller changes the amount or the state moves
func (e ErrorCode) Retryable() bool {
	switch e {
	case ErrInsufficientBalance,
		ErrInsufficientCollateral,
		ErrInsufficientLiquidity,
		ErrNotLiquidatable,
		ErrTransferFailed,
		ErrInvalidPrice:
		return true
	default:
		return false
	}
}

// CodeOf extracts the error code from err, ErrUnknown if there is none
func CodeOf(err error) ErrorCode {
	var code ErrorCode
	if errors.As(err, &code) {
		return code
	}

	return ErrUnknown
}

// IsRetryable reports whether err is a retryable ledger error
func IsRetryable(err error) bool {
	var code ErrorCode
	return errors.As(err, &code) && code.Retryable()
}

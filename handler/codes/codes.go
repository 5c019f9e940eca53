package codes

import (
	"errors"
	"strconv"

	"ledger/core"

	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"

	// InvalidArguments invalid arguments
	InvalidArguments = 100001
)

// With with specified error
func With(err error, code int) twirp.Error {
	var twerr twirp.Error
	if !errors.As(err, &twerr) {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// From convert err to a twirp error, ledger error codes map to their twirp class
func From(err error) twirp.Error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return twerr
	}

	var code core.ErrorCode
	if !errors.As(err, &code) {
		return twirp.InternalErrorWith(err)
	}

	twerr = twirp.NewError(twirpCode(code), err.Error())
	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code.Code()))
}

func twirpCode(code core.ErrorCode) twirp.ErrorCode {
	switch code {
	case core.ErrZeroAmount, core.ErrInvalidConfig:
		return twirp.InvalidArgument
	case core.ErrAssetNotFound:
		return twirp.NotFound
	case core.ErrDuplicateAsset:
		return twirp.AlreadyExists
	case core.ErrOperationForbidden:
		return twirp.PermissionDenied
	case core.ErrInsufficientBalance,
		core.ErrInsufficientCollateral,
		core.ErrInsufficientLiquidity,
		core.ErrInsufficientAllowance,
		core.ErrNotLiquidatable,
		core.ErrNoDebt:
		return twirp.FailedPrecondition
	case core.ErrTransferFailed, core.ErrInvalidPrice:
		return twirp.Unavailable
	case core.ErrReentrant:
		return twirp.Aborted
	default:
		return twirp.Internal
	}
}

// Get get error code, the custom code when present
func Get(err twirp.Error) int {
	if v := err.Meta(CustomCodeKey); v != "" {
		if code, e := strconv.Atoi(v); e == nil {
			return code
		}
	}

	switch err.Code() {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(err.Code())
	}
}

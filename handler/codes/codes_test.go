package codes

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"ledger/core"

	"github.com/stretchr/testify/assert"
	"github.com/twitchtv/twirp"
)

func TestFrom(t *testing.T) {
	err := From(fmt.Errorf("asset btc: %w", core.ErrAssetNotFound))
	assert.Equal(t, twirp.NotFound, err.Code())
	assert.Equal(t, int(core.ErrAssetNotFound), Get(err))

	err = From(core.ErrInsufficientCollateral)
	assert.Equal(t, twirp.FailedPrecondition, err.Code())
	assert.Equal(t, http.StatusPreconditionFailed, twirp.ServerHTTPStatusFromErrorCode(err.Code()))
	assert.Equal(t, "INSUFFICIENT_COLLATERAL", err.Msg())

	err = From(errors.New("boom"))
	assert.Equal(t, twirp.Internal, err.Code())
	assert.Equal(t, http.StatusInternalServerError, Get(err))

	err = From(twirp.InvalidArgumentError("amount", "must be positive"))
	assert.Equal(t, InvalidArguments, Get(err))

	assert.Equal(t, 7, Get(With(errors.New("x"), 7)))
}

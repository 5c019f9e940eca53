package param

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type actionParams struct {
	UserID  string `json:"user_id" valid:"required"`
	AssetID string `json:"asset_id" valid:"required"`
	Amount  string `json:"amount" valid:"required,float"`
	Limit   int    `json:"limit"`
}

func TestBindingQuery(t *testing.T) {
	r := httptest.NewRequest("GET", "/?user_id=alice&asset_id=usd&amount=1.5&limit=10", nil)

	var params actionParams
	require.NoError(t, Binding(r, &params))
	assert.Equal(t, "alice", params.UserID)
	assert.Equal(t, "1.5", params.Amount)
	assert.Equal(t, 10, params.Limit)
}

func TestBindingBody(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"user_id":"alice","asset_id":"usd","amount":"2"}`))
	r.Header.Set("Content-Type", "application/json")

	var params actionParams
	require.NoError(t, Binding(r, &params))
	assert.Equal(t, "2", params.Amount)
}

func TestBindingInvalid(t *testing.T) {
	r := httptest.NewRequest("POST", "/", strings.NewReader(`{"user_id":"alice","amount":"abc"}`))
	r.Header.Set("Content-Type", "application/json")

	var params actionParams
	assert.Error(t, Binding(r, &params))
}

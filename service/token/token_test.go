package token

import (
	"context"
	"testing"

	"ledger/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	owner = "owner"
	pool  = "pool"
	ausd  = "ausd"
)

func TestMint(t *testing.T) {
	ctx := context.Background()
	l := New(owner, pool)

	require.NoError(t, l.Mint(ctx, owner, "user", ausd, decimal.NewFromInt(100)))
	assert.Equal(t, "100", l.BalanceOf(ctx, "user", ausd).String())

	err := l.Mint(ctx, "attacker", "attacker", ausd, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, core.ErrOperationForbidden)
	assert.True(t, l.BalanceOf(ctx, "attacker", ausd).IsZero())

	err = l.Mint(ctx, owner, "user", ausd, decimal.Zero)
	assert.ErrorIs(t, err, core.ErrZeroAmount)
	assert.Equal(t, "ZERO_AMOUNT", err.Error())
}

func TestTransfer(t *testing.T) {
	ctx := context.Background()
	l := New(owner, pool)
	require.NoError(t, l.Mint(ctx, owner, "alice", ausd, decimal.NewFromInt(10)))

	require.NoError(t, l.Transfer(ctx, "alice", "bob", ausd, decimal.NewFromInt(4)))
	assert.Equal(t, "6", l.BalanceOf(ctx, "alice", ausd).String())
	assert.Equal(t, "4", l.BalanceOf(ctx, "bob", ausd).String())

	assert.ErrorIs(t, l.Transfer(ctx, "bob", "alice", ausd, decimal.NewFromInt(5)), core.ErrInsufficientBalance)
	assert.ErrorIs(t, l.Transfer(ctx, "bob", "alice", ausd, decimal.Zero), core.ErrZeroAmount)
}

func TestPullPush(t *testing.T) {
	ctx := context.Background()
	l := New(owner, pool)
	require.NoError(t, l.Mint(ctx, owner, "alice", ausd, decimal.NewFromInt(10)))

	// no allowance
	assert.ErrorIs(t, l.Pull(ctx, "alice", ausd, decimal.NewFromInt(1)), core.ErrInsufficientAllowance)

	require.NoError(t, l.Approve(ctx, "alice", pool, ausd, decimal.NewFromInt(8)))
	require.NoError(t, l.Pull(ctx, "alice", ausd, decimal.NewFromInt(5)))
	assert.Equal(t, "3", l.Allowance(ctx, "alice", pool, ausd).String())
	assert.Equal(t, "5", l.BalanceOf(ctx, pool, ausd).String())

	assert.ErrorIs(t, l.Pull(ctx, "alice", ausd, decimal.NewFromInt(4)), core.ErrInsufficientAllowance)

	require.NoError(t, l.Push(ctx, "bob", ausd, decimal.NewFromInt(2)))
	assert.Equal(t, "3", l.BalanceOf(ctx, pool, ausd).String())
	assert.Equal(t, "2", l.BalanceOf(ctx, "bob", ausd).String())

	assert.ErrorIs(t, l.Push(ctx, "bob", ausd, decimal.NewFromInt(4)), core.ErrInsufficientBalance)
}

package ledger

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"ledger/core"

	"github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferFailedRollsBack(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	// minted but never approved
	require.NoError(t, f.tokens.Mint(ctx, owner, "alice", ausd, d("10")))

	_, err := f.s.Deposit(ctx, "alice", ausd, d("10"))
	assert.ErrorIs(t, err, core.ErrTransferFailed)
	assert.True(t, core.IsRetryable(err))

	assert.Equal(t, "0", f.balance(t, "alice", ausd))
	assert.True(t, f.asset(t, ausd).TotalSupplied.IsZero())
	assert.Equal(t, "10", f.tokens.BalanceOf(ctx, "alice", ausd).String())

	transactions, err := f.transactions.List(ctx, 0, 10)
	require.NoError(t, err)
	require.Len(t, transactions, 1)
	assert.Equal(t, core.TransactionStatusAbort, transactions[0].Status)

	var extra map[string]interface{}
	require.NoError(t, transactions[0].UnmarshalExtraData(&extra))
	assert.EqualValues(t, core.ErrTransferFailed.Code(), extra[core.TransactionKeyErrorCode])

	// approved, the same deposit goes through
	require.NoError(t, f.tokens.Approve(ctx, "alice", pool, ausd, d("10")))
	_, err = f.s.Deposit(ctx, "alice", ausd, d("10"))
	require.NoError(t, err)
	assert.Equal(t, "10", f.balance(t, "alice", ausd))
}

func TestTransferFailedRollsBackBorrow(t *testing.T) {
	ctx := context.Background()

	var fail bool
	f := newFixture(t, func(transfers core.ITransferService) core.ITransferService {
		return &hookTransfers{
			ITransferService: transfers,
			push: func(ctx context.Context) error {
				if fail {
					return errors.New("network down")
				}
				return nil
			},
		}
	})

	f.deposit(t, "alice", ausd, "200")
	_, err := f.s.Borrow(ctx, "alice", ausd, d("50"))
	require.NoError(t, err)

	f.advance(year)
	fail = true

	_, err = f.s.Borrow(ctx, "alice", ausd, d("50"))
	assert.ErrorIs(t, err, core.ErrTransferFailed)

	// the accrual of the failed borrow is rolled back too
	asset := f.asset(t, ausd)
	assert.Equal(t, "1", asset.BorrowIndex.String())
	assert.Equal(t, "50", asset.TotalBorrowed.String())

	fail = false
	_, err = f.s.Borrow(ctx, "alice", ausd, d("50"))
	require.NoError(t, err)

	// 50 * (1 + (0.02 + 0.25 * 0.1)) + 50
	assert.Equal(t, "102.25", f.debt(t, "alice", ausd))
}

type hookTransfers struct {
	core.ITransferService
	pull func(ctx context.Context) error
	push func(ctx context.Context) error
}

func (h *hookTransfers) Pull(ctx context.Context, from, assetID string, amount decimal.Decimal) error {
	if h.pull != nil {
		if err := h.pull(ctx); err != nil {
			return err
		}
	}

	return h.ITransferService.Pull(ctx, from, assetID, amount)
}

func (h *hookTransfers) Push(ctx context.Context, to, assetID string, amount decimal.Decimal) error {
	if h.push != nil {
		if err := h.push(ctx); err != nil {
			return err
		}
	}

	return h.ITransferService.Push(ctx, to, assetID, amount)
}

func TestReentrantTransfer(t *testing.T) {
	ctx := context.Background()

	var (
		s          *Service
		reentryErr error
		reenter    bool
	)

	f := newFixture(t, func(transfers core.ITransferService) core.ITransferService {
		return &hookTransfers{
			ITransferService: transfers,
			pull: func(ctx context.Context) error {
				if !reenter {
					return nil
				}

				// a transfer calling back into the ledger
				_, reentryErr = s.Withdraw(ctx, "alice", ausd, d("5"))
				if _, err := s.BalanceOf(ctx, "alice", ausd); err != nil {
					return err
				}
				return nil
			},
		}
	})
	s = f.s

	f.deposit(t, "alice", ausd, "10")

	reenter = true
	f.fund(t, "alice", ausd, "10")

	_, err := f.s.Deposit(ctx, "alice", ausd, d("10"))
	assert.ErrorIs(t, reentryErr, core.ErrReentrant)
	assert.ErrorIs(t, err, core.ErrTransferFailed)
	assert.Equal(t, "10", f.balance(t, "alice", ausd))
}

func TestReplayTraceID(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fund(t, "alice", ausd, "100")

	traceCtx := WithTraceID(ctx, uuid.New())
	tx, err := f.s.Deposit(traceCtx, "alice", ausd, d("10"))
	require.NoError(t, err)

	again, err := f.s.Deposit(traceCtx, "alice", ausd, d("10"))
	require.NoError(t, err)
	assert.Equal(t, tx.ID, again.ID)
	assert.Equal(t, "10", f.balance(t, "alice", ausd))

	_, err = f.s.Withdraw(traceCtx, "alice", ausd, d("10"))
	assert.ErrorIs(t, err, core.ErrOperationForbidden)
}

func TestConcurrentDeposits(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	const users = 20
	for i := 0; i < users; i++ {
		f.fund(t, fmt.Sprintf("user-%d", i), ausd, "10")
	}

	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			userID := fmt.Sprintf("user-%d", i)
			for j := 0; j < 5; j++ {
				_, err := f.s.Deposit(ctx, userID, ausd, d("2"))
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, "200", f.asset(t, ausd).TotalSupplied.String())
	assert.Equal(t, "200", f.tokens.BalanceOf(ctx, pool, ausd).String())

	holders, err := f.positions.Users(ctx)
	require.NoError(t, err)
	assert.Len(t, holders, users)
}

func TestReentrantTransferDerivedContext(t *testing.T) {
	ctx := context.Background()

	var (
		s          *Service
		reentryErr error
	)

	type hopKey struct{}

	f := newFixture(t, func(transfers core.ITransferService) core.ITransferService {
		return &hookTransfers{
			ITransferService: transfers,
			push: func(ctx context.Context) error {
				child, cancel := context.WithTimeout(context.WithValue(ctx, hopKey{}, "bridge"), time.Second)
				defer cancel()

				_, reentryErr = s.Deposit(child, "alice", ausd, d("1"))
				return nil
			},
		}
	})
	s = f.s

	f.deposit(t, "alice", ausd, "10")
	f.fund(t, "alice", ausd, "1")

	_, err := f.s.Withdraw(ctx, "alice", ausd, d("4"))
	require.NoError(t, err)
	assert.ErrorIs(t, reentryErr, core.ErrReentrant)
	assert.Equal(t, "6", f.balance(t, "alice", ausd))
}

func TestReplayAbortedTrace(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	require.NoError(t, f.tokens.Mint(ctx, owner, "alice", ausd, d("10")))

	traceCtx := WithTraceID(ctx, uuid.New())
	_, err := f.s.Deposit(traceCtx, "alice", ausd, d("10"))
	assert.ErrorIs(t, err, core.ErrTransferFailed)

	require.NoError(t, f.tokens.Approve(ctx, "alice", pool, ausd, d("10")))

	// the aborted trace never reports success
	tx, err := f.s.Deposit(traceCtx, "alice", ausd, d("10"))
	assert.ErrorIs(t, err, core.ErrTransferFailed)
	assert.Nil(t, tx)
	assert.Equal(t, "0", f.balance(t, "alice", ausd))
	assert.Equal(t, "10", f.tokens.BalanceOf(ctx, "alice", ausd).String())

	tx, err = f.s.Deposit(WithTraceID(ctx, uuid.New()), "alice", ausd, d("10"))
	require.NoError(t, err)
	assert.Equal(t, core.TransactionStatusComplete, tx.Status)
	assert.Equal(t, "10", f.balance(t, "alice", ausd))
	assert.Equal(t, "0", f.tokens.BalanceOf(ctx, "alice", ausd).String())
}

func TestReplayTraceOfAnotherUser(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	f.fund(t, "alice", ausd, "10")
	f.fund(t, "bob", ausd, "10")

	traceCtx := WithTraceID(ctx, uuid.New())
	_, err := f.s.Deposit(traceCtx, "alice", ausd, d("10"))
	require.NoError(t, err)

	tx, err := f.s.Deposit(traceCtx, "bob", ausd, d("10"))
	assert.ErrorIs(t, err, core.ErrOperationForbidden)
	assert.Nil(t, tx)
	assert.Equal(t, "0", f.balance(t, "bob", ausd))
	assert.Equal(t, "10", f.tokens.BalanceOf(ctx, "bob", ausd).String())

	_, err = f.s.Deposit(traceCtx, "alice", ausd, d("5"))
	assert.ErrorIs(t, err, core.ErrOperationForbidden)
	assert.Equal(t, "10", f.balance(t, "alice", ausd))
}

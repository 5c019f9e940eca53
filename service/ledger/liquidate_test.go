package ledger

import (
	"context"
	"sync"
	"testing"

	"ledger/core"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// alice borrows 75 D against 100 C, then C drops to 0.9
func setupUnhealthy(t *testing.T, f *fixture) {
	ctx := context.Background()

	f.deposit(t, "bob", assetD, "1000")
	f.deposit(t, "alice", assetC, "100")

	_, err := f.s.Borrow(ctx, "alice", assetD, d("75"))
	require.NoError(t, err)

	hf, err := f.s.HealthFactor(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1.0666666666666667", hf.String())

	f.prices.Set(assetC, d("0.9"))
	f.fund(t, "carol", assetD, "100")
}

func TestLiquidate(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	setupUnhealthy(t, f)

	hf, err := f.s.HealthFactor(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "0.96", hf.String())

	tx, err := f.s.Liquidate(ctx, "carol", "alice", assetD, d("30"))
	require.NoError(t, err)
	assert.Equal(t, "30", tx.Amount.String())
	assert.Equal(t, core.TransactionStatusComplete, tx.Status)

	var extra struct {
		Borrower string                     `json:"borrower"`
		Seized   map[string]decimal.Decimal `json:"seized"`
	}
	require.NoError(t, tx.UnmarshalExtraData(&extra))
	assert.Equal(t, "alice", extra.Borrower)
	assert.Equal(t, "35", extra.Seized[assetC].String())

	// 30 * 1.05 / 0.9 = 35 C seized
	assert.Equal(t, "45", f.debt(t, "alice", assetD))
	assert.Equal(t, "65", f.balance(t, "alice", assetC))
	assert.Equal(t, "35", f.balance(t, "carol", assetC))
	assert.Equal(t, "70", f.tokens.BalanceOf(ctx, "carol", assetD).String())
	assert.Equal(t, "955", f.tokens.BalanceOf(ctx, pool, assetD).String())

	// collateral moved between users, the pool total stays
	assert.Equal(t, "100", f.asset(t, assetC).TotalSupplied.String())
	assert.Equal(t, "45", f.asset(t, assetD).TotalBorrowed.String())

	// 65 * 0.9 * 0.8 = 46.8 >= 45
	hf, err = f.s.HealthFactor(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "1.04", hf.String())

	_, err = f.s.Liquidate(ctx, "carol", "alice", assetD, d("30"))
	assert.ErrorIs(t, err, core.ErrNotLiquidatable)
	assert.Equal(t, "45", f.debt(t, "alice", assetD))
}

func TestLiquidateHealthy(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	f.deposit(t, "bob", assetD, "1000")
	f.deposit(t, "alice", assetC, "100")
	_, err := f.s.Borrow(ctx, "alice", assetD, d("75"))
	require.NoError(t, err)
	f.fund(t, "carol", assetD, "100")

	_, err = f.s.Liquidate(ctx, "carol", "alice", assetD, d("30"))
	assert.ErrorIs(t, err, core.ErrNotLiquidatable)

	_, err = f.s.Liquidate(ctx, "carol", "nobody", assetD, d("30"))
	assert.ErrorIs(t, err, core.ErrNotLiquidatable)
}

func TestLiquidateRejects(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	setupUnhealthy(t, f)

	_, err := f.s.Liquidate(ctx, "alice", "alice", assetD, d("30"))
	assert.ErrorIs(t, err, core.ErrOperationForbidden)

	_, err = f.s.Liquidate(ctx, "carol", "alice", assetD, decimal.Zero)
	assert.ErrorIs(t, err, core.ErrZeroAmount)

	// alice owes nothing in C
	_, err = f.s.Liquidate(ctx, "carol", "alice", assetC, d("30"))
	assert.ErrorIs(t, err, core.ErrNoDebt)

	assert.Equal(t, "75", f.debt(t, "alice", assetD))
	assert.Equal(t, "100", f.balance(t, "alice", assetC))
}

func TestLiquidateClampsRepay(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	setupUnhealthy(t, f)
	f.prices.Set(assetC, d("0.8"))

	tx, err := f.s.Liquidate(ctx, "carol", "alice", assetD, d("100"))
	require.NoError(t, err)

	// clamped to the debt, 75 * 1.05 / 0.8 = 98.4375 C
	assert.Equal(t, "75", tx.Amount.String())
	assert.Equal(t, "0", f.debt(t, "alice", assetD))
	assert.Equal(t, "1.5625", f.balance(t, "alice", assetC))
	assert.Equal(t, "98.4375", f.balance(t, "carol", assetC))
	assert.Equal(t, "25", f.tokens.BalanceOf(ctx, "carol", assetD).String())
}

func TestLiquidateCloseFactor(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil, WithCloseFactor(5000))
	setupUnhealthy(t, f)
	f.prices.Set(assetC, d("0.5"))

	tx, err := f.s.Liquidate(ctx, "carol", "alice", assetD, d("75"))
	require.NoError(t, err)

	// half of the debt, 37.5 * 1.05 / 0.5 = 78.75 C
	assert.Equal(t, "37.5", tx.Amount.String())
	assert.Equal(t, "37.5", f.debt(t, "alice", assetD))
	assert.Equal(t, "78.75", f.balance(t, "carol", assetC))
}

func TestLiquidateCapsRepayToCollateral(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	setupUnhealthy(t, f)
	f.prices.Set(assetC, d("0.1"))

	tx, err := f.s.Liquidate(ctx, "carol", "alice", assetD, d("30"))
	require.NoError(t, err)

	// 100 C are worth 10, which pays back 10 / 1.05 = 9.52380952 D
	assert.Equal(t, "9.52380952", tx.Amount.String())
	assert.Equal(t, "65.47619048", f.debt(t, "alice", assetD))
	assert.Equal(t, "90.47619048", f.tokens.BalanceOf(ctx, "carol", assetD).String())

	// 9.52380952 * 1.05 / 0.1 = 99.99999996 C
	assert.Equal(t, "99.99999996", f.balance(t, "carol", assetC))
	assert.Equal(t, "0.00000004", f.balance(t, "alice", assetC))

	// the value carol received covers what she paid plus the bonus
	received := d("0.1").Mul(d("99.99999996"))
	assert.True(t, received.GreaterThanOrEqual(tx.Amount.Mul(d("1.05"))))

	// the dust left cannot cover the smallest repay
	_, err = f.s.Liquidate(ctx, "carol", "alice", assetD, d("30"))
	assert.ErrorIs(t, err, core.ErrInsufficientCollateral)
	assert.Equal(t, "65.47619048", f.debt(t, "alice", assetD))
}

func TestLiquidateGreatestValueFirst(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)

	f.deposit(t, "bob", assetD, "1000")
	f.deposit(t, "alice", assetC, "100")
	f.deposit(t, "alice", assetE, "10")

	// capacity (100 + 10 * 2) * 0.75 = 90
	_, err := f.s.Borrow(ctx, "alice", assetD, d("90"))
	require.NoError(t, err)

	// 80 + 20 = 100 * 0.8 = 80 < 90
	f.prices.Set(assetC, d("0.8"))
	f.fund(t, "carol", assetD, "100")

	_, err = f.s.Liquidate(ctx, "carol", "alice", assetD, d("10"))
	require.NoError(t, err)

	// C is worth 80 against E's 20, 10 * 1.05 / 0.8 = 13.125 C
	assert.Equal(t, "13.125", f.balance(t, "carol", assetC))
	assert.Equal(t, "0", f.balance(t, "carol", assetE))
	assert.Equal(t, "10", f.balance(t, "alice", assetE))
}

func TestConcurrentLiquidations(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	setupUnhealthy(t, f)
	f.fund(t, "dave", assetD, "100")

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i, liquidator := range []string{"carol", "dave"} {
		wg.Add(1)
		go func(i int, liquidator string) {
			defer wg.Done()
			_, errs[i] = f.s.Liquidate(ctx, liquidator, "alice", assetD, d("30"))
		}(i, liquidator)
	}
	wg.Wait()

	var ok, rejected int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, core.ErrNotLiquidatable):
			rejected++
		}
	}

	assert.Equal(t, 1, ok)
	assert.Equal(t, 1, rejected)
	assert.Equal(t, "45", f.debt(t, "alice", assetD))
}

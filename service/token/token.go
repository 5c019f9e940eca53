package token

import (
	"context"
	"fmt"
	"sync"

	"ledger/core"

	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

type allowanceKey struct {
	owner   string
	spender string
	assetID string
}

// Ledger process local fungible asset ledger
//
// Only the owner mints. The pool account receives deposits & repayments through
// Pull, which spends the allowance users granted to the pool, and pays out withdrawals
// & borrows through Push.
type Ledger struct {
	owner string
	pool  string

	mu         sync.Mutex
	balances   map[string]map[string]decimal.Decimal
	allowances map[allowanceKey]decimal.Decimal
}

// New new token ledger
func New(owner, pool string) *Ledger {
	return &Ledger{
		owner:      owner,
		pool:       pool,
		balances:   map[string]map[string]decimal.Decimal{},
		allowances: map[allowanceKey]decimal.Decimal{},
	}
}

// Pool account holding the pooled funds
func (l *Ledger) Pool() string {
	return l.pool
}

// Mint mint amount of asset to user, owner only
func (l *Ledger) Mint(ctx context.Context, caller, to, assetID string, amount decimal.Decimal) error {
	if caller != l.owner {
		return fmt.Errorf("caller is not the owner: %w", core.ErrOperationForbidden)
	}

	if !amount.IsPositive() {
		return core.ErrZeroAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.add(to, assetID, amount)
	logger.FromContext(ctx).WithField("to", to).WithField("asset", assetID).Debugf("mint %s", amount)
	return nil
}

// Approve set the allowance of spender over the owner's asset
func (l *Ledger) Approve(ctx context.Context, owner, spender, assetID string, amount decimal.Decimal) error {
	if amount.IsNegative() {
		return core.ErrZeroAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.allowances[allowanceKey{owner, spender, assetID}] = amount
	return nil
}

// Allowance remaining allowance of spender over the owner's asset
func (l *Ledger) Allowance(ctx context.Context, owner, spender, assetID string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	if v, ok := l.allowances[allowanceKey{owner, spender, assetID}]; ok {
		return v
	}

	return decimal.Zero
}

// BalanceOf balance of the user
func (l *Ledger) BalanceOf(ctx context.Context, user, assetID string) decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.balanceOf(user, assetID)
}

// Transfer move amount from one account to another
func (l *Ledger) Transfer(ctx context.Context, from, to, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrZeroAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.transfer(from, to, assetID, amount)
}

// Pull move amount from the user into the pool, spending the allowance granted to the pool
func (l *Ledger) Pull(ctx context.Context, from, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrZeroAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := allowanceKey{from, l.pool, assetID}
	allowance := l.allowances[key]
	if allowance.LessThan(amount) {
		return fmt.Errorf("allowance %s < %s: %w", allowance, amount, core.ErrInsufficientAllowance)
	}

	if err := l.transfer(from, l.pool, assetID, amount); err != nil {
		return err
	}

	l.allowances[key] = allowance.Sub(amount)
	return nil
}

// Push pay amount out of the pool to the user
func (l *Ledger) Push(ctx context.Context, to, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrZeroAmount
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	return l.transfer(l.pool, to, assetID, amount)
}

func (l *Ledger) transfer(from, to, assetID string, amount decimal.Decimal) error {
	balance := l.balanceOf(from, assetID)
	if balance.LessThan(amount) {
		return fmt.Errorf("balance %s < %s: %w", balance, amount, core.ErrInsufficientBalance)
	}

	l.add(from, assetID, amount.Neg())
	l.add(to, assetID, amount)
	return nil
}

func (l *Ledger) balanceOf(user, assetID string) decimal.Decimal {
	if balances, ok := l.balances[user]; ok {
		if v, ok := balances[assetID]; ok {
			return v
		}
	}

	return decimal.Zero
}

func (l *Ledger) add(user, assetID string, amount decimal.Decimal) {
	balances, ok := l.balances[user]
	if !ok {
		balances = map[string]decimal.Decimal{}
		l.balances[user] = balances
	}

	balances[assetID] = l.balanceOf(user, assetID).Add(amount)
}

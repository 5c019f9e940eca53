package core

import (
	"context"

	"github.com/shopspring/decimal"
)

// ITransferService the external asset ledger moving funds between users and the pool.
// Pull and Push run while the engine holds its lock. An implementation calling back
// into the engine must pass the ctx it was given, or a context derived from it, and
// gets core.ErrReentrant. A call made with an unrelated context blocks on the lock.
type ITransferService interface {
	// Pull moves amount of asset from the user into the pool
	Pull(ctx context.Context, from, assetID string, amount decimal.Decimal) error
	// Push pays amount of asset from the pool to the user
	Push(ctx context.Context, to, assetID string, amount decimal.Decimal) error
}

package core

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Position collateral and debt of a user in one asset
//
// debt = principal * asset.borrow_index / position.interest_index
type Position struct {
	ID            uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"-"`
	UserID        string          `sql:"size:64;unique_index:position_idx" json:"user_id"`
	AssetID       string          `sql:"size:64;unique_index:position_idx" json:"asset_id"`
	Collateral    decimal.Decimal `sql:"type:decimal(64,16)" json:"collateral"`
	Principal     decimal.Decimal `sql:"type:decimal(64,16)" json:"principal"`
	InterestIndex decimal.Decimal `sql:"type:decimal(48,16);default:1" json:"interest_index"`
	Version       int64           `sql:"default:0" json:"version"`
	CreatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt     time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Clone returns a copy which can be mutated without touching the stored record
func (p *Position) Clone() *Position {
	clone := *p
	return &clone
}

// HasDebt whether the position carries any debt principal
func (p *Position) HasDebt() bool {
	return p.Principal.IsPositive()
}

// IPositionStore position store interface
type IPositionStore interface {
	// Find returns a zero position (ID == 0) if the user never touched the asset
	Find(ctx context.Context, userID, assetID string) (*Position, error)
	FindByUser(ctx context.Context, userID string) ([]*Position, error)
	// Save creates the position if ID == 0, otherwise updates it with version check
	Save(ctx context.Context, position *Position) error
	Users(ctx context.Context) ([]string, error)
}

package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx/types"
	"github.com/shopspring/decimal"
)

const (
	// TransactionKeyCollateral collateral of the position after the action
	TransactionKeyCollateral = "collateral"
	// TransactionKeyDebt accrued debt of the position after the action
	TransactionKeyDebt = "debt"
	// TransactionKeyBorrowIndex borrow index used by the action
	TransactionKeyBorrowIndex = "borrow_index"
	// TransactionKeyRepayAmount amount actually repaid
	TransactionKeyRepayAmount = "repay_amount"
	// TransactionKeyBorrower liquidated user
	TransactionKeyBorrower = "borrower"
	// TransactionKeySeized seized collaterals, asset_id => amount
	TransactionKeySeized = "seized"
	// TransactionKeyHealthFactor health factor after the action
	TransactionKeyHealthFactor = "health_factor"
	// TransactionKeyErrorCode error code
	TransactionKeyErrorCode = "error_code"
)

// TransactionExtraData extra data
type TransactionExtraData map[string]interface{}

// NewTransactionExtra new transaction extra instance
func NewTransactionExtra() TransactionExtraData {
	d := make(TransactionExtraData)
	return d
}

// Put put data
func (t TransactionExtraData) Put(key string, value interface{}) {
	t[key] = value
}

// Format format as []byte by default
func (t TransactionExtraData) Format() []byte {
	bs, e := json.Marshal(t)
	if e != nil {
		return []byte("{}")
	}

	return bs
}

// TransactionStatus transaction status
type TransactionStatus int

const (
	// TransactionStatusInit ledger mutated, transfer pending
	TransactionStatusInit TransactionStatus = iota
	// TransactionStatusComplete transfer done
	TransactionStatusComplete
	// TransactionStatusAbort transfer failed, ledger rolled back
	TransactionStatusAbort
)

// Transaction journal entry of a ledger action
type Transaction struct {
	ID        int64             `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	Action    ActionType        `json:"action,omitempty"`
	TraceID   string            `sql:"size:36;unique_index:idx_transactions_trace_id" json:"trace_id,omitempty"`
	UserID    string            `sql:"size:64;index:idx_transactions_user_id" json:"user_id,omitempty"`
	AssetID   string            `sql:"size:64;index:idx_transactions_asset_id" json:"asset_id,omitempty"`
	Amount    decimal.Decimal   `sql:"type:decimal(64,16)" json:"amount,omitempty"`
	Data      types.JSONText    `sql:"type:TEXT" json:"data,omitempty"`
	Status    TransactionStatus `sql:"default:0" json:"status"`
	Version   int64             `sql:"default:0" json:"version,omitempty"`
	CreatedAt time.Time         `sql:"default:CURRENT_TIMESTAMP;index:idx_transactions_created_at" json:"created_at,omitempty"`
	UpdatedAt time.Time         `sql:"default:CURRENT_TIMESTAMP" json:"updated_at,omitempty"`
}

// SetExtraData set extra data
func (t *Transaction) SetExtraData(extra TransactionExtraData) {
	data := []byte("{}")
	if extra != nil {
		data = extra.Format()
	}

	t.Data = data
}

// UnmarshalExtraData decode extra data into v
func (t *Transaction) UnmarshalExtraData(v interface{}) error {
	return json.Unmarshal(t.Data, v)
}

// ITransactionStore transaction store interface
type ITransactionStore interface {
	Create(ctx context.Context, transaction *Transaction) error
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	Update(ctx context.Context, transaction *Transaction) error
	List(ctx context.Context, fromID int64, limit int) ([]*Transaction, error)
	ListByUser(ctx context.Context, userID string, fromID int64, limit int) ([]*Transaction, error)
}

// NewTransaction new transaction in init status
func NewTransaction(traceID, userID, assetID string, action ActionType, amount decimal.Decimal, extra TransactionExtraData) *Transaction {
	t := &Transaction{
		Action:  action,
		TraceID: traceID,
		UserID:  userID,
		AssetID: assetID,
		Amount:  amount,
		Status:  TransactionStatusInit,
	}
	t.SetExtraData(extra)

	return t
}
